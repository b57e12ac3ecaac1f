package types

import (
	"fmt"
	"strings"
)

// Target is the platform a build produces code for.
type Target string

const (
	TargetWeb           Target = "web"
	TargetNode          Target = "node"
	TargetWebWorker     Target = "web-worker"
	TargetServiceWorker Target = "service-worker"
)

// AllTargets lists every known target in a stable order
var AllTargets = []Target{TargetWeb, TargetNode, TargetWebWorker, TargetServiceWorker}

// String returns the target name
func (t Target) String() string {
	return string(t)
}

// IsValid reports whether t is a known target
func (t Target) IsValid() bool {
	for _, known := range AllTargets {
		if t == known {
			return true
		}
	}
	return false
}

// ParseTarget parses a target name, accepting the empty string as web
func ParseTarget(s string) (Target, error) {
	if s == "" {
		return TargetWeb, nil
	}
	t := Target(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown target: %s", s)
	}
	return t, nil
}

// BuildContext holds the per-build facts every plugin reads.
// It is constructed once and never mutated during composition.
type BuildContext struct {
	Target      Target
	IsProd      bool
	IsServer    bool
	IsWebWorker bool
	RootPath    string
}

// NewBuildContext derives the server and worker flags from the target
func NewBuildContext(target Target, isProd bool, rootPath string) BuildContext {
	return BuildContext{
		Target:      target,
		IsProd:      isProd,
		IsServer:    target == TargetNode,
		IsWebWorker: target == TargetWebWorker || target == TargetServiceWorker,
		RootPath:    rootPath,
	}
}

// EmitsToRuntime reports whether styles reach a browser document at runtime.
// Server and worker builds only need class name mappings.
func (c BuildContext) EmitsToRuntime() bool {
	return !c.IsServer && !c.IsWebWorker
}

// Mode returns "production" or "development"
func (c BuildContext) Mode() string {
	if c.IsProd {
		return "production"
	}
	return "development"
}
