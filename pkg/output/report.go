package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arthur-debert/bundlechain/pkg/chain"
)

// Report is what inspect prints for one build
type Report struct {
	Target  string               `json:"target" yaml:"target" toml:"target"`
	Mode    string               `json:"mode" yaml:"mode" toml:"mode"`
	Root    string               `json:"root" yaml:"root" toml:"root"`
	Plugins []string             `json:"plugins" yaml:"plugins" toml:"plugins"`
	Config  *chain.BundlerConfig `json:"config" yaml:"config" toml:"config"`
}

// node is a styled line of the tree view
type node struct {
	text     string
	style    string
	children []node
}

func leaf(style, format string, args ...interface{}) node {
	return node{text: fmt.Sprintf(format, args...), style: style}
}

// tree lays the report out as headings, rules with their stages, plugins
// and experiments. Stages are listed in insertion order with the position
// they run at.
func (r *Report) tree() node {
	root := node{
		text:  fmt.Sprintf("%s (%s)", r.Target, r.Mode),
		style: "Heading",
	}
	if r.Root != "" {
		root.children = append(root.children, leaf("Muted", "root: %s", r.Root))
	}
	root.children = append(root.children, leaf("Muted", "plugins: %s", strings.Join(r.Plugins, ", ")))

	bc := r.Config
	if bc == nil {
		return root
	}

	rules := node{text: "rules", style: "Heading"}
	for _, rc := range bc.Module.Rules {
		rules.children = append(rules.children, ruleNode(rc))
	}
	if len(rules.children) == 0 {
		rules.children = append(rules.children, leaf("Muted", "none"))
	}

	plugins := node{text: "plugins", style: "Heading"}
	for _, p := range bc.Plugins {
		n := node{text: fmt.Sprintf("%s [%s]", p.Name, p.Kind), style: "Plugin"}
		if len(p.Options) > 0 {
			n.children = append(n.children, leaf("Muted", "options: %s", compact(p.Options)))
		}
		plugins.children = append(plugins.children, n)
	}
	if len(plugins.children) == 0 {
		plugins.children = append(plugins.children, leaf("Muted", "none"))
	}

	root.children = append(root.children, rules, plugins)

	experiments := node{text: "experiments", style: "Heading"}
	if bc.Experiments.CSS != nil {
		experiments.children = append(experiments.children, leaf("", "css: %t", *bc.Experiments.CSS))
	}
	if f := bc.Experiments.Future; f != nil && f.NewTreeshaking != nil {
		experiments.children = append(experiments.children, leaf("", "newTreeshaking: %t", *f.NewTreeshaking))
	}
	if len(experiments.children) > 0 {
		root.children = append(root.children, experiments)
	}
	return root
}

func ruleNode(rc chain.RuleConfig) node {
	text := rc.Name
	if rc.Test != "" {
		text = fmt.Sprintf("%s %s", rc.Name, rc.Test)
	}
	n := node{text: text, style: "Rule"}

	var flags []string
	if rc.SideEffects != nil {
		flags = append(flags, fmt.Sprintf("sideEffects=%t", *rc.SideEffects))
	}
	if rc.Resolve != nil && rc.Resolve.PreferRelative != nil {
		flags = append(flags, fmt.Sprintf("preferRelative=%t", *rc.Resolve.PreferRelative))
	}
	if len(flags) > 0 {
		n.children = append(n.children, leaf("Muted", "%s", strings.Join(flags, " ")))
	}

	total := len(rc.Use)
	for i, use := range rc.Use {
		stage := node{
			text:  fmt.Sprintf("%s -> %s (runs %d/%d)", use.Name, use.Loader, total-i, total),
			style: "Stage",
		}
		if len(use.Options) > 0 {
			stage.children = append(stage.children, leaf("Muted", "options: %s", compact(use.Options)))
		}
		n.children = append(n.children, stage)
	}
	return n
}

// compact prints options on one line with sorted keys
func compact(opts chain.Options) string {
	data, err := json.Marshal(opts)
	if err != nil {
		return fmt.Sprintf("%v", map[string]interface{}(opts))
	}
	return string(data)
}
