package chain

import (
	"github.com/gobwas/glob"
)

// Rule matches module requests by file pattern and holds the ordered stages
// applied to them.
type Rule struct {
	id          string
	test        string
	matcher     glob.Glob
	testErr     error
	uses        []*Use
	sideEffects *bool
	resolve     *Resolve
}

// Resolve holds per-rule module resolution flags
type Resolve struct {
	preferRelative *bool
}

// PreferRelative makes bare requests resolve against the importing file first
func (r *Resolve) PreferRelative(v bool) *Resolve {
	r.preferRelative = &v
	return r
}

// ID returns the rule identifier
func (r *Rule) ID() string {
	return r.id
}

// Test sets the glob the rule matches against. An invalid pattern is
// reported by Err and by Chain.Materialize.
func (r *Rule) Test(pattern string) *Rule {
	r.test = pattern
	r.matcher, r.testErr = glob.Compile(pattern)
	return r
}

// TestPattern returns the glob set with Test
func (r *Rule) TestPattern() string {
	return r.test
}

// Err returns the error from compiling the test pattern, if any
func (r *Rule) Err() error {
	return r.testErr
}

// Matches reports whether path is handled by this rule
func (r *Rule) Matches(path string) bool {
	if r.matcher == nil {
		return false
	}
	return r.matcher.Match(path)
}

// Use returns the stage with the given id, appending a new one if the rule
// does not have it yet. Existing stages keep their position.
func (r *Rule) Use(id string) *Use {
	for _, u := range r.uses {
		if u.id == id {
			return u
		}
	}
	u := &Use{id: id, rule: r}
	r.uses = append(r.uses, u)
	return u
}

// GetUse returns the stage with the given id without creating it
func (r *Rule) GetUse(id string) (*Use, bool) {
	for _, u := range r.uses {
		if u.id == id {
			return u, true
		}
	}
	return nil, false
}

// HasUse reports whether the rule has a stage with the given id
func (r *Rule) HasUse(id string) bool {
	_, ok := r.GetUse(id)
	return ok
}

// Uses returns the stages in insertion order
func (r *Rule) Uses() []*Use {
	out := make([]*Use, len(r.uses))
	copy(out, r.uses)
	return out
}

// UseIDs returns the stage ids in insertion order
func (r *Rule) UseIDs() []string {
	ids := make([]string, len(r.uses))
	for i, u := range r.uses {
		ids[i] = u.id
	}
	return ids
}

// ExecutionOrder returns the stage ids in the order the bundler runs them,
// which is the reverse of insertion order.
func (r *Rule) ExecutionOrder() []string {
	ids := make([]string, len(r.uses))
	for i, u := range r.uses {
		ids[len(r.uses)-1-i] = u.id
	}
	return ids
}

// SideEffects marks matched modules as having side effects so they survive
// tree shaking
func (r *Rule) SideEffects(v bool) *Rule {
	r.sideEffects = &v
	return r
}

// Resolve returns the rule's resolution flags
func (r *Rule) Resolve() *Resolve {
	if r.resolve == nil {
		r.resolve = &Resolve{}
	}
	return r.resolve
}
