package chain

// Use is one stage of a rule: a loader and its options
type Use struct {
	id      string
	loader  string
	options Options
	rule    *Rule
}

// ID returns the stage identifier, unique within its rule
func (u *Use) ID() string {
	return u.id
}

// Loader returns the loader reference
func (u *Use) Loader() string {
	return u.loader
}

// SetLoader sets the loader reference
func (u *Use) SetLoader(loader string) *Use {
	u.loader = loader
	return u
}

// Options returns the stage options. The map is owned by the stage.
func (u *Use) Options() Options {
	return u.options
}

// SetOptions replaces the stage options
func (u *Use) SetOptions(opts Options) *Use {
	u.options = opts
	return u
}

// Tap passes the current options to fn and stores what it returns
func (u *Use) Tap(fn func(Options) Options) *Use {
	u.options = fn(u.options)
	return u
}

// End returns the rule the stage belongs to
func (u *Use) End() *Rule {
	return u.rule
}
