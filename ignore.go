package jsondiff

// IgnoreRule suppresses differences at every location matching Path
type IgnoreRule struct {
	Path Path
	// IgnoreMissing extends the rule to locations absent from target
	IgnoreMissing bool
}

// rule returns the first rule matching path
func (c *Config) rule(path Path) (IgnoreRule, bool) {
	for _, r := range c.IgnoreRules {
		if MatchPath(r.Path, path) {
			return r, true
		}
	}
	return IgnoreRule{}, false
}

// ignores resolves whether path should be skipped. exists reports whether
// the location is present on the side the current step looks it up in.
// only the first matching rule is consulted
func (c *Config) ignores(path Path, exists bool) bool {
	r, ok := c.rule(path)
	if !ok {
		return false
	}
	return exists || r.IgnoreMissing
}
