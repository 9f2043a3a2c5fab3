package jsondiff

// Stats holds statistical metadata about a comparison
type Stats struct {
	SourceNodes int `json:"sourceNodes"` // count of values in the source tree
	TargetNodes int `json:"targetNodes"` // count of values in the target tree

	Changes     int `json:"changes,omitempty"`     // number of scalars changed
	TypeChanges int `json:"typeChanges,omitempty"` // number of values that changed kind
	Extras      int `json:"extras,omitempty"`      // members & elements only source has
	Missing     int `json:"missing,omitempty"`     // members & elements only target has
	Ignored     int `json:"ignored,omitempty"`     // locations skipped by an ignore rule
}

// NodeChange returns a count of the shift between source & target trees
func (s Stats) NodeChange() int {
	return s.TargetNodes - s.SourceNodes
}

// Differences is the total number of reported differences
func (s Stats) Differences() int {
	return s.Changes + s.TypeChanges + s.Extras + s.Missing
}
