package domain

// FilterOptions selects a sub-graph. Empty fields do not filter.
type FilterOptions struct {
	// NodeTypes keeps only nodes of these types when non-empty.
	NodeTypes []string `json:"nodeTypes,omitempty"`

	// EdgeTypes keeps only edges of these types when non-empty.
	EdgeTypes []string `json:"edgeTypes,omitempty"`

	// MinConfidence drops nodes and edges whose weight is below it.
	MinConfidence float64 `json:"minConfidence,omitempty"`

	// SearchQuery keeps nodes whose label, type or properties contain it,
	// compared case-insensitively.
	SearchQuery string `json:"searchQuery,omitempty"`
}

// IsZero reports whether the options filter nothing.
func (f FilterOptions) IsZero() bool {
	return len(f.NodeTypes) == 0 && len(f.EdgeTypes) == 0 &&
		f.MinConfidence <= 0 && f.SearchQuery == ""
}
