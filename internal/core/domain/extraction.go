package domain

// Entity is a typed text span identified by the extractor.
type Entity struct {
	// Text is the surface text of the span. Required.
	Text string `json:"text" jsonschema:"required,description=surface text of the entity span"`

	// Type is the entity category, e.g. PERSON or ORG. Required.
	Type string `json:"type" jsonschema:"required,description=entity category"`

	// Confidence is the extractor score in [0,1]. Zero means unset.
	Confidence float64 `json:"confidence,omitempty" jsonschema:"minimum=0,maximum=1"`

	// Start and End are character offsets of the span in the source text.
	Start int `json:"start,omitempty"`
	End   int `json:"end,omitempty"`

	// Properties carries extractor-specific attributes.
	Properties map[string]any `json:"properties,omitempty"`
}

// Relation is a typed, directed link between two entities identified by
// their surface text.
type Relation struct {
	SourceText string         `json:"source_text" jsonschema:"required"`
	TargetText string         `json:"target_text" jsonschema:"required"`
	Type       string         `json:"type" jsonschema:"required,description=relation type such as WORKS_AT"`
	Confidence float64        `json:"confidence,omitempty" jsonschema:"minimum=0,maximum=1"`
	Properties map[string]any `json:"properties,omitempty"`
}

// ExtractionResult is the sole input format understood by the converter.
type ExtractionResult struct {
	// Text is the analysed input, when the extractor echoes it back.
	Text string `json:"text,omitempty"`

	Entities  []Entity   `json:"entities"`
	Relations []Relation `json:"relations"`
}

// Valid reports whether the entity carries the fields the converter needs.
func (e *Entity) Valid() bool {
	return e.Text != "" && e.Type != ""
}

// Valid reports whether the relation carries the fields the converter needs.
func (r *Relation) Valid() bool {
	return r.SourceText != "" && r.TargetText != "" && r.Type != ""
}

// WeightFromConfidence maps an extractor confidence onto a graph weight.
// Zero is treated as unset and yields DefaultWeight.
func WeightFromConfidence(c float64) float64 {
	if c == 0 {
		return DefaultWeight
	}
	return c
}
