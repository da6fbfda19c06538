package domain

import "time"

// ItemSource records where a stored fragment's input came from.
type ItemSource string

// Available item sources.
const (
	// ItemSourceText is input typed or piped by the user.
	ItemSourceText ItemSource = "text"

	// ItemSourceFile is input read from a file.
	ItemSourceFile ItemSource = "file"
)

// IsValid returns true if the item source is recognised.
func (s ItemSource) IsValid() bool {
	return s == ItemSourceText || s == ItemSourceFile
}

// String returns the string representation.
func (s ItemSource) String() string {
	return string(s)
}

// StoredGraphItem is a persisted fragment. Items are never mutated except
// for explicit field updates, which also refresh UpdatedAt.
type StoredGraphItem struct {
	ID               string           `json:"id" validate:"required"`
	Name             string           `json:"name"`
	ExtractionResult ExtractionResult `json:"extractionResult"`
	Graph            KnowledgeGraph   `json:"graph"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	Source           ItemSource       `json:"source"`
	OriginalContent  string           `json:"originalContent,omitempty"`
}

// ItemUpdate is a partial update of a stored item. Nil fields are kept.
type ItemUpdate struct {
	Name            *string
	OriginalContent *string
}

// StoreStats is derived from the collection on every call.
type StoreStats struct {
	TotalItems             int        `json:"totalItems"`
	TotalNodes             int        `json:"totalNodes"`
	TotalEdges             int        `json:"totalEdges"`
	ApproximateStorageSize int        `json:"approximateStorageSize"`
	OldestTimestamp        *time.Time `json:"oldestTimestamp,omitempty"`
	NewestTimestamp        *time.Time `json:"newestTimestamp,omitempty"`
}

// ExportFormatVersion is written into every export envelope.
const ExportFormatVersion = "1.0"

// ExportEnvelope is the portable snapshot of the whole collection.
type ExportEnvelope struct {
	Version    string            `json:"version" validate:"required,eq=1.0"`
	ExportedAt time.Time         `json:"exportedAt"`
	Items      []StoredGraphItem `json:"items" validate:"required,dive"`
}
