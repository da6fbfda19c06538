package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/kaptinlin/jsonrepair"

	"github.com/custodia-labs/kgraph/internal/core/domain"
	"github.com/custodia-labs/kgraph/internal/core/ports/driven"
	"github.com/custodia-labs/kgraph/internal/logger"
)

// Ensure Decoder implements the interface.
var _ driven.ExtractionDecoder = (*Decoder)(nil)

// envelopeKeys are wrapper fields extraction services commonly nest
// their result under.
var envelopeKeys = []string{"data", "result", "extraction"}

// Decoder reads extractor output.
type Decoder struct{}

// New creates a new extraction decoder.
func New() *Decoder {
	return &Decoder{}
}

// Decode parses data into an extraction result. Plain JSON is tried
// first; malformed JSON is repaired before a second attempt.
func (d *Decoder) Decode(_ context.Context, data []byte) (*domain.ExtractionResult, error) {
	input := stripFences(strings.TrimSpace(string(data)))
	if input == "" {
		return nil, fmt.Errorf("%w: empty input", domain.ErrInvalidInput)
	}

	raw, err := unmarshalFlexible(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	obj := unwrap(raw)
	if obj == nil {
		return nil, fmt.Errorf("%w: expected an object with entities and relations", domain.ErrInvalidInput)
	}

	// Round-trip through JSON so field tags do the mapping.
	buf, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	var result domain.ExtractionResult
	if err := json.Unmarshal(buf, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	logger.Debug("decoded extraction: %d entities, %d relations", len(result.Entities), len(result.Relations))
	return &result, nil
}

// Schema returns the JSON schema of ExtractionResult.
func (d *Decoder) Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}
	schema := reflector.Reflect(&domain.ExtractionResult{})
	schema.Title = "Extraction result"
	schema.Description = "Entities and relations produced by an entity/relation extractor."
	return json.MarshalIndent(schema, "", "  ")
}

// unmarshalFlexible decodes input into a generic value. Double-encoded
// JSON strings are unwrapped and malformed JSON is repaired.
func unmarshalFlexible(input string) (any, error) {
	var out any
	if err := json.Unmarshal([]byte(input), &out); err == nil {
		if s, ok := out.(string); ok {
			return unmarshalFlexible(strings.TrimSpace(s))
		}
		return out, nil
	}

	repaired, err := jsonrepair.JSONRepair(input)
	if err != nil {
		return nil, fmt.Errorf("json repair failed: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &out); err != nil {
		return nil, fmt.Errorf("unmarshal failed after repair: %w", err)
	}
	logger.Debug("repaired malformed extraction input")
	return out, nil
}

// unwrap finds the extraction object, looking through one level of
// response envelope. It returns nil if there is none.
func unwrap(v any) map[string]any {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	if isExtraction(obj) {
		return obj
	}
	for _, key := range envelopeKeys {
		if inner, ok := obj[key].(map[string]any); ok && isExtraction(inner) {
			return inner
		}
	}
	if len(obj) == 0 {
		return obj
	}
	return nil
}

func isExtraction(obj map[string]any) bool {
	_, hasEntities := obj["entities"]
	_, hasRelations := obj["relations"]
	return hasEntities || hasRelations
}

// stripFences removes a surrounding markdown code fence.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := s[3:]
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		body = body[i+1:]
	} else {
		body = strings.TrimPrefix(body, "json")
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}
