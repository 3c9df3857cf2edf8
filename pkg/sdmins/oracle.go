package sdmins

import (
	"context"
	"encoding/json"
)

// Oracle is the external language-model capability. It drafts structured
// natural-language output and is never trusted without independent
// verification; the schema constrains the reply shape, not its truth.
type Oracle interface {
	// Generate sends a prompt and a reply schema and returns the model's
	// structured JSON reply. Implementations carry their own timeout;
	// callers own retries.
	Generate(
		ctx context.Context,
		prompt string,
		schema *Schema,
	) (json.RawMessage, error)
}

// Schema describes the structured reply an Oracle must produce. It is a
// minimal, provider-neutral subset of JSON Schema; backends translate it
// into their native response-schema representation.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

// Schema type names.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeInteger = "integer"
	TypeBoolean = "boolean"
)
