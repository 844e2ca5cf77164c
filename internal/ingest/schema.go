package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// tradesSchema accepts the loosely-shaped exports different exchanges
// produce. Field presence is optional on purpose; types are enforced when a
// field does appear so a malformed upload fails loudly instead of silently
// producing zeroed trades.
const tradesSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "symbol":     {"type": "string"},
      "pnl":        {"type": ["number", "string"]},
      "realized":   {"type": ["number", "string"]},
      "commission": {"type": ["number", "string"]},
      "fee":        {"type": ["number", "string"]},
      "qty":        {"type": ["number", "string"]},
      "quantity":   {"type": ["number", "string"]},
      "price":      {"type": ["number", "string"]},
      "timestamp":  {"type": ["number", "string"]},
      "time":       {"type": ["number", "string"]}
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("trades.schema.json", tradesSchema)

// ValidatePayload checks an uploaded trade array against the schema.
func ValidatePayload(payload []byte) error {
	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("payload failed schema validation: %w", err)
	}
	return nil
}
