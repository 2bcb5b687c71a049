package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// analysisJSONSchema constrains the model output before it is trusted: a
// person name plus a list of shifts with ISO dates, HH:MM times and an
// hour count the model computed itself.
func analysisJSONSchema() map[string]any {
	shiftProps := map[string]any{
		"date":        map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
		"startTime":   map[string]any{"type": "string", "pattern": `^\d{2}:\d{2}$`},
		"endTime":     map[string]any{"type": "string", "pattern": `^\d{2}:\d{2}$`},
		"description": map[string]any{"type": "string"},
		"hoursWorked": map[string]any{"type": "number", "minimum": 0.0},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"personName": map[string]any{"type": "string", "minLength": 1},
			"shifts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":                 "object",
					"additionalProperties": false,
					"properties":           shiftProps,
					"required":             []string{"date", "startTime", "endTime", "hoursWorked"},
				},
			},
		},
		"required": []string{"personName", "shifts"},
	}
}

func validateAnalysisJSON(data []byte) error {
	b, err := json.Marshal(analysisJSONSchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("analysis.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("analysis.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal model output: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("model output does not match schema: %w", err)
	}
	return nil
}
