package llm

// BuildRecordSetJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the RecordSet shape. The model output is validated
// against it locally, independent of the format contract sent with the call.
func BuildRecordSetJSONSchema() map[string]any {
	record := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"file_name": map[string]any{"type": "string", "minLength": 1},
			"key":       map[string]any{"type": "string"},
			"item":      map[string]any{"type": "string"},
			"data_type": map[string]any{"type": "string"},
			"format":    map[string]any{"type": "string"},
			"length":    map[string]any{"type": "integer"},
			"start":     map[string]any{"type": "integer"},
			"end":       map[string]any{"type": "integer"},
			"comments":  map[string]any{"type": "string"},
		},
		"required": []string{
			"file_name", "key", "item", "data_type", "format",
			"length", "start", "end", "comments",
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"data_records": map[string]any{
				"type":  "array",
				"items": record,
			},
		},
		"required": []string{"data_records"},
	}
}
