// Package schema loads the declarative output-shape descriptor that
// constrains the inference call's response format.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tmorell/tabledict/constants"
)

// LoadFormat parses the descriptor file at path and returns the object
// under its top-level "format" key. The returned object is forwarded to
// the inference call verbatim; its contents are not interpreted here.
func LoadFormat(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema descriptor %s: %w", path, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse schema descriptor %s: %w", path, err)
	}

	raw, ok := doc[constants.SchemaFormatKey]
	if !ok {
		return nil, fmt.Errorf("schema descriptor %s must contain a top-level %q key", path, constants.SchemaFormatKey)
	}
	format, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema descriptor %s: %q must be an object", path, constants.SchemaFormatKey)
	}
	return format, nil
}
