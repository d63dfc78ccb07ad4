// Package keyfile loads the inference service credential from a
// single-line key file.
package keyfile

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/tmorell/tabledict/constants"
)

// Load reads the credential file at path and returns the trimmed key.
// The key must be a single token starting with the expected prefix;
// anything else is rejected.
func Load(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read api key file %s: %w", path, err)
	}

	key := strings.TrimSpace(string(b))
	if key == "" {
		return "", fmt.Errorf("api key file %s is empty", path)
	}
	if strings.IndexFunc(key, unicode.IsSpace) >= 0 {
		return "", fmt.Errorf("api key file %s must contain a single token without whitespace", path)
	}
	if !strings.HasPrefix(key, constants.APIKeyPrefix) {
		return "", fmt.Errorf("api key file %s does not look valid: expected a single line starting with %q", path, constants.APIKeyPrefix)
	}
	return key, nil
}
