package persistence

import (
	"encoding/json"
	"fmt"
)

// toJSON encodes a value for a text column; nil encodes as empty
func toJSON(v interface{}) (string, error) {
	bytes, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal column: %w", err)
	}
	if string(bytes) == "null" {
		return "", nil
	}
	return string(bytes), nil
}

// fromJSON decodes a text column; an empty column leaves v untouched
func fromJSON(s string, v interface{}) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("failed to unmarshal column: %w", err)
	}
	return nil
}
