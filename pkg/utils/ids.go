package utils

import "github.com/google/uuid"

// GenerateID creates an entity id of the form {kind}-{uuid}.
//
// Example:
//   - Input: kind="settler"
//   - Output: "settler-0b6f3c0e-8a4e-4a4e-9d55-1f6a1f0f5a77"
func GenerateID(kind string) string {
	return kind + "-" + uuid.NewString()
}
