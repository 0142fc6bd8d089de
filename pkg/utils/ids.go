package utils

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier with a type prefix,
// e.g. GenerateID("auction") -> "auction-5f3a...".
func GenerateID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String())
}
