package controllers

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// generateReference builds a unique human-pasteable reference like
// "CAB-9F2C41A7" for records created without one.
func generateReference(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(uuid.NewString()[:8]))
}
