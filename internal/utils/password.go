package utils

import (
	"strings"

	"github.com/google/uuid"

	"github.com/takamaro111/construction-management-app/internal/constants"
)

// GenerateTempPassword produces a random temporary password issued during
// member invitation and password resets.
func GenerateTempPassword() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return raw[:constants.TempPasswordLength]
}

// IsUUID reports whether s is a well-formed UUID. Member lifecycle
// operations validate identifier format before touching any record.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
