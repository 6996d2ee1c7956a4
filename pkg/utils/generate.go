package utils

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== OTP ====================

// GenerateOTP returns a 6-digit numeric code, uniform over [100000, 999999].
// Not cryptographically hardened; the verification window is 10 minutes.
func GenerateOTP() string {
	return fmt.Sprintf("%d", 100000+rand.Intn(900000))
}
