package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
)

// GenResetCode generates a secure random 6-digit password-reset code as a
// zero-padded string.
func GenResetCode() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint32(b)
	return fmt.Sprintf("%06d", n%1000000), nil
}

// HashResetCode returns the sha256 hex digest stored in place of the code.
func HashResetCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
