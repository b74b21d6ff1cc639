package form

import (
	"crypto/rand"
	"encoding/hex"
)

const (
	// IDField is the body field carrying the form id.
	IDField = "formId"

	// IDLength is the number of hex characters in a form id.
	IDLength = 16

	// IDPattern matches a well-formed form id.
	IDPattern = `^[0-9a-f]{16}$`
)

// NewID returns a fresh lowercase form id.
func NewID() string {
	b := make([]byte, IDLength/2)
	_, _ = rand.Read(b) // never fails; crashes the program instead
	return hex.EncodeToString(b)
}

// IsID reports whether s is a well-formed form id. Only lowercase hex is
// accepted so that a stored id compares equal to every resubmission of it.
func IsID(s string) bool {
	if len(s) != IDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f':
		default:
			return false
		}
	}
	return true
}

// IDFieldFor declares the form id field bound to target.
// Pages get it prepended to their own declarations.
func IDFieldFor(target *string) *Field {
	return String(IDField, target, Pattern(IDPattern))
}
