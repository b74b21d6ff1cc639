package form

import (
	"fmt"
	"strings"
)

// Kind is the declared type of a form field.
type Kind string

// Supported field kinds.
const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindFloat   Kind = "float"
	KindBoolean Kind = "boolean"
)

// ParseKind maps a type tag to a Kind.
// Accepts the aliases int, double and bool.
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "string":
		return KindString, nil
	case "integer", "int":
		return KindInteger, nil
	case "float", "double":
		return KindFloat, nil
	case "boolean", "bool":
		return KindBoolean, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrConfiguration, tag)
	}
}

// String returns the canonical kind name.
func (k Kind) String() string {
	return string(k)
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindString, KindInteger, KindFloat, KindBoolean:
		return true
	}
	return false
}

func (k Kind) numeric() bool {
	return k == KindInteger || k == KindFloat
}
