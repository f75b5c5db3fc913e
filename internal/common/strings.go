package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// UnknownStr is the String() value of out-of-range enumerations.
const UnknownStr = "unknown"

// UpperFirst returns s with its first rune upper-cased.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsUpper(r) {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// LowerFirst returns s with its first rune lower-cased.
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || unicode.IsLower(r) {
		return s
	}

	return string(unicode.ToLower(r)) + s[size:]
}

// ExportedIdent turns a package name such as "go-redis" or "v1_api" into a
// PascalCase identifier fragment.
func ExportedIdent(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(UpperFirst(p))
	}

	return sb.String()
}
