// Package naming turns declared member names into wire names.
package naming

import (
	"strings"

	"github.com/cockroachdb/errors"

	"serde-generator/internal/common"
)

// Policy selects the transform from a declared member name to its wire name.
type Policy int

const (
	// CamelCase lowercases the first character and keeps the rest. It is the
	// policy of types that do not choose one.
	CamelCase Policy = iota
	// Identity keeps the declared name.
	Identity
	// KebabCase splits the name into words and joins them lowercased with '-'.
	KebabCase
	// None keeps the raw declared name and opts the type out of any default.
	None
)

// Default is the policy applied when a type does not choose one.
const Default = CamelCase

// String returns the configuration spelling of the policy.
func (p Policy) String() string {
	switch p {
	case Identity:
		return "identity"
	case CamelCase:
		return "camelCase"
	case KebabCase:
		return "kebab-case"
	case None:
		return "none"
	default:
		return common.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}

	*p = parsed

	return nil
}

// Parse accepts the spellings used in directives and configuration files.
func Parse(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "identity":
		return Identity, nil
	case "camel", "camelcase", "camel-case", "camel_case":
		return CamelCase, nil
	case "kebab", "kebabcase", "kebab-case", "kebab_case":
		return KebabCase, nil
	case "none":
		return None, nil
	default:
		return Default, errors.Newf("unknown naming policy %q (want identity, camelCase, kebab-case or none)", s)
	}
}

// Apply returns the wire name of a member declared as name.
func Apply(p Policy, name string) string {
	switch p {
	case CamelCase:
		return common.LowerFirst(name)
	case KebabCase:
		return kebab(name)
	default:
		return name
	}
}

func kebab(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}

	return strings.Join(words, "-")
}
