package serde

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every error returned by generated code for a malformed
// input wraps one of them.
var (
	ErrMissingMember   = errors.New("serde: missing required member")
	ErrInvalidEnum     = errors.New("serde: invalid enum value")
	ErrUnexpectedIndex = errors.New("serde: unexpected field index")
	ErrUnknownMember   = errors.New("serde: unknown member")
	ErrInvalidValue    = errors.New("serde: invalid value")
)

// MissingMemberError names the required members absent from the input.
type MissingMemberError struct {
	Type    string
	Members []string
}

func (e *MissingMemberError) Error() string {
	return fmt.Sprintf("serde: %s: missing required member(s): %s", e.Type, strings.Join(e.Members, ", "))
}

func (e *MissingMemberError) Unwrap() error {
	return ErrMissingMember
}

// MissingMembers reports the members whose bit is set in required but not
// in assigned.
func MissingMembers(info *TypeInfo, assigned, required uint64) error {
	missing := required &^ assigned

	var members []string
	for i := 0; i < info.FieldCount() && i < 64; i++ {
		if missing&(1<<uint(i)) != 0 {
			members = append(members, info.Field(i).Member)
		}
	}

	return &MissingMemberError{Type: info.Name(), Members: members}
}

// MissingMembersBits is MissingMembers for types with more than 64 fields.
func MissingMembersBits(info *TypeInfo, assigned, required Bits) error {
	var members []string
	for i := range info.FieldCount() {
		if required.Has(i) && !assigned.Has(i) {
			members = append(members, info.Field(i).Member)
		}
	}

	return &MissingMemberError{Type: info.Name(), Members: members}
}

// InvalidEnumError carries enum text that matches no declared member.
type InvalidEnumError struct {
	Type string
	Text string
}

func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("serde: %s: unexpected enum field name %q", e.Type, e.Text)
}

func (e *InvalidEnumError) Unwrap() error {
	return ErrInvalidEnum
}

// InvalidEnum returns an *InvalidEnumError for text.
func InvalidEnum(info *TypeInfo, text string) error {
	return &InvalidEnumError{Type: info.Name(), Text: text}
}

// UnexpectedIndexError is a protocol violation by the input: an index that is
// neither a declared field nor one of the reserved values.
type UnexpectedIndexError struct {
	Type  string
	Index int
}

func (e *UnexpectedIndexError) Error() string {
	return fmt.Sprintf("serde: %s: unexpected index %d", e.Type, e.Index)
}

func (e *UnexpectedIndexError) Unwrap() error {
	return ErrUnexpectedIndex
}

// UnexpectedIndex returns an *UnexpectedIndexError.
func UnexpectedIndex(info *TypeInfo, index int) error {
	return &UnexpectedIndexError{Type: info.Name(), Index: index}
}

// UnknownMember is returned for an undeclared field of a type that denies
// unknown members.
func UnknownMember(info *TypeInfo) error {
	return fmt.Errorf("%w: %s", ErrUnknownMember, info.Name())
}

// InvalidValueError is returned by formats when the input holds a value of
// the wrong shape.
type InvalidValueError struct {
	Expected string
	Got      string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("serde: expected %s, got %s", e.Expected, e.Got)
}

func (e *InvalidValueError) Unwrap() error {
	return ErrInvalidValue
}

// InvalidValue returns an *InvalidValueError.
func InvalidValue(expected, got string) error {
	return &InvalidValueError{Expected: expected, Got: got}
}
