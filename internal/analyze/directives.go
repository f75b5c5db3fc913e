package analyze

import (
	"go/ast"
	"reflect"
	"strconv"
	"strings"

	"serde-generator/internal/naming"
)

// TagKey is the struct tag key read for member options.
const TagKey = "serde"

const directivePrefix = "serde:"

// Directives are the serde comment directives attached to a type declaration:
//
//	//serde:generate
//	//serde:options naming=kebab-case deny_unknown
type Directives struct {
	Serialize   bool
	Deserialize bool
	Naming      naming.Policy
	NamingSet   bool
	DenyUnknown bool
	// Problems lists directive text that could not be understood.
	Problems []string
}

// Annotated reports whether the type asked for generated code.
func (d Directives) Annotated() bool {
	return d.Serialize || d.Deserialize
}

// Capability returns the methods the generator will add to the type.
func (d Directives) Capability() Capability {
	var c Capability
	if d.Serialize {
		c |= CanSerialize
	}

	if d.Deserialize {
		c |= CanDeserialize
	}

	return c
}

// ParseDirectives reads serde directives from a doc comment. Only line
// comments written without a space after the slashes count, as with
// //go:generate.
func ParseDirectives(doc *ast.CommentGroup) Directives {
	var d Directives
	if doc == nil {
		return d
	}

	for _, c := range doc.List {
		text, ok := strings.CutPrefix(c.Text, "//"+directivePrefix)
		if !ok {
			continue
		}

		verb, args, _ := strings.Cut(text, " ")
		switch verb {
		case "generate":
			d.Serialize, d.Deserialize = true, true
		case "serialize":
			d.Serialize = true
		case "deserialize":
			d.Deserialize = true
		case "options":
			d.parseOptions(strings.Fields(args))
		default:
			d.Problems = append(d.Problems, "unknown directive "+strconv.Quote(directivePrefix+verb))
		}
	}

	return d
}

func (d *Directives) parseOptions(args []string) {
	for _, arg := range args {
		key, value, hasValue := strings.Cut(arg, "=")

		switch key {
		case "naming":
			p, err := naming.Parse(value)
			if err != nil {
				d.Problems = append(d.Problems, err.Error())
				continue
			}

			d.Naming, d.NamingSet = p, true
		case "deny_unknown":
			on := true
			if hasValue {
				b, err := strconv.ParseBool(value)
				if err != nil {
					d.Problems = append(d.Problems, "deny_unknown: "+err.Error())
					continue
				}

				on = b
			}

			d.DenyUnknown = on
		default:
			d.Problems = append(d.Problems, "unknown option "+strconv.Quote(key))
		}
	}
}

// MemberOptions are the per-member settings read from the serde struct tag:
//
//	`serde:"wireName,optional,skip_serialize,skip_deserialize,keep_null,wrap=Name"`
//
// A tag of "-" removes the member.
type MemberOptions struct {
	Skip            bool
	Rename          string
	Wrap            string
	Optional        bool
	SkipSerialize   bool
	SkipDeserialize bool
	KeepNull        bool
	// Unknown lists tag options that were not recognised.
	Unknown []string
}

// ParseTag reads MemberOptions from a struct tag.
func ParseTag(tag reflect.StructTag) MemberOptions {
	var o MemberOptions

	raw, ok := tag.Lookup(TagKey)
	if !ok {
		return o
	}

	if raw == "-" {
		o.Skip = true
		return o
	}

	parts := strings.Split(raw, ",")
	o.Rename = strings.TrimSpace(parts[0])

	for _, part := range parts[1:] {
		key, value, _ := strings.Cut(strings.TrimSpace(part), "=")

		switch key {
		case "":
		case "optional", "default":
			o.Optional = true
		case "skip_serialize":
			o.SkipSerialize = true
		case "skip_deserialize":
			o.SkipDeserialize = true
		case "skip":
			o.SkipSerialize, o.SkipDeserialize = true, true
		case "keep_null":
			o.KeepNull = true
		case "wrap":
			o.Wrap = value
		default:
			o.Unknown = append(o.Unknown, part)
		}
	}

	return o
}
