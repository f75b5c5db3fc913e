package config

import (
	"serde-generator/internal/analyze"
	"serde-generator/internal/naming"
)

// Defaults used when the file leaves a value out.
const (
	DefaultVersion      = "1"
	DefaultOutputSuffix = "_serde"
	DefaultWorkers      = 4
)

// File is the root of serdegen.yaml.
type File struct {
	Version    string       `yaml:"version"`
	Packages   []string     `yaml:"packages,omitempty"`
	Generation Generation   `yaml:"generation"`
	Types      []TypeConfig `yaml:"types,omitempty"`
}

// Generation holds settings for the whole run.
type Generation struct {
	// OutputSuffix is appended to the package name to form the generated
	// file name: <pkg><suffix>.go.
	OutputSuffix string `yaml:"output_suffix,omitempty"`
	// Workers bounds how many types are resolved at once.
	Workers int `yaml:"workers,omitempty"`
	// DefaultNaming applies to types that set no policy of their own.
	DefaultNaming naming.Policy `yaml:"default_naming"`
	// DenyUnknown makes every type reject unknown wire fields.
	DenyUnknown bool `yaml:"deny_unknown,omitempty"`
}

// TypeConfig overrides the directives of one type.
type TypeConfig struct {
	Type        string         `yaml:"type"`
	Naming      *naming.Policy `yaml:"naming,omitempty"`
	DenyUnknown *bool          `yaml:"deny_unknown,omitempty"`
	Members     []MemberConfig `yaml:"members,omitempty"`
}

// MemberConfig overrides the struct tag of one member.
type MemberConfig struct {
	Name            string `yaml:"name"`
	Rename          string `yaml:"rename,omitempty"`
	Wrap            string `yaml:"wrap,omitempty"`
	Skip            bool   `yaml:"skip,omitempty"`
	Optional        bool   `yaml:"optional,omitempty"`
	SkipSerialize   bool   `yaml:"skip_serialize,omitempty"`
	SkipDeserialize bool   `yaml:"skip_deserialize,omitempty"`
	KeepNull        bool   `yaml:"keep_null,omitempty"`
}

// Options returns the member record as tag options.
func (m *MemberConfig) Options() analyze.MemberOptions {
	return analyze.MemberOptions{
		Skip:            m.Skip,
		Rename:          m.Rename,
		Wrap:            m.Wrap,
		Optional:        m.Optional,
		SkipSerialize:   m.SkipSerialize,
		SkipDeserialize: m.SkipDeserialize,
		KeepNull:        m.KeepNull,
	}
}

// Member returns the record for the named member, or nil.
func (t *TypeConfig) Member(name string) *MemberConfig {
	for i := range t.Members {
		if t.Members[i].Name == name {
			return &t.Members[i]
		}
	}

	return nil
}

// Overrides indexes the type records of a file by resolved type. Records
// whose type cannot be found are left out; Validate reports them.
type Overrides map[analyze.TypeID]*TypeConfig

// Overrides resolves every type record against graph.
func (f *File) Overrides(graph *analyze.TypeGraph) Overrides {
	out := make(Overrides)
	if f == nil {
		return out
	}

	for i := range f.Types {
		if t := ResolveTypeID(f.Types[i].Type, graph); t != nil {
			out[t.ID] = &f.Types[i]
		}
	}

	return out
}

// For returns the record of id, or nil.
func (o Overrides) For(id analyze.TypeID) *TypeConfig {
	return o[id]
}
