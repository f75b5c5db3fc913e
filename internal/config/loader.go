package config

import (
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up by default.
const FileName = "serdegen.yaml"

// Default returns the configuration written by `serde-generator init`.
func Default() *File {
	f := &File{Packages: []string{"./..."}}
	applyDefaults(f)

	return f
}

// LoadFile loads and parses the configuration file at path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	return Parse(data)
}

// LoadOptional loads path when it exists and returns Default otherwise.
func LoadOptional(path string) (*File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	return LoadFile(path)
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parsing config YAML")
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = DefaultVersion
	}

	if f.Generation.OutputSuffix == "" {
		f.Generation.OutputSuffix = DefaultOutputSuffix
	}

	if f.Generation.Workers <= 0 {
		f.Generation.Workers = DefaultWorkers
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes f to path.
func WriteFile(f *File, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "writing config %s", path)
	}

	return nil
}
