// Package config reads serdegen.yaml, the optional project file that lists
// the packages to generate for and carries per-type and per-member overrides
// of what the source annotations say.
//
// Example:
//
//	version: "1"
//	packages: ["./examples/basic"]
//	generation:
//	  output_suffix: _serde
//	  workers: 4
//	  default_naming: camelCase
//	types:
//	  - type: serde-generator/examples/basic.Order
//	    naming: kebab-case
//	    members:
//	      - name: Note
//	        rename: memo
//	        optional: true
//
// Type names may be fully qualified ("import/path.Name"), short
// ("basic.Order") or bare ("Order") when the bare name is unambiguous.
package config
