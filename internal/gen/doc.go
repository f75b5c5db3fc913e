// Package gen renders a generation plan as Go source, one file per package.
//
// Generation uses text/template + go/format. Each file holds:
//   - a field table variable per struct and enum codec
//   - SerializeSerde, DeserializeSerde and SerdeInfo methods for annotated types
//   - a stateless wrapper type per synthesized adapter
//   - the serialize/deserialize helper functions both of them call
//
// The deserialize helper of a struct is a loop over TryReadIndex that reads
// each field into a local slot, tracks required fields in a bitmask and
// builds the value once the type scope ends.
package gen
