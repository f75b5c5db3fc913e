// Package plan decides, for every annotated type, how each of its members is
// written and read, and records the decisions as a language-neutral
// GenerationPlan that internal/gen renders to Go.
//
// Resolution pipeline, per annotated type (types run on a bounded worker
// pool):
//  1. List the data members in declaration order and merge config overrides
//  2. Compute wire names with the type's naming policy
//  3. Pick an adapter for every member, in priority order:
//     native, explicit wrap, primitive, compound, synthesized wrapper
//  4. Register the type's field table in the InfoRegistry
//  5. Derive the serialize sequence and the indexed deserialize plan
//
// Synthesizing a wrapper runs the same pipeline on the wrapped type. The
// SynthesisRegistry guarantees one wrapper per (output package, type) no
// matter how many members or workers ask for it.
//
// Problems are reported as diagnostics; a member that cannot be adapted does
// not stop the others.
package plan
