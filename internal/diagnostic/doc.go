// Package diagnostic collects the problems found while planning generated
// code. A problem in one member does not stop the others from resolving, so
// a run reports everything it found at once; the renderer refuses to emit a
// type that has errors attached.
//
// Every diagnostic carries a stable code (see the Code constants), the type
// it belongs to and, when known, the member.
package diagnostic
