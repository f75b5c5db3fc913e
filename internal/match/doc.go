// Package match ranks identifiers by edit distance. It backs the "did you
// mean" suggestions attached to configuration diagnostics.
package match
