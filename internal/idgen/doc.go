// Package idgen generates run identifiers. NewFunc can be replaced in tests
// to make run scoped file and log names deterministic.
package idgen
