// Package testutil provides test utilities and fixtures for unit tests.
package testutil

// Ptr returns a pointer to the given value. Useful for building schema
// fixtures with optional numeric constraints.
func Ptr[T any](v T) *T {
	return &v
}
