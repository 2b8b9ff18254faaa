// Package testutil contains common test utilities.
package testutil

import (
	"os"
	"path/filepath"
)

// Cleanuper wraps the Cleanup method. It is a subset of [testing.TB], thus
// satisfied by [*testing.T] and [*testing.B].
type Cleanuper interface {
	Cleanup(func())
}

// TempDirer wraps the TempDir method. It is a subset of [testing.TB].
type TempDirer interface {
	TempDir() string
}

// Set sets *p to v for the duration of a test, restoring the old value when
// the test finishes.
func Set[T any](c Cleanuper, p *T, v T) {
	old := *p
	*p = v
	c.Cleanup(func() { *p = old })
}

// TempFile returns the path of a file named name inside a fresh temporary
// directory that is removed when the test finishes. The file is not created.
func TempFile(t TempDirer, name string) string {
	return filepath.Join(t.TempDir(), name)
}

// MustWriteFile writes data to a file, after creating all ancestor
// directories that don't exist. It panics on errors.
func MustWriteFile(filename, data string) {
	Must(os.MkdirAll(filepath.Dir(filename), 0700))
	Must(os.WriteFile(filename, []byte(data), 0600))
}

// Must panics if the error value is not nil. It is typically used like this:
//
//	testutil.Must(a_function())
func Must(err error) {
	if err != nil {
		panic(err)
	}
}

// Must1 panics if the error value is not nil, and returns v otherwise.
func Must1[T any](v T, err error) T {
	Must(err)
	return v
}
