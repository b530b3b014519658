// Package errors provides foundational, type-safe error primitives used across askygg.
//
// Domain packages (build, launch, settings) return their own typed errors; the
// command layer wraps them into a ClassifiedError so the CLI adapter can pick
// an exit code and a log level without knowing every domain type.
//
// Example usage:
//
//	err := errors.WrapError(failure, errors.CategoryBuild, "build failed").
//		WithContext("profile", "debug").
//		WithContext("phase", "compile").
//		Build()
package errors
