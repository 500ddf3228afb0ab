package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// Positive validates that a named dimension is a finite value > 0.
// The returned error names the field so configuration mistakes can be traced
// back to the exact key in a config file.
func Positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidDimension, "%s must be finite (got %g)", field, v)
	}
	if v <= 0 {
		return New(ErrCodeInvalidDimension, "%s must be > 0 (got %g)", field, v)
	}
	return nil
}

// Finite validates that a named value is neither NaN nor infinite.
func Finite(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidDimension, "%s must be finite (got %g)", field, v)
	}
	return nil
}

// AtLeast validates that a named integer count is >= min.
func AtLeast(field string, v, min int) error {
	if v < min {
		return New(ErrCodeInvalidDimension, "%s must be >= %d (got %d)", field, min, v)
	}
	return nil
}

// OneOf validates that v is one of the allowed integer values.
func OneOf(field string, v int, allowed ...int) error {
	if !slices.Contains(allowed, v) {
		return New(ErrCodeInvalidDimension, "%s must be one of %v (got %d)", field, allowed, v)
	}
	return nil
}

// First returns the first non-nil error, or nil.
func First(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateJobID validates an identifier received from an API path.
// IDs are uuid strings; anything with separators or traversal is rejected.
func ValidateJobID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "job id cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "job id too long (max 64 characters)")
	}
	if strings.ContainsAny(id, "/\\.\x00") {
		return New(ErrCodeInvalidInput, "job id contains invalid characters")
	}
	return nil
}
