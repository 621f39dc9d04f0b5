package symbols

import (
	"errors"
	"fmt"
)

// Sentinel errors for error type checking
var (
	// ErrSyntaxExtraction indicates the source could not be minimally structured
	ErrSyntaxExtraction = errors.New("syntax extraction failed")

	// ErrOffsetOutOfRange indicates an offset outside [0, len(source)]
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// SyntaxExtractionError reports where and why symbol extraction gave up
type SyntaxExtractionError struct {
	Offset int
	Reason string
}

func (e *SyntaxExtractionError) Error() string {
	return fmt.Sprintf("syntax extraction failed at offset %d: %s", e.Offset, e.Reason)
}

func (e *SyntaxExtractionError) Unwrap() error {
	return ErrSyntaxExtraction
}

// NewSyntaxExtractionError creates a new syntax extraction error
func NewSyntaxExtractionError(offset int, reason string) error {
	return &SyntaxExtractionError{
		Offset: offset,
		Reason: reason,
	}
}

// OffsetOutOfRangeError is returned when a caller asks about a position
// outside the document
type OffsetOutOfRangeError struct {
	Offset int
	Length int
}

func (e *OffsetOutOfRangeError) Error() string {
	return fmt.Sprintf("offset %d out of range [0, %d]", e.Offset, e.Length)
}

func (e *OffsetOutOfRangeError) Unwrap() error {
	return ErrOffsetOutOfRange
}

// NewOffsetOutOfRangeError creates a new offset out of range error
func NewOffsetOutOfRangeError(offset, length int) error {
	return &OffsetOutOfRangeError{
		Offset: offset,
		Length: length,
	}
}
