package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Upload boundary errors
	ErrNoFileSelected    = errors.New("no file selected")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file exceeds upload size limit")
	ErrSheetRequired     = errors.New("sheet selection required")
	ErrSheetNotFound     = errors.New("sheet not found in workbook")

	// Analysis errors
	ErrNoDataset        = errors.New("no dataset loaded")
	ErrColumnNotFound   = errors.New("column not found")
	ErrDegenerateInput  = errors.New("input too degenerate to analyze")
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewUnsupportedFormatError(ext string) error {
	return fmt.Errorf("%w: %q (expected csv, xls or xlsx)", ErrUnsupportedFormat, ext)
}

func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, name)
}

func NewDegenerateInputError(reason string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateInput, reason)
}

// Error checking helpers
func IsUploadError(err error) bool {
	return errors.Is(err, ErrNoFileSelected) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrSheetRequired) ||
		errors.Is(err, ErrSheetNotFound)
}

func IsDegenerateInputError(err error) bool {
	return errors.Is(err, ErrDegenerateInput) ||
		errors.Is(err, ErrInsufficientData)
}
