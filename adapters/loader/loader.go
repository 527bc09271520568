// Package loader parses uploaded tabular files (CSV, XLS, XLSX) into the
// immutable domain Table. Parsing is all-or-nothing: any failure aborts the
// Table construction with no partial result.
package loader

import (
	"path/filepath"
	"strings"

	"datalens/domain/core"
	"datalens/domain/table"
	"datalens/internal/errors"
)

// Loader dispatches file bytes to the right parser based on extension.
type Loader struct {
	config *Config
}

// Config holds loader limits and defaults
type Config struct {
	MaxFileSize int64 // Maximum accepted file size in bytes
}

// DefaultConfig returns the documented defaults (100 MB upload bound).
func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: 100 * 1024 * 1024,
	}
}

// New creates a loader with the given config, falling back to defaults.
func New(config *Config) *Loader {
	if config == nil {
		config = DefaultConfig()
	}
	return &Loader{config: config}
}

// Load parses the uploaded bytes into a Table according to opts. The format
// is chosen by the filename extension; anything outside csv/xls/xlsx fails
// with core.ErrUnsupportedFormat.
func (l *Loader) Load(data []byte, filename string, opts table.LoadOptions) (*table.Table, error) {
	if err := l.checkSize(int64(len(data)), filename); err != nil {
		return nil, err
	}

	switch ext := normalizeExt(filename); ext {
	case ".csv":
		return parseCSV(data, opts)
	case ".xls", ".xlsx":
		return parseExcel(data, opts)
	default:
		return nil, core.NewUnsupportedFormatError(ext)
	}
}

// ListSheets enumerates the sheet names of a spreadsheet upload without
// parsing any cell data. Used to drive sheet selection before the full load.
func (l *Loader) ListSheets(data []byte, filename string) ([]string, error) {
	if err := l.checkSize(int64(len(data)), filename); err != nil {
		return nil, err
	}

	switch ext := normalizeExt(filename); ext {
	case ".xls", ".xlsx":
		return listSheets(data)
	default:
		return nil, core.NewUnsupportedFormatError(ext)
	}
}

// IsSpreadsheet reports whether the filename points at a multi-sheet capable
// format.
func IsSpreadsheet(filename string) bool {
	ext := normalizeExt(filename)
	return ext == ".xls" || ext == ".xlsx"
}

// IsSupported reports whether the extension is one the loader accepts.
func IsSupported(filename string) bool {
	switch normalizeExt(filename) {
	case ".csv", ".xls", ".xlsx":
		return true
	}
	return false
}

func (l *Loader) checkSize(size int64, filename string) error {
	if size == 0 {
		return errors.ParseError("file is empty: "+filename, nil)
	}
	if l.config.MaxFileSize > 0 && size > l.config.MaxFileSize {
		return core.ErrFileTooLarge
	}
	return nil
}

func normalizeExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
