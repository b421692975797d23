package sheetio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/javajack/xlcalc"
)

// Format identifies a file format by its extension.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

// FormatOf maps a path's extension to a Format.
func FormatOf(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported file format %q", ext)
	}
}

// Load imports a sheet in the given format. PDF cannot be imported.
func Load(r io.Reader, format Format, opts ...xlcalc.Option) (*xlcalc.Sheet, error) {
	switch format {
	case FormatJSON:
		return LoadJSON(r, opts...)
	case FormatYAML:
		return LoadYAML(r, opts...)
	case FormatCSV:
		return LoadCSV(r, opts...)
	case FormatXLSX:
		return LoadXLSX(r, opts...)
	default:
		return nil, fmt.Errorf("cannot import %s files", format)
	}
}

// Write exports a sheet in the given format.
func Write(w io.Writer, sheet *xlcalc.Sheet, format Format, opts ...Option) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, sheet)
	case FormatYAML:
		return WriteYAML(w, sheet)
	case FormatCSV:
		return WriteCSV(w, sheet)
	case FormatXLSX:
		return WriteXLSX(w, sheet, opts...)
	case FormatPDF:
		return WritePDF(w, sheet, opts...)
	default:
		return fmt.Errorf("cannot export %s files", format)
	}
}

// LoadFile imports a sheet from path, choosing the format by extension.
func LoadFile(path string, opts ...xlcalc.Option) (*xlcalc.Sheet, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	sheet, err := Load(f, format, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}
	return sheet, nil
}

// SaveFile exports a sheet to path, choosing the format by extension. A
// partially written file is removed on failure.
func SaveFile(path string, sheet *xlcalc.Sheet, opts ...Option) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file %q: %w", path, err)
	}
	if err := Write(out, sheet, format, opts...); err != nil {
		out.Close()
		os.Remove(path)
		return fmt.Errorf("save %q: %w", path, err)
	}
	return out.Close()
}
