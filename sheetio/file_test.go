package sheetio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.json":     FormatJSON,
		"a.yaml":     FormatYAML,
		"dir/a.YML":  FormatYAML,
		"a.csv":      FormatCSV,
		"a.xlsx":     FormatXLSX,
		"report.PDF": FormatPDF,
	}
	for path, want := range tests {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatOf("a.txt")
	assert.ErrorContains(t, err, "unsupported file format")
	_, err = FormatOf("noext")
	assert.Error(t, err)
}

func TestSaveFile_LoadFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := sampleSheet(t)
	for _, name := range []string{"s.json", "s.yaml", "s.csv", "s.xlsx"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, SaveFile(path, src))

			got, err := LoadFile(path)
			require.NoError(t, err)
			assertSameValues(t, src, got)
		})
	}
}

func TestSaveFile_PDFCannotBeLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.pdf")
	require.NoError(t, SaveFile(path, sampleSheet(t)))

	_, err := LoadFile(path)
	assert.ErrorContains(t, err, "cannot import pdf files")
}

func TestSaveFile_RemovesPartialOutput(t *testing.T) {
	colors := NewColors(2, 3)
	colors.Set(0, 0, "nope")
	path := filepath.Join(t.TempDir(), "s.xlsx")

	err := SaveFile(path, sampleSheet(t), WithColors(colors))
	require.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveFile_UnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.txt")
	assert.Error(t, SaveFile(path, sampleSheet(t)))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
