package history

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleExport = `[
  {
    "header": "YouTube",
    "title": "Watched Go Concurrency Patterns",
    "titleUrl": "https://www.youtube.com/watch?v=f6kdp27TYZs",
    "subtitles": [{"name": "Google for Developers", "url": "https://www.youtube.com/channel/x"}],
    "time": "2024-06-09T15:00:00.123Z",
    "products": ["YouTube"]
  },
  {"header": "YouTube", "title": "Watched a video that has been removed", "time": "2024-06-08T10:00:00Z"},
  {"header": "YouTube", "time": "2024-06-08T10:00:00Z"},
  {"header": "YouTube", "title": "Watched No Time"},
  {"header": "YouTube", "title": "Watched Bad Time", "time": "sometime"},
  "not an object",
  {"title": "Watched Offset", "time": "2024-06-07T09:00:00+09:00", "subtitles": [{"name": "Tokyo"}]}
]`

func TestDecodeExport(t *testing.T) {
	export, err := DecodeExport(strings.NewReader(sampleExport))
	require.NoError(t, err)

	require.Len(t, export.Records, 3)
	assert.Equal(t, 4, export.Skipped)

	assert.Equal(t, "Go Concurrency Patterns", export.Records[0].Title)
	assert.Equal(t, "Google for Developers", export.Records[0].Channel)
	assert.Equal(t, "a video that has been removed", export.Records[1].Title)
	assert.Equal(t, UnknownChannel, export.Records[1].Channel)
	assert.Equal(t, "Offset", export.Records[2].Title)
	assert.Equal(t, "Tokyo", export.Records[2].Channel)
}

func TestDecodeExportNotArray(t *testing.T) {
	_, err := DecodeExport(strings.NewReader(`{"title": "Watched Foo"}`))
	assert.ErrorIs(t, err, ErrNotArray)
}

func TestDecodeExportInvalidJSON(t *testing.T) {
	_, err := DecodeExport(strings.NewReader(`[{"title": `))
	assert.Error(t, err)
}

func TestDecodeExportEmpty(t *testing.T) {
	export, err := DecodeExport(strings.NewReader(`[]`))
	require.NoError(t, err)
	assert.Empty(t, export.Records)
	assert.Zero(t, export.Skipped)
}

func TestLoadExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch-history.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleExport), 0o644))

	export, err := LoadExport(path)
	require.NoError(t, err)
	assert.Len(t, export.Records, 3)
}

func TestLoadExportMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := LoadExport(path)
	require.Error(t, err)

	var exportErr *ExportError
	require.True(t, errors.As(err, &exportErr))
	assert.Equal(t, path, exportErr.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "history: load ")
}

func TestLoadExportMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`"just a string"`), 0o644))

	_, err := LoadExport(path)
	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.ErrorIs(t, err, ErrNotArray)
}
