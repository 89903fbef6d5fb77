package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift/internal/errs"
)

func write(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRead_Windows(t *testing.T) {
	p := write(t, "l0\nl1\nl2\nl3\nl4\n")

	tests := []struct {
		name     string
		offset   int
		limit    int
		content  string
		offOut   int
		returned int
	}{
		{name: "default window", offset: 0, limit: 0, content: "l0\nl1\nl2\nl3\nl4\n", returned: 5},
		{name: "middle", offset: 1, limit: 2, content: "l1\nl2\n", offOut: 1, returned: 2},
		{name: "clamped end", offset: 3, limit: 10, content: "l3\nl4\n", offOut: 3, returned: 2},
		{name: "negative offset", offset: -4, limit: 1, content: "l0\n", offOut: 0, returned: 1},
		{name: "offset at end", offset: 5, limit: 3, content: "", offOut: 5, returned: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Read(Request{Path: p, Offset: tt.offset, Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, 5, w.TotalLines)
			assert.Equal(t, tt.content, w.Content)
			assert.Equal(t, tt.offOut, w.Offset)
			assert.Equal(t, tt.returned, w.LinesReturned)
		})
	}
}

func TestRead_ScenarioD_OffsetPastEnd(t *testing.T) {
	p := write(t, "a\nb\nc\n")

	w, err := Read(Request{Path: p, Offset: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, w.TotalLines)
	assert.Equal(t, 0, w.LinesReturned)
	assert.Equal(t, "", w.Content)
	assert.Equal(t, 3, w.Offset)
}

func TestRead_PreservesLineEndings(t *testing.T) {
	p := write(t, "one\r\ntwo\rstill two\nlast")

	w, err := Read(Request{Path: p})
	require.NoError(t, err)
	assert.Equal(t, 3, w.TotalLines)
	assert.Equal(t, "one\r\ntwo\rstill two\nlast", w.Content)
}

func TestRead_EmptyFile(t *testing.T) {
	w, err := Read(Request{Path: write(t, "")})
	require.NoError(t, err)
	assert.Equal(t, 0, w.TotalLines)
	assert.Equal(t, 0, w.LinesReturned)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(Request{})
	assert.EqualError(t, err, "path is required")

	missing := filepath.Join(t.TempDir(), "missing.txt")
	_, err = Read(Request{Path: missing})
	assert.EqualError(t, err, "File not found: "+missing)
	assert.True(t, errs.IsValidation(err))

	dir := t.TempDir()
	_, err = Read(Request{Path: dir})
	assert.True(t, errs.IsValidation(err))
}
