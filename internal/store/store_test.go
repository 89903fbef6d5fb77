package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Record(Entry{
			Kind:      KindGrep,
			Pattern:   fmt.Sprintf("p%d", i),
			Path:      "/src",
			Include:   "*.go",
			Count:     i,
			Truncated: i == 2,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p2", got[0].Pattern)
	assert.True(t, got[0].Truncated)
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, KindGrep, got[0].Kind)
	assert.Equal(t, "*.go", got[0].Include)
	assert.NotEmpty(t, got[0].ID)
	assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))
	assert.Equal(t, "p1", got[1].Pattern)
}

func TestRecord_FillsDefaults(t *testing.T) {
	s := openTemp(t)
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Record(Entry{Kind: KindRead, Pattern: "main.go", Path: "main.go"}))

	got, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].ID, 36)
	assert.True(t, got[0].CreatedAt.Equal(fixed))
}

func TestMeta(t *testing.T) {
	s := openTemp(t)

	v, err := s.GetMeta("schema_version")
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, v)

	v, err = s.GetMeta("missing")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, s.SetMeta("k", "a"))
	require.NoError(t, s.SetMeta("k", "b"))
	v, err = s.GetMeta("k")
	require.NoError(t, err)
	assert.Equal(t, "b", v)
}

func TestReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(Entry{Kind: KindGlob, Pattern: "**/*.go", Path: "."}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, KindGlob, got[0].Kind)
}
