package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sift/internal/tools"
)

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"x.txt":     "foo\nbar\n",
		"y.txt":     "foo foo\n",
		"sub/z.go":  "package z\n",
		"notes.txt": "l0\nl1\nl2\n",
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

// run executes the root command with args and resets flag state afterwards.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Cleanup(func() {
		flagJSON, flagInclude, flagGrepLimit, flagGlobLimit = false, "", 0, 0
		flagOffset, flagReadLimit = 0, 0
		flagConfig, flagLogLevel, flagHistory = "", "", ""
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestGrepCommand_Text(t *testing.T) {
	root := fixture(t)
	out, err := run(t, "grep", "foo", root)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Found 2 matches\n"))
	assert.Contains(t, out, filepath.Join(root, "x.txt")+":\n  Line 1: foo")
}

func TestGrepCommand_JSON(t *testing.T) {
	root := fixture(t)
	out, err := run(t, "grep", "foo", root, "--json", "--limit", "1")
	require.NoError(t, err)

	var resp tools.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.True(t, resp.Truncated)
	assert.Equal(t, root, resp.Path)
}

func TestGrepCommand_NotADirectory(t *testing.T) {
	root := fixture(t)
	file := filepath.Join(root, "x.txt")
	out, err := run(t, "grep", "foo", file)
	require.Error(t, err)
	assert.Equal(t, "Not a directory: "+file, err.Error())
	assert.NotContains(t, out, "Found")
}

func TestGlobCommand_JSON(t *testing.T) {
	root := fixture(t)
	out, err := run(t, "glob", "**/*.go", root, "--json")
	require.NoError(t, err)

	var resp tools.GlobResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, []string{filepath.Join("sub", "z.go")}, resp.Matches)
	assert.Equal(t, 1, resp.Count)
}

func TestReadCommand(t *testing.T) {
	root := fixture(t)
	out, err := run(t, "read", filepath.Join(root, "notes.txt"), "--offset", "1", "--limit", "1")
	require.NoError(t, err)
	assert.Equal(t, "l1\n", out)
}

func TestHistoryCommand(t *testing.T) {
	root := fixture(t)
	db := filepath.Join(t.TempDir(), "h.db")

	_, err := run(t, "grep", "foo", root, "--history", db)
	require.NoError(t, err)
	_, err = run(t, "glob", "*.txt", root, "--history", db)
	require.NoError(t, err)

	out, err := run(t, "history", "--history", db)
	require.NoError(t, err)
	assert.Contains(t, out, "grep")
	assert.Contains(t, out, "glob")
	assert.Contains(t, out, "*.txt")
}

func TestHistoryCommand_Disabled(t *testing.T) {
	_, err := run(t, "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "history is disabled")
}

func callTool(t *testing.T, handler func() (*mcp.CallToolResult, error)) (string, bool) {
	t.Helper()
	res, err := handler()
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func newRequest(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestMCPHandlers(t *testing.T) {
	root := fixture(t)
	svc := &tools.Service{}

	t.Run("grep", func(t *testing.T) {
		text, isErr := callTool(t, func() (*mcp.CallToolResult, error) {
			return makeGrepHandler(svc)(t.Context(), newRequest("grep", map[string]any{
				"pattern": "foo", "path": root, "include": "x.*",
			}))
		})
		require.False(t, isErr)
		var resp tools.SearchResponse
		require.NoError(t, json.Unmarshal([]byte(text), &resp))
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("grep validation error", func(t *testing.T) {
		text, isErr := callTool(t, func() (*mcp.CallToolResult, error) {
			return makeGrepHandler(svc)(t.Context(), newRequest("grep", map[string]any{"path": root}))
		})
		assert.True(t, isErr)
		assert.Equal(t, "pattern is required", text)
	})

	t.Run("glob", func(t *testing.T) {
		text, isErr := callTool(t, func() (*mcp.CallToolResult, error) {
			return makeGlobHandler(svc)(t.Context(), newRequest("glob", map[string]any{
				"pattern": "*.{txt,go}", "path": root, "limit": float64(2),
			}))
		})
		require.False(t, isErr)
		var resp tools.GlobResponse
		require.NoError(t, json.Unmarshal([]byte(text), &resp))
		assert.Equal(t, 2, resp.Count)
		assert.True(t, resp.Truncated)
	})

	t.Run("read", func(t *testing.T) {
		text, isErr := callTool(t, func() (*mcp.CallToolResult, error) {
			return makeReadHandler(svc)(t.Context(), newRequest("read", map[string]any{
				"path": filepath.Join(root, "notes.txt"), "offset": float64(5),
			}))
		})
		require.False(t, isErr)
		var resp tools.ReadResponse
		require.NoError(t, json.Unmarshal([]byte(text), &resp))
		assert.Equal(t, 0, resp.LinesReturned)
		assert.Equal(t, "", resp.Content)
		assert.Equal(t, 3, resp.TotalLines)
	})

	t.Run("read missing file", func(t *testing.T) {
		missing := filepath.Join(root, "missing")
		text, isErr := callTool(t, func() (*mcp.CallToolResult, error) {
			return makeReadHandler(svc)(t.Context(), newRequest("read", map[string]any{"path": missing}))
		})
		assert.True(t, isErr)
		assert.Equal(t, "File not found: "+missing, text)
	})
}

func TestNewMCPServerRegistersTools(t *testing.T) {
	s := newMCPServer(&tools.Service{})
	require.NotNil(t, s)
	names := []string{grepTool().Name, globTool().Name, readTool().Name}
	assert.Equal(t, []string{"grep", "glob", "read"}, names)
}
