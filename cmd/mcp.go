package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"sift/internal/errs"
	"sift/internal/tools"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing grep, glob and read tools",
	Args:  cobra.NoArgs,
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	return mcpserver.ServeStdio(newMCPServer(e.svc))
}

func newMCPServer(svc *tools.Service) *mcpserver.MCPServer {
	s := mcpserver.NewMCPServer("sift", "1.0.0", mcpserver.WithToolCapabilities(false))

	s.AddTool(grepTool(), makeGrepHandler(svc))
	s.AddTool(globTool(), makeGlobHandler(svc))
	s.AddTool(readTool(), makeReadHandler(svc))
	return s
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// --- Tool schema builders ---

var readOnlyAnnotation = mcp.ToolAnnotation{
	ReadOnlyHint:    mcp.ToBoolPtr(true),
	DestructiveHint: mcp.ToBoolPtr(false),
	IdempotentHint:  mcp.ToBoolPtr(true),
	OpenWorldHint:   mcp.ToBoolPtr(false),
}

func grepTool() mcp.Tool {
	return mcp.NewTool("grep",
		mcp.WithDescription("Search file contents under a directory with a regular expression. Results are grouped by file, most recently modified first."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Regular expression (RE2 syntax) to search for"),
		),
		mcp.WithString("path",
			mcp.Description("Directory to search (default \".\")"),
		),
		mcp.WithString("include",
			mcp.Description(`Glob to filter files (e.g. "*.ts", "*.{ts,tsx}")`),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max matches to return (default 100, max %d)", tools.MaxSearchLimit)),
		),
	)
}

func globTool() mcp.Tool {
	return mcp.NewTool("glob",
		mcp.WithDescription("Find files by glob pattern. Supports ** and one {a,b} group. Returns paths relative to the directory, most recently modified first."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description(`Glob pattern, e.g. "**/*.go" or "src/*.{ts,tsx}"`),
		),
		mcp.WithString("path",
			mcp.Description("Directory to search from (default \".\")"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max files to return (default 100, max %d)", tools.MaxGlobLimit)),
		),
	)
}

func readTool() mcp.Tool {
	return mcp.NewTool("read",
		mcp.WithDescription("Read a window of lines from a text file. Line endings are preserved."),
		mcp.WithToolAnnotation(readOnlyAnnotation),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File to read"),
		),
		mcp.WithNumber("offset",
			mcp.Description("0-based line to start at (default 0)"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max lines to return (default 200, max %d)", tools.MaxReadLimit)),
		),
	)
}

// --- Handler factories ---

func makeGrepHandler(svc *tools.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := svc.Search(tools.SearchParams{
			Pattern: req.GetString("pattern", ""),
			Path:    req.GetString("path", "."),
			Include: req.GetString("include", ""),
			Limit:   req.GetInt("limit", 0),
		})
		return toolResult(resp, err)
	}
}

func makeGlobHandler(svc *tools.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := svc.Glob(tools.GlobParams{
			Pattern: req.GetString("pattern", ""),
			Path:    req.GetString("path", "."),
			Limit:   req.GetInt("limit", 0),
		})
		return toolResult(resp, err)
	}
}

func makeReadHandler(svc *tools.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		resp, err := svc.Read(tools.ReadParams{
			Path:   req.GetString("path", ""),
			Offset: req.GetInt("offset", 0),
			Limit:  req.GetInt("limit", 0),
		})
		return toolResult(resp, err)
	}
}

// toolResult encodes a successful response as JSON text. Every failure is a
// tool error carrying a single message; validation failures keep their own
// wording.
func toolResult(resp any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		if errs.IsValidation(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
