// Package mcpserver exposes caret queries as an MCP tool.
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolName is the name of the registered tool.
const ToolName = "qualified_name"

// New builds an MCP server with the qualified_name tool registered. The
// protocol mapping lives here; handler does the work.
func New(handler *Handler, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"qualname",
		version,
		server.WithToolCapabilities(false),
	)

	tool := mcp.NewTool(ToolName,
		mcp.WithDescription("Returns the qualified name of the type, member or namespace at a caret position in a C#, Java or Go source file."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path of the source file, absolute or relative to the server's working directory"),
		),
		mcp.WithNumber("offset",
			mcp.Description("0-based character offset of the caret; use line and column instead when unknown"),
		),
		mcp.WithNumber("line",
			mcp.Description("0-based line of the caret"),
		),
		mcp.WithNumber("column",
			mcp.Description("0-based character column of the caret"),
		),
		mcp.WithBoolean("include_namespace",
			mcp.Description("Keep enclosing namespaces and packages in the name. Default: true"),
		),
	)

	s.AddTool(tool, handler.Handle)
	return s
}
