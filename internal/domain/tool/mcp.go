// MCP wiring: exposes the registry through the Model Context Protocol.
package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/salesbridge/internal/version"
)

// ServerName is the MCP implementation name announced during the handshake.
const ServerName = "salesbridge"

// NewMCPServer builds the MCP server with one tool per registry definition.
// Tool handlers read the per-request credential from ctx, which the HTTP
// middleware populated from the forwarded headers.
func NewMCPServer(reg *Registry) *mcp.Server {
	srv := mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Version,
		},
		nil,
	)

	for _, def := range reg.Definitions() {
		def := def
		srv.AddTool(&mcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := parseArgs(req)
			if err != nil {
				return errResult(err.Error()), nil
			}
			out, err := reg.Dispatch(ctx, def.Name, args)
			if err != nil {
				// Tool-level failure, not a protocol failure: the error text
				// (taxonomy + CRM detail) travels inside the result envelope.
				return errResult(err.Error()), nil
			}
			return jsonResult(out), nil
		})
	}

	return srv
}

// jsonResult marshals data to JSON and returns it as tool result content.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("encode result: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result marking the call as failed.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments of the call.
func parseArgs(req *mcp.CallToolRequest) (Args, error) {
	if len(req.Params.Arguments) == 0 {
		return Args{}, nil
	}
	var args Args
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}
