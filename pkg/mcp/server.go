package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/adrianliechti/wingman-research/pkg/tool"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	impl *mcp.Implementation
	opts *mcp.ServerOptions

	tools []tool.Provider
}

func New(name, version string, tools []tool.Provider) (*Server, error) {
	s := &Server{
		impl: &mcp.Implementation{
			Name:    name,
			Version: version,
		},

		opts: &mcp.ServerOptions{
			KeepAlive: time.Second * 30,
		},

		tools: tools,
	}

	return s, nil
}

// Server builds an MCP server exposing every tool of the configured providers.
// Tool failures are reported as error results so the calling model sees them.
func (s *Server) Server(ctx context.Context) (*mcp.Server, error) {
	server := mcp.NewServer(s.impl, s.opts)

	for _, p := range s.tools {
		tools, err := p.Tools(ctx)

		if err != nil {
			return nil, err
		}

		for _, t := range tools {
			data, _ := json.Marshal(t.Parameters)

			schema := new(jsonschema.Schema)

			if err := schema.UnmarshalJSON(data); err != nil {
				return nil, err
			}

			server.AddTool(&mcp.Tool{
				Name:        t.Name,
				Description: t.Description,

				InputSchema: schema,
			}, toolHandler(p, t.Name))
		}
	}

	return server, nil
}

// Run serves the tools over stdin and stdout until the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	server, err := s.Server(ctx)

	if err != nil {
		return err
	}

	return server.Run(ctx, &mcp.StdioTransport{})
}

func toolHandler(p tool.Provider, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any

		if len(req.Params.Arguments) > 0 {
			json.Unmarshal(req.Params.Arguments, &args)
		}

		result, err := p.Execute(ctx, name, args)

		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,

				Content: []mcp.Content{
					&mcp.TextContent{
						Text: err.Error(),
					},
				},
			}, nil
		}

		switch v := result.(type) {
		case *mcp.CallToolResult:
			return v, nil

		case string:
			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: v,
					},
				},
			}, nil

		default:
			data, _ := json.Marshal(v)

			return &mcp.CallToolResult{
				Content: []mcp.Content{
					&mcp.TextContent{
						Text: string(data),
					},
				},
			}, nil
		}
	}
}
