// ABOUTME: MCP server setup for the local Polar store and Notion coaching.
// ABOUTME: Wraps the MCP server with storage and configuration access.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/polarsync/internal/config"
	"github.com/harperreed/polarsync/internal/notion"
	"github.com/harperreed/polarsync/internal/storage"
)

// Server wraps the MCP server with storage and config access.
type Server struct {
	mcpServer *mcp.Server
	store     *storage.DB
	cfg       *config.Config

	// newNotionClient builds the Notion client for the write tool.
	// Overridden in tests to point at a stub server.
	newNotionClient func() (*notion.Client, error)
}

// NewServer creates a new MCP server over the given store. The config
// supplies Notion credentials for the write tool.
func NewServer(store *storage.DB, cfg *config.Config) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "polarsync",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer:       mcpServer,
		store:           store,
		cfg:             cfg,
		newNotionClient: cfg.NotionClient,
	}

	s.registerTools()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
