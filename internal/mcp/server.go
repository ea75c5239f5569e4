// Package mcp exposes the corpus search operations as MCP tools for
// agent/LLM clients, served over stdio.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"corpussearch/internal/query"
)

// Version is the MCP server version.
const Version = "0.1.0"

// Server is the MCP server wrapping the query service.
type Server struct {
	queryService *query.Service
	server       *mcp.Server
}

// NewServer creates a new MCP server exposing the three search tools.
func NewServer(queryService *query.Service) (*Server, error) {
	if queryService == nil {
		return nil, fmt.Errorf("query service is required")
	}

	impl := &mcp.Implementation{
		Name:    "corpussearch",
		Version: Version,
	}

	s := &Server{
		queryService: queryService,
		server:       mcp.NewServer(impl, nil),
	}

	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
