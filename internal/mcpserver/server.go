// Package mcpserver exposes retrieval as an MCP tool so prompt layers can pull
// ranked passages without going through the REST API.
package mcpserver

import (
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/akolanti/CyberRAG/internal/config"
	"github.com/akolanti/CyberRAG/internal/rag"
	"github.com/akolanti/CyberRAG/pkg/logger_i"
)

var ErrMissingRagService = errors.New("rag service is required")

type Server struct {
	rag    rag.Service
	server *mcp.Server
	logger *logger_i.Logger
}

func NewServer(ragService rag.Service) (*Server, error) {
	if ragService == nil {
		return nil, ErrMissingRagService
	}

	impl := &mcp.Implementation{
		Name:    config.MCPServerName,
		Version: config.MCPServerVersion,
	}
	s := &Server{
		rag:    ragService,
		server: mcp.NewServer(impl, nil),
		logger: logger_i.NewLogger("MCP Server"),
	}
	s.registerTools()
	return s, nil
}

// Handler serves the streamable HTTP transport; it is mounted on the main router.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}
