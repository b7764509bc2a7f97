// Package mcp serves person search over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	lcidebug "github.com/standardbeagle/idlocator/internal/debug"
	"github.com/standardbeagle/idlocator/internal/engine"
	"github.com/standardbeagle/idlocator/internal/version"
	"github.com/standardbeagle/idlocator/internal/watch"
)

const (
	serverName    = "idlocator-mcp-server"
	serverVersion = version.Version

	toolSearchPerson = "search_person"
	toolDatasetInfo  = "dataset_info"
)

type Server struct {
	engine  *engine.Engine
	dataset *watch.Dataset
	server  *mcp.Server
}

// NewServer creates an MCP server answering from eng. dataset backs the
// dataset_info tool and should be the engine's source.
func NewServer(eng *engine.Engine, dataset *watch.Dataset) *Server {
	s := &Server{
		engine:  eng,
		dataset: dataset,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    serverName,
			Version: serverVersion,
		}, nil),
	}
	s.registerTools()
	lcidebug.LogMCP("MCP server initialized\n")
	return s
}

func (s *Server) registerTools() {
	text := func(description string) *jsonschema.Schema {
		return &jsonschema.Schema{Type: "string", Description: description}
	}

	s.server.AddTool(&mcp.Tool{
		Name:        toolSearchPerson,
		Description: "Find person records by fuzzy matching on Hebrew or Latin names and addresses. Supply any subset of fields; id_number alone is an exact lookup. Every supplied field must match for a record to be returned. Results are ranked by a 0-100 score with the matching tier for each field.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"id_number":    text("National id number, exact match"),
				"first_name":   text("First name; nicknames, typos and phonetic variants match"),
				"last_name":    text("Last name"),
				"street":       text("Street name; abbreviations such as דר for דרך match"),
				"city":         text("City; abbreviations such as ת\"א match"),
				"house_number": text("House number; 12 matches 12א"),
				"use_phonetic": {
					Type:        "boolean",
					Description: "Enable phonetic tiers (default true)",
				},
				"max": {
					Type:        "integer",
					Description: "Maximum results",
				},
			},
		},
	}, s.handleSearchPerson)

	s.server.AddTool(&mcp.Tool{
		Name:        toolDatasetInfo,
		Description: "Report the loaded dataset and lexicon: location, record count, fingerprint, reload statistics and equivalence table sizes.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, s.handleDatasetInfo)
}

// recoverFromPanic turns a panicking handler into an error result
func (s *Server) recoverFromPanic(operation string, handler func() (*mcp.CallToolResult, error)) (result *mcp.CallToolResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			lcidebug.LogMCP("PANIC RECOVERED in %s: %v\n%s\n", operation, r, debug.Stack())
			result, err = createErrorResponse(operation, fmt.Errorf("internal error: %v", r))
		}
	}()
	return handler()
}

// Start serves over stdio until ctx is cancelled or the client disconnects
func (s *Server) Start(ctx context.Context) error {
	lcidebug.LogMCP("Starting MCP server with stdio transport\n")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Connect serves a single session over t
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
