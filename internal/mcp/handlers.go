package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/idlocator/internal/debug"
	"github.com/standardbeagle/idlocator/internal/store"
)

func (s *Server) handleSearchPerson(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(toolSearchPerson, func() (*mcp.CallToolResult, error) {
		var params SearchPersonParams
		if len(req.Params.Arguments) > 0 {
			if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
				return createErrorResponse(toolSearchPerson, fmt.Errorf("invalid parameters: %w", err))
			}
		}

		query := params.Query()
		results, err := s.engine.SearchRequired(ctx, query)
		if err != nil {
			debug.LogMCP("search_person failed: %v\n", err)
			return createErrorResponse(toolSearchPerson, err)
		}

		if params.Max > 0 && len(results) > params.Max {
			results = results[:params.Max]
		}

		debug.LogMCP("search_person returned %d results\n", len(results))
		return createJSONResponse(SearchPersonResponse{
			Results: results,
			Count:   len(results),
		})
	})
}

func (s *Server) handleDatasetInfo(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.recoverFromPanic(toolDatasetInfo, func() (*mcp.CallToolResult, error) {
		stats := s.dataset.GetStats()

		location := s.dataset.Location()
		if location == "" {
			location = store.SampleSource
		}

		info := DatasetInfoResponse{
			Location:   location,
			Records:    stats.Records,
			Reloads:    stats.Reloads,
			Failures:   stats.Failures,
			LastReload: formatTime(stats.LastReload),
		}
		info.Nicknames, info.Abbreviations = s.engine.Lexicon().Stats()
		if snapshot := s.dataset.Snapshot(); snapshot != nil {
			info.Fingerprint = fmt.Sprintf("%016x", snapshot.Fingerprint())
		}
		return createJSONResponse(info)
	})
}
