package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/standardbeagle/idlocator/internal/types"
)

// SearchPersonResponse is the payload of a search_person result
type SearchPersonResponse struct {
	Results []types.MatchResult `json:"results"`
	Count   int                 `json:"count"`
}

// DatasetInfoResponse is the payload of a dataset_info result
type DatasetInfoResponse struct {
	Location    string `json:"location"`
	Records     int    `json:"records"`
	Fingerprint string `json:"fingerprint"`
	Reloads     int64  `json:"reloads"`
	Failures    int64  `json:"failures"`
	LastReload  string `json:"last_reload,omitempty"`

	Nicknames     int `json:"lexicon_nicknames"`
	Abbreviations int `json:"lexicon_abbreviations"`
}

// createJSONResponse creates a standardized JSON response for MCP tools
func createJSONResponse(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %v", err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(content)},
		},
	}, nil
}

// createErrorResponse creates a standardized error response for MCP tools
func createErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	errorData := map[string]interface{}{
		"success":   false,
		"error":     err.Error(),
		"operation": operation,
	}
	if help := getOperationHelp(operation); help != "" {
		errorData["help"] = help
	}

	response, marshalErr := createJSONResponse(errorData)
	if marshalErr != nil {
		return nil, marshalErr
	}

	// Tool failures go in the result with IsError set, not as protocol errors,
	// so the calling model can see them and retry.
	response.IsError = true

	return response, nil
}

func getOperationHelp(operation string) string {
	switch operation {
	case toolSearchPerson:
		return `Provide at least one of id_number, first_name, last_name, street, city, house_number. Example: {"first_name": "יוסי", "city": "ת\"א"}`
	}
	return ""
}
