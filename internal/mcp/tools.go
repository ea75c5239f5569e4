package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"corpussearch/internal/query"
)

// SearchInput is the input schema shared by the search tools.
type SearchInput struct {
	Query    string `json:"query" jsonschema:"the search query"`
	NResults int    `json:"n_results,omitempty" jsonschema:"number of results to return (default 10)"`
}

// SearchOutput is the output schema shared by the search tools.
type SearchOutput struct {
	Results []query.SearchResult `json:"results"`
	Count   int                  `json:"count"`
}

// registerTools registers the per-corpus search tools with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_chat_archive",
		Description: "Search archived chat conversations related to the query. Community chatter is not a reliable source of information, but it can surface answers that never made it into the documentation or codebase.",
	}, s.searchHandler("chat"))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_documentation",
		Description: "Search the documentation corpus related to the query. Use this tool to find answers to questions covered in the documentation.",
	}, s.searchHandler("docs"))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_codebase",
		Description: "Search the indexed source corpus for code related to the query. Use this tool to find code examples, functions or classes relevant to your query.",
	}, s.searchHandler("code"))
}

// searchHandler builds the tool handler for one corpus.
func (s *Server) searchHandler(corpus string) func(context.Context, *mcp.CallToolRequest, SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
		n := input.NResults
		if n <= 0 {
			n = query.DefaultResults
		}

		results, err := s.queryService.Search(ctx, corpus, input.Query, n)
		if err != nil {
			return nil, SearchOutput{}, err
		}

		result := &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: renderResults(results)},
			},
		}
		return result, SearchOutput{Results: results, Count: len(results)}, nil
	}
}

// renderResults flattens results into a text block, one result per
// paragraph prefixed with its similarity score.
func renderResults(results []query.SearchResult) string {
	if len(results) == 0 {
		return "No results found."
	}
	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, fmt.Sprintf("SIMILARITY: %g %s", r.Score, r.Content))
	}
	return strings.Join(blocks, "\n\n")
}
