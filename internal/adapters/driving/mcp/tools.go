package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// SearchInput is the input schema for the memory_search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"keywords to find in memory; all terms must appear"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results (default 10)"`
}

// SearchOutput is the output schema for the memory_search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput is one compact hit: excerpt only, never the body.
type SearchResultOutput struct {
	Path    string   `json:"path"`
	Title   string   `json:"title"`
	Date    string   `json:"date"`
	Excerpt string   `json:"excerpt,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Score   float64  `json:"score"`
}

// TimelineInput is the input schema for the memory_timeline tool.
type TimelineInput struct {
	Date   string `json:"date" jsonschema:"anchor date in YYYY-MM-DD form"`
	Window int    `json:"window,omitempty" jsonschema:"window size in days around the anchor (default 3)"`
}

// TimelineOutput is the output schema for the memory_timeline tool.
type TimelineOutput struct {
	Entries []TimelineEntryOutput `json:"entries"`
	Count   int                   `json:"count"`
}

// TimelineEntryOutput is one chronological entry.
type TimelineEntryOutput struct {
	Path     string `json:"path"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Excerpt  string `json:"excerpt,omitempty"`
	Position int    `json:"position"`
	Prev     string `json:"prev,omitempty"`
	Next     string `json:"next,omitempty"`
}

// GetInput is the input schema for the memory_get tool.
type GetInput struct {
	Path string `json:"path" jsonschema:"document path as returned by memory_search or memory_timeline"`
}

// GetOutput is the output schema for the memory_get tool.
type GetOutput struct {
	Path  string   `json:"path"`
	Title string   `json:"title"`
	Date  string   `json:"date"`
	Tags  []string `json:"tags,omitempty"`
	Body  string   `json:"body"`
}

// CompressInput is the input schema for the memory_compress tool.
type CompressInput struct {
	Text  string `json:"text" jsonschema:"conversation text to compress into insight records"`
	Title string `json:"title,omitempty" jsonschema:"optional session title"`
}

// CompressOutput is the output schema for the memory_compress tool.
type CompressOutput struct {
	Records []CompressRecordOutput `json:"records"`
	Count   int                    `json:"count"`
}

// CompressRecordOutput describes one produced record.
type CompressRecordOutput struct {
	Path     string `json:"path"`
	Category string `json:"category"`
	Title    string `json:"title"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "memory_search",
		Description: "Search memory files; returns compact results with excerpts only",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "memory_timeline",
		Description: "List memory documents chronologically around a date",
	}, s.handleTimeline)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "memory_get",
		Description: "Fetch the full content of one memory document by path",
	}, s.handleGet)

	if s.ports.Capture != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "memory_compress",
			Description: "Compress conversation text into categorized, searchable insight records",
		}, s.handleCompress)
	}
}

// handleSearch handles the memory_search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	results, err := s.ports.Search.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			Path:    results[i].Path,
			Title:   results[i].Title,
			Date:    results[i].Date.Format(dateLayout),
			Excerpt: results[i].Excerpt,
			Tags:    results[i].Tags,
			Score:   results[i].Score,
		}
	}

	return nil, output, nil
}

// handleTimeline handles the memory_timeline tool invocation.
func (s *Server) handleTimeline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TimelineInput,
) (*mcp.CallToolResult, TimelineOutput, error) {
	anchor, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, TimelineOutput{}, fmt.Errorf("unparsable date %q (want YYYY-MM-DD)", input.Date)
	}

	entries, err := s.ports.Search.Timeline(ctx, anchor, input.Window)
	if err != nil {
		return nil, TimelineOutput{}, err
	}

	output := TimelineOutput{
		Entries: make([]TimelineEntryOutput, len(entries)),
		Count:   len(entries),
	}
	for i := range entries {
		output.Entries[i] = TimelineEntryOutput{
			Path:     entries[i].Path,
			Title:    entries[i].Title,
			Date:     entries[i].Date.Format(dateLayout),
			Excerpt:  entries[i].Excerpt,
			Position: entries[i].Position,
			Prev:     entries[i].PrevPath,
			Next:     entries[i].NextPath,
		}
	}

	return nil, output, nil
}

// handleGet handles the memory_get tool invocation.
func (s *Server) handleGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetInput,
) (*mcp.CallToolResult, GetOutput, error) {
	doc, err := s.ports.Search.Get(ctx, input.Path)
	if err != nil {
		return nil, GetOutput{}, err
	}

	return nil, GetOutput{
		Path:  doc.Path,
		Title: doc.Title,
		Date:  doc.Date.Format(dateLayout),
		Tags:  doc.Tags,
		Body:  doc.Body,
	}, nil
}

// handleCompress handles the memory_compress tool invocation.
func (s *Server) handleCompress(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CompressInput,
) (*mcp.CallToolResult, CompressOutput, error) {
	records, err := s.ports.Capture.Compress(ctx, input.Text, input.Title)
	if err != nil {
		return nil, CompressOutput{}, err
	}

	output := CompressOutput{
		Records: make([]CompressRecordOutput, len(records)),
		Count:   len(records),
	}
	for i := range records {
		output.Records[i] = CompressRecordOutput{
			Path:     records[i].Path,
			Category: string(records[i].Category),
			Title:    records[i].Title,
		}
	}

	return nil, output, nil
}
