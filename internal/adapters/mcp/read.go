package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"funkit/internal/application"
	"funkit/internal/domain"
	"funkit/internal/ports"
)

// RegisterReadTools adds all read-only document tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, store ports.DocumentStore) {
	graph := application.NewDeriver(store)
	s.AddTool(getTool(), getHandler(store))
	s.AddTool(listTool(), listHandler(store))
	s.AddTool(scanTool(), scanHandler(store))
	s.AddTool(childrenTool(), childrenHandler(graph))
	s.AddTool(rootsTool(), rootsHandler(graph))
}

// --- get_document ---

func getTool() mcp.Tool {
	return mcp.NewTool("get_document",
		mcp.WithDescription("Read a document by id. Returns the title and body; binary documents return a size placeholder instead of content."),
		mcp.WithNumber("id",
			mcp.Description("Document id"),
			mcp.Required(),
		),
	)
}

func getHandler(store ports.DocumentStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return toolError(fmt.Errorf("id is required"))
		}

		doc, err := store.Get(id)
		if err != nil {
			return toolError(err)
		}
		if doc == nil {
			return toolError(fmt.Errorf("no document with id %d", id))
		}

		body := doc.Body
		if doc.IsBinary() {
			body = doc.Preview()
		}
		return mcp.NewToolResultText(fmt.Sprintf("#%d %s\n\n%s", doc.ID, doc.DisplayTitle(), body)), nil
	}
}

// --- list_documents ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_documents",
		mcp.WithDescription("List all documents with id, title and a one-line preview."),
	)
}

func listHandler(store ports.DocumentStore) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := store.Index()
		if err != nil {
			return toolError(err)
		}
		if len(entries) == 0 {
			return mcp.NewToolResultText("No documents."), nil
		}

		var sb strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&sb, "%d  %s  %s\n", e.ID, e.Title, e.Description)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- scan ---

func scanTool() mcp.Tool {
	return mcp.NewTool("scan",
		mcp.WithDescription("List the [label](doc:ID) references in a document's body, in order of appearance."),
		mcp.WithNumber("id",
			mcp.Description("Document id to scan"),
			mcp.Required(),
		),
	)
}

func scanHandler(store ports.DocumentStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return toolError(fmt.Errorf("id is required"))
		}

		doc, err := store.Get(id)
		if err != nil {
			return toolError(err)
		}
		if doc == nil {
			return toolError(fmt.Errorf("no document with id %d", id))
		}
		if doc.IsBinary() {
			return mcp.NewToolResultText("Binary document, no references."), nil
		}

		refs := domain.Scan(doc.Body)
		if len(refs) == 0 {
			return mcp.NewToolResultText("No references."), nil
		}

		var sb strings.Builder
		for _, r := range refs {
			fmt.Fprintf(&sb, "%s → %d (chars %d-%d)\n", r.Label, r.TargetID, r.Start, r.End)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- children ---

func childrenTool() mcp.Tool {
	return mcp.NewTool("children",
		mcp.WithDescription("List a document's referenced children, deduplicated in order of first occurrence. Unresolvable targets are marked (missing)."),
		mcp.WithNumber("id",
			mcp.Description("Parent document id"),
			mcp.Required(),
		),
	)
}

func childrenHandler(graph *application.Deriver) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return toolError(fmt.Errorf("id is required"))
		}

		children, err := graph.Children(id)
		if err != nil {
			return toolError(err)
		}
		if len(children) == 0 {
			return mcp.NewToolResultText("No children."), nil
		}

		var sb strings.Builder
		for _, c := range children {
			fmt.Fprintf(&sb, "%d  %s\n", c.ID, c.Title)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- roots ---

func rootsTool() mcp.Tool {
	return mcp.NewTool("roots",
		mcp.WithDescription("List root documents: those referenced by no other document. When every document is referenced, all documents are listed."),
	)
}

func rootsHandler(graph *application.Deriver) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// Each call reflects the current store state.
		graph.Refresh()
		ids, err := graph.Roots(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(ids) == 0 {
			return mcp.NewToolResultText("No documents."), nil
		}

		var sb strings.Builder
		for _, id := range ids {
			desc := graph.Describe(id)
			fmt.Fprintf(&sb, "%d  %s\n", desc.ID, desc.Title)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
