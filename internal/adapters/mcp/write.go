package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"funkit/internal/ports"
)

// RegisterWriteTools adds all mutating document tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, store ports.DocumentStore) {
	s.AddTool(createTool(), createHandler(store))
	s.AddTool(updateTool(), updateHandler(store))
	s.AddTool(appendTool(), appendHandler(store))
	s.AddTool(deleteTool(), deleteHandler(store))
}

// --- create_document ---

func createTool() mcp.Tool {
	return mcp.NewTool("create_document",
		mcp.WithDescription("Create a new text document. Reference other documents from the body with [label](doc:ID) markup."),
		mcp.WithString("title",
			mcp.Description("Document title"),
			mcp.Required(),
		),
		mcp.WithString("body",
			mcp.Description("Document body"),
		),
	)
}

func createHandler(store ports.DocumentStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title := req.GetString("title", "")
		if title == "" {
			return toolError(fmt.Errorf("title is required"))
		}
		body := req.GetString("body", "")

		id, err := store.Add(title, body)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Created document %d", id)), nil
	}
}

// --- update_document ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update_document",
		mcp.WithDescription("Replace the body of an existing text document."),
		mcp.WithNumber("id",
			mcp.Description("Document id"),
			mcp.Required(),
		),
		mcp.WithString("body",
			mcp.Description("New body"),
			mcp.Required(),
		),
	)
}

func updateHandler(store ports.DocumentStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return toolError(fmt.Errorf("id is required"))
		}

		if err := store.Update(id, req.GetString("body", "")); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Updated document %d", id)), nil
	}
}

// --- append_document ---

func appendTool() mcp.Tool {
	return mcp.NewTool("append_document",
		mcp.WithDescription("Append text to the end of an existing text document."),
		mcp.WithNumber("id",
			mcp.Description("Document id"),
			mcp.Required(),
		),
		mcp.WithString("text",
			mcp.Description("Text to append"),
			mcp.Required(),
		),
	)
}

func appendHandler(store ports.DocumentStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return toolError(fmt.Errorf("id is required"))
		}
		text := req.GetString("text", "")
		if text == "" {
			return toolError(fmt.Errorf("text is required"))
		}

		if err := store.Append(id, text); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Appended to document %d", id)), nil
	}
}

// --- delete_document ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete_document",
		mcp.WithDescription("Permanently delete a document. References to it from other documents become (missing)."),
		mcp.WithNumber("id",
			mcp.Description("Document id"),
			mcp.Required(),
		),
	)
}

func deleteHandler(store ports.DocumentStore) server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := int64(req.GetInt("id", 0))
		if id <= 0 {
			return toolError(fmt.Errorf("id is required"))
		}

		if err := store.Delete(id); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted document %d", id)), nil
	}
}
