package main

import (
	"context"
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "funkit/internal/adapters/mcp"
	"funkit/internal/adapters/sqlite"
	"funkit/internal/config"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "funkit-mcp"})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("loading configuration", "err", err)
	}

	dbFlag := flag.String("db", cfg.DBPath, "path to the document database")
	flag.Parse()

	store, err := sqlite.Open(*dbFlag)
	if err != nil {
		logger.Fatal("opening store", "err", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"funkit-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, store)
	mcpadapter.RegisterWriteTools(mcpServer, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		logger.Fatal("serving", "err", err)
	}
}
