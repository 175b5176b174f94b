package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/moodlog/pkg/palette"
	"tableflip.dev/moodlog/pkg/viewmodel"
)

// Runner coordinates MCP server startup. The server speaks over stdio only.
type Runner struct {
	Coordinator *viewmodel.Coordinator
	Moods       palette.Palette
	Name        string
	Version     string
}

// Run starts the Model Context Protocol server on stdio.
func Run(ctx context.Context, coord *viewmodel.Coordinator, moods palette.Palette) error {
	r := Runner{
		Coordinator: coord,
		Moods:       moods,
		Name:        "mood",
		Version:     "dev",
	}
	return r.Do(ctx)
}

// NewServer builds the MCP server with every tool and resource registered.
func (r Runner) NewServer() (*server.MCPServer, error) {
	if r.Coordinator == nil {
		return nil, errors.New("mcp runner requires a coordinator")
	}
	name := r.Name
	if name == "" {
		name = "mood"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Log moods, browse and edit mood journal entries, and read the weekly mood report via MCP."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Coordinator, r.Moods)
	registerResources(srv, svc)
	registerTools(srv, svc)
	return srv, nil
}

// Do serves until stdin closes. Pending writes are applied before it returns.
func (r Runner) Do(ctx context.Context) error {
	srv, err := r.NewServer()
	if err != nil {
		return err
	}
	if err := server.ServeStdio(srv); err != nil {
		return err
	}
	return r.Coordinator.Flush(ctx)
}
