package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerLogMoodTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerWeeklyReportTool(srv, svc)
	registerListMoodsTool(srv, svc)
}

func registerLogMoodTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"log_mood",
		mcp.WithDescription("Record how the user feels right now."),
		mcp.WithString("mood",
			mcp.Required(),
			mcp.Description("Mood label, short name (happy, calm, ...) or 1-based palette position."),
		),
		mcp.WithString("note",
			mcp.Description("Optional note to store with the entry."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Mood string `json:"mood"`
			Note string `json:"note"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.LogMood(ctx, args.Mood, args.Note)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List mood entries, newest first."),
		mcp.WithString("window",
			mcp.Description("Optional look-back window such as 1w, 3d or 1w2d."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of entries to return. Zero returns all."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		window := request.GetString("window", "")
		limit := request.GetInt("limit", 0)

		entries, err := svc.ListEntries(ctx, window, limit)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"window":  window,
			"entries": entries,
			"count":   len(entries),
		})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by identifier."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to fetch."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_entry",
		mcp.WithDescription("Change the mood or note of an entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to update."),
		),
		mcp.WithString("mood",
			mcp.Description("Replacement mood; omit to keep the current one."),
		),
		mcp.WithString("note",
			mcp.Description("Replacement note; an empty string clears it, omit to keep it."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts := UpdateEntryOptions{ID: id}
		args := request.GetArguments()
		if v, ok := args["mood"].(string); ok {
			opts.Mood = &v
		}
		if v, ok := args["note"].(string); ok {
			opts.Note = &v
		}
		if opts.Mood == nil && opts.Note == nil {
			return mcp.NewToolResultError("nothing to update: set mood or note"), nil
		}

		dto, err := svc.UpdateEntry(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry. Deleting a missing entry succeeds without effect."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := requireID(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		deleted, err := svc.DeleteEntry(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"id":      id,
			"deleted": deleted,
		})
	})
}

func registerWeeklyReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"weekly_report",
		mcp.WithDescription("Count entries per mood for the current week."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		report, err := svc.WeeklyReport(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(report)
	})
}

func registerListMoodsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_moods",
		mcp.WithDescription("List the selectable moods in palette order."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		moods := svc.ListMoods()
		return toJSONResult(map[string]any{
			"moods": moods,
			"count": len(moods),
		})
	})
}

func requireID(request mcp.CallToolRequest) (int64, error) {
	raw, err := request.RequireString("id")
	if err != nil {
		return 0, err
	}
	return ParseID(raw)
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
