// ABOUTME: MCP tool implementations over sessions, metrics, and weekly entries.
// ABOUTME: Read tools serve the local store; the write tool targets Notion.
package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/polarsync/internal/models"
	"github.com/harperreed/polarsync/internal/notion"
)

func (s *Server) registerTools() {
	// get_recent_sessions
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_recent_sessions",
		Description: "Return most recent training sessions (runs) from the local store",
	}, s.handleGetRecentSessions)

	// get_recent_metrics
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_recent_metrics",
		Description: "Return recent daily metrics (hrv, rhr, vo2, weight, sleep)",
	}, s.handleGetRecentMetrics)

	// write_week_entry
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "write_week_entry",
		Description: "Write weekly running progress and coaching data to Notion, creating or updating the week's page",
	}, s.handleWriteWeekEntry)
}

// Tool input/output types

type getRecentSessionsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Number of sessions to return (1-100, default 10)"`
}

type sessionOutput struct {
	SessionID    string   `json:"session_id"`
	TsStart      string   `json:"ts_start"`
	TsEnd        *string  `json:"ts_end"`
	Sport        string   `json:"sport"`
	DistanceM    float64  `json:"distance_m"`
	DurationS    float64  `json:"duration_s"`
	Kcal         float64  `json:"kcal"`
	AvgHR        *int     `json:"avg_hr"`
	MaxHR        *int     `json:"max_hr"`
	Device       string   `json:"device"`
	TrainingLoad *float64 `json:"training_load"`
}

type getRecentMetricsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Number of days to return (1-60, default 14)"`
}

type metricDayOutput struct {
	Date       string   `json:"date"`
	RestingHR  *float64 `json:"resting_hr"`
	HRVRMSSD   *float64 `json:"hrv_rmssd"`
	VO2Max     *float64 `json:"vo2max"`
	WeightKG   *float64 `json:"weight_kg"`
	SleepHours *float64 `json:"sleep_hours"`
}

type writeWeekEntryInput struct {
	Week           string   `json:"week" jsonschema:"Week identifier (e.g. \"Week of 2025-11-04\")"`
	Status         string   `json:"status,omitempty" jsonschema:"Status: Not started / In progress / Done (Planning, In Progress, Completed are mapped), defaults to In Progress"`
	WeeklyGoal     string   `json:"weekly_goal,omitempty" jsonschema:"Main goal for the week"`
	ProgressNotes  string   `json:"progress_notes,omitempty" jsonschema:"Progress updates and reflections"`
	ActionItems    string   `json:"action_items,omitempty" jsonschema:"Action items, comma or newline separated"`
	DistanceKM     *float64 `json:"distance_km,omitempty" jsonschema:"Total distance run this week in kilometers"`
	SessionsCount  *int     `json:"sessions_count,omitempty" jsonschema:"Number of running sessions this week"`
	NextWeekFocus  string   `json:"next_week_focus,omitempty" jsonschema:"What to focus on next week"`
	WeekStartDate  string   `json:"week_start_date,omitempty" jsonschema:"Week start date (YYYY-MM-DD)"`
	DatabaseID     string   `json:"database_id,omitempty" jsonschema:"Notion database ID, uses config if not provided"`
	UpdateExisting *bool    `json:"update_existing,omitempty" jsonschema:"Update the week's existing page instead of creating a duplicate (default true)"`
}

// Tool handlers

func (s *Server) handleGetRecentSessions(ctx context.Context, req *mcp.CallToolRequest, input getRecentSessionsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit == 0 {
		input.Limit = 10
	}
	if input.Limit < 1 || input.Limit > 100 {
		return nil, nil, fmt.Errorf("limit must be between 1 and 100")
	}

	sessions, err := s.store.ListSessions(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	out := make([]sessionOutput, len(sessions))
	for i, sess := range sessions {
		out[i] = sessionOutput{
			SessionID:    sess.SessionID,
			TsStart:      sess.TsStart,
			TsEnd:        sess.TsEnd,
			Sport:        sess.Sport,
			DistanceM:    sess.DistanceM,
			DurationS:    sess.DurationS,
			Kcal:         sess.Kcal,
			AvgHR:        sess.AvgHR,
			MaxHR:        sess.MaxHR,
			Device:       sess.Device,
			TrainingLoad: sess.TrainingLoad,
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetRecentMetrics(ctx context.Context, req *mcp.CallToolRequest, input getRecentMetricsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit == 0 {
		input.Limit = 14
	}
	if input.Limit < 1 || input.Limit > 60 {
		return nil, nil, fmt.Errorf("limit must be between 1 and 60")
	}

	days, err := s.store.ListMetricDays(input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list metrics: %w", err)
	}

	out := make([]metricDayOutput, len(days))
	for i, d := range days {
		out[i] = metricDayOutput{
			Date:       d.Date,
			RestingHR:  d.RestingHR,
			HRVRMSSD:   d.HRVRMSSD,
			VO2Max:     d.VO2Max,
			WeightKG:   d.WeightKG,
			SleepHours: d.SleepHours,
		}
	}
	return nil, out, nil
}

func (s *Server) handleWriteWeekEntry(ctx context.Context, req *mcp.CallToolRequest, input writeWeekEntryInput) (*mcp.CallToolResult, notion.UpsertResult, error) {
	if input.Week == "" {
		return nil, notion.UpsertResult{}, fmt.Errorf("week is required")
	}

	client, err := s.newNotionClient()
	if err != nil {
		return nil, notion.UpsertResult{}, err
	}

	databaseID := input.DatabaseID
	if databaseID == "" {
		databaseID = s.cfg.NotionRunningDBID
	}
	if databaseID == "" {
		return nil, notion.UpsertResult{}, fmt.Errorf("notion running database ID not configured: set notion_running_db_id in the config file or provide database_id")
	}

	entry := models.WeekEntry{
		Week:        input.Week,
		Status:      input.Status,
		ActionItems: notion.SplitActionItems(input.ActionItems),
	}
	if entry.Status == "" {
		entry.Status = "In Progress"
	}
	if input.WeeklyGoal != "" {
		entry.Goal = &input.WeeklyGoal
	}
	if input.ProgressNotes != "" {
		entry.Notes = &input.ProgressNotes
	}
	entry.DistanceKM = input.DistanceKM
	entry.SessionCount = input.SessionsCount
	if input.NextWeekFocus != "" {
		entry.NextFocus = &input.NextWeekFocus
	}
	if input.WeekStartDate != "" {
		entry.StartDate = &input.WeekStartDate
	}

	updateExisting := true
	if input.UpdateExisting != nil {
		updateExisting = *input.UpdateExisting
	}

	// Write failures come back inside the result, not as a tool error, so
	// the caller sees which week failed and why.
	result := notion.UpsertWeek(ctx, client, databaseID, entry, updateExisting)
	return nil, result, nil
}
