// ABOUTME: Session upsert and query operations for SQLite storage.
// ABOUTME: Re-importing a session ID fully overwrites the row (last write wins).
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/polarsync/internal/models"
)

// UpsertSession stores a session, fully overwriting any existing row with
// the same session_id. Sessions without an identity are rejected.
func (d *DB) UpsertSession(s *models.Session) error {
	return upsertSession(d.db, s)
}

// UpsertSession stores a session within the transaction.
func (t *Tx) UpsertSession(s *models.Session) error {
	return upsertSession(t.tx, s)
}

func upsertSession(q execer, s *models.Session) error {
	if s.SessionID == "" {
		return fmt.Errorf("upsert session: empty session_id")
	}

	query := `
		INSERT INTO sessions (session_id, ts_start, ts_end, sport,
		                      distance_m, duration_s, kcal, avg_hr, max_hr,
		                      device, training_load)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
		  ts_start=excluded.ts_start,
		  ts_end=excluded.ts_end,
		  sport=excluded.sport,
		  distance_m=excluded.distance_m,
		  duration_s=excluded.duration_s,
		  kcal=excluded.kcal,
		  avg_hr=excluded.avg_hr,
		  max_hr=excluded.max_hr,
		  device=excluded.device,
		  training_load=excluded.training_load
	`
	_, err := q.Exec(query,
		s.SessionID,
		s.TsStart,
		s.TsEnd,
		s.Sport,
		s.DistanceM,
		s.DurationS,
		s.Kcal,
		s.AvgHR,
		s.MaxHR,
		s.Device,
		s.TrainingLoad,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// ListSessions returns the most recent sessions ordered by start time
// descending. A limit of 0 returns everything.
func (d *DB) ListSessions(limit int) ([]*models.Session, error) {
	query := `
		SELECT session_id, ts_start, ts_end, sport,
		       distance_m, duration_s, kcal, avg_hr, max_hr,
		       device, training_load
		FROM sessions
		ORDER BY ts_start DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// GetSession retrieves one session by its vendor id.
func (d *DB) GetSession(sessionID string) (*models.Session, error) {
	query := `
		SELECT session_id, ts_start, ts_end, sport,
		       distance_m, duration_s, kcal, avg_hr, max_hr,
		       device, training_load
		FROM sessions
		WHERE session_id = ?
	`
	rows, err := d.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("get session: %w", err)
		}
		return nil, fmt.Errorf("not found: %s", sessionID)
	}
	return scanSession(rows)
}

// WeekSummary holds derived totals for one calendar week of sessions.
type WeekSummary struct {
	StartDate  string
	DistanceKM float64
	Sessions   int
}

// SummarizeWeek computes total distance and session count for the seven
// days starting at startDate (YYYY-MM-DD). Dates are compared against the
// 10-character prefix of ts_start.
func (d *DB) SummarizeWeek(startDate string) (*WeekSummary, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, fmt.Errorf("summarize week: invalid start date %q", startDate)
	}
	endDate := start.AddDate(0, 0, 6).Format("2006-01-02")

	query := `
		SELECT COALESCE(SUM(distance_m), 0), COUNT(*)
		FROM sessions
		WHERE substr(ts_start, 1, 10) BETWEEN ? AND ?
	`
	var distanceM float64
	var count int
	if err := d.db.QueryRow(query, startDate, endDate).Scan(&distanceM, &count); err != nil {
		return nil, fmt.Errorf("summarize week: %w", err)
	}

	return &WeekSummary{
		StartDate:  startDate,
		DistanceKM: distanceM / 1000.0,
		Sessions:   count,
	}, nil
}

func scanSession(rows *sql.Rows) (*models.Session, error) {
	var s models.Session
	var tsEnd sql.NullString
	var avgHR, maxHR sql.NullInt64
	var trainingLoad sql.NullFloat64

	err := rows.Scan(&s.SessionID, &s.TsStart, &tsEnd, &s.Sport,
		&s.DistanceM, &s.DurationS, &s.Kcal, &avgHR, &maxHR,
		&s.Device, &trainingLoad)
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}

	if tsEnd.Valid {
		s.TsEnd = &tsEnd.String
	}
	if avgHR.Valid {
		v := int(avgHR.Int64)
		s.AvgHR = &v
	}
	if maxHR.Valid {
		v := int(maxHR.Int64)
		s.MaxHR = &v
	}
	if trainingLoad.Valid {
		s.TrainingLoad = &trainingLoad.Float64
	}

	return &s, nil
}
