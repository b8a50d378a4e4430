// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the sessions and metrics tables.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		ts_start TEXT,
		ts_end TEXT,
		sport TEXT,
		distance_m REAL,
		duration_s REAL,
		kcal REAL,
		avg_hr INTEGER,
		max_hr INTEGER,
		device TEXT,
		training_load REAL
	);

	CREATE TABLE IF NOT EXISTS metrics (
		date TEXT PRIMARY KEY,
		resting_hr REAL,
		hrv_rmssd REAL,
		vo2max REAL,
		weight_kg REAL,
		sleep_hours REAL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(ts_start DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
