// ABOUTME: Sparse metric-day merge engine over the metrics table.
// ABOUTME: Field-level partial upserts plus forward propagation of latest values.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/polarsync/internal/models"
)

// UpsertMetricDay merges a partial update into the row for date, creating
// the row if needed. Only fields carried by the delta are written; a field
// that is nil in the delta retains whatever value is already stored. An
// existing non-nil value is therefore never nulled by a later merge.
func (d *DB) UpsertMetricDay(date string, delta models.MetricDelta) error {
	return upsertMetricDay(d.db, date, delta)
}

// UpsertMetricDay merges a partial update within the transaction.
func (t *Tx) UpsertMetricDay(date string, delta models.MetricDelta) error {
	return upsertMetricDay(t.tx, date, delta)
}

func upsertMetricDay(q execer, date string, delta models.MetricDelta) error {
	if date == "" {
		return fmt.Errorf("upsert metrics: empty date")
	}

	// Build the conflict clause dynamically so only supplied fields are
	// updated on an existing row.
	var updates []string
	var updateArgs []any
	add := func(column string, v *float64) {
		if v != nil {
			updates = append(updates, column+"=?")
			updateArgs = append(updateArgs, *v)
		}
	}
	add("resting_hr", delta.RestingHR)
	add("hrv_rmssd", delta.HRVRMSSD)
	add("vo2max", delta.VO2Max)
	add("weight_kg", delta.WeightKG)
	add("sleep_hours", delta.SleepHours)

	if len(updates) == 0 {
		_, err := q.Exec(
			`INSERT INTO metrics (date) VALUES (?) ON CONFLICT(date) DO NOTHING`,
			date,
		)
		if err != nil {
			return fmt.Errorf("upsert metrics: %w", err)
		}
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO metrics (date, resting_hr, hrv_rmssd, vo2max, weight_kg, sleep_hours)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET %s
	`, strings.Join(updates, ", "))

	args := []any{date, delta.RestingHR, delta.HRVRMSSD, delta.VO2Max, delta.WeightKG, delta.SleepHours}
	args = append(args, updateArgs...)

	if _, err := q.Exec(query, args...); err != nil {
		return fmt.Errorf("upsert metrics: %w", err)
	}
	return nil
}

// GetMetricDay retrieves one metric row by date.
func (d *DB) GetMetricDay(date string) (*models.MetricDay, error) {
	query := `
		SELECT date, resting_hr, hrv_rmssd, vo2max, weight_kg, sleep_hours
		FROM metrics
		WHERE date = ?
	`
	m, err := scanMetricDay(d.db.QueryRow(query, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("not found: %s", date)
		}
		return nil, err
	}
	return m, nil
}

// ListMetricDays returns the most recent metric rows ordered by date
// descending. A limit of 0 returns everything.
func (d *DB) ListMetricDays(limit int) ([]*models.MetricDay, error) {
	query := `
		SELECT date, resting_hr, hrv_rmssd, vo2max, weight_kg, sleep_hours
		FROM metrics
		ORDER BY date DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list metrics: %w", err)
	}
	defer rows.Close()

	var days []*models.MetricDay
	for rows.Next() {
		var m models.MetricDay
		var restingHR, hrvRMSSD, vo2max, weightKG, sleepHours sql.NullFloat64
		if err := rows.Scan(&m.Date, &restingHR, &hrvRMSSD, &vo2max, &weightKG, &sleepHours); err != nil {
			return nil, fmt.Errorf("scan metrics: %w", err)
		}
		assignNullable(&m, restingHR, hrvRMSSD, vo2max, weightKG, sleepHours)
		days = append(days, &m)
	}
	return days, rows.Err()
}

// propagatedColumns are the slowly-changing measurements whose last known
// value remains valid until superseded.
var propagatedColumns = []struct {
	column string
	delta  func(v float64) models.MetricDelta
}{
	{"weight_kg", func(v float64) models.MetricDelta { return models.MetricDelta{WeightKG: &v} }},
	{"resting_hr", func(v float64) models.MetricDelta { return models.MetricDelta{RestingHR: &v} }},
	{"vo2max", func(v float64) models.MetricDelta { return models.MetricDelta{VO2Max: &v} }},
}

// PropagateLatestMetrics copies the nearest earlier non-null value of each
// slowly-changing column forward onto the most recent date row when that
// row is missing it. It never overwrites a non-null value and never creates
// new rows; with no earlier value it is a no-op.
func (d *DB) PropagateLatestMetrics() error {
	for _, pc := range propagatedColumns {
		if err := d.propagateColumn(pc.column, pc.delta); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) propagateColumn(column string, delta func(v float64) models.MetricDelta) error {
	// column comes from the fixed propagatedColumns table, never from input.
	var latestDate string
	var latestValue sql.NullFloat64
	err := d.db.QueryRow(
		fmt.Sprintf("SELECT date, %s FROM metrics ORDER BY date DESC LIMIT 1", column),
	).Scan(&latestDate, &latestValue)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("propagate %s: %w", column, err)
	}
	if latestValue.Valid {
		return nil
	}

	var source float64
	err = d.db.QueryRow(
		fmt.Sprintf("SELECT %s FROM metrics WHERE %s IS NOT NULL ORDER BY date DESC LIMIT 1", column, column),
	).Scan(&source)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("propagate %s: %w", column, err)
	}

	return upsertMetricDay(d.db, latestDate, delta(source))
}

func scanMetricDay(row *sql.Row) (*models.MetricDay, error) {
	var m models.MetricDay
	var restingHR, hrvRMSSD, vo2max, weightKG, sleepHours sql.NullFloat64

	err := row.Scan(&m.Date, &restingHR, &hrvRMSSD, &vo2max, &weightKG, &sleepHours)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan metrics: %w", err)
	}

	assignNullable(&m, restingHR, hrvRMSSD, vo2max, weightKG, sleepHours)
	return &m, nil
}

func assignNullable(m *models.MetricDay, restingHR, hrvRMSSD, vo2max, weightKG, sleepHours sql.NullFloat64) {
	if restingHR.Valid {
		m.RestingHR = &restingHR.Float64
	}
	if hrvRMSSD.Valid {
		m.HRVRMSSD = &hrvRMSSD.Float64
	}
	if vo2max.Valid {
		m.VO2Max = &vo2max.Float64
	}
	if weightKG.Valid {
		m.WeightKG = &weightKG.Float64
	}
	if sleepHours.Valid {
		m.SleepHours = &sleepHours.Float64
	}
}
