// ABOUTME: Headless sync pipeline from Polar AccessLink into the local store.
// ABOUTME: Exercises first in one transaction, then physical info best-effort.
package etl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/polarsync/internal/models"
	"github.com/harperreed/polarsync/internal/normalize"
	"github.com/harperreed/polarsync/internal/polar"
	"github.com/harperreed/polarsync/internal/storage"
)

// Service runs the Polar import pipeline.
type Service struct {
	polar  *polar.Client
	store  *storage.DB
	userID string
}

// NewService wires a sync service. userID is required only for the
// physical-information phase; with an empty userID that phase is skipped.
func NewService(client *polar.Client, store *storage.DB, userID string) *Service {
	return &Service{polar: client, store: store, userID: userID}
}

// Result summarizes one sync run. Warnings cover the best-effort
// physical-information phase; a non-empty Warnings list does not mean the
// run failed.
type Result struct {
	RunID         string
	Sessions      int
	FitnessTests  int
	Skipped       int
	PhysicalInfos int
	Warnings      []string
}

// Run executes a full sync. Exercise import is transactional: either every
// fetched exercise lands or none do. The physical-information phase runs
// afterwards and degrades to warnings, since vendor transactions over that
// resource are consumed on commit and must not poison the exercise import.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	result := &Result{RunID: uuid.New().String()}

	if err := s.importExercises(ctx, result); err != nil {
		return nil, err
	}

	if s.userID != "" {
		s.syncPhysicalInfo(ctx, result)
	}

	if err := s.store.PropagateLatestMetrics(); err != nil {
		return nil, fmt.Errorf("propagating metrics: %w", err)
	}

	return result, nil
}

func (s *Service) importExercises(ctx context.Context, result *Result) error {
	exercises, err := s.polar.ListExercises(ctx)
	if err != nil {
		return fmt.Errorf("fetching exercises: %w", err)
	}

	tx, err := s.store.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, ex := range exercises {
		if normalize.IsFitnessTest(ex) {
			ft := normalize.ParseFitnessTest(ex)
			if ft.Date == "" {
				result.Skipped++
				continue
			}
			delta := models.MetricDelta{
				RestingHR: ft.RestingHR,
				HRVRMSSD:  ft.RMSSD,
				VO2Max:    ft.VO2Max,
			}
			if err := tx.UpsertMetricDay(ft.Date, delta); err != nil {
				return err
			}
			result.FitnessTests++
			continue
		}

		session := normalize.NormalizeExercise(ex)
		if session.SessionID == "" {
			result.Skipped++
			continue
		}
		if err := tx.UpsertSession(session); err != nil {
			return err
		}
		result.Sessions++
	}

	return tx.Commit()
}

// syncPhysicalInfo pulls weight, resting HR, and VO2max snapshots. Every
// failure here is a warning: the vendor may simply have nothing new, and a
// flaky snapshot fetch must not fail the run.
func (s *Service) syncPhysicalInfo(ctx context.Context, result *Result) {
	warn := func(format string, args ...any) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	}

	processed := false
	vendorTx, err := s.polar.CreatePhysicalInfoTransaction(ctx, s.userID)
	if err != nil {
		warn("could not create physical info transaction: %v", err)
	}

	if vendorTx != nil {
		urls, err := vendorTx.ListPhysicalInfos(ctx)
		if err != nil {
			warn("could not list physical infos: %v", err)
		}
		for _, url := range urls {
			info, err := vendorTx.GetPhysicalInfo(ctx, url)
			if err != nil {
				warn("could not fetch physical info from %s: %v", url, err)
				continue
			}
			date := extractDate(asString(info["created"]))
			if date == "" {
				continue
			}
			delta := models.MetricDelta{
				WeightKG:  asFloat(info["weight"]),
				RestingHR: asFloat(info["resting-heart-rate"]),
				VO2Max:    asFloat(info["vo2-max"]),
			}
			if err := s.store.UpsertMetricDay(date, delta); err != nil {
				warn("could not store physical info for %s: %v", date, err)
				continue
			}
			result.PhysicalInfos++
			processed = true
		}
		if err := vendorTx.Commit(ctx); err != nil {
			warn("could not commit physical info transaction: %v", err)
		}
	}

	if !processed {
		s.fallbackUserWeight(ctx, warn)
	}
}

// fallbackUserWeight copies the registered profile weight onto the latest
// metric row when no snapshot delivered one and the stored value differs.
func (s *Service) fallbackUserWeight(ctx context.Context, warn func(string, ...any)) {
	info, err := s.polar.GetUserInformation(ctx, s.userID)
	if err != nil {
		warn("could not fetch user info: %v", err)
		return
	}
	weight := asFloat(info["weight"])
	if weight == nil {
		return
	}

	days, err := s.store.ListMetricDays(1)
	if err != nil {
		warn("could not read latest metrics: %v", err)
		return
	}
	if len(days) == 0 {
		return
	}
	latest := days[0]
	if latest.WeightKG != nil && *latest.WeightKG == *weight {
		return
	}
	if err := s.store.UpsertMetricDay(latest.Date, models.MetricDelta{WeightKG: weight}); err != nil {
		warn("could not store profile weight for %s: %v", latest.Date, err)
	}
}

// extractDate reduces a vendor timestamp to YYYY-MM-DD. Parseable ISO
// timestamps go through time.Parse; anything else is trimmed to its first
// ten characters.
func extractDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	normalized := strings.TrimSuffix(trimmed, "Z")
	for _, layout := range []string{"2006-01-02T15:04:05.000", "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t.Format("2006-01-02")
		}
	}
	if len(trimmed) > 10 {
		return trimmed[:10]
	}
	return trimmed
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		return &n
	case int:
		f := float64(n)
		return &f
	default:
		return nil
	}
}
