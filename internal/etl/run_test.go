// ABOUTME: Tests for the sync pipeline against stub vendor servers.
// ABOUTME: Covers exercise import, fitness tests, and physical info fallbacks.
package etl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/harperreed/polarsync/internal/models"
	"github.com/harperreed/polarsync/internal/polar"
	"github.com/harperreed/polarsync/internal/storage"
)

func etlTestStore(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func etlTestClient(srv *httptest.Server) *polar.Client {
	c := polar.NewClient(polar.StaticToken("test-token"))
	c.BaseURL = srv.URL
	return c
}

func TestRunImportsExercisesAndFitnessTests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /exercises", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{
				"id":         "ex-1",
				"start_time": "2025-11-04T06:00:00",
				"sport":      "RUNNING",
				"distance":   10000.0,
				"duration":   "PT1H",
				"calories":   650,
				"heart_rate": map[string]any{"average": 152, "maximum": 181},
			},
			{
				"id":         "ft-1",
				"test_type":  "FITNESS_TEST",
				"start_time": "2025-11-04T07:30:00",
				"vo2max":     49,
				"heart_rate": map[string]any{"average": 52},
			},
			// No resolvable identity: dropped, not stored.
			{"sport": "CYCLING", "start_time": "2025-11-05T06:00:00"},
		})
	})
	mux.HandleFunc("POST /users/u1/physical-information-transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /users/u1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := etlTestStore(t)
	result, err := NewService(etlTestClient(srv), store, "u1").Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if result.RunID == "" {
		t.Error("expected a run ID")
	}
	if result.Sessions != 1 || result.FitnessTests != 1 || result.Skipped != 1 {
		t.Errorf("result = %+v, want 1 session, 1 fitness test, 1 skipped", result)
	}

	s, err := store.GetSession("ex-1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if s.DurationS != 3600 {
		t.Errorf("DurationS = %v, want 3600", s.DurationS)
	}
	if s.TsEnd == nil || *s.TsEnd != "2025-11-04T07:00:00" {
		t.Errorf("TsEnd = %v, want derived end time", s.TsEnd)
	}

	m, err := store.GetMetricDay("2025-11-04")
	if err != nil {
		t.Fatalf("GetMetricDay failed: %v", err)
	}
	if m.RestingHR == nil || *m.RestingHR != 52 {
		t.Errorf("RestingHR = %v, want 52", m.RestingHR)
	}
	if m.VO2Max == nil || *m.VO2Max != 49 {
		t.Errorf("VO2Max = %v, want 49", m.VO2Max)
	}
}

func TestRunPhysicalInfoSnapshots(t *testing.T) {
	var committed bool
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("GET /exercises", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /users/u1/physical-information-transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"resource-uri": srv.URL + "/users/u1/physical-information-transactions/9",
		})
	})
	mux.HandleFunc("GET /users/u1/physical-information-transactions/9", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"physical-informations": []string{srv.URL + "/info/1"},
		})
	})
	mux.HandleFunc("GET /info/1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"created":            "2025-11-04T08:00:00.000Z",
			"weight":             70.5,
			"resting-heart-rate": 52,
			"vo2-max":            49,
		})
	})
	mux.HandleFunc("PUT /users/u1/physical-information-transactions/9", func(w http.ResponseWriter, r *http.Request) {
		committed = true
	})
	srv = httptest.NewServer(mux)
	defer srv.Close()

	store := etlTestStore(t)
	result, err := NewService(etlTestClient(srv), store, "u1").Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.PhysicalInfos != 1 {
		t.Errorf("PhysicalInfos = %d, want 1", result.PhysicalInfos)
	}
	if len(result.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}
	if !committed {
		t.Error("vendor transaction was never committed")
	}

	m, err := store.GetMetricDay("2025-11-04")
	if err != nil {
		t.Fatalf("GetMetricDay failed: %v", err)
	}
	if m.WeightKG == nil || *m.WeightKG != 70.5 {
		t.Errorf("WeightKG = %v, want 70.5", m.WeightKG)
	}
}

func TestRunProfileWeightFallback(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /exercises", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /users/u1/physical-information-transactions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("GET /users/u1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"weight": 71.0})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := etlTestStore(t)
	// The fallback only fills the latest existing row, never creates one.
	if err := store.UpsertMetricDay("2025-11-03", models.MetricDelta{SleepHours: models.Float(7)}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	if _, err := NewService(etlTestClient(srv), store, "u1").Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	m, err := store.GetMetricDay("2025-11-03")
	if err != nil {
		t.Fatalf("GetMetricDay failed: %v", err)
	}
	if m.WeightKG == nil || *m.WeightKG != 71.0 {
		t.Errorf("WeightKG = %v, want 71.0 from profile fallback", m.WeightKG)
	}
}

func TestRunSkipsPhysicalInfoWithoutUserID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /exercises", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	result, err := NewService(etlTestClient(srv), etlTestStore(t), "").Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.PhysicalInfos != 0 || len(result.Warnings) != 0 {
		t.Errorf("result = %+v, want no physical info activity", result)
	}
}

func TestRunPropagatesLatestMetrics(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /exercises", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	store := etlTestStore(t)
	store.UpsertMetricDay("2025-11-01", models.MetricDelta{WeightKG: models.Float(70)})
	store.UpsertMetricDay("2025-11-04", models.MetricDelta{SleepHours: models.Float(7.5)})

	if _, err := NewService(etlTestClient(srv), store, "").Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	m, err := store.GetMetricDay("2025-11-04")
	if err != nil {
		t.Fatalf("GetMetricDay failed: %v", err)
	}
	if m.WeightKG == nil || *m.WeightKG != 70 {
		t.Errorf("WeightKG = %v, want 70 carried forward", m.WeightKG)
	}
}
