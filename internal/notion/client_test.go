// ABOUTME: Tests for the Notion client against a stub HTTP server.
// ABOUTME: Covers auth headers, pagination, and error surfacing.
package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testNotionClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient("secret-token")
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	c.BaseURL = srv.URL
	return c
}

func TestNewClientRequiresSecret(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestQueryDatabasePagination(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("Notion-Version"); got != APIVersion {
			t.Errorf("Notion-Version = %q", got)
		}

		var payload map[string]any
		json.NewDecoder(r.Body).Decode(&payload)

		calls++
		switch calls {
		case 1:
			if _, ok := payload["start_cursor"]; ok {
				t.Error("first request must not carry a cursor")
			}
			json.NewEncoder(w).Encode(map[string]any{
				"results":     []map[string]any{{"id": "p1"}, {"id": "p2"}},
				"has_more":    true,
				"next_cursor": "cursor-2",
			})
		case 2:
			if payload["start_cursor"] != "cursor-2" {
				t.Errorf("second request cursor = %v", payload["start_cursor"])
			}
			json.NewEncoder(w).Encode(map[string]any{
				"results":  []map[string]any{{"id": "p3"}},
				"has_more": false,
			})
		default:
			t.Errorf("unexpected extra request %d", calls)
		}
	}))
	defer srv.Close()

	pages, err := testNotionClient(t, srv).QueryDatabase(context.Background(), "db1")
	if err != nil {
		t.Fatalf("QueryDatabase failed: %v", err)
	}
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages across cursors, got %d", len(pages))
	}
	if pages[2].ID != "p3" {
		t.Errorf("pages[2].ID = %s, want p3", pages[2].ID)
	}
}

func TestErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"validation_error","message":"Status is expected"}`))
	}))
	defer srv.Close()

	_, err := testNotionClient(t, srv).QueryDatabase(context.Background(), "db1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "validation_error") {
		t.Errorf("error should carry the response body, got: %v", err)
	}
}

func TestCreateCoachingDatabase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/databases" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload struct {
			Parent     map[string]string `json:"parent"`
			Properties map[string]any    `json:"properties"`
		}
		json.NewDecoder(r.Body).Decode(&payload)
		if payload.Parent["page_id"] != "01234567-89ab-cdef-0123-456789abcdef" {
			t.Errorf("parent page_id = %q, want dashed form", payload.Parent["page_id"])
		}
		if _, ok := payload.Properties["Week"]; !ok {
			t.Error("schema missing Week title property")
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "11111111-2222-3333-4444-555555555555"})
	}))
	defer srv.Close()

	c := testNotionClient(t, srv)
	id, err := CreateCoachingDatabase(context.Background(), c, "0123456789abcdef0123456789abcdef")
	if err != nil {
		t.Fatalf("CreateCoachingDatabase failed: %v", err)
	}
	if id != "11111111222233334444555555555555" {
		t.Errorf("id = %s, want dashes stripped", id)
	}

	if _, err := CreateCoachingDatabase(context.Background(), c, ""); err == nil {
		t.Error("expected error for missing parent page")
	}
}

func TestUpdatePageRequiresProperties(t *testing.T) {
	c, _ := NewClient("secret-token")
	if _, err := c.UpdatePage(context.Background(), "p1", nil); err == nil {
		t.Fatal("expected error for empty property set")
	}
}
