package handler

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"mercury/internal/edi/models"
	"mercury/internal/edi/store"
	"mercury/internal/edi/structure"
	"mercury/internal/platform/middleware"
)

func newAdminRouter(docs *store.InMemory, defs *structure.InMemory, token string) chi.Router {
	log := slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil))
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(token, log))
		NewAdmin(docs, defs, log, "X", "004010").Register(r)
	})
	return r
}

func TestSeedDocument(t *testing.T) {
	docs := store.NewInMemory()
	router := newAdminRouter(docs, structure.NewInMemory(), "")

	rec := postJSON(t, router, "/admin/documents", map[string]any{
		"interchange_sender": "ACME",
		"edi_info_id":        "DOC-9",
		"type":               "EDI/X12",
		"standard_version":   "004010",
		"transaction_name":   "810",
		"raw_text":           "Invoice INV-42 for 3 widgets.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	info, err := docs.Info(context.Background(), "ACME", "DOC-9")
	if err != nil {
		t.Fatalf("Info: %v", err)
	}
	if info.TransactionName != "810" {
		t.Errorf("transaction_name = %q, want %q", info.TransactionName, "810")
	}
	raw, err := docs.RawText(context.Background(), "DOC-9")
	if err != nil {
		t.Fatalf("RawText: %v", err)
	}
	if raw != "Invoice INV-42 for 3 widgets." {
		t.Errorf("raw text = %q", raw)
	}
}

func TestSeedDocumentValidation(t *testing.T) {
	router := newAdminRouter(store.NewInMemory(), structure.NewInMemory(), "")

	rec := postJSON(t, router, "/admin/documents", map[string]any{
		"interchange_sender": "ACME",
		"raw_text":           "text",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSeedDefinitions(t *testing.T) {
	defs := structure.NewInMemory()
	router := newAdminRouter(store.NewInMemory(), defs, "")

	rec := postJSON(t, router, "/admin/definitions", map[string]any{
		"segment_id": "big",
		"override":   true,
		"elements": []map[string]any{
			{"position": 1, "element_id": "373", "requirement": "M", "type": "DT", "min_length": 8, "max_length": 8},
			{"position": 2, "element_id": "76", "type": "AN", "max_length": 22},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	// The segment ID is uppercased and defaults X/004010 are applied.
	rows, err := defs.OverrideDefinitions(context.Background(), "BIG", "X", "004010")
	if err != nil {
		t.Fatalf("OverrideDefinitions: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("override rows = %d, want 2", len(rows))
	}
	if rows[0].Requirement != models.Mandatory {
		t.Errorf("requirement = %q, want M", rows[0].Requirement)
	}
	if rows[1].Requirement != models.Optional {
		t.Errorf("omitted requirement = %q, want O default", rows[1].Requirement)
	}
}

func TestSeedUsage(t *testing.T) {
	defs := structure.NewInMemory()
	router := newAdminRouter(store.NewInMemory(), defs, "")

	rec := postJSON(t, router, "/admin/usage", map[string]any{
		"transaction_set_id": "810",
		"segments": []map[string]any{
			{"position": 10, "segment_id": "BIG", "requirement": "M", "max_usage": 1},
			{"position": 20, "segment_id": "REF", "requirement": "O", "max_usage": 12},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	rows, err := defs.SegmentUsage(context.Background(), "810", "X", "004010")
	if err != nil {
		t.Fatalf("SegmentUsage: %v", err)
	}
	if len(rows) != 2 || rows[0].SegmentID != "BIG" {
		t.Fatalf("usage rows = %+v", rows)
	}
	if rows[0].Requirement != models.Mandatory {
		t.Errorf("requirement = %q, want M", rows[0].Requirement)
	}
	if rows[1].Requirement != models.Optional {
		t.Errorf("requirement = %q, want O", rows[1].Requirement)
	}
}

func TestAdminTokenGuard(t *testing.T) {
	router := newAdminRouter(store.NewInMemory(), structure.NewInMemory(), "sekret")

	payload := map[string]any{
		"interchange_sender": "ACME",
		"edi_info_id":        "DOC-1",
		"raw_text":           "text",
	}
	rec := postJSON(t, router, "/admin/documents", payload)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("without token: status = %d, want %d", rec.Code, http.StatusForbidden)
	}

	body := bytes.NewBufferString(`{"interchange_sender":"ACME","edi_info_id":"DOC-1","raw_text":"text"}`)
	req := httptest.NewRequest(http.MethodPost, "/admin/documents", body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Admin-Token", "sekret")
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req)
	if rec2.Code != http.StatusCreated {
		t.Fatalf("with token: status = %d, want %d: %s", rec2.Code, http.StatusCreated, rec2.Body.String())
	}
}
