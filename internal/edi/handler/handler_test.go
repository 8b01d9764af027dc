package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"mercury/internal/edi/service"
	dErrors "mercury/pkg/edierrors"
)

// fakeService returns canned results keyed by edi_info_id.
type fakeService struct {
	results map[string]*service.ConvertResult
	errs    map[string]error
	last    service.ConvertRequest
}

func (f *fakeService) Convert(_ context.Context, req service.ConvertRequest) (*service.ConvertResult, error) {
	f.last = req
	if err, ok := f.errs[req.EDIInfoID]; ok {
		return nil, err
	}
	if result, ok := f.results[req.EDIInfoID]; ok {
		return result, nil
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "document not registered")
}

func (f *fakeService) ConvertBatch(ctx context.Context, reqs []service.ConvertRequest, _ int) []service.BatchItem {
	items := make([]service.BatchItem, len(reqs))
	for i, req := range reqs {
		items[i].Request = req
		items[i].Result, items[i].Err = f.Convert(ctx, req)
	}
	return items
}

func newRouter(svc *fakeService) chi.Router {
	r := chi.NewRouter()
	h := New(svc, slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), nil)))
	h.Register(r)
	return r
}

func postJSON(t *testing.T, router chi.Router, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestConvertEndpoint(t *testing.T) {
	svc := &fakeService{results: map[string]*service.ConvertResult{
		"DOC-1": {
			Segments:         []string{"BIG*20240827*INV-001~", "CTT*1~"},
			ValidationErrors: []string{"WARNING: Missing bill-to information (BT party)"},
			Status:           service.StatusSuccess,
		},
	}}
	router := newRouter(svc)

	rec := postJSON(t, router, "/convert_text_to_edi_v2", map[string]any{
		"interchange_sender": "ACME",
		"edi_info_id":        "DOC-1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ConvertResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != service.StatusSuccess {
		t.Fatalf("expected success status, got %q", resp.Status)
	}
	if len(resp.RawEDISegments) != 2 || resp.RawEDISegments[0] != "BIG*20240827*INV-001~" {
		t.Fatalf("unexpected segments: %v", resp.RawEDISegments)
	}
	if len(resp.ValidationErrors) != 1 {
		t.Fatalf("unexpected validation errors: %v", resp.ValidationErrors)
	}
	if !svc.last.BuildEDI {
		t.Fatalf("expected build_edi to default to true")
	}
}

func TestConvertBuildFlag(t *testing.T) {
	svc := &fakeService{results: map[string]*service.ConvertResult{
		"DOC-1": {Status: service.StatusExtractionOnly},
	}}
	router := newRouter(svc)

	rec := postJSON(t, router, "/convert_text_to_edi_v2", map[string]any{
		"interchange_sender": "ACME",
		"edi_info_id":        "DOC-1",
		"build_edi":          false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.last.BuildEDI {
		t.Fatalf("expected build_edi=false to pass through")
	}
}

func TestConvertValidation(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := postJSON(t, router, "/convert_text_to_edi_v2", map[string]any{
		"interchange_sender": "  ",
		"edi_info_id":        "DOC-1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing sender, got %d", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != "validation_error" {
		t.Fatalf("expected validation_error, got %q", body.Error)
	}
}

func TestConvertNotFound(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := postJSON(t, router, "/convert_text_to_edi_v2", map[string]any{
		"interchange_sender": "ACME",
		"edi_info_id":        "UNKNOWN",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown document, got %d", rec.Code)
	}
}

func TestBatchEndpoint(t *testing.T) {
	svc := &fakeService{results: map[string]*service.ConvertResult{
		"DOC-1": {Segments: []string{"BIG*20240827*INV-001~"}, Status: service.StatusSuccess},
	}}
	router := newRouter(svc)

	rec := postJSON(t, router, "/convert_batch", map[string]any{
		"documents": []map[string]any{
			{"interchange_sender": "ACME", "edi_info_id": "DOC-1"},
			{"interchange_sender": "ACME", "edi_info_id": "MISSING"},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp BatchConvertResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(resp.Items))
	}
	if resp.Items[0].Result == nil || resp.Items[0].Result.Status != service.StatusSuccess {
		t.Fatalf("expected first item to succeed: %+v", resp.Items[0])
	}
	if resp.Items[1].Error == "" {
		t.Fatalf("expected second item to carry an error")
	}
}

func TestBatchValidation(t *testing.T) {
	router := newRouter(&fakeService{})

	rec := postJSON(t, router, "/convert_batch", map[string]any{"documents": []map[string]any{}})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty batch, got %d", rec.Code)
	}
}
