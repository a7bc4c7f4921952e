package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdelacruz/newscred/internal/model"
	"github.com/pdelacruz/newscred/internal/store"
)

type stubAnalyzer struct {
	verdict *model.CredibilityVerdict
	err     error
	lastReq struct {
		raw       string
		declared  model.InputType
		requester string
	}
}

func (a *stubAnalyzer) Analyze(ctx context.Context, rawInput string, declaredType model.InputType, requesterID string) (*model.CredibilityVerdict, error) {
	a.lastReq.raw = rawInput
	a.lastReq.declared = declaredType
	a.lastReq.requester = requesterID
	return a.verdict, a.err
}

func testServer(a Analyzer, st store.Store) *Server {
	if st == nil {
		st = store.NewNoop()
	}
	return New(model.DefaultConfig().Server, a, st)
}

func TestHandleAnalyze(t *testing.T) {
	analyzer := &stubAnalyzer{
		verdict: &model.CredibilityVerdict{
			FinalScore: 0.72,
			Confidence: 0.61,
			Label:      model.VerdictMostlyCredible,
		},
	}
	srv := testServer(analyzer, nil)

	body := `{"content": "Some article text to analyze", "type": "text", "requester_id": "u1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var verdict model.CredibilityVerdict
	if err := json.Unmarshal(rec.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if verdict.Label != model.VerdictMostlyCredible {
		t.Errorf("Label = %q", verdict.Label)
	}
	if analyzer.lastReq.declared != model.InputTypeText || analyzer.lastReq.requester != "u1" {
		t.Errorf("analyzer got %+v", analyzer.lastReq)
	}
}

func TestHandleAnalyze_DefaultsToAuto(t *testing.T) {
	analyzer := &stubAnalyzer{verdict: &model.CredibilityVerdict{}}
	srv := testServer(analyzer, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze",
		strings.NewReader(`{"content": "hello there world"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if analyzer.lastReq.declared != model.InputTypeAuto {
		t.Errorf("declared = %s, want auto", analyzer.lastReq.declared)
	}
}

func TestHandleAnalyze_BadRequests(t *testing.T) {
	srv := testServer(&stubAnalyzer{}, nil)

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{not json`},
		{"missing content", `{"type": "text"}`},
		{"bad type", `{"content": "x", "type": "carrier_pigeon"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleAnalyze_InsufficientContent(t *testing.T) {
	analyzer := &stubAnalyzer{
		err: fmt.Errorf("analyze text input: %w", model.ErrInsufficientContent),
	}
	srv := testServer(analyzer, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze",
		strings.NewReader(`{"content": "hi"}`))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}

	var resp map[string]apiError
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["error"].Stage != "content_extraction" {
		t.Errorf("stage = %q", resp["error"].Stage)
	}
}

func TestHandleGetAnalysis(t *testing.T) {
	st := store.NewDiskStore(t.TempDir())
	id, err := st.Save(context.Background(),
		&model.CredibilityVerdict{Label: model.VerdictUncertain}, "u1")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	srv := testServer(&stubAnalyzer{}, st)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses/"+id, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var verdict model.CredibilityVerdict
	if err := json.Unmarshal(rec.Body.Bytes(), &verdict); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if verdict.Label != model.VerdictUncertain {
		t.Errorf("Label = %q", verdict.Label)
	}

	// Unknown id
	req = httptest.NewRequest(http.MethodGet, "/api/v1/analyses/nope", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleListAnalyses(t *testing.T) {
	st := store.NewDiskStore(t.TempDir())
	for i := 0; i < 3; i++ {
		if _, err := st.Save(context.Background(),
			&model.CredibilityVerdict{Label: model.VerdictUncertain}, "u1"); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	srv := testServer(&stubAnalyzer{}, st)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses?requester_id=u1&limit=2", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Analyses []store.Record `json:"analyses"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Analyses) != 2 {
		t.Errorf("len = %d, want 2", len(resp.Analyses))
	}

	// Bad limit
	req = httptest.NewRequest(http.MethodGet, "/api/v1/analyses?limit=9999", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	srv := testServer(&stubAnalyzer{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}
