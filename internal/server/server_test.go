package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/jverhoef/cardrail/pkg/cache"
	"github.com/jverhoef/cardrail/pkg/config"
	"github.com/jverhoef/cardrail/pkg/content"
	"github.com/jverhoef/cardrail/pkg/layout"
	"github.com/jverhoef/cardrail/pkg/pipeline"
	"github.com/jverhoef/cardrail/pkg/scroll"
)

func sk(v float64) *float64 { return &v }

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	source := content.NewStatic("portfolio", []content.Record{
		{ID: "intro", Kind: "lead", Size: "2x2"},
		{ID: "p1", Kind: "body", Size: "1x1", Category: "design", SortKey: sk(1)},
		{ID: "p2", Kind: "body", Size: "1x1", Category: "design", SortKey: sk(2)},
		{ID: "w1", Kind: "body", Size: "2x1", Category: "web"},
		{ID: "outro", Kind: "trail", Size: "2x2"},
	})
	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
	return New(runner, source, config.Default(), logger)
}

func do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	rec := httptest.NewRecorder()
	testServer(t).Routes().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v\nbody: %s", err, rec.Body)
	}
	return env.Error.Code
}

func TestHealthz(t *testing.T) {
	rec := do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	rec := do(t, http.MethodGet, "/healthz", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a request ID")
	}
}

func TestGetLayout(t *testing.T) {
	rec := do(t, http.MethodGet, "/v1/layout/1920", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var l layout.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if len(l.Positions) != 5 {
		t.Errorf("positions = %d, want 5", len(l.Positions))
	}
	if l.ViewportWidth != 1920 {
		t.Errorf("viewport = %g, want 1920", l.ViewportWidth)
	}
	if len(l.Anchors) != 2 {
		t.Errorf("anchors = %d, want 2", len(l.Anchors))
	}
}

func TestGetLayoutBadViewport(t *testing.T) {
	rec := do(t, http.MethodGet, "/v1/layout/wide", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "INVALID_INPUT" {
		t.Errorf("code = %s", got)
	}
}

func TestPostLayout(t *testing.T) {
	body := `{
		"viewport_width": 1440,
		"cards": [
			{"id": "a", "kind": "lead", "size": "2x2"},
			{"id": "b", "kind": "body", "size": "1x1", "category": "art"},
			{"id": "c", "kind": "trail", "size": "2x2"}
		]
	}`
	rec := do(t, http.MethodPost, "/v1/layout", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var l layout.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatal(err)
	}
	if len(l.Positions) != 3 {
		t.Errorf("positions = %d, want 3", len(l.Positions))
	}
}

func TestPostLayoutEmpty(t *testing.T) {
	rec := do(t, http.MethodPost, "/v1/layout", `{"cards": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestGetState(t *testing.T) {
	rec := do(t, http.MethodGet, "/v1/state?progress=0.5&viewport=1440", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var snap pipeline.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.State.Progress != 0.5 {
		t.Errorf("progress = %g", snap.State.Progress)
	}
	if snap.ActiveCategory == "" {
		t.Error("active category should be set")
	}
	if len(snap.Cards) != 5 {
		t.Errorf("card views = %d, want 5", len(snap.Cards))
	}
}

func TestGetStateBadProgress(t *testing.T) {
	rec := do(t, http.MethodGet, "/v1/state?progress=1.5", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "INVALID_PROGRESS" {
		t.Errorf("code = %s", got)
	}
}

func TestJump(t *testing.T) {
	rec := do(t, http.MethodGet, "/v1/jump/web?viewport=800&height=5000", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}

	var jump scroll.Jump
	if err := json.Unmarshal(rec.Body.Bytes(), &jump); err != nil {
		t.Fatal(err)
	}
	if jump.Category != "web" {
		t.Errorf("category = %s", jump.Category)
	}
	phases := scroll.DefaultPhases
	if jump.Progress < phases.IntroScaleEnd || jump.Progress > phases.OutroScaleStart {
		t.Errorf("progress = %g, want within horizontal phase", jump.Progress)
	}
	if jump.ScrollTop != jump.Progress*5000 {
		t.Errorf("scroll top = %g", jump.ScrollTop)
	}
}

func TestJumpUnknownCategory(t *testing.T) {
	rec := do(t, http.MethodGet, "/v1/jump/sculpture", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "CATEGORY_NOT_FOUND" {
		t.Errorf("code = %s", got)
	}
}

func TestJumpAll(t *testing.T) {
	rec := do(t, http.MethodGet, "/v1/jump/all", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var jump scroll.Jump
	if err := json.Unmarshal(rec.Body.Bytes(), &jump); err != nil {
		t.Fatal(err)
	}
	if jump.Progress != 0 || jump.TranslateX != 0 {
		t.Errorf("jump to all should be the zero target: %+v", jump)
	}
}
