package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	phttp "prospector/internal/platform/net/http"
	"prospector/internal/services/api/runs/domain"
	discdom "prospector/internal/services/discovery/domain"
)

type fakeRunner struct {
	got    []discdom.RunRequest
	report discdom.RunReport
	err    error
}

func (f *fakeRunner) Run(_ context.Context, req discdom.RunRequest) (discdom.RunReport, error) {
	f.got = append(f.got, req)
	return f.report, f.err
}

type fakeReader struct {
	run  discdom.Run
	runs []discdom.Run

	gotID    string
	gotLimit int
}

func (f *fakeReader) Get(_ context.Context, id string) (discdom.Run, error) {
	f.gotID = id
	return f.run, nil
}

func (f *fakeReader) Recent(_ context.Context, limit int) ([]discdom.Run, error) {
	f.gotLimit = limit
	return f.runs, nil
}

func mount(runner *fakeRunner, reader *fakeReader) http.Handler {
	mux := chi.NewMux()
	Register(phttp.AdaptChi(mux), domain.Ports{Runner: runner, Reader: reader})
	return mux
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var rdr *strings.Reader
	if body == "" {
		rdr = strings.NewReader("")
	} else {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not json: %v\n%s", err, rec.Body.String())
	}
	return rec, env
}

func TestInvoke_MapsRequestAndReturnsReport(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{report: discdom.RunReport{
		RunID:  "r-1",
		Status: discdom.RunCompleted,
	}}
	h := mount(runner, &fakeReader{})

	rec, env := do(t, h, http.MethodPost, "/", `{
		"intent_id": "digital-agencies",
		"mode": "manual",
		"dry_run": true,
		"countries": ["ZA", "BW"],
		"max_companies": 5,
		"budget_seconds": 30
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %v", rec.Code, env)
	}
	if len(runner.got) != 1 {
		t.Fatalf("runner called %d times", len(runner.got))
	}
	req := runner.got[0]
	if req.IntentID != "digital-agencies" || !req.DryRun || req.Mode != discdom.ModeManual {
		t.Fatalf("request mapped wrong: %+v", req)
	}
	if req.Trigger != "api" {
		t.Fatalf("trigger = %q", req.Trigger)
	}
	if req.Limits.MaxCompanies != 5 || req.Budget.Seconds() != 30 {
		t.Fatalf("overrides mapped wrong: %+v", req)
	}

	data, _ := env["data"].(map[string]any)
	if data["run_id"] != "r-1" {
		t.Fatalf("report not in envelope: %v", env)
	}
}

func TestInvoke_ValidationFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, body string
	}{
		{"missing intent", `{}`},
		{"bad mode", `{"intent_id":"x","mode":"yearly"}`},
		{"bad country code", `{"intent_id":"x","countries":["ZAF"]}`},
		{"bad channel", `{"intent_id":"x","channels":["carrier_pigeon"]}`},
		{"budget too small", `{"intent_id":"x","budget_seconds":1}`},
	}
	for _, c := range cases {
		runner := &fakeRunner{}
		h := mount(runner, &fakeReader{})
		rec, _ := do(t, h, http.MethodPost, "/", c.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400", c.name, rec.Code)
		}
		if len(runner.got) != 0 {
			t.Fatalf("%s: runner must not be called on invalid input", c.name)
		}
	}
}

func TestGet_PassesPathID(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{run: discdom.Run{ID: "r-9", Status: discdom.RunCompleted}}
	h := mount(&fakeRunner{}, reader)

	rec, env := do(t, h, http.MethodGet, "/r-9", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %v", rec.Code, env)
	}
	if reader.gotID != "r-9" {
		t.Fatalf("reader got id %q", reader.gotID)
	}
}

func TestRecent_LimitHandling(t *testing.T) {
	t.Parallel()

	reader := &fakeReader{}
	h := mount(&fakeRunner{}, reader)

	rec, _ := do(t, h, http.MethodGet, "/?limit=5", "")
	if rec.Code != http.StatusOK || reader.gotLimit != 5 {
		t.Fatalf("status=%d limit=%d", rec.Code, reader.gotLimit)
	}

	rec, _ = do(t, h, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || reader.gotLimit != 20 {
		t.Fatalf("default limit: status=%d limit=%d", rec.Code, reader.gotLimit)
	}

	rec, _ = do(t, h, http.MethodGet, "/?limit=0", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("limit=0 must be rejected, got %d", rec.Code)
	}
}
