package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diskforge/diskforge/pkg/cache"
	"github.com/diskforge/diskforge/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c := New(io.Discard, LogInfo)
	runner := pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger)
	srv := &previewServer{runner: runner, cli: c}
	ts := httptest.NewServer(srv.routes())
	t.Cleanup(ts.Close)
	return ts
}

func TestServeHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"status":"ok"`) {
		t.Errorf("body = %q, want ok status", body)
	}
}

func TestServeTemplateSVG(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/template.svg")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "<svg") {
		t.Error("body should contain an SVG document")
	}
}

func TestServePlanJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/plan.json?kind=cutting&slots=20")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"kind": "cutting"`) {
		t.Errorf("plan should reflect requested kind, got %.100s", body)
	}
}

func TestServeGuideMarkdown(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/guide.md")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "Encoder Disk Fabrication Guide") {
		t.Error("guide body should contain the document title")
	}
}

func TestServeBadRequests(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{"non-numeric slots", "/template.svg?slots=many"},
		{"odd slots", "/template.svg?slots=41"},
		{"unknown preset", "/template.svg?preset=bogus"},
		{"bad scale", "/template.svg?scale=big"},
		{"bad kind", "/template.svg?kind=sideways"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.URL + tt.path)
			if err != nil {
				t.Fatal(err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestServeUnknownPath(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}
