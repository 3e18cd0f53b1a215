package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aalvaropc/roman/internal/domain"
	"github.com/aalvaropc/roman/internal/usecase"
	"github.com/google/uuid"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, codec *domain.Codec) *httptest.Server {
	t.Helper()
	s := New(usecase.NewConverter(codec), WithLogger(quietLogger()))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, domain.Conversion) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var c domain.Conversion
	if resp.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(resp.Body).Decode(&c); err != nil {
			t.Fatalf("decode body: %v", err)
		}
	}
	return resp, c
}

func TestServer_Routes(t *testing.T) {
	ts := newTestServer(t, nil)

	cases := []struct {
		path   string
		status int
		output string
		kind   domain.ErrorKind
	}{
		{"/roman/14", http.StatusOK, "XIV", ""},
		{"/roman/3999", http.StatusOK, "MMMCMXCIX", ""},
		{"/roman/4000", http.StatusNotFound, "", domain.KindOutOfRange},
		{"/roman/0", http.StatusNotFound, "", domain.KindOutOfRange},
		{"/roman/99999999999999999999", http.StatusNotFound, "", domain.KindOutOfRange},
		{"/roman/abc", http.StatusBadRequest, "", domain.KindUnrecognizedSymbol},
		{"/arabic/MCMLXXXIV", http.StatusOK, "1984", ""},
		{"/arabic/IIII", http.StatusBadRequest, "", domain.KindNonCanonical},
		{"/arabic/xiv", http.StatusBadRequest, "", domain.KindUnrecognizedSymbol},
	}

	for _, tc := range cases {
		resp, c := get(t, ts.URL+tc.path)
		if resp.StatusCode != tc.status {
			t.Fatalf("%s: status=%d want %d", tc.path, resp.StatusCode, tc.status)
		}
		if c.Output != tc.output {
			t.Fatalf("%s: output=%q want %q", tc.path, c.Output, tc.output)
		}
		if tc.kind != "" && (c.Error == nil || c.Error.Kind != tc.kind) {
			t.Fatalf("%s: expected kind %s, got %+v", tc.path, tc.kind, c.Error)
		}
	}
}

func TestServer_UsesConfiguredCeiling(t *testing.T) {
	ts := newTestServer(t, domain.NewCodec(domain.WithMax(domain.MaxExtended)))

	resp, c := get(t, ts.URL+"/roman/4000")
	if resp.StatusCode != http.StatusOK || c.Output != "MMMM" {
		t.Fatalf("status=%d output=%q", resp.StatusCode, c.Output)
	}
}

func TestServer_HealthzAndRequestID(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("status=%d body=%q", resp.StatusCode, body)
	}
	if _, err := uuid.Parse(resp.Header.Get(RequestIDHeader)); err != nil {
		t.Fatalf("expected uuid request id, got %q", resp.Header.Get(RequestIDHeader))
	}
}

func TestServer_UnknownRouteAndMethod(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/roman/14", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", resp.StatusCode)
	}
}

func TestStatusFor(t *testing.T) {
	if statusFor(domain.KindExecution) != http.StatusInternalServerError {
		t.Fatalf("expected 500 for execution errors")
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	addrc := make(chan net.Addr, 1)

	s := New(nil,
		WithAddr("127.0.0.1:0"),
		WithLogger(quietLogger()),
		WithReady(func(a net.Addr) { addrc <- a }),
	)

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	var addr net.Addr
	select {
	case addr = <-addrc:
	case err := <-done:
		t.Fatalf("Run returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not start")
	}

	resp, c := get(t, "http://"+addr.String()+"/roman/1984")
	if resp.StatusCode != http.StatusOK || c.Output != "MCMLXXXIV" {
		t.Fatalf("status=%d output=%q", resp.StatusCode, c.Output)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("server did not stop")
	}
}
