package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/core/service"
	"github.com/yndnr/microdog-go/internal/telemetry/logger"
	"github.com/yndnr/microdog-go/internal/telemetry/metric"
)

func startTestServer(t *testing.T) (string, *metric.Registry) {
	t.Helper()

	var id domain.Identity
	copy(id.Memory[domain.AlgorithmOffset:], []byte{0x01, 0x02, 0x03, 0x04})
	rec := domain.NewTokenRecord(id, []domain.ConvertEntry{
		{Request: []byte{0xAA}, RequestLen: 1, Response: 7},
	}, 0, "test.ini")

	m := metric.NewRegistry()
	router := NewRouter(&RouterConfig{
		Resolver: service.NewResolver(rec, service.WithMetrics(m)),
		Logger:   logger.Discard(),
		Metrics:  m,
	})

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := New(ln.Addr().String(), router, WithLogger(logger.Discard()))
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			t.Errorf("shutdown: %v", err)
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("serve returned %v", err)
		}
	})
	return "http://" + ln.Addr().String(), m
}

func TestServer_ResolveEndToEnd(t *testing.T) {
	base, _ := startTestServer(t)

	resp, err := http.Post(base+"/v1/resolve", "application/json", bytes.NewBufferString(`{"request":"AA"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
	var body struct {
		RequestID string `json:"request_id"`
		Data      struct {
			ResponseHex string `json:"response_hex"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Data.ResponseHex != "00000007" {
		t.Errorf("response_hex = %q", body.Data.ResponseHex)
	}
	if body.RequestID != resp.Header.Get("X-Request-ID") {
		t.Errorf("request_id %q does not match header", body.RequestID)
	}
}

func TestServer_Metrics(t *testing.T) {
	base, _ := startTestServer(t)

	resp, err := http.Post(base+"/v1/resolve", "application/json", bytes.NewBufferString(`{"request":"BB"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	resp, err = http.Get(base + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`microdog_resolver_calls_total{result="miss"} 1`,
		`microdog_requests_total{method="POST /v1/resolve",protocol="http",status="404"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestNew_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(logger.Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}

	srv := New("127.0.0.1:0", http.NotFoundHandler(), WithLogger(l))
	if srv.httpServer.ErrorLog == nil {
		t.Fatal("ErrorLog not set")
	}
	srv.httpServer.ErrorLog.Print("http: TLS handshake error")
	if !strings.Contains(buf.String(), "TLS handshake error") || !strings.Contains(buf.String(), `"level":"WARN"`) {
		t.Errorf("log output = %q", buf.String())
	}

	if New("127.0.0.1:0", http.NotFoundHandler()).httpServer.ErrorLog != nil {
		t.Error("ErrorLog set without WithLogger")
	}
}
