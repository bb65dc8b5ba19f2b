package connection

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/core/service"
	"github.com/yndnr/microdog-go/internal/server/httpserver"
	"github.com/yndnr/microdog-go/internal/server/localserver"
)

func newTestResolver() *service.Resolver {
	id := domain.Identity{Serial: 0x1234}
	copy(id.Memory[domain.AlgorithmOffset:], []byte{0xDE, 0xAD, 0xBE, 0xEF})
	rec := domain.NewTokenRecord(id, []domain.ConvertEntry{
		{Request: []byte{0xAA}, RequestLen: 1, Response: 0x11223344},
	}, 0, "test.ini")
	return service.NewResolver(rec)
}

func startLocalServer(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "md.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	srv := localserver.New(localserver.DefaultConfig(path), newTestResolver())
	go srv.Serve(ln)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return path
}

func TestSocketClient(t *testing.T) {
	client := NewSocketClient(startLocalServer(t))
	defer client.Close()

	if err := client.Ping(); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	info, err := client.Info()
	if err != nil {
		t.Fatalf("Info() error = %v", err)
	}
	if info["serial"] != "1234" || info["algorithm"] != "DEADBEEF" || info["entries"] != "1" {
		t.Errorf("Info() = %v", info)
	}

	resp, ok, err := client.Resolve([]byte{0xAA})
	if err != nil || !ok || resp != 0x11223344 {
		t.Errorf("Resolve(AA) = (%08X, %v, %v)", resp, ok, err)
	}

	resp, ok, err = client.Resolve([]byte{0xBB})
	if err != nil || ok || resp != 0 {
		t.Errorf("Resolve(BB) = (%08X, %v, %v), want miss", resp, ok, err)
	}
}

func TestSocketClient_ServerError(t *testing.T) {
	client := NewSocketClient(startLocalServer(t))
	defer client.Close()

	_, err := client.Execute("BOGUS")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	reply, _ := client.Execute("RESOLVE ZZ")
	_, _, err = parseResolveReply(reply)
	var serr *ServerError
	if !errors.As(err, &serr) || serr.Code != domain.ErrMalformedRequest.Code {
		t.Errorf("error = %v, want ServerError %s", err, domain.ErrMalformedRequest.Code)
	}
}

func TestSocketClient_ConnectFailure(t *testing.T) {
	client := NewSocketClient(filepath.Join(t.TempDir(), "absent.sock"))
	if err := client.Ping(); err == nil {
		t.Error("Ping() on absent socket succeeded")
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() without connection = %v", err)
	}
}

func TestParseResolveReply(t *testing.T) {
	tests := []struct {
		reply    string
		want     uint32
		wantOK   bool
		wantCode string
		wantErr  bool
	}{
		{"OK 0000000A", 10, true, "", false},
		{"MISS", 0, false, "", false},
		{"ERR MD-RESV-4000 malformed request", 0, false, "MD-RESV-4000", true},
		{"OK nothex", 0, false, "", true},
		{"WAT", 0, false, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			got, ok, err := parseResolveReply(tt.reply)
			if got != tt.want || ok != tt.wantOK || (err != nil) != tt.wantErr {
				t.Fatalf("parseResolveReply(%q) = (%d, %v, %v)", tt.reply, got, ok, err)
			}
			var serr *ServerError
			if tt.wantCode != "" && (!errors.As(err, &serr) || serr.Code != tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestHTTPClient(t *testing.T) {
	srv := httptest.NewServer(httpserver.NewRouter(httpserver.DefaultRouterConfig(newTestResolver())))
	defer srv.Close()

	client := NewHTTPClient(srv.URL)
	ctx := context.Background()

	health, err := client.Health(ctx)
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("status = %v", health["status"])
	}

	resp, ok, err := client.Resolve(ctx, []byte{0xAA})
	if err != nil || !ok || resp != 0x11223344 {
		t.Errorf("Resolve(AA) = (%08X, %v, %v)", resp, ok, err)
	}

	_, ok, err = client.Resolve(ctx, []byte{0xBB})
	if err != nil || ok {
		t.Errorf("Resolve(BB) = (%v, %v), want miss without error", ok, err)
	}
}

func TestNewHTTPClient_BaseURL(t *testing.T) {
	tests := map[string]string{
		"127.0.0.1:5090":         "http://127.0.0.1:5090",
		"http://localhost:5090/": "http://localhost:5090",
		"https://dog.example":    "https://dog.example",
	}
	for in, want := range tests {
		if got := NewHTTPClient(in).BaseURL(); got != want {
			t.Errorf("NewHTTPClient(%q).BaseURL() = %q, want %q", in, got, want)
		}
	}
}
