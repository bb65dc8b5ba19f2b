package command

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/microdog-go/internal/core/domain"
	"github.com/yndnr/microdog-go/internal/core/loader"
	"github.com/yndnr/microdog-go/internal/core/service"
	"github.com/yndnr/microdog-go/internal/server/httpserver"
)

const testDump = `; test dump
[INFO]
serial=1234
id=0102030405060708
mfg_serial=ABCD
password=CAFEBABE
memory=%s

[CONVERT_DEADBEEF]
AA=11223344
AABB=00000002
AA=99999999
`

func writeTestDump(t *testing.T) string {
	t.Helper()
	mem := strings.Repeat("00", domain.MemoryLength-domain.AlgorithmLength) + "DEADBEEF"
	content := strings.Replace(testDump, "%s", mem, 1)
	path := filepath.Join(t.TempDir(), "io.microdog.ini")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// runApp runs the CLI with args and returns stdout and stderr.
func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	app := App()
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.Run(append([]string{"microdog-cli"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestInspect_Table(t *testing.T) {
	path := writeTestDump(t)

	out, _, err := runApp(t, "inspect", "--dump", path)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	for _, want := range []string{
		"Dog Serial: 1234",
		"Algorithm Descriptor: DEADBEEF",
		"Dog Crypto Convert Table Entries: 3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "CAFEBABE") {
		t.Error("inspect prints the password")
	}
}

func TestInspect_JSON(t *testing.T) {
	path := writeTestDump(t)

	out, _, err := runApp(t, "-o", "json", "inspect", "--dump", path)
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	var got domain.Summary
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if got.Serial != "1234" || got.Algorithm != "DEADBEEF" || got.ConvertEntries != 3 {
		t.Errorf("summary = %+v", got)
	}
}

func TestInspect_EntriesYAML(t *testing.T) {
	path := writeTestDump(t)

	out, _, err := runApp(t, "-o", "yaml", "inspect", "--dump", path, "--entries")
	if err != nil {
		t.Fatalf("inspect error = %v", err)
	}
	var rows []EntryRow
	if err := yaml.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	want := []EntryRow{
		{0, 1, "AA", "11223344"},
		{1, 2, "AABB", "00000002"},
		{2, 1, "AA", "99999999"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestInspect_MissingDump(t *testing.T) {
	_, _, err := runApp(t, "inspect", "--dump", filepath.Join(t.TempDir(), "absent.ini"))
	if err == nil || !strings.Contains(err.Error(), domain.ErrSourceUnreadable.Code) {
		t.Errorf("error = %v, want %s", err, domain.ErrSourceUnreadable.Code)
	}
}

func TestResolve(t *testing.T) {
	path := writeTestDump(t)

	out, _, err := runApp(t, "-o", "json", "resolve", "--dump", path, "aa", "AABB", "BB")
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}
	var rows []ResultRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatal(err)
	}
	want := []ResultRow{
		{Request: "AA", Found: true, Response: "11223344"},
		{Request: "AABB", Found: true, Response: "00000002"},
		{Request: "BB", Found: false},
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}
}

func TestResolve_BadArgs(t *testing.T) {
	path := writeTestDump(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no challenge", []string{"resolve", "--dump", path}},
		{"odd length", []string{"resolve", "--dump", path, "ABC"}},
		{"not hex", []string{"resolve", "--dump", path, "ZZ"}},
		{"bad output format", []string{"-o", "xml", "resolve", "--dump", path, "AA"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runApp(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	rec, err := loader.Load(writeTestDump(t))
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(httpserver.NewRouter(httpserver.DefaultRouterConfig(service.NewResolver(rec))))
	t.Cleanup(srv.Close)
	return srv
}

func TestQuery_HTTP(t *testing.T) {
	srv := newTestServer(t)

	out, _, err := runApp(t, "query", "--http", srv.URL, "AA", "BB")
	if err != nil {
		t.Fatalf("query error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "11223344") || !strings.Contains(lines[2], "false") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestQuery_SocketUnavailable(t *testing.T) {
	_, _, err := runApp(t, "query", "--socket", filepath.Join(t.TempDir(), "absent.sock"), "AA")
	if err == nil {
		t.Error("expected an error for an absent socket")
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	out, _, err := runApp(t, "health", "--http", srv.URL)
	if err != nil {
		t.Fatalf("health error = %v", err)
	}
	if !strings.Contains(out, "Server is healthy") || !strings.Contains(out, "Entries: 3") {
		t.Errorf("output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runApp(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "microdog-cli dev") {
		t.Errorf("output = %q", out)
	}

	out, _, err = runApp(t, "-o", "json", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"go_version"`) {
		t.Errorf("output = %q", out)
	}
}
