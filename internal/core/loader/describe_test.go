package loader

import (
	"bytes"
	"strings"
	"testing"

	"github.com/yndnr/microdog-go/internal/telemetry/logger"
)

func TestDescribe(t *testing.T) {
	rec, err := loadString(t, dump("DEADBEEF", "[CONVERT_DEADBEEF]\nAA=00000001\nABC=00000002\n"))
	if err != nil {
		t.Fatalf("LoadSource() error = %v", err)
	}

	var buf bytes.Buffer
	if err := Describe(&buf, rec); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Dog Serial: 1234\n",
		"Dog ID: 0102030405060708\n",
		"Mfg Serial: ABCD\n",
		"Algorithm Descriptor: DEADBEEF\n",
		"Dog Crypto Convert Table Entries: 1\n",
		"Skipped Malformed Entries: 1\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe() output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "CAFEBABE") {
		t.Error("Describe() printed the password")
	}
}

func TestLogSummary(t *testing.T) {
	rec, err := loadString(t, dump("DEADBEEF", "[CONVERT_DEADBEEF]\nAA=00000001\n"))
	if err != nil {
		t.Fatalf("LoadSource() error = %v", err)
	}

	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}
	LogSummary(log, rec)

	out := buf.String()
	if !strings.Contains(out, `"algorithm":"DEADBEEF"`) {
		t.Errorf("summary log missing algorithm: %s", out)
	}
	if !strings.Contains(out, `"entries":1`) {
		t.Errorf("summary log missing entry count: %s", out)
	}
	if strings.Contains(out, "CAFEBABE") {
		t.Error("summary log leaked the password")
	}
}
