package metric

import (
	"strings"
	"testing"

	"github.com/yndnr/microdog-go/internal/core/domain"
)

func testRecord() *domain.TokenRecord {
	id := domain.Identity{Serial: 0x1234, MfgSerial: 0xABCD, Password: 0xCAFEBABE}
	copy(id.Memory[domain.AlgorithmOffset:], []byte{0xDE, 0xAD, 0xBE, 0xEF})
	table := []domain.ConvertEntry{
		{Request: []byte{0xAA}, RequestLen: 1, Response: 1},
		{Request: []byte{0xBB}, RequestLen: 1, Response: 2},
	}
	return domain.NewTokenRecord(id, table, 3, "test")
}

func TestCollector(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewCollector(testRecord(), 2)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	body := scrape(t, r.Handler())

	for _, want := range []string{
		`microdog_token_info{algorithm="DEADBEEF",mfg_serial="ABCD",serial="1234"} 1`,
		"microdog_token_convert_entries 2",
		"microdog_token_skipped_entries 3",
		"microdog_token_index_buckets 2",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s", want)
		}
	}
	if strings.Contains(body, "CAFEBABE") {
		t.Error("password exposed in metrics")
	}
}

func TestCollector_RegisterTwice(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(NewCollector(testRecord(), 2)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(NewCollector(testRecord(), 2)); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}
