package domain

import (
	"bytes"
	"strings"
	"testing"
)

func TestDecodeHex_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"00",
		"AA",
		"deadbeef",
		"DEADBEEF",
		"0102030405060708",
		"aBcDeF",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			b, err := DecodeHex(in)
			if err != nil {
				t.Fatalf("DecodeHex(%q) error = %v", in, err)
			}
			if len(b) != len(in)/2 {
				t.Errorf("len = %d, want %d", len(b), len(in)/2)
			}
			if out := EncodeHex(b); !strings.EqualFold(out, in) {
				t.Errorf("EncodeHex(DecodeHex(%q)) = %q", in, out)
			}
		})
	}
}

func TestDecodeHex_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"odd length", "ABC"},
		{"single digit", "A"},
		{"non hex", "ZZ"},
		{"embedded space", "AA BB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeHex(tt.in); err == nil {
				t.Errorf("DecodeHex(%q) should fail", tt.in)
			}
		})
	}
}

func TestDecodeHexFixed(t *testing.T) {
	b, err := DecodeHexFixed("0102030405060708", IDLength)
	if err != nil {
		t.Fatalf("DecodeHexFixed() error = %v", err)
	}
	if !bytes.Equal(b, []byte{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("DecodeHexFixed() = %x", b)
	}

	if _, err := DecodeHexFixed("01020304", IDLength); err == nil {
		t.Error("DecodeHexFixed() should reject short input")
	}
	if _, err := DecodeHexFixed("010203040506070809", IDLength); err == nil {
		t.Error("DecodeHexFixed() should reject long input")
	}
}

func TestParseHexUint32(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"00000001", 1, false},
		{"1", 1, false},
		{"FFFFFFFF", 0xFFFFFFFF, false},
		{"0x1234", 0x1234, false},
		{"0XABCD", 0xABCD, false},
		{" 10 ", 0x10, false},
		{"100000000", 0, true},
		{"", 0, true},
		{"xyz", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexUint32(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHexUint32(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHexUint32(%q) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}
