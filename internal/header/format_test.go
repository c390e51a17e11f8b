package header

import (
	"bytes"
	"testing"

	"github.com/daafuq/scryptenc/internal/errors"
)

func testHeader() *Header {
	h := &Header{Version: Version, LogN: 14, R: 8, P: 1}
	for i := range h.Salt {
		h.Salt[i] = byte(i)
	}
	return h
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	hmacKey := bytes.Repeat([]byte{0x11}, 32)
	h := testHeader()

	buf := Encode(h, hmacKey)
	if len(buf) != Size {
		t.Fatalf("Encode len = %d; want %d", len(buf), Size)
	}

	got, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Version != h.Version || got.LogN != h.LogN || got.R != h.R || got.P != h.P {
		t.Errorf("Decode = %+v; want %+v", got, h)
	}
	if got.Salt != h.Salt {
		t.Error("Decode salt mismatch")
	}

	if !VerifyHMAC(buf, hmacKey) {
		t.Error("VerifyHMAC should succeed with correct key")
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	buf := Encode(testHeader(), bytes.Repeat([]byte{0x11}, 32))
	buf[0] ^= 0xFF

	if _, err := Decode(buf); err == nil {
		t.Fatal("expected error for bad magic")
	} else if kind, _ := errors.KindOf(err); kind != errors.EINVAL {
		t.Errorf("kind = %v; want EINVAL", kind)
	}
}

func TestDecodeRejectsTamperedFields(t *testing.T) {
	buf := Encode(testHeader(), bytes.Repeat([]byte{0x11}, 32))
	buf[offLogN] = 30 // tamper after checksum computed

	if _, err := Decode(buf); err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}

func TestDecodeRejectsTruncated(t *testing.T) {
	buf := Encode(testHeader(), bytes.Repeat([]byte{0x11}, 32))

	if _, err := Decode(buf[:Size-1]); err == nil {
		t.Fatal("expected error for truncated header")
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	hmacKey := bytes.Repeat([]byte{0x11}, 32)
	h := testHeader()
	h.Version = 7
	buf := Encode(h, hmacKey)

	_, err := Decode(buf)
	if err == nil {
		t.Fatal("expected error for unknown version")
	}
	if kind, _ := errors.KindOf(err); kind != errors.EVERSION {
		t.Errorf("kind = %v; want EVERSION", kind)
	}
}

func TestVerifyHMACRejectsWrongKey(t *testing.T) {
	buf := Encode(testHeader(), bytes.Repeat([]byte{0x11}, 32))

	if VerifyHMAC(buf, bytes.Repeat([]byte{0x22}, 32)) {
		t.Error("VerifyHMAC should fail with wrong key")
	}
}

func TestVerifyHMACRejectsShortBuffer(t *testing.T) {
	if VerifyHMAC(make([]byte, 10), bytes.Repeat([]byte{0x11}, 32)) {
		t.Error("VerifyHMAC should fail on short buffer")
	}
}

func TestHeaderValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(h *Header)
		wantErr bool
	}{
		{"valid", func(h *Header) {}, false},
		{"logN too low", func(h *Header) { h.LogN = 9 }, true},
		{"logN too high", func(h *Header) { h.LogN = 41 }, true},
		{"r zero", func(h *Header) { h.R = 0 }, true},
		{"p zero", func(h *Header) { h.P = 0 }, true},
		{"r*p too big", func(h *Header) { h.R = 1 << 20; h.P = 1 << 20 }, true},
		{"bad version", func(h *Header) { h.Version = 5 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := testHeader()
			tc.mutate(h)
			err := h.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() err = %v; wantErr %v", err, tc.wantErr)
			}
		})
	}
}
