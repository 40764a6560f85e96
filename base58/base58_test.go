package base58

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodedLenForBytes(t *testing.T) {
	for n := 0; n <= 16; n++ {
		zero := make([]byte, n)
		full := bytes.Repeat([]byte{0xff}, n)

		expected := EncodedLenForBytes(n)
		require.Len(t, Encode(zero), expected, "all-zero input of %d bytes", n)
		require.Len(t, Encode(full), expected, "all-ff input of %d bytes", n)
	}
}

func TestRoundTrip(t *testing.T) {
	for n := 0; n <= 40; n++ {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(i*37 + n)
		}

		encoded := Encode(buf)
		decoded := Decode(encoded)
		if decoded == nil {
			t.Fatalf("failed to decode %q (length %d)", encoded, n)
		}
		if !bytes.Equal(decoded, buf) {
			t.Fatalf("roundtrip mismatch at length %d: have %x, want %x", n, decoded, buf)
		}
	}
}

func TestEncodeZero(t *testing.T) {
	if s := Encode([]byte{0}); s != "11" {
		t.Fatalf("expected \"11\", got %q", s)
	}
	if s := Encode(nil); s != "" {
		t.Fatalf("expected empty encoding, got %q", s)
	}
}

func TestDecodeInvalidCharacter(t *testing.T) {
	// 'l', 'I', 'O' and '0' are absent from the alphabet
	for _, s := range []string{"l1", "I1", "O1", "01", "1 "} {
		if Decode(s) != nil {
			t.Errorf("decoded %q despite invalid character", s)
		}
	}
}

func TestDecodeOverflow(t *testing.T) {
	// 11 'z' characters accumulate to 58^11 - 1 > 2^64
	if Decode(strings.Repeat("z", EncodedBlockLen)) != nil {
		t.Fatal("decoded a chunk exceeding the 64-bit accumulator")
	}
}

func TestDecodeInvalidChunkLength(t *testing.T) {
	// No byte count in 1..=8 encodes to exactly 1 or 4 characters
	for _, s := range []string{"1", "1111"} {
		if Decode(s) != nil {
			t.Errorf("decoded %q despite invalid chunk length", s)
		}
	}
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add(bytes.Repeat([]byte{0xff}, 9))
	f.Fuzz(func(t *testing.T, buf []byte) {
		decoded := Decode(Encode(buf))
		if decoded == nil {
			t.Fatal("failed to decode own encoding")
		}
		if !bytes.Equal(decoded, buf) {
			t.Fatalf("roundtrip mismatch: have %x, want %x", decoded, buf)
		}
	})
}
