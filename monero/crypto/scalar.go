package crypto

import (
	"io"

	"git.gammaspectra.live/P2Pool/edwards25519"
)

// l = 2^252 + 27742317777372353535851937790883648493, the order of the Ed25519 basepoint
var l = [32]byte{0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58, 0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10}

// limit = l * 15, the highest multiple of l that fits in 32 bytes
var limit = [32]byte{0xe3, 0x6a, 0x67, 0x72, 0x8b, 0xce, 0x13, 0x29, 0x8f, 0x30, 0x82, 0x8c, 0x0b, 0xa4, 0x10, 0x39, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xf0}

var zeroScalar = new(edwards25519.Scalar)

//go:nosplit
func IsLimit32(a [32]byte) bool {
	for n := 31; n >= 0; n-- {
		if a[n] < limit[n] {
			return true
		} else if a[n] > limit[n] {
			return false
		}
	}

	return false
}

func IsReduced32(a [32]byte) bool {
	for n := 31; n >= 0; n-- {
		if a[n] < l[n] {
			return true
		} else if a[n] > l[n] {
			return false
		}
	}

	return false
}

// ScalarReduce32
// also called sc_reduce32
// 256-bit integer modulo l
func ScalarReduce32(s *[32]byte) {
	var x edwards25519.Scalar
	var data [64]byte
	copy(data[:], s[:])
	BytesToScalar64(data, &x)
	copy(s[:], x.Bytes())
	WipeBytes(data[:32])
}

func BytesToScalar32(buf [32]byte, c *edwards25519.Scalar) {
	ScalarReduce32(&buf)
	_, _ = c.SetCanonicalBytes(buf[:])
	WipeBytes(buf[:])
}

func BytesToScalar64(buf [64]byte, c *edwards25519.Scalar) {
	_, _ = c.SetUniformBytes(buf[:])
	WipeBytes(buf[:])
}

// ScalarDeriveLegacy Hs(x) = BytesToInt256(Keccak256(x)) mod l
func ScalarDeriveLegacy(data ...[]byte) *edwards25519.Scalar {
	c := new(edwards25519.Scalar)
	ScalarDeriveLegacyNoAllocate(c, data...)
	return c
}

func ScalarDeriveLegacyNoAllocate(c *edwards25519.Scalar, data ...[]byte) {
	h := PooledKeccak256(data...)
	BytesToScalar32(h, c)
	WipeBytes(h[:])
}

// RandomScalar Equivalent to Monero's random32_unbiased / random_scalar
func RandomScalar(k *edwards25519.Scalar, r io.Reader) *edwards25519.Scalar {
	var buf [32]byte
	defer WipeBytes(buf[:])
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil
		}

		if !IsLimit32(buf) {
			continue
		}
		BytesToScalar32(buf, k)

		if k.Equal(zeroScalar) == 0 {
			return k
		}
	}
}

// WipeBytes overwrites secret-derived bytes before the buffer is reused
func WipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// WipeScalar resets a scalar holding secret material
func WipeScalar(s *edwards25519.Scalar) {
	s.Set(zeroScalar)
}
