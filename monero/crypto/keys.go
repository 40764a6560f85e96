package crypto

import (
	"crypto/subtle"
	"errors"

	"git.gammaspectra.live/P2Pool/edwards25519"
	fasthex "github.com/tmthrgd/go-hex"
)

const PublicKeySize = 32
const PrivateKeySize = 32

var ZeroPublicKeyBytes = PublicKeyBytes{}
var ZeroPrivateKeyBytes = PrivateKeyBytes{}

type PublicKeyBytes [PublicKeySize]byte

func (k *PublicKeyBytes) Slice() []byte {
	return (*k)[:]
}

// Point Decodes the compressed key, nil if the encoding is not canonical
func (k *PublicKeyBytes) Point() *edwards25519.Point {
	return DecodeCompressedPoint(new(edwards25519.Point), *k)
}

func (k *PublicKeyBytes) String() string {
	return fasthex.EncodeToString(k.Slice())
}

func (k *PublicKeyBytes) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != PublicKeySize*2+2 {
		return errors.New("wrong key size")
	}

	if _, err := fasthex.Decode(k[:], b[1:len(b)-1]); err != nil {
		return err
	}
	return nil
}

func (k PublicKeyBytes) MarshalJSON() ([]byte, error) {
	var buf [PublicKeySize*2 + 2]byte
	buf[0] = '"'
	buf[PublicKeySize*2+1] = '"'
	fasthex.Encode(buf[1:], k[:])
	return buf[:], nil
}

type PrivateKeyBytes [PrivateKeySize]byte

func (k *PrivateKeyBytes) Slice() []byte {
	return (*k)[:]
}

// Scalar nil if the encoding is not canonical
func (k *PrivateKeyBytes) Scalar() *edwards25519.Scalar {
	if secret, err := new(edwards25519.Scalar).SetCanonicalBytes((*k)[:]); err != nil {
		return nil
	} else {
		return secret
	}
}

func (k *PrivateKeyBytes) String() string {
	return fasthex.EncodeToString(k.Slice())
}

func (k *PrivateKeyBytes) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != PrivateKeySize*2+2 {
		return errors.New("wrong key size")
	}

	if _, err := fasthex.Decode(k[:], b[1:len(b)-1]); err != nil {
		return err
	}
	return nil
}

func (k PrivateKeyBytes) MarshalJSON() ([]byte, error) {
	var buf [PrivateKeySize*2 + 2]byte
	buf[0] = '"'
	buf[PrivateKeySize*2+1] = '"'
	fasthex.Encode(buf[1:], k[:])
	return buf[:], nil
}

// DecodeCompressedPoint Decompress a canonically-encoded Ed25519 point.
//
// Ed25519 is of order `8 * l`. This function ensures each of those `8 * l`
// points have a singular encoding by checking points aren't encoded with an
// unreduced field element, and aren't negative when the negative is
// equivalent (0 == -0).
//
// Since this decodes an Ed25519 point, it does not check the point is in the
// prime-order subgroup. Torsioned points do have a canonical encoding, and
// only aren't canonical when considered in relation to the prime-order
// subgroup.
func DecodeCompressedPoint(r *edwards25519.Point, buf [PublicKeySize]byte) *edwards25519.Point {
	if r == nil {
		return nil
	}
	p, err := r.SetBytes(buf[:])
	if err != nil {
		return nil
	}

	// Ban points which are either unreduced or -0
	if subtle.ConstantTimeCompare(p.Bytes(), buf[:]) == 0 {
		return nil
	}
	return p
}
