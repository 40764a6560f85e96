package ringct

import (
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/edwards25519"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
)

// Commitment An opened Pedersen commitment
type Commitment struct {
	Mask   edwards25519.Scalar
	Amount uint64
}

func (c *Commitment) Wipe() {
	crypto.WipeScalar(&c.Mask)
	c.Amount = 0
}

// AmountToScalar no reduction is necessary: the amount is always lesser than l
func AmountToScalar(out *edwards25519.Scalar, amount uint64) *edwards25519.Scalar {
	var amountBytes crypto.PrivateKeyBytes
	binary.LittleEndian.PutUint64(amountBytes[:], amount)
	_, _ = out.SetCanonicalBytes(amountBytes[:])
	return out
}

// Commit generates C = aG + bH from b, a is mask
func Commit(dst *edwards25519.Point, amount uint64, mask *edwards25519.Scalar) *edwards25519.Point {
	var amountK edwards25519.Scalar
	aG := new(edwards25519.Point).ScalarBaseMult(mask)
	bH := new(edwards25519.Point).ScalarMult(AmountToScalar(&amountK, amount), crypto.GeneratorH)
	return dst.Add(aG, bH)
}

// Calculate the compressed commitment point, for equality checks against the
// on-chain commitment
func (c *Commitment) Calculate() (out crypto.PublicKeyBytes) {
	var p edwards25519.Point
	Commit(&p, c.Amount, &c.Mask)
	copy(out[:], p.Bytes())
	return out
}
