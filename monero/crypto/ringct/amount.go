package ringct

import (
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/edwards25519"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
)

type ProofType uint8

const (
	ProofTypeNull = ProofType(iota)
	ProofTypeFull
	ProofTypeSimple
	ProofTypeBulletproof
	ProofTypeBulletproof2
	ProofTypeCLSAG
	ProofTypeBulletproofPlus
)

// CompactAmount Whether encrypted amounts carry only the 8-byte xor'd
// amount, instead of the original mask/amount scalar pair
func (t ProofType) CompactAmount() bool {
	switch t {
	case ProofTypeBulletproof2, ProofTypeCLSAG, ProofTypeBulletproofPlus:
		return true
	default:
		return false
	}
}

// EncryptedAmount ECDH info for one output.
//
// Original shape: Mask and Amount are full scalars offset by shared-secret
// hashes. Compact shape: only the first 8 bytes of Amount are used, Mask is
// all zero.
type EncryptedAmount struct {
	Mask   crypto.PrivateKeyBytes `json:"mask,omitempty"`
	Amount crypto.PrivateKeyBytes `json:"amount"`
}

// DecryptAmount Opens an encrypted amount with the per-output shared key.
// The returned commitment must be recomputed and checked against the
// on-chain commitment before its amount is trusted.
func DecryptAmount(d *crypto.SharedKeyDerivations, compact bool, enc *EncryptedAmount) (c Commitment) {
	if compact {
		d.CommitmentMask(&c.Mask)
		c.Amount = d.CompactAmountEncryption(binary.LittleEndian.Uint64(enc.Amount[:8]))
		return c
	}

	// mask = enc.mask - Hs(shared_key), amount = enc.amount - Hs(Hs(shared_key)),
	// where both offsets are the raw hashes reduced mod l, not the
	// domain-separated hash_to_scalar
	maskSharedSec := crypto.PooledKeccak256(d.SharedKey.Bytes())

	var offset edwards25519.Scalar
	crypto.BytesToScalar32(maskSharedSec, &offset)
	var maskScalar edwards25519.Scalar
	crypto.BytesToScalar32(enc.Mask, &maskScalar)
	c.Mask.Subtract(&maskScalar, &offset)

	amountSharedSec := crypto.PooledKeccak256(maskSharedSec[:])
	crypto.BytesToScalar32(amountSharedSec, &offset)
	var amountScalar edwards25519.Scalar
	crypto.BytesToScalar32(enc.Amount, &amountScalar)
	amountScalar.Subtract(&amountScalar, &offset)

	// d2b from rctTypes.cpp
	c.Amount = binary.LittleEndian.Uint64(amountScalar.Bytes()[:8])

	crypto.WipeBytes(maskSharedSec[:])
	crypto.WipeBytes(amountSharedSec[:])
	crypto.WipeScalar(&offset)
	crypto.WipeScalar(&maskScalar)
	crypto.WipeScalar(&amountScalar)

	return c
}
