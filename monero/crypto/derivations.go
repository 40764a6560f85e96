package crypto

import (
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/edwards25519"
	"git.gammaspectra.live/P2Pool/monero-outproof/types"
)

var viewTagDomain = []byte("view_tag")
var commitmentMaskDomain = []byte("commitment_mask")
var encryptedAmountDomain = []byte("amount")

// SharedKeyDerivations Per-output secret material recovered from an ECDH
// point. Recoverable secret; callers must Wipe it once done.
type SharedKeyDerivations struct {
	// ViewTag Hs("view_tag" || 8Ra || o), first byte
	ViewTag uint8
	// SharedKey Hs(uniqueness || 8Ra || o) where uniqueness may be empty
	SharedKey edwards25519.Scalar
}

func (d *SharedKeyDerivations) Wipe() {
	WipeScalar(&d.SharedKey)
	d.ViewTag = 0
}

// OutputDerivations Derives the view tag and shared key for one output.
//
// ecdh is multiplied by the cofactor before use, clearing any small-subgroup
// component. uniqueness is only passed for guaranteed addresses.
func OutputDerivations(uniqueness *types.Hash, ecdh *edwards25519.Point, outputIndex uint64) *SharedKeyDerivations {
	var d8 edwards25519.Point
	d8.MultByCofactor(ecdh)

	var buf [PublicKeySize + binary.MaxVarintLen64]byte
	copy(buf[:], d8.Bytes())
	n := PublicKeySize + binary.PutUvarint(buf[PublicKeySize:], outputIndex)
	defer WipeBytes(buf[:n])

	d := &SharedKeyDerivations{
		ViewTag: PooledKeccak256(viewTagDomain, buf[:n])[0],
	}

	if uniqueness != nil {
		ScalarDeriveLegacyNoAllocate(&d.SharedKey, uniqueness[:], buf[:n])
	} else {
		ScalarDeriveLegacyNoAllocate(&d.SharedKey, buf[:n])
	}

	return d
}

// PaymentIdXor H(8Ra || 0x8d), first 8 bytes. XOR mask for the short
// encrypted payment id carried in tx extra.
func PaymentIdXor(ecdh *edwards25519.Point) (xor [8]byte) {
	var d8 edwards25519.Point
	d8.MultByCofactor(ecdh)

	k := d8.Bytes()
	h := PooledKeccak256(k, []byte{0x8d})
	copy(xor[:], h[:8])
	WipeBytes(h[:])
	WipeBytes(k)
	return xor
}

// CommitmentMask Hs("commitment_mask" || shared_key)
func (d *SharedKeyDerivations) CommitmentMask(mask *edwards25519.Scalar) *edwards25519.Scalar {
	ScalarDeriveLegacyNoAllocate(mask, commitmentMaskDomain, d.SharedKey.Bytes())
	return mask
}

// CompactAmountEncryption XORs an amount with H("amount" || shared_key).
// The scheme is symmetric; this both encrypts and decrypts.
func (d *SharedKeyDerivations) CompactAmountEncryption(amount uint64) uint64 {
	var key [8]byte
	h := GetKeccak256Hasher()
	defer PutKeccak256Hasher(h)
	_, _ = h.Write(encryptedAmountDomain)
	_, _ = h.Write(d.SharedKey.Bytes())
	_, _ = h.Read(key[:])
	defer WipeBytes(key[:])
	return amount ^ binary.LittleEndian.Uint64(key[:])
}
