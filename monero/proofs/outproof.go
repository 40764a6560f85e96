// Package proofs implements OutProofV2 payment proofs.
//
// An out proof lets the sender of a transaction demonstrate to a third party
// that a specific output was sent to a specific address, without revealing
// the transaction secret key itself. The proof is a Schnorr proof of discrete
// logarithm equality between the transaction public key and the shared ECDH
// point, bound to an arbitrary message.
package proofs

import (
	"errors"
	"io"
	"strings"

	"git.gammaspectra.live/P2Pool/edwards25519"
	"git.gammaspectra.live/P2Pool/monero-outproof/base58"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/address"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto/ringct"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/transaction"
	"git.gammaspectra.live/P2Pool/monero-outproof/types"
	"git.gammaspectra.live/P2Pool/monero-outproof/utils"
)

type jsonOutProof struct {
	ECDH      crypto.PublicKeyBytes  `json:"ecdh"`
	Challenge crypto.PrivateKeyBytes `json:"challenge"`
	Response  crypto.PrivateKeyBytes `json:"response"`
}

// OutProofPrefix Leads every serialized proof string
const OutProofPrefix = "OutProofV2"

var (
	txProofV2Domain           = crypto.Keccak256("TXPROOF_V2")
	txProofV2GuaranteedDomain = crypto.Keccak256("TXPROOF_V2_GUARANTEED")
)

// OutProof A single per-output payment proof: the shared ECDH point plus the
// Schnorr challenge and response over it
type OutProof struct {
	// ECDH Shared point rA between the transaction secret key and the
	// recipient view public key
	ECDH crypto.PublicKeyBytes
	// C Fiat-Shamir challenge
	C edwards25519.Scalar
	// S Response scalar
	S edwards25519.Scalar
}

func separatorDomain(guaranteed bool) types.Hash {
	if guaranteed {
		return txProofV2GuaranteedDomain
	}
	return txProofV2Domain
}

// challenge Hs over the full proof transcript. B is nil unless the address
// is a subaddress.
func challenge(c *edwards25519.Scalar, prefixHash types.Hash, d, x, y *edwards25519.Point, separator types.Hash, r, a, b *edwards25519.Point) {
	comm := signatureComm{
		Message:   prefixHash,
		Separator: separator,
	}
	copy(comm.D[:], d.Bytes())
	copy(comm.X[:], x.Bytes())
	copy(comm.Y[:], y.Bytes())
	copy(comm.R[:], r.Bytes())
	copy(comm.A[:], a.Bytes())
	if b != nil {
		comm.B = &crypto.PublicKeyBytes{}
		copy(comm.B[:], b.Bytes())
	}
	crypto.ScalarDeriveLegacyNoAllocate(c, comm.Bytes())
}

// proofGenerator The base of the transaction public key: the curve basepoint
// for regular addresses, the recipient spend key for subaddresses
func proofGenerator(a *address.Address) *edwards25519.Point {
	if a.IsSubaddress() {
		return a.SpendPub.Point()
	}
	return crypto.GeneratorG
}

// Prove Constructs an out proof for a transaction sent to a with transaction
// secret key txKey, bound to prefixHash.
//
// The nonce is drawn from random; pass crypto/rand.Reader outside of tests.
func Prove(a *address.Address, txKey *edwards25519.Scalar, prefixHash types.Hash, random io.Reader) (*OutProof, error) {
	viewPub := a.ViewPub.Point()
	if viewPub == nil {
		return nil, errors.New("invalid view public key")
	}
	generator := proofGenerator(a)
	if generator == nil {
		return nil, errors.New("invalid spend public key")
	}
	var spendPub *edwards25519.Point
	if a.IsSubaddress() {
		spendPub = generator
	}

	// D = rA, R = r * generator
	ecdh := new(edwards25519.Point).ScalarMult(txKey, viewPub)
	txPub := new(edwards25519.Point).ScalarMult(txKey, generator)

	var k edwards25519.Scalar
	if crypto.RandomScalar(&k, random) == nil {
		return nil, errors.New("failed to generate nonce")
	}
	defer crypto.WipeScalar(&k)

	x := new(edwards25519.Point).ScalarMult(&k, generator)
	y := new(edwards25519.Point).ScalarMult(&k, viewPub)

	proof := &OutProof{}
	copy(proof.ECDH[:], ecdh.Bytes())

	challenge(&proof.C, prefixHash, ecdh, x, y, separatorDomain(a.IsGuaranteed()), txPub, viewPub, spendPub)

	// s = k - c * r
	var ck edwards25519.Scalar
	ck.Multiply(&proof.C, txKey)
	proof.S.Subtract(&k, &ck)
	crypto.WipeScalar(&ck)

	return proof, nil
}

// Verify Checks the proof against the output at outputIndex of tx, for
// recipient a and message hash prefixHash.
//
// On success the recovered output amount is returned. Every failure mode,
// from a bad Schnorr equation to a mismatched view tag, yields the same
// (0, false) result.
func (p *OutProof) Verify(tx *transaction.Transaction, outputIndex uint64, a *address.Address, prefixHash types.Hash) (amount uint64, ok bool) {
	if outputIndex >= uint64(len(tx.Outputs)) {
		return 0, false
	}

	primary, additional := tx.Extra.PublicKeys()

	candidates := make([]crypto.PublicKeyBytes, 0, 2)
	if primary != nil {
		candidates = append(candidates, *primary)
	}
	if outputIndex < uint64(len(additional)) {
		candidates = append(candidates, additional[outputIndex])
	}

	for i := range candidates {
		if amount, ok = p.verifyCandidate(tx, outputIndex, a, prefixHash, &candidates[i]); ok {
			return amount, true
		}
	}
	return 0, false
}

func (p *OutProof) verifyCandidate(tx *transaction.Transaction, outputIndex uint64, a *address.Address, prefixHash types.Hash, txPubKey *crypto.PublicKeyBytes) (amount uint64, ok bool) {
	viewPub := a.ViewPub.Point()
	if viewPub == nil {
		return 0, false
	}
	generator := proofGenerator(a)
	if generator == nil {
		return 0, false
	}
	var spendPub *edwards25519.Point
	if a.IsSubaddress() {
		spendPub = generator
	}

	ecdh := p.ECDH.Point()
	txPub := txPubKey.Point()
	if ecdh == nil || txPub == nil {
		return 0, false
	}

	// X = s * generator + c * R, Y = sA + cD
	sGen := new(edwards25519.Point).ScalarMult(&p.S, generator)
	cR := new(edwards25519.Point).ScalarMult(&p.C, txPub)
	x := new(edwards25519.Point).Add(sGen, cR)
	sA := new(edwards25519.Point).ScalarMult(&p.S, viewPub)
	cD := new(edwards25519.Point).ScalarMult(&p.C, ecdh)
	y := new(edwards25519.Point).Add(sA, cD)

	var c edwards25519.Scalar
	challenge(&c, prefixHash, ecdh, x, y, separatorDomain(a.IsGuaranteed()), txPub, viewPub, spendPub)
	if c.Equal(&p.C) == 0 {
		return 0, false
	}

	var uniqueness *types.Hash
	if a.IsGuaranteed() {
		u := tx.Inputs.Uniqueness()
		uniqueness = &u
	}

	derivations := crypto.OutputDerivations(uniqueness, ecdh, outputIndex)
	defer derivations.Wipe()

	out := &tx.Outputs[outputIndex]
	if out.Type == transaction.TxOutToTaggedKey && out.ViewTag != derivations.ViewTag {
		return 0, false
	}

	if a.HasPaymentId {
		encryptedId, present := tx.Extra.EncryptedPaymentId()
		if !present {
			return 0, false
		}
		xor := crypto.PaymentIdXor(ecdh)
		for i := range encryptedId {
			encryptedId[i] ^= xor[i]
		}
		if encryptedId != a.PaymentId {
			return 0, false
		}
	}

	if tx.Proofs == nil {
		return out.Reward, true
	}

	if outputIndex >= uint64(len(tx.Proofs.EncryptedAmounts)) || outputIndex >= uint64(len(tx.Proofs.Commitments)) {
		return 0, false
	}

	commitment := ringct.DecryptAmount(derivations, tx.Proofs.ProofType.CompactAmount(), &tx.Proofs.EncryptedAmounts[outputIndex])
	defer commitment.Wipe()

	if commitment.Calculate() != tx.Proofs.Commitments[outputIndex] {
		return 0, false
	}

	return commitment.Amount, true
}

func (p OutProof) MarshalJSON() ([]byte, error) {
	j := jsonOutProof{ECDH: p.ECDH}
	copy(j.Challenge[:], p.C.Bytes())
	copy(j.Response[:], p.S.Bytes())
	return utils.MarshalJSON(j)
}

func (p *OutProof) UnmarshalJSON(buf []byte) error {
	var j jsonOutProof
	if err := utils.UnmarshalJSON(buf, &j); err != nil {
		return err
	}
	p.ECDH = j.ECDH
	if _, err := p.C.SetCanonicalBytes(j.Challenge[:]); err != nil {
		return err
	}
	if _, err := p.S.SetCanonicalBytes(j.Response[:]); err != nil {
		return err
	}
	return nil
}

var (
	ecdhEncodedLen    = base58.EncodedLenForBytes(crypto.PublicKeySize)
	scalarsEncodedLen = base58.EncodedLenForBytes(crypto.PrivateKeySize * 2)
)

// String The proof serialized on its own, without the shared prefix
func (p *OutProof) String() string {
	buf := make([]byte, 0, crypto.PrivateKeySize*2)
	buf = append(buf, p.C.Bytes()...)
	buf = append(buf, p.S.Bytes()...)
	return base58.Encode(p.ECDH.Slice()) + base58.Encode(buf)
}

// WriteOutProofs Serializes one proof per transaction output sent to the
// recipient, in output order
func WriteOutProofs(proofs []OutProof) string {
	var sb strings.Builder
	sb.Grow(len(OutProofPrefix) + len(proofs)*(ecdhEncodedLen+scalarsEncodedLen))
	sb.WriteString(OutProofPrefix)
	for i := range proofs {
		sb.WriteString(proofs[i].String())
	}
	return sb.String()
}

// ReadOutProofs Parses a serialized proof string.
//
// A string without the version prefix parses as zero proofs rather than an
// error, matching wallet behavior for foreign proof versions.
func ReadOutProofs(data string) ([]OutProof, error) {
	if !strings.HasPrefix(data, OutProofPrefix) {
		return []OutProof{}, nil
	}
	data = data[len(OutProofPrefix):]

	proofLen := ecdhEncodedLen + scalarsEncodedLen
	if len(data)%proofLen != 0 {
		return nil, errors.New("malformed proof length")
	}

	proofs := make([]OutProof, 0, len(data)/proofLen)
	for len(data) > 0 {
		ecdhRaw := base58.Decode(data[:ecdhEncodedLen])
		if len(ecdhRaw) != crypto.PublicKeySize {
			return nil, errors.New("malformed proof key")
		}
		scalarsRaw := base58.Decode(data[ecdhEncodedLen : ecdhEncodedLen+scalarsEncodedLen])
		if len(scalarsRaw) != crypto.PrivateKeySize*2 {
			return nil, errors.New("malformed proof signature")
		}
		data = data[proofLen:]

		var proof OutProof
		copy(proof.ECDH[:], ecdhRaw)
		if _, err := proof.C.SetCanonicalBytes(scalarsRaw[:crypto.PrivateKeySize]); err != nil {
			return nil, errors.New("proof challenge is not a canonical scalar")
		}
		if _, err := proof.S.SetCanonicalBytes(scalarsRaw[crypto.PrivateKeySize:]); err != nil {
			return nil, errors.New("proof response is not a canonical scalar")
		}
		proofs = append(proofs, proof)
	}

	return proofs, nil
}
