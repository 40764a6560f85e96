package transaction

import (
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto/ringct"
	"git.gammaspectra.live/P2Pool/monero-outproof/types"
)

const (
	TxInGen   = 0xff
	TxInToKey = 0x02

	TxOutToKey       = 0x02
	TxOutToTaggedKey = 0x03
)

type Input struct {
	// GenHeight Block height, TxInGen inputs only
	GenHeight uint64                `json:"gen_height,omitempty"`
	KeyImage  crypto.PublicKeyBytes `json:"k_image,omitempty"`
	Type      uint8                 `json:"type"`
}

type Inputs []Input

var uniquenessDomain = []byte("uniqueness")

// Uniqueness Per-transaction value binding guaranteed-address proofs to
// this exact set of inputs
func (i Inputs) Uniqueness() (u types.Hash) {
	h := crypto.GetKeccak256Hasher()
	defer crypto.PutKeccak256Hasher(h)
	_, _ = h.Write(uniquenessDomain)

	var varIntBuf [binary.MaxVarintLen64]byte
	for _, in := range i {
		if in.Type == TxInGen {
			_, _ = h.Write(varIntBuf[:binary.PutUvarint(varIntBuf[:], in.GenHeight)])
		} else {
			_, _ = h.Write(in.KeyImage[:])
		}
	}
	_, _ = h.Read(u[:])
	return
}

type Output struct {
	Index uint64 `json:"index"`
	// Reward Plaintext amount; zero for outputs whose amount is carried
	// encrypted in the RingCT bundle
	Reward             uint64                `json:"reward"`
	EphemeralPublicKey crypto.PublicKeyBytes `json:"ephemeral_public_key"`
	Type               uint8                 `json:"type"`
	// ViewTag Only present on TxOutToTaggedKey outputs
	ViewTag uint8 `json:"view_tag"`
}

type Outputs []Output

// RctProofs Ring-confidential-transaction proof bundle, per-output
// commitments plus encrypted amounts. Range/ring signature data is not
// modeled here; proof verification only opens commitments.
type RctProofs struct {
	ProofType        ringct.ProofType         `json:"proof_type"`
	Fee              uint64                   `json:"fee"`
	EncryptedAmounts []ringct.EncryptedAmount `json:"encrypted_amounts"`
	Commitments      []crypto.PublicKeyBytes  `json:"commitments"`
}

type Transaction struct {
	Version    uint8     `json:"version"`
	UnlockTime uint64    `json:"unlock_time"`
	Inputs     Inputs    `json:"vin"`
	Outputs    Outputs   `json:"vout"`
	Extra      ExtraTags `json:"extra"`
	// Proofs nil for v1 and miner transactions, whose amounts are plaintext
	Proofs *RctProofs `json:"rct_signatures,omitempty"`
}
