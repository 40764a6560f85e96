package proofs

import (
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
	"git.gammaspectra.live/P2Pool/monero-outproof/types"
)

// signatureComm Transcript hashed into the Fiat-Shamir challenge of an
// OutProofV2
type signatureComm struct {
	// Message Hash of the caller-supplied message
	Message types.Hash
	// D Shared ECDH point
	D crypto.PublicKeyBytes
	// X Nonce commitment over the generator
	X crypto.PublicKeyBytes
	// Y Nonce commitment over the view key
	Y crypto.PublicKeyBytes
	// Separator Domain separation, differs for guaranteed addresses
	Separator types.Hash
	// R Ephemeral key commitment
	R crypto.PublicKeyBytes
	// A View public key
	A crypto.PublicKeyBytes
	// B Spend public key, nil unless the address is a subaddress
	B *crypto.PublicKeyBytes
}

func (s *signatureComm) Bytes() []byte {
	buf := make([]byte, 0, types.HashSize*2+crypto.PublicKeySize*6)
	buf = append(buf, s.Message[:]...)
	buf = append(buf, s.D[:]...)
	buf = append(buf, s.X[:]...)
	buf = append(buf, s.Y[:]...)
	buf = append(buf, s.Separator[:]...)
	buf = append(buf, s.R[:]...)
	buf = append(buf, s.A[:]...)
	if s.B == nil {
		buf = append(buf, crypto.ZeroPublicKeyBytes[:]...)
	} else {
		buf = append(buf, s.B[:]...)
	}
	return buf
}
