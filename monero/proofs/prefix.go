package proofs

import (
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
	"git.gammaspectra.live/P2Pool/monero-outproof/types"
)

// ProofMessage The conventional message bound by a payment proof: the
// transaction id followed by an arbitrary challenge string
func ProofMessage(txId types.Hash, message string) []byte {
	buf := make([]byte, 0, types.HashSize+len(message))
	buf = append(buf, txId[:]...)
	buf = append(buf, message...)
	return buf
}

// TxPrefixHash Hash of the conventional proof message
func TxPrefixHash(txId types.Hash, message string) types.Hash {
	return crypto.Keccak256Var(txId[:], []byte(message))
}
