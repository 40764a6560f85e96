package crypto

import (
	"hash"
	"io"

	"git.gammaspectra.live/P2Pool/monero-outproof/types"
	"golang.org/x/crypto/sha3"
)

type HashReader interface {
	hash.Hash
	io.Reader
}

func newKeccak256() HashReader {
	return sha3.NewLegacyKeccak256().(HashReader)
}

func Keccak256[T ~string | ~[]byte](data T) (result types.Hash) {
	h := newKeccak256()
	_, _ = h.Write([]byte(data))
	_, _ = h.Read(result[:types.HashSize])

	return
}

func Keccak256Var[T ~string | ~[]byte](data ...T) (result types.Hash) {
	h := newKeccak256()
	for _, b := range data {
		_, _ = h.Write([]byte(b))
	}
	_, _ = h.Read(result[:types.HashSize])

	return
}
