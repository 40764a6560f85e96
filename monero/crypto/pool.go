package crypto

import (
	"sync"

	"git.gammaspectra.live/P2Pool/monero-outproof/types"
	"git.gammaspectra.live/P2Pool/sha3"
)

var hasherPool = sync.Pool{
	New: func() any {
		return sha3.NewLegacyKeccak256()
	},
}

func GetKeccak256Hasher() *sha3.HasherState {
	return hasherPool.Get().(*sha3.HasherState)
}

func PutKeccak256Hasher(h *sha3.HasherState) {
	h.Reset()
	hasherPool.Put(h)
}

func PooledKeccak256(data ...[]byte) (result types.Hash) {
	h := GetKeccak256Hasher()
	defer PutKeccak256Hasher(h)
	for _, b := range data {
		_, _ = h.Write(b)
	}
	_, _ = h.Read(result[:])
	return
}
