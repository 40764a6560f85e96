// Package base58 implements the block-chunked base58 codec used by Monero
// for addresses and payment proofs.
//
// Unlike canonical base58, input is processed in fixed 8-byte blocks, each
// encoded to a fixed number of characters. This keeps encodings of
// equal-length inputs at equal length, so field boundaries can be recovered
// without separators.
package base58

import (
	"lukechampine.com/uint128"
)

const alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const alphabetLen = 58

const (
	// BlockLen Bytes consumed per full block
	BlockLen = 8
	// EncodedBlockLen Characters emitted per full block. 58^11 > 2^64 > 58^10
	EncodedBlockLen = 11
)

// reverseAlphabet Maps an ASCII character to its alphabet index, -1 if absent
var reverseAlphabet [256]int8

//nolint:gochecknoinits
func init() {
	for i := range reverseAlphabet {
		reverseAlphabet[i] = -1
	}
	for i := range alphabet {
		reverseAlphabet[alphabet[i]] = int8(i)
	}
}

// EncodedLenForBytes The exact length of an encoding of this many bytes.
//
// Both Encode and Decode defer to this to size the final partial block.
func EncodedLenForBytes(bytes int) int {
	i := (bytes / BlockLen) * EncodedBlockLen
	bytes %= BlockLen

	bits := uint(bytes) * 8
	// Max possible value for this many bits
	var max uint64
	if bits == 64 {
		max = ^uint64(0)
	} else {
		max = (1 << bits) - 1
	}

	for max != 0 {
		max /= alphabetLen
		i++
	}
	return i
}

// Encode an arbitrary-length stream of data
func Encode(data []byte) string {
	res := make([]byte, 0, ((len(data)+BlockLen-1)/BlockLen)*EncodedBlockLen)

	for len(data) > 0 {
		chunk := data
		if len(chunk) > BlockLen {
			chunk = chunk[:BlockLen]
		}
		data = data[len(chunk):]

		var val uint64
		for _, b := range chunk {
			val = (val << 8) | uint64(b)
		}

		// Digits come out least significant first, padded with the
		// zero-value symbol up to the fixed chunk width
		var chunkStr [EncodedBlockLen]byte
		for i := range chunkStr {
			chunkStr[i] = alphabet[0]
		}
		for i := 0; val > 0; i++ {
			chunkStr[i] = alphabet[val%alphabetLen]
			val /= alphabetLen
		}

		for i := EncodedLenForBytes(len(chunk)) - 1; i >= 0; i-- {
			res = append(res, chunkStr[i])
		}
	}

	return string(res)
}

// Decode an arbitrary-length stream of data.
//
// Returns nil if any character is not in the alphabet, any chunk overflows
// 64 bits, or any chunk length does not correspond to a whole byte count.
// No partial result is ever returned.
func Decode(data string) []byte {
	res := make([]byte, 0, (len(data)/EncodedBlockLen)*BlockLen)

	for len(data) > 0 {
		chunk := data
		if len(chunk) > EncodedBlockLen {
			chunk = chunk[:EncodedBlockLen]
		}
		data = data[len(chunk):]

		sum := uint128.Zero
		for i := 0; i < len(chunk); i++ {
			digit := reverseAlphabet[chunk[i]]
			if digit < 0 {
				return nil
			}
			sum = sum.Mul64(alphabetLen).Add64(uint64(digit))
			if sum.Hi != 0 {
				// Chunk value exceeds the 64-bit accumulator
				return nil
			}
		}

		usedBytes := -1
		for i := 1; i <= BlockLen; i++ {
			if EncodedLenForBytes(i) == len(chunk) {
				usedBytes = i
				break
			}
		}
		if usedBytes < 0 {
			return nil
		}

		val := sum.Lo
		for i := usedBytes - 1; i >= 0; i-- {
			res = append(res, byte(val>>(uint(i)*8)))
		}
	}

	return res
}
