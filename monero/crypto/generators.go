package crypto

import "git.gammaspectra.live/P2Pool/edwards25519"

// HopefulHashToPoint Directly interprets the keccak hash of data as a
// compressed point, then clears the cofactor. This can fail (it will, 7/8ths
// of the time) so it must not be used generically.
func HopefulHashToPoint(data []byte) *edwards25519.Point {
	result := DecodeCompressedPoint(new(edwards25519.Point), Keccak256(data))
	if result == nil {
		return nil
	}

	// Ensure this point lies within the prime-order subgroup
	result.MultByCofactor(result)

	return result
}

var (
	// GeneratorG generator of 𝔾E
	// G = {x, 4/5 mod q}
	GeneratorG = edwards25519.NewGeneratorPoint()

	// GeneratorH H = 8*to_point(keccak(G))
	// note: to_point(keccak(G)) is known to succeed for the canonical value of G
	//
	// Contrary to convention (`G` for values, `H` for randomness), `H` is used by Monero for amounts within Pedersen commitments
	GeneratorH = HopefulHashToPoint(GeneratorG.Bytes())
)
