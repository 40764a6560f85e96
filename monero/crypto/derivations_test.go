package crypto

import (
	"testing"

	"git.gammaspectra.live/P2Pool/edwards25519"
	fasthex "github.com/tmthrgd/go-hex"
)

func testEcdhPoint(t *testing.T, v byte) *edwards25519.Point {
	t.Helper()
	var k edwards25519.Scalar
	if _, err := k.SetCanonicalBytes([]byte{v, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}); err != nil {
		t.Fatal(err)
	}
	return new(edwards25519.Point).ScalarBaseMult(&k)
}

func TestOutputDerivations(t *testing.T) {
	ecdh := testEcdhPoint(t, 2)

	d := OutputDerivations(nil, ecdh, 0)
	defer d.Wipe()
	again := OutputDerivations(nil, ecdh, 0)
	defer again.Wipe()

	if d.ViewTag != again.ViewTag || d.SharedKey.Equal(&again.SharedKey) == 0 {
		t.Fatal("derivations are not deterministic")
	}

	otherIndex := OutputDerivations(nil, ecdh, 1)
	defer otherIndex.Wipe()
	if d.SharedKey.Equal(&otherIndex.SharedKey) == 1 {
		t.Error("different output indices derived the same shared key")
	}

	otherPoint := OutputDerivations(nil, testEcdhPoint(t, 3), 0)
	defer otherPoint.Wipe()
	if d.SharedKey.Equal(&otherPoint.SharedKey) == 1 {
		t.Error("different points derived the same shared key")
	}
}

// Uniqueness prefixes only the shared key derivation, never the view tag, so
// scanning stays identical across regular and guaranteed wallets
func TestOutputDerivationsUniqueness(t *testing.T) {
	ecdh := testEcdhPoint(t, 2)
	uniqueness := Keccak256("some input set")

	plain := OutputDerivations(nil, ecdh, 0)
	defer plain.Wipe()
	bound := OutputDerivations(&uniqueness, ecdh, 0)
	defer bound.Wipe()

	if plain.ViewTag != bound.ViewTag {
		t.Error("uniqueness changed the view tag")
	}
	if plain.SharedKey.Equal(&bound.SharedKey) == 1 {
		t.Error("uniqueness did not change the shared key")
	}

	otherUniqueness := Keccak256("another input set")
	rebound := OutputDerivations(&otherUniqueness, ecdh, 0)
	defer rebound.Wipe()
	if bound.SharedKey.Equal(&rebound.SharedKey) == 1 {
		t.Error("different uniqueness values derived the same shared key")
	}
}

func TestCompactAmountEncryption(t *testing.T) {
	d := OutputDerivations(nil, testEcdhPoint(t, 5), 3)
	defer d.Wipe()

	for _, amount := range []uint64{0, 1, 1337, ^uint64(0)} {
		enc := d.CompactAmountEncryption(amount)
		if d.CompactAmountEncryption(enc) != amount {
			t.Errorf("amount %d did not roundtrip", amount)
		}
	}
}

func TestCommitmentMask(t *testing.T) {
	d := OutputDerivations(nil, testEcdhPoint(t, 5), 0)
	defer d.Wipe()

	var mask, again edwards25519.Scalar
	d.CommitmentMask(&mask)
	d.CommitmentMask(&again)
	if mask.Equal(&again) == 0 {
		t.Fatal("mask is not deterministic")
	}

	other := OutputDerivations(nil, testEcdhPoint(t, 5), 1)
	defer other.Wipe()
	var otherMask edwards25519.Scalar
	other.CommitmentMask(&otherMask)
	if mask.Equal(&otherMask) == 1 {
		t.Error("different shared keys derived the same mask")
	}
}

func TestPaymentIdXor(t *testing.T) {
	ecdh := testEcdhPoint(t, 7)
	if PaymentIdXor(ecdh) != PaymentIdXor(ecdh) {
		t.Fatal("payment id xor is not deterministic")
	}
	if PaymentIdXor(ecdh) == PaymentIdXor(testEcdhPoint(t, 8)) {
		t.Error("different points derived the same xor mask")
	}
}

func TestGeneratorH(t *testing.T) {
	if GeneratorH == nil {
		t.Fatal("H failed to decode")
	}
	if fasthex.EncodeToString(GeneratorH.Bytes()) != "8b655970153799af2aeadc9ff1add0ea6c7251d54154cfa92c173a0dd39c1f94" {
		t.Errorf("unexpected H: %s", fasthex.EncodeToString(GeneratorH.Bytes()))
	}
}
