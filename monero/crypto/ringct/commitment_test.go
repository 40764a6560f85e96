package ringct

import (
	"testing"

	"git.gammaspectra.live/P2Pool/edwards25519"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
)

func scalarFromUint64(t *testing.T, v uint64) *edwards25519.Scalar {
	t.Helper()
	s := new(edwards25519.Scalar)
	if AmountToScalar(s, v) == nil {
		t.Fatal("amount conversion failed")
	}
	return s
}

func TestCommitIdentities(t *testing.T) {
	var p edwards25519.Point

	// 1*G + 0*H = G
	Commit(&p, 0, scalarFromUint64(t, 1))
	if p.Equal(crypto.GeneratorG) == 0 {
		t.Error("commit(0, 1) != G")
	}

	// 0*G + 1*H = H
	Commit(&p, 1, scalarFromUint64(t, 0))
	if p.Equal(crypto.GeneratorH) == 0 {
		t.Error("commit(1, 0) != H")
	}
}

func TestCommitmentCalculate(t *testing.T) {
	c := Commitment{Amount: 123456789}
	if AmountToScalar(&c.Mask, 42) == nil {
		t.Fatal("amount conversion failed")
	}

	var p edwards25519.Point
	Commit(&p, c.Amount, &c.Mask)
	if c.Calculate() != crypto.PublicKeyBytes(p.Bytes()) {
		t.Error("calculated commitment does not match commit")
	}
}

func TestDecryptAmountCompact(t *testing.T) {
	var k edwards25519.Scalar
	if AmountToScalar(&k, 99) == nil {
		t.Fatal("scalar setup failed")
	}
	d := crypto.OutputDerivations(nil, new(edwards25519.Point).ScalarBaseMult(&k), 2)
	defer d.Wipe()

	const amount = 250000000

	var enc EncryptedAmount
	encrypted := d.CompactAmountEncryption(amount)
	for i := 0; i < 8; i++ {
		enc.Amount[i] = byte(encrypted >> (8 * i))
	}

	c := DecryptAmount(d, true, &enc)
	defer c.Wipe()
	if c.Amount != amount {
		t.Fatalf("decrypted %d, want %d", c.Amount, amount)
	}

	var expectedMask edwards25519.Scalar
	d.CommitmentMask(&expectedMask)
	if c.Mask.Equal(&expectedMask) == 0 {
		t.Error("mask does not match commitment mask derivation")
	}
}

func TestProofTypeCompactAmount(t *testing.T) {
	for proofType, compact := range map[ProofType]bool{
		ProofTypeNull:            false,
		ProofTypeFull:            false,
		ProofTypeSimple:          false,
		ProofTypeBulletproof:     false,
		ProofTypeBulletproof2:    true,
		ProofTypeCLSAG:           true,
		ProofTypeBulletproofPlus: true,
	} {
		if proofType.CompactAmount() != compact {
			t.Errorf("proof type %d: compact %v", proofType, proofType.CompactAmount())
		}
	}
}
