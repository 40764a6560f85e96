package transaction

import (
	"bytes"
	"testing"

	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
	"git.gammaspectra.live/P2Pool/monero-outproof/types"
)

func TestExtraTagsRoundTrip(t *testing.T) {
	pubKey := make(types.Bytes, crypto.PublicKeySize)
	pubKey[0] = 0xaa
	additional := make(types.Bytes, crypto.PublicKeySize*2)
	additional[crypto.PublicKeySize] = 0xbb

	tags := ExtraTags{
		{Tag: TxExtraTagPubKey, Data: pubKey},
		{Tag: TxExtraTagNonce, VarInt: 9, HasVarInt: true, Data: types.Bytes{TxExtraNonceEncryptedPaymentId, 1, 2, 3, 4, 5, 6, 7, 8}},
		{Tag: TxExtraTagAdditionalPubKeys, VarInt: 2, HasVarInt: true, Data: additional},
	}

	blob, err := tags.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}

	var decoded ExtraTags
	if err = decoded.UnmarshalBinary(blob); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if len(decoded) != len(tags) {
		t.Fatalf("decoded %d tags, want %d", len(decoded), len(tags))
	}

	blob2, err := decoded.MarshalBinary()
	if err != nil {
		t.Fatalf("remarshal: %s", err)
	}
	if !bytes.Equal(blob, blob2) {
		t.Error("roundtrip is not byte stable")
	}
}

func TestExtraTagsPublicKeys(t *testing.T) {
	pubKey := make(types.Bytes, crypto.PublicKeySize)
	pubKey[0] = 0x01
	additional := make(types.Bytes, crypto.PublicKeySize*2)
	additional[0] = 0x02
	additional[crypto.PublicKeySize] = 0x03

	tags := ExtraTags{
		{Tag: TxExtraTagPubKey, Data: pubKey},
		{Tag: TxExtraTagAdditionalPubKeys, VarInt: 2, HasVarInt: true, Data: additional},
	}

	primary, extra := tags.PublicKeys()
	if primary == nil || primary[0] != 0x01 {
		t.Fatal("primary key not extracted")
	}
	if len(extra) != 2 || extra[0][0] != 0x02 || extra[1][0] != 0x03 {
		t.Fatal("additional keys not extracted")
	}

	// No keys at all
	primary, extra = ExtraTags{}.PublicKeys()
	if primary != nil || extra != nil {
		t.Error("keys extracted from empty extra")
	}

	// Wrong sizes are ignored
	primary, extra = ExtraTags{
		{Tag: TxExtraTagPubKey, Data: types.Bytes{1, 2, 3}},
		{Tag: TxExtraTagAdditionalPubKeys, VarInt: 1, HasVarInt: true, Data: types.Bytes{4, 5}},
	}.PublicKeys()
	if primary != nil || extra != nil {
		t.Error("keys extracted from malformed tags")
	}
}

func TestExtraTagsEncryptedPaymentId(t *testing.T) {
	tags := ExtraTags{
		{Tag: TxExtraTagNonce, VarInt: 9, HasVarInt: true, Data: types.Bytes{TxExtraNonceEncryptedPaymentId, 8, 7, 6, 5, 4, 3, 2, 1}},
	}
	id, ok := tags.EncryptedPaymentId()
	if !ok {
		t.Fatal("payment id not found")
	}
	if id != [8]byte{8, 7, 6, 5, 4, 3, 2, 1} {
		t.Errorf("wrong payment id %x", id)
	}

	// Plaintext long payment id nonces are a different format
	if _, ok = (ExtraTags{{Tag: TxExtraTagNonce, VarInt: 33, HasVarInt: true, Data: make(types.Bytes, 33)}}).EncryptedPaymentId(); ok {
		t.Error("payment id extracted from a long nonce")
	}
	if _, ok = (ExtraTags{}).EncryptedPaymentId(); ok {
		t.Error("payment id extracted from empty extra")
	}
}

func TestExtraTagPadding(t *testing.T) {
	blob := make([]byte, 5)

	var tags ExtraTags
	if err := tags.UnmarshalBinary(blob); err != nil {
		t.Fatalf("unmarshal: %s", err)
	}
	if len(tags) != 1 || tags[0].Tag != TxExtraTagPadding || tags[0].VarInt != 4 {
		t.Fatalf("unexpected padding decode %+v", tags)
	}

	out, err := tags.MarshalBinary()
	if err != nil {
		t.Fatalf("marshal: %s", err)
	}
	if !bytes.Equal(out, blob) {
		t.Error("padding roundtrip mismatch")
	}
}

func TestExtraTagInvalid(t *testing.T) {
	var tags ExtraTags
	for _, blob := range [][]byte{
		{0x42},                       // unknown tag
		{TxExtraTagPubKey, 1, 2, 3},  // truncated key
		{TxExtraTagNonce, 0x80, 0x0}, // non-canonical varint
		{TxExtraTagNonce, 0x05, 1},   // nonce shorter than length
	} {
		if err := tags.UnmarshalBinary(blob); err == nil {
			t.Errorf("decoded invalid extra %x", blob)
		}
	}
}

func FuzzExtraTags(f *testing.F) {
	f.Add(make([]byte, 33))
	f.Add([]byte{TxExtraTagNonce, 0x01, 0xfe})
	f.Fuzz(func(t *testing.T, buf []byte) {
		var tags ExtraTags
		if err := tags.UnmarshalBinary(buf); err != nil {
			t.SkipNow()
		}
		blob, err := tags.MarshalBinary()
		if err != nil {
			t.Fatalf("could not remarshal decoded extra: %s", err)
		}
		if !bytes.Equal(blob, buf) {
			t.Fatalf("roundtrip mismatch: %x != %x", blob, buf)
		}
	})
}
