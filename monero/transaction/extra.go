package transaction

import (
	"encoding/binary"
	"errors"

	"git.gammaspectra.live/P2Pool/monero-outproof/monero"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
	"git.gammaspectra.live/P2Pool/monero-outproof/types"
	"git.gammaspectra.live/P2Pool/monero-outproof/utils"
)

const (
	TxExtraTagPadding           = 0x00
	TxExtraTagPubKey            = 0x01
	TxExtraTagNonce             = 0x02
	TxExtraTagMergeMining       = 0x03
	TxExtraTagAdditionalPubKeys = 0x04

	TxExtraPaddingMaxCount = 255
	TxExtraNonceMaxCount   = 255

	// TxExtraNonceEncryptedPaymentId First byte of a nonce field holding a
	// short encrypted payment id
	TxExtraNonceEncryptedPaymentId = 0x01
)

type ExtraTag struct {
	// VarInt Depth for TxExtraTagMergeMining, count for
	// TxExtraTagAdditionalPubKeys and TxExtraTagPadding
	VarInt    uint64      `json:"var_int,omitempty"`
	Data      types.Bytes `json:"data,omitempty"`
	Tag       uint8       `json:"tag"`
	HasVarInt bool        `json:"has_var_int,omitempty"`
}

type ExtraTags []ExtraTag

func (t ExtraTags) GetTag(tag uint8) *ExtraTag {
	for i := range t {
		if t[i].Tag == tag {
			return &t[i]
		}
	}
	return nil
}

// PublicKeys The transaction's primary output public key, and the optional
// per-output additional keys
func (t ExtraTags) PublicKeys() (primary *crypto.PublicKeyBytes, additional []crypto.PublicKeyBytes) {
	if pubTag := t.GetTag(TxExtraTagPubKey); pubTag != nil && len(pubTag.Data) == crypto.PublicKeySize {
		primary = &crypto.PublicKeyBytes{}
		copy(primary[:], pubTag.Data)
	}

	if pubsTag := t.GetTag(TxExtraTagAdditionalPubKeys); pubsTag != nil && len(pubsTag.Data) > 0 && len(pubsTag.Data)%crypto.PublicKeySize == 0 {
		additional = make([]crypto.PublicKeyBytes, len(pubsTag.Data)/crypto.PublicKeySize)
		for i := range additional {
			copy(additional[i][:], pubsTag.Data[i*crypto.PublicKeySize:])
		}
	}

	return primary, additional
}

// EncryptedPaymentId The short encrypted payment id from the nonce field,
// if one is present
func (t ExtraTags) EncryptedPaymentId() (id [monero.PaymentIdSize]byte, ok bool) {
	nonceTag := t.GetTag(TxExtraTagNonce)
	if nonceTag == nil || len(nonceTag.Data) != 1+monero.PaymentIdSize || nonceTag.Data[0] != TxExtraNonceEncryptedPaymentId {
		return id, false
	}
	copy(id[:], nonceTag.Data[1:])
	return id, true
}

func (t *ExtraTags) UnmarshalBinary(data []byte) error {
	*t = (*t)[:0]
	for len(data) > 0 {
		var tag ExtraTag
		n, err := tag.fromBytes(data)
		if err != nil {
			return err
		}
		data = data[n:]
		*t = append(*t, tag)
	}
	return nil
}

func (t ExtraTags) BufferLength() (n int) {
	for i := range t {
		n += t[i].BufferLength()
	}
	return n
}

func (t ExtraTags) MarshalBinary() ([]byte, error) {
	return t.AppendBinary(make([]byte, 0, t.BufferLength()))
}

func (t ExtraTags) AppendBinary(preAllocatedBuf []byte) (data []byte, err error) {
	data = preAllocatedBuf
	for i := range t {
		if data, err = t[i].AppendBinary(data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

func (tag *ExtraTag) fromBytes(data []byte) (n int, err error) {
	tag.Tag = data[0]
	n = 1
	data = data[1:]

	readVarInt := func() (uint64, error) {
		v, size := utils.CanonicalUvarint(data)
		if size <= 0 {
			return 0, errors.New("invalid varint in extra")
		}
		n += size
		data = data[size:]
		return v, nil
	}

	readData := func(size uint64) error {
		if uint64(len(data)) < size {
			return errors.New("not enough bytes in extra")
		}
		tag.Data = make(types.Bytes, size)
		copy(tag.Data, data[:size])
		n += int(size)
		data = data[size:]
		return nil
	}

	switch tag.Tag {
	case TxExtraTagPadding:
		// Zero bytes up to the first non-zero byte or end of data
		var count uint64 = 1
		for ; count-1 < uint64(len(data)); count++ {
			if count > TxExtraPaddingMaxCount {
				return 0, errors.New("padding too long")
			}
			if data[count-1] != 0 {
				break
			}
		}
		count--
		tag.VarInt = count
		tag.HasVarInt = true
		n += int(count)
	case TxExtraTagPubKey:
		if err = readData(crypto.PublicKeySize); err != nil {
			return 0, err
		}
	case TxExtraTagNonce:
		size, err := readVarInt()
		if err != nil {
			return 0, err
		}
		if size > TxExtraNonceMaxCount {
			return 0, errors.New("nonce too long")
		}
		tag.VarInt = size
		tag.HasVarInt = true
		if err = readData(size); err != nil {
			return 0, err
		}
	case TxExtraTagMergeMining:
		depth, err := readVarInt()
		if err != nil {
			return 0, err
		}
		tag.VarInt = depth
		tag.HasVarInt = true
		if err = readData(types.HashSize); err != nil {
			return 0, err
		}
	case TxExtraTagAdditionalPubKeys:
		count, err := readVarInt()
		if err != nil {
			return 0, err
		}
		tag.VarInt = count
		tag.HasVarInt = true
		if count > uint64(len(data))/crypto.PublicKeySize {
			return 0, errors.New("too many additional public keys")
		}
		if err = readData(count * crypto.PublicKeySize); err != nil {
			return 0, err
		}
	default:
		return 0, errors.New("unknown extra tag")
	}

	return n, nil
}

func (tag *ExtraTag) BufferLength() (n int) {
	n = 1
	switch tag.Tag {
	case TxExtraTagPadding:
		n += int(tag.VarInt)
	case TxExtraTagNonce, TxExtraTagMergeMining, TxExtraTagAdditionalPubKeys:
		n += utils.UVarInt64Size(tag.VarInt) + len(tag.Data)
	default:
		n += len(tag.Data)
	}
	return n
}

func (tag *ExtraTag) UnmarshalBinary(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty extra tag")
	}
	n, err := tag.fromBytes(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return errors.New("leftover bytes in extra tag")
	}
	return nil
}

func (tag *ExtraTag) MarshalBinary() ([]byte, error) {
	return tag.AppendBinary(make([]byte, 0, tag.BufferLength()))
}

func (tag *ExtraTag) AppendBinary(preAllocatedBuf []byte) (data []byte, err error) {
	data = append(preAllocatedBuf, tag.Tag)
	switch tag.Tag {
	case TxExtraTagPadding:
		if tag.VarInt > TxExtraPaddingMaxCount {
			return nil, errors.New("padding too long")
		}
		data = append(data, make([]byte, tag.VarInt)...)
	case TxExtraTagPubKey:
		data = append(data, tag.Data...)
	case TxExtraTagNonce, TxExtraTagMergeMining, TxExtraTagAdditionalPubKeys:
		data = binary.AppendUvarint(data, tag.VarInt)
		data = append(data, tag.Data...)
	default:
		return nil, errors.New("unknown extra tag")
	}
	return data, nil
}
