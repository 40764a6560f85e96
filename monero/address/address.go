package address

import (
	"git.gammaspectra.live/P2Pool/monero-outproof/base58"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero"
	"git.gammaspectra.live/P2Pool/monero-outproof/monero/crypto"
)

// Address Immutable recipient address value.
//
// Guaranteed addresses additionally bind their ownership proofs to
// transaction-input uniqueness; they share key material with regular
// addresses but proofs across the two variants are not interchangeable.
type Address struct {
	SpendPub crypto.PublicKeyBytes
	ViewPub  crypto.PublicKeyBytes
	// PaymentId Short payment id, integrated addresses only
	PaymentId    [monero.PaymentIdSize]byte
	TypeNetwork  uint8
	Guaranteed   bool
	HasPaymentId bool
}

const ChecksumLength = 4

type Checksum [ChecksumLength]byte

func (a *Address) SpendPublicKey() *crypto.PublicKeyBytes {
	return &a.SpendPub
}

func (a *Address) ViewPublicKey() *crypto.PublicKeyBytes {
	return &a.ViewPub
}

func (a *Address) BaseNetwork() uint8 {
	switch a.TypeNetwork {
	case monero.MainNetwork, monero.IntegratedMainNetwork, monero.SubAddressMainNetwork:
		return monero.MainNetwork
	case monero.TestNetwork, monero.IntegratedTestNetwork, monero.SubAddressTestNetwork:
		return monero.TestNetwork
	case monero.StageNetwork, monero.IntegratedStageNetwork, monero.SubAddressStageNetwork:
		return monero.StageNetwork
	default:
		return 0
	}
}

func (a *Address) IsSubaddress() bool {
	return a.TypeNetwork == monero.SubAddressMainNetwork || a.TypeNetwork == monero.SubAddressTestNetwork || a.TypeNetwork == monero.SubAddressStageNetwork
}

func (a *Address) IsIntegrated() bool {
	return a.TypeNetwork == monero.IntegratedMainNetwork || a.TypeNetwork == monero.IntegratedTestNetwork || a.TypeNetwork == monero.IntegratedStageNetwork
}

func (a *Address) IsGuaranteed() bool {
	return a.Guaranteed
}

const rawAddressLength = 1 + crypto.PublicKeySize*2 + ChecksumLength
const rawIntegratedAddressLength = rawAddressLength + monero.PaymentIdSize

// FromBase58 Parses an address string, nil if the encoding, network tag or
// checksum is invalid
func FromBase58(address string) *Address {
	raw := base58.Decode(address)

	switch len(raw) {
	case rawAddressLength, rawIntegratedAddressLength:
	default:
		return nil
	}

	integrated := len(raw) == rawIntegratedAddressLength

	switch raw[0] {
	case monero.MainNetwork, monero.TestNetwork, monero.StageNetwork,
		monero.SubAddressMainNetwork, monero.SubAddressTestNetwork, monero.SubAddressStageNetwork:
		if integrated {
			return nil
		}
	case monero.IntegratedMainNetwork, monero.IntegratedTestNetwork, monero.IntegratedStageNetwork:
		if !integrated {
			return nil
		}
	default:
		return nil
	}

	checksum := checksumHash(raw[:len(raw)-ChecksumLength])
	if string(checksum[:]) != string(raw[len(raw)-ChecksumLength:]) {
		return nil
	}

	a := &Address{
		TypeNetwork: raw[0],
	}
	copy(a.SpendPub[:], raw[1:1+crypto.PublicKeySize])
	copy(a.ViewPub[:], raw[1+crypto.PublicKeySize:1+crypto.PublicKeySize*2])
	if integrated {
		copy(a.PaymentId[:], raw[1+crypto.PublicKeySize*2:])
		a.HasPaymentId = true
	}

	return a
}

// ToBase58 Renders the address, including the keccak checksum
func (a *Address) ToBase58() string {
	buf := make([]byte, 0, rawIntegratedAddressLength)
	buf = append(buf, a.TypeNetwork)
	buf = append(buf, a.SpendPub[:]...)
	buf = append(buf, a.ViewPub[:]...)
	if a.HasPaymentId {
		buf = append(buf, a.PaymentId[:]...)
	}
	checksum := checksumHash(buf)
	buf = append(buf, checksum[:]...)
	return base58.Encode(buf)
}

func checksumHash(data []byte) (sum Checksum) {
	h := crypto.GetKeccak256Hasher()
	defer crypto.PutKeccak256Hasher(h)
	_, _ = h.Write(data)
	_, _ = h.Read(sum[:])
	return sum
}
