package address

import (
	"bytes"
	"errors"

	base58 "git.gammaspectra.live/P2Pool/monero-base58"
	"git.gammaspectra.live/P2Pool/wallet-rpc/monero"
	"golang.org/x/crypto/sha3"
)

const (
	PublicKeySize  = 32
	ChecksumLength = 4

	rawLength           = 1 + PublicKeySize*2 + ChecksumLength
	rawIntegratedLength = rawLength + monero.PaymentIDShortSize
)

type Checksum [ChecksumLength]byte

// Address is a decoded standard, subaddress or integrated address. Keys are kept as opaque bytes,
// all key arithmetic happens within the wallet daemon.
type Address struct {
	SpendPub    [PublicKeySize]byte
	ViewPub     [PublicKeySize]byte
	TypeNetwork uint8
	// PaymentID is only set on integrated addresses
	PaymentID *[monero.PaymentIDShortSize]byte
	checksum  Checksum
}

var (
	ErrInvalidLength   = errors.New("invalid address length")
	ErrInvalidNetwork  = errors.New("invalid address network")
	ErrInvalidChecksum = errors.New("invalid address checksum")
)

// Decode parses a base58 address, verifying its network byte and checksum
func Decode(address string) (*Address, error) {
	preAllocatedBuf := make([]byte, 0, rawIntegratedLength)
	raw := base58.DecodeMoneroBase58PreAllocated(preAllocatedBuf, []byte(address))

	if len(raw) != rawLength && len(raw) != rawIntegratedLength {
		return nil, ErrInvalidLength
	}

	integrated := len(raw) == rawIntegratedLength

	switch raw[0] {
	case monero.MainNetwork, monero.TestNetwork, monero.StageNetwork:
	case monero.SubAddressMainNetwork, monero.SubAddressTestNetwork, monero.SubAddressStageNetwork:
	case monero.IntegratedMainNetwork, monero.IntegratedTestNetwork, monero.IntegratedStageNetwork:
		if !integrated {
			return nil, ErrInvalidLength
		}
	default:
		return nil, ErrInvalidNetwork
	}

	if integrated && !isIntegratedNetwork(raw[0]) {
		return nil, ErrInvalidLength
	}

	payload := raw[:len(raw)-ChecksumLength]
	a := &Address{
		TypeNetwork: raw[0],
		checksum:    checksumHash(payload),
	}

	if !bytes.Equal(a.checksum[:], raw[len(payload):]) {
		return nil, ErrInvalidChecksum
	}

	copy(a.SpendPub[:], raw[1:1+PublicKeySize])
	copy(a.ViewPub[:], raw[1+PublicKeySize:1+PublicKeySize*2])
	if integrated {
		var paymentID [monero.PaymentIDShortSize]byte
		copy(paymentID[:], raw[1+PublicKeySize*2:])
		a.PaymentID = &paymentID
	}

	return a, nil
}

// FromBase58 returns nil for any address Decode rejects
func FromBase58(address string) *Address {
	a, err := Decode(address)
	if err != nil {
		return nil
	}
	return a
}

func FromRawAddress(typeNetwork uint8, spend, view [PublicKeySize]byte, paymentID *[monero.PaymentIDShortSize]byte) *Address {
	a := &Address{
		TypeNetwork: typeNetwork,
		SpendPub:    spend,
		ViewPub:     view,
		PaymentID:   paymentID,
	}
	a.checksum = checksumHash(a.payload())
	return a
}

func (a *Address) payload() []byte {
	buf := make([]byte, 0, rawIntegratedLength)
	buf = append(buf, a.TypeNetwork)
	buf = append(buf, a.SpendPub[:]...)
	buf = append(buf, a.ViewPub[:]...)
	if a.PaymentID != nil {
		buf = append(buf, a.PaymentID[:]...)
	}
	return buf
}

func checksumHash(data []byte) (sum Checksum) {
	h := sha3.NewLegacyKeccak256()
	_, _ = h.Write(data)
	copy(sum[:], h.Sum(nil))
	return sum
}

func isIntegratedNetwork(n uint8) bool {
	return n == monero.IntegratedMainNetwork || n == monero.IntegratedTestNetwork || n == monero.IntegratedStageNetwork
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
	return isIntegratedNetwork(a.TypeNetwork)
}

func (a *Address) ToBase58() []byte {
	buf := make([]byte, 0, 106)
	return base58.EncodeMoneroBase58PreAllocated(buf, a.payload(), a.checksum[:])
}

func (a *Address) String() string {
	return string(a.ToBase58())
}

func (a *Address) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 108)
	buf = append(buf, '"')
	buf = append(buf, a.ToBase58()...)
	buf = append(buf, '"')
	return buf, nil
}

func (a *Address) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("unsupported length")
	}

	addr, err := Decode(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*a = *addr
	return nil
}
