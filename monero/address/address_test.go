package address

import (
	"testing"

	"git.gammaspectra.live/P2Pool/wallet-rpc/monero"
)

const testAddress = "42HEEF3NM9cHkJoPpDhNyJHuZ6DFhdtymCohF9CwP5KPM1Mp3eH2RVXCPRrxe4iWRogT7299R8PP7drGvThE8bHmRDq1qWp"
const testAddress2 = "4AQ3YkqG2XdWsPHEgrDGdyQLq1qMMGFqWTFJfrVQW99qPmCzZKvJqzxgf5342KC17o9bchfJcUzLhVW9QgNKTYUBLg876Gt"

func TestDecode(t *testing.T) {
	for _, s := range []string{testAddress, testAddress2} {
		a, err := Decode(s)
		if err != nil {
			t.Fatalf("decode %s: %s", s, err)
		}
		if a.BaseNetwork() != monero.MainNetwork {
			t.Fatalf("expected mainnet, got %d", a.BaseNetwork())
		}
		if a.IsSubaddress() || a.IsIntegrated() {
			t.Fatal("expected standard address")
		}
		if a.String() != s {
			t.Fatalf("round trip mismatch, expected %s, got %s", s, a.String())
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"4",
		testAddress[:len(testAddress)-1] + "q",
		testAddress[:90],
	} {
		if _, err := Decode(s); err == nil {
			t.Fatalf("expected error decoding %q", s)
		}
		if FromBase58(s) != nil {
			t.Fatalf("expected nil address for %q", s)
		}
	}
}

func TestIntegrated(t *testing.T) {
	base := FromBase58(testAddress)
	paymentID := [monero.PaymentIDShortSize]byte{1, 2, 3, 4, 5, 6, 7, 8}

	integrated := FromRawAddress(monero.IntegratedMainNetwork, base.SpendPub, base.ViewPub, &paymentID)
	encoded := integrated.String()

	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !decoded.IsIntegrated() {
		t.Fatal("expected integrated address")
	}
	if decoded.PaymentID == nil || *decoded.PaymentID != paymentID {
		t.Fatalf("payment id mismatch, got %v", decoded.PaymentID)
	}
	if decoded.SpendPub != base.SpendPub || decoded.ViewPub != base.ViewPub {
		t.Fatal("key mismatch")
	}
}

func TestJSON(t *testing.T) {
	a := FromBase58(testAddress)
	buf, err := a.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var b Address
	if err = b.UnmarshalJSON(buf); err != nil {
		t.Fatal(err)
	}
	if b.String() != testAddress {
		t.Fatalf("expected %s, got %s", testAddress, b.String())
	}
}

func TestCache(t *testing.T) {
	c := NewCache(1)

	a, err := c.Decode(testAddress)
	if err != nil {
		t.Fatal(err)
	}
	again, err := c.Decode(testAddress)
	if err != nil {
		t.Fatal(err)
	}
	if a != again {
		t.Fatal("expected cached pointer")
	}

	if _, err = c.Decode("invalid"); err == nil {
		t.Fatal("expected error")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 cached entry, got %d", c.Len())
	}

	if _, err = c.Decode(testAddress2); err != nil {
		t.Fatal(err)
	}
	if c.Len() != 1 {
		t.Fatalf("expected eviction, got %d entries", c.Len())
	}
}
