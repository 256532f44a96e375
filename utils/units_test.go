package utils

import "testing"

func TestXMRUnits(t *testing.T) {
	for v, expected := range map[uint64]string{
		0:                    "0.000000000000",
		1:                    "0.000000000001",
		XMRDenomination:      "1.000000000000",
		1500000000000:        "1.500000000000",
		18446744073709551615: "18446744.073709551615",
	} {
		if s := XMRUnits(v); s != expected {
			t.Fatalf("expected %s, got %s", expected, s)
		}
	}
}

func TestParseXMRUnits(t *testing.T) {
	for s, expected := range map[string]uint64{
		"0":                     0,
		"1":                     XMRDenomination,
		"1.5":                   1500000000000,
		".000000000001":         1,
		"2.":                    2 * XMRDenomination,
		"18446744.073709551615": 18446744073709551615,
	} {
		v, err := ParseXMRUnits(s)
		if err != nil {
			t.Fatalf("parse %q: %s", s, err)
		}
		if v != expected {
			t.Fatalf("parse %q: expected %d, got %d", s, expected, v)
		}
		if back, _ := ParseXMRUnits(XMRUnits(v)); back != v {
			t.Fatalf("round trip %d: got %d", v, back)
		}
	}

	for _, s := range []string{"", ".", "-1", "+1", "1.0000000000001", "abc", "1.2.3", "18446744.073709551616"} {
		if _, err := ParseXMRUnits(s); err == nil {
			t.Fatalf("expected error parsing %q", s)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("debug")
	if err != nil {
		t.Fatal(err)
	}
	if level&LogLevelDebug == 0 || level&LogLevelError == 0 {
		t.Fatalf("unexpected level mask %b", level)
	}
	if _, err = ParseLogLevel("verbose"); err == nil {
		t.Fatal("expected error")
	}
}
