package hash

import "testing"

func TestFingerprint_Length(t *testing.T) {
	for _, input := range []string{"", "{}", `{"tricks":[]}`} {
		got := Fingerprint([]byte(input))
		if len(got) != FingerprintLength {
			t.Errorf("Fingerprint(%q) length = %d, want %d", input, len(got), FingerprintLength)
		}
	}
}

func TestFingerprint_Deterministic(t *testing.T) {
	first := Fingerprint([]byte("same input"))
	second := Fingerprint([]byte("same input"))
	if first != second {
		t.Errorf("Fingerprint not deterministic: %q != %q", first, second)
	}
}

func TestFingerprint_DifferentInputs(t *testing.T) {
	if Fingerprint([]byte("input a")) == Fingerprint([]byte("input b")) {
		t.Error("Different inputs produced same fingerprint")
	}
}

func TestFingerprint_KnownValue(t *testing.T) {
	// sha256("") = e3b0c44298fc1c149afbf4c8996fb924...
	if got := Fingerprint(nil); got != "e3b0c44298fc" {
		t.Errorf("Fingerprint(nil) = %q", got)
	}
}
