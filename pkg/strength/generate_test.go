package strength

import (
	"strings"
	"testing"
)

func TestGenerateLengthBounds(t *testing.T) {
	for _, length := range []int{-1, 0, 3, 129} {
		if _, err := Generate(GenerateSpec{Length: length, Lower: true}); err != ErrGenerateLength {
			t.Errorf("Generate length %d should fail with ErrGenerateLength, have %v", length, err)
		}
	}
}

func TestGenerateEmptyCharset(t *testing.T) {
	if _, err := Generate(GenerateSpec{Length: 16}); err != ErrGenerateCharset {
		t.Errorf("Generate should fail with ErrGenerateCharset, have %v", err)
	}
}

func TestGenerateRespectsCharset(t *testing.T) {
	cases := []struct {
		name    string
		spec    GenerateSpec
		charset string
	}{
		{"lower only", GenerateSpec{Length: 32, Lower: true}, lowerChars},
		{"digits only", GenerateSpec{Length: 32, Digits: true}, digitChars},
		{"upper and symbols", GenerateSpec{Length: 32, Upper: true, Symbols: true}, upperChars + symbolChars},
		{"all classes", GenerateSpec{Length: 32, Upper: true, Lower: true, Digits: true, Symbols: true}, upperChars + lowerChars + digitChars + symbolChars},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen, err := Generate(tc.spec)
			if err != nil {
				t.Fatalf("Generate should not fail: %s", err)
			}
			if len(gen.Password) != tc.spec.Length {
				t.Errorf("Password length %d, want %d", len(gen.Password), tc.spec.Length)
			}
			if gen.CharsetSize != len(tc.charset) {
				t.Errorf("Charset size %d, want %d", gen.CharsetSize, len(tc.charset))
			}
			for _, r := range gen.Password {
				if !strings.ContainsRune(tc.charset, r) {
					t.Errorf("Password %q contains %q outside selected charset", gen.Password, r)
				}
			}
		})
	}
}

func TestGenerateEntropy(t *testing.T) {
	gen, err := Generate(GenerateSpec{Length: 10, Digits: true})
	if err != nil {
		t.Fatalf("Generate should not fail: %s", err)
	}
	// 10 characters over a 10-symbol alphabet.
	if gen.EntropyBits < 33.2 || gen.EntropyBits > 33.3 {
		t.Errorf("Entropy %f, want ~33.22", gen.EntropyBits)
	}
}
