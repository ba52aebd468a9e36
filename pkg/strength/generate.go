// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"crypto/rand"
	"errors"
	"math"
	"math/big"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	// GenerateMinLength and GenerateMaxLength bound requested lengths.
	GenerateMinLength = 4
	GenerateMaxLength = 128
)

var (
	ErrGenerateLength  = errors.New("length must be between 4 and 128")
	ErrGenerateCharset = errors.New("at least one character type must be selected")
)

// GenerateSpec selects the character classes for a generated password.
type GenerateSpec struct {
	Length  int
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// Generated is a freshly generated password and its charset facts.
type Generated struct {
	Password    string
	CharsetSize int
	EntropyBits float64
}

// Generate produces a random password from a CSPRNG over the selected
// classes.
func Generate(spec GenerateSpec) (*Generated, error) {
	if spec.Length < GenerateMinLength || spec.Length > GenerateMaxLength {
		return nil, ErrGenerateLength
	}

	var charset string
	if spec.Upper {
		charset += upperChars
	}
	if spec.Lower {
		charset += lowerChars
	}
	if spec.Digits {
		charset += digitChars
	}
	if spec.Symbols {
		charset += symbolChars
	}
	if charset == "" {
		return nil, ErrGenerateCharset
	}

	max := big.NewInt(int64(len(charset)))
	out := make([]byte, spec.Length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return nil, err
		}
		out[i] = charset[n.Int64()]
	}

	return &Generated{
		Password:    string(out),
		CharsetSize: len(charset),
		EntropyBits: float64(spec.Length) * math.Log2(float64(len(charset))),
	}, nil
}
