// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

// ClassifyChars detects which character classes the password contains.
func ClassifyChars(password string) Composition {
	var c Composition
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			c.Lower = true
		case r >= 'A' && r <= 'Z':
			c.Upper = true
		case r >= '0' && r <= '9':
			c.Digit = true
		default:
			c.Symbol = true
		}
	}
	return c
}

// CharsetSize infers the size of the alphabet a brute-force attacker would
// have to cover. Each class contributes a fixed amount once, no matter how
// many distinct characters of that class occur. 32 is the usual
// approximation for printable symbols.
func CharsetSize(c Composition) int {
	size := 0
	if c.Lower {
		size += 26
	}
	if c.Upper {
		size += 26
	}
	if c.Digit {
		size += 10
	}
	if c.Symbol {
		size += 32
	}
	return size
}

// UniqueRatio is |distinct runes| / rune length. Zero for the empty string.
func UniqueRatio(password string) float64 {
	runes := []rune(password)
	if len(runes) == 0 {
		return 0
	}
	seen := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		seen[r] = struct{}{}
	}
	return float64(len(seen)) / float64(len(runes))
}
