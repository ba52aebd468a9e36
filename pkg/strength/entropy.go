// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"math"
)

// offlineGuessRate is the assumed adversary speed for the built-in
// crack-time estimate, about one modern GPU rig.
const offlineGuessRate = 1e9

// Entropy is the theoretical maximum in bits: length * log2(charset size).
// It is a coarse upper bound, not an attack-aware estimate; prefer the
// backend guess count when one is available.
func Entropy(password string) float64 {
	size := CharsetSize(ClassifyChars(password))
	if size == 0 {
		return 0
	}
	return float64(len([]rune(password))) * math.Log2(float64(size))
}

// EstimateCrackTime converts an entropy estimate into a human time band,
// assuming an average-case search of half the key space at
// offlineGuessRate guesses per second.
func EstimateCrackTime(entropyBits float64) string {
	seconds := math.Pow(2, entropyBits) / (2 * offlineGuessRate)
	return displaySeconds(seconds)
}

func displaySeconds(seconds float64) string {
	switch {
	case seconds < 1:
		return "Instantly"
	case seconds < 60:
		return fmt.Sprintf("%.1f seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.1f minutes", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.1f hours", seconds/3600)
	case seconds < 31536000:
		return fmt.Sprintf("%.1f days", seconds/86400)
	case seconds < 31536000000:
		return fmt.Sprintf("%.1f years", seconds/31536000)
	}

	years := seconds / 31536000
	if years > 1e6 {
		return "Millions of years"
	}
	return fmt.Sprintf("%.0f years", years)
}
