// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"math"

	"github.com/nbutton23/zxcvbn-go"
)

// ZxcvbnBackend adapts the zxcvbn pattern-matching estimator to the Backend
// capability. It is stateless and safe for concurrent use.
type ZxcvbnBackend struct{}

// NewZxcvbnBackend returns the zxcvbn-backed advanced analyzer.
func NewZxcvbnBackend() *ZxcvbnBackend {
	return &ZxcvbnBackend{}
}

func (z *ZxcvbnBackend) Evaluate(password string) BackendResult {
	res := zxcvbn.PasswordStrength(password, nil)

	// zxcvbn models the average-case search as half the entropy space.
	guesses := 0.5 * math.Pow(2, res.Entropy)

	var feedback []string
	for _, m := range res.MatchSequence {
		switch m.Pattern {
		case "dictionary":
			feedback = append(feedback, fmt.Sprintf("'%s' is a commonly used word", m.Token))
		case "spatial":
			feedback = append(feedback, fmt.Sprintf("'%s' is a short keyboard pattern", m.Token))
		case "repeat":
			feedback = append(feedback, fmt.Sprintf("'%s' is a repeated section", m.Token))
		case "sequence":
			feedback = append(feedback, fmt.Sprintf("'%s' is a predictable sequence", m.Token))
		case "date", "year":
			feedback = append(feedback, "Avoid dates and years that are associated with you")
		}
	}

	return BackendResult{
		Ordinal:     res.Score,
		EntropyBits: res.Entropy,
		Guesses:     guesses,
		Feedback:    dedup(feedback),
	}
}
