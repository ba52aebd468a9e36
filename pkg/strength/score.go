// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import "math"

// Backend is an optional advanced analyzer consulted instead of the
// built-in heuristic. Evaluate must not fail on non-empty input.
type Backend interface {
	// Evaluate returns the backend's ordinal score (0-4), its entropy
	// estimate in bits, the estimated guesses to crack, and any feedback
	// strings it produced.
	Evaluate(password string) BackendResult
}

// BackendResult is the normalized output of a Backend.
type BackendResult struct {
	Ordinal     int
	EntropyBits float64
	Guesses     float64
	Feedback    []string
}

// Analyzer composes the feature extractor, corpus matcher and entropy
// estimator into a single score. The scoring strategy is fixed at
// construction: built-in unless a backend was supplied. Analyzer is safe
// for concurrent use; the corpus is never mutated after construction.
type Analyzer struct {
	corpus  *Corpus
	backend Backend
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithBackend selects the advanced-backend scoring strategy. The choice is
// made once here, not re-evaluated per call.
func WithBackend(b Backend) Option {
	return func(a *Analyzer) {
		a.backend = b
	}
}

// NewAnalyzer builds an analyzer over the given corpus. A nil corpus uses
// the embedded built-in word lists.
func NewAnalyzer(corpus *Corpus, opts ...Option) *Analyzer {
	if corpus == nil {
		corpus = DefaultCorpus()
	}

	a := &Analyzer{corpus: corpus}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CheckCommonPatterns exposes the corpus matcher for callers that only want
// the issue list.
func (a *Analyzer) CheckCommonPatterns(password string) []Issue {
	return a.corpus.CheckCommonPatterns(password)
}

// Analyze scores a password. The only failure mode is an empty input; a
// valid password always yields a result, whichever strategy is active.
func (a *Analyzer) Analyze(password string) (*Result, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}

	if a.backend != nil {
		return a.scoreBackend(password), nil
	}
	return a.scoreBuiltin(password), nil
}

func (a *Analyzer) scoreBuiltin(password string) *Result {
	length := len([]rune(password))
	comp := ClassifyChars(password)
	entropy := Entropy(password)
	ratio := UniqueRatio(password)
	issues := a.corpus.CheckCommonPatterns(password)

	score := 0
	var suggestions []string

	// Length, up to 30 points.
	switch {
	case length >= 16:
		score += 30
	case length >= 12:
		score += 25
	case length >= 8:
		score += 20
	case length >= 6:
		score += 15
	case length >= 4:
		score += 10
	default:
		score += 5
		suggestions = append(suggestions, "Use at least 8 characters")
	}
	if length < 8 {
		suggestions = append(suggestions, "Increase password length for better security")
	}

	// Character class diversity, up to 25 points.
	switch comp.Count() {
	case 4:
		score += 25
	case 3:
		score += 20
	case 2:
		score += 15
	case 1:
		score += 10
	}
	suggestions = append(suggestions, missingClassPrompts(comp, false)...)

	// Entropy band, up to 25 points.
	switch {
	case entropy >= 70:
		score += 25
	case entropy >= 60:
		score += 20
	case entropy >= 50:
		score += 15
	case entropy >= 40:
		score += 10
	default:
		score += 5
	}

	// Penalty for detected weaknesses, capped at 25 points.
	penalty := len(issues) * 7
	if penalty > 25 {
		penalty = 25
	}
	score -= penalty
	suggestions = append(suggestions, issuePrompts(issues)...)

	// Uniqueness bonus, up to 20 points.
	switch {
	case ratio >= 0.8:
		score += 20
	case ratio >= 0.6:
		score += 15
	case ratio >= 0.4:
		score += 10
	default:
		score += 5
		suggestions = append(suggestions, "Use more unique characters")
	}

	score = clampScore(score)

	return &Result{
		Score:           score,
		Level:           levelForScore(score),
		EntropyBits:     entropy,
		UniqueCharRatio: ratio,
		Composition:     comp,
		Length:          length,
		Issues:          issues,
		Suggestions:     dedup(suggestions),
	}
}

// backendBaseScores maps the backend's 0-4 ordinal onto the 0-100 scale.
var backendBaseScores = [5]int{10, 25, 50, 75, 95}

func (a *Analyzer) scoreBackend(password string) *Result {
	length := len([]rune(password))
	comp := ClassifyChars(password)
	res := a.backend.Evaluate(password)

	ordinal := res.Ordinal
	if ordinal < 0 {
		ordinal = 0
	} else if ordinal > 4 {
		ordinal = 4
	}

	lengthBonus := length * 2
	if lengthBonus > 20 {
		lengthBonus = 20
	}
	entropyBonus := res.EntropyBits / 4
	if entropyBonus > 15 {
		entropyBonus = 15
	}

	score := clampScore(backendBaseScores[ordinal] + lengthBonus + int(entropyBonus))

	suggestions := append([]string{}, res.Feedback...)
	suggestions = append(suggestions, missingClassPrompts(comp, true)...)
	if length < 8 {
		suggestions = append(suggestions, "Use at least 8 characters")
	}
	if length < 12 {
		suggestions = append(suggestions, "Consider using 12+ characters for better security")
	}

	return &Result{
		Score:       score,
		// The label tracks the backend's categorical judgment, not the
		// adjusted number.
		Level:           Level(ordinal),
		EntropyBits:     res.EntropyBits,
		UniqueCharRatio: UniqueRatio(password),
		Composition:     comp,
		Length:          length,
		Issues:          a.corpus.CheckCommonPatterns(password),
		Suggestions:     dedup(suggestions),
		Backend: &BackendDetail{
			Ordinal:    ordinal,
			Guesses:    res.Guesses,
			CrackTimes: scenarioCrackTimes(res.Guesses),
		},
	}
}

// Guess rates for the four zxcvbn attack scenarios, guesses per second.
const (
	rateOnlineThrottled   = 100.0 / 3600.0
	rateOnlineUnthrottled = 10.0
	rateOfflineSlow       = 1e4
	rateOfflineFast       = 1e10
)

func scenarioCrackTimes(guesses float64) CrackTimes {
	if guesses <= 0 || math.IsInf(guesses, 0) {
		guesses = 1
	}
	return CrackTimes{
		OnlineThrottled:   displaySeconds(guesses / rateOnlineThrottled),
		OnlineUnthrottled: displaySeconds(guesses / rateOnlineUnthrottled),
		OfflineSlow:       displaySeconds(guesses / rateOfflineSlow),
		OfflineFast:       displaySeconds(guesses / rateOfflineFast),
	}
}

// missingClassPrompts suggests the absent character classes. The backend
// strategy historically lists uppercase before lowercase; the built-in one
// does the opposite.
func missingClassPrompts(c Composition, upperFirst bool) []string {
	var out []string
	if upperFirst {
		if !c.Upper {
			out = append(out, "Add uppercase letters")
		}
		if !c.Lower {
			out = append(out, "Add lowercase letters")
		}
	} else {
		if !c.Lower {
			out = append(out, "Add lowercase letters")
		}
		if !c.Upper {
			out = append(out, "Add uppercase letters")
		}
	}
	if !c.Digit {
		out = append(out, "Add numbers")
	}
	if !c.Symbol {
		out = append(out, "Add special characters")
	}
	return out
}

// issuePrompts emits one suggestion per distinct issue category present, in
// detection order.
func issuePrompts(issues []Issue) []string {
	var out []string
	seen := make(map[IssueKind]struct{}, len(issues))
	for _, issue := range issues {
		if _, ok := seen[issue.Kind]; ok {
			continue
		}
		seen[issue.Kind] = struct{}{}

		switch issue.Kind {
		case IssueRepeatedChars:
			out = append(out, "Avoid repeating the same character")
		case IssueSequentialChars:
			out = append(out, "Avoid sequential characters (123, abc)")
		case IssueKeyboardPattern:
			out = append(out, "Avoid keyboard patterns (qwerty, asdf)")
		case IssueDictionaryWord:
			out = append(out, "Avoid using dictionary words")
		case IssueCommonPassword:
			out = append(out, "This password is too common - choose a unique one")
		}
	}
	return out
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func dedup(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
