// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import "errors"

// ErrEmptyPassword is the only input validation failure of the analyzer.
var ErrEmptyPassword = errors.New("password must not be empty")

// Level is the categorical strength band derived from the numeric score.
type Level int

const (
	VeryWeak Level = iota
	Weak
	Medium
	Strong
	VeryStrong
)

func (l Level) String() string {
	switch l {
	case VeryWeak:
		return "Very Weak"
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	case VeryStrong:
		return "Very Strong"
	}
	return "Unknown"
}

// levelForScore maps a 0-100 score to its band. Boundaries are inclusive on
// the lower edge: 80 is Very Strong, 79 is Strong.
func levelForScore(score int) Level {
	switch {
	case score >= 80:
		return VeryStrong
	case score >= 60:
		return Strong
	case score >= 40:
		return Medium
	case score >= 20:
		return Weak
	}
	return VeryWeak
}

// IssueKind tags a detected weakness category.
type IssueKind int

const (
	IssueRepeatedChars IssueKind = iota
	IssueSequentialChars
	IssueKeyboardPattern
	IssueDictionaryWord
	IssueCommonPassword
)

// Issue is a single detected weakness. Word is set only for dictionary hits.
type Issue struct {
	Kind IssueKind
	Word string
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueRepeatedChars:
		return "Contains repeated characters"
	case IssueSequentialChars:
		return "Contains sequential characters"
	case IssueKeyboardPattern:
		return "Contains keyboard patterns"
	case IssueDictionaryWord:
		return "Contains dictionary word: '" + i.Word + "'"
	case IssueCommonPassword:
		return "Password is in common passwords list"
	}
	return "Unknown issue"
}

// Composition reports which ASCII character classes occur in a password.
// Anything outside ASCII letters and digits counts as a symbol.
type Composition struct {
	Lower  bool
	Upper  bool
	Digit  bool
	Symbol bool
}

// Count is the number of classes present, 0 to 4.
func (c Composition) Count() int {
	n := 0
	for _, b := range []bool{c.Lower, c.Upper, c.Digit, c.Symbol} {
		if b {
			n++
		}
	}
	return n
}

// CrackTimes holds display strings for the four zxcvbn attack scenarios.
type CrackTimes struct {
	OnlineThrottled   string
	OnlineUnthrottled string
	OfflineSlow       string
	OfflineFast       string
}

// BackendDetail carries the raw output of the advanced backend when one was
// used for scoring.
type BackendDetail struct {
	Ordinal    int
	Guesses    float64
	CrackTimes CrackTimes
}

// Result is the outcome of a single analysis. It is created fresh per call
// and never retains the password itself.
type Result struct {
	Score           int
	Level           Level
	EntropyBits     float64
	UniqueCharRatio float64
	Composition     Composition
	Length          int
	Issues          []Issue
	Suggestions     []string
	// Backend is nil when the built-in strategy produced the score.
	Backend *BackendDetail
}
