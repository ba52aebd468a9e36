// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import "strings"

const (
	digitRun    = "0123456789"
	alphabetRun = "abcdefghijklmnopqrstuvwxyz"
)

// keyboardPatterns are adjacent-key runs checked as substrings, longest
// variants first so the reported match is the most specific one.
var keyboardPatterns = []string{
	"qwertyuiop", "asdfghjkl", "zxcvbnm", "1qaz2wsx",
	"qwerty", "asdf", "zxcv", "1qaz", "2wsx", "3edc", "1234",
	"qwe", "asd", "zxc", "wer", "sdf", "xcv",
}

// CheckCommonPatterns runs every weakness detector over the password and
// returns the issues in a fixed order: repeats, sequences, keyboard
// patterns, dictionary words (ascending), common-password membership. The
// detectors are independent; none short-circuits another.
func (c *Corpus) CheckCommonPatterns(password string) []Issue {
	var issues []Issue
	lower := strings.ToLower(password)

	if hasRepeatedRun(password) {
		issues = append(issues, Issue{Kind: IssueRepeatedChars})
	}
	if hasSequentialRun(lower) {
		issues = append(issues, Issue{Kind: IssueSequentialChars})
	}
	for _, pattern := range keyboardPatterns {
		if strings.Contains(lower, pattern) {
			issues = append(issues, Issue{Kind: IssueKeyboardPattern})
			break
		}
	}
	for _, word := range c.matchWords {
		if strings.Contains(lower, word) {
			issues = append(issues, Issue{Kind: IssueDictionaryWord, Word: word})
		}
	}
	if c.IsCommon(password) {
		issues = append(issues, Issue{Kind: IssueCommonPassword})
	}

	return issues
}

// hasRepeatedRun reports a run of 3 or more identical runes anywhere in the
// raw password. Case-sensitive.
func hasRepeatedRun(password string) bool {
	var prev rune
	run := 0
	for _, r := range password {
		if run > 0 && r == prev {
			run++
			if run >= 3 {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// hasSequentialRun scans the lower-cased password left to right for any
// 3-character window of the ascending digit or alphabet runs, or their
// reverses. Only the presence is reported; the first window wins.
func hasSequentialRun(lower string) bool {
	runes := []rune(lower)
	for i := 0; i+3 <= len(runes); i++ {
		window := string(runes[i : i+3])
		reversed := string([]rune{runes[i+2], runes[i+1], runes[i]})
		if strings.Contains(digitRun, window) || strings.Contains(digitRun, reversed) ||
			strings.Contains(alphabetRun, window) || strings.Contains(alphabetRun, reversed) {
			return true
		}
	}
	return false
}
