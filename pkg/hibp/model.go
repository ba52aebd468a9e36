// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package hibp

import "errors"

// ErrEmptyPassword is the only input validation failure of the checker.
var ErrEmptyPassword = errors.New("password must not be empty")

// RiskLevel buckets a breach count into a fixed severity band.
type RiskLevel int

const (
	RiskSafe RiskLevel = iota
	RiskLow
	RiskMedium
	RiskHigh
	RiskVeryHigh
)

func (r RiskLevel) String() string {
	switch r {
	case RiskSafe:
		return "Safe"
	case RiskLow:
		return "Low Risk"
	case RiskMedium:
		return "Medium Risk"
	case RiskHigh:
		return "High Risk"
	case RiskVeryHigh:
		return "Very High Risk"
	}
	return "Unknown"
}

func riskForCount(count uint64) RiskLevel {
	switch {
	case count == 0:
		return RiskSafe
	case count < 10:
		return RiskLow
	case count < 100:
		return RiskMedium
	case count < 1000:
		return RiskHigh
	}
	return RiskVeryHigh
}

func recommendationFor(count uint64) string {
	switch {
	case count == 0:
		return "This password appears safe, but consider using a unique password for each account."
	case count < 10:
		return "This password has been compromised. Consider changing it immediately."
	case count < 100:
		return "This password is commonly breached. Change it immediately and use a password manager."
	}
	return "This password is extremely common in breaches. Never use this password anywhere!"
}

// Result is the outcome of one breach check. Unavailable marks an exhausted
// or cancelled lookup: the status is unknown, which is not the same as not
// compromised.
type Result struct {
	Compromised    bool
	Count          uint64
	Risk           RiskLevel
	Message        string
	Recommendation string
	Unavailable    bool
}
