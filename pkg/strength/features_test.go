package strength

import (
	"math"
	"testing"
)

func TestClassifyChars(t *testing.T) {
	cases := []struct {
		password string
		want     Composition
	}{
		{"abc", Composition{Lower: true}},
		{"ABC", Composition{Upper: true}},
		{"123", Composition{Digit: true}},
		{"!@#", Composition{Symbol: true}},
		{"Tr0ub4dor&3", Composition{Lower: true, Upper: true, Digit: true, Symbol: true}},
		{"correct horse battery staple", Composition{Lower: true, Symbol: true}},
		{"pässwort", Composition{Lower: true, Symbol: true}},
	}

	for _, tc := range cases {
		if got := ClassifyChars(tc.password); got != tc.want {
			t.Errorf("ClassifyChars(%q): %+v, want: %+v", tc.password, got, tc.want)
		}
	}
}

func TestCharsetSize(t *testing.T) {
	cases := []struct {
		password string
		want     int
	}{
		{"abc", 26},
		{"aA", 52},
		{"a1", 36},
		{"aA1!", 94},
		{"1234", 10},
	}

	for _, tc := range cases {
		if got := CharsetSize(ClassifyChars(tc.password)); got != tc.want {
			t.Errorf("CharsetSize(%q): %d, want: %d", tc.password, got, tc.want)
		}
	}
}

func TestUniqueRatio(t *testing.T) {
	cases := []struct {
		password string
		want     float64
	}{
		{"abcd", 1.0},
		{"aabb", 0.5},
		{"aaaa", 0.25},
		{"", 0},
	}

	for _, tc := range cases {
		if got := UniqueRatio(tc.password); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("UniqueRatio(%q): %f, want: %f", tc.password, got, tc.want)
		}
	}
}

func TestCompositionCount(t *testing.T) {
	if got := (Composition{Lower: true, Digit: true}).Count(); got != 2 {
		t.Errorf("Count should be 2, have %d", got)
	}
	if got := (Composition{}).Count(); got != 0 {
		t.Errorf("Count should be 0, have %d", got)
	}
}
