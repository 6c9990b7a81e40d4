// Copyright (c) 2026 Mangabay. All rights reserved.

// Package natsort implements natural-order string comparison.
//
// # Overview
//
// Scanned page archives name files like "page2.png" and "page10.png".
// Lexicographic sorting puts page10 before page2, which scrambles reading
// order. Natural ordering treats each run of digits as a single number, so
// page2 < page10 as a human would expect.
package natsort

import (
	"sort"
	"strings"
)

// Less reports whether a sorts before b in natural order.
//
// Both strings are split into alternating runs of non-digits and digits.
// Digit runs are compared numerically, other runs byte-wise. Numeric runs
// of equal value but different width (e.g. "01" vs "1") compare by width
// so the ordering stays total and deterministic.
func Less(a, b string) bool {
	for len(a) > 0 && len(b) > 0 {
		aRun, aNumeric, aRest := nextRun(a)
		bRun, bNumeric, bRest := nextRun(b)

		if aNumeric && bNumeric {
			if c := compareNumeric(aRun, bRun); c != 0 {
				return c < 0
			}
		} else if aRun != bRun {
			return aRun < bRun
		}

		a, b = aRest, bRest
	}

	return len(a) < len(b)
}

// Sort sorts ss in place into natural order.
func Sort(ss []string) {
	sort.Slice(ss, func(i, j int) bool {
		return Less(ss[i], ss[j])
	})
}

// nextRun splits off the leading run of s: a maximal sequence of either
// digits or non-digits. It returns the run, whether it is numeric, and
// the remainder.
func nextRun(s string) (run string, numeric bool, rest string) {
	numeric = isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == numeric {
		i++
	}
	return s[:i], numeric, s[i:]
}

// compareNumeric compares two digit runs by numeric value without parsing,
// so arbitrarily long runs never overflow. Shorter runs (after stripping
// leading zeros) are smaller; equal-length runs compare byte-wise.
func compareNumeric(a, b string) int {
	aTrim := strings.TrimLeft(a, "0")
	bTrim := strings.TrimLeft(b, "0")

	if len(aTrim) != len(bTrim) {
		if len(aTrim) < len(bTrim) {
			return -1
		}
		return 1
	}
	if c := strings.Compare(aTrim, bTrim); c != 0 {
		return c
	}

	// Same value: fall back to raw width ("1" < "01") to keep ordering total.
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
