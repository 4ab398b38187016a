// Package numeric holds the lenient number parsing and formatting shared by
// the evaluator and the words converter.
package numeric

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// leadingFloat matches the longest numeric prefix of an operand.
var leadingFloat = regexp.MustCompile(`^[+-]?(?:Infinity|\d+\.?\d*(?:[eE][+-]?\d+)?|\.\d+(?:[eE][+-]?\d+)?)`)

// Parse reads the leading floating-point literal of s. Trailing text such as a
// bracket typed after the digits is ignored. It reports false, with NaN, when
// s has no numeric prefix.
func Parse(s string) (float64, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	lit := leadingFloat.FindString(s)
	if lit == "" {
		return math.NaN(), false
	}

	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		// Out-of-range literals still carry ±Inf or 0.
		if !errors.Is(err, strconv.ErrRange) {
			return math.NaN(), false
		}
	}
	if math.IsNaN(f) {
		return f, false
	}
	return f, true
}

// Format renders f with the shortest digits that round-trip. Magnitudes in
// [1e-6, 1e21) are written in plain decimal form, everything else in exponent
// form without exponent zero padding (1e+21, 1.5e-7).
func Format(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(f, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

// Decimal renders a finite f in plain decimal form regardless of magnitude.
func Decimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
