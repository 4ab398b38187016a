// Package words spells numbers out in English.
package words

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"wordcalc/internal/numeric"
)

// ErrOutOfRange is returned for integer magnitudes past the Trillion scale.
var ErrOutOfRange = errors.New("number too large to spell out")

// MaxMagnitude is the smallest integer magnitude that cannot be spelled out.
const MaxMagnitude = 1e15

var (
	ones   = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	tens   = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
	teens  = [...]string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	scales = [...]string{"", "Thousand", "Million", "Billion", "Trillion"}
)

// Speller turns a numeric string into words.
type Speller interface {
	Spell(number string) (string, error)
}

// Converter is the stateless Speller.
type Converter struct{}

// Spell implements Speller.
func (Converter) Spell(number string) (string, error) {
	return Spell(number)
}

// NumberToWords spells input out, returning "" for anything that cannot be
// spelled, including magnitudes past the Trillion scale.
func NumberToWords(input string) string {
	w, err := Spell(input)
	if err != nil {
		return ""
	}
	return w
}

// Spell converts input to words. "Error" is passed through, empty and
// non-numeric input yield "", and ErrOutOfRange is reported once the integer
// part reaches MaxMagnitude.
func Spell(input string) (string, error) {
	switch input {
	case "Error":
		return "Error", nil
	case "":
		return "", nil
	}

	n, ok := numeric.Parse(input)
	if !ok {
		return "", nil
	}
	if n == 0 {
		return "Zero", nil
	}

	abs := math.Abs(n)
	if math.IsInf(abs, 0) || abs >= MaxMagnitude {
		return "", ErrOutOfRange
	}

	var b strings.Builder
	if n < 0 {
		b.WriteString("Negative ")
	}

	intPart, fracPart, _ := strings.Cut(numeric.Decimal(abs), ".")
	whole, err := strconv.ParseUint(intPart, 10, 64)
	if err != nil {
		return "", ErrOutOfRange
	}
	b.WriteString(integerWords(whole))

	if fracPart != "" {
		b.WriteString(" Point")
		for _, d := range fracPart {
			b.WriteByte(' ')
			if d == '0' {
				b.WriteString("Zero")
			} else {
				b.WriteString(ones[d-'0'])
			}
		}
	}

	return b.String(), nil
}

// integerWords spells n < MaxMagnitude, most significant group first.
func integerWords(n uint64) string {
	if n == 0 {
		return "Zero"
	}

	var groups []string
	for scale := 0; n > 0; scale++ {
		chunk := int(n % 1000)
		n /= 1000
		if chunk == 0 {
			continue
		}
		g := groupWords(chunk)
		if scales[scale] != "" {
			g += " " + scales[scale]
		}
		groups = append([]string{g}, groups...)
	}

	return strings.Join(groups, ", ")
}

// groupWords spells 1..999.
func groupWords(val int) string {
	var parts []string

	if val >= 100 {
		parts = append(parts, ones[val/100]+" Hundred")
		val %= 100
	}

	switch {
	case val >= 10 && val <= 19:
		parts = append(parts, teens[val-10])
	case val >= 20:
		w := tens[val/10]
		if val%10 != 0 {
			w += "-" + ones[val%10]
		}
		parts = append(parts, w)
	case val > 0:
		parts = append(parts, ones[val])
	}

	return strings.Join(parts, " ")
}
