// Package format renders numbers the way the operator dashboard displays
// them: fixed places, significant digits, grouped currency and plain
// numeric literals.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Fixed formats v with exactly places digits after the decimal point.
func Fixed(v float64, places int32) string {
	if s, ok := special(v); ok {
		return s
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Percent scales a fraction by 100 and formats it with Fixed.
func Percent(v float64, places int32) string {
	if s, ok := special(v); ok {
		return s
	}
	return decimal.NewFromFloat(v).Mul(decimal.NewFromInt(100)).StringFixed(places)
}

// Currency formats v as a dollar amount with thousands separators and at
// most three fractional digits, e.g. 1234567.5 -> "$1,234,567.5".
func Currency(v float64) string {
	if s, ok := special(v); ok {
		return "$" + s
	}
	return "$" + Grouped(v, 3)
}

// Grouped rounds v to at most maxPlaces fractional digits, drops trailing
// zeros and inserts a comma every three integer digits.
func Grouped(v float64, maxPlaces int32) string {
	if s, ok := special(v); ok {
		return s
	}
	d := decimal.NewFromFloat(v).Round(maxPlaces)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	intPart, frac, _ := strings.Cut(d.String(), ".")

	var b strings.Builder
	b.WriteString(sign)
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// Precision parses s as a number and formats it with p significant digits,
// switching to exponent notation for very large or very small magnitudes.
// Unparsable input renders as "NaN".
func Precision(s string, p int) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return "NaN"
	}
	return SigFigs(v, p)
}

// SigFigs formats v with p significant digits.
func SigFigs(v float64, p int) string {
	if s, ok := special(v); ok {
		return s
	}
	if p < 1 {
		p = 1
	}
	if v == 0 {
		if p == 1 {
			return "0"
		}
		return "0." + strings.Repeat("0", p-1)
	}

	mant, expStr, _ := strings.Cut(strconv.FormatFloat(v, 'e', p-1, 64), "e")
	exp, _ := strconv.Atoi(expStr)
	if exp < -6 || exp >= p {
		return mant + "e" + exponent(exp)
	}
	return strconv.FormatFloat(v, 'f', p-1-exp, 64)
}

// Number formats v as its shortest round-trip literal, using exponent
// notation below 1e-6 and from 1e21 upwards.
func Number(v float64) string {
	if s, ok := special(v); ok {
		return s
	}
	if v == 0 {
		return "0"
	}
	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		mant, expStr, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
		exp, _ := strconv.Atoi(expStr)
		return mant + "e" + exponent(exp)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func exponent(exp int) string {
	if exp < 0 {
		return "-" + strconv.Itoa(-exp)
	}
	return "+" + strconv.Itoa(exp)
}

func special(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NaN", true
	case math.IsInf(v, 1):
		return "Infinity", true
	case math.IsInf(v, -1):
		return "-Infinity", true
	}
	return "", false
}
