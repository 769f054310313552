// Package format implements the display formatting rules shared by the
// renderer and the validator.
//
// Both sides of the render/validate contract call these functions: the
// renderer to produce slide content, the validator to re-derive the
// expected content. Keeping a single implementation is what makes the
// validator's string comparisons meaningful.
//
// All functions are pure and total: any input yields a string, missing
// values yield the "N/A" sentinel, and nothing here panics.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/deckmason/deckmason/pkg/payload"
	"github.com/deckmason/deckmason/pkg/schema"
)

// NA is the sentinel rendered for missing values.
const NA = "N/A"

// Format renders a payload value according to a format kind.
//
// Absent values (including numeric NaN/Inf, which collapse to absent at
// payload construction) always yield NA. String values pass through
// unchanged regardless of kind, matching upstream behavior where a
// pre-formatted string short-circuits numeric formatting. Container
// values (lists, rows) have no single display form and yield NA.
func Format(v payload.Value, kind schema.FormatKind) string {
	if v.IsAbsent() {
		return NA
	}
	if s, ok := v.Str(); ok {
		return s
	}

	f, ok := v.Number()
	if !ok {
		return NA
	}

	switch kind {
	case schema.FormatCurrency:
		return Currency(f)
	case schema.FormatPercentage:
		return Percentage(f)
	case schema.FormatVariancePercentage:
		return VariancePercentage(f)
	case schema.FormatPointsChange:
		return PointsChange(f)
	case schema.FormatNumber:
		return Number(f)
	case schema.FormatInteger:
		return Integer(f)
	case schema.FormatText:
		return v.Display()
	default:
		return v.Display()
	}
}

// Currency formats a dollar value using tiered abbreviation:
//
//	<$1k      -> $XXX
//	$1k-$999k -> $X.Xk (trailing .0 stripped)
//	$1m+      -> $X.Xm
//
// Negative values prepend "-" to the whole formatted string.
func Currency(f float64) string {
	sign, m := splitSign(f)
	switch {
	case m < 1_000:
		return sign + "$" + groupDigits(roundWhole(m))
	case m < 1_000_000:
		return sign + "$" + stripTrailingZero(oneDecimal(m/1_000)) + "k"
	default:
		return sign + "$" + oneDecimal(m/1_000_000) + "m"
	}
}

// Number formats a value using tiered abbreviation without a currency
// marker: below one million the whole number is comma-grouped, above it
// collapses to one decimal with an "m" suffix.
func Number(f float64) string {
	sign, m := splitSign(f)
	if m < 1_000_000 {
		return sign + groupDigits(roundWhole(m))
	}
	return sign + oneDecimal(m/1_000_000) + "m"
}

// Percentage formats a rate as X.X% with no sign prefix for positives.
func Percentage(f float64) string {
	return oneDecimal(f) + "%"
}

// VariancePercentage formats a signed delta as +X.X% or -X.X%.
// Exactly zero renders with no prefix.
func VariancePercentage(f float64) string {
	return signPrefix(f) + oneDecimal(f) + "%"
}

// PointsChange formats a percentage-point delta as +X.X ppts or -X.X ppts.
func PointsChange(f float64) string {
	return signPrefix(f) + oneDecimal(f) + " ppts"
}

// Integer formats a whole number with comma grouping. The fractional
// part is truncated toward zero, not rounded.
func Integer(f float64) string {
	n := int64(math.Trunc(f))
	if n < 0 {
		return "-" + groupDigits(strconv.FormatInt(-n, 10))
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

// VarianceColor returns the color for a signed delta: positive for
// strictly positive values, negative for strictly negative, neutral for
// zero, absent, and non-numeric values.
func VarianceColor(v payload.Value, positive, negative, neutral string) string {
	f, ok := v.Number()
	if !ok {
		return neutral
	}
	switch {
	case f > 0:
		return positive
	case f < 0:
		return negative
	default:
		return neutral
	}
}

// splitSign returns the leading sign string and the magnitude.
func splitSign(f float64) (sign string, magnitude float64) {
	if f < 0 {
		return "-", -f
	}
	return "", f
}

// signPrefix returns "+" for strictly positive values. Negatives carry
// their own "-" from number formatting; zero gets no prefix.
func signPrefix(f float64) string {
	if f > 0 {
		return "+"
	}
	return ""
}

// oneDecimal formats with exactly one decimal place.
func oneDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}

// roundWhole rounds to the nearest whole number and returns the digit
// string without grouping.
func roundWhole(f float64) string {
	return strconv.FormatFloat(f, 'f', 0, 64)
}

// stripTrailingZero drops a trailing ".0" so 1.0 reads as 1.
func stripTrailingZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// groupDigits inserts comma separators into a non-negative digit string.
func groupDigits(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
