package format

import (
	"fmt"
	"math"
	"testing"

	"github.com/deckmason/deckmason/pkg/payload"
	"github.com/deckmason/deckmason/pkg/schema"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{999, "$999"},
		{999.4, "$999"},
		{1_000, "$1k"},
		{1_200, "$1.2k"},
		{209_200, "$209.2k"},
		{999_000, "$999k"},
		{1_000_000, "$1.0m"},
		{1_250_000, "$1.2m"},
		{12_345_678, "$12.3m"},
		{-450, "-$450"},
		{-209_200, "-$209.2k"},
		{-3_500_000, "-$3.5m"},
	}
	for _, tt := range tests {
		if got := Currency(tt.in); got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{950, "950"},
		{12_450, "12,450"},
		{999_999, "999,999"},
		{1_000_000, "1.0m"},
		{2_340_000, "2.3m"},
		{-12_450, "-12,450"},
		{-1_500_000, "-1.5m"},
	}
	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0%"},
		{3.25, "3.2%"},
		{3.35, "3.4%"},
		{42, "42.0%"},
		{-7.5, "-7.5%"},
	}
	for _, tt := range tests {
		if got := Percentage(tt.in); got != tt.want {
			t.Errorf("Percentage(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestVariancePercentage(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{5.2, "+5.2%"},
		{-3.1, "-3.1%"},
		{0, "0.0%"},
		{0.04, "+0.0%"},
	}
	for _, tt := range tests {
		if got := VariancePercentage(tt.in); got != tt.want {
			t.Errorf("VariancePercentage(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPointsChange(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{2.5, "+2.5 ppts"},
		{-1.2, "-1.2 ppts"},
		{0, "0.0 ppts"},
	}
	for _, tt := range tests {
		if got := PointsChange(tt.in); got != tt.want {
			t.Errorf("PointsChange(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInteger(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{42.9, "42"},
		{-42.9, "-42"},
		{1_234_567, "1,234,567"},
	}
	for _, tt := range tests {
		if got := Integer(tt.in); got != tt.want {
			t.Errorf("Integer(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAbsentAlwaysNA(t *testing.T) {
	kinds := []schema.FormatKind{
		schema.FormatCurrency, schema.FormatPercentage,
		schema.FormatVariancePercentage, schema.FormatPointsChange,
		schema.FormatNumber, schema.FormatInteger, schema.FormatText,
	}
	for _, kind := range kinds {
		if got := Format(payload.Absent(), kind); got != NA {
			t.Errorf("Format(absent, %s) = %q, want %q", kind, got, NA)
		}
		// NaN collapses to absent at construction, so it formats the same.
		if got := Format(payload.Number(math.NaN()), kind); got != NA {
			t.Errorf("Format(NaN, %s) = %q, want %q", kind, got, NA)
		}
	}
}

func TestFormatStringPassthrough(t *testing.T) {
	v := payload.String("already formatted")
	for _, kind := range []schema.FormatKind{schema.FormatCurrency, schema.FormatVariancePercentage} {
		if got := Format(v, kind); got != "already formatted" {
			t.Errorf("Format(string, %s) = %q, want passthrough", kind, got)
		}
	}
}

func TestFormatDispatch(t *testing.T) {
	tests := []struct {
		kind schema.FormatKind
		in   float64
		want string
	}{
		{schema.FormatCurrency, 209_200, "$209.2k"},
		{schema.FormatPercentage, 12.5, "12.5%"},
		{schema.FormatVariancePercentage, -3.1, "-3.1%"},
		{schema.FormatPointsChange, 1.5, "+1.5 ppts"},
		{schema.FormatNumber, 12_450, "12,450"},
		{schema.FormatInteger, 99.9, "99"},
		{schema.FormatText, 42, "42"},
	}
	for _, tt := range tests {
		if got := Format(payload.Number(tt.in), tt.kind); got != tt.want {
			t.Errorf("Format(%v, %s) = %q, want %q", tt.in, tt.kind, got, tt.want)
		}
	}
}

func TestVarianceColor(t *testing.T) {
	const (
		pos = "#00AA00"
		neg = "#CC0000"
		neu = "#000000"
	)
	tests := []struct {
		name string
		in   payload.Value
		want string
	}{
		{"positive", payload.Number(5.2), pos},
		{"negative", payload.Number(-0.1), neg},
		{"zero", payload.Number(0), neu},
		{"absent", payload.Absent(), neu},
		{"string", payload.String("+5.2%"), neu},
	}
	for _, tt := range tests {
		if got := VarianceColor(tt.in, pos, neg, neu); got != tt.want {
			t.Errorf("VarianceColor(%s) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func ExampleCurrency() {
	fmt.Println(Currency(209_200))
	fmt.Println(Currency(-450))
	fmt.Println(Currency(1_250_000))
	// Output:
	// $209.2k
	// -$450
	// $1.2m
}

func ExampleVariancePercentage() {
	fmt.Println(VariancePercentage(5.2))
	fmt.Println(VariancePercentage(-3.1))
	// Output:
	// +5.2%
	// -3.1%
}
