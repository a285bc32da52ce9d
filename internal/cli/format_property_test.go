package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: currency formatting round-trips the sign and never loses
// the two decimal places.
func TestProperty_FormatCurrency(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("negative amounts carry a leading minus", prop.ForAll(
		func(amount float64) bool {
			s := FormatCurrency(-amount)
			return strings.HasPrefix(s, "-$")
		},
		gen.Float64Range(0.01, 1e9),
	))

	properties.Property("output always ends in two decimals", prop.ForAll(
		func(amount float64) bool {
			s := FormatCurrency(amount)
			dot := strings.LastIndex(s, ".")
			return dot >= 0 && len(s)-dot-1 == 2
		},
		gen.Float64Range(-1e9, 1e9),
	))

	properties.Property("separators appear every three digits", prop.ForAll(
		func(amount float64) bool {
			s := FormatCurrency(amount)
			intPart := s[strings.Index(s, "$")+1 : strings.LastIndex(s, ".")]
			for _, group := range strings.Split(intPart, ",")[1:] {
				if len(group) != 3 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(0, 1e12),
	))

	properties.TestingRun(t)
}

func TestFormatCurrencyExamples(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{1000000, "$1,000,000.00"},
		{-99.99, "-$99.99"},
	}
	for _, c := range cases {
		if got := FormatCurrency(c.in); got != c.want {
			t.Errorf("FormatCurrency(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{90 * time.Minute, "1h30m"},
		{2 * time.Hour, "2h"},
		{26 * time.Hour, "1d2h"},
		{48 * time.Hour, "2d"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := TruncateString("short", 10); got != "short" {
		t.Errorf("TruncateString short = %q", got)
	}
	if got := TruncateString("a very long strategy name", 10); got != "a very ..." {
		t.Errorf("TruncateString long = %q", got)
	}
	if got := TruncateString("abcdef", 3); got != "abc" {
		t.Errorf("TruncateString tiny = %q", got)
	}
}
