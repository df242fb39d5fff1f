package model

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// measurePrinter formats measures with English digit grouping.
var measurePrinter = message.NewPrinter(language.English)

// Capitalize upper-cases the first rune and leaves the rest untouched,
// so "mr-mime" becomes "Mr-mime".
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// JoinCapitalized capitalizes every item and joins them with sep.
func JoinCapitalized(items []string, sep string) string {
	capped := make([]string, len(items))
	for i, item := range items {
		capped[i] = Capitalize(item)
	}
	return strings.Join(capped, sep)
}

// PadNumber formats an identifier as a display number with at least
// three digits, e.g. 4 -> "#004", 1010 -> "#1010".
func PadNumber(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// FormatMeasure converts a value in tenths to its display form with the
// given unit: 69 -> "6.9 kg", 10000 -> "1,000 kg".
func FormatMeasure(tenths int, unit string) string {
	v := float64(tenths) / 10
	return measurePrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(1))) + " " + unit
}
