package rules

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText trims s and puts it in Unicode NFC form so that "Quênia"
// typed with a combining accent compares equal to the precomposed spelling.
func NormalizeText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// SameName compares two names after normalization, ignoring case.
func SameName(a, b string) bool {
	return strings.EqualFold(NormalizeText(a), NormalizeText(b))
}
