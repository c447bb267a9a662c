package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// strips surrounding spaces, uppercases the first word, removes the
// trailing period
func CleanupString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".")
	first, rest, found := strings.Cut(s, " ")
	first = cases.Title(language.English).String(first)
	if !found {
		return first
	}
	return first + " " + rest
}
