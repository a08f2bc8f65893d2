package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@([a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`)

// ExtractEmailDomain returns the domain part of an email address embedded in
// a publisher string, or "" when the publisher is not an email address.
func ExtractEmailDomain(publisher string) string {
	m := emailPattern.FindStringSubmatch(publisher)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// CountWords counts whitespace-separated tokens in a headline.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// NormalizeTicker uppercases and trims a user-supplied ticker symbol.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
