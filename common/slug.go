package common

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultUsername is used when neither the name nor the email yields a usable base.
const DefaultUsername = "user"

var (
	whitespaceRuns   = regexp.MustCompile(`\s+`)
	nonUsernameChars = regexp.MustCompile(`[^a-z0-9._-]`)
	dotRuns          = regexp.MustCompile(`\.{2,}`)
)

// Slugify lowercases input, transliterates it to ASCII and joins its words with sep.
// "-" becomes sep (or "_" does, when sep is "-"), "@" becomes "at", underscores are
// kept, and any other character that is not a letter, digit or whitespace is dropped.
func Slugify(input string, sep string) string {
	s := toASCII(input)

	flip := "-"
	if sep == "-" {
		flip = "_"
	}
	s = strings.ReplaceAll(s, flip, sep)
	s = strings.ReplaceAll(s, "@", sep+"at"+sep)
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(sep, r), r == '_', unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}

	s = whitespaceRuns.ReplaceAllString(b.String(), sep)
	if sep != "" {
		dup := sep + sep
		for strings.Contains(s, dup) {
			s = strings.ReplaceAll(s, dup, sep)
		}
	}
	return strings.Trim(s, sep)
}

// UsernameBase derives the username candidate for a person: the dotted slug of
// their name, else the local part of their email, else DefaultUsername.
func UsernameBase(name, email string) string {
	if base := sanitizeUsername(Slugify(name, ".")); base != "" {
		return base
	}
	local, _, _ := strings.Cut(email, "@")
	if base := sanitizeUsername(local); base != "" {
		return base
	}
	return DefaultUsername
}

func sanitizeUsername(s string) string {
	s = nonUsernameChars.ReplaceAllString(strings.ToLower(s), "")
	return strings.Trim(dotRuns.ReplaceAllString(s, "."), ".")
}

func toASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
