// Package validate holds the field validators applied to user-supplied
// values before they advance the conversation state machine.
package validate

import (
	"regexp"
	"strings"
)

var (
	nameRe  = regexp.MustCompile(`^[a-zA-ZА-Яа-яЁё\s]{2,50}$`)
	phoneRe = regexp.MustCompile(`^(\+998|998|8)?[0-9]{9}$`)

	phoneStripper = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

	// Spam heuristics: all-caps shouting and URLs. Long character repeats
	// are checked separately; RE2 has no backreferences.
	spamPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[A-Z\s!]{20,}$`),
		regexp.MustCompile(`(?i)https?://\S+`),
	}
)

// hasLongRepeat reports whether s contains a run of the same rune longer
// than limit.
func hasLongRepeat(s string, limit int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run > limit {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// FullName reports whether name contains at least two words made up of
// Latin or Cyrillic letters and spaces only.
func FullName(name string) bool {
	words := strings.Fields(strings.TrimSpace(name))
	return nameRe.MatchString(name) && len(words) >= 2
}

// Phone reports whether phone matches the Uzbekistan numbering pattern,
// with optional +998/998/8 prefixes. Spaces, dashes, and parentheses are
// stripped before matching.
func Phone(phone string) bool {
	return phoneRe.MatchString(phoneStripper.Replace(phone))
}

// TextIssue describes why a ticket text was rejected.
type TextIssue int

const (
	TextOK TextIssue = iota
	TextTooShort
	TextTooLong
	TextSpam
)

// TicketText validates a ticket body: 10–1000 characters after trimming,
// and none of the spam patterns.
func TicketText(text string) TextIssue {
	trimmed := strings.TrimSpace(text)

	// Character count, not byte count: Cyrillic input is multi-byte
	length := len([]rune(trimmed))
	if length < 10 {
		return TextTooShort
	}
	if length > 1000 {
		return TextTooLong
	}

	if hasLongRepeat(trimmed, 10) {
		return TextSpam
	}
	for _, p := range spamPatterns {
		if p.MatchString(trimmed) {
			return TextSpam
		}
	}
	return TextOK
}
