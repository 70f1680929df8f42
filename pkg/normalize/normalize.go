// Package normalize provides pure text transforms for person names, slugs,
// birth places, category labels, and dates. All functions are deterministic
// and perform no I/O. Lookup tables are passed in as arguments, so the
// package carries no configuration of its own.
package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

var (
	reParens  = regexp.MustCompile(`\([^)]*\)`)
	reISOYear = regexp.MustCompile(`^(\d{4})-`)
	reAnyYear = regexp.MustCompile(`\b(\d{4})\b`)

	// Apostrophes come from sources in several Unicode flavors. All of
	// them collapse to the plain ASCII one so that the same name always
	// produces the same normalized form.
	apostrophes = strings.NewReplacer(
		"’", "'", // ’
		"ʼ", "'", // ʼ
		"‘", "'", // ‘
		"`", "'",
		"´", "'", // ´
	)
)

// Name converts a person name to its canonical comparison form: lowercase,
// parenthetical disambiguators removed, apostrophe variants unified,
// whitespace collapsed. The result of Name is a fixed point, applying it
// twice gives the same string.
func Name(s string) string {
	s = strings.ToLower(s)
	s = reParens.ReplaceAllString(s, " ")
	s = apostrophes.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// Slug converts a string to a URL-safe identifier. It keeps Unicode
// letters and digits, turns whitespace and hyphen runs into single
// hyphens, and drops everything else. The output never starts or ends
// with a hyphen.
func Slug(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// BirthPlace cleans a place-of-birth string for display and geocoding:
// parenthetical notes go away, trailing historical-polity qualifiers from
// politySuffixes are stripped case-insensitively (repeatedly, since places
// often carry several, as in "Kyiv, Ukrainian SSR, Soviet Union"), and
// trailing commas and extra whitespace are removed. Empty input is
// returned unchanged.
func BirthPlace(s string, politySuffixes []string) string {
	if s == "" {
		return s
	}
	s = reParens.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")
	for {
		s = strings.TrimSpace(strings.TrimSuffix(s, ","))
		stripped := false
		for _, suf := range politySuffixes {
			if len(s) < len(suf) {
				continue
			}
			if strings.EqualFold(s[len(s)-len(suf):], suf) {
				s = strings.TrimSpace(s[:len(s)-len(suf)])
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return s
}

// CategoryLabel maps a source category name to its short canonical tag.
// Categories missing from the table pass through unchanged.
func CategoryLabel(category string, table map[string]string) string {
	if tag, ok := table[category]; ok {
		return tag
	}
	return category
}

// Year extracts a four-digit year from a date string. ISO-formatted
// dates ("1814-03-09") are checked first, then the first standalone
// four-digit run anywhere in the string ("9 March 1814"). The second
// return value is false when no year can be found.
func Year(dateStr string) (int, bool) {
	if dateStr == "" {
		return 0, false
	}
	if m := reISOYear.FindStringSubmatch(dateStr); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil {
			return year, true
		}
	}
	if m := reAnyYear.FindStringSubmatch(dateStr); m != nil {
		year, err := strconv.Atoi(m[1])
		if err == nil {
			return year, true
		}
	}
	return 0, false
}

// Occupations maps raw occupation labels through the synonym table to
// canonical tags. Labels missing from the table pass through lowercased
// and trimmed. Duplicates are removed keeping first-seen order. The
// second return value is the primary tag, the first label that resolved
// through the table, or an empty string when none did.
func Occupations(labels []string, table map[string]string) ([]string, string) {
	var res []string
	var primary string
	seen := make(map[string]struct{})
	for _, l := range labels {
		key := strings.ToLower(strings.TrimSpace(l))
		if key == "" {
			continue
		}
		tag, mapped := table[key]
		if !mapped {
			tag = key
		}
		if mapped && primary == "" {
			primary = tag
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		res = append(res, tag)
	}
	return res, primary
}

// IsNumeric reports whether s consists entirely of digits. It catches
// parsing leaks where a year ends up in a text field.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
