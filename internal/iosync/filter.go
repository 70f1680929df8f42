package iosync

import (
	"regexp"
	"strings"
)

// Namespaced titles ("Category:...", "Template:...", "Wikipedia:...")
// are never person articles.
var reNamespace = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*:`)

// titleOK rejects page titles that cannot be person articles: lists,
// disambiguation pages, and namespaced pages.
func titleOK(title string) bool {
	if title == "" {
		return false
	}
	if strings.HasPrefix(title, "List of") ||
		strings.HasPrefix(title, "Lists of") {
		return false
	}
	if strings.Contains(title, "(disambiguation)") {
		return false
	}
	return !reNamespace.MatchString(title)
}
