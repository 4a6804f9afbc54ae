package domain

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// tagPattern matches any angle-bracketed tag.
var tagPattern = regexp.MustCompile(`(<([^>]+)>)`)

// htmlPolicy is safe for concurrent use once built.
var htmlPolicy = bluemonday.UGCPolicy()

// StripTags removes every tag from s and leaves the text between them.
// Applying it twice gives the same result as applying it once.
func StripTags(s string) string {
	if s == "" {
		return ""
	}

	return tagPattern.ReplaceAllString(s, "")
}

// SanitizeHTML keeps the user-generated-content subset of HTML in s
// and drops scripts, styles, event handlers and unsafe links.
func SanitizeHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	return strings.TrimSpace(htmlPolicy.Sanitize(s))
}
