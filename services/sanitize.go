package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var plainTextPolicy = bluemonday.StrictPolicy()

// maxSanitizePasses bounds how many layers of entity encoding are peeled
const maxSanitizePasses = 5

// SanitizeText strips all markup from user supplied free text (roles,
// descriptions, rejection reasons) and trims surrounding whitespace.
// The value is stored as plain text, so entities are decoded; every decoded
// result goes through the policy again until nothing changes, so encoded
// markup cannot come back to life. Input still changing after
// maxSanitizePasses is returned in its escaped form.
func SanitizeText(s string) string {
	current := s
	for i := 0; i < maxSanitizePasses; i++ {
		next := html.UnescapeString(plainTextPolicy.Sanitize(current))
		if next == current {
			return strings.TrimSpace(next)
		}
		current = next
	}
	return strings.TrimSpace(plainTextPolicy.Sanitize(current))
}
