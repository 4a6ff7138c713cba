package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips markup from raw tweet text before it is stored.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a new Sanitizer instance with a strict policy.
// Dataset exports occasionally carry HTML fragments and entities; tweets
// are plain text, so everything but the text itself is dropped.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText strips tags, unescapes entities, and collapses whitespace.
func (s *Sanitizer) SanitizeText(text string) string {
	cleaned := s.policy.Sanitize(text)
	cleaned = html.UnescapeString(cleaned)

	return strings.Join(strings.Fields(cleaned), " ")
}
