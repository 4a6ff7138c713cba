package service

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	separatorPattern = regexp.MustCompile(`[_-]+`)
	// Handle/branding noise carried by official account names
	noisePattern = regexp.MustCompile(`(?i)\b(fc|cf|official|en|es|cat|de|fr|nl)\b`)

	titleCaser = cases.Title(language.English)
)

// NormalizeClubName turns a screen name like "FCBarcelona_es" into a
// display name like "Barcelona".
func NormalizeClubName(raw string) string {
	name := separatorPattern.ReplaceAllString(raw, " ")

	// Prefixes like "FCBarcelona" have no word boundary; strip them first
	for _, prefix := range []string{"FC", "fc", "CF", "cf"} {
		if strings.HasPrefix(name, prefix) && len(name) > len(prefix) {
			name = name[len(prefix):]
			break
		}
	}

	name = noisePattern.ReplaceAllString(name, " ")
	name = strings.Join(strings.Fields(name), " ")

	return titleCaser.String(strings.ToLower(name))
}
