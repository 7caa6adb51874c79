package blogservice

import (
	"regexp"
	"strings"
)

var scriptTagRX = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

func sanitizeText(text string) string {
	return scriptTagRX.ReplaceAllString(text, "")
}

// normalizeTags lower-cases and trims every tag and drops blank ones.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}

	return out
}
