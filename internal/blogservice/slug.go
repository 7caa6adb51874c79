package blogservice

import (
	"regexp"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	nonAlphanumericRX = regexp.MustCompile(`[^a-zA-Z0-9]`)
	whitespaceRX      = regexp.MustCompile(`\s+`)
)

// slugify derives a blog id such as "Hello-World-V1StGXR8_Z5jdHi6B-myT" from title.
func slugify(title string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	base := strings.TrimSpace(nonAlphanumericRX.ReplaceAllString(title, " "))
	base = whitespaceRX.ReplaceAllString(base, "-")
	if base == "" {
		return id, nil
	}

	return base + "-" + id, nil
}
