package media

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	extensionPattern = regexp.MustCompile(`\.[^/.]+$`)
	unsafeKeyChars   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	unsafeCategory   = regexp.MustCompile(`[^a-z0-9_-]+`)
)

// MaxCategoryLength matches the width of the category column.
const MaxCategoryLength = 64

// BuildStorageKey returns "{category}/{unixMillis}_{random}_{sanitizedBaseName}.{extension}".
//
// The base name is the original name without its last extension, with every
// character outside [a-zA-Z0-9] replaced by "_" and lower-cased. The extension
// is the text after the last dot, kept as given; a name without a dot uses the
// whole name. Uniqueness comes from the timestamp and random suffix only.
func BuildStorageKey(originalName, category string, now time.Time, random string) string {
	extension := originalName
	if idx := strings.LastIndex(originalName, "."); idx >= 0 {
		extension = originalName[idx+1:]
	}
	base := extensionPattern.ReplaceAllString(originalName, "")
	base = strings.ToLower(unsafeKeyChars.ReplaceAllString(base, "_"))

	return fmt.Sprintf("%s/%d_%s_%s.%s", category, now.UnixMilli(), random, base, extension)
}

// NormalizeCategory turns a free-form category into the slug used as a key
// prefix: lower-cased, runs of characters outside [a-z0-9_-] collapsed to "-",
// leading and trailing separators removed. Blank input yields the default.
func NormalizeCategory(category string) (string, error) {
	raw := strings.TrimSpace(category)
	if raw == "" {
		return DefaultCategory, nil
	}
	slug := categorySlug(raw)
	if slug == "" {
		return "", newError(CodeInvalidRequest, nil, "invalid category %q: no letters or digits", raw)
	}
	if len(slug) > MaxCategoryLength {
		return "", newError(CodeInvalidRequest, nil, "category exceeds %d characters", MaxCategoryLength)
	}
	return slug, nil
}

func categorySlug(category string) string {
	slug := unsafeCategory.ReplaceAllString(strings.ToLower(category), "-")
	return strings.Trim(slug, "-_")
}
