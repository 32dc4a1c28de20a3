package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reSlug     = regexp.MustCompile(`^[a-z0-9_]+(?:-[a-z0-9_]+)*$`)
	reNotSlug  = regexp.MustCompile(`[^A-Za-z0-9_\s-]`)
	reSpaces   = regexp.MustCompile(`\s+`)
	reDashes   = regexp.MustCompile(`-{2,}`)
	reLinkPath = regexp.MustCompile(`^/[A-Za-z0-9/_\-.~%?=&#]*$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password only bounds the length; the API owns the real policy.
func Password(s string) bool {
	return len(s) >= 1 && len(s) <= 128
}

// ID validates a resource identifier taken from a path or form.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Name validates a displayable name or label.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len([]rune(s)) > 120 {
		return "", false
	}
	return s, true
}

// Text trims free text and caps it.
func Text(s string, max int) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > max {
		s = string(r[:max])
	}
	return s
}

func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 120 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

// Slugify lowercases s, strips diacritics, drops anything that is not a
// word character, space or dash, and joins words with single dashes.
// "Toán học lớp 10" -> "toan-hoc-lop-10". The result can be empty (for
// names without any latin letter or digit); check it with Slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("đ", "d").Replace(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if out, _, err := transform.String(t, s); err == nil {
		s = out
	}
	s = reNotSlug.ReplaceAllString(s, "")
	s = reSpaces.ReplaceAllString(strings.TrimSpace(s), "-")
	s = reDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Order parses a sibling order. Orders are positive.
func Order(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 1_000_000 {
		return 0, false
	}
	return n, true
}

// Limit parses a block item limit; bad input falls back to def, large
// values are clamped.
func Limit(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	if n > 50 {
		return 50
	}
	return n
}

// Link accepts a site-relative path or an absolute http(s) URL.
func Link(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 300 {
		return "", false
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s, !strings.ContainsAny(s, " \"<>")
	}
	return s, reLinkPath.MatchString(s)
}

// Bool reads an HTML checkbox value.
func Bool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
