package services

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// excerptBudget is the maximum excerpt length in characters.
const excerptBudget = 200

var (
	// datePattern matches the first YYYY-MM-DD substring anywhere in a path.
	datePattern = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)

	// tagPattern matches hashtags: # followed by alphanumerics, hyphens
	// or underscores, starting with an alphanumeric.
	tagPattern = regexp.MustCompile(`#([A-Za-z0-9][A-Za-z0-9_-]*)`)
)

// Extractor derives structured metadata (date, tags, title, excerpt) from a
// raw document's path and content. Extraction never fails: every field has
// a fallback.
type Extractor struct {
	// now is the clock, swappable in tests.
	now func() time.Time
}

// NewExtractor creates a metadata extractor.
func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// Extract builds a Document from the path and raw content. The date falls
// back to modTime when no YYYY-MM-DD substring parses from the path, and to
// the current time when modTime is zero (synthetic documents).
func (e *Extractor) Extract(path string, raw []byte, modTime time.Time) domain.Document {
	body := string(raw)

	date, ok := extractDate(path)
	if !ok {
		date = modTime
		if date.IsZero() {
			date = e.now()
		}
	}

	return domain.Document{
		Path:      path,
		Title:     extractTitle(body, path),
		Date:      truncateToDay(date),
		Tags:      ExtractTags(body),
		Body:      body,
		Excerpt:   deriveExcerpt(body, excerptBudget),
		IndexedAt: e.now().UTC(),
	}
}

// extractDate scans the path left to right for date-like substrings and
// returns the first one that parses as a real calendar date.
func extractDate(path string) (time.Time, bool) {
	for _, m := range datePattern.FindAllString(path, -1) {
		d, err := time.Parse("2006-01-02", m)
		if err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

// ExtractTags collects hashtag tokens from the text: lowercased,
// deduplicated, first-occurrence order preserved.
func ExtractTags(text string) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, m := range tagPattern.FindAllStringSubmatch(text, -1) {
		tag := strings.ToLower(m[1])
		if seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}

// extractTitle returns the first markdown heading, or falls back to the
// filename stem with separators replaced by spaces.
func extractTitle(body, path string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := headingText(line); ok {
			return rest
		}
	}

	stem := filepath.Base(path)
	if ext := filepath.Ext(stem); ext != "" {
		stem = strings.TrimSuffix(stem, ext)
	}
	stem = strings.ReplaceAll(stem, "_", " ")
	stem = strings.ReplaceAll(stem, "-", " ")
	return strings.TrimSpace(stem)
}

// headingText returns the text of a markdown heading line.
func headingText(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, "#")
	if trimmed == line || !strings.HasPrefix(trimmed, " ") {
		return "", false
	}
	return strings.TrimSpace(trimmed), true
}

// deriveExcerpt returns the first non-empty, non-heading paragraph up to
// budget characters, trimmed at a word boundary.
func deriveExcerpt(body string, budget int) string {
	var para string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		para = line
		break
	}
	if para == "" {
		para = strings.TrimSpace(body)
	}
	if len(para) <= budget {
		return para
	}

	cut := para[:budget]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}

// truncateToDay normalises a timestamp to UTC midnight: documents carry
// calendar dates, not instants.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
