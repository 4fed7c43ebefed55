package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driven"
	"github.com/moteboxai/agent-memory-tools/internal/core/ports/driving"
	"github.com/moteboxai/agent-memory-tools/internal/logger"
)

// Per-category caps on how many units a single compression emits.
const (
	maxDecisions = 5
	maxActions   = 5
	maxInsights  = 3
	maxQuestions = 3
)

// titleBudget caps derived record titles.
const titleBudget = 60

// Cue phrases for heuristic classification. A unit matching no cue is
// discarded: the output is a strict subset of the input. Classification is
// deliberately shallow; ambiguous sentences (a rhetorical question without
// a question mark, say) will be misclassified or dropped.
var (
	decisionCues = []string{"decided", "concluded", "chose", "will use"}
	actionCues   = []string{"built", "created", "posted", "implemented"}
	insightCues  = []string{"realized", "understood", "noticed", "learned"}
)

// topicKeywords map cue words in the text to topic tags added alongside
// hashtags on captured records. Ordered so tag output is deterministic.
var topicKeywords = []struct {
	topic string
	words []string
}{
	{"memory", []string{"memory", "remember", "persistence"}},
	{"decision", []string{"decided", "conclusion", "chose"}},
	{"tools", []string{"skill", "script", "tool", "build"}},
	{"philosophy", []string{"continuity", "existence", "identity"}},
}

// Ensure CaptureService implements the interface.
var _ driving.CaptureService = (*CaptureService)(nil)

// CaptureService compresses conversation text into categorized insight
// records and persists each one as its own searchable document.
type CaptureService struct {
	index driven.TextIndex
	now   func() time.Time
}

// NewCaptureService creates a capture service over the given index.
func NewCaptureService(index driven.TextIndex) *CaptureService {
	return &CaptureService{index: index, now: time.Now}
}

// Compress scans the conversation line by line, classifies each line by
// cue phrase, persists one record per classified unit plus a summary
// record, and returns everything produced. Lines matching no cue are
// dropped.
func (s *CaptureService) Compress(ctx context.Context, conversation, title string) ([]domain.InsightRecord, error) {
	if strings.TrimSpace(conversation) == "" {
		return nil, fmt.Errorf("%w: conversation text is required", domain.ErrInvalidInput)
	}

	now := s.now()
	if title = sanitizeTitle(title); title == "" {
		title = "conversation-" + now.Format("1504")
	}

	logger.Section("Session Compression")
	logger.Debug("Title: %q, input: %d bytes", title, len(conversation))

	counts := map[domain.Category]int{}
	var records []domain.InsightRecord

	for _, line := range strings.Split(conversation, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		category, ok := classify(line)
		if !ok || counts[category] >= categoryCap(category) {
			continue
		}
		counts[category]++
		records = append(records, s.newRecord(category, line, line, now))
	}

	summary := s.newRecord(domain.CategorySummary, fmt.Sprintf(
		"Compressed %q: %d decisions, %d insights, %d actions, %d questions.",
		title,
		counts[domain.CategoryDecision], counts[domain.CategoryInsight],
		counts[domain.CategoryAction], counts[domain.CategoryQuestion],
	), title, now)
	records = append(records, summary)

	for i := range records {
		if err := s.index.Upsert(ctx, records[i].Document); err != nil {
			return nil, fmt.Errorf("persist %s record: %w", records[i].Category, err)
		}
	}

	logger.Info("Compressed %q into %d records", title, len(records))
	return records, nil
}

// CaptureDecision synthesizes exactly one decision record without running
// full compression.
func (s *CaptureService) CaptureDecision(ctx context.Context, text, rationale string) (*domain.InsightRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: decision text is required", domain.ErrInvalidInput)
	}

	body := "Decision: " + text
	if rationale != "" {
		body += "\n\nRationale: " + rationale
	}

	rec := s.newRecord(domain.CategoryDecision, body, text, s.now())
	if err := s.index.Upsert(ctx, rec.Document); err != nil {
		return nil, fmt.Errorf("persist decision record: %w", err)
	}
	return &rec, nil
}

// CaptureInsight synthesizes exactly one insight record.
func (s *CaptureService) CaptureInsight(ctx context.Context, text string) (*domain.InsightRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: insight text is required", domain.ErrInvalidInput)
	}

	rec := s.newRecord(domain.CategoryInsight, text, text, s.now())
	if err := s.index.Upsert(ctx, rec.Document); err != nil {
		return nil, fmt.Errorf("persist insight record: %w", err)
	}
	return &rec, nil
}

// newRecord builds a synthetic document for one classified unit. The path
// is unique and never collides with a file on disk.
func (s *CaptureService) newRecord(category domain.Category, body, label string, now time.Time) domain.InsightRecord {
	path := fmt.Sprintf("%s%s/%s-%s",
		domain.SyntheticPathPrefix, now.Format("2006-01-02"), category, uuid.New().String()[:8])

	tags := ExtractTags(body)
	tags = appendTopicTags(tags, body)
	tags = appendUnique(tags, string(category))

	return domain.InsightRecord{
		Category: category,
		Document: domain.Document{
			Path:      path,
			Title:     capAtWord(label, titleBudget),
			Date:      truncateToDay(now),
			Tags:      tags,
			Body:      body,
			Excerpt:   deriveExcerpt(body, excerptBudget),
			IndexedAt: now.UTC(),
		},
	}
}

// classify matches a unit against the cue phrases. Precedence (decision,
// question, action, insight) is fixed so classification is deterministic
// when a line matches several categories.
func classify(line string) (domain.Category, bool) {
	lower := strings.ToLower(line)
	switch {
	case containsAny(lower, decisionCues):
		return domain.CategoryDecision, true
	case strings.HasSuffix(line, "?") && len(line) < 200:
		return domain.CategoryQuestion, true
	case containsAny(lower, actionCues):
		return domain.CategoryAction, true
	case containsAny(lower, insightCues):
		return domain.CategoryInsight, true
	}
	return "", false
}

func categoryCap(c domain.Category) int {
	switch c {
	case domain.CategoryDecision:
		return maxDecisions
	case domain.CategoryAction:
		return maxActions
	case domain.CategoryInsight:
		return maxInsights
	case domain.CategoryQuestion:
		return maxQuestions
	default:
		return 1
	}
}

func containsAny(s string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(s, cue) {
			return true
		}
	}
	return false
}

// appendTopicTags adds topic tags whose keywords appear in the text.
func appendTopicTags(tags []string, text string) []string {
	lower := strings.ToLower(text)
	for _, kw := range topicKeywords {
		if containsAny(lower, kw.words) {
			tags = appendUnique(tags, kw.topic)
		}
	}
	return tags
}

func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}

// sanitizeTitle strips characters unsafe for display or path usage and
// caps length, mirroring the capture file naming rules.
func sanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == ' ', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	s := strings.TrimSpace(b.String())
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// capAtWord truncates s at a word boundary within budget characters.
func capAtWord(s string, budget int) string {
	s = strings.TrimSpace(s)
	if len(s) <= budget {
		return s
	}
	cut := s[:budget]
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
