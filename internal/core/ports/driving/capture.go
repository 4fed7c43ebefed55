package driving

import (
	"context"

	"github.com/moteboxai/agent-memory-tools/internal/core/domain"
)

// CaptureService compresses free-form conversation text into categorized
// insight records and persists them as searchable documents.
type CaptureService interface {
	// Compress classifies the conversation line by line, persists one
	// document per classified unit plus a summary record, and returns
	// everything it produced.
	Compress(ctx context.Context, conversation, title string) ([]domain.InsightRecord, error)

	// CaptureDecision persists a single decision record, with an
	// optional rationale.
	CaptureDecision(ctx context.Context, text, rationale string) (*domain.InsightRecord, error)

	// CaptureInsight persists a single insight record.
	CaptureInsight(ctx context.Context, text string) (*domain.InsightRecord, error)
}
