package ports

import (
	"context"
	"time"

	"github.com/idimitrov/docsorter/internal/core/domain"
)

// TextExtractor turns a document file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// DocumentClassifier ranks the candidate labels for a piece of text and
// returns the top one.
type DocumentClassifier interface {
	Classify(ctx context.Context, text string) (domain.Classification, error)
}

// DocumentArchive places sorted documents into the partitioned output tree.
type DocumentArchive interface {
	// PlanTarget computes the target directory for a label and date and
	// ensures it exists.
	PlanTarget(docType domain.DocumentType, date time.Time) (string, error)
	// Store plans, resolves filename collisions, and moves the source file.
	// It returns the final target path.
	Store(ctx context.Context, source string, docType domain.DocumentType, date time.Time) (string, error)
}

// SortHistory records outcomes for auditing and reporting.
type SortHistory interface {
	RecordOutcome(ctx context.Context, rec domain.SortRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.SortRecord, error)
}

// EventPublisher announces sorted documents to downstream consumers.
type EventPublisher interface {
	PublishDocumentSorted(ctx context.Context, rec domain.SortRecord) error
}
