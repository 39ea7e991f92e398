package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idimitrov/docsorter/internal/core/domain"
	"github.com/idimitrov/docsorter/internal/core/ports"
)

// SortDocumentUseCase runs the per-file pipeline: extract text, classify,
// move into the archive. Extraction and classification problems degrade to
// a skipped outcome so the file stays in the input directory for the next
// cycle; only archive failures surface as errors.
type SortDocumentUseCase struct {
	extractor  ports.TextExtractor
	classifier ports.DocumentClassifier
	archive    ports.DocumentArchive

	history ports.SortHistory    // optional
	events  ports.EventPublisher // optional

	classifyTimeout time.Duration
	logger          *slog.Logger
}

type SortOption func(*SortDocumentUseCase)

func WithSortHistory(history ports.SortHistory) SortOption {
	return func(uc *SortDocumentUseCase) { uc.history = history }
}

func WithEventPublisher(events ports.EventPublisher) SortOption {
	return func(uc *SortDocumentUseCase) { uc.events = events }
}

func WithClassifyTimeout(timeout time.Duration) SortOption {
	return func(uc *SortDocumentUseCase) {
		if timeout > 0 {
			uc.classifyTimeout = timeout
		}
	}
}

func NewSortDocumentUseCase(
	extractor ports.TextExtractor,
	classifier ports.DocumentClassifier,
	archive ports.DocumentArchive,
	logger *slog.Logger,
	opts ...SortOption,
) *SortDocumentUseCase {
	uc := &SortDocumentUseCase{
		extractor:       extractor,
		classifier:      classifier,
		archive:         archive,
		classifyTimeout: 60 * time.Second,
		logger:          logger,
	}
	if uc.logger == nil {
		uc.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *SortDocumentUseCase) Sort(ctx context.Context, path string, when time.Time) (domain.SortOutcome, error) {
	outcome, err := uc.sort(ctx, path, when)
	uc.record(ctx, outcome, when)
	return outcome, err
}

func (uc *SortDocumentUseCase) sort(ctx context.Context, path string, when time.Time) (domain.SortOutcome, error) {
	text, err := uc.extractor.Extract(ctx, path)
	if err != nil {
		uc.logger.Warn("text extraction failed", "file", path, "error", err)
		return skipped(path, fmt.Sprintf("extract: %v", err)), nil
	}
	if strings.TrimSpace(text) == "" {
		uc.logger.Warn("no text extracted, skipping classification", "file", path)
		return skipped(path, "no text extracted"), nil
	}

	cls, err := uc.classify(ctx, text)
	if err != nil {
		uc.logger.Warn("classification failed", "file", path, "error", err)
		return skipped(path, fmt.Sprintf("classify: %v", err)), nil
	}
	uc.logger.Debug("document classified",
		"file", path, "label", cls.Label, "confidence", cls.Confidence)

	target, err := uc.archive.Store(ctx, path, cls.Label, when)
	if err != nil {
		return domain.SortOutcome{
			Source:     path,
			Label:      cls.Label,
			Confidence: cls.Confidence,
			Status:     domain.StatusFailed,
			Reason:     err.Error(),
		}, err
	}

	uc.logger.Info("document sorted",
		"file", path, "label", cls.Label, "confidence", cls.Confidence, "target", target)
	return domain.SortOutcome{
		Source:     path,
		Target:     target,
		Label:      cls.Label,
		Confidence: cls.Confidence,
		Status:     domain.StatusMoved,
	}, nil
}

func (uc *SortDocumentUseCase) classify(ctx context.Context, text string) (domain.Classification, error) {
	classifyCtx, cancel := context.WithTimeout(ctx, uc.classifyTimeout)
	defer cancel()
	return uc.classifier.Classify(classifyCtx, text)
}

// record persists the outcome and publishes an event, best-effort.
// Neither can fail the sort: the file has already moved (or stayed put).
func (uc *SortDocumentUseCase) record(ctx context.Context, outcome domain.SortOutcome, when time.Time) {
	if uc.history == nil && uc.events == nil {
		return
	}

	rec := domain.SortRecord{
		ID:         uuid.NewString(),
		Filename:   filepath.Base(outcome.Source),
		Source:     outcome.Source,
		Target:     outcome.Target,
		Label:      outcome.Label,
		Confidence: outcome.Confidence,
		Status:     outcome.Status,
		Reason:     outcome.Reason,
		SortedAt:   when.UTC(),
	}

	if uc.history != nil {
		if err := uc.history.RecordOutcome(ctx, rec); err != nil {
			uc.logger.Warn("record sort history failed", "file", rec.Filename, "error", err)
		}
	}
	if uc.events != nil && outcome.Status == domain.StatusMoved {
		if err := uc.events.PublishDocumentSorted(ctx, rec); err != nil {
			uc.logger.Warn("publish sorted event failed", "file", rec.Filename, "error", err)
		}
	}
}

func skipped(path, reason string) domain.SortOutcome {
	return domain.SortOutcome{
		Source: path,
		Status: domain.StatusSkipped,
		Reason: reason,
	}
}
