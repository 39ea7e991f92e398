package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/idimitrov/docsorter/internal/core/domain"
	"github.com/idimitrov/docsorter/internal/infrastructure/archive/localfs"
)

type extractorFake struct {
	text  string
	err   error
	calls int
}

func (f *extractorFake) Extract(context.Context, string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type classifierFake struct {
	cls   domain.Classification
	err   error
	calls int
}

func (f *classifierFake) Classify(context.Context, string) (domain.Classification, error) {
	f.calls++
	if f.err != nil {
		return domain.Classification{}, f.err
	}
	return f.cls, nil
}

type archiveFake struct {
	err    error
	calls  int
	source string
	label  domain.DocumentType
	date   time.Time
}

func (f *archiveFake) PlanTarget(docType domain.DocumentType, _ time.Time) (string, error) {
	return filepath.Join("/out", docType.DirectoryName()), nil
}

func (f *archiveFake) Store(_ context.Context, source string, docType domain.DocumentType, date time.Time) (string, error) {
	f.calls++
	f.source = source
	f.label = docType
	f.date = date
	if f.err != nil {
		return "", f.err
	}
	return filepath.Join("/out", docType.DirectoryName(), "2024", "Month_6", "Week_3", filepath.Base(source)), nil
}

type historyFake struct {
	records []domain.SortRecord
	err     error
}

func (f *historyFake) RecordOutcome(_ context.Context, rec domain.SortRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

func (f *historyFake) ListRecent(context.Context, int) ([]domain.SortRecord, error) {
	return f.records, nil
}

type publisherFake struct {
	published []domain.SortRecord
	err       error
}

func (f *publisherFake) PublishDocumentSorted(_ context.Context, rec domain.SortRecord) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, rec)
	return nil
}

func TestSortMovesClassifiedDocument(t *testing.T) {
	archive := &archiveFake{}
	uc := NewSortDocumentUseCase(
		&extractorFake{text: "invoice text"},
		&classifierFake{cls: domain.Classification{Label: domain.TypeInvoice, Confidence: 0.9}},
		archive,
		nil,
	)

	when := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	outcome, err := uc.Sort(context.Background(), "/in/a.pdf", when)
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	if outcome.Status != domain.StatusMoved {
		t.Fatalf("status = %s, want moved", outcome.Status)
	}
	if want := filepath.Join("/out", "Invoices", "2024", "Month_6", "Week_3", "a.pdf"); outcome.Target != want {
		t.Fatalf("target = %q, want %q", outcome.Target, want)
	}
	if archive.label != domain.TypeInvoice || !archive.date.Equal(when) {
		t.Fatalf("archive got label=%s date=%s", archive.label, archive.date)
	}
}

func TestSortSkipsOnEmptyTextWithoutClassifying(t *testing.T) {
	classifier := &classifierFake{}
	archive := &archiveFake{}
	uc := NewSortDocumentUseCase(&extractorFake{text: "   "}, classifier, archive, nil)

	outcome, err := uc.Sort(context.Background(), "/in/a.pdf", time.Now())
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	if outcome.Status != domain.StatusSkipped {
		t.Fatalf("status = %s, want skipped", outcome.Status)
	}
	if classifier.calls != 0 {
		t.Fatalf("classifier should not be invoked for empty text")
	}
	if archive.calls != 0 {
		t.Fatalf("archive should not be touched for skipped file")
	}
}

func TestSortSkipsOnExtractionError(t *testing.T) {
	archive := &archiveFake{}
	uc := NewSortDocumentUseCase(
		&extractorFake{err: errors.New("corrupt pdf")},
		&classifierFake{},
		archive,
		nil,
	)

	outcome, err := uc.Sort(context.Background(), "/in/a.pdf", time.Now())
	if err != nil {
		t.Fatalf("extraction failure must not surface as error, got %v", err)
	}
	if outcome.Status != domain.StatusSkipped {
		t.Fatalf("status = %s, want skipped", outcome.Status)
	}
	if archive.calls != 0 {
		t.Fatalf("no filesystem mutation expected on skip")
	}
}

func TestSortSkipsOnClassifierError(t *testing.T) {
	archive := &archiveFake{}
	uc := NewSortDocumentUseCase(
		&extractorFake{text: "some text"},
		&classifierFake{err: errors.New("model down")},
		archive,
		nil,
	)

	outcome, err := uc.Sort(context.Background(), "/in/a.pdf", time.Now())
	if err != nil {
		t.Fatalf("classifier failure must not surface as error, got %v", err)
	}
	if outcome.Status != domain.StatusSkipped {
		t.Fatalf("status = %s, want skipped", outcome.Status)
	}
	if archive.calls != 0 {
		t.Fatalf("no filesystem mutation expected on skip")
	}
}

func TestSortReturnsErrorOnArchiveFailure(t *testing.T) {
	uc := NewSortDocumentUseCase(
		&extractorFake{text: "text"},
		&classifierFake{cls: domain.Classification{Label: domain.TypeReport, Confidence: 0.8}},
		&archiveFake{err: errors.New("disk full")},
		nil,
	)

	outcome, err := uc.Sort(context.Background(), "/in/a.pdf", time.Now())
	if err == nil {
		t.Fatalf("expected archive error")
	}
	if outcome.Status != domain.StatusFailed {
		t.Fatalf("status = %s, want failed", outcome.Status)
	}
	if outcome.Label != domain.TypeReport {
		t.Fatalf("failed outcome should carry the label, got %s", outcome.Label)
	}
}

func TestSortEndToEndMovesIntoDateTree(t *testing.T) {
	root := t.TempDir()
	archive, err := localfs.New(root)
	if err != nil {
		t.Fatalf("localfs.New() error = %v", err)
	}

	source := filepath.Join(t.TempDir(), "a.pdf")
	if err := os.WriteFile(source, []byte("%PDF-1.4 invoice"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}

	uc := NewSortDocumentUseCase(
		&extractorFake{text: "invoice text"},
		&classifierFake{cls: domain.Classification{Label: domain.TypeInvoice, Confidence: 0.9}},
		archive,
		nil,
	)

	when := time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
	outcome, err := uc.Sort(context.Background(), source, when)
	if err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	want := filepath.Join(root, "Invoices", "2024", "Month_6", "Week_3", "a.pdf")
	if outcome.Target != want {
		t.Fatalf("target = %q, want %q", outcome.Target, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("moved file missing: %v", err)
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("source should be gone, stat err = %v", err)
	}
}

func TestSortRecordsHistoryAndPublishesEvents(t *testing.T) {
	history := &historyFake{}
	events := &publisherFake{}
	uc := NewSortDocumentUseCase(
		&extractorFake{text: "text"},
		&classifierFake{cls: domain.Classification{Label: domain.TypeInvoice, Confidence: 0.9}},
		&archiveFake{},
		nil,
		WithSortHistory(history),
		WithEventPublisher(events),
	)

	if _, err := uc.Sort(context.Background(), "/in/a.pdf", time.Now()); err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	if len(history.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history.records))
	}
	if history.records[0].Filename != "a.pdf" || history.records[0].Status != domain.StatusMoved {
		t.Fatalf("unexpected history record: %+v", history.records[0])
	}
	if len(events.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(events.published))
	}
}

func TestSortHistoryFailureIsNotFatal(t *testing.T) {
	uc := NewSortDocumentUseCase(
		&extractorFake{text: "text"},
		&classifierFake{cls: domain.Classification{Label: domain.TypeInvoice, Confidence: 0.9}},
		&archiveFake{},
		nil,
		WithSortHistory(&historyFake{err: errors.New("db down")}),
	)

	outcome, err := uc.Sort(context.Background(), "/in/a.pdf", time.Now())
	if err != nil {
		t.Fatalf("history failure must not fail the sort, got %v", err)
	}
	if outcome.Status != domain.StatusMoved {
		t.Fatalf("status = %s, want moved", outcome.Status)
	}
}

func TestSortRecordsSkippedOutcomes(t *testing.T) {
	history := &historyFake{}
	events := &publisherFake{}
	uc := NewSortDocumentUseCase(
		&extractorFake{text: ""},
		&classifierFake{},
		&archiveFake{},
		nil,
		WithSortHistory(history),
		WithEventPublisher(events),
	)

	if _, err := uc.Sort(context.Background(), "/in/a.pdf", time.Now()); err != nil {
		t.Fatalf("Sort() error = %v", err)
	}
	if len(history.records) != 1 || history.records[0].Status != domain.StatusSkipped {
		t.Fatalf("skips should be recorded: %+v", history.records)
	}
	if len(events.published) != 0 {
		t.Fatalf("skips must not publish sorted events")
	}
}
