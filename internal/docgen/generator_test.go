package docgen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pdfextract "github.com/idimitrov/docsorter/internal/infrastructure/extractor/pdf"
)

func TestGenerateSetWritesRequestedCounts(t *testing.T) {
	dir := t.TempDir()
	gen, err := New(dir, 42)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	total, err := gen.GenerateSet(2024, 4, 3, 3)
	if err != nil {
		t.Fatalf("GenerateSet() error = %v", err)
	}
	if total != 10 {
		t.Fatalf("total = %d, want 10", total)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	pdfs := 0
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".pdf") {
			pdfs++
		}
	}
	if pdfs != 10 {
		t.Fatalf("found %d pdf files, want 10", pdfs)
	}
}

func TestGeneratedDocumentsRoundTripThroughExtractor(t *testing.T) {
	dir := t.TempDir()
	gen, err := New(dir, 7)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := gen.GenerateSet(2024, 1, 0, 0); err != nil {
		t.Fatalf("GenerateSet() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one generated file, got %d", len(entries))
	}

	path := filepath.Join(dir, entries[0].Name())
	text, err := pdfextract.NewExtractor().Extract(context.Background(), path)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !strings.Contains(text, "Invoice") {
		t.Fatalf("extracted text missing type keyword: %q", text)
	}
}

func TestRandomDateStaysWithinYear(t *testing.T) {
	gen, err := New(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i := 0; i < 200; i++ {
		date, err := gen.randomDate(2024)
		if err != nil {
			t.Fatalf("randomDate() error = %v", err)
		}
		if date.Year() != 2024 {
			t.Fatalf("date %s outside year 2024", date)
		}
	}
}

func TestRandomDateRejectsInvalidYear(t *testing.T) {
	gen, err := New(t.TempDir(), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := gen.randomDate(0); err == nil {
		t.Fatalf("expected error for year 0")
	}
	if _, err := gen.randomDate(10000); err == nil {
		t.Fatalf("expected error for year 10000")
	}
}
