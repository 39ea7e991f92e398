// Package docgen creates sample PDF documents (invoices, protocols,
// reports) for exercising the sorter against realistic input.
package docgen

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/idimitrov/docsorter/internal/core/domain"
)

type Generator struct {
	outputDir string
	rnd       *rand.Rand
}

func New(outputDir string, seed int64) (*Generator, error) {
	if outputDir == "" {
		outputDir = "./incoming_documents"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		outputDir: outputDir,
		rnd:       rand.New(rand.NewSource(seed)),
	}, nil
}

// GenerateSet writes the requested number of sample documents per type,
// each dated randomly within the given year, and returns the total count.
func (g *Generator) GenerateSet(year, invoices, protocols, reports int) (int, error) {
	total := 0

	batches := []struct {
		label   domain.DocumentType
		samples []string
		count   int
	}{
		{domain.TypeInvoice, invoiceSamples, invoices},
		{domain.TypeProtocol, protocolSamples, protocols},
		{domain.TypeReport, reportSamples, reports},
	}

	for _, batch := range batches {
		for i := 0; i < batch.count; i++ {
			date, err := g.randomDate(year)
			if err != nil {
				return total, err
			}
			name := fmt.Sprintf("%s_%s_%d.pdf", batch.label, date.Format("2006-01-02"), i)
			if err := g.createDocument(name, batch.label, batch.samples, date); err != nil {
				return total, err
			}
			total++
		}
	}
	return total, nil
}

func (g *Generator) createDocument(name string, label domain.DocumentType, samples []string, date time.Time) error {
	body := samples[g.rnd.Intn(len(samples))]
	lines := []string{
		fmt.Sprintf("Document type: %s", label),
		fmt.Sprintf("Date: %s", date.Format("02-01-2006")),
		fmt.Sprintf("Month: %s | Week: %d", date.Month(), domain.WeekOfMonth(date)),
		body,
	}
	return writePDF(filepath.Join(g.outputDir, name), lines)
}

// randomDate picks a uniformly random day within the year.
func (g *Generator) randomDate(year int) (time.Time, error) {
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("invalid year: %d", year)
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	days := int(end.Sub(start).Hours()/24) + 1
	return start.AddDate(0, 0, g.rnd.Intn(days)), nil
}
