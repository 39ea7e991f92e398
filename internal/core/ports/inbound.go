package ports

import (
	"context"
	"time"

	"github.com/idimitrov/docsorter/internal/core/domain"
)

// DocumentSorter runs the full pipeline for a single input file: extract,
// classify, move. The returned error is non-nil only for archive failures;
// extraction and classification problems surface as a skipped outcome.
type DocumentSorter interface {
	Sort(ctx context.Context, path string, when time.Time) (domain.SortOutcome, error)
}
