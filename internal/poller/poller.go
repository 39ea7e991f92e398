// Package poller drives the sorting pipeline on a fixed interval:
// list the input directory, process each PDF sequentially, wait, repeat.
// The loop runs until its context is cancelled; no per-file failure and
// no listing failure ever stops it.
package poller

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idimitrov/docsorter/internal/core/domain"
	"github.com/idimitrov/docsorter/internal/core/ports"
	"github.com/idimitrov/docsorter/internal/observability/metrics"
)

// WaitObserver is invoked once per elapsed second of the wait phase with
// the time remaining until the next cycle.
type WaitObserver func(remaining time.Duration)

type Poller struct {
	inputDir string
	interval time.Duration
	sorter   ports.DocumentSorter
	logger   *slog.Logger
	metrics  *metrics.SorterMetrics

	// OnWait, when set, observes the countdown between cycles.
	OnWait WaitObserver

	now func() time.Time
}

func New(inputDir string, interval time.Duration, sorter ports.DocumentSorter, logger *slog.Logger, m *metrics.SorterMetrics) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		inputDir: inputDir,
		interval: interval,
		sorter:   sorter,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Run cycles until ctx is cancelled. The file in flight finishes; the
// remaining wait is abandoned.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("monitoring input directory", "dir", p.inputDir, "interval", p.interval.String())

	for {
		p.RunOnce(ctx)

		if err := p.wait(ctx); err != nil {
			p.logger.Info("poller stopped", "reason", ctx.Err())
			return nil
		}
	}
}

// RunOnce performs a single listing/processing cycle and returns the number
// of files moved. Tests drive the loop through this method.
func (p *Poller) RunOnce(ctx context.Context) int {
	started := p.now()

	files := p.listPDFs()
	if len(files) == 0 {
		p.logger.Debug("no pdf files to sort", "dir", p.inputDir)
		p.metrics.ObserveCycle(p.now().Sub(started), 0)
		return 0
	}

	processed := 0
	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		p.metrics.StartFile()
		outcome, err := p.sorter.Sort(ctx, path, p.now())
		p.metrics.FinishFile(outcome)
		if err != nil {
			p.logger.Error("sort failed, leaving file in place", "file", path, "error", err)
			continue
		}
		if outcome.Status == domain.StatusMoved {
			processed++
		}
	}

	elapsed := p.now().Sub(started)
	if processed > 0 {
		p.logger.Info("cycle complete", "processed", processed, "files", len(files), "elapsed", elapsed.String())
	}
	p.metrics.ObserveCycle(elapsed, len(files))
	return processed
}

// listPDFs enumerates .pdf files directly under the input directory.
// A listing failure yields an empty batch for this cycle.
func (p *Poller) listPDFs() []string {
	entries, err := os.ReadDir(p.inputDir)
	if err != nil {
		p.logger.Error("failed to list input directory", "dir", p.inputDir, "error", err)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(p.inputDir, entry.Name()))
	}
	return files
}

// wait sleeps for the configured interval in one-second ticks, surfacing
// the countdown to the observer. Returns ctx.Err() when cancelled.
func (p *Poller) wait(ctx context.Context) error {
	remaining := p.interval
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for remaining > 0 {
		if p.OnWait != nil {
			p.OnWait(remaining)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			remaining -= time.Second
		}
	}
	return nil
}
