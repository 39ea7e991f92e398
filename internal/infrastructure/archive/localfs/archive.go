// Package localfs places sorted documents into a date-partitioned tree
// under a single output root:
//
//	<root>/<Type plural>/<year>/Month_<m>/Week_<w>/<filename>
//
// It assumes a single writer per output root; collision resolution is
// check-then-act without locking.
package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/idimitrov/docsorter/internal/core/domain"
)

type Archive struct {
	root string
}

func New(root string) (*Archive, error) {
	if root == "" {
		root = "./sorted_documents"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create archive root: %w", err)
	}
	return &Archive{root: root}, nil
}

func (a *Archive) Root() string { return a.root }

// EnsureTree pre-creates every Type/Year/Month/Week branch for the curated
// label set. The planner still creates missing branches on demand, so this
// is convenience for browsing, not a correctness requirement.
func (a *Archive) EnsureTree(firstYear, lastYear int) error {
	for _, label := range domain.CandidateLabels() {
		for year := firstYear; year <= lastYear; year++ {
			for month := 1; month <= 12; month++ {
				for week := 1; week <= 5; week++ {
					dir := filepath.Join(
						a.root, label.DirectoryName(), strconv.Itoa(year),
						fmt.Sprintf("Month_%d", month), fmt.Sprintf("Week_%d", week),
					)
					if err := os.MkdirAll(dir, 0o755); err != nil {
						return fmt.Errorf("create tree branch %s: %w", dir, err)
					}
				}
			}
		}
	}
	return nil
}

// PlanTarget computes the directory for a label and date and ensures it
// exists. Unknown labels land in their own pluralized branch.
func (a *Archive) PlanTarget(docType domain.DocumentType, date time.Time) (string, error) {
	dir := filepath.Join(
		a.root,
		docType.DirectoryName(),
		strconv.Itoa(date.Year()),
		fmt.Sprintf("Month_%d", int(date.Month())),
		fmt.Sprintf("Week_%d", domain.WeekOfMonth(date)),
	)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create target directory %s: %w", dir, err)
	}
	return dir, nil
}

// Store moves source into the planned directory, resolving filename
// collisions, and returns the final path.
func (a *Archive) Store(ctx context.Context, source string, docType domain.DocumentType, date time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir, err := a.PlanTarget(docType, date)
	if err != nil {
		return "", err
	}

	target, err := ResolveCollision(filepath.Join(dir, filepath.Base(source)))
	if err != nil {
		return "", fmt.Errorf("resolve target name: %w", err)
	}

	if err := moveFile(source, target); err != nil {
		return "", fmt.Errorf("move %s: %w", source, err)
	}
	return target, nil
}
