package localfs

import (
	"path/filepath"
	"testing"
)

func TestResolveCollisionFreePathUnchanged(t *testing.T) {
	target := filepath.Join(t.TempDir(), "x.pdf")
	got, err := ResolveCollision(target)
	if err != nil {
		t.Fatalf("ResolveCollision() error = %v", err)
	}
	if got != target {
		t.Fatalf("expected unchanged path, got %q", got)
	}
}

func TestResolveCollisionSuffixesInOrder(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "x.pdf")
	writeFile(t, target, "1")

	got, err := ResolveCollision(target)
	if err != nil {
		t.Fatalf("ResolveCollision() error = %v", err)
	}
	if want := filepath.Join(dir, "x_1.pdf"); got != want {
		t.Fatalf("first candidate = %q, want %q", got, want)
	}

	writeFile(t, got, "2")
	got, err = ResolveCollision(target)
	if err != nil {
		t.Fatalf("ResolveCollision() second error = %v", err)
	}
	if want := filepath.Join(dir, "x_2.pdf"); got != want {
		t.Fatalf("second candidate = %q, want %q", got, want)
	}
}

func TestResolveCollisionNoExtension(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "README")
	writeFile(t, target, "1")

	got, err := ResolveCollision(target)
	if err != nil {
		t.Fatalf("ResolveCollision() error = %v", err)
	}
	if want := filepath.Join(dir, "README_1"); got != want {
		t.Fatalf("candidate = %q, want %q", got, want)
	}
}
