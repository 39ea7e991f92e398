package localfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ResolveCollision returns target unchanged when it is free, otherwise the
// first unused stem_N.ext candidate (stem_1, stem_2, ...). The check and
// the later move are not atomic; a concurrent writer racing on the same
// stem can still collide. Single-instance operation is assumed.
func ResolveCollision(target string) (string, error) {
	free, err := pathFree(target)
	if err != nil {
		return "", err
	}
	if free {
		return target, nil
	}

	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)
	for counter := 1; ; counter++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, counter, ext)
		free, err := pathFree(candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
}

func pathFree(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
