package datasets

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

func parseFloat64(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty string")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// Auto-discovery helpers

// FindDataset returns the first path matching any of patterns.
func FindDataset(patterns []string) (string, error) {
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}
	return "", errors.Errorf("no dataset found in %v", patterns)
}
