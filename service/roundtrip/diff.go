package roundtrip

import (
	"bytes"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// DiffStats captures basic statistics about a unified-diff output.
type DiffStats struct {
	Hunks   int `json:"hunks" yaml:"hunks"`
	Added   int `json:"added" yaml:"added"`
	Removed int `json:"removed" yaml:"removed"`
}

// Changed reports whether any line differs.
func (s DiffStats) Changed() bool {
	return s.Added > 0 || s.Removed > 0
}

// GenerateDiff produces a unified diff between two renderings of name. It
// returns an empty diff when both are identical.
func GenerateDiff(before, after []byte, name string, contextLines int) (string, DiffStats, error) {
	if contextLines <= 0 {
		contextLines = 3
	}
	if string(before) == string(after) {
		return "", DiffStats{}, nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: name + " (before)",
		ToFile:   name + " (after)",
		Context:  contextLines,
	}
	diff, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return "", DiffStats{}, err
	}
	stats, err := Stats(diff)
	if err != nil {
		return "", DiffStats{}, err
	}
	return diff, stats, nil
}

// Stats counts the hunks and changed lines of a single file unified diff.
func Stats(diff string) (DiffStats, error) {
	var stats DiffStats
	if diff == "" {
		return stats, nil
	}
	fd, err := sgdiff.ParseFileDiff([]byte(diff))
	if err != nil {
		return stats, fmt.Errorf("parse diff: %w", err)
	}
	stats.Hunks = len(fd.Hunks)
	for _, hunk := range fd.Hunks {
		for _, line := range bytes.Split(hunk.Body, []byte("\n")) {
			switch {
			case bytes.HasPrefix(line, []byte("+")):
				stats.Added++
			case bytes.HasPrefix(line, []byte("-")):
				stats.Removed++
			}
		}
	}
	return stats, nil
}
