package transcript

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// Stats captures unified diff line counts
type Stats struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

// Result represents a transcript comparison
type Result struct {
	Diff  string `json:"diff,omitempty"`
	Stats Stats  `json:"stats"`
	Hunks int    `json:"hunks"`
}

// Equal reports whether transcripts matched
func (r *Result) Equal() bool {
	return r.Diff == ""
}

// Compare produces a unified diff of expected against actual transcript text
func Compare(expected, actual string) (*Result, error) {
	if expected == actual {
		return &Result{}, nil
	}
	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(expected),
		B:        difflib.SplitLines(actual),
		FromFile: "expected",
		ToFile:   "actual",
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return nil, err
	}
	fileDiff, err := sgdiff.ParseFileDiff([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcript diff: %w", err)
	}
	stat := fileDiff.Stat()
	return &Result{
		Diff: text,
		Stats: Stats{
			Added:   int(stat.Added + stat.Changed),
			Removed: int(stat.Deleted + stat.Changed),
		},
		Hunks: len(fileDiff.Hunks),
	}, nil
}
