// Revets - Sales Data Pipeline and Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/revets

package sales

// Report summarizes what cleaning did to a file.
type Report struct {
	Source string
	Rows   int

	// DefaultsFilled counts null cells replaced by a schema default, per column.
	DefaultsFilled map[string]int
	// Nulls counts cells left null after defaults, per column.
	Nulls map[string]int

	// MissingColumns are optional schema columns absent from the file (loaded as null).
	MissingColumns []string
	// ExtraColumns are header columns kept as text in lenient mode.
	ExtraColumns []string
}

func newReport(source string) *Report {
	return &Report{
		Source:         source,
		DefaultsFilled: make(map[string]int),
		Nulls:          make(map[string]int),
	}
}

// TotalDefaultsFilled sums DefaultsFilled over all columns.
func (r *Report) TotalDefaultsFilled() int {
	total := 0
	for _, n := range r.DefaultsFilled {
		total += n
	}
	return total
}
