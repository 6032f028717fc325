// Package classify holds the severity model shared by every opsreport
// generator: a fixed four-value severity scale, one immutable Result per
// input entity, and an ordered first-match-wins rule engine.
package classify

import "sort"

// Severity is the classification outcome for one entity.
type Severity string

const (
	SeverityFailed  Severity = "failed"
	SeverityWarning Severity = "warning"
	SeverityStale   Severity = "stale"
	SeverityOK      Severity = "ok"
)

// severityRank orders severities worst-first for report grouping.
var severityRank = map[Severity]int{
	SeverityFailed:  0,
	SeverityWarning: 1,
	SeverityStale:   2,
	SeverityOK:      3,
}

// Rank returns the worst-first sort rank of a severity. Unknown severities
// sort last.
func Rank(s Severity) int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return len(severityRank)
}

// WorstFirst lists all severities in report order.
func WorstFirst() []Severity {
	return []Severity{SeverityFailed, SeverityWarning, SeverityStale, SeverityOK}
}

// Result is the classification of a single entity. Produced once, never
// mutated, consumed only by the renderer.
type Result struct {
	Name       string            `json:"name"`
	Severity   Severity          `json:"severity"`
	Reason     string            `json:"reason"`
	Category   string            `json:"category,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Counts is the per-severity tally used by the summary and the
// JSON/HTML reconciliation invariant.
type Counts map[Severity]int

// Count tallies results by severity.
func Count(results []Result) Counts {
	counts := make(Counts, len(severityRank))
	for _, r := range results {
		counts[r.Severity]++
	}
	return counts
}

// Total returns the number of classified entities.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// SortWorstFirst orders results by severity rank, preserving input order
// within a severity. Sorting is stable so classification output stays
// deterministic for identical input.
func SortWorstFirst(results []Result) {
	sort.SliceStable(results, func(i, j int) bool {
		return Rank(results[i].Severity) < Rank(results[j].Severity)
	})
}
