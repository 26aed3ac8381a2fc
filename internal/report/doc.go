// Package report renders the end-of-run summary: per-section outcome tables
// and overall totals with percentages.
package report
