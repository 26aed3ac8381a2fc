// Package post builds WordPress post payloads from extracted story content
// and tracks per-row outcomes for the end-of-run report.
package post
