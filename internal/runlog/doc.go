// Package runlog persists a journal of runs and their per-row outcomes in
// SQLite so past sessions can be reviewed with the history command.
package runlog
