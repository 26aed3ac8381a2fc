// Package logging constructs the slog loggers used across autopost.
//
// It supports a human-oriented console format for interactive runs and a JSON
// format for log files, with standardized field keys for the component, the
// spreadsheet row being processed, and the pipeline stage.
package logging
