package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidChoice is returned when a driver reports an index outside
	// the offered options.
	ErrInvalidChoice = errors.New("tui: invalid choice")
	// ErrUnknownFormat is returned by ParseOutputFormat.
	ErrUnknownFormat = errors.New("tui: unknown output format")
)
