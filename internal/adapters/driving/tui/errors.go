package tui

import "errors"

// ErrMissingGraphStore is returned when no graph store is provided and
// no graph was given to display.
var ErrMissingGraphStore = errors.New("tui: graph store is required")

// ErrInvalidPorts is returned when ports are missing entirely.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
