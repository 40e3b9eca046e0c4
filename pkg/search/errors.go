package search

import "github.com/windmill-games/draughts/pkg/draughtserr"

// Sentinel errors returned by Search/Launch instead of panicking or using
// exception-like control flow.
var (
	// ErrTimeUp is returned when Options.Deadline passes mid-search. Caught
	// at the iterative-deepening boundary; never returned to engine callers.
	ErrTimeUp = draughtserr.ErrTimeUp
	// ErrCancelled is returned when the search's context is cancelled.
	ErrCancelled = draughtserr.ErrCancelled
)
