// Package draughtserr defines the sentinel error taxonomy shared by
// pkg/engine, pkg/search, and pkg/mcts. Callers check membership with
// errors.Is; package code wraps a sentinel with fmt.Errorf("...: %w", ...)
// for context.
package draughtserr

import "errors"

var (
	// ErrIllegalMove is returned when a requested move is not in the
	// legal move set for the side to move.
	ErrIllegalMove = errors.New("illegal move")

	// ErrInvalidArgument is returned for malformed caller input: an
	// unknown variant, an out-of-range coordinate, a nonsensical option.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrCancelled is returned when a search is stopped by context
	// cancellation before it produces a result.
	ErrCancelled = errors.New("search cancelled")

	// ErrTimeUp is returned internally when a deadline elapses mid-search;
	// it is caught at the iterative-deepening boundary and converted to a
	// best-so-far result, so it should never reach an external caller.
	ErrTimeUp = errors.New("search time up")

	// ErrInternal signals a broken invariant (hash drift, a ghost piece,
	// move-cache corruption, an empty search result) rather than caller
	// misuse.
	ErrInternal = errors.New("internal invariant violation")

	// ErrNoActiveGame is returned by operations that require a game to
	// have been started via NewGame/Reset first.
	ErrNoActiveGame = errors.New("no active game")

	// ErrSearchInProgress is returned when a caller starts a second AI
	// search while one is already running.
	ErrSearchInProgress = errors.New("search already in progress")
)
