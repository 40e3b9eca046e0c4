package board

import "github.com/windmill-games/draughts/pkg/draughtserr"

// Sentinel errors for the board/move-generation core, re-exported from
// draughtserr so callers deep in pkg/board need not import both packages.
// Checked with errors.Is; wrapped with fmt.Errorf("...: %w", ...) for context.
var (
	// ErrIllegalMove is returned by MakeMove when the requested path is
	// structurally impossible on the board or asserts contradictory captures.
	ErrIllegalMove = draughtserr.ErrIllegalMove

	// ErrInvalidArgument is returned for out-of-range coordinates or other
	// malformed caller input.
	ErrInvalidArgument = draughtserr.ErrInvalidArgument

	// ErrInternal signals a broken invariant: hash drift, a ghost piece, or
	// move-cache corruption. It indicates a bug, not caller misuse.
	ErrInternal = draughtserr.ErrInternal
)
