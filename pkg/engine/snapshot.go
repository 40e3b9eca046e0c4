package engine

import "github.com/windmill-games/draughts/pkg/board"

// Snapshot is a read-only view of a game's current position, returned by
// every mutating Game operation so callers never touch the live *board.Board.
type Snapshot struct {
	Variant board.Variant
	Turn    board.Color
	Winner  board.Result
	Pieces  []board.Piece
}

func newSnapshot(b *board.Board) Snapshot {
	var pieces []board.Piece
	for _, p := range b.Pieces() {
		pieces = append(pieces, *p)
	}
	return Snapshot{
		Variant: b.Variant,
		Turn:    b.Turn,
		Winner:  b.Winner(),
		Pieces:  pieces,
	}
}

// IsGameOver reports whether the snapshot's Winner is decided (a side has
// won, or the position is a draw), as opposed to Undecided.
func (s Snapshot) IsGameOver() bool {
	return s.Winner != board.Undecided
}
