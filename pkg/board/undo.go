package board

import "fmt"

// capturedPiece remembers a captured piece and the square it occupied
// before capture, so unmake can resurrect it exactly.
type capturedPiece struct {
	piece *Piece
	at    Coord
}

// Undo is produced by MakeMove and is the sole mechanism for reverting a
// move. It holds the pre-move turn and Zobrist hash, the piece reference
// before and after any promotion, the start/end squares, and the captured
// pieces with their original squares.
type Undo struct {
	prevTurn Color
	prevHash ZobristHash

	mover    *Piece // pre-promotion piece reference
	promoted *Piece // non-nil if this move promoted mover to a King

	start, end Coord
	captures   []capturedPiece
}

// MakeMove applies m's path step by step: for each step, the piece is
// removed from its current square (XOR out of the hash), any captured
// piece is removed (XOR out), the piece is placed at the new square (XOR
// in), and its (row, col) is updated. After the last step, promotion is
// applied if a Man reached the opponent's home rank. Finally turn flips and
// both turn keys are XORed. Returns the Undo record needed to revert the
// move, or ErrIllegalMove if m is structurally impossible on b (no piece of
// the side to move at Start, a step off the board or onto an occupied
// square, a capture square without an enemy piece, or a capture count that
// does not match the step count). m is not checked against LegalMoves.
func (b *Board) MakeMove(m Move) (*Undo, error) {
	if len(m.Steps) == 0 {
		return nil, fmt.Errorf("%w: move has no steps", ErrIllegalMove)
	}

	mover := b.at(m.Start.Row, m.Start.Col)
	if mover == nil {
		return nil, fmt.Errorf("%w: no piece at start %v", ErrIllegalMove, m.Start)
	}
	if mover.Color != b.Turn {
		return nil, fmt.Errorf("%w: piece at %v does not belong to %v", ErrIllegalMove, m.Start, b.Turn)
	}
	if m.IsCapture() && len(m.Captures) != len(m.Steps) {
		return nil, fmt.Errorf("%w: capture count %d does not match step count %d", ErrIllegalMove, len(m.Captures), len(m.Steps))
	}

	undo := &Undo{
		prevTurn: b.Turn,
		prevHash: b.Hash,
		mover:    mover,
		start:    m.Start,
		end:      m.End(),
	}

	row, col := m.Start.Row, m.Start.Col
	for i, step := range m.Steps {
		if !b.within(step.Row, step.Col) {
			return nil, fmt.Errorf("%w: step %v out of bounds", ErrIllegalMove, step)
		}
		if occ := b.at(step.Row, step.Col); occ != nil {
			return nil, fmt.Errorf("%w: destination %v occupied", ErrIllegalMove, step)
		}

		b.Hash ^= PieceKey(b.Size, mover.Color, mover.Kind, row, col)
		b.cells[row][col] = nil

		if i < len(m.Captures) {
			cc := m.Captures[i]
			captured := b.at(cc.Row, cc.Col)
			if captured == nil || captured.Color == mover.Color {
				return nil, fmt.Errorf("%w: no enemy piece at capture square %v", ErrIllegalMove, cc)
			}
			b.Hash ^= PieceKey(b.Size, captured.Color, captured.Kind, cc.Row, cc.Col)
			b.cells[cc.Row][cc.Col] = nil
			undo.captures = append(undo.captures, capturedPiece{piece: captured, at: cc})
		}

		mover.Row, mover.Col = step.Row, step.Col
		b.cells[step.Row][step.Col] = mover
		b.Hash ^= PieceKey(b.Size, mover.Color, mover.Kind, step.Row, step.Col)

		row, col = step.Row, step.Col
	}

	if mover.Kind == Man && row == b.PromotionRank(mover.Color) {
		b.Hash ^= PieceKey(b.Size, mover.Color, Man, row, col)
		promoted := mover.Promote()
		b.cells[row][col] = promoted
		b.Hash ^= PieceKey(b.Size, promoted.Color, promoted.Kind, row, col)
		undo.promoted = promoted
	}

	b.Hash ^= TurnKey(b.Turn)
	b.Turn = b.Turn.Opponent()
	b.Hash ^= TurnKey(b.Turn)

	return undo, nil
}

// UnmakeMove strictly reverses the move described by u: the piece (or its
// promoted form) is removed from the end square, every captured piece is
// re-placed at its remembered square, the mover is restored at the start
// square, and turn and hash are restored directly from the undo record.
// After UnmakeMove, b.Hash == the hash before the corresponding MakeMove,
// exactly.
func (b *Board) UnmakeMove(u *Undo) {
	b.cells[u.end.Row][u.end.Col] = nil

	for _, cp := range u.captures {
		b.cells[cp.at.Row][cp.at.Col] = cp.piece
	}

	u.mover.Row, u.mover.Col = u.start.Row, u.start.Col
	b.cells[u.start.Row][u.start.Col] = u.mover

	b.Turn = u.prevTurn
	b.Hash = u.prevHash
}
