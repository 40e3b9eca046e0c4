package search

import (
	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

// quiescence extends a leaf node with a capture-only search so the static
// evaluator is never trusted mid-exchange: a position with a pending
// favorable capture is not scored as if the capture simply didn't exist.
// Stand-pat (the static score) is always a candidate; the search only
// looks at moves that capture, and only up to QuiescenceMaxPly deep.
func (s *run) quiescence(b *board.Board, perspective board.Color, alpha, beta eval.Score, qply int) eval.Score {
	s.nodes++

	stand := s.eval.Evaluate(b, perspective)
	if stand >= beta {
		return stand
	}
	if stand > alpha {
		alpha = stand
	}
	if qply >= QuiescenceMaxPly {
		return alpha
	}

	legal := b.LegalMoves(b.Turn)
	captures := captureOnlyMoves(legal)
	if len(captures) == 0 {
		return alpha
	}

	for _, m := range captures {
		if s.cancelled() {
			return alpha
		}
		undo, err := b.MakeMove(m)
		if err != nil {
			continue
		}
		score := -s.quiescence(b, perspective.Opponent(), -beta, -alpha, qply+1)
		b.UnmakeMove(undo)

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
