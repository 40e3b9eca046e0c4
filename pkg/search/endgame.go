package search

import (
	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

// solveEndgame exhaustively searches a low-piece-count position to a
// perfect (within EndgamePlyCeiling) result instead of a depth-limited
// heuristic search. Guarded two ways against runaway recursion: a memo
// table keyed by (hash, perspective) short-circuits repeated positions, and
// a `seen` set of the same key, populated for the duration of the current
// recursive path, turns a cycle (two kings shuffling forever) into an
// immediate draw verdict rather than infinite recursion. Beyond
// EndgamePlyCeiling plies the solver gives up and falls back to the static
// evaluator.
func (s *run) solveEndgame(perspective board.Color, ply, depth int) (eval.Score, error) {
	if s.cancelled() {
		return 0, s.stopErr()
	}

	b := s.board
	key := Key{Hash: b.Hash, Perspective: perspective}

	if result := b.Winner(); result != board.Undecided {
		return terminalScore(result, perspective, ply), nil
	}
	if depth >= s.opt.endgamePlyCeiling() {
		return s.eval.Evaluate(b, perspective), nil
	}
	if score, ok := s.endgameMemo[key]; ok {
		return score, nil
	}
	if s.seen[key] {
		return 0, nil // cycle: treat as a draw
	}
	s.seen[key] = true
	defer delete(s.seen, key)

	legal := b.LegalMoves(b.Turn)
	if len(legal) == 0 {
		return terminalScore(b.Winner(), perspective, ply), nil
	}

	best := eval.NegInf
	for _, m := range flatten(legal) {
		undo, err := b.MakeMove(m)
		if err != nil {
			continue
		}
		score, err := s.solveEndgame(perspective.Opponent(), ply+1, depth+1)
		b.UnmakeMove(undo)
		if err != nil {
			return 0, err
		}
		score = -score
		if score > best {
			best = score
		}
	}

	s.endgameMemo[key] = best
	s.nodes++
	return best, nil
}
