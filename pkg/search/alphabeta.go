package search

import (
	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

// run holds the mutable state of one alpha-beta search from a fixed root
// position. Not safe for concurrent use; root parallelism gives each
// worker its own run over its own cloned board.
type run struct {
	opt   Options
	eval  eval.Evaluator
	tt    TranspositionTable
	board *board.Board

	killers *killerTable
	history *historyTable

	endgameMemo map[Key]eval.Score
	seen        map[Key]bool

	nodes   uint64
	quit    <-chan struct{}
	timeUp  func() bool
}

func newRun(opt Options, evaluator eval.Evaluator, tt TranspositionTable, b *board.Board, quit <-chan struct{}, timeUp func() bool) *run {
	return &run{
		opt:         opt,
		eval:        evaluator,
		tt:          tt,
		board:       b,
		killers:     newKillerTable(opt.depthLimit() + QuiescenceMaxPly + 2),
		history:     newHistoryTable(opt.UseButterflyHeuristic),
		endgameMemo: map[Key]eval.Score{},
		seen:        map[Key]bool{},
		quit:        quit,
		timeUp:      timeUp,
	}
}

func (s *run) cancelled() bool {
	if s.quit != nil {
		select {
		case <-s.quit:
			return true
		default:
		}
	}
	if s.opt.UseIterativeDeepening && s.timeUp != nil && s.timeUp() {
		return true
	}
	return false
}

// stopErr names the reason cancelled() reported true: ErrTimeUp once the
// deadline has passed, ErrCancelled otherwise.
func (s *run) stopErr() error {
	if s.opt.UseIterativeDeepening && s.timeUp != nil && s.timeUp() {
		return ErrTimeUp
	}
	return ErrCancelled
}

// search runs alpha-beta negamax from s.board to the given depth, returning
// the score relative to perspective and the principal variation. ply counts
// plies from the root, used for killer-move slots and mate-distance shaping.
func (s *run) search(depth, ply int, alpha, beta eval.Score, perspective board.Color) (eval.Score, []board.Move, error) {
	if s.cancelled() {
		return 0, nil, s.stopErr()
	}
	s.nodes++

	b := s.board
	result := b.Winner()
	if result != board.Undecided {
		return terminalScore(result, perspective, ply), nil, nil
	}

	if s.opt.UseEndgameSolver && b.PieceCount(board.White)+b.PieceCount(board.Black) <= s.opt.endgameThreshold() {
		score, err := s.solveEndgame(perspective, ply, 0)
		return score, nil, err
	}

	if depth <= 0 {
		if s.opt.UseQuiescence {
			return s.quiescence(b, perspective, alpha, beta, 0), nil, nil
		}
		return s.eval.Evaluate(b, perspective), nil, nil
	}

	key := Key{Hash: b.Hash, Perspective: perspective}
	var ttMove board.Move
	if s.opt.UseTranspositionTable {
		if bound, d, score, move, ok := s.tt.Read(key); ok {
			ttMove = move
			if d >= depth {
				switch bound {
				case ExactBound:
					return score, nil, nil
				case LowerBound:
					if score > alpha {
						alpha = score
					}
				case UpperBound:
					if score < beta {
						beta = score
					}
				}
				if s.opt.UseAlphaBeta && alpha >= beta {
					return score, nil, nil
				}
			}
		}
	}

	inCapture := forcedCapture(b)
	if s.opt.UseNullMovePruning && !inCapture && depth >= NullMoveMinDepth && !nearEndgame(b, s.opt) {
		if s.tryNullMove(depth, ply, alpha, beta, perspective) {
			return beta, nil, nil
		}
	}

	legal := b.LegalMoves(b.Turn)
	if len(legal) == 0 {
		return terminalScore(b.Winner(), perspective, ply), nil, nil
	}

	var killers *killerTable
	if s.opt.UseKillerMoves {
		killers = s.killers
	}
	var hist *historyTable
	if s.opt.UseHistoryHeuristic {
		hist = s.history
	}

	var ordered []board.Move
	if s.opt.UseMoveOrdering {
		ordered = orderMoves(b, legal, ttMove, ply, killers, hist, s.opt.UseDeterministicOrdering)
	} else {
		ordered = flatten(legal)
	}

	var pv []board.Move
	bound := UpperBound
	best := eval.NegInf

	for i, m := range ordered {
		mover := b.At(m.Start.Row, m.Start.Col)
		promotes := mover != nil && wouldPromote(b, mover, m)

		undo, err := b.MakeMove(m)
		if err != nil {
			continue
		}
		if s.opt.UseHistoryHeuristic {
			s.history.recordTried(m)
		}

		childDepth := depth - 1
		reduced := s.opt.UseLMR && !m.IsCapture() && i >= LMRMinMoveIndex && depth >= LMRMinDepth && !promotes
		if reduced {
			childDepth -= LMRReduction
			if childDepth < 0 {
				childDepth = 0
			}
		}

		score, childPV, err := s.search(childDepth, ply+1, -beta, -alpha, perspective.Opponent())
		score = -score

		if err == nil && reduced && score > alpha {
			// Re-search at full depth: the reduced search beat alpha, so it
			// might be a real improvement rather than reduction noise.
			score, childPV, err = s.search(depth-1, ply+1, -beta, -alpha, perspective.Opponent())
			score = -score
		}

		b.UnmakeMove(undo)

		if err != nil {
			return 0, nil, err
		}

		if score > best {
			best = score
			pv = append([]board.Move{m}, childPV...)
		}
		if score > alpha {
			alpha = score
			bound = ExactBound
		}
		if s.opt.UseAlphaBeta && alpha >= beta {
			if s.opt.UseKillerMoves {
				s.killers.register(ply, m)
			}
			if s.opt.UseHistoryHeuristic {
				s.history.recordCutoff(m, depth)
			}
			bound = LowerBound
			break
		}
	}

	if s.opt.UseTranspositionTable {
		mv := board.Move{}
		if len(pv) > 0 {
			mv = pv[0]
		}
		s.tt.Write(key, bound, depth, best, mv)
	}
	return best, pv, nil
}

// tryNullMove attempts a reduced-depth search after passing the turn:
// if the opponent, given a free move, still cannot beat beta, the
// position is so good that the real move search can be skipped (cutoff).
// Returns true iff the null-move search produced a cutoff.
func (s *run) tryNullMove(depth, ply int, alpha, beta eval.Score, perspective board.Color) bool {
	b := s.board
	prevTurn := b.Turn
	prevHash := b.Hash
	b.Hash ^= board.TurnKey(b.Turn)
	b.Turn = b.Turn.Opponent()
	b.Hash ^= board.TurnKey(b.Turn)

	score, _, err := s.search(depth-1-NullMoveReduction, ply+1, -beta, -beta+1, perspective.Opponent())

	b.Turn = prevTurn
	b.Hash = prevHash

	if err != nil {
		return false
	}
	return -score >= beta
}

// forcedCapture reports whether the side to move has at least one capture
// available (and is thus not a safe candidate for null-move pruning, since
// a forced tactical sequence rarely tolerates a free pass).
func forcedCapture(b *board.Board) bool {
	for _, ms := range b.LegalMoves(b.Turn) {
		if len(ms) > 0 && ms[0].IsCapture() {
			return true
		}
	}
	return false
}

// nearEndgame reports whether the total piece count is low enough that
// null-move pruning's zugzwang risk outweighs its benefit.
func nearEndgame(b *board.Board, opt Options) bool {
	return b.PieceCount(board.White)+b.PieceCount(board.Black) <= opt.endgameThreshold()+2
}

// terminalScore converts a concluded Result into a perspective-relative
// score, preferring faster wins and slower losses via ply shaping.
func terminalScore(result board.Result, perspective board.Color, ply int) eval.Score {
	switch result {
	case board.Draw:
		return 0
	case board.WhiteWins:
		if perspective == board.White {
			return eval.WinScore - eval.Score(ply)
		}
		return -eval.WinScore + eval.Score(ply)
	case board.BlackWins:
		if perspective == board.Black {
			return eval.WinScore - eval.Score(ply)
		}
		return -eval.WinScore + eval.Score(ply)
	default:
		return 0
	}
}
