package mcts

import (
	"context"
	"math/rand"

	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

// rollout simulates play from b's current position for up to
// Options.RolloutDepth plies (or RolloutCutoffDepth, if set and shorter),
// undoing every move it makes before returning, and reports the reward
// from rootPlayer's perspective: +1 a win, -1 a loss, 0 a draw. A position
// still unresolved at the cutoff is scored by Options.LeafEvaluation.
func rollout(ctx context.Context, b *board.Board, evaluator eval.Evaluator, rootPlayer board.Color, opt Options, rng *rand.Rand) float64 {
	cutoff := opt.rolloutCutoff()

	var undos []*board.Undo
	defer func() {
		for i := len(undos) - 1; i >= 0; i-- {
			b.UnmakeMove(undos[i])
		}
	}()

	for ply := 0; ply < opt.RolloutDepth; ply++ {
		if contextx.IsCancelled(ctx) {
			return 0
		}

		legal := b.LegalMoves(b.Turn)
		if len(legal) == 0 {
			opponent := b.Turn.Opponent()
			if len(b.LegalMoves(opponent)) == 0 {
				return 0
			}
			return reward(opponent, rootPlayer)
		}

		if ply >= cutoff {
			return leafValue(ctx, b, evaluator, rootPlayer, opt)
		}

		move := chooseRolloutMove(ctx, b, evaluator, legal, opt, rng)
		undo, err := b.MakeMove(move)
		if err != nil {
			return 0
		}
		undos = append(undos, undo)
	}

	return leafValue(ctx, b, evaluator, rootPlayer, opt)
}

func chooseRolloutMove(ctx context.Context, b *board.Board, evaluator eval.Evaluator, legal map[*board.Piece][]board.Move, opt Options, rng *rand.Rand) board.Move {
	switch opt.RolloutPolicy {
	case MinimaxGuided:
		if m, ok := chooseGuidedMove(ctx, b, evaluator, legal, opt.GuidanceDepth); ok {
			return m
		}
	case Heuristic:
		if m, ok := chooseGuidedMove(ctx, b, evaluator, legal, 1); ok {
			return m
		}
	}

	var captures, promotions, all []board.Move
	for p, ms := range legal {
		for _, m := range ms {
			all = append(all, m)
			switch {
			case m.IsCapture():
				captures = append(captures, m)
			case wouldPromote(b, p, m):
				promotions = append(promotions, m)
			}
		}
	}

	switch {
	case len(captures) > 0:
		return captures[rng.Intn(len(captures))]
	case len(promotions) > 0:
		return promotions[rng.Intn(len(promotions))]
	default:
		return all[rng.Intn(len(all))]
	}
}

func wouldPromote(b *board.Board, p *board.Piece, m board.Move) bool {
	return !p.IsKing() && m.End().Row == b.PromotionRank(p.Color)
}

// chooseGuidedMove picks the move maximizing a depth-ply minimax search
// against the static evaluator, from the perspective of the side to move.
func chooseGuidedMove(ctx context.Context, b *board.Board, evaluator eval.Evaluator, legal map[*board.Piece][]board.Move, depth int) (board.Move, bool) {
	mover := b.Turn
	var best board.Move
	bestScore := eval.NegInf
	found := false

	for _, ms := range legal {
		for _, m := range ms {
			if contextx.IsCancelled(ctx) {
				return best, found
			}
			undo, err := b.MakeMove(m)
			if err != nil {
				continue
			}
			score := minimaxEval(ctx, b, evaluator, mover, depth-1)
			b.UnmakeMove(undo)

			if score > bestScore {
				bestScore = score
				best = m
				found = true
			}
		}
	}
	return best, found
}

// minimaxEval is a small, self-contained minimax used only to guide
// rollout move choice and cutoff leaf scoring; it does not share state
// with pkg/search's full alpha-beta searcher.
func minimaxEval(ctx context.Context, b *board.Board, evaluator eval.Evaluator, maximizing board.Color, depth int) eval.Score {
	if result := b.Winner(); result != board.Undecided {
		return winLossScore(result, maximizing)
	}
	if depth <= 0 {
		return eval.Score(normalize(evaluator.Evaluate(b, maximizing), b.Size))
	}

	legal := b.LegalMoves(b.Turn)
	if len(legal) == 0 {
		return eval.Score(normalize(evaluator.Evaluate(b, maximizing), b.Size))
	}

	maximize := b.Turn == maximizing
	best := eval.NegInf
	if !maximize {
		best = eval.Inf
	}

	for _, ms := range legal {
		for _, m := range ms {
			if contextx.IsCancelled(ctx) {
				return best
			}
			undo, err := b.MakeMove(m)
			if err != nil {
				continue
			}
			score := minimaxEval(ctx, b, evaluator, maximizing, depth-1)
			b.UnmakeMove(undo)

			if maximize && score > best {
				best = score
			}
			if !maximize && score < best {
				best = score
			}
		}
	}
	return best
}

func winLossScore(result board.Result, maximizing board.Color) eval.Score {
	switch result {
	case board.WhiteWins:
		if maximizing == board.White {
			return 1
		}
		return -1
	case board.BlackWins:
		if maximizing == board.Black {
			return 1
		}
		return -1
	default:
		return 0
	}
}

func leafValue(ctx context.Context, b *board.Board, evaluator eval.Evaluator, rootPlayer board.Color, opt Options) float64 {
	switch opt.LeafEvaluation {
	case HeuristicEval:
		return normalize(evaluator.Evaluate(b, rootPlayer), b.Size)
	case MinimaxEval:
		return float64(minimaxEval(ctx, b, evaluator, rootPlayer, opt.GuidanceDepth))
	default:
		return 0
	}
}

func normalize(score eval.Score, size int) float64 {
	v := float64(score) / float64(eval.NormalizationDenominator(size))
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func reward(winner, rootPlayer board.Color) float64 {
	if winner == rootPlayer {
		return 1
	}
	return -1
}
