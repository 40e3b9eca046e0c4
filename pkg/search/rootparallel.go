package search

import (
	"context"
	"runtime"
	"sync"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

// RootParallel splits the root move list across Workers goroutines, each
// with a private transposition table and a private clone of the board, and
// reduces by taking the best (argmax) score across workers. A worker that
// proves a winning move closes the shared stop channel so siblings abandon
// their remaining root moves early.
type RootParallel struct {
	Eval eval.Evaluator
	TTFactory func() TranspositionTable // per-worker; nil means NoTranspositionTable
}

func (rp RootParallel) Search(ctx context.Context, b *board.Board, opt Options, depth int, perspective board.Color, quit <-chan struct{}, timeUp func() bool) (uint64, eval.Score, []board.Move, error) {
	legal := b.LegalMoves(b.Turn)
	moves := flatten(legal)
	if len(moves) == 0 {
		return 0, terminalScore(b.Winner(), perspective, 0), nil, nil
	}

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 2
	}
	if workers < 1 {
		workers = 1
	}
	if workers > len(moves) {
		workers = len(moves)
	}

	stop := make(chan struct{})
	merged := mergeQuit(quit, stop)
	var stopOnce sync.Once

	type result struct {
		score eval.Score
		move  board.Move
		pv    []board.Move
		nodes uint64
	}

	buckets := make([][]board.Move, workers)
	for i, m := range moves {
		buckets[i%workers] = append(buckets[i%workers], m)
	}

	results := make(chan result, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(assigned []board.Move) {
			defer wg.Done()
			tt := rp.newTT()
			best := result{score: eval.NegInf}
			for _, m := range assigned {
				select {
				case <-merged:
					results <- best
					return
				default:
				}

				clone := b.Clone()
				undo, err := clone.MakeMove(m)
				if err != nil {
					continue
				}
				r := newRun(opt, rp.Eval, tt, clone, merged, timeUp)
				score, pv, err := r.search(depth-1, 1, eval.NegInf, eval.Inf, perspective.Opponent())
				clone.UnmakeMove(undo)
				best.nodes += r.nodes
				if err != nil {
					continue
				}
				score = -score
				if score > best.score {
					best.score, best.move, best.pv = score, m, append([]board.Move{m}, pv...)
				}
				if score >= eval.WinScore-eval.Score(depth+opt.endgamePlyCeiling()) {
					stopOnce.Do(func() { close(stop) })
				}
			}
			results <- best
		}(buckets[w])
	}

	wg.Wait()
	close(results)

	overall := result{score: eval.NegInf}
	var totalNodes uint64
	for r := range results {
		totalNodes += r.nodes
		if r.score > overall.score {
			overall = r
		}
	}
	return totalNodes, overall.score, overall.pv, nil
}

func (rp RootParallel) newTT() TranspositionTable {
	if rp.TTFactory != nil {
		return rp.TTFactory()
	}
	return NoTranspositionTable{}
}

func mergeQuit(a <-chan struct{}, b <-chan struct{}) <-chan struct{} {
	out := make(chan struct{})
	go func() {
		select {
		case <-a:
		case <-b:
		}
		close(out)
	}()
	return out
}

