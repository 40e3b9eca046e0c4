package mcts

import (
	"context"
	"runtime"
	"sync"

	"github.com/seekerror/logw"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

// searchParallel splits Options.Iterations across Workers independent
// trees, each grown from its own cloned board and random seed, and
// returns the move with the most worker votes. Votes, not merged visit
// counts: each worker contributes exactly one ballot, its own
// most-visited root move.
func searchParallel(ctx context.Context, b *board.Board, evaluator eval.Evaluator, opt Options) (board.Move, bool) {
	if len(b.LegalMoves(b.Turn)) == 0 {
		return board.Move{}, false
	}

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if opt.Iterations < workers {
			workers = opt.Iterations
		}
	}
	if workers < 1 {
		workers = 1
	}

	base := opt.Iterations / workers
	remainder := opt.Iterations % workers

	type ballot struct {
		move board.Move
		ok   bool
	}
	ballots := make([]ballot, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		iterations := base
		if w < remainder {
			iterations++
		}
		if iterations <= 0 {
			continue
		}

		wg.Add(1)
		go func(w, iterations int) {
			defer wg.Done()
			clone := b.Clone()
			root, stats := runSearch(ctx, clone, evaluator, opt, iterations, seedFor(opt, int64(w)))
			if root == nil || len(root.Children) == 0 {
				return
			}
			ballots[w] = ballot{move: mostVisited(root, stats), ok: true}
		}(w, iterations)
	}
	wg.Wait()

	votes := map[string]int{}
	byKey := map[string]board.Move{}
	for _, bal := range ballots {
		if bal.ok {
			k := bal.move.String()
			votes[k]++
			byKey[k] = bal.move
		}
	}
	if len(votes) == 0 {
		return board.Move{}, false
	}

	var best board.Move
	bestVotes := -1
	for k, count := range votes {
		if count > bestVotes {
			bestVotes = count
			best = byKey[k]
		}
	}
	logw.Debugf(ctx, "mcts root-parallel search: %v workers, winning move %v votes=%v", workers, best, bestVotes)
	return best, true
}
