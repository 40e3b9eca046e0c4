package mcts

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

// Search runs Options.Iterations of select/expand/simulate/backpropagate
// from b's current position and returns the most-visited root move, or
// false if the side to move has no legal moves. b is restored to its
// original state before returning; the search mutates it via
// MakeMove/UnmakeMove internally.
func Search(ctx context.Context, b *board.Board, evaluator eval.Evaluator, opt Options) (board.Move, bool) {
	if opt.UseRootParallelism && opt.Workers != 1 {
		return searchParallel(ctx, b, evaluator, opt)
	}

	root, stats := runSearch(ctx, b, evaluator, opt, opt.Iterations, seedFor(opt, 0))
	if root == nil || len(root.Children) == 0 {
		return board.Move{}, false
	}
	return mostVisited(root, stats), true
}

// runSearch executes `iterations` MCTS iterations from b's current
// position and returns the populated root node (nil if the side to move
// has no legal moves).
func runSearch(ctx context.Context, b *board.Board, evaluator eval.Evaluator, opt Options, iterations int, seed int64) (*Node, *transpositionStats) {
	rootPlayer := b.Turn
	if len(b.LegalMoves(rootPlayer)) == 0 {
		return nil, nil
	}

	root := &Node{Hash: b.Hash}
	var stats *transpositionStats
	if opt.UseTransposition {
		stats = newTranspositionStats(maxEntries(opt))
	}
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < iterations; i++ {
		if contextx.IsCancelled(ctx) {
			logw.Debugf(ctx, "mcts search cancelled after %v/%v iterations", i, iterations)
			break
		}
		runIteration(ctx, b, evaluator, opt, root, stats, rootPlayer, rng)
	}
	return root, stats
}

// runIteration performs one selection/expansion/simulation/backpropagation
// pass, restoring b to its pre-iteration state via the undo stack before
// returning regardless of how the iteration ends.
func runIteration(ctx context.Context, b *board.Board, evaluator eval.Evaluator, opt Options, root *Node, stats *transpositionStats, rootPlayer board.Color, rng *rand.Rand) {
	var undos []*board.Undo
	defer func() {
		for i := len(undos) - 1; i >= 0; i-- {
			b.UnmakeMove(undos[i])
		}
	}()

	node := selectAndExpand(b, opt, root, stats, rng, &undos, evaluator, rootPlayer)

	reward := rollout(ctx, b, evaluator, rootPlayer, opt, rng)

	for n := node; n != nil; n = n.Parent {
		n.Visits++
		n.Value += reward
		if stats != nil {
			stats.add(n.Hash, reward)
		}
	}
}

// selectAndExpand walks down the tree from root: at each node, if it has
// untried moves (subject to progressive widening), one is played and a new
// child is created and returned immediately; otherwise the UCB1-best child
// is descended into. Every move played along the way is recorded in undos
// so the caller can restore the board.
func selectAndExpand(b *board.Board, opt Options, root *Node, stats *transpositionStats, rng *rand.Rand, undos *[]*board.Undo, evaluator eval.Evaluator, rootPlayer board.Color) *Node {
	node := root
	for {
		ensureUntriedMoves(node, b)

		if len(node.UntriedMoves) > 0 && canExpand(node, opt) {
			move := popRandomMove(&node.UntriedMoves, rng)
			undo, err := b.MakeMove(move)
			if err != nil {
				continue
			}
			*undos = append(*undos, undo)

			child := &Node{Parent: node, Move: move, Hash: b.Hash}
			if opt.ProgressiveBias {
				child.Bias = normalize(evaluator.Evaluate(b, rootPlayer), b.Size)
			}
			node.Children = append(node.Children, child)
			return child
		}

		if len(node.Children) == 0 {
			return node
		}
		next := node.bestChild(opt.ExplorationConstant, stats, opt.ProgressiveBias, opt.PBWeight)
		if next == nil {
			return node
		}
		undo, err := b.MakeMove(next.Move)
		if err != nil {
			return node
		}
		*undos = append(*undos, undo)
		node = next
	}
}

func ensureUntriedMoves(node *Node, b *board.Board) {
	if node.UntriedMoves != nil {
		return
	}
	moves := b.LegalMoves(b.Turn)
	node.UntriedMoves = flattenMoves(moves)
	if node.UntriedMoves == nil {
		node.UntriedMoves = []board.Move{}
	}
}

func flattenMoves(moves map[*board.Piece][]board.Move) []board.Move {
	var out []board.Move
	for _, ms := range moves {
		out = append(out, ms...)
	}
	return out
}

// canExpand reports whether node is still allowed to add a child: always
// true without progressive widening; otherwise bounded by
// max(1, PWK * max(1,visits)^PWAlpha).
func canExpand(node *Node, opt Options) bool {
	if !opt.ProgressiveWidening {
		return true
	}
	visits := node.Visits
	if visits < 1 {
		visits = 1
	}
	allowed := int(opt.PWK * pow(float64(visits), opt.PWAlpha))
	if allowed < 1 {
		allowed = 1
	}
	return len(node.Children) < allowed
}

func popRandomMove(moves *[]board.Move, rng *rand.Rand) board.Move {
	m := *moves
	idx := rng.Intn(len(m))
	move := m[idx]
	m[idx] = m[len(m)-1]
	*moves = m[:len(m)-1]
	return move
}

// mostVisited returns the root child with the highest visit count (or
// highest shared transposition visit count, if stats is non-nil).
func mostVisited(root *Node, stats *transpositionStats) board.Move {
	var best *Node
	bestVisits := -1
	for _, c := range root.Children {
		visits, _ := c.stats(stats)
		if visits > bestVisits {
			bestVisits = visits
			best = c
		}
	}
	return best.Move
}

func maxEntries(opt Options) int {
	if opt.TranspositionMaxEntries > 0 {
		return opt.TranspositionMaxEntries
	}
	return DefaultTranspositionMaxEntries
}

func seedFor(opt Options, offset int64) int64 {
	if opt.RandomSeed == 0 {
		return time.Now().UnixNano() + offset
	}
	return opt.RandomSeed + offset
}

func pow(base, exp float64) float64 {
	return math.Pow(base, exp)
}
