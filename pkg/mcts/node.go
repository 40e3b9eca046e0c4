package mcts

import (
	"math"

	"github.com/windmill-games/draughts/pkg/board"
)

// Node is one position in the search tree. Children are owned pointers;
// Go's garbage collector handles the parent/child cycle without the
// arena-index indirection a reference-counted or manually-managed-memory
// implementation would need.
type Node struct {
	Parent *Node
	Move   board.Move // the move that led from Parent to this node; zero at the root
	Children []*Node

	Visits int
	Value  float64

	// Bias is the progressive-bias score: the normalized heuristic eval of
	// this node's position, computed once at child creation. Zero (and
	// ignored) unless Options.ProgressiveBias is on.
	Bias float64

	// UntriedMoves is lazily populated the first time this node is visited,
	// and drained as expansion picks moves from it. nil means "not yet
	// populated"; an empty (non-nil) slice means "fully expanded".
	UntriedMoves []board.Move
	Hash         board.ZobristHash
}

func (n *Node) isFullyExpanded() bool {
	return n.UntriedMoves != nil && len(n.UntriedMoves) == 0
}

// stats returns the (visits, value) pair to use for UCB/selection: the
// node's own counters, or the shared transposition-keyed counters if a
// transposition table is in play.
func (n *Node) stats(tt *transpositionStats) (int, float64) {
	if tt == nil {
		return n.Visits, n.Value
	}
	return tt.get(n.Hash)
}

// bestChild selects the child maximizing the UCB1 score: exploitation
// (mean value) plus an exploration bonus shrinking with visit count, plus
// an optional progressive-bias term. A never-visited child has infinite
// priority.
func (n *Node) bestChild(explorationConstant float64, tt *transpositionStats, progressiveBias bool, pbWeight float64) *Node {
	parentVisits, _ := n.stats(tt)
	if parentVisits < 1 {
		parentVisits = 1
	}

	var best *Node
	bestScore := math.Inf(-1)
	for _, c := range n.Children {
		score := ucb1(c, explorationConstant, parentVisits, tt, progressiveBias, pbWeight)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	return best
}

// ucb1 computes exploit + explore, plus pb_weight * bias / (visits+1) when
// progressiveBias is on -- a bonus for children a static heuristic favors,
// shrinking as the child accumulates its own visits.
func ucb1(n *Node, explorationConstant float64, parentVisits int, tt *transpositionStats, progressiveBias bool, pbWeight float64) float64 {
	visits, value := n.stats(tt)
	if visits == 0 {
		return math.Inf(1)
	}
	exploit := value / float64(visits)
	explore := explorationConstant * math.Sqrt(math.Log(float64(parentVisits))/float64(visits))
	score := exploit + explore
	if progressiveBias {
		score += pbWeight * n.Bias / float64(visits+1)
	}
	return score
}

// transpositionStats aggregates (visits, value) by board hash instead of
// by tree node, so two different paths reaching the same position share
// statistics. Bounded to MaxEntries with oldest-first eviction.
type transpositionStats struct {
	MaxEntries int
	order      []board.ZobristHash
	data       map[board.ZobristHash]statEntry
}

type statEntry struct {
	visits int
	value  float64
}

func newTranspositionStats(maxEntries int) *transpositionStats {
	return &transpositionStats{MaxEntries: maxEntries, data: map[board.ZobristHash]statEntry{}}
}

func (t *transpositionStats) get(hash board.ZobristHash) (int, float64) {
	e := t.data[hash]
	return e.visits, e.value
}

func (t *transpositionStats) add(hash board.ZobristHash, reward float64) {
	e := t.data[hash]
	e.visits++
	e.value += reward
	if _, exists := t.data[hash]; !exists {
		t.order = append(t.order, hash)
	}
	t.data[hash] = e
	if len(t.order) > t.MaxEntries {
		oldest := t.order[0]
		t.order = t.order[1:]
		delete(t.data, oldest)
	}
}
