package mcts

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/windmill-games/draughts/pkg/board"
)

func TestUCB1_UnvisitedChildHasInfinitePriority(t *testing.T) {
	parent := &Node{Visits: 5}
	unvisited := &Node{Parent: parent}
	visited := &Node{Parent: parent, Visits: 5, Value: 3}
	parent.Children = []*Node{visited, unvisited}

	best := parent.bestChild(1.4, nil, false, 0)
	assert.Same(t, unvisited, best)
}

func TestUCB1_HigherMeanValueWinsAtEqualVisits(t *testing.T) {
	parent := &Node{Visits: 20}
	weak := &Node{Parent: parent, Visits: 10, Value: 1}
	strong := &Node{Parent: parent, Visits: 10, Value: 8}
	parent.Children = []*Node{weak, strong}

	best := parent.bestChild(0.0, nil, false, 0)
	assert.Same(t, strong, best)
}

func TestTranspositionStats_SharedAcrossNodesWithSameHash(t *testing.T) {
	stats := newTranspositionStats(10)
	stats.add(board.ZobristHash(42), 1)
	stats.add(board.ZobristHash(42), -1)

	visits, value := stats.get(board.ZobristHash(42))
	assert.Equal(t, 2, visits)
	assert.Equal(t, 0.0, value)

	n := &Node{Hash: board.ZobristHash(42)}
	v, val := n.stats(stats)
	assert.Equal(t, 2, v)
	assert.Equal(t, 0.0, val)
}

func TestTranspositionStats_EvictsOldestBeyondCapacity(t *testing.T) {
	stats := newTranspositionStats(2)
	stats.add(board.ZobristHash(1), 1)
	stats.add(board.ZobristHash(2), 1)
	stats.add(board.ZobristHash(3), 1)

	v, _ := stats.get(board.ZobristHash(1))
	assert.Equal(t, 0, v)
	v, _ = stats.get(board.ZobristHash(3))
	assert.Equal(t, 1, v)
}

func TestIsFullyExpanded(t *testing.T) {
	n := &Node{}
	assert.False(t, n.isFullyExpanded())

	n.UntriedMoves = []board.Move{}
	assert.True(t, n.isFullyExpanded())

	n.UntriedMoves = []board.Move{{}}
	assert.False(t, n.isFullyExpanded())
}

func TestUCB1Formula_MatchesExploitPlusExplore(t *testing.T) {
	n := &Node{Visits: 4, Value: 2}
	got := ucb1(n, 2.0, 16, nil, false, 0)
	want := 0.5 + 2.0*math.Sqrt(math.Log(16)/4)
	assert.InDelta(t, want, got, 1e-9)
}

func TestUCB1_ProgressiveBiasAddsWeightedBiasTerm(t *testing.T) {
	parent := &Node{Visits: 20}
	a := &Node{Parent: parent, Visits: 10, Value: 0.0, Bias: 1.0}
	b := &Node{Parent: parent, Visits: 10, Value: 0.0, Bias: 0.0}
	parent.Children = []*Node{a, b}

	best := parent.bestChild(1.4, nil, true, 1.0)
	assert.Same(t, a, best)
}
