package mcts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

func TestSearch_ReturnsLegalMoveFromOpeningPosition(t *testing.T) {
	b := board.NewBoard(board.British)
	opt := NewDefaultOptions()
	opt.Iterations = 50
	opt.RolloutDepth = 10
	opt.RandomSeed = 1

	move, ok := Search(context.Background(), b, eval.NewLinear(), opt)
	require.True(t, ok)

	legal := b.LegalMoves(board.White)
	found := false
	for _, ms := range legal {
		for _, m := range ms {
			if m.Equals(move) {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestSearch_BoardIsUnchangedAfterSearch(t *testing.T) {
	b := board.NewBoard(board.British)
	before := b.Hash

	opt := NewDefaultOptions()
	opt.Iterations = 30
	opt.RolloutDepth = 6
	opt.RandomSeed = 2

	_, ok := Search(context.Background(), b, eval.NewLinear(), opt)
	require.True(t, ok)
	assert.Equal(t, before, b.Hash)
}

func TestCanExpand_ProgressiveWideningLimitsChildren(t *testing.T) {
	opt := NewDefaultOptions()
	opt.ProgressiveWidening = true
	opt.PWK = 1.0
	opt.PWAlpha = 0.0

	node := &Node{Visits: 1}
	assert.True(t, canExpand(node, opt))
	node.Children = []*Node{{}}
	assert.False(t, canExpand(node, opt))
}

func TestCanExpand_WithoutWideningAlwaysAllows(t *testing.T) {
	opt := NewDefaultOptions()
	opt.ProgressiveWidening = false

	node := &Node{Visits: 100, Children: make([]*Node, 50)}
	assert.True(t, canExpand(node, opt))
}

func TestMostVisited_PicksHighestVisitCount(t *testing.T) {
	root := &Node{}
	low := &Node{Parent: root, Move: board.Move{Start: board.Coord{Row: 2, Col: 1}}, Visits: 3}
	high := &Node{Parent: root, Move: board.Move{Start: board.Coord{Row: 2, Col: 3}}, Visits: 9}
	root.Children = []*Node{low, high}

	got := mostVisited(root, nil)
	assert.True(t, got.Equals(high.Move))
}

func TestSearch_ProgressiveBiasEnabledStillReturnsALegalMove(t *testing.T) {
	b := board.NewBoard(board.British)
	opt := NewDefaultOptions()
	opt.Iterations = 40
	opt.RolloutDepth = 8
	opt.RandomSeed = 3
	opt.ProgressiveBias = true
	opt.PBWeight = 1.0

	move, ok := Search(context.Background(), b, eval.NewLinear(), opt)
	require.True(t, ok)

	legal := b.LegalMoves(board.White)
	found := false
	for _, ms := range legal {
		for _, m := range ms {
			if m.Equals(move) {
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestSearchParallel_PicksAMajorityVotedLegalMove(t *testing.T) {
	b := board.NewBoard(board.British)
	opt := NewDefaultOptions()
	opt.Iterations = 40
	opt.RolloutDepth = 8
	opt.UseRootParallelism = true
	opt.Workers = 4
	opt.RandomSeed = 7

	move, ok := Search(context.Background(), b, eval.NewLinear(), opt)
	require.True(t, ok)

	legal := b.LegalMoves(board.White)
	found := false
	for _, ms := range legal {
		for _, m := range ms {
			if m.Equals(move) {
				found = true
			}
		}
	}
	assert.True(t, found)
}
