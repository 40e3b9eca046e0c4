package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/draughtserr"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	opts := NewDefaultOptions(board.British)
	opts.SearchOptions.DepthLimit = 2
	opts.SearchOptions.UseIterativeDeepening = false
	opts.MCTSOptions.Iterations = 30
	opts.MCTSOptions.RolloutDepth = 8
	return New(context.Background(), opts)
}

func TestNew_StartsAtOpeningPosition(t *testing.T) {
	g := newTestGame(t)
	snap := g.CurrentBoard()

	assert.Equal(t, board.White, snap.Turn)
	assert.Len(t, snap.Pieces, 24)
	assert.False(t, snap.IsGameOver())
}

func TestMakeMove_AppliesAndFlipsTurn(t *testing.T) {
	g := newTestGame(t)

	moves := g.LegalMovesFor(5, 0)
	require.NotEmpty(t, moves)

	snap, err := g.MakeMove(moves[0].Start, moves[0].Steps)
	require.NoError(t, err)
	assert.Equal(t, board.Black, snap.Turn)
}

func TestMakeMove_UnknownPathIsIllegalMove(t *testing.T) {
	g := newTestGame(t)

	_, err := g.MakeMove(board.Coord{Row: 5, Col: 0}, []board.Coord{{Row: 0, Col: 0}})
	assert.True(t, errors.Is(err, draughtserr.ErrIllegalMove))
}

func TestUndo_RestoresPriorSnapshot(t *testing.T) {
	g := newTestGame(t)
	before := g.CurrentBoard()

	moves := g.LegalMovesFor(5, 0)
	require.NotEmpty(t, moves)
	_, err := g.MakeMove(moves[0].Start, moves[0].Steps)
	require.NoError(t, err)

	after, err := g.Undo()
	require.NoError(t, err)
	assert.Equal(t, before.Turn, after.Turn)
	assert.Len(t, after.Pieces, len(before.Pieces))
}

func TestUndo_NoMovesReturnsInvalidArgument(t *testing.T) {
	g := newTestGame(t)
	_, err := g.Undo()
	assert.True(t, errors.Is(err, draughtserr.ErrInvalidArgument))
}

func TestIsGameOver_UndecidedAtOpening(t *testing.T) {
	g := newTestGame(t)
	result, over := g.IsGameOver()
	assert.Equal(t, board.Undecided, result)
	assert.False(t, over)
}

func TestSelectAIMove_MinimaxReturnsALegalMove(t *testing.T) {
	g := newTestGame(t)
	move, err := g.SelectAIMove(context.Background(), board.White, Minimax, time.Time{}, nil)
	require.NoError(t, err)

	legal := g.LegalMovesFor(move.Start.Row, move.Start.Col)
	found := false
	for _, m := range legal {
		if m.Equals(move) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSelectAIMove_MCTSReturnsALegalMove(t *testing.T) {
	g := newTestGame(t)
	move, err := g.SelectAIMove(context.Background(), board.White, MCTS, time.Time{}, nil)
	require.NoError(t, err)

	legal := g.LegalMovesFor(move.Start.Row, move.Start.Col)
	found := false
	for _, m := range legal {
		if m.Equals(move) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestNewGame_ResetsToRequestedVariant(t *testing.T) {
	g := newTestGame(t)
	snap := g.NewGame(context.Background(), board.International)
	assert.Equal(t, board.International, snap.Variant)
	assert.Len(t, snap.Pieces, 40)
}

func TestSetEvaluatorProfile_OverridesOnlyRequestedSize(t *testing.T) {
	g := newTestGame(t)
	custom := g.evaluator.Profile8
	custom.ManValue = 5
	profile10 := g.evaluator.Profile10

	g.SetEvaluatorProfile(8, custom)
	assert.Equal(t, custom, g.evaluator.Profile8)
	assert.Equal(t, profile10, g.evaluator.Profile10)
}
