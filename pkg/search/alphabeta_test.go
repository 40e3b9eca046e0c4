package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

func TestAlphaBeta_FindsForcedCaptureAtRoot(t *testing.T) {
	b := board.NewBoard(board.British)
	// (5,2)->(4,3), (2,5)->(3,4) leaves White one forced jump over (3,4).
	for _, m := range []board.Move{
		{Start: board.Coord{Row: 5, Col: 2}, Steps: []board.Coord{{Row: 4, Col: 3}}},
		{Start: board.Coord{Row: 2, Col: 5}, Steps: []board.Coord{{Row: 3, Col: 4}}},
	} {
		_, err := b.MakeMove(m)
		require.NoError(t, err)
	}
	opt := NewDefaultOptions()
	opt.DepthLimit = 3
	opt.UseIterativeDeepening = false
	opt.UseRootParallelism = false

	searcher := AlphaBeta{Eval: eval.NewLinear(), TT: NewTranspositionTable(context.Background())}
	_, _, moves, err := searcher.Search(context.Background(), b, opt, opt.DepthLimit, board.White, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, moves)
	assert.True(t, moves[0].IsCapture())
}

func TestAlphaBeta_FullMinimaxWithoutAlphaBetaStillFindsAMove(t *testing.T) {
	b := board.NewBoard(board.British)
	opt := NewDefaultOptions()
	opt.DepthLimit = 3
	opt.UseIterativeDeepening = false
	opt.UseAlphaBeta = false
	opt.UseNullMovePruning = false

	searcher := AlphaBeta{Eval: eval.NewLinear(), TT: NewTranspositionTable(context.Background())}
	nodes, _, moves, err := searcher.Search(context.Background(), b, opt, opt.DepthLimit, board.White, nil, nil)
	require.NoError(t, err)
	require.NotEmpty(t, moves)

	pruned := NewDefaultOptions()
	pruned.DepthLimit = 3
	pruned.UseIterativeDeepening = false
	pruned.UseNullMovePruning = false
	prunedSearcher := AlphaBeta{Eval: eval.NewLinear(), TT: NewTranspositionTable(context.Background())}
	prunedNodes, _, _, err := prunedSearcher.Search(context.Background(), b, pruned, pruned.DepthLimit, board.White, nil, nil)
	require.NoError(t, err)

	assert.Greater(t, nodes, prunedNodes)
}

func TestTerminalScore_WinPrefersShorterPath(t *testing.T) {
	closer := terminalScore(board.WhiteWins, board.White, 2)
	farther := terminalScore(board.WhiteWins, board.White, 6)
	assert.Greater(t, float64(closer), float64(farther))

	assert.Equal(t, eval.Score(0), terminalScore(board.Draw, board.White, 4))

	lossForWhite := terminalScore(board.BlackWins, board.White, 2)
	assert.Less(t, float64(lossForWhite), 0.0)
}

func TestIterative_SelectMove_StopsAtDepthLimit(t *testing.T) {
	b := board.NewBoard(board.British)
	tt := NewTranspositionTable(context.Background())
	it := Iterative{Search: AlphaBeta{Eval: eval.NewLinear(), TT: tt}}

	opt := NewDefaultOptions()
	opt.DepthLimit = 2
	opt.UseIterativeDeepening = true

	pv := it.SelectMove(context.Background(), b, opt, board.White)
	move, ok := pv.BestMove()
	assert.True(t, ok)
	assert.NotEmpty(t, move.Steps)
	assert.LessOrEqual(t, pv.Depth, 2)
}
