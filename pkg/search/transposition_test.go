package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

func TestTranspositionTable_ReadWriteRoundTrip(t *testing.T) {
	tt := NewTranspositionTable(context.Background())
	key := Key{Hash: 12345, Perspective: board.White}

	_, _, _, _, ok := tt.Read(key)
	assert.False(t, ok)

	move := board.Move{Start: board.Coord{Row: 2, Col: 1}, Steps: []board.Coord{{Row: 3, Col: 2}}}
	ok = tt.Write(key, ExactBound, 5, eval.Score(42), move)
	require.True(t, ok)

	bound, depth, score, got, ok := tt.Read(key)
	require.True(t, ok)
	assert.Equal(t, ExactBound, bound)
	assert.Equal(t, 5, depth)
	assert.Equal(t, eval.Score(42), score)
	assert.True(t, got.Equals(move))
}

func TestTranspositionTable_PerspectiveKeyingIsDistinct(t *testing.T) {
	tt := NewTranspositionTable(context.Background())
	white := Key{Hash: 99, Perspective: board.White}
	black := Key{Hash: 99, Perspective: board.Black}

	tt.Write(white, ExactBound, 3, eval.Score(10), board.Move{})
	_, _, _, _, ok := tt.Read(black)
	assert.False(t, ok)
}

func TestTranspositionTable_ShallowerWriteDoesNotOverwriteSameKey(t *testing.T) {
	tt := NewTranspositionTable(context.Background())
	key := Key{Hash: 7, Perspective: board.White}

	tt.Write(key, ExactBound, 8, eval.Score(100), board.Move{})
	tt.Write(key, ExactBound, 3, eval.Score(-100), board.Move{})

	_, depth, score, _, ok := tt.Read(key)
	require.True(t, ok)
	assert.Equal(t, 8, depth)
	assert.Equal(t, eval.Score(100), score)
}

func TestNoTranspositionTable_NeverHits(t *testing.T) {
	tt := NoTranspositionTable{}
	_, _, _, _, ok := tt.Read(Key{Hash: 1})
	assert.False(t, ok)
	assert.False(t, tt.Write(Key{Hash: 1}, ExactBound, 1, 0, board.Move{}))
}
