package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard_StartingPosition(t *testing.T) {
	b := NewBoard(British)
	assert.Equal(t, 12, b.PieceCount(White))
	assert.Equal(t, 12, b.PieceCount(Black))
	assert.Equal(t, White, b.Turn)
	assert.Equal(t, ComputeHash(b), b.Hash)

	b10 := NewBoard(International)
	assert.Equal(t, 20, b10.PieceCount(White))
	assert.Equal(t, 20, b10.PieceCount(Black))
}

func TestLegalMoves_OpeningHasNoCaptures(t *testing.T) {
	b := NewBoard(British)
	moves := b.LegalMoves(White)
	require.NotEmpty(t, moves)
	for _, ms := range moves {
		for _, m := range ms {
			assert.False(t, m.IsCapture())
		}
	}
}

// TestLegalMoves_ForcedCapture builds a position where White has one simple
// advance available and one capture available, and asserts only the
// capture is offered.
func TestLegalMoves_ForcedCapture(t *testing.T) {
	b := emptyBoard(British)
	white := &Piece{ID: 1, Color: White, Kind: Man, Row: 4, Col: 3}
	black := &Piece{ID: 2, Color: Black, Kind: Man, Row: 3, Col: 2}
	b.place(white)
	b.place(black)
	b.Hash = ComputeHash(b)

	moves := b.LegalMoves(White)
	require.Len(t, moves, 1)
	ms := moves[white]
	require.Len(t, ms, 1)
	assert.True(t, ms[0].IsCapture())
	assert.Equal(t, Coord{2, 1}, ms[0].End())
	assert.Equal(t, []Coord{{3, 2}}, ms[0].Captures)
}

// TestMakeUnmakeMove_RestoresHash verifies that after MakeMove followed by
// UnmakeMove, the board's hash, turn, and piece layout are exactly as
// before, matching an independently recomputed hash.
func TestMakeUnmakeMove_RestoresHash(t *testing.T) {
	b := NewBoard(British)
	before := b.Hash
	beforeTurn := b.Turn

	moves := b.LegalMoves(White)
	var first Move
	for _, ms := range moves {
		first = ms[0]
		break
	}

	undo, err := b.MakeMove(first)
	require.NoError(t, err)
	assert.NotEqual(t, before, b.Hash)
	assert.Equal(t, ComputeHash(b), b.Hash)

	b.UnmakeMove(undo)
	assert.Equal(t, before, b.Hash)
	assert.Equal(t, beforeTurn, b.Turn)
}

func TestCaptureDFS_MultiJumpChain(t *testing.T) {
	b := emptyBoard(British)
	white := &Piece{ID: 1, Color: White, Kind: Man, Row: 5, Col: 4}
	b.place(white)
	b.place(&Piece{ID: 2, Color: Black, Kind: Man, Row: 4, Col: 3})
	b.place(&Piece{ID: 3, Color: Black, Kind: Man, Row: 2, Col: 3})
	b.Hash = ComputeHash(b)

	ms := b.LegalMoves(White)[white]
	require.Len(t, ms, 1)
	assert.Len(t, ms[0].Captures, 2)
	assert.Equal(t, Coord{1, 4}, ms[0].End())
}

func TestPromotion_OnReachingHomeRank(t *testing.T) {
	b := emptyBoard(British)
	white := &Piece{ID: 1, Color: White, Kind: Man, Row: 1, Col: 2}
	b.place(white)
	b.Hash = ComputeHash(b)

	ms := b.LegalMoves(White)[white]
	var toHome Move
	for _, m := range ms {
		if m.End().Row == 0 {
			toHome = m
		}
	}
	require.NotEmpty(t, toHome.Steps)

	undo, err := b.MakeMove(toHome)
	require.NoError(t, err)
	assert.True(t, b.At(0, toHome.End().Col).IsKing())

	b.UnmakeMove(undo)
	assert.False(t, b.At(1, 2).IsKing())
}

func TestWinner_NoPiecesLeft(t *testing.T) {
	b := emptyBoard(British)
	b.place(&Piece{ID: 1, Color: White, Kind: Man, Row: 4, Col: 3})
	b.Hash = ComputeHash(b)
	assert.Equal(t, WhiteWins, b.Winner())
}

// emptyBoard builds a Board with no pieces, for constructing exact test
// positions.
func emptyBoard(v Variant) *Board {
	n := v.Size()
	b := &Board{
		Variant: v,
		Size:    n,
		Turn:    White,
		cells:   make([][]*Piece, n),
		cache:   newMoveCache(defaultMoveCacheCapacity),
	}
	for row := range b.cells {
		b.cells[row] = make([]*Piece, n)
	}
	return b
}
