package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/windmill-games/draughts/pkg/board"
)

func TestOrderMoves_TTMoveIsForcedToFront(t *testing.T) {
	b := board.NewBoard(board.British)
	legal := b.LegalMoves(board.White)

	var ttMove board.Move
	for _, ms := range legal {
		ttMove = ms[0]
		break
	}

	ordered := orderMoves(b, legal, ttMove, 0, nil, nil, true)
	assert.True(t, ordered[0].Equals(ttMove))
}

func TestKillerTable_RegisterAndFIFOEviction(t *testing.T) {
	k := newKillerTable(4)
	a := board.Move{Start: board.Coord{Row: 1, Col: 0}, Steps: []board.Coord{{Row: 2, Col: 1}}}
	c := board.Move{Start: board.Coord{Row: 3, Col: 0}, Steps: []board.Coord{{Row: 4, Col: 1}}}
	e := board.Move{Start: board.Coord{Row: 5, Col: 0}, Steps: []board.Coord{{Row: 6, Col: 1}}}

	k.register(1, a)
	k.register(1, c)
	k.register(1, e)

	slots := k.at(1)
	assert.True(t, slots[0].Equals(e))
	assert.True(t, slots[1].Equals(c))
}

func TestHistoryTable_ScoreIsCutoffOverTriedRatio(t *testing.T) {
	h := newHistoryTable(true)
	m := board.Move{Start: board.Coord{Row: 2, Col: 1}, Steps: []board.Coord{{Row: 3, Col: 2}}}

	assert.Equal(t, 0.0, h.score(m))

	h.recordTried(m)
	h.recordTried(m)
	h.recordCutoff(m, 4)

	assert.Equal(t, 8.0, h.score(m))
}

func TestHistoryTable_ScoreIsRawCutoffWithoutButterfly(t *testing.T) {
	h := newHistoryTable(false)
	m := board.Move{Start: board.Coord{Row: 2, Col: 1}, Steps: []board.Coord{{Row: 3, Col: 2}}}

	h.recordTried(m)
	h.recordCutoff(m, 4)

	assert.Equal(t, 16.0, h.score(m))
}

func TestMoveScore_CapturesOutrankQuietMoves(t *testing.T) {
	b := board.NewBoard(board.British)
	p := &board.Piece{Color: board.White, Kind: board.Man, Row: 4, Col: 3}
	quiet := board.Move{Start: board.Coord{Row: 4, Col: 3}, Steps: []board.Coord{{Row: 3, Col: 2}}}
	capture := board.Move{Start: board.Coord{Row: 4, Col: 3}, Steps: []board.Coord{{Row: 2, Col: 1}}, Captures: []board.Coord{{Row: 3, Col: 2}}}

	var none [MaxKillers]board.Move
	assert.Greater(t, moveScore(b, p, capture, none, nil), moveScore(b, p, quiet, none, nil))
}
