package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/windmill-games/draughts/pkg/board"
)

func TestEvaluate_StartingPositionIsSymmetric(t *testing.T) {
	l := NewLinear()
	b := board.NewBoard(board.British)

	white := l.Evaluate(b, board.White)
	black := l.Evaluate(b, board.Black)
	assert.InDelta(t, float64(white), float64(-black), 1e-6)
}

func TestEvaluate_OpeningPositionIsZero(t *testing.T) {
	l := NewLinear()
	b := board.NewBoard(board.British)
	assert.InDelta(t, 0.0, float64(l.Evaluate(b, board.White)), 1e-6)
}

func TestForwardProgress_ClosestToPromotionScoresHighest(t *testing.T) {
	farFromHome := &board.Piece{Color: board.White, Kind: board.Man, Row: 6, Col: 1}
	closeToHome := &board.Piece{Color: board.White, Kind: board.Man, Row: 1, Col: 1}
	assert.Less(t, float64(forwardProgress(farFromHome, 8)), float64(forwardProgress(closeToHome, 8)))

	king := &board.Piece{Color: board.White, Kind: board.King, Row: 6, Col: 1}
	assert.Equal(t, Score(1.0), forwardProgress(king, 8))
}

func TestCenterBias_CenterScoresHigherThanCorner(t *testing.T) {
	corner := &board.Piece{Row: 0, Col: 0}
	center := &board.Piece{Row: 3, Col: 4}
	assert.Less(t, float64(centerBias(corner, 8)), float64(centerBias(center, 8)))
}

func TestEdgeAnchor_OuterFileScoresHighest(t *testing.T) {
	assert.Equal(t, Score(1.0), edgeAnchor(&board.Piece{Col: 0}, 8))
	assert.Equal(t, Score(0.5), edgeAnchor(&board.Piece{Col: 1}, 8))
	assert.Equal(t, Score(0.0), edgeAnchor(&board.Piece{Col: 4}, 8))
}

func TestPhase_ZeroAtOpening(t *testing.T) {
	b := board.NewBoard(board.British)
	assert.Equal(t, 0.0, Phase(b))
}

func TestNormalizationDenominator_VariesBySize(t *testing.T) {
	assert.Equal(t, Score(60), NormalizationDenominator(10))
	assert.Equal(t, Score(40), NormalizationDenominator(8))
}

func TestStartingPiecesPerSide(t *testing.T) {
	assert.Equal(t, 12, StartingPiecesPerSide(8))
	assert.Equal(t, 20, StartingPiecesPerSide(10))
}
