package eval

import (
	"fmt"

	"github.com/windmill-games/draughts/pkg/board"
)

// Score is a signed position score from a nominated perspective color.
// Positive favors that color. Score must stay within +/-1,000,000.
type Score float32

const (
	NegInf         = MinScore - 1
	MinScore Score = -1000000
	MaxScore Score = 1000000
	Inf            = MaxScore + 1
)

// WinScore is the terminal win/loss magnitude. The search's terminalScore
// returns WinScore-ply (shorter wins preferred) or -WinScore+ply.
const WinScore Score = 500000

func (s Score) String() string {
	return fmt.Sprintf("%.2f", s)
}

// Unit returns the signed unit for the color: 1 for White and -1 for Black.
func Unit(c board.Color) Score {
	return Score(c.Unit())
}

// Crop crops a Score into [MinScore;MaxScore].
func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

// Max returns the largest of the given scores.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smallest of the given scores.
func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// NormalizationDenominator is the fixed, size-dependent constant MCTS
// divides a raw evaluator score by to normalize it into [-1,1] for reward
// blending. 8x8 boards have fewer pieces and thus smaller typical
// magnitudes than 10x10 boards.
func NormalizationDenominator(size int) Score {
	if size == 10 {
		return 60
	}
	return 40
}
