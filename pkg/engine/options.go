package engine

import (
	"fmt"

	"github.com/seekerror/build"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/mcts"
	"github.com/windmill-games/draughts/pkg/search"
)

var version = build.NewVersion(0, 1, 0)

// Algorithm selects which searcher SelectAIMove runs.
type Algorithm uint8

const (
	Minimax Algorithm = iota
	MCTS
)

func (a Algorithm) String() string {
	if a == MCTS {
		return "mcts"
	}
	return "minimax"
}

// Options are engine creation options.
type Options struct {
	Variant board.Variant

	// Hash is reported by String only. It does not size the minimax
	// transposition table, which is always built from
	// search.TranspositionTableCapacity.
	Hash int

	SearchOptions search.Options
	MCTSOptions   mcts.Options
}

func (o Options) String() string {
	return fmt.Sprintf("{variant=%v, hash=%v}", o.Variant, o.Hash)
}

// NewDefaultOptions returns the starting-position defaults for variant.
func NewDefaultOptions(variant board.Variant) Options {
	return Options{
		Variant:       variant,
		SearchOptions: search.NewDefaultOptions(),
		MCTSOptions:   mcts.NewDefaultOptions(),
	}
}
