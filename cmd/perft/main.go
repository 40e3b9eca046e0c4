// perft is a move-generation debugging tool: it counts leaf positions
// reachable at each depth from a starting position, which should match a
// known-good reference count for the variant if move generation (captures,
// promotion, majority-capture filtering) is correct.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/seekerror/logw"

	"github.com/windmill-games/draughts/pkg/board"
)

var (
	depth   = flag.Int("depth", 6, "Search depth")
	variant = flag.String("variant", "british", "Variant: british (8x8) or international (10x10)")
	divide  = flag.Bool("divide", false, "Print per-root-move counts at the final depth")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	v, err := parseVariant(*variant)
	if err != nil {
		logw.Exitf(ctx, "Invalid variant %q: %v", *variant, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		b := board.NewBoard(v)
		nodes := perft(b, i, *divide && i == *depth)
		duration := time.Since(start)

		println(fmt.Sprintf("perft,%v,%v,%v,%v", v, i, nodes, duration.Microseconds()))
	}
}

func parseVariant(s string) (board.Variant, error) {
	switch s {
	case "british":
		return board.British, nil
	case "international":
		return board.International, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}

func perft(b *board.Board, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, moves := range b.LegalMoves(b.Turn) {
		for _, m := range moves {
			undo, err := b.MakeMove(m)
			if err != nil {
				continue
			}
			count := perft(b, depth-1, false)
			b.UnmakeMove(undo)

			if d {
				println(fmt.Sprintf("%v: %v", m, count))
			}
			nodes += count
		}
	}
	return nodes
}
