package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/seekerror/logw"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/draughtserr"
	"github.com/windmill-games/draughts/pkg/eval"
	"github.com/windmill-games/draughts/pkg/mcts"
	"github.com/windmill-games/draughts/pkg/search"
)

// Game owns one Board and the evaluator/searcher state around it. It is the
// external façade: callers never touch *board.Board directly, only
// Snapshots and moves. Not safe for concurrent use beyond the internal
// mutex's serialization -- a SelectAIMove call while a minimax search is
// active returns ErrSearchInProgress rather than blocking (MCTS searches
// are not registered as active).
type Game struct {
	mu sync.Mutex

	opts Options
	b    *board.Board
	undo []*board.Undo

	evaluator *eval.Linear
	tt        search.TranspositionTable

	active *search.Handle
}

// New creates a Game and starts a new game per opts.Variant.
func New(ctx context.Context, opts Options) *Game {
	g := &Game{
		opts:      opts,
		evaluator: eval.NewLinear(),
	}
	g.reset(ctx, opts.Variant)

	logw.Infof(ctx, "Initialized engine %v, options=%v", Version(), opts)
	return g
}

// Version returns the engine's self-reported version string.
func Version() string {
	return fmt.Sprintf("draughts-engine %v", version)
}

// NewGame starts a fresh game for the given variant, discarding the
// current position. Like Reset, but switches the game to variant.
func (g *Game) NewGame(ctx context.Context, variant board.Variant) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.reset(ctx, variant)
	return newSnapshot(g.b)
}

// Reset re-initializes the board for the current variant and clears the
// transposition table.
func (g *Game) Reset(ctx context.Context) Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.reset(ctx, g.opts.Variant)
	return newSnapshot(g.b)
}

func (g *Game) reset(ctx context.Context, variant board.Variant) {
	g.haltActiveSearch()

	g.opts.Variant = variant
	g.b = board.NewBoard(variant)
	g.undo = nil
	g.tt = search.NewTranspositionTable(ctx)

	logw.Infof(ctx, "New board (%v): %v", variant, g.b)
}

// CurrentBoard returns a read-only snapshot of the current position.
func (g *Game) CurrentBoard() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return newSnapshot(g.b)
}

// LegalMovesFor returns the legal moves for the piece at (row, col), or nil
// if that square holds no piece of the side to move.
func (g *Game) LegalMovesFor(row, col int) []board.Move {
	g.mu.Lock()
	defer g.mu.Unlock()

	legal := g.b.LegalMoves(g.b.Turn)
	for p, moves := range legal {
		if p.Row == row && p.Col == col {
			return moves
		}
	}
	return nil
}

// MakeMove applies the unique legal move whose start and step path match
// start/steps exactly. Returns ErrIllegalMove if no legal move matches.
func (g *Game) MakeMove(start board.Coord, steps []board.Coord) (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	candidate := board.Move{Start: start, Steps: steps}
	legal := g.b.LegalMoves(g.b.Turn)
	for _, moves := range legal {
		for _, m := range moves {
			if !samePath(m, candidate) {
				continue
			}
			u, err := g.b.MakeMove(m)
			if err != nil {
				return Snapshot{}, fmt.Errorf("make move %v: %w", m, err)
			}
			g.undo = append(g.undo, u)
			return newSnapshot(g.b), nil
		}
	}
	return Snapshot{}, fmt.Errorf("%w: %v->%v", draughtserr.ErrIllegalMove, start, steps)
}

// samePath compares two moves by start+steps only, ignoring Captures, so a
// caller need not know which squares a capture move jumps.
func samePath(m, candidate board.Move) bool {
	if m.Start != candidate.Start || len(m.Steps) != len(candidate.Steps) {
		return false
	}
	for i := range m.Steps {
		if m.Steps[i] != candidate.Steps[i] {
			return false
		}
	}
	return true
}

// Undo reverses the most recently made move. Returns ErrInvalidArgument if
// there is no move to undo.
func (g *Game) Undo() (Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.undo) == 0 {
		return Snapshot{}, fmt.Errorf("%w: no move to undo", draughtserr.ErrInvalidArgument)
	}
	last := g.undo[len(g.undo)-1]
	g.undo = g.undo[:len(g.undo)-1]
	g.b.UnmakeMove(last)
	return newSnapshot(g.b), nil
}

// IsGameOver reports the game result: one side's color if that side has
// won, board.Draw on a no-moves draw, or false if the game is undecided.
func (g *Game) IsGameOver() (board.Result, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	result := g.b.Winner()
	return result, result != board.Undecided
}

// SelectAIMove runs the given algorithm against the current position and
// returns its chosen move. Minimax searches from color's perspective; MCTS
// searches for the side to move and does not read color. Returns
// ErrCancelled if ctx is done or cancel fires before the search returns,
// and ErrSearchInProgress if a minimax search is already active on this
// Game.
func (g *Game) SelectAIMove(ctx context.Context, color board.Color, algo Algorithm, deadline time.Time, cancel <-chan struct{}) (board.Move, error) {
	g.mu.Lock()
	if g.active != nil {
		g.mu.Unlock()
		return board.Move{}, draughtserr.ErrSearchInProgress
	}
	b := g.b
	opt := g.opts.SearchOptions
	mctsOpt := g.opts.MCTSOptions
	evaluator := g.evaluator
	tt := g.tt
	g.mu.Unlock()

	logw.Infof(ctx, "SelectAIMove color=%v algorithm=%v", color, algo)

	if !deadline.IsZero() {
		opt.Deadline = deadline
	}

	ctx, stop := withCancelChan(ctx, cancel)
	defer stop()

	switch algo {
	case MCTS:
		move, ok := mcts.Search(ctx, b.Clone(), evaluator, mctsOpt)
		if ctx.Err() != nil {
			return board.Move{}, fmt.Errorf("%w: %v", draughtserr.ErrCancelled, ctx.Err())
		}
		if !ok {
			return board.Move{}, fmt.Errorf("%w: no legal move for %v", draughtserr.ErrInternal, color)
		}
		return move, nil
	default:
		it := search.Iterative{Search: search.AlphaBeta{Eval: evaluator, TT: tt}}
		if opt.UseRootParallelism {
			it.Search = search.RootParallel{Eval: evaluator, TTFactory: func() search.TranspositionTable { return search.NewTranspositionTable(ctx) }}
		}

		handle := it.Launch(ctx, b.Clone(), opt, color)

		g.mu.Lock()
		g.active = handle
		g.mu.Unlock()

		defer func() {
			g.mu.Lock()
			g.active = nil
			g.mu.Unlock()
		}()

		var pv search.PV
		for pv = range handle.Progress() {
		}
		pv = handle.Halt()
		if ctx.Err() != nil {
			return board.Move{}, fmt.Errorf("%w: %v", draughtserr.ErrCancelled, ctx.Err())
		}

		move, ok := pv.BestMove()
		if !ok {
			return board.Move{}, fmt.Errorf("%w: search produced no move", draughtserr.ErrInternal)
		}
		return move, nil
	}
}

// HaltSearch stops any active minimax search started by SelectAIMove and
// returns its principal variation so far. Returns false if no search is
// active.
func (g *Game) HaltSearch() (search.PV, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.haltActiveSearch()
}

func (g *Game) haltActiveSearch() (search.PV, bool) {
	if g.active == nil {
		return search.PV{}, false
	}
	pv := g.active.Halt()
	g.active = nil
	return pv, true
}

// SetEvaluatorProfile overrides the evaluator's weight profile for boards
// of the given size (8 or 10).
func (g *Game) SetEvaluatorProfile(size int, profile eval.Profile) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if size == 8 {
		g.evaluator.Profile8 = profile
	} else {
		g.evaluator.Profile10 = profile
	}
}

// withCancelChan derives a context that is cancelled when either ctx is
// done or cancel fires, so SelectAIMove callers can stop a search with a
// plain channel instead of threading context.WithCancel through
// themselves. Returns ctx unchanged if cancel is nil.
func withCancelChan(ctx context.Context, cancel <-chan struct{}) (context.Context, func()) {
	if cancel == nil {
		return ctx, func() {}
	}
	derived, stop := context.WithCancel(ctx)
	go func() {
		select {
		case <-cancel:
			stop()
		case <-derived.Done():
		}
	}()
	return derived, stop
}

// Options returns the engine's current options.
func (g *Game) Options() Options {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.opts
}
