package search

import (
	"context"
	"sync"
	"time"

	"github.com/seekerror/logw"
	"go.uber.org/atomic"

	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

// PV is the principal variation produced by one completed search depth.
type PV struct {
	Moves []board.Move
	Score eval.Score
	Nodes uint64
	Depth int
	Time  time.Duration
}

func (p PV) BestMove() (board.Move, bool) {
	if len(p.Moves) == 0 {
		return board.Move{}, false
	}
	return p.Moves[0], true
}

// Searcher is a minimax searcher: given a board and depth, returns the best
// line found. b is mutated and restored (MakeMove/UnmakeMove) during the
// call; it must not be accessed concurrently. depth is the ply to search to
// for this call -- Iterative calls it once per iterative-deepening depth, so
// implementations must honor depth rather than substitute opt.DepthLimit.
type Searcher interface {
	Search(ctx context.Context, b *board.Board, opt Options, depth int, perspective board.Color, quit <-chan struct{}, timeUp func() bool) (uint64, eval.Score, []board.Move, error)
}

// AlphaBeta is the concrete Searcher: alpha-beta negamax over b.LegalMoves,
// optionally backed by a transposition table, null-move pruning, late move
// reduction, quiescence, move ordering with killer/history heuristics, and
// a bounded endgame solver -- each independently toggleable via Options.
type AlphaBeta struct {
	Eval eval.Evaluator
	TT   TranspositionTable
}

func (a AlphaBeta) Search(ctx context.Context, b *board.Board, opt Options, depth int, perspective board.Color, quit <-chan struct{}, timeUp func() bool) (uint64, eval.Score, []board.Move, error) {
	tt := a.TT
	if tt == nil || !opt.UseTranspositionTable {
		tt = NoTranspositionTable{}
	}
	r := newRun(opt, a.Eval, tt, b, quit, timeUp)
	score, pv, err := r.search(depth, 0, eval.NegInf, eval.Inf, perspective)
	return r.nodes, score, pv, err
}

// Iterative runs Searcher at depth 1, 2, 3, ... up to Options.DepthLimit
// (stopping early once Options.Deadline passes) when UseIterativeDeepening
// is on, and a single search at DepthLimit when it is off. Cancelling ctx
// stops either, including in the middle of a depth. It keeps the deepest PV
// that completed without error. Each completed depth uses aspiration
// windows around the previous depth's score when enabled.
type Iterative struct {
	Search Searcher
}

// SelectMove runs the iterative-deepening loop synchronously to completion
// (depth limit, deadline, or context cancellation) and returns the deepest
// completed PV.
func (it Iterative) SelectMove(ctx context.Context, b *board.Board, opt Options, perspective board.Color) PV {
	h := it.Launch(ctx, b, opt, perspective)
	for range h.Progress() {
		// drain: Halt reads the last stored PV under lock.
	}
	return h.Halt()
}

// Handle lets a caller observe progressive PVs as depth increases and stop
// the search early.
type Handle struct {
	init, quit chan struct{}
	out        chan PV

	initialized, done atomic.Bool
	mu                sync.Mutex
	pv                PV
}

func (h *Handle) Progress() <-chan PV { return h.out }

// Halt stops the search (idempotent) and returns the last completed PV.
func (h *Handle) Halt() PV {
	<-h.init
	if h.done.CAS(false, true) {
		close(h.quit)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}

func (h *Handle) markInitialized() {
	if h.initialized.CAS(false, true) {
		close(h.init)
	}
}

// Launch starts the iterative-deepening loop in a goroutine and returns a
// Handle streaming PVs as each depth completes.
func (it Iterative) Launch(ctx context.Context, b *board.Board, opt Options, perspective board.Color) *Handle {
	h := &Handle{
		init: make(chan struct{}),
		quit: make(chan struct{}),
		out:  make(chan PV, 1),
	}
	go it.process(ctx, h, b, opt, perspective)
	return h
}

func (it Iterative) process(ctx context.Context, h *Handle, b *board.Board, opt Options, perspective board.Color) {
	defer h.markInitialized()
	defer close(h.out)

	// Close quit once ctx is done, so cancellation reaches the per-node
	// check inside a depth instead of waiting for the depth to finish.
	stopWatch := context.AfterFunc(ctx, func() {
		if h.done.CAS(false, true) {
			close(h.quit)
		}
	})
	defer stopWatch()

	timeUp := func() bool {
		return !opt.Deadline.IsZero() && time.Now().After(opt.Deadline)
	}

	// Seed a fallback PV before searching anything: if the deadline or
	// context is already past by the time the first depth would run, Halt
	// must still return a move rather than a hollow PV with no moves.
	if fallback, ok := firstRootMove(b); ok {
		h.mu.Lock()
		h.pv = PV{Moves: []board.Move{fallback}}
		h.mu.Unlock()
	}

	maxDepth := opt.depthLimit()
	depth := 1
	if !opt.UseIterativeDeepening {
		// Fixed-depth search: go straight to maxDepth instead of climbing
		// 1, 2, 3, ... -- UseIterativeDeepening off means "run to
		// completion regardless of wall clock", not "stop after depth 1".
		depth = maxDepth
	}
	var prevScore eval.Score
	havePrev := false

	for !h.done.Load() {
		if ctxDone(ctx) {
			return
		}
		if opt.UseIterativeDeepening && timeUp() {
			return
		}

		start := time.Now()
		nodes, score, moves, err := it.searchDepth(ctx, b, opt, perspective, depth, prevScore, havePrev, h.quit, timeUp)
		if err != nil {
			logw.Debugf(ctx, "search halted at depth=%v: %v", depth, err)
			return
		}

		pv := PV{Moves: moves, Score: score, Nodes: nodes, Depth: depth, Time: time.Since(start)}
		logw.Debugf(ctx, "searched depth=%v score=%v nodes=%v time=%v", depth, score, nodes, pv.Time)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-h.out:
		default:
		}
		h.out <- pv
		h.markInitialized()

		prevScore, havePrev = score, true
		if !opt.UseIterativeDeepening || depth == maxDepth {
			return
		}
		depth++
	}
}

// searchDepth runs one iterative-deepening iteration, applying an
// aspiration window around prevScore when enabled: the window starts
// narrow and doubles on a fail-high or fail-low until the true score is
// bracketed or the full [-Inf, Inf] window is reached.
func (it Iterative) searchDepth(ctx context.Context, b *board.Board, opt Options, perspective board.Color, depth int, prevScore eval.Score, havePrev bool, quit <-chan struct{}, timeUp func() bool) (uint64, eval.Score, []board.Move, error) {
	if !opt.UseAspirationWindows || !havePrev || depth < 2 {
		return searchFullWindow(ctx, it.Search, b, opt, depth, perspective, quit, timeUp)
	}

	window := eval.Score(50)
	for {
		alpha, beta := prevScore-window, prevScore+window
		nodes, score, moves, err := searchWindow(ctx, it.Search, b, opt, depth, perspective, alpha, beta, quit, timeUp)
		if err != nil {
			return nodes, score, moves, err
		}
		if score <= alpha || score >= beta {
			window *= 2
			if window > eval.MaxScore {
				return searchFullWindow(ctx, it.Search, b, opt, depth, perspective, quit, timeUp)
			}
			continue
		}
		return nodes, score, moves, nil
	}
}

func searchFullWindow(ctx context.Context, s Searcher, b *board.Board, opt Options, depth int, perspective board.Color, quit <-chan struct{}, timeUp func() bool) (uint64, eval.Score, []board.Move, error) {
	return s.Search(ctx, b, opt, depth, perspective, quit, timeUp)
}

func searchWindow(ctx context.Context, s Searcher, b *board.Board, opt Options, depth int, perspective board.Color, alpha, beta eval.Score, quit <-chan struct{}, timeUp func() bool) (uint64, eval.Score, []board.Move, error) {
	// AlphaBeta.Search always opens with the full window, so AlphaBeta is
	// special-cased here: a run is built directly and its top-level call
	// starts with the given alpha/beta. Any other Searcher gets a
	// full-window search.
	if ab, ok := s.(AlphaBeta); ok {
		tt := ab.TT
		if tt == nil || !opt.UseTranspositionTable {
			tt = NoTranspositionTable{}
		}
		r := newRun(opt, ab.Eval, tt, b, quit, timeUp)
		score, pv, err := r.search(depth, 0, alpha, beta, perspective)
		return r.nodes, score, pv, err
	}
	return s.Search(ctx, b, opt, depth, perspective, quit, timeUp)
}

// firstRootMove returns the first legal move in deterministic order, used to
// seed a fallback PV so a caller always gets a move when one exists, even if
// the deadline expires before any iterative-deepening depth completes.
func firstRootMove(b *board.Board) (board.Move, bool) {
	legal := b.LegalMoves(b.Turn)
	if len(legal) == 0 {
		return board.Move{}, false
	}
	ordered := orderMoves(b, legal, board.Move{}, 0, nil, nil, true)
	if len(ordered) == 0 {
		return board.Move{}, false
	}
	return ordered[0], true
}

func ctxDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
