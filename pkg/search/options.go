package search

import "time"

// Options controls which optimizations the alpha-beta searcher applies.
// Every field defaults to its "off" zero value; NewDefaultOptions returns
// the recommended configuration. Each flag is independently toggleable so
// tests and benchmarks can isolate the contribution of a single technique.
type Options struct {
	// UseAlphaBeta prunes branches once a move is proven at least as good as
	// an already-found alternative. Off runs full minimax: every node visits
	// every legal move, which is exponentially slower but useful as a
	// correctness oracle against the pruned search.
	UseAlphaBeta bool
	// UseTranspositionTable probes and stores search results keyed by
	// (Zobrist hash, perspective color).
	UseTranspositionTable bool
	// UseIterativeDeepening searches depth 1, 2, 3, ... until DepthLimit or
	// Deadline, keeping the deepest completed principal variation. Deadline
	// is only honored when this is on; a fixed-depth search runs to
	// completion regardless of wall clock.
	UseIterativeDeepening bool
	// UseAspirationWindows narrows the initial alpha/beta window around the
	// previous iteration's score, re-searching with a doubled window on a
	// fail-high or fail-low.
	UseAspirationWindows bool
	// UseNullMovePruning tries a free pass for the side to move to detect
	// positions so good a reduced-depth search still beats beta.
	UseNullMovePruning bool
	// UseLMR reduces the search depth of late, quiet moves in the ordering,
	// re-searching at full depth only if the reduced search beats alpha.
	UseLMR bool
	// UseQuiescence extends leaf evaluation with a capture-only search so
	// the static evaluator is never trusted mid-exchange.
	UseQuiescence bool
	// UseKillerMoves remembers up to two non-capture moves that caused a
	// beta cutoff at each ply and tries them early in sibling nodes.
	UseKillerMoves bool
	// UseHistoryHeuristic scores quiet moves by how often they have caused a
	// beta cutoff, folded by UseButterflyHeuristic.
	UseHistoryHeuristic bool
	// UseButterflyHeuristic divides the history table's cutoff count by how
	// often the move was merely tried, so the score reflects a success rate
	// rather than raw cutoff volume. Off uses the raw cutoff count.
	UseButterflyHeuristic bool
	// UseMoveOrdering scores and sorts moves at each node (TT move first,
	// then captures/promotions/killers/history) instead of search order.
	UseMoveOrdering bool
	// UseDeterministicOrdering breaks move-score ties by start/end
	// coordinate instead of leaving them in map-iteration order, so two runs
	// over the same position visit moves in the same order.
	UseDeterministicOrdering bool
	// UseEndgameSolver switches to a bounded exhaustive solver once the
	// piece count on the board falls at or below EndgamePieceThreshold.
	UseEndgameSolver bool
	// UseRootParallelism splits the root move list across Workers goroutines,
	// each with a private transposition table.
	UseRootParallelism bool

	// DepthLimit is the maximum ply to search. 0 means use DefaultDepthLimit.
	DepthLimit int
	// Deadline, if non-zero, stops the search (see UseIterativeDeepening)
	// once passed. Checked on every node entry.
	Deadline time.Time

	// EndgamePieceThreshold is the total piece count at or below which the
	// endgame solver engages, if enabled.
	EndgamePieceThreshold int
	// EndgamePlyCeiling bounds the endgame solver's recursion depth; beyond
	// it, the solver falls back to the static evaluator.
	EndgamePlyCeiling int

	// Workers is the number of root-parallel goroutines. 0 means
	// max(1, runtime.NumCPU()-2).
	Workers int
}

const (
	DefaultDepthLimit            = 12
	DefaultEndgamePieceThreshold = 6
	DefaultEndgamePlyCeiling     = 40

	// TranspositionTableCapacity is the requested slot count; the table
	// rounds it up to the next power of two (524288).
	TranspositionTableCapacity = 500000
	// EvictionWindow bounds how many slots, starting at a key's index, a
	// Read or Write probes. Depth-biased eviction engages once all slots
	// of that window are occupied.
	EvictionWindow = 64

	// MaxKillers is the number of killer moves remembered per ply.
	MaxKillers = 2

	// NullMoveReduction is the depth reduction applied to the verification
	// search after a null move.
	NullMoveReduction = 2
	// NullMoveMinDepth is the shallowest depth at which null-move pruning
	// is attempted.
	NullMoveMinDepth = 3

	// LMRMinDepth is the shallowest depth at which late move reduction
	// applies.
	LMRMinDepth = 3
	// LMRMinMoveIndex is the earliest move index (0-based, after ordering)
	// eligible for reduction.
	LMRMinMoveIndex = 3
	// LMRReduction is the ply reduction applied to a late quiet move.
	LMRReduction = 1

	// QuiescenceMaxPly bounds the capture-only extension beyond the leaf.
	QuiescenceMaxPly = 8

	// HistoryScale weighs the history/butterfly ratio against other
	// ordering terms.
	HistoryScale = 0.01
)

// NewDefaultOptions returns the recommended, fully-enabled configuration.
func NewDefaultOptions() Options {
	return Options{
		UseAlphaBeta:             true,
		UseTranspositionTable:    true,
		UseIterativeDeepening:    true,
		UseAspirationWindows:     true,
		UseNullMovePruning:       true,
		UseLMR:                   true,
		UseQuiescence:            true,
		UseKillerMoves:           true,
		UseHistoryHeuristic:      true,
		UseButterflyHeuristic:    true,
		UseMoveOrdering:          true,
		UseDeterministicOrdering: true,
		UseEndgameSolver:         true,
		UseRootParallelism:       false,

		DepthLimit:            DefaultDepthLimit,
		EndgamePieceThreshold: DefaultEndgamePieceThreshold,
		EndgamePlyCeiling:     DefaultEndgamePlyCeiling,
	}
}

func (o Options) depthLimit() int {
	if o.DepthLimit <= 0 {
		return DefaultDepthLimit
	}
	return o.DepthLimit
}

func (o Options) endgameThreshold() int {
	if o.EndgamePieceThreshold <= 0 {
		return DefaultEndgamePieceThreshold
	}
	return o.EndgamePieceThreshold
}

func (o Options) endgamePlyCeiling() int {
	if o.EndgamePlyCeiling <= 0 {
		return DefaultEndgamePlyCeiling
	}
	return o.EndgamePlyCeiling
}
