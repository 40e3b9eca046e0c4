// Package mcts implements Monte Carlo Tree Search as an alternative to
// pkg/search's alpha-beta minimax: UCT selection, configurable rollout and
// leaf-evaluation policies, optional progressive widening, and root
// parallelism with a plurality vote across workers.
package mcts

// RolloutPolicy selects how a rollout picks its move at each ply.
type RolloutPolicy uint8

const (
	// Random picks uniformly among captures (if any), else promotions (if
	// any), else any legal move -- mirroring forced-capture bias without
	// fully committing to it.
	Random RolloutPolicy = iota
	// Heuristic picks the 1-ply move that maximizes the static evaluator.
	Heuristic
	// MinimaxGuided picks the move found by a GuidanceDepth-ply minimax
	// search against the static evaluator.
	MinimaxGuided
)

func (p RolloutPolicy) String() string {
	switch p {
	case Heuristic:
		return "heuristic"
	case MinimaxGuided:
		return "minimax_guided"
	default:
		return "random"
	}
}

// LeafEvaluation selects how a rollout that reaches its cutoff depth
// without a terminal result is scored.
type LeafEvaluation uint8

const (
	// NoLeafEvaluation scores an unresolved rollout as a neutral draw (0).
	NoLeafEvaluation LeafEvaluation = iota
	// HeuristicEval scores the position with the static evaluator,
	// normalized into [-1, 1].
	HeuristicEval
	// MinimaxEval scores the position with a GuidanceDepth-ply minimax
	// search against the static evaluator, normalized into [-1, 1].
	MinimaxEval
)

// Options controls one Search call.
type Options struct {
	Iterations          int
	RolloutDepth         int
	ExplorationConstant float64
	RandomSeed          int64 // 0 means unseeded (time-derived)

	RolloutPolicy      RolloutPolicy
	GuidanceDepth      int
	RolloutCutoffDepth int // 0 means RolloutDepth

	LeafEvaluation LeafEvaluation

	UseTransposition        bool
	TranspositionMaxEntries int

	ProgressiveWidening bool
	PWK                 float64
	PWAlpha             float64

	// ProgressiveBias adds a pb_weight * bias / (visits+1) term to UCB1
	// selection, where bias is the normalized heuristic eval of a child's
	// position at the time it was created.
	ProgressiveBias bool
	PBWeight        float64

	// UseRootParallelism splits Iterations across Workers goroutines, each
	// running an independent tree from a cloned board, and picks the move
	// with the most worker votes (plurality), not the deepest single tree.
	UseRootParallelism bool
	// Workers is the number of root-parallel goroutines. 0 means
	// max(1, min(runtime.NumCPU(), Iterations)).
	Workers int

	// MoveCacheCapacity is not read by Search: rollouts use the board's own
	// move cache at its default capacity, which this field does not change.
	MoveCacheCapacity int
}

const (
	DefaultIterations              = 500
	DefaultRolloutDepth            = 80
	DefaultExplorationConstant     = 1.4
	DefaultGuidanceDepth           = 1
	DefaultTranspositionMaxEntries = 200000
	DefaultPWK                     = 1.5
	DefaultPWAlpha                 = 0.5
	DefaultPBWeight                = 1.0
)

// NewDefaultOptions mirrors the reference implementation's keyword
// defaults: plain random rollouts, no transposition sharing, no
// progressive widening, single-threaded.
func NewDefaultOptions() Options {
	return Options{
		Iterations:          DefaultIterations,
		RolloutDepth:        DefaultRolloutDepth,
		ExplorationConstant: DefaultExplorationConstant,
		RolloutPolicy:       Random,
		GuidanceDepth:       DefaultGuidanceDepth,
		LeafEvaluation:      NoLeafEvaluation,

		TranspositionMaxEntries: DefaultTranspositionMaxEntries,
		PWK:                     DefaultPWK,
		PWAlpha:                 DefaultPWAlpha,
		PBWeight:                DefaultPBWeight,
	}
}

func (o Options) rolloutCutoff() int {
	if o.RolloutCutoffDepth > 0 {
		return o.RolloutCutoffDepth
	}
	return o.RolloutDepth
}
