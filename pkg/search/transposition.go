package search

import (
	"context"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/seekerror/logw"
	"github.com/windmill-games/draughts/pkg/board"
	"github.com/windmill-games/draughts/pkg/eval"
)

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// Key addresses a transposition entry. Perspective-keying is mandatory: the
// same position probed from White's perspective and from Black's
// perspective are different entries, since stored scores are always
// relative to the perspective that searched them.
type Key struct {
	Hash        board.ZobristHash
	Perspective board.Color
}

// entry is one stored search result.
type entry struct {
	key   Key
	bound Bound
	depth int
	score eval.Score
	move  board.Move
}

// TranspositionTable caches search results keyed by (Zobrist hash,
// perspective color) to avoid re-searching transposed positions. Must be
// safe for concurrent use; root-parallel workers normally use private
// tables instead (see rootparallel.go).
type TranspositionTable interface {
	Read(key Key) (Bound, int, eval.Score, board.Move, bool)
	Write(key Key, bound Bound, depth int, score eval.Score, move board.Move) bool
	Size() int
	Used() float64
}

// table is a fixed-capacity, depth-biased transposition table. Each slot
// holds an atomic pointer so lock-free reads and writes can race safely: a
// torn read simply misses (key mismatch) rather than corrupting state.
type table struct {
	slots []unsafe.Pointer // *entry
	mask  uint64
	used  int64
}

// NewTranspositionTable allocates a table with TranspositionTableCapacity
// slots, rounded up to the next power of two so EvictionWindow probing can
// wrap with a mask instead of a modulo.
func NewTranspositionTable(ctx context.Context) TranspositionTable {
	n := uint64(1)
	for n < uint64(TranspositionTableCapacity) {
		n <<= 1
	}
	logw.Infof(ctx, "Allocating transposition table with %v slots", n)
	return &table{
		slots: make([]unsafe.Pointer, n),
		mask:  n - 1,
	}
}

func (t *table) Size() int {
	return len(t.slots)
}

func (t *table) Used() float64 {
	return float64(atomic.LoadInt64(&t.used)) / float64(len(t.slots))
}

func (t *table) index(key Key) uint64 {
	h := uint64(key.Hash)*2 + uint64(key.Perspective)
	return h & t.mask
}

func (t *table) load(i uint64) *entry {
	return (*entry)(atomic.LoadPointer(&t.slots[i]))
}

func (t *table) Read(key Key) (Bound, int, eval.Score, board.Move, bool) {
	start := t.index(key)
	window := EvictionWindow
	if window > len(t.slots) {
		window = len(t.slots)
	}
	for w := 0; w < window; w++ {
		i := (start + uint64(w)) & t.mask
		if e := t.load(i); e != nil && e.key == key {
			return e.bound, e.depth, e.score, e.move, true
		}
	}
	return 0, 0, 0, board.Move{}, false
}

// Write stores the entry in the first empty slot within the eviction
// window starting at key's primary index. An entry for the same key is
// replaced only by an equal-or-deeper result. If the window is full, the
// shallowest entry whose depth does not exceed the new depth is replaced
// (the first such in probe order on a tie); if every entry is deeper, the
// write is dropped.
func (t *table) Write(key Key, bound Bound, depth int, score eval.Score, move board.Move) bool {
	start := t.index(key)
	window := EvictionWindow
	if window > len(t.slots) {
		window = len(t.slots)
	}

	fresh := &entry{key: key, bound: bound, depth: depth, score: score, move: move}

	var victim uint64
	victimDepth := depth + 1 // anything shallower than this is a candidate
	found := false

	for w := 0; w < window; w++ {
		i := (start + uint64(w)) & t.mask
		cur := t.load(i)
		if cur == nil {
			if atomic.CompareAndSwapPointer(&t.slots[i], nil, unsafe.Pointer(fresh)) {
				atomic.AddInt64(&t.used, 1)
				return true
			}
			cur = t.load(i)
		}
		if cur != nil && cur.key == key {
			if depth >= cur.depth { // only overwrite with an equal-or-deeper result
				atomic.CompareAndSwapPointer(&t.slots[i], unsafe.Pointer(cur), unsafe.Pointer(fresh))
				return true
			}
			return false
		}
		if cur != nil && cur.depth < victimDepth {
			victim = i
			victimDepth = cur.depth
			found = true
		}
	}

	if !found {
		return false
	}
	old := t.load(victim)
	return atomic.CompareAndSwapPointer(&t.slots[victim], unsafe.Pointer(old), unsafe.Pointer(fresh))
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v entries @ %v%%]", t.Size(), int(100*t.Used()))
}

// NoTranspositionTable is a Nop implementation for UseTranspositionTable=false.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(Key) (Bound, int, eval.Score, board.Move, bool) {
	return 0, 0, 0, board.Move{}, false
}
func (NoTranspositionTable) Write(Key, Bound, int, eval.Score, board.Move) bool { return false }
func (NoTranspositionTable) Size() int                                         { return 0 }
func (NoTranspositionTable) Used() float64                                     { return 0 }
