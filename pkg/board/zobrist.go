package board

import (
	"math/rand"
	"sync"
)

// ZobristHash is a 64-bit board fingerprint: the XOR of precomputed random
// keys for each occupied square/piece-kind and a side-to-move key.
//
// See also: https://research.cs.wisc.edu/techreports/1970/TR88.pdf.
type ZobristHash uint64

// zobristSeed is the fixed constant the key tables are derived from, so that
// tables are stable across processes and runs -- this lets tests assert
// determinism and would let a serialized TT survive a restart.
const zobristSeed = 20241129

// variantIndex orders the four (color, kind) piece variants as
// white_man=0, white_king=1, black_man=2, black_king=3.
func variantIndex(c Color, k Kind) int {
	idx := 0
	if c == Black {
		idx = 2
	}
	if k == King {
		idx++
	}
	return idx
}

// keyTable holds the per-(row,col,variant) keys for one board size.
type keyTable struct {
	keys [][][4]ZobristHash
}

var (
	keyTablesMu sync.Mutex
	keyTables   = map[int]*keyTable{}

	turnKeysOnce sync.Once
	turnKeys     [NumColors]ZobristHash
)

// keyTableForSize lazily builds (and caches) the piece-square key table for
// board size n. The PRNG is seeded from zobristSeed+n so the table is
// reproducible without needing to be persisted.
func keyTableForSize(n int) *keyTable {
	keyTablesMu.Lock()
	defer keyTablesMu.Unlock()

	if t, ok := keyTables[n]; ok {
		return t
	}

	r := rand.New(rand.NewSource(int64(zobristSeed + n)))
	t := &keyTable{keys: make([][][4]ZobristHash, n)}
	for row := 0; row < n; row++ {
		t.keys[row] = make([][4]ZobristHash, n)
		for col := 0; col < n; col++ {
			for v := 0; v < 4; v++ {
				t.keys[row][col][v] = ZobristHash(r.Uint64())
			}
		}
	}
	keyTables[n] = t
	return t
}

// turnKeyTable lazily builds the two side-to-move keys, seeded independently
// of board size (there is exactly one pair, shared across all sizes).
func turnKeyTable() [NumColors]ZobristHash {
	turnKeysOnce.Do(func() {
		turnKeys[White] = ZobristHash(rand.New(rand.NewSource(int64(zobristSeed))).Uint64())
		turnKeys[Black] = ZobristHash(rand.New(rand.NewSource(int64(zobristSeed + 1))).Uint64())
	})
	return turnKeys
}

// PieceKey returns the key for placing the given (color, kind) piece at
// (row, col) on a board of the given size.
func PieceKey(size int, c Color, k Kind, row, col int) ZobristHash {
	return keyTableForSize(size).keys[row][col][variantIndex(c, k)]
}

// TurnKey returns the key for the given side to move.
func TurnKey(c Color) ZobristHash {
	return turnKeyTable()[c]
}

// ComputeHash performs a full recompute of a board's Zobrist hash from
// scratch. It is used by NewBoard, diagnostics and tests; the hash is
// otherwise maintained incrementally through MakeMove/UnmakeMove.
func ComputeHash(b *Board) ZobristHash {
	var hash ZobristHash
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if p := b.at(row, col); p != nil {
				hash ^= PieceKey(b.Size, p.Color, p.Kind, row, col)
			}
		}
	}
	hash ^= TurnKey(b.Turn)
	return hash
}
