package search

import (
	"sort"

	"github.com/windmill-games/draughts/pkg/board"
)

// flatten collects every legal move for color into a single slice. Order is
// whatever map iteration gives; callers that care about order call orderMoves.
func flatten(moves map[*board.Piece][]board.Move) []board.Move {
	var out []board.Move
	for _, ms := range moves {
		out = append(out, ms...)
	}
	return out
}

// killerTable remembers up to MaxKillers non-capture moves per ply that
// have caused a beta cutoff. FIFO: a new killer evicts the oldest.
type killerTable struct {
	moves [][MaxKillers]board.Move
}

func newKillerTable(maxPly int) *killerTable {
	return &killerTable{moves: make([][MaxKillers]board.Move, maxPly+1)}
}

func (k *killerTable) at(ply int) [MaxKillers]board.Move {
	if ply < 0 || ply >= len(k.moves) {
		return [MaxKillers]board.Move{}
	}
	return k.moves[ply]
}

func (k *killerTable) register(ply int, m board.Move) {
	if ply < 0 || ply >= len(k.moves) || m.IsCapture() {
		return
	}
	slot := &k.moves[ply]
	if slot[0].Equals(m) {
		return
	}
	for i := len(slot) - 1; i > 0; i-- {
		slot[i] = slot[i-1]
	}
	slot[0] = m
}

// historyKey identifies a quiet move independent of the position it was
// played in, so history/butterfly counts accumulate across the whole search.
type historyKey struct {
	start, end board.Coord
}

func keyOf(m board.Move) historyKey {
	return historyKey{start: m.Start, end: m.End()}
}

// historyTable implements the history heuristic with a butterfly
// denominator: tried counts every attempt at a quiet move (not just cutoffs),
// so the ratio reflects the move's actual success rate rather than raw
// cutoff volume.
type historyTable struct {
	cutoff    map[historyKey]int
	tried     map[historyKey]int
	butterfly bool
}

func newHistoryTable(butterfly bool) *historyTable {
	return &historyTable{cutoff: map[historyKey]int{}, tried: map[historyKey]int{}, butterfly: butterfly}
}

func (h *historyTable) recordTried(m board.Move) {
	if m.IsCapture() {
		return
	}
	h.tried[keyOf(m)]++
}

func (h *historyTable) recordCutoff(m board.Move, depth int) {
	if m.IsCapture() {
		return
	}
	h.cutoff[keyOf(m)] += depth * depth
}

// score returns the history/butterfly ranking for m. The cutoff value is
// the sum of depth*depth over m's cutoffs. With butterfly folding enabled
// it is that sum divided by the tried count; disabled, it is the raw sum.
func (h *historyTable) score(m board.Move) float64 {
	k := keyOf(m)
	if !h.butterfly {
		return float64(h.cutoff[k])
	}
	tried := h.tried[k]
	if tried == 0 {
		return 0
	}
	return float64(h.cutoff[k]) / float64(tried)
}

// wouldPromote reports whether m ends on the mover's promotion rank.
func wouldPromote(b *board.Board, p *board.Piece, m board.Move) bool {
	return !p.IsKing() && m.End().Row == b.PromotionRank(p.Color)
}

// moveScore ranks m for search-order purposes: captures by number of pieces
// captured,
// promotions, killer moves, then history/butterfly. Forced TT move is
// handled separately by the caller (moved to the front).
func moveScore(b *board.Board, p *board.Piece, m board.Move, killers [MaxKillers]board.Move, hist *historyTable) float64 {
	if m.IsCapture() {
		return 500 + 25*float64(len(m.Captures))
	}
	if wouldPromote(b, p, m) {
		return 150
	}
	for _, k := range killers {
		if k.Equals(m) {
			return 120
		}
	}
	if hist != nil {
		return HistoryScale * hist.score(m)
	}
	return 0
}

// scoredMove pairs a move with its mover, needed to score promotions.
type scoredMove struct {
	piece *board.Piece
	move  board.Move
}

// orderMoves flattens the legal-move map into a single slice sorted by
// moveScore (descending), with the transposition table's suggested move (if
// any) forced to the front. With deterministic enabled, ties are broken by
// start/end coordinates; disabled, ties keep whatever order the legal-move
// map's iteration produced them in.
func orderMoves(b *board.Board, legal map[*board.Piece][]board.Move, ttMove board.Move, ply int, killers *killerTable, hist *historyTable, deterministic bool) []board.Move {
	var scored []scoredMove
	for p, ms := range legal {
		for _, m := range ms {
			scored = append(scored, scoredMove{piece: p, move: m})
		}
	}

	var k [MaxKillers]board.Move
	if killers != nil {
		k = killers.at(ply)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		si := moveScore(b, scored[i].piece, scored[i].move, k, hist)
		sj := moveScore(b, scored[j].piece, scored[j].move, k, hist)
		if si != sj {
			return si > sj
		}
		if !deterministic {
			return false
		}
		if scored[i].move.Start != scored[j].move.Start {
			return less(scored[i].move.Start, scored[j].move.Start)
		}
		return less(scored[i].move.End(), scored[j].move.End())
	})

	out := make([]board.Move, 0, len(scored)+1)
	hasTT := ttMove.IsCapture() || len(ttMove.Steps) > 0
	if hasTT {
		out = append(out, ttMove)
	}
	for _, sm := range scored {
		if hasTT && sm.move.Equals(ttMove) {
			continue
		}
		out = append(out, sm.move)
	}
	return out
}

func less(a, b board.Coord) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// captureOnlyMoves filters a legal-move map to moves that capture, for
// quiescence search.
func captureOnlyMoves(legal map[*board.Piece][]board.Move) []board.Move {
	var out []board.Move
	for _, ms := range legal {
		for _, m := range ms {
			if m.IsCapture() {
				out = append(out, m)
			}
		}
	}
	return out
}
