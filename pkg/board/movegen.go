package board

// dir is a single diagonal step direction.
type dir struct{ dr, dc int }

var allDiagonals = []dir{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// forwardDirs returns the two diagonals a Man of color c advances along for
// non-capturing moves (and the only capture directions on an 8x8 board).
func forwardDirs(c Color) []dir {
	if c == White {
		return []dir{{-1, -1}, {-1, 1}}
	}
	return []dir{{1, -1}, {1, 1}}
}

// LegalMoves returns a mapping from each piece of color that has at least
// one move to its ordered sequence of legal moves. Deterministic for a
// given board. Forced/majority capture filtering (see computeLegalMoves) is
// already applied. Results are served from, and populated into, the
// board's move cache, keyed by (size, hash, color) and never by piece
// identity (see movecache.go).
func (b *Board) LegalMoves(color Color) map[*Piece][]Move {
	if entries, ok := b.cache.get(b.Size, b.Hash, color); ok {
		out := make(map[*Piece][]Move, len(entries))
		for _, e := range entries {
			if p := b.at(e.row, e.col); p != nil {
				out[p] = e.moves
			}
		}
		return out
	}

	computed := b.computeLegalMoves(color)

	entries := make([]cachedMoves, 0, len(computed))
	for p, moves := range computed {
		entries = append(entries, cachedMoves{row: p.Row, col: p.Col, moves: moves})
	}
	b.cache.put(b.Size, b.Hash, color, entries)

	return computed
}

// computeLegalMoves generates raw pseudo-legal moves per piece, then applies
// forced capture (if any piece of color has a capture, all quiet moves are
// dropped) and, on International boards only, majority capture filtering.
func (b *Board) computeLegalMoves(color Color) map[*Piece][]Move {
	captureMap := map[*Piece][]Move{}
	quietMap := map[*Piece][]Move{}

	for _, p := range b.Pieces() {
		if p.Color != color {
			continue
		}
		moves := b.pieceMoves(p)
		if len(moves) == 0 {
			continue
		}
		if moves[0].IsCapture() {
			captureMap[p] = moves
		} else {
			quietMap[p] = moves
		}
	}

	if len(captureMap) == 0 {
		return quietMap
	}
	if b.Variant == International {
		captureMap = filterMajorityCaptures(b, captureMap)
	}
	return captureMap
}

// filterMajorityCaptures implements International draughts' majority
// capture rule: among all capture moves, keep only those capturing the
// maximum number of pieces; among those, keep only the ones capturing the
// maximum number of kings. Ties beyond that are all retained.
func filterMajorityCaptures(b *Board, captureMap map[*Piece][]Move) map[*Piece][]Move {
	maxCaptures := 0
	for _, moves := range captureMap {
		for _, m := range moves {
			if n := len(m.Captures); n > maxCaptures {
				maxCaptures = n
			}
		}
	}

	byCount := map[*Piece][]Move{}
	for p, moves := range captureMap {
		var filtered []Move
		for _, m := range moves {
			if len(m.Captures) == maxCaptures {
				filtered = append(filtered, m)
			}
		}
		if len(filtered) > 0 {
			byCount[p] = filtered
		}
	}
	if len(byCount) == 0 {
		return captureMap
	}

	kingsCaptured := func(m Move) int {
		n := 0
		for _, c := range m.Captures {
			if cp := b.at(c.Row, c.Col); cp != nil && cp.IsKing() {
				n++
			}
		}
		return n
	}

	maxKings := -1
	for _, moves := range byCount {
		for _, m := range moves {
			if k := kingsCaptured(m); k > maxKings {
				maxKings = k
			}
		}
	}

	majority := map[*Piece][]Move{}
	for p, moves := range byCount {
		var filtered []Move
		for _, m := range moves {
			if kingsCaptured(m) == maxKings {
				filtered = append(filtered, m)
			}
		}
		if len(filtered) > 0 {
			majority[p] = filtered
		}
	}
	if len(majority) > 0 {
		return majority
	}
	return byCount
}

// pieceMoves dispatches to the Man or King generator. Per piece it returns
// either all-capture or all-quiet moves (never mixed): a piece with any
// capture available never also offers a quiet move.
func (b *Board) pieceMoves(p *Piece) []Move {
	if p.Kind == King {
		return b.kingMoves(p)
	}
	return b.manMoves(p)
}

func (b *Board) manMoves(p *Piece) []Move {
	start := Coord{p.Row, p.Col}
	forward := forwardDirs(p.Color)

	captureDirs := forward
	if b.Variant == International {
		captureDirs = allDiagonals
	}
	if captures := b.captureDFS(p, start, captureDirs, false); len(captures) > 0 {
		return captures
	}

	var moves []Move
	for _, d := range forward {
		nr, nc := p.Row+d.dr, p.Col+d.dc
		if b.within(nr, nc) && b.at(nr, nc) == nil {
			moves = append(moves, Move{Start: start, Steps: []Coord{{nr, nc}}})
		}
	}
	return moves
}

func (b *Board) kingMoves(p *Piece) []Move {
	start := Coord{p.Row, p.Col}
	flying := b.Variant == International

	if captures := b.captureDFS(p, start, allDiagonals, flying); len(captures) > 0 {
		return captures
	}

	var moves []Move
	if flying {
		for _, d := range allDiagonals {
			r, c := p.Row+d.dr, p.Col+d.dc
			for b.within(r, c) && b.at(r, c) == nil {
				moves = append(moves, Move{Start: start, Steps: []Coord{{r, c}}})
				r += d.dr
				c += d.dc
			}
		}
	} else {
		for _, d := range allDiagonals {
			nr, nc := p.Row+d.dr, p.Col+d.dc
			if b.within(nr, nc) && b.at(nr, nc) == nil {
				moves = append(moves, Move{Start: start, Steps: []Coord{{nr, nc}}})
			}
		}
	}
	return moves
}

// captureDFS enumerates every maximal capture sequence from p's square by
// depth-first search. Each step removes the captured square from
// consideration for the rest of this sequence (via the visited set) but
// does not physically remove the captured piece from the board -- captured
// pieces are "ghosted" during the search and only removed when the
// sequence is committed by MakeMove. A sequence is terminal (and emitted)
// exactly when no further extension is possible from the current square.
//
// When flying is true (International kings), a direction slides across any
// number of empty squares to find exactly one enemy, then lands on any
// empty square beyond it, repeatable. When false (Men, and British kings),
// a direction is a single adjacent-jump.
func (b *Board) captureDFS(p *Piece, start Coord, dirs []dir, flying bool) []Move {
	var result []Move

	var dfs func(row, col int, path, captured []Coord, visited map[Coord]bool)
	dfs = func(row, col int, path, captured []Coord, visited map[Coord]bool) {
		extended := false

		for _, d := range dirs {
			if flying {
				r, c := row+d.dr, col+d.dc
				var enemy *Coord
				for b.within(r, c) {
					occ := b.at(r, c)
					if occ != nil {
						if occ.Color != p.Color && !visited[Coord{r, c}] {
							e := Coord{r, c}
							enemy = &e
						}
						break
					}
					r += d.dr
					c += d.dc
				}
				if enemy == nil {
					continue
				}
				ar, ac := enemy.Row+d.dr, enemy.Col+d.dc
				for b.within(ar, ac) && b.at(ar, ac) == nil {
					extended = true
					dfs(ar, ac, appendCoord(path, Coord{ar, ac}), appendCoord(captured, *enemy), withVisited(visited, *enemy))
					ar += d.dr
					ac += d.dc
				}
			} else {
				midR, midC := row+d.dr, col+d.dc
				endR, endC := row+2*d.dr, col+2*d.dc
				if !b.within(endR, endC) {
					continue
				}
				mid := b.at(midR, midC)
				if mid == nil || mid.Color == p.Color {
					continue
				}
				midCoord := Coord{midR, midC}
				if visited[midCoord] || b.at(endR, endC) != nil {
					continue
				}
				extended = true
				dfs(endR, endC, appendCoord(path, Coord{endR, endC}), appendCoord(captured, midCoord), withVisited(visited, midCoord))
			}
		}

		if !extended && len(captured) > 0 {
			result = append(result, Move{Start: start, Steps: append([]Coord{}, path...), Captures: append([]Coord{}, captured...)})
		}
	}

	dfs(p.Row, p.Col, nil, nil, map[Coord]bool{})
	return result
}

func appendCoord(s []Coord, c Coord) []Coord {
	out := make([]Coord, len(s), len(s)+1)
	copy(out, s)
	return append(out, c)
}

func withVisited(v map[Coord]bool, c Coord) map[Coord]bool {
	out := make(map[Coord]bool, len(v)+1)
	for k := range v {
		out[k] = true
	}
	out[c] = true
	return out
}
