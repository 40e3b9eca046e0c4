// Package eval contains the phase-weighted linear position evaluator shared
// by both searchers.
package eval

import "github.com/windmill-games/draughts/pkg/board"

// Evaluator is a static position evaluator: it scores a board from a
// nominated perspective color, where a positive score favors that color.
type Evaluator interface {
	Evaluate(b *board.Board, perspective board.Color) Score
}

// Linear is the phase-weighted linear evaluator: eleven terms (material,
// forward progress, center bias, back-rank guard, promotion threat, edge
// anchor, support network, mobility, capture pressure, capture opportunity,
// threatened) mixed with a profile selected by board size.
type Linear struct {
	Profile8  Profile
	Profile10 Profile
}

// NewLinear returns a Linear evaluator using the default profiles.
func NewLinear() *Linear {
	return &Linear{Profile8: Profile8, Profile10: Profile10}
}

func (l *Linear) profileFor(size int) Profile {
	if size == 8 {
		return l.Profile8
	}
	return l.Profile10
}

// side indexes per-color accumulators: 0 = White, 1 = Black.
func side(c board.Color) int {
	if c == board.White {
		return 0
	}
	return 1
}

// Evaluate implements Evaluator. Antisymmetric by construction: swapping
// perspective and opponent negates every term.
func (l *Linear) Evaluate(b *board.Board, perspective board.Color) Score {
	profile := l.profileFor(b.Size)
	phase := Phase(b)

	kingValue := profile.KingValueOpen + (profile.KingValueEnd-profile.KingValueOpen)*Score(phase)
	backRowWeight := profile.BackRowOpen + (profile.BackRowEnd-profile.BackRowOpen)*Score(phase)
	promotionWeight := profile.PromotionOpen + (profile.PromotionEnd-profile.PromotionOpen)*Score(phase)

	opponent := perspective.Opponent()

	var material, progress, centers, backRow, promotion, edges, support [2]Score

	pieces := b.Pieces()
	byPos := make(map[board.Coord]*board.Piece, len(pieces))
	for _, p := range pieces {
		byPos[board.Coord{Row: p.Row, Col: p.Col}] = p

		i := side(p.Color)
		if p.IsKing() {
			material[i] += kingValue
		} else {
			material[i] += profile.ManValue
			progress[i] += forwardProgress(p, b.Size)
			promotion[i] += promotionThreat(p, b)
			backRow[i] += backRankGuard(p, b)
		}
		centers[i] += centerBias(p, b.Size)
		edges[i] += edgeAnchor(p, b.Size)
		support[i] += supportNetwork(p, b)
	}

	// Mobility and capture pressure/opportunity/threat are derived from the
	// (cached) legal move generator so the evaluator matches forced-capture
	// and majority-capture rules exactly.
	whiteMoves := b.LegalMoves(board.White)
	blackMoves := b.LegalMoves(board.Black)

	var mobility, capturePressure [2]Score
	mobility[0], capturePressure[0] = mobilityAndPressure(whiteMoves)
	mobility[1], capturePressure[1] = mobilityAndPressure(blackMoves)

	whiteTargets := captureTargets(whiteMoves)
	blackTargets := captureTargets(blackMoves)

	var threatened, captureOpportunity [2]Score
	for pos := range blackTargets {
		if p, ok := byPos[pos]; ok && p.Color == board.White {
			threatened[0]++
		}
	}
	for pos := range whiteTargets {
		if p, ok := byPos[pos]; ok && p.Color == board.Black {
			threatened[1]++
		}
	}
	for pos := range whiteTargets {
		if p, ok := byPos[pos]; ok && p.Color == board.Black {
			captureOpportunity[0]++
		}
	}
	for pos := range blackTargets {
		if p, ok := byPos[pos]; ok && p.Color == board.White {
			captureOpportunity[1]++
		}
	}

	pi, oi := side(perspective), side(opponent)

	score := (material[pi] - material[oi]) +
		profile.ProgressWeight*(progress[pi]-progress[oi]) +
		profile.CenterWeight*(centers[pi]-centers[oi]) +
		backRowWeight*(backRow[pi]-backRow[oi]) +
		promotionWeight*(promotion[pi]-promotion[oi]) +
		profile.EdgeWeight*(edges[pi]-edges[oi]) +
		profile.SupportWeight*(support[pi]-support[oi]) +
		profile.MobilityWeight*(mobility[pi]-mobility[oi]) +
		profile.CapturePressure*(capturePressure[pi]-capturePressure[oi]) +
		profile.CaptureOpportunity*(captureOpportunity[pi]-captureOpportunity[oi]) -
		profile.ThreatWeight*(threatened[pi]-threatened[oi])

	return Crop(score)
}

// Phase is 0.0 at the opening and 1.0 deep in the endgame:
// 1 - pieces_now/(2*starting_pieces_per_side).
func Phase(b *board.Board) float64 {
	startTotal := 2 * StartingPiecesPerSide(b.Size)
	if startTotal <= 0 {
		return 0.5
	}
	phase := 1.0 - float64(len(b.Pieces()))/float64(startTotal)
	if phase < 0 {
		return 0
	}
	if phase > 1 {
		return 1
	}
	return phase
}

// forwardProgress measures how close a Man is to promotion: (max_rank-row)/max_rank
// for White, row/max_rank for Black. Kings are always maxed.
func forwardProgress(p *board.Piece, size int) Score {
	if p.IsKing() || size <= 1 {
		return 1.0
	}
	maxRank := Score(size - 1)
	if p.Color == board.White {
		return (maxRank - Score(p.Row)) / maxRank
	}
	return Score(p.Row) / maxRank
}

// centerBias rewards pieces sitting near the middle of the board.
func centerBias(p *board.Piece, size int) Score {
	if size <= 1 {
		return 1.0
	}
	center := Score(size-1) / 2.0
	maxOffset := center
	if maxOffset == 0 {
		maxOffset = 1.0
	}
	normalized := (absScore(Score(p.Row)-center) + absScore(Score(p.Col)-center)) / (2.0 * maxOffset)
	if v := 1.0 - normalized; v > 0 {
		return v
	}
	return 0
}

// backRankGuard rewards Men that still sit on their own starting home rank,
// guarding against enemy kings crowning through it.
func backRankGuard(p *board.Piece, b *board.Board) Score {
	if p.IsKing() {
		return 0
	}
	if p.Row == b.HomeRank(p.Color) {
		return 1
	}
	return 0
}

// promotionThreat scores Men by proximity to the opponent's home rank.
func promotionThreat(p *board.Piece, b *board.Board) Score {
	if p.IsKing() || b.Size <= 1 {
		return 0
	}
	maxRank := Score(b.Size - 1)
	distance := absScore(Score(p.Row) - Score(b.PromotionRank(p.Color)))
	if v := 1.0 - distance/maxRank; v > 0 {
		return v
	}
	return 0
}

// edgeAnchor gives credit to pieces on or near the board edge.
func edgeAnchor(p *board.Piece, size int) Score {
	if size <= 2 {
		return 0
	}
	switch p.Col {
	case 0, size - 1:
		return 1.0
	case 1, size - 2:
		return 0.5
	default:
		return 0
	}
}

// supportNetwork counts the fraction of the four diagonal neighbors that
// are same-colored, rewarding tandem formations.
func supportNetwork(p *board.Piece, b *board.Board) Score {
	if b.Size <= 1 {
		return 0
	}
	n := 0
	for _, dr := range [2]int{-1, 1} {
		for _, dc := range [2]int{-1, 1} {
			if neighbor := b.At(p.Row+dr, p.Col+dc); neighbor != nil && neighbor.Color == p.Color {
				n++
			}
		}
	}
	return Score(n) / 4.0
}

func mobilityAndPressure(moves map[*board.Piece][]board.Move) (mobility, pressure Score) {
	for _, ms := range moves {
		mobility += Score(len(ms))
		for _, m := range ms {
			if m.IsCapture() {
				pressure += 1.0 + 0.20*Score(len(m.Captures))
			}
		}
	}
	return mobility, pressure
}

func captureTargets(moves map[*board.Piece][]board.Move) map[board.Coord]bool {
	targets := map[board.Coord]bool{}
	for _, ms := range moves {
		for _, m := range ms {
			for _, c := range m.Captures {
				targets[c] = true
			}
		}
	}
	return targets
}

func absScore(s Score) Score {
	if s < 0 {
		return -s
	}
	return s
}
