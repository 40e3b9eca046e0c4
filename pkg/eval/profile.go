package eval

// Profile is the set of tunable weights the evaluator mixes its terms
// with. Two fixed profiles are provided (Profile8, Profile10); callers may
// supply their own via Game.SetEvaluatorProfile.
type Profile struct {
	ManValue         Score
	KingValueOpen    Score
	KingValueEnd     Score
	ProgressWeight   Score
	CenterWeight     Score
	BackRowOpen      Score
	BackRowEnd       Score
	MobilityWeight   Score
	PromotionOpen    Score
	PromotionEnd     Score
	EdgeWeight       Score
	SupportWeight    Score
	CapturePressure  Score
	ThreatWeight     Score
	CaptureOpportunity Score
}

// Profile8 is the default weight profile for the 8x8 British variant.
var Profile8 = Profile{
	ManValue:           1.0,
	KingValueOpen:      2.05,
	KingValueEnd:       2.35,
	ProgressWeight:     0.12,
	CenterWeight:       0.08,
	BackRowOpen:        0.22,
	BackRowEnd:         0.06,
	MobilityWeight:     0.04,
	PromotionOpen:      0.10,
	PromotionEnd:       0.22,
	EdgeWeight:         0.04,
	SupportWeight:      0.06,
	CapturePressure:    0.03,
	ThreatWeight:       0.35,
	CaptureOpportunity: 0.18,
}

// Profile10 is the default weight profile for the 10x10 International
// variant -- flying kings are valued higher, and threats/opportunities
// weigh more heavily since majority capture makes tactics sharper.
var Profile10 = Profile{
	ManValue:           1.0,
	KingValueOpen:      2.65,
	KingValueEnd:       3.10,
	ProgressWeight:     0.06,
	CenterWeight:       0.06,
	BackRowOpen:        0.14,
	BackRowEnd:         0.04,
	MobilityWeight:     0.06,
	PromotionOpen:      0.08,
	PromotionEnd:       0.18,
	EdgeWeight:         0.02,
	SupportWeight:      0.05,
	CapturePressure:    0.04,
	ThreatWeight:       0.45,
	CaptureOpportunity: 0.22,
}

// ProfileFor returns the default profile for a board of the given size.
func ProfileFor(size int) Profile {
	if size == 8 {
		return Profile8
	}
	return Profile10
}

// StartingPiecesPerSide is the number of Men one side starts with on a
// board of the given size: (half-1)*half dark squares per side, where
// half = size/2.
func StartingPiecesPerSide(size int) int {
	half := size / 2
	if half < 1 {
		half = 1
	}
	n := (half - 1) * half
	if n < 0 {
		return 0
	}
	return n
}
