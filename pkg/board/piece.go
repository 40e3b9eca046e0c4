package board

import "fmt"

// Kind distinguishes a Man from a King. 1 bit.
type Kind uint8

const (
	Man Kind = iota
	King
)

func (k Kind) String() string {
	switch k {
	case Man:
		return "man"
	case King:
		return "king"
	default:
		return "?"
	}
}

// Piece is a tagged record {color, kind, row, col, stable identity}, per the
// board's data model. Identity (ID) is assigned once at creation and is
// kept across moves and promotion; it exists for external collaborators
// (e.g. UI highlighting of "this piece slid here") and is never consulted by
// the search core or by hashing -- hashing and move lookup key only on
// (row, col, color, kind).
type Piece struct {
	ID    uint32
	Color Color
	Kind  Kind
	Row   int
	Col   int
}

func (p *Piece) IsKing() bool {
	return p.Kind == King
}

// Promote returns a new King piece at the same square and with the same
// identity as p. The Man is not mutated; callers replace it in the board.
func (p *Piece) Promote() *Piece {
	return &Piece{ID: p.ID, Color: p.Color, Kind: King, Row: p.Row, Col: p.Col}
}

func (p *Piece) String() string {
	tag := "m"
	if p.Kind == King {
		tag = "k"
	}
	if p.Color == Black {
		tag = fmt.Sprintf("%s*", tag)
	}
	return tag
}
