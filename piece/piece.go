// Package piece packs a chess piece into four bits of a byte.
//
// The layout is CTTT: bit 3 holds the color and bits 0-2 the type. Bits 4-7
// are ignored on decode.
package piece

import (
	"errors"
	"fmt"
)

// Type is the color-agnostic kind of a piece.
type Type uint8

// Color is the side a piece belongs to.
type Color uint8

const (
	Empty  Type = 0b0000
	Pawn   Type = 0b0001
	Knight Type = 0b0010
	Bishop Type = 0b0011
	Rook   Type = 0b0100
	Queen  Type = 0b0101
	King   Type = 0b0110
)

const (
	White Color = 0b0000
	Black Color = 0b1000
)

const (
	TypeMask  uint8 = 0b0111
	ColorMask uint8 = 0b1000
)

// ErrInvalidEncoding is returned when a raw byte has no piece.
var ErrInvalidEncoding = errors.New("invalid piece encoding")

// EncodingError carries the raw byte that failed to decode.
type EncodingError struct {
	Raw uint8
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s 0b%04b", ErrInvalidEncoding, e.Raw&(ColorMask|TypeMask))
}

func (e *EncodingError) Unwrap() error {
	return ErrInvalidEncoding
}

// Piece is one square's occupant. Empty pieces keep their color.
type Piece struct {
	Type  Type
	Color Color
}

// TypeFromBits decodes the type tag. Callers mask off the color bit first.
func TypeFromBits(raw uint8) (Type, bool) {
	switch raw {
	case 0b0000:
		return Empty, true
	case 0b0001:
		return Pawn, true
	case 0b0010:
		return Knight, true
	case 0b0011:
		return Bishop, true
	case 0b0100:
		return Rook, true
	case 0b0101:
		return Queen, true
	case 0b0110:
		return King, true
	}
	return Empty, false
}

// ColorFromBits decodes the color tag. Only 0 and 0b1000 are accepted.
func ColorFromBits(raw uint8) (Color, bool) {
	switch raw {
	case 0b1000:
		return Black, true
	case 0b0000:
		return White, true
	}
	return White, false
}

// New pairs a type with a color. Any combination is valid, including Empty.
func New(t Type, c Color) Piece {
	return Piece{Type: t, Color: c}
}

// Raw packs the piece as CTTT.
func (p Piece) Raw() uint8 {
	return uint8(p.Color) | uint8(p.Type)
}

// FromRaw unpacks a CTTT byte. The high nibble is not checked.
func FromRaw(raw uint8) (Piece, error) {
	c, ok := ColorFromBits(raw & ColorMask)
	if !ok {
		return Piece{}, &EncodingError{Raw: raw}
	}
	t, ok := TypeFromBits(raw & TypeMask)
	if !ok {
		return Piece{}, &EncodingError{Raw: raw}
	}
	return Piece{Type: t, Color: c}, nil
}

// MustFromRaw is FromRaw for bytes that were validated upstream. It panics on
// the unused type tag.
func MustFromRaw(raw uint8) Piece {
	p, err := FromRaw(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Valid reports whether FromRaw accepts raw.
func Valid(raw uint8) bool {
	_, ok := TypeFromBits(raw & TypeMask)
	return ok
}

// Types lists every type in tag order.
func Types() []Type {
	return []Type{Empty, Pawn, Knight, Bishop, Rook, Queen, King}
}

// Colors lists both colors in tag order.
func Colors() []Color {
	return []Color{White, Black}
}

// All lists every valid piece in raw order.
func All() []Piece {
	pieces := make([]Piece, 0, len(Types())*len(Colors()))
	for _, c := range Colors() {
		for _, t := range Types() {
			pieces = append(pieces, New(t, c))
		}
	}
	return pieces
}

// IsEmpty reports whether t is Empty.
func (t Type) IsEmpty() bool { return t == Empty }

// IsPawn reports whether t is Pawn.
func (t Type) IsPawn() bool { return t == Pawn }

// IsKnight reports whether t is Knight.
func (t Type) IsKnight() bool { return t == Knight }

// IsBishop reports whether t is Bishop.
func (t Type) IsBishop() bool { return t == Bishop }

// IsRook reports whether t is Rook.
func (t Type) IsRook() bool { return t == Rook }

// IsQueen reports whether t is Queen.
func (t Type) IsQueen() bool { return t == Queen }

// IsKing reports whether t is King.
func (t Type) IsKing() bool { return t == King }

// IsWhite reports whether the color bit is clear.
func (c Color) IsWhite() bool { return c == White }

// IsBlack reports whether the color bit is set.
func (c Color) IsBlack() bool { return c == Black }

// Opposite returns the other color.
func (c Color) Opposite() Color {
	return c ^ Black
}

// IsEmpty reports whether no piece occupies the square.
func (p Piece) IsEmpty() bool {
	return p.Type == Empty
}

// Swap hands a piece to the other side. Empty pieces are returned unchanged.
func (p Piece) Swap() Piece {
	if p.IsEmpty() {
		return p
	}
	return Piece{Type: p.Type, Color: p.Color.Opposite()}
}
