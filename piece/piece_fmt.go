package piece

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrUnknownName is returned when text names no type, color or piece.
var ErrUnknownName = errors.New("unknown piece name")

var typeNames = map[Type]string{
	Empty:  "Empty",
	Pawn:   "Pawn",
	Knight: "Knight",
	Bishop: "Bishop",
	Rook:   "Rook",
	Queen:  "Queen",
	King:   "King",
}

var colorNames = map[Color]string{
	White: "White",
	Black: "Black",
}

var typeToGlyphWhite = map[Type]rune{
	Bishop: '♗',
	King:   '♔',
	Knight: '♘',
	Pawn:   '♙',
	Queen:  '♕',
	Rook:   '♖',
}
var typeToGlyphBlack = map[Type]rune{
	Bishop: '♝',
	King:   '♚',
	Knight: '♞',
	Pawn:   '♟',
	Queen:  '♛',
	Rook:   '♜',
}
var glyphToPiece = map[rune]Piece{
	'♗': {Bishop, White},
	'♔': {King, White},
	'♘': {Knight, White},
	'♙': {Pawn, White},
	'♕': {Queen, White},
	'♖': {Rook, White},
	'♝': {Bishop, Black},
	'♚': {King, Black},
	'♞': {Knight, Black},
	'♟': {Pawn, Black},
	'♛': {Queen, Black},
	'♜': {Rook, Black},
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

func (p Piece) String() string {
	return p.Color.String() + " " + p.Type.String()
}

// Glyph returns the Unicode chess symbol, or 0 for an empty square.
func (p Piece) Glyph() rune {
	if p.Color == Black {
		return typeToGlyphBlack[p.Type]
	}
	return typeToGlyphWhite[p.Type]
}

// FromGlyph maps a Unicode chess symbol back to its piece.
func FromGlyph(glyph rune) (Piece, bool) {
	p, ok := glyphToPiece[glyph]
	return p, ok
}

// ParseType accepts a type name in any case.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if strings.EqualFold(s, name) {
			return t, nil
		}
	}
	return Empty, fmt.Errorf("%w: type %q", ErrUnknownName, s)
}

// ParseColor accepts a color name in any case.
func ParseColor(s string) (Color, error) {
	for c, name := range colorNames {
		if strings.EqualFold(s, name) {
			return c, nil
		}
	}
	return White, fmt.Errorf("%w: color %q", ErrUnknownName, s)
}

// Parse accepts "<color> <type>" or a single glyph.
func Parse(s string) (Piece, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		if p, ok := FromGlyph(r); ok {
			return p, nil
		}
	}
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Piece{}, fmt.Errorf("%w: piece %q", ErrUnknownName, s)
	}
	c, err := ParseColor(fields[0])
	if err != nil {
		return Piece{}, err
	}
	t, err := ParseType(fields[1])
	if err != nil {
		return Piece{}, err
	}
	return New(t, c), nil
}

func scanToken(state fmt.ScanState) (string, error) {
	token, err := state.Token(true, nil)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// Scan implements fmt.Scanner.
func (t *Type) Scan(state fmt.ScanState, verb rune) error {
	s, err := scanToken(state)
	if err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Scan implements fmt.Scanner.
func (c *Color) Scan(state fmt.ScanState, verb rune) error {
	s, err := scanToken(state)
	if err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (t Type) MarshalText() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, &EncodingError{Raw: uint8(t)}
	}
	return []byte(name), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (c Color) MarshalText() ([]byte, error) {
	name, ok := colorNames[c]
	if !ok {
		return nil, &EncodingError{Raw: uint8(c)}
	}
	return []byte(name), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type pieceJSON struct {
	Type  Type
	Color Color
	Raw   uint8
	Glyph string `json:",omitempty"`
}

func (p Piece) MarshalJSON() ([]byte, error) {
	glyph := ""
	if g := p.Glyph(); g != 0 {
		glyph = string(g)
	}
	return json.Marshal(pieceJSON{Type: p.Type, Color: p.Color, Raw: p.Raw(), Glyph: glyph})
}

// UnmarshalJSON accepts either a raw number or an object with both Type and
// Color. null leaves the piece unchanged.
func (p *Piece) UnmarshalJSON(bytes []byte) error {
	if string(bytes) == "null" {
		return nil
	}
	var raw uint8
	if err := json.Unmarshal(bytes, &raw); err == nil {
		decoded, err := FromRaw(raw)
		if err != nil {
			return err
		}
		*p = decoded
		return nil
	}
	var state struct {
		Type  *Type
		Color *Color
	}
	if err := json.Unmarshal(bytes, &state); err != nil {
		return err
	}
	decoded, err := Compose(state.Type, state.Color)
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}

// Compose builds a piece from optional fields, failing when either is missing.
func Compose(t *Type, c *Color) (Piece, error) {
	if t == nil {
		return Piece{}, fmt.Errorf("%w: missing type", ErrUnknownName)
	}
	if c == nil {
		return Piece{}, fmt.Errorf("%w: missing color", ErrUnknownName)
	}
	return New(*t, *c), nil
}

// Value stores the piece as its raw byte.
func (p Piece) Value() (driver.Value, error) {
	return int64(p.Raw()), nil
}

// Scan implements sql.Scanner.
func (p *Piece) Scan(cell interface{}) error {
	var raw uint64
	switch cell := cell.(type) {
	case int64:
		if cell < 0 || cell > 0xFF {
			return fmt.Errorf("piece out of range scanning %d", cell)
		}
		raw = uint64(cell)
	case []byte:
		return p.Scan(string(cell))
	case string:
		parsed, err := strconv.ParseUint(cell, 10, 8)
		if err != nil {
			return err
		}
		raw = parsed
	default:
		return fmt.Errorf("invalid format scaning %#v", cell)
	}
	decoded, err := FromRaw(uint8(raw))
	if err != nil {
		return err
	}
	*p = decoded
	return nil
}
