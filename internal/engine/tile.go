package engine

import "fmt"

// TileType identifies what happens when a player lands on a tile.
type TileType int

const (
	TileNeutral  TileType = iota
	TileQuestion          // trivia question from the tile's category
	TileBenefit           // benefit card, may be stored
	TilePenalty           // penalty card, applied immediately
)

var tileTypeNames = map[TileType]string{
	TileNeutral:  "neutral",
	TileQuestion: "question",
	TileBenefit:  "benefit",
	TilePenalty:  "penalty",
}

func (t TileType) String() string {
	if s, ok := tileTypeNames[t]; ok {
		return s
	}
	return "unknown"
}

func (t TileType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// ParseTileType maps a content name ("question", "benefit", ...) to a TileType.
func ParseTileType(s string) (TileType, error) {
	for t, name := range tileTypeNames {
		if name == s {
			return t, nil
		}
	}
	return TileNeutral, fmt.Errorf("unknown tile type %q", s)
}

// Category names a trivia topic, e.g. "history".
type Category string

// Tile is one static board cell.
type Tile struct {
	Type     TileType `json:"type"`
	Category Category `json:"category,omitempty"`
}

// Board is the fixed, ordered tile sequence. Positions wrap modulo Len.
type Board struct {
	tiles []Tile
}

// NewBoard copies tiles into a board. An empty board is a configuration error.
func NewBoard(tiles []Tile) (*Board, error) {
	if len(tiles) == 0 {
		return nil, ErrEmptyBoard
	}
	b := &Board{tiles: make([]Tile, len(tiles))}
	copy(b.tiles, tiles)
	return b, nil
}

// Len returns the number of tiles.
func (b *Board) Len() int {
	return len(b.tiles)
}

// Wrap folds any index, including negative ones, onto the board.
func (b *Board) Wrap(i int) int {
	n := len(b.tiles)
	return ((i % n) + n) % n
}

// Tile returns the tile at i after wrapping.
func (b *Board) Tile(i int) Tile {
	return b.tiles[b.Wrap(i)]
}

// Tiles returns a copy of the board layout.
func (b *Board) Tiles() []Tile {
	out := make([]Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}
