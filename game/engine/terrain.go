package engine

// terrainPenalty is how much each terrain lowers the required accuracy roll.
// Kinds not listed impose no penalty.
var terrainPenalty = map[TerrainKind]int{
	Rough:  1,
	Bunker: 2,
}

var knownTerrain = map[TerrainKind]bool{
	Tee:     true,
	Fairway: true,
	Rough:   true,
	Bunker:  true,
	Water:   true,
	Green:   true,
	Hole:    true,
}

// TerrainPenalty returns the required-roll reduction for a terrain kind
func TerrainPenalty(kind TerrainKind) int {
	return terrainPenalty[kind]
}

// IsValidTerrain reports whether kind is one of the known terrain kinds
func IsValidTerrain(kind TerrainKind) bool {
	return knownTerrain[kind]
}

// IsLandable reports whether a ball may come to rest on this terrain
func IsLandable(kind TerrainKind) bool {
	return kind != Water
}

// TileLookup answers which terrain, if any, sits at a coordinate.
// A missing coordinate is off-course.
type TileLookup interface {
	TerrainAt(coord HexCoord) (TerrainKind, bool)
}

// Board is an indexed, read-only view of a course's tiles
type Board map[HexCoord]TerrainKind

// NewBoard indexes tiles by coordinate. Later duplicates win.
func NewBoard(tiles []Tile) Board {
	b := make(Board, len(tiles))
	for _, t := range tiles {
		b[t.HexCoord] = t.Terrain
	}
	return b
}

// TerrainAt implements TileLookup
func (b Board) TerrainAt(coord HexCoord) (TerrainKind, bool) {
	kind, ok := b[coord]
	return kind, ok
}

// TerrainAt implements TileLookup with a linear scan. Use Board for
// repeated lookups.
func (c *Course) TerrainAt(coord HexCoord) (TerrainKind, bool) {
	for _, t := range c.Tiles {
		if t.HexCoord == coord {
			return t.Terrain, true
		}
	}
	return "", false
}

// Board builds an indexed view of the course
func (c *Course) Board() Board {
	return NewBoard(c.Tiles)
}

// isLandableAt reports whether coord is an existing, non-water tile
func isLandableAt(course TileLookup, coord HexCoord) bool {
	kind, ok := course.TerrainAt(coord)
	return ok && IsLandable(kind)
}
