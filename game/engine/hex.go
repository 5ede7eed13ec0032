package engine

import "fmt"

// HexCoord is a position on the course in axial coordinates.
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Add returns h offset by o
func (h HexCoord) Add(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q + o.Q, R: h.R + o.R}
}

// Sub returns the offset from o to h
func (h HexCoord) Sub(o HexCoord) HexCoord {
	return HexCoord{Q: h.Q - o.Q, R: h.R - o.R}
}

// String renders the coordinate as "(q,r)"
func (h HexCoord) String() string {
	return fmt.Sprintf("(%d,%d)", h.Q, h.R)
}

// RangeDistance is the shot range metric between two hexes: the sum of the
// absolute offsets along the two stored axes. Club distance is compared
// against this value, not against the cube distance.
func RangeDistance(from, to HexCoord) int {
	d := to.Sub(from)
	return abs(d.Q) + abs(d.R)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
