package engine

import "fmt"

// ComputeValidTargets enumerates every hex the club can be aimed at from
// origin, with the accuracy roll each one requires.
//
// Candidates are all offsets with |dx|+|dy| <= club.Distance, scanned with dx
// ascending then dy ascending, so the result order is stable. Off-course
// coordinates and water tiles are dropped. The required roll is the club's
// accuracy less the terrain penalty, clamped to [1,6].
func ComputeValidTargets(course TileLookup, origin HexCoord, club Club) ([]TargetOption, error) {
	if club.Distance < 1 {
		return nil, fmt.Errorf("%w: %s has distance %d", ErrInvalidClub, club.Name, club.Distance)
	}

	d := club.Distance
	var targets []TargetOption
	for dx := -d; dx <= d; dx++ {
		for dy := -d; dy <= d; dy++ {
			if abs(dx)+abs(dy) > d {
				continue
			}

			coord := HexCoord{Q: origin.Q + dx, R: origin.R + dy}
			kind, ok := course.TerrainAt(coord)
			if !ok || !IsLandable(kind) {
				continue
			}

			targets = append(targets, TargetOption{
				Coord:        coord,
				RequiredRoll: RequiredRoll(club, kind),
			})
		}
	}

	return targets, nil
}

// RequiredRoll returns the accuracy roll needed to hit terrain of the given
// kind with club
func RequiredRoll(club Club, kind TerrainKind) int {
	return clampRoll(club.Accuracy - TerrainPenalty(kind))
}

// FindTarget returns the option at coord, if offered
func FindTarget(targets []TargetOption, coord HexCoord) (TargetOption, bool) {
	for _, t := range targets {
		if t.Coord == coord {
			return t, true
		}
	}
	return TargetOption{}, false
}

func clampRoll(v int) int {
	if v < MinRoll {
		return MinRoll
	}
	if v > MaxRoll {
		return MaxRoll
	}
	return v
}
