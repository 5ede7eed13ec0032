package engine

import (
	"fmt"
	"math"
)

// RoundStats summarizes the shots of a round
type RoundStats struct {
	Strokes         int            `json:"strokes"`
	SuccessfulShots int            `json:"successful_shots"`
	MissedShots     int            `json:"missed_shots"`
	AccuracyPercent int            `json:"accuracy_percent"`
	ShotsByClub     map[string]int `json:"shots_by_club"`
}

// ComputeRoundStats counts successes and club usage over a shot history
func ComputeRoundStats(history []ShotRecord) RoundStats {
	stats := RoundStats{
		Strokes:     len(history),
		ShotsByClub: make(map[string]int),
	}

	for _, shot := range history {
		if shot.Success {
			stats.SuccessfulShots++
		}
		stats.ShotsByClub[shot.Club]++
	}
	stats.MissedShots = stats.Strokes - stats.SuccessfulShots

	if stats.Strokes > 0 {
		stats.AccuracyPercent = int(math.Round(float64(stats.SuccessfulShots) / float64(stats.Strokes) * 100))
	}

	return stats
}

// ScoreToParLabel renders a score relative to par: "E", "+2", "-1"
func ScoreToParLabel(score, par int) string {
	diff := score - par
	switch {
	case diff == 0:
		return "E"
	case diff > 0:
		return fmt.Sprintf("+%d", diff)
	default:
		return fmt.Sprintf("%d", diff)
	}
}

// ScoreName returns the golf name for a hole score. Results past Albatross
// or Double Bogey fall back to the to-par label.
func ScoreName(score, par int) string {
	switch score - par {
	case -3:
		return "Albatross"
	case -2:
		return "Eagle"
	case -1:
		return "Birdie"
	case 0:
		return "Par"
	case 1:
		return "Bogey"
	case 2:
		return "Double Bogey"
	}
	return ScoreToParLabel(score, par)
}

// CountTerrain counts the tiles of each terrain kind on a course
func CountTerrain(course *Course) map[TerrainKind]int {
	counts := make(map[TerrainKind]int)
	for _, t := range course.Tiles {
		counts[t.Terrain]++
	}
	return counts
}

// NearestTarget picks the option closest to the hole, breaking ties by the
// lower required roll and then by scan order.
func NearestTarget(targets []TargetOption, hole HexCoord) (TargetOption, bool) {
	if len(targets) == 0 {
		return TargetOption{}, false
	}

	best := targets[0]
	bestDist := RangeDistance(best.Coord, hole)
	for _, t := range targets[1:] {
		d := RangeDistance(t.Coord, hole)
		if d < bestDist || (d == bestDist && t.RequiredRoll < best.RequiredRoll) {
			best, bestDist = t, d
		}
	}
	return best, true
}
