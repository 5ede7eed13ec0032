package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/hexgolf/game/engine"
	"github.com/wricardo/hexgolf/game/scores"
	"github.com/wricardo/hexgolf/game/service"
)

func formatSessionInfo(session *service.SessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session: %s\n", session.ID)
	if session.Course != nil {
		fmt.Fprintf(&b, "Course: %s (%s), par %d\n", session.Course.Name, session.Course.ID, session.Course.Par)
		if session.Course.Description != "" {
			fmt.Fprintf(&b, "  %s\n", session.Course.Description)
		}
	} else {
		fmt.Fprintf(&b, "Course: %s\n", session.CourseID)
	}
	fmt.Fprintf(&b, "Created: %s\nLast accessed: %s\n\n",
		session.CreatedAt.Format("2006-01-02 15:04:05"), session.LastAccessedAt.Format("2006-01-02 15:04:05"))
	b.WriteString(formatRoundState(session.RoundState))
	return b.String()
}

func formatRoundState(state *engine.RoundState) string {
	if state == nil {
		return "Round state: unavailable"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s (par %d)\n", state.CourseName, state.Par)
	fmt.Fprintf(&b, "Ball: %s\n", state.BallPosition)
	fmt.Fprintf(&b, "Hole: %s (range %d)\n", state.HolePosition, engine.RangeDistance(state.BallPosition, state.HolePosition))
	fmt.Fprintf(&b, "Strokes: %d\n", state.StrokeCount)
	if state.SelectedClub != "" {
		fmt.Fprintf(&b, "Selected club: %s\n", state.SelectedClub)
	}

	if state.Complete {
		fmt.Fprintf(&b, "\n⛳ HOLE COMPLETE: %s (%s)\n",
			engine.ScoreName(state.StrokeCount, state.Par), engine.ScoreToParLabel(state.StrokeCount, state.Par))
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", state.Message)
	}
	return b.String()
}

func formatClubs(clubs []engine.Club) string {
	var b strings.Builder
	b.WriteString("Club Bag:\n\n")
	for _, club := range clubs {
		fmt.Fprintf(&b, "• %-8s distance %d, accuracy %d\n", club.Name, club.Distance, club.Accuracy)
	}
	return b.String()
}

func formatTargets(result *service.TargetsResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s from %s (distance %d, accuracy %d)\n",
		result.Club.Name, result.Origin, result.Club.Distance, result.Club.Accuracy)

	if len(result.Targets) == 0 {
		b.WriteString("No targets in range.\n")
		return b.String()
	}

	var hole engine.HexCoord
	if result.RoundState != nil {
		hole = result.RoundState.HolePosition
	}

	fmt.Fprintf(&b, "Targets (%d):\n", len(result.Targets))
	for _, t := range result.Targets {
		marker := ""
		if result.RoundState != nil && t.Coord == hole {
			marker = " ⛳"
		}
		fmt.Fprintf(&b, "  %s need %d+ (to hole: %d)%s\n", t.Coord, t.RequiredRoll, engine.RangeDistance(t.Coord, hole), marker)
	}
	return b.String()
}

func formatShotResult(result *service.ShotResult) string {
	var b strings.Builder

	if shot := result.Shot; shot != nil {
		status := "✓ Shot hit"
		if !result.Success {
			status = "✗ Shot missed"
		}
		fmt.Fprintf(&b, "%s: stroke %d with %s at %s\n", status, shot.StrokeNumber, shot.Club, shot.Target)
		fmt.Fprintf(&b, "Accuracy roll: %d (needed %d)\n", shot.AccuracyRoll, shot.RequiredRoll)
		fmt.Fprintf(&b, "Direction roll: %d (deviation %+d)\n", shot.DirectionRoll, shot.Deviation)
	}

	for _, event := range result.Events {
		if event.Type == service.EventShot {
			continue
		}
		fmt.Fprintf(&b, "• %s\n", event.Message)
	}

	if result.RoundState != nil {
		b.WriteString("\n")
		b.WriteString(formatRoundState(result.RoundState))
	}

	if result.Score != nil {
		fmt.Fprintf(&b, "Score recorded: %d on par %d\n", result.Score.Score, result.Score.Par)
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Shot History (Page %d/%d), Total: %d\n\n", history.Page, history.TotalPages, history.TotalShots)

	if len(history.Shots) == 0 {
		b.WriteString("(no shots yet)\n")
		return b.String()
	}

	for _, shot := range history.Shots {
		status := "✓"
		if !shot.Success {
			status = "✗"
		}
		landing := shot.From
		if shot.Success {
			landing = shot.Landing
		}
		fmt.Fprintf(&b, "%d. %s %s->%s roll %d/%d dir %d %s ball at %s\n",
			shot.StrokeNumber, shot.Club, shot.From, shot.Target, shot.AccuracyRoll, shot.RequiredRoll,
			shot.DirectionRoll, status, landing)
	}
	return b.String()
}

func formatScores(records []scores.Record, summaries []scores.Summary) string {
	var b strings.Builder

	b.WriteString("Course Bests:\n")
	if len(summaries) == 0 {
		b.WriteString("  (no completed holes yet)\n")
	}
	for _, s := range summaries {
		fmt.Fprintf(&b, "  %s: best %d (%s), average %.1f over %d rounds\n",
			s.CourseName, s.BestScore, engine.ScoreToParLabel(s.BestScore, s.Par), s.AverageScore, s.Rounds)
	}

	b.WriteString("\nRecent Holes:\n")
	if len(records) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, r := range records {
		fmt.Fprintf(&b, "  %s %s: %d strokes, %s (session %s)\n",
			r.CompletedAt.Format("2006-01-02 15:04"), r.CourseName, r.Score, engine.ScoreName(r.Score, r.Par), r.SessionID)
	}
	return b.String()
}

// describeTile explains the terrain at coord and what it means for a shot
func describeTile(session *service.SessionInfo, coord engine.HexCoord) string {
	course := session.Course
	kind, onCourse := course.TerrainAt(coord)

	var b strings.Builder
	fmt.Fprintf(&b, "Hex %s on %s:\n", coord, course.Name)

	if !onCourse {
		b.WriteString("Not part of the course. Never a target; drift toward it falls back to the target.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Terrain: %s\n", kind)
	if engine.IsLandable(kind) {
		b.WriteString("Landable: yes\n")
		if penalty := engine.TerrainPenalty(kind); penalty > 0 {
			fmt.Fprintf(&b, "Required roll is %d lower than the club's accuracy\n", penalty)
		}
	} else {
		b.WriteString("Landable: no (water hazard)\n")
	}

	if state := session.RoundState; state != nil {
		fmt.Fprintf(&b, "Range from ball %s: %d\n", state.BallPosition, engine.RangeDistance(state.BallPosition, coord))
		if coord == state.BallPosition {
			b.WriteString("The ball is here.\n")
		}
		if coord == state.HolePosition {
			b.WriteString("This is the hole.\n")
		}
	}
	return b.String()
}
