package engine

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEngine(t *testing.T) {
	eng, err := NewEngine(ClassicCourse())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	state := eng.GetState()
	if state.BallPosition != (HexCoord{-4, 2}) {
		t.Errorf("Expected ball at tee (-4,2), got %s", state.BallPosition)
	}
	if state.HolePosition != (HexCoord{4, -2}) {
		t.Errorf("Expected hole at (4,-2), got %s", state.HolePosition)
	}
	if state.StrokeCount != 0 {
		t.Errorf("Expected 0 strokes, got %d", state.StrokeCount)
	}
	if state.Phase != PhaseIdle {
		t.Errorf("Expected phase idle, got %s", state.Phase)
	}
	if state.Complete {
		t.Error("New round should not be complete")
	}
	if len(eng.Clubs()) != 4 {
		t.Errorf("Expected default bag of 4 clubs, got %d", len(eng.Clubs()))
	}
}

func TestNewEngine_InvalidCourse(t *testing.T) {
	course := ClassicCourse()
	course.Par = 0

	if _, err := NewEngine(course); !errors.Is(err, ErrInvalidCourse) {
		t.Errorf("Expected ErrInvalidCourse, got %v", err)
	}
}

func TestSelectClub(t *testing.T) {
	eng := NewEngineWithDefaults()

	targets, err := eng.SelectClub("driver")
	if err != nil {
		t.Fatalf("Failed to select club: %v", err)
	}
	if len(targets) != 6 {
		t.Errorf("Expected 6 driver targets from the tee, got %d", len(targets))
	}

	state := eng.GetState()
	if state.SelectedClub != "Driver" {
		t.Errorf("Expected canonical club name Driver, got %q", state.SelectedClub)
	}
	if state.Phase != PhaseClubSelected {
		t.Errorf("Expected phase club_selected, got %s", state.Phase)
	}

	if _, err := eng.SelectClub("Sand Wedge"); !errors.Is(err, ErrUnknownClub) {
		t.Errorf("Expected ErrUnknownClub, got %v", err)
	}
	// A failed selection keeps the previous one
	if eng.GetState().SelectedClub != "Driver" {
		t.Errorf("Expected Driver to remain selected, got %q", eng.GetState().SelectedClub)
	}
}

func TestSelectTarget(t *testing.T) {
	eng := NewEngineWithDefaults()

	if _, err := eng.SelectTarget(HexCoord{-3, 1}); !errors.Is(err, ErrNoClubSelected) {
		t.Errorf("Expected ErrNoClubSelected, got %v", err)
	}

	if _, err := eng.SelectClub("Wedge"); err != nil {
		t.Fatalf("Failed to select club: %v", err)
	}

	if _, err := eng.SelectTarget(HexCoord{-2, 1}); !errors.Is(err, ErrTargetNotOffered) {
		t.Errorf("Expected ErrTargetNotOffered for out-of-range target, got %v", err)
	}

	target, err := eng.SelectTarget(HexCoord{-3, 2})
	if err != nil {
		t.Fatalf("Failed to select target: %v", err)
	}
	if target.RequiredRoll != 3 {
		t.Errorf("Expected wedge into rough to need 3, got %d", target.RequiredRoll)
	}
	if eng.GetState().Phase != PhaseTargetSelected {
		t.Errorf("Expected phase target_selected, got %s", eng.GetState().Phase)
	}
}

func TestShoot_RequiresSelection(t *testing.T) {
	eng := NewEngineWithDefaults()

	if _, err := eng.Shoot(4, 3); !errors.Is(err, ErrNoClubSelected) {
		t.Errorf("Expected ErrNoClubSelected, got %v", err)
	}

	if _, err := eng.SelectClub("Driver"); err != nil {
		t.Fatalf("Failed to select club: %v", err)
	}
	if _, err := eng.Shoot(4, 3); !errors.Is(err, ErrTargetNotOffered) {
		t.Errorf("Expected ErrTargetNotOffered without a target, got %v", err)
	}
}

func TestTakeShot_Miss(t *testing.T) {
	eng := NewEngineWithDefaults()

	record, err := eng.TakeShot("Driver", HexCoord{-3, 1}, 1, 3)
	if err != nil {
		t.Fatalf("TakeShot returned error: %v", err)
	}

	if record.Success {
		t.Error("Expected a miss with roll 1 against required 2")
	}
	if record.StrokeNumber != 1 {
		t.Errorf("Expected stroke number 1, got %d", record.StrokeNumber)
	}

	state := eng.GetState()
	if state.StrokeCount != 1 {
		t.Errorf("Expected a missed shot to count as a stroke, got %d", state.StrokeCount)
	}
	if state.BallPosition != (HexCoord{-4, 2}) {
		t.Errorf("Expected ball to stay at the tee, got %s", state.BallPosition)
	}
	if len(state.MoveHistory) != 1 {
		t.Errorf("Expected 1 history entry, got %d", len(state.MoveHistory))
	}
	if state.SelectedClub != "" || state.SelectedTarget != nil || state.Phase != PhaseIdle {
		t.Error("Expected selection to be cleared after the shot")
	}
	if !strings.Contains(state.Message, "Missed") {
		t.Errorf("Expected miss message, got %q", state.Message)
	}
}

func TestTakeShot_HitWithDrift(t *testing.T) {
	eng := NewEngineWithDefaults()

	record, err := eng.TakeShot("Driver", HexCoord{-3, 2}, 1, 1)
	if err != nil {
		t.Fatalf("TakeShot returned error: %v", err)
	}

	if !record.Success {
		t.Error("Expected success with roll 1 against required 1")
	}
	if record.Landing != (HexCoord{-3, 1}) {
		t.Errorf("Expected drift onto (-3,1), got %s", record.Landing)
	}
	if eng.GetBallPosition() != (HexCoord{-3, 1}) {
		t.Errorf("Expected ball at (-3,1), got %s", eng.GetBallPosition())
	}
	if record.Deviation != -1 {
		t.Errorf("Expected deviation -1, got %d", record.Deviation)
	}
}

func TestTakeShot_InvalidRollLeavesStateUntouched(t *testing.T) {
	eng := NewEngineWithDefaults()

	if _, err := eng.TakeShot("Driver", HexCoord{-3, 1}, 7, 3); !errors.Is(err, ErrInvalidRoll) {
		t.Fatalf("Expected ErrInvalidRoll, got %v", err)
	}

	state := eng.GetState()
	if state.StrokeCount != 0 || len(state.MoveHistory) != 0 {
		t.Error("Expected no stroke to be recorded for invalid dice")
	}
	if state.SelectedClub != "" {
		t.Errorf("Expected no club to be selected, got %q", state.SelectedClub)
	}
}

func TestTakeShot_RejectedShotKeepsSelection(t *testing.T) {
	eng := NewEngineWithDefaults()

	wedgeTargets, err := eng.SelectClub("Wedge")
	if err != nil {
		t.Fatalf("Failed to select club: %v", err)
	}

	// Driver is a valid club but (9,9) is off the course
	if _, err := eng.TakeShot("Driver", HexCoord{9, 9}, 6, 3); !errors.Is(err, ErrTargetNotOffered) {
		t.Fatalf("Expected ErrTargetNotOffered, got %v", err)
	}
	if _, err := eng.TakeShot("Sand Wedge", HexCoord{-3, 2}, 6, 3); !errors.Is(err, ErrUnknownClub) {
		t.Fatalf("Expected ErrUnknownClub, got %v", err)
	}

	state := eng.GetState()
	if state.SelectedClub != "Wedge" {
		t.Errorf("Expected Wedge to remain selected, got %q", state.SelectedClub)
	}
	if state.Phase != PhaseClubSelected {
		t.Errorf("Expected phase club_selected, got %s", state.Phase)
	}
	if state.SelectedTarget != nil {
		t.Errorf("Expected no target selected, got %s", *state.SelectedTarget)
	}
	if len(eng.ValidTargets()) != len(wedgeTargets) {
		t.Errorf("Expected %d wedge targets, got %d", len(wedgeTargets), len(eng.ValidTargets()))
	}
	if state.StrokeCount != 0 {
		t.Errorf("Expected no stroke recorded, got %d", state.StrokeCount)
	}

	// The kept selection is still usable
	if _, err := eng.TakeShot("", HexCoord{-3, 2}, 6, 3); err != nil {
		t.Fatalf("Expected wedge shot to succeed, got %v", err)
	}
}

func TestTakeShot_CompletesHole(t *testing.T) {
	eng, err := NewEngine(IslandCourse())
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}

	if _, err := eng.TakeShot("Driver", HexCoord{1, 0}, 6, 3); err != nil {
		t.Fatalf("Approach shot failed: %v", err)
	}
	if eng.IsComplete() {
		t.Fatal("Round should not be complete on the green")
	}

	record, err := eng.TakeShot("Putter", HexCoord{2, 0}, 5, 4)
	if err != nil {
		t.Fatalf("Putt failed: %v", err)
	}
	if !record.Success {
		t.Fatal("Expected putt to drop")
	}

	if !eng.IsComplete() {
		t.Error("Expected round to be complete")
	}
	if eng.GetStrokes() != 2 {
		t.Errorf("Expected 2 strokes, got %d", eng.GetStrokes())
	}
	if eng.ScoreToPar() != -1 {
		t.Errorf("Expected -1 to par, got %d", eng.ScoreToPar())
	}
	state := eng.GetState()
	if state.Phase != PhaseComplete {
		t.Errorf("Expected phase complete, got %s", state.Phase)
	}
	if !strings.Contains(state.Message, "Birdie") {
		t.Errorf("Expected birdie message, got %q", state.Message)
	}

	if _, err := eng.SelectClub("Putter"); !errors.Is(err, ErrRoundComplete) {
		t.Errorf("Expected ErrRoundComplete from SelectClub, got %v", err)
	}
	if _, err := eng.TakeShot("Putter", HexCoord{1, 0}, 5, 4); !errors.Is(err, ErrRoundComplete) {
		t.Errorf("Expected ErrRoundComplete from TakeShot, got %v", err)
	}
}

func TestReset(t *testing.T) {
	eng := NewEngineWithDefaults()

	if _, err := eng.TakeShot("Driver", HexCoord{-3, 2}, 6, 3); err != nil {
		t.Fatalf("TakeShot failed: %v", err)
	}
	if _, err := eng.SelectClub("Iron"); err != nil {
		t.Fatalf("SelectClub failed: %v", err)
	}

	state := eng.Reset()
	if state.StrokeCount != 0 {
		t.Errorf("Expected 0 strokes after reset, got %d", state.StrokeCount)
	}
	if state.BallPosition != (HexCoord{-4, 2}) {
		t.Errorf("Expected ball at tee after reset, got %s", state.BallPosition)
	}
	if len(state.MoveHistory) != 0 {
		t.Errorf("Expected empty history after reset, got %d", len(state.MoveHistory))
	}
	if state.SelectedClub != "" || len(eng.ValidTargets()) != 0 {
		t.Error("Expected no selection after reset")
	}
}

func TestSetState(t *testing.T) {
	eng := NewEngineWithDefaults()

	if err := eng.SetState(nil); err == nil {
		t.Error("Expected error for nil state")
	}

	offBoard := InitRoundState(ClassicCourse())
	offBoard.BallPosition = HexCoord{10, 10}
	if err := eng.SetState(offBoard); err == nil {
		t.Error("Expected error for ball off the course")
	}

	restored := InitRoundState(ClassicCourse())
	restored.SelectedClub = "Driver"
	restored.Phase = PhaseClubSelected
	if err := eng.SetState(restored); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if len(eng.ValidTargets()) != 6 {
		t.Errorf("Expected targets to be recomputed for Driver, got %d", len(eng.ValidTargets()))
	}

	unknown := InitRoundState(ClassicCourse())
	unknown.SelectedClub = "Spoon"
	unknown.Phase = PhaseClubSelected
	if err := eng.SetState(unknown); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	if eng.GetState().SelectedClub != "" || eng.GetState().Phase != PhaseIdle {
		t.Error("Expected unknown club selection to be dropped")
	}
}

func TestShotHistoryAndStats(t *testing.T) {
	eng := NewEngineWithDefaults()

	if eng.GetLastShot() != nil {
		t.Error("Expected no last shot on a new round")
	}

	shots := []struct {
		club   string
		target HexCoord
		acc    int
	}{
		{"Driver", HexCoord{-3, 1}, 1}, // miss
		{"Driver", HexCoord{-3, 1}, 2}, // hit
		{"Iron", HexCoord{-2, 0}, 3},   // hit
	}
	for _, s := range shots {
		if _, err := eng.TakeShot(s.club, s.target, s.acc, 3); err != nil {
			t.Fatalf("TakeShot %s to %s failed: %v", s.club, s.target, err)
		}
	}

	history := eng.GetShotHistory()
	if len(history) != 3 {
		t.Fatalf("Expected 3 shots, got %d", len(history))
	}
	if last := eng.GetLastShot(); last == nil || last.StrokeNumber != 3 {
		t.Errorf("Expected last shot to be stroke 3, got %v", last)
	}
	if history[2].From != (HexCoord{-3, 1}) {
		t.Errorf("Expected third shot from (-3,1), got %s", history[2].From)
	}

	stats := eng.Stats()
	if stats.Strokes != 3 || stats.SuccessfulShots != 2 || stats.MissedShots != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AccuracyPercent != 67 {
		t.Errorf("Expected 67%% accuracy, got %d", stats.AccuracyPercent)
	}
	if stats.ShotsByClub["Driver"] != 2 || stats.ShotsByClub["Iron"] != 1 {
		t.Errorf("Unexpected club counts: %v", stats.ShotsByClub)
	}
}
