package engine

import (
	"errors"
	"testing"
)

func TestDirectionDeviation(t *testing.T) {
	expected := map[int]int{1: -1, 2: -1, 3: 0, 4: 0, 5: 1, 6: 1}
	for roll, want := range expected {
		if got := DirectionDeviation(roll); got != want {
			t.Errorf("DirectionDeviation(%d): expected %d, got %d", roll, want, got)
		}
	}
}

func TestResolveShot_RoughHitFromTee(t *testing.T) {
	course := ClassicCourse()
	target := TargetOption{Coord: HexCoord{-3, 2}, RequiredRoll: 1}

	outcome, err := ResolveShot(course, course.Start, target, 1, 4)
	if err != nil {
		t.Fatalf("ResolveShot returned error: %v", err)
	}

	if !outcome.Success {
		t.Error("Expected shot to succeed with accuracy 1 against required 1")
	}
	if outcome.Landing != target.Coord {
		t.Errorf("Expected landing %s, got %s", target.Coord, outcome.Landing)
	}
	if outcome.Deviation != 0 || outcome.Drifted {
		t.Errorf("Expected straight shot, got deviation %d drifted %v", outcome.Deviation, outcome.Drifted)
	}
}

func TestResolveShot_SuccessBoundary(t *testing.T) {
	course := ClassicCourse()
	target := TargetOption{Coord: HexCoord{-3, 1}, RequiredRoll: 2}

	tests := []struct {
		accuracy int
		success  bool
	}{
		{1, false},
		{2, true},
		{3, true},
		{6, true},
	}

	for _, tt := range tests {
		outcome, err := ResolveShot(course, course.Start, target, tt.accuracy, 3)
		if err != nil {
			t.Fatalf("accuracy %d: unexpected error: %v", tt.accuracy, err)
		}
		if outcome.Success != tt.success {
			t.Errorf("accuracy %d: expected success=%v, got %v", tt.accuracy, tt.success, outcome.Success)
		}
		// The landing is computed whether or not the shot succeeds
		if outcome.Landing != target.Coord {
			t.Errorf("accuracy %d: expected landing %s, got %s", tt.accuracy, target.Coord, outcome.Landing)
		}
	}
}

func TestResolveShot_Drift(t *testing.T) {
	tests := []struct {
		name    string
		course  *Course
		origin  HexCoord
		target  HexCoord
		dir     int
		landing HexCoord
		drifted bool
	}{
		// |dx| > |dy| drifts along R
		{"east drift left onto fairway", ClassicCourse(), HexCoord{-4, 2}, HexCoord{-3, 2}, 1, HexCoord{-3, 1}, true},
		{"east drift right off course", ClassicCourse(), HexCoord{-4, 2}, HexCoord{-3, 2}, 6, HexCoord{-3, 2}, false},
		{"long drive drifts into water", ClassicCourse(), HexCoord{-3, 1}, HexCoord{-1, 0}, 5, HexCoord{-1, 0}, false},
		// |dx| == |dy| drifts along Q
		{"diagonal drift into bunker", ClassicCourse(), HexCoord{-4, 2}, HexCoord{-3, 1}, 6, HexCoord{-2, 1}, true},
		{"diagonal drift into rough", ClassicCourse(), HexCoord{-4, 2}, HexCoord{-3, 1}, 2, HexCoord{-4, 1}, true},
		// |dx| < |dy| drifts along Q
		{"south drift right into rough", DoglegCourse(), HexCoord{0, 0}, HexCoord{0, 2}, 6, HexCoord{1, 2}, true},
		{"south drift left into bunker", DoglegCourse(), HexCoord{0, 0}, HexCoord{0, 2}, 1, HexCoord{-1, 2}, true},
		{"south drift into water", DoglegCourse(), HexCoord{0, -1}, HexCoord{0, 0}, 5, HexCoord{0, 0}, false},
		{"straight roll", DoglegCourse(), HexCoord{0, 0}, HexCoord{0, 2}, 3, HexCoord{0, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := ResolveShotWithClub(tt.course, tt.origin, driver, tt.target, 6, tt.dir)
			if err != nil {
				t.Fatalf("ResolveShotWithClub returned error: %v", err)
			}
			if outcome.Landing != tt.landing {
				t.Errorf("Expected landing %s, got %s", tt.landing, outcome.Landing)
			}
			if outcome.Drifted != tt.drifted {
				t.Errorf("Expected drifted=%v, got %v", tt.drifted, outcome.Drifted)
			}
			if outcome.Target != tt.target {
				t.Errorf("Expected target %s, got %s", tt.target, outcome.Target)
			}
		})
	}
}

func TestResolveShot_IslandWaterFallback(t *testing.T) {
	course := IslandCourse()
	club := Club{Name: "Long Iron", Distance: 3, Accuracy: 4}

	targets, err := ComputeValidTargets(course, course.Start, club)
	if err != nil {
		t.Fatalf("ComputeValidTargets returned error: %v", err)
	}
	green, ok := FindTarget(targets, HexCoord{1, 0})
	if !ok {
		t.Fatal("Expected the green to be offered")
	}
	if green.RequiredRoll != 4 {
		t.Errorf("Expected required roll 4, got %d", green.RequiredRoll)
	}

	for _, dir := range []int{1, 5} {
		outcome, err := ResolveShot(course, course.Start, green, 4, dir)
		if err != nil {
			t.Fatalf("dir %d: ResolveShot returned error: %v", dir, err)
		}
		if !outcome.Success {
			t.Errorf("dir %d: expected success", dir)
		}
		if outcome.Landing != green.Coord {
			t.Errorf("dir %d: expected fallback to %s, got %s", dir, green.Coord, outcome.Landing)
		}
		if outcome.Drifted {
			t.Errorf("dir %d: expected drift to be discarded", dir)
		}
	}
}

func TestResolveShot_InvalidRolls(t *testing.T) {
	course := ClassicCourse()
	target := TargetOption{Coord: HexCoord{-3, 1}, RequiredRoll: 2}

	tests := []struct {
		name     string
		accuracy int
		dir      int
	}{
		{"accuracy zero", 0, 3},
		{"accuracy seven", 7, 3},
		{"direction zero", 3, 0},
		{"direction seven", 3, 7},
		{"both negative", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveShot(course, course.Start, target, tt.accuracy, tt.dir)
			if !errors.Is(err, ErrInvalidRoll) {
				t.Errorf("Expected ErrInvalidRoll, got %v", err)
			}
		})
	}
}

func TestResolveShot_TargetNotOffered(t *testing.T) {
	course := ClassicCourse()

	tests := []struct {
		name   string
		target TargetOption
	}{
		{"water", TargetOption{Coord: HexCoord{-1, 1}, RequiredRoll: 2}},
		{"off course", TargetOption{Coord: HexCoord{9, 9}, RequiredRoll: 2}},
		{"zero required roll", TargetOption{Coord: HexCoord{-3, 1}, RequiredRoll: 0}},
		{"required roll above six", TargetOption{Coord: HexCoord{-3, 1}, RequiredRoll: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveShot(course, course.Start, tt.target, 6, 3)
			if !errors.Is(err, ErrTargetNotOffered) {
				t.Errorf("Expected ErrTargetNotOffered, got %v", err)
			}
		})
	}
}

func TestResolveShotWithClub_OutOfRange(t *testing.T) {
	course := ClassicCourse()

	_, err := ResolveShotWithClub(course, course.Start, Club{Name: "Wedge", Distance: 1, Accuracy: 4}, HexCoord{-3, 1}, 6, 3)
	if !errors.Is(err, ErrTargetNotOffered) {
		t.Errorf("Expected ErrTargetNotOffered for a target beyond wedge range, got %v", err)
	}

	_, err = ResolveShotWithClub(course, course.Start, Club{Name: "Broken"}, HexCoord{-3, 1}, 6, 3)
	if !errors.Is(err, ErrInvalidClub) {
		t.Errorf("Expected ErrInvalidClub, got %v", err)
	}
}

func TestResolveShot_Invariants(t *testing.T) {
	for _, course := range DefaultCourses() {
		board := course.Board()
		for _, origin := range course.Tiles {
			for _, club := range DefaultClubs() {
				targets, _ := ComputeValidTargets(board, origin.HexCoord, club)
				for _, target := range targets {
					for acc := MinRoll; acc <= MaxRoll; acc++ {
						for dir := MinRoll; dir <= MaxRoll; dir++ {
							outcome, err := ResolveShot(board, origin.HexCoord, target, acc, dir)
							if err != nil {
								t.Fatalf("%s: unexpected error: %v", course.ID, err)
							}

							if outcome.Success != (acc >= target.RequiredRoll) {
								t.Errorf("%s: success=%v for acc %d vs required %d", course.ID, outcome.Success, acc, target.RequiredRoll)
							}
							if !isLandableAt(board, outcome.Landing) {
								t.Errorf("%s: landing %s is not landable", course.ID, outcome.Landing)
							}
							offset := outcome.Landing.Sub(target.Coord)
							if abs(offset.Q)+abs(offset.R) > 1 {
								t.Errorf("%s: landing %s drifted more than one hex from %s", course.ID, outcome.Landing, target.Coord)
							}
							if outcome.Drifted != (outcome.Landing != target.Coord) {
								t.Errorf("%s: drifted flag %v inconsistent with landing %s", course.ID, outcome.Drifted, outcome.Landing)
							}

							again, _ := ResolveShot(board, origin.HexCoord, target, acc, dir)
							if again != outcome {
								t.Errorf("%s: resolution is not deterministic", course.ID)
							}
						}
					}
				}
			}
		}
	}
}
