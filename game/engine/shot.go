package engine

import "fmt"

// DirectionDeviation maps a direction roll to a lateral offset:
// 1-2 is -1, 3-4 is 0 and 5-6 is +1.
func DirectionDeviation(directionRoll int) int {
	switch {
	case directionRoll <= 2:
		return -1
	case directionRoll >= 5:
		return 1
	default:
		return 0
	}
}

// ResolveShot resolves one stroke at target from origin using two die values
// rolled by the caller.
//
// The shot succeeds when accuracyRoll >= target.RequiredRoll. The landing hex
// is always computed, even on a miss: the direction roll's deviation is added
// to the shorter axis of travel (R when |dx| > |dy|, Q otherwise), and if that
// hex is off-course or water the landing falls back to the target itself.
// Whether the landing is applied is left to the caller.
//
// Errors:
//   - ErrInvalidRoll when either roll is outside [1,6]
//   - ErrTargetNotOffered when the target is not a landable tile or carries
//     a required roll outside [1,6]
func ResolveShot(course TileLookup, origin HexCoord, target TargetOption, accuracyRoll, directionRoll int) (ShotOutcome, error) {
	if !validRoll(accuracyRoll) || !validRoll(directionRoll) {
		return ShotOutcome{}, fmt.Errorf("%w: accuracy=%d direction=%d", ErrInvalidRoll, accuracyRoll, directionRoll)
	}
	if !validRoll(target.RequiredRoll) || !isLandableAt(course, target.Coord) {
		return ShotOutcome{}, fmt.Errorf("%w: %s", ErrTargetNotOffered, target.Coord)
	}

	outcome := ShotOutcome{
		Success:       accuracyRoll >= target.RequiredRoll,
		Target:        target.Coord,
		Landing:       target.Coord,
		AccuracyRoll:  accuracyRoll,
		DirectionRoll: directionRoll,
		Deviation:     DirectionDeviation(directionRoll),
	}

	if outcome.Deviation == 0 {
		return outcome, nil
	}

	drifted := driftedCoord(origin, target.Coord, outcome.Deviation)
	if isLandableAt(course, drifted) {
		outcome.Landing = drifted
		outcome.Drifted = true
	}

	return outcome, nil
}

// ResolveShotWithClub recomputes the options for club at origin and resolves
// the shot at coord, failing with ErrTargetNotOffered if coord is not among them.
func ResolveShotWithClub(course TileLookup, origin HexCoord, club Club, coord HexCoord, accuracyRoll, directionRoll int) (ShotOutcome, error) {
	targets, err := ComputeValidTargets(course, origin, club)
	if err != nil {
		return ShotOutcome{}, err
	}

	target, ok := FindTarget(targets, coord)
	if !ok {
		return ShotOutcome{}, fmt.Errorf("%w: %s with %s from %s", ErrTargetNotOffered, coord, club.Name, origin)
	}

	return ResolveShot(course, origin, target, accuracyRoll, directionRoll)
}

// driftedCoord offsets target sideways relative to the dominant direction of travel
func driftedCoord(origin, target HexCoord, deviation int) HexCoord {
	d := target.Sub(origin)
	if abs(d.Q) > abs(d.R) {
		return HexCoord{Q: target.Q, R: target.R + deviation}
	}
	return HexCoord{Q: target.Q + deviation, R: target.R}
}

func validRoll(v int) bool {
	return v >= MinRoll && v <= MaxRoll
}
