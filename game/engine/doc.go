// Package engine provides the core game logic for Hex Golf.
//
// The engine package implements the shot-resolution rules:
//   - Target enumeration from club range and terrain (ComputeValidTargets)
//   - Stroke resolution from two externally rolled dice (ResolveShot)
//   - Hazard fallback for drifted landings
//   - Round control: club/target selection, stroke counting, hole completion
//   - Course validation and loading
//
// Core Types:
//
// ComputeValidTargets and ResolveShot are pure functions over a TileLookup,
// an origin and the caller's dice; they never generate randomness and never
// mutate their inputs. GameEngine is the round controller that applies a
// ShotOutcome to a RoundState.
//
// Usage:
//
//	course, err := engine.LoadCourse("configs/courses/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	round, err := engine.NewEngine(course)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	targets, _ := round.SelectClub("Driver")
//	record, err := round.TakeShot("Driver", targets[0].Coord, 4, 3)
//
// Game Rules:
//
// Each club has a distance and a base accuracy. A target is any course hex
// within the club's distance that is not water; rough lowers the required
// roll by one and bunkers by two. A shot succeeds when the accuracy die meets
// the required roll. The direction die may drift the ball one hex sideways,
// unless that would put it in water or off the course. Missed shots still
// count as a stroke but leave the ball where it was.
package engine
