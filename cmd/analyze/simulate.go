package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/wricardo/hexgolf/game/engine"
)

// strokeLimit caps a simulated round so a course that cannot be finished
// still terminates.
const strokeLimit = 50

// Simulation summarizes greedy play over many rounds of one course
type Simulation struct {
	CourseID       string
	Par            int
	Rounds         int
	Completed      int
	AverageStrokes float64
	Best           int
	Worst          int
	ScoreNames     map[string]int
}

type shotRoller interface {
	RollShot() (accuracy, direction int)
}

// greedyShot picks, over every club, the target closest to the hole. Ties
// go to the lower required roll and then to bag order.
func greedyShot(course *engine.Course, ball engine.HexCoord) (engine.Club, engine.TargetOption, bool) {
	var (
		bestClub   engine.Club
		bestTarget engine.TargetOption
		found      bool
	)

	for _, club := range course.ClubBag() {
		targets, err := engine.ComputeValidTargets(course, ball, club)
		if err != nil {
			continue
		}
		target, ok := engine.NearestTarget(targets, course.Hole)
		if !ok {
			continue
		}
		if !found || better(target, bestTarget, course.Hole) {
			bestClub, bestTarget, found = club, target, true
		}
	}
	return bestClub, bestTarget, found
}

func better(a, b engine.TargetOption, hole engine.HexCoord) bool {
	da, db := engine.RangeDistance(a.Coord, hole), engine.RangeDistance(b.Coord, hole)
	if da != db {
		return da < db
	}
	return a.RequiredRoll < b.RequiredRoll
}

// playRound plays one round greedily and returns the strokes taken and
// whether the ball reached the hole.
func playRound(course *engine.Course, roller shotRoller) (int, bool, error) {
	round, err := engine.NewEngine(course)
	if err != nil {
		return 0, false, err
	}

	for !round.IsComplete() && round.GetStrokes() < strokeLimit {
		club, target, ok := greedyShot(course, round.GetBallPosition())
		if !ok {
			break
		}
		accuracy, direction := roller.RollShot()
		if _, err := round.TakeShot(club.Name, target.Coord, accuracy, direction); err != nil {
			return round.GetStrokes(), false, err
		}
	}
	return round.GetStrokes(), round.IsComplete(), nil
}

func simulate(course *engine.Course, rounds int, roller shotRoller) Simulation {
	sim := Simulation{
		CourseID:   course.ID,
		Par:        course.Par,
		Rounds:     rounds,
		ScoreNames: make(map[string]int),
	}

	total := 0
	for i := 0; i < rounds; i++ {
		strokes, complete, err := playRound(course, roller)
		if err != nil || !complete {
			continue
		}

		sim.Completed++
		total += strokes
		sim.ScoreNames[engine.ScoreName(strokes, course.Par)]++
		if sim.Best == 0 || strokes < sim.Best {
			sim.Best = strokes
		}
		if strokes > sim.Worst {
			sim.Worst = strokes
		}
	}

	if sim.Completed > 0 {
		sim.AverageStrokes = float64(total) / float64(sim.Completed)
	}
	return sim
}

func printSimulation(w io.Writer, sim Simulation) {
	fmt.Fprintf(w, "\n=== Simulating %s (%d rounds) ===\n", sim.CourseID, sim.Rounds)
	fmt.Fprintf(w, "Completed: %d/%d\n", sim.Completed, sim.Rounds)
	if sim.Completed == 0 {
		return
	}
	fmt.Fprintf(w, "Average strokes: %.2f (par %d, %+.2f)\n", sim.AverageStrokes, sim.Par, sim.AverageStrokes-float64(sim.Par))
	fmt.Fprintf(w, "Best: %d  Worst: %d\n", sim.Best, sim.Worst)

	names := make([]string, 0, len(sim.ScoreNames))
	for name := range sim.ScoreNames {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if sim.ScoreNames[names[i]] != sim.ScoreNames[names[j]] {
			return sim.ScoreNames[names[i]] > sim.ScoreNames[names[j]]
		}
		return names[i] < names[j]
	})
	for _, name := range names {
		fmt.Fprintf(w, "  %-14s %d\n", name, sim.ScoreNames[name])
	}
}
