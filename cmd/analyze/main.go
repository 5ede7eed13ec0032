// Command analyze inspects course files in the configs/courses directory.
//
// It has three subcommands:
//   - analyze: terrain counts, tee-to-hole range and the fewest perfect shots
//   - validate: load and validate each course, exiting non-zero on failure
//   - simulate: play rounds with a greedy strategy and report average strokes
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/hexgolf/game/dice"
	"github.com/wricardo/hexgolf/game/engine"
)

const defaultCourseDir = "configs/courses"

// terrainOrder fixes the print order of terrain counts
var terrainOrder = []engine.TerrainKind{
	engine.Tee, engine.Fairway, engine.Rough, engine.Bunker, engine.Water, engine.Green, engine.Hole,
}

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp(w io.Writer) *cli.Command {
	return &cli.Command{
		Name:   "analyze",
		Usage:  "inspect Hex Golf course files",
		Writer: w,
		Commands: []*cli.Command{
			{
				Name:      "analyze",
				Usage:     "print terrain counts and shot estimates",
				ArgsUsage: "[course.json...]",
				Flags:     []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					paths, err := coursePaths(cmd)
					if err != nil {
						return err
					}
					for _, path := range paths {
						fmt.Fprintf(cmd.Root().Writer, "\n=== Analyzing %s ===\n", filepath.Base(path))
						course, err := engine.LoadCourse(path)
						if err != nil {
							fmt.Fprintf(cmd.Root().Writer, "Error: %v\n", err)
							continue
						}
						analyzeCourse(cmd.Root().Writer, course)
					}
					return nil
				},
			},
			{
				Name:      "validate",
				Usage:     "validate course files",
				ArgsUsage: "[course.json...]",
				Flags:     []cli.Flag{dirFlag()},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					paths, err := coursePaths(cmd)
					if err != nil {
						return err
					}
					if failed := validateCourses(cmd.Root().Writer, paths); failed > 0 {
						return cli.Exit(fmt.Sprintf("%d of %d courses failed validation", failed, len(paths)), 1)
					}
					return nil
				},
			},
			{
				Name:      "simulate",
				Usage:     "play rounds with a greedy strategy",
				ArgsUsage: "[course.json...]",
				Flags: []cli.Flag{
					dirFlag(),
					&cli.Int64Flag{Name: "rounds", Value: 100, Usage: "rounds to play per course"},
					&cli.Int64Flag{Name: "seed", Value: 1, Usage: "dice seed"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					paths, err := coursePaths(cmd)
					if err != nil {
						return err
					}
					rounds := int(cmd.Int64("rounds"))
					if rounds < 1 {
						return fmt.Errorf("rounds must be at least 1")
					}
					roller := dice.NewRoller(cmd.Int64("seed"))

					for _, path := range paths {
						course, err := engine.LoadCourse(path)
						if err != nil {
							fmt.Fprintf(cmd.Root().Writer, "%s: %v\n", filepath.Base(path), err)
							continue
						}
						printSimulation(cmd.Root().Writer, simulate(course, rounds, roller))
					}
					return nil
				},
			},
		},
	}
}

func dirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "dir",
		Value: defaultCourseDir,
		Usage: "course directory used when no files are given",
	}
}

// coursePaths returns the positional files, or every JSON file in --dir
func coursePaths(cmd *cli.Command) ([]string, error) {
	if cmd.Args().Len() > 0 {
		return cmd.Args().Slice(), nil
	}

	paths, err := filepath.Glob(filepath.Join(cmd.String("dir"), "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no course files in %s", cmd.String("dir"))
	}
	sort.Strings(paths)
	return paths, nil
}

func analyzeCourse(w io.Writer, course *engine.Course) {
	fmt.Fprintf(w, "Name: %s (%s)\n", course.Name, course.ID)
	fmt.Fprintf(w, "Par: %d\n", course.Par)
	fmt.Fprintf(w, "Tiles: %d\n", len(course.Tiles))

	counts := engine.CountTerrain(course)
	for _, kind := range terrainOrder {
		if counts[kind] > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", kind, counts[kind])
		}
	}

	fmt.Fprintf(w, "Start: %s  Hole: %s  Range: %d\n", course.Start, course.Hole, engine.RangeDistance(course.Start, course.Hole))

	clubs := course.ClubBag()
	for _, club := range clubs {
		targets, err := engine.ComputeValidTargets(course, course.Start, club)
		if err != nil {
			fmt.Fprintf(w, "  %s: %v\n", club.Name, err)
			continue
		}
		fmt.Fprintf(w, "  %-8s %d targets from the tee\n", club.Name, len(targets))
	}

	minimum := engine.MinimumShots(course, course.Start, course.Hole, clubs)
	switch {
	case minimum < 0:
		fmt.Fprintf(w, "⚠️  WARNING: the hole cannot be reached from the tee\n")
	case minimum > course.Par:
		fmt.Fprintf(w, "⚠️  WARNING: fewest perfect shots is %d, above par %d\n", minimum, course.Par)
	default:
		fmt.Fprintf(w, "✅ Fewest perfect shots: %d (par %d)\n", minimum, course.Par)
	}
}

// validateCourses reports each file and returns how many failed
func validateCourses(w io.Writer, paths []string) int {
	failed := 0
	for _, path := range paths {
		course, err := engine.LoadCourse(path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "❌ %s: %v\n", filepath.Base(path), err)
			continue
		}
		fmt.Fprintf(w, "✅ %s: %s, par %d, %d tiles\n", filepath.Base(path), course.Name, course.Par, len(course.Tiles))
	}

	fmt.Fprintf(w, "\n%d valid, %d invalid\n", len(paths)-failed, failed)
	return failed
}
