package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultClubs returns the standard four-club bag
func DefaultClubs() []Club {
	return []Club{
		{Name: "Driver", Distance: 3, Accuracy: 2},
		{Name: "Iron", Distance: 2, Accuracy: 3},
		{Name: "Wedge", Distance: 1, Accuracy: 4},
		{Name: "Putter", Distance: 1, Accuracy: 5},
	}
}

// ClubBag returns the course's club override, or the default bag
func (c *Course) ClubBag() []Club {
	if len(c.Clubs) > 0 {
		return c.Clubs
	}
	return DefaultClubs()
}

// ValidateCourse validates a course for correctness and playability
func ValidateCourse(course *Course) error {
	if course == nil {
		return fmt.Errorf("%w: course is nil", ErrInvalidCourse)
	}

	// Validate required fields
	if course.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidCourse)
	}
	if course.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidCourse)
	}
	if course.Par < MinPar || course.Par > MaxPar {
		return fmt.Errorf("%w: par must be between %d and %d, got %d", ErrInvalidCourse, MinPar, MaxPar, course.Par)
	}

	// Validate tiles
	if len(course.Tiles) == 0 {
		return fmt.Errorf("%w: at least one tile is required", ErrInvalidCourse)
	}
	if len(course.Tiles) > MaxCourseTiles {
		return fmt.Errorf("%w: at most %d tiles allowed, got %d", ErrInvalidCourse, MaxCourseTiles, len(course.Tiles))
	}

	board := make(Board, len(course.Tiles))
	for i, t := range course.Tiles {
		if !IsValidTerrain(t.Terrain) {
			return fmt.Errorf("%w: tile %d at %s has unknown terrain '%s'", ErrInvalidCourse, i+1, t.HexCoord, t.Terrain)
		}
		if _, dup := board[t.HexCoord]; dup {
			return fmt.Errorf("%w: duplicate tile at %s", ErrInvalidCourse, t.HexCoord)
		}
		board[t.HexCoord] = t.Terrain
	}

	// Start and hole must be on landable tiles
	if !isLandableAt(board, course.Start) {
		return fmt.Errorf("%w: start %s must be an existing non-water tile", ErrInvalidCourse, course.Start)
	}
	if !isLandableAt(board, course.Hole) {
		return fmt.Errorf("%w: hole %s must be an existing non-water tile", ErrInvalidCourse, course.Hole)
	}
	if course.Start == course.Hole {
		return fmt.Errorf("%w: start and hole must differ", ErrInvalidCourse)
	}

	// Validate club bag
	seen := make(map[string]bool)
	for _, club := range course.ClubBag() {
		if club.Name == "" {
			return fmt.Errorf("%w: club name is required", ErrInvalidCourse)
		}
		key := strings.ToLower(club.Name)
		if seen[key] {
			return fmt.Errorf("%w: duplicate club '%s'", ErrInvalidCourse, club.Name)
		}
		seen[key] = true
		if club.Distance < 1 || club.Distance > MaxClubDistance {
			return fmt.Errorf("%w: club '%s' distance must be between 1 and %d, got %d", ErrInvalidCourse, club.Name, MaxClubDistance, club.Distance)
		}
		if club.Accuracy < MinRoll || club.Accuracy > MaxRoll {
			return fmt.Errorf("%w: club '%s' accuracy must be between %d and %d, got %d", ErrInvalidCourse, club.Name, MinRoll, MaxRoll, club.Accuracy)
		}
	}

	// Validate winnability - the hole must be reachable by some sequence of shots
	if MinimumShots(board, course.Start, course.Hole, course.ClubBag()) < 0 {
		return fmt.Errorf("%w: hole %s is unreachable from start %s", ErrInvalidCourse, course.Hole, course.Start)
	}

	return nil
}

// MinimumShots returns the fewest perfect shots from start to hole using any
// club in the bag, or -1 if the hole cannot be reached.
func MinimumShots(course TileLookup, start, hole HexCoord, clubs []Club) int {
	maxDistance := 0
	for _, c := range clubs {
		if c.Distance > maxDistance {
			maxDistance = c.Distance
		}
	}
	if maxDistance < 1 {
		return -1
	}
	reach := Club{Name: "reach", Distance: maxDistance, Accuracy: MaxRoll}

	dist := map[HexCoord]int{start: 0}
	queue := []HexCoord{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == hole {
			return dist[current]
		}

		targets, _ := ComputeValidTargets(course, current, reach)
		for _, t := range targets {
			if _, visited := dist[t.Coord]; visited {
				continue
			}
			dist[t.Coord] = dist[current] + 1
			queue = append(queue, t.Coord)
		}
	}

	return -1
}

// LoadCourse loads a course from a JSON file
func LoadCourse(filename string) (*Course, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var course Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("failed to parse course file '%s': %w", filepath.Base(filename), err)
	}

	if course.ID == "" {
		course.ID = strings.TrimSuffix(filepath.Base(filename), ".json")
	}

	if err := ValidateCourse(&course); err != nil {
		return nil, err
	}

	return &course, nil
}

// DefaultCourses returns the built-in course catalog
func DefaultCourses() []*Course {
	return []*Course{ClassicCourse(), IslandCourse(), DoglegCourse()}
}

// ClassicCourse is a straightforward par 4 with strategic hazards
func ClassicCourse() *Course {
	return &Course{
		ID:          "classic",
		Name:        "Classic Par 4",
		Description: "A straightforward challenge with strategic hazards",
		Par:         4,
		Start:       HexCoord{Q: -4, R: 2},
		Hole:        HexCoord{Q: 4, R: -2},
		Tiles: []Tile{
			{HexCoord{-4, 2}, Tee},
			{HexCoord{-3, 1}, Fairway},
			{HexCoord{-2, 0}, Fairway},
			{HexCoord{-1, 0}, Fairway},
			{HexCoord{0, 0}, Fairway},
			{HexCoord{1, -1}, Fairway},
			{HexCoord{2, -1}, Fairway},
			{HexCoord{3, -2}, Green},
			{HexCoord{4, -2}, Hole},

			{HexCoord{-3, 2}, Rough},
			{HexCoord{-2, 1}, Bunker},
			{HexCoord{-1, 1}, Water},
			{HexCoord{0, 1}, Rough},
			{HexCoord{1, 0}, Bunker},
			{HexCoord{2, -2}, Rough},
			{HexCoord{3, -1}, Bunker},
			{HexCoord{4, -1}, Rough},

			{HexCoord{-4, 1}, Rough},
			{HexCoord{-3, 0}, Rough},
			{HexCoord{-2, -1}, Rough},
			{HexCoord{-1, -1}, Rough},
			{HexCoord{0, -1}, Rough},
			{HexCoord{1, -2}, Rough},
			{HexCoord{2, 0}, Rough},
		},
	}
}

// IslandCourse is a short par 3 to a green surrounded by water
func IslandCourse() *Course {
	return &Course{
		ID:          "island",
		Name:        "Island Green",
		Description: "A challenging short hole surrounded by water",
		Par:         3,
		Start:       HexCoord{Q: -2, R: 0},
		Hole:        HexCoord{Q: 2, R: 0},
		Tiles: []Tile{
			{HexCoord{-2, 0}, Tee},
			{HexCoord{-1, 0}, Fairway},
			{HexCoord{1, 0}, Green},
			{HexCoord{2, 0}, Hole},

			{HexCoord{0, 1}, Water},
			{HexCoord{1, 1}, Water},
			{HexCoord{2, 1}, Water},
			{HexCoord{0, -1}, Water},
			{HexCoord{1, -1}, Water},
			{HexCoord{2, -1}, Water},
			{HexCoord{0, 0}, Water},
		},
	}
}

// DoglegCourse is a par 4 bending right around bunkers
func DoglegCourse() *Course {
	return &Course{
		ID:          "dogleg",
		Name:        "Sharp Dogleg",
		Description: "A challenging dogleg right with strategic bunkers",
		Par:         4,
		Start:       HexCoord{Q: -3, R: 0},
		Hole:        HexCoord{Q: 0, R: 3},
		Tiles: []Tile{
			{HexCoord{-3, 0}, Tee},
			{HexCoord{-2, 0}, Fairway},
			{HexCoord{-1, 0}, Fairway},
			{HexCoord{0, 0}, Fairway},
			{HexCoord{0, 1}, Fairway},
			{HexCoord{0, 2}, Fairway},
			{HexCoord{0, 3}, Green},

			{HexCoord{-1, 1}, Bunker},
			{HexCoord{1, 0}, Water},
			{HexCoord{-1, 2}, Bunker},
			{HexCoord{1, 1}, Rough},
			{HexCoord{1, 2}, Rough},
			{HexCoord{-2, 1}, Rough},
			{HexCoord{-2, -1}, Rough},
			{HexCoord{-1, -1}, Rough},
			{HexCoord{0, -1}, Rough},
		},
	}
}
