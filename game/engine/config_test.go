package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func createTestCourse() *Course {
	return &Course{
		ID:    "test",
		Name:  "Test Hole",
		Par:   3,
		Start: HexCoord{0, 0},
		Hole:  HexCoord{3, 0},
		Tiles: []Tile{
			{HexCoord{0, 0}, Tee},
			{HexCoord{1, 0}, Fairway},
			{HexCoord{2, 0}, Green},
			{HexCoord{3, 0}, Hole},
			{HexCoord{1, 1}, Water},
		},
	}
}

func TestDefaultCoursesAreValid(t *testing.T) {
	for _, course := range DefaultCourses() {
		if err := ValidateCourse(course); err != nil {
			t.Errorf("Built-in course %s is invalid: %v", course.ID, err)
		}
	}
}

func TestValidateCourse(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Course)
	}{
		{"missing id", func(c *Course) { c.ID = "" }},
		{"missing name", func(c *Course) { c.Name = "" }},
		{"par too low", func(c *Course) { c.Par = 1 }},
		{"par too high", func(c *Course) { c.Par = 7 }},
		{"no tiles", func(c *Course) { c.Tiles = nil }},
		{"unknown terrain", func(c *Course) { c.Tiles[1].Terrain = "lava" }},
		{"duplicate tile", func(c *Course) { c.Tiles = append(c.Tiles, Tile{HexCoord{1, 0}, Rough}) }},
		{"start in water", func(c *Course) { c.Start = HexCoord{1, 1} }},
		{"start off course", func(c *Course) { c.Start = HexCoord{-5, 0} }},
		{"hole off course", func(c *Course) { c.Hole = HexCoord{9, 9} }},
		{"start equals hole", func(c *Course) { c.Hole = c.Start }},
		{"club without name", func(c *Course) { c.Clubs = []Club{{Distance: 1, Accuracy: 3}} }},
		{"club without distance", func(c *Course) { c.Clubs = []Club{{Name: "Stub", Accuracy: 3}} }},
		{"club accuracy out of range", func(c *Course) { c.Clubs = []Club{{Name: "Magic", Distance: 2, Accuracy: 7}} }},
		{"duplicate club", func(c *Course) {
			c.Clubs = []Club{{Name: "Iron", Distance: 2, Accuracy: 3}, {Name: "iron", Distance: 1, Accuracy: 4}}
		}},
		{"unreachable hole", func(c *Course) {
			c.Tiles[2].Terrain = Water
			c.Clubs = []Club{{Name: "Putter", Distance: 1, Accuracy: 5}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			course := createTestCourse()
			tt.mutate(course)

			err := ValidateCourse(course)
			if !errors.Is(err, ErrInvalidCourse) {
				t.Errorf("Expected ErrInvalidCourse, got %v", err)
			}
		})
	}

	if err := ValidateCourse(nil); !errors.Is(err, ErrInvalidCourse) {
		t.Errorf("Expected ErrInvalidCourse for nil course, got %v", err)
	}
	if err := ValidateCourse(createTestCourse()); err != nil {
		t.Errorf("Expected test course to be valid, got %v", err)
	}
}

func TestMinimumShots(t *testing.T) {
	tests := []struct {
		course   *Course
		expected int
	}{
		{ClassicCourse(), 4},
		{IslandCourse(), 2},
		{DoglegCourse(), 2},
		{createTestCourse(), 1},
	}

	for _, tt := range tests {
		got := MinimumShots(tt.course.Board(), tt.course.Start, tt.course.Hole, tt.course.ClubBag())
		if got != tt.expected {
			t.Errorf("%s: expected %d shots, got %d", tt.course.ID, tt.expected, got)
		}
	}

	if got := MinimumShots(ClassicCourse(), HexCoord{-4, 2}, HexCoord{4, -2}, nil); got != -1 {
		t.Errorf("Expected -1 with an empty bag, got %d", got)
	}
}

func TestLoadCourse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.json")

	data := `{
		"name": "Short Hole",
		"par": 2,
		"start": {"q": 0, "r": 0},
		"hole": {"q": 1, "r": 0},
		"tiles": [
			{"q": 0, "r": 0, "terrain": "tee"},
			{"q": 1, "r": 0, "terrain": "hole"}
		],
		"clubs": [{"name": "Putter", "distance": 1, "accuracy": 5}]
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write course file: %v", err)
	}

	course, err := LoadCourse(path)
	if err != nil {
		t.Fatalf("Failed to load course: %v", err)
	}

	if course.ID != "short" {
		t.Errorf("Expected id derived from file name, got %q", course.ID)
	}
	if len(course.Tiles) != 2 {
		t.Errorf("Expected 2 tiles, got %d", len(course.Tiles))
	}
	if course.Tiles[1].Terrain != Hole || course.Tiles[1].Coord() != (HexCoord{1, 0}) {
		t.Errorf("Unexpected second tile: %+v", course.Tiles[1])
	}
	if bag := course.ClubBag(); len(bag) != 1 || bag[0].Name != "Putter" {
		t.Errorf("Expected club override, got %v", bag)
	}
}

func TestLoadCourse_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadCourse(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadCourse(bad); err == nil {
		t.Error("Expected parse error")
	}

	invalid := filepath.Join(dir, "invalid.json")
	if err := os.WriteFile(invalid, []byte(`{"name":"No Tiles","par":3}`), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if _, err := LoadCourse(invalid); !errors.Is(err, ErrInvalidCourse) {
		t.Errorf("Expected ErrInvalidCourse, got %v", err)
	}
}
