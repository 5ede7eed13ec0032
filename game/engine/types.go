package engine

// TerrainKind represents the surface of a course tile
type TerrainKind string

const (
	Tee     TerrainKind = "tee"
	Fairway TerrainKind = "fairway"
	Rough   TerrainKind = "rough"
	Bunker  TerrainKind = "bunker"
	Water   TerrainKind = "water"
	Green   TerrainKind = "green"
	Hole    TerrainKind = "hole"

	// Validation constants
	MinRoll         = 1
	MaxRoll         = 6
	DieSides        = 6
	MinPar          = 2
	MaxPar          = 6
	MaxClubDistance = 10
	MaxCourseTiles  = 2000
)

// Tile is a single hex of a course. JSON is flattened to {"q","r","terrain"}.
type Tile struct {
	HexCoord
	Terrain TerrainKind `json:"terrain"`
}

// Coord returns the tile's coordinate
func (t Tile) Coord() HexCoord {
	return t.HexCoord
}

// Club is an immutable entry of the club bag
type Club struct {
	Name     string `json:"name"`
	Distance int    `json:"distance"`
	Accuracy int    `json:"accuracy"`
}

// TargetOption is a reachable hex together with the accuracy roll needed to hit it
type TargetOption struct {
	Coord        HexCoord `json:"coord"`
	RequiredRoll int      `json:"required_roll"`
}

// ShotOutcome is the result of resolving one stroke
type ShotOutcome struct {
	Success       bool     `json:"success"`
	Target        HexCoord `json:"target"`
	Landing       HexCoord `json:"landing"`
	AccuracyRoll  int      `json:"accuracy_roll"`
	DirectionRoll int      `json:"direction_roll"`
	Deviation     int      `json:"deviation"`
	// Drifted reports whether the deviation was kept. False when the roll
	// was straight or the drifted hex was a hazard.
	Drifted bool `json:"drifted"`
}

// Course is a hole layout loaded from the course catalog
type Course struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Par         int      `json:"par"`
	Start       HexCoord `json:"start"`
	Hole        HexCoord `json:"hole"`
	Tiles       []Tile   `json:"tiles"`
	Clubs       []Club   `json:"clubs,omitempty"` // Optional override of the default bag
}

// Phase is the position of a round within one shot's turn
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseClubSelected   Phase = "club_selected"
	PhaseTargetSelected Phase = "target_selected"
	PhaseComplete       Phase = "complete"
)

// RoundState represents the complete state of one round on one course
type RoundState struct {
	CourseID     string       `json:"course_id"`
	CourseName   string       `json:"course_name"`
	Par          int          `json:"par"`
	BallPosition HexCoord     `json:"ball_position"`
	HolePosition HexCoord     `json:"hole_position"`
	StrokeCount  int          `json:"stroke_count"`
	MoveHistory  []ShotRecord `json:"move_history"`
	Phase        Phase        `json:"phase"`
	Complete     bool         `json:"complete"`
	Message      string       `json:"message"`

	SelectedClub   string    `json:"selected_club,omitempty"`
	SelectedTarget *HexCoord `json:"selected_target,omitempty"`

	// ValidTargets is derived from the selected club and ball position and
	// is recomputed on load.
	ValidTargets []TargetOption `json:"-"`
}

// Clone returns a deep copy that shares no slices or pointers with s
func (s *RoundState) Clone() *RoundState {
	if s == nil {
		return nil
	}
	c := *s
	if s.MoveHistory != nil {
		c.MoveHistory = append([]ShotRecord(nil), s.MoveHistory...)
	}
	if s.SelectedTarget != nil {
		target := *s.SelectedTarget
		c.SelectedTarget = &target
	}
	if s.ValidTargets != nil {
		c.ValidTargets = append([]TargetOption(nil), s.ValidTargets...)
	}
	return &c
}

// ShotRecord represents a single stroke in the round history
type ShotRecord struct {
	StrokeNumber  int      `json:"stroke_number"`
	Club          string   `json:"club"`
	From          HexCoord `json:"from"`
	Target        HexCoord `json:"target"`
	Landing       HexCoord `json:"landing"`
	RequiredRoll  int      `json:"required_roll"`
	AccuracyRoll  int      `json:"roll"`
	DirectionRoll int      `json:"direction_roll"`
	Deviation     int      `json:"deviation"`
	Success       bool     `json:"success"`
	Timestamp     int64    `json:"timestamp"`
}
