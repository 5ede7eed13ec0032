package engine

import (
	"fmt"
	"strings"
	"time"
)

// Engine provides the main interface for round operations
type Engine interface {
	// Round state management
	GetState() *RoundState
	SetState(state *RoundState) error
	Reset() *RoundState
	IsComplete() bool
	GetStrokes() int
	GetBallPosition() HexCoord
	ScoreToPar() int

	// Shot operations
	Clubs() []Club
	SelectClub(name string) ([]TargetOption, error)
	SelectTarget(coord HexCoord) (TargetOption, error)
	Shoot(accuracyRoll, directionRoll int) (*ShotRecord, error)
	TakeShot(club string, target HexCoord, accuracyRoll, directionRoll int) (*ShotRecord, error)
	ValidTargets() []TargetOption

	// Course
	GetCourse() *Course

	// History
	GetShotHistory() []ShotRecord
	GetLastShot() *ShotRecord
	Stats() RoundStats
}

// GameEngine implements the Engine interface. It is the controller that
// applies shot outcomes to a round; it is not safe for concurrent use.
type GameEngine struct {
	course *Course
	board  Board
	state  *RoundState
}

// NewEngine creates a new round on the provided course
func NewEngine(course *Course) (*GameEngine, error) {
	if err := ValidateCourse(course); err != nil {
		return nil, err
	}

	return &GameEngine{
		course: course,
		board:  course.Board(),
		state:  InitRoundState(course),
	}, nil
}

// NewEngineWithDefaults creates a new round on the classic course
func NewEngineWithDefaults() *GameEngine {
	course := ClassicCourse()
	return &GameEngine{
		course: course,
		board:  course.Board(),
		state:  InitRoundState(course),
	}
}

// InitRoundState creates the opening state of a round on course
func InitRoundState(course *Course) *RoundState {
	return &RoundState{
		CourseID:     course.ID,
		CourseName:   course.Name,
		Par:          course.Par,
		BallPosition: course.Start,
		HolePosition: course.Hole,
		StrokeCount:  0,
		MoveHistory:  []ShotRecord{},
		Phase:        PhaseIdle,
		Message:      fmt.Sprintf("Welcome to %s (par %d). Select a club.", course.Name, course.Par),
	}
}

// GetState returns the current round state
func (e *GameEngine) GetState() *RoundState {
	return e.state
}

// SetState replaces the round state (used for persistence loading).
// Valid targets for a selected club are recomputed.
func (e *GameEngine) SetState(state *RoundState) error {
	if state == nil {
		return fmt.Errorf("state cannot be nil")
	}
	if _, ok := e.board.TerrainAt(state.BallPosition); !ok {
		return fmt.Errorf("ball position %s is not on course %s", state.BallPosition, e.course.ID)
	}
	if state.MoveHistory == nil {
		state.MoveHistory = []ShotRecord{}
	}

	e.state = state
	e.state.ValidTargets = nil
	if state.SelectedClub != "" && !state.Complete {
		club, err := e.club(state.SelectedClub)
		if err != nil {
			e.clearSelection()
			return nil
		}
		targets, err := ComputeValidTargets(e.board, state.BallPosition, club)
		if err != nil {
			e.clearSelection()
			return nil
		}
		e.state.ValidTargets = targets
	}
	return nil
}

// Reset returns the ball to the tee and clears strokes and history
func (e *GameEngine) Reset() *RoundState {
	e.state = InitRoundState(e.course)
	return e.state
}

// IsComplete returns whether the ball is in the hole
func (e *GameEngine) IsComplete() bool {
	return e.state.Complete
}

// GetStrokes returns the strokes taken so far
func (e *GameEngine) GetStrokes() int {
	return e.state.StrokeCount
}

// GetBallPosition returns the ball's current hex
func (e *GameEngine) GetBallPosition() HexCoord {
	return e.state.BallPosition
}

// ScoreToPar returns strokes relative to par
func (e *GameEngine) ScoreToPar() int {
	return e.state.StrokeCount - e.course.Par
}

// Clubs returns the club bag for this course
func (e *GameEngine) Clubs() []Club {
	return e.course.ClubBag()
}

// SelectClub picks a club and computes the targets it can reach from the ball
func (e *GameEngine) SelectClub(name string) ([]TargetOption, error) {
	if e.state.Complete {
		return nil, ErrRoundComplete
	}

	club, err := e.club(name)
	if err != nil {
		return nil, err
	}

	targets, err := ComputeValidTargets(e.board, e.state.BallPosition, club)
	if err != nil {
		return nil, err
	}

	e.state.SelectedClub = club.Name
	e.state.SelectedTarget = nil
	e.state.ValidTargets = targets
	e.state.Phase = PhaseClubSelected
	e.state.Message = fmt.Sprintf("%s selected: %d targets in range", club.Name, len(targets))

	return targets, nil
}

// SelectTarget picks one of the offered targets for the selected club
func (e *GameEngine) SelectTarget(coord HexCoord) (TargetOption, error) {
	if e.state.Complete {
		return TargetOption{}, ErrRoundComplete
	}
	if e.state.SelectedClub == "" {
		return TargetOption{}, ErrNoClubSelected
	}

	target, ok := FindTarget(e.state.ValidTargets, coord)
	if !ok {
		return TargetOption{}, fmt.Errorf("%w: %s with %s", ErrTargetNotOffered, coord, e.state.SelectedClub)
	}

	selected := target.Coord
	e.state.SelectedTarget = &selected
	e.state.Phase = PhaseTargetSelected
	e.state.Message = fmt.Sprintf("Aiming at %s: need %d+ to hit", coord, target.RequiredRoll)

	return target, nil
}

// Shoot resolves the selected shot with the given dice.
//
// The stroke always counts and is added to history. The ball moves to the
// landing hex only when the shot succeeds; on a miss it stays put.
func (e *GameEngine) Shoot(accuracyRoll, directionRoll int) (*ShotRecord, error) {
	if e.state.Complete {
		return nil, ErrRoundComplete
	}
	if e.state.SelectedClub == "" {
		return nil, ErrNoClubSelected
	}
	if e.state.SelectedTarget == nil {
		return nil, fmt.Errorf("%w: no target selected", ErrTargetNotOffered)
	}

	target, ok := FindTarget(e.state.ValidTargets, *e.state.SelectedTarget)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotOffered, *e.state.SelectedTarget)
	}

	outcome, err := ResolveShot(e.board, e.state.BallPosition, target, accuracyRoll, directionRoll)
	if err != nil {
		return nil, err
	}

	record := e.applyOutcome(target, outcome)
	return &record, nil
}

// TakeShot selects club and target and shoots in one step
func (e *GameEngine) TakeShot(club string, target HexCoord, accuracyRoll, directionRoll int) (*ShotRecord, error) {
	if e.state.Complete {
		return nil, ErrRoundComplete
	}
	// Reject bad dice before touching the selection
	if !validRoll(accuracyRoll) || !validRoll(directionRoll) {
		return nil, fmt.Errorf("%w: accuracy=%d direction=%d", ErrInvalidRoll, accuracyRoll, directionRoll)
	}

	// A rejected shot leaves the previous selection in place
	prior := e.saveSelection()

	if club != "" && !strings.EqualFold(club, e.state.SelectedClub) {
		if _, err := e.SelectClub(club); err != nil {
			e.restoreSelection(prior)
			return nil, err
		}
	}
	if _, err := e.SelectTarget(target); err != nil {
		e.restoreSelection(prior)
		return nil, err
	}
	record, err := e.Shoot(accuracyRoll, directionRoll)
	if err != nil {
		e.restoreSelection(prior)
		return nil, err
	}
	return record, nil
}

type selection struct {
	club    string
	target  *HexCoord
	targets []TargetOption
	phase   Phase
	message string
}

func (e *GameEngine) saveSelection() selection {
	return selection{
		club:    e.state.SelectedClub,
		target:  e.state.SelectedTarget,
		targets: e.state.ValidTargets,
		phase:   e.state.Phase,
		message: e.state.Message,
	}
}

func (e *GameEngine) restoreSelection(s selection) {
	e.state.SelectedClub = s.club
	e.state.SelectedTarget = s.target
	e.state.ValidTargets = s.targets
	e.state.Phase = s.phase
	e.state.Message = s.message
}

// ValidTargets returns the options offered for the selected club
func (e *GameEngine) ValidTargets() []TargetOption {
	return e.state.ValidTargets
}

// GetCourse returns the course this round is played on
func (e *GameEngine) GetCourse() *Course {
	return e.course
}

// GetShotHistory returns the complete shot history
func (e *GameEngine) GetShotHistory() []ShotRecord {
	return e.state.MoveHistory
}

// GetLastShot returns the last shot taken, or nil if no shots
func (e *GameEngine) GetLastShot() *ShotRecord {
	if len(e.state.MoveHistory) == 0 {
		return nil
	}
	return &e.state.MoveHistory[len(e.state.MoveHistory)-1]
}

// Stats summarizes the round so far
func (e *GameEngine) Stats() RoundStats {
	return ComputeRoundStats(e.state.MoveHistory)
}

func (e *GameEngine) applyOutcome(target TargetOption, outcome ShotOutcome) ShotRecord {
	from := e.state.BallPosition

	e.state.StrokeCount++
	record := ShotRecord{
		StrokeNumber:  e.state.StrokeCount,
		Club:          e.state.SelectedClub,
		From:          from,
		Target:        target.Coord,
		Landing:       outcome.Landing,
		RequiredRoll:  target.RequiredRoll,
		AccuracyRoll:  outcome.AccuracyRoll,
		DirectionRoll: outcome.DirectionRoll,
		Deviation:     outcome.Deviation,
		Success:       outcome.Success,
		Timestamp:     time.Now().Unix(),
	}
	e.state.MoveHistory = append(e.state.MoveHistory, record)

	if outcome.Success {
		e.state.BallPosition = outcome.Landing
		e.state.Message = fmt.Sprintf("Good shot! Rolled %d (needed %d), ball at %s", outcome.AccuracyRoll, target.RequiredRoll, outcome.Landing)
	} else {
		e.state.Message = fmt.Sprintf("Missed! Rolled %d (needed %d), ball stays at %s", outcome.AccuracyRoll, target.RequiredRoll, from)
	}

	e.clearSelection()

	if e.state.BallPosition == e.state.HolePosition {
		e.state.Complete = true
		e.state.Phase = PhaseComplete
		e.state.Message = fmt.Sprintf("In the hole! %d strokes, %s (%s)",
			e.state.StrokeCount, ScoreName(e.state.StrokeCount, e.course.Par), ScoreToParLabel(e.state.StrokeCount, e.course.Par))
	}

	return record
}

func (e *GameEngine) clearSelection() {
	e.state.SelectedClub = ""
	e.state.SelectedTarget = nil
	e.state.ValidTargets = nil
	e.state.Phase = PhaseIdle
}

// club finds a club in the bag by case-insensitive name
func (e *GameEngine) club(name string) (Club, error) {
	for _, c := range e.course.ClubBag() {
		if strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return Club{}, fmt.Errorf("%w: %q", ErrUnknownClub, name)
}
