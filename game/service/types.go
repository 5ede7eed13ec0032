package service

import (
	"time"

	"github.com/wricardo/hexgolf/game/engine"
	"github.com/wricardo/hexgolf/game/scores"
)

// Event types emitted by shot operations
const (
	EventClubSelected = "club_selected"
	EventShot         = "shot"
	EventMiss         = "miss"
	EventDrift        = "drift"
	EventHazard       = "hazard"
	EventHoleComplete = "hole_complete"
	EventReset        = "reset"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	CourseID       string             `json:"course_id"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	RoundState     *engine.RoundState `json:"round_state"`
	Course         *engine.Course     `json:"course"`
}

// TargetsResult is returned when a club is selected
type TargetsResult struct {
	Club       engine.Club           `json:"club"`
	Origin     engine.HexCoord       `json:"origin"`
	Targets    []engine.TargetOption `json:"targets"`
	RoundState *engine.RoundState    `json:"round_state"`
}

// ShotRequest asks for one stroke. Club defaults to the selected club and
// missing rolls are drawn from the server's dice.
type ShotRequest struct {
	Club          string          `json:"club,omitempty"`
	Target        engine.HexCoord `json:"target"`
	AccuracyRoll  *int            `json:"accuracy_roll,omitempty"`
	DirectionRoll *int            `json:"direction_roll,omitempty"`
}

// ShotResult contains the result of a stroke
type ShotResult struct {
	Success      bool               `json:"success"`
	Shot         *engine.ShotRecord `json:"shot"`
	Outcome      engine.ShotOutcome `json:"outcome"`
	RoundState   *engine.RoundState `json:"round_state"`
	Message      string             `json:"message"`
	Events       []GameEvent        `json:"events"`
	Stats        engine.RoundStats  `json:"stats"`
	HoleComplete bool               `json:"hole_complete"`
	Score        *scores.Record     `json:"score,omitempty"`
}

// GameEvent represents an event that occurred during play
type GameEvent struct {
	Type      string           `json:"type"` // "shot", "miss", "drift", "hazard", "hole_complete", "reset"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.HexCoord `json:"position,omitempty"`
}

// HistoryOptions configures shot history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated shot history
type HistoryResponse struct {
	Shots       []engine.ShotRecord `json:"shots"`
	TotalShots  int                 `json:"total_shots"`
	Page        int                 `json:"page"`
	PageSize    int                 `json:"page_size"`
	TotalPages  int                 `json:"total_pages"`
	HasNext     bool                `json:"has_next"`
	HasPrevious bool                `json:"has_previous"`
}

// CourseInfo provides information about a course file
type CourseInfo struct {
	Filename     string `json:"filename"`
	CourseID     string `json:"course_id"` // The identifier to use for session creation
	Name         string `json:"name"`      // Display name
	Description  string `json:"description"`
	Par          int    `json:"par"`
	Tiles        int    `json:"tiles"`
	MinimumShots int    `json:"minimum_shots"`
}
