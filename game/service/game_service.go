package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/hexgolf/game/engine"
	"github.com/wricardo/hexgolf/game/scores"
)

// ErrCourseNotFound is returned by a CourseManager for an unknown course id
var ErrCourseNotFound = errors.New("course not found")

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, courseID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Shot Operations
	SelectClub(ctx context.Context, sessionID, club string) (*TargetsResult, error)
	Shoot(ctx context.Context, sessionID string, req ShotRequest) (*ShotResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.RoundState, error)

	// Round State
	GetRoundState(ctx context.Context, sessionID string) (*engine.RoundState, error)
	GetShotHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)
	ListClubs(ctx context.Context, sessionID string) ([]engine.Club, error)

	// Courses
	ListCourses(ctx context.Context) ([]*CourseInfo, error)
	LoadCourse(ctx context.Context, courseID string) (*engine.Course, error)
	SaveCourse(ctx context.Context, courseID string, course *engine.Course) error

	// Scores
	ListScores(ctx context.Context, filter scores.Filter) ([]scores.Record, error)
	ScoreSummaries(ctx context.Context) ([]scores.Summary, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, course *engine.Course) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, course *engine.Course) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// CourseManager handles course loading
type CourseManager interface {
	LoadCourse(id string) (*engine.Course, error)
	ListCourses() ([]*CourseInfo, error)
	GetDefault() *engine.Course
	SaveCourse(id string, course *engine.Course) error
}

// ScoreStore records completed holes
type ScoreStore interface {
	Append(ctx context.Context, record scores.Record) (scores.Record, error)
	List(ctx context.Context, filter scores.Filter) ([]scores.Record, error)
	Summaries(ctx context.Context) ([]scores.Summary, error)
}

// ShotRoller rolls the two dice of a stroke when the caller does not supply them
type ShotRoller interface {
	RollShot() (accuracy, direction int)
}

// Session represents an active round
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Course         *engine.Course
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
