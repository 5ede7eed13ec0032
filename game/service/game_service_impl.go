package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/hexgolf/game/dice"
	"github.com/wricardo/hexgolf/game/engine"
	"github.com/wricardo/hexgolf/game/scores"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	courses  CourseManager
	scores   ScoreStore
	roller   ShotRoller
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. scoreStore may be nil,
// in which case completed holes are not recorded. A nil roller is replaced
// by a time-seeded dice roller.
func NewGameService(sessions SessionManager, courses CourseManager, scoreStore ScoreStore, roller ShotRoller) GameService {
	if roller == nil {
		roller = dice.NewRoller(time.Now().UnixNano())
	}
	return &gameServiceImpl{
		sessions: sessions,
		courses:  courses,
		scores:   scoreStore,
		roller:   roller,
	}
}

// CreateSession creates a new round on a course
func (s *gameServiceImpl) CreateSession(ctx context.Context, courseID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var course *engine.Course
	var err error
	if courseID != "" {
		course, err = s.courses.LoadCourse(courseID)
		if err != nil {
			// Provide helpful error message with available options
			if errors.Is(err, ErrCourseNotFound) {
				available, listErr := s.courses.ListCourses()
				if listErr == nil && len(available) > 0 {
					var ids []string
					for _, c := range available {
						ids = append(ids, c.CourseID)
					}
					return nil, fmt.Errorf("course '%s' not found. Available courses: %v: %w", courseID, ids, err)
				}
				return nil, fmt.Errorf("course '%s' not found. Use /api/courses to list available courses: %w", courseID, err)
			}
			return nil, fmt.Errorf("failed to load course %s: %w", courseID, err)
		}
	} else {
		course = s.courses.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", course)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return newSessionInfo(session), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return newSessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, newSessionInfo(sess))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// SelectClub picks a club for the next stroke and returns its targets
func (s *gameServiceImpl) SelectClub(ctx context.Context, sessionID, club string) (*TargetsResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	targets, err := sess.Engine.SelectClub(club)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState().Clone()
	selected, _ := findClub(sess.Engine.Clubs(), state.SelectedClub)

	s.save(sessionID, "club selection")

	return &TargetsResult{
		Club:       selected,
		Origin:     state.BallPosition,
		Targets:    append([]engine.TargetOption(nil), targets...),
		RoundState: state,
	}, nil
}

// Shoot resolves one stroke. Rolls missing from the request are drawn from
// the roller; a completed hole is appended to the score log.
func (s *gameServiceImpl) Shoot(ctx context.Context, sessionID string, req ShotRequest) (*ShotResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	accuracy, direction := s.rolls(req)

	record, err := sess.Engine.TakeShot(req.Club, req.Target, accuracy, direction)
	if err != nil {
		return nil, err
	}

	state := sess.Engine.GetState().Clone()
	outcome := engine.ShotOutcome{
		Success:       record.Success,
		Target:        record.Target,
		Landing:       record.Landing,
		AccuracyRoll:  record.AccuracyRoll,
		DirectionRoll: record.DirectionRoll,
		Deviation:     record.Deviation,
		Drifted:       record.Landing != record.Target,
	}

	result := &ShotResult{
		Success:      record.Success,
		Shot:         record,
		Outcome:      outcome,
		RoundState:   state,
		Message:      state.Message,
		Events:       shotEvents(record, outcome, state),
		Stats:        sess.Engine.Stats(),
		HoleComplete: state.Complete,
	}

	fmt.Printf("[%s] %s %s->%s roll %d/%d dir %d %s strokes=%d\n",
		sessionID, record.Club, record.From, record.Target, record.AccuracyRoll, record.RequiredRoll,
		record.DirectionRoll, resultWord(record.Success), state.StrokeCount)

	if state.Complete && s.scores != nil {
		score, err := s.scores.Append(ctx, scores.Record{
			CourseID:   sess.Course.ID,
			CourseName: sess.Course.Name,
			SessionID:  sess.ID,
			Score:      state.StrokeCount,
			Par:        sess.Course.Par,
		})
		if err != nil {
			log.Printf("Warning: Failed to record score for session %s: %v", sessionID, err)
		} else {
			result.Score = &score
		}
	}

	s.save(sessionID, "shot")

	return result, nil
}

// Reset returns a session's round to the tee
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.RoundState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	state := sess.Engine.Reset().Clone()

	s.save(sessionID, "reset")

	return state, nil
}

// GetRoundState retrieves a snapshot of the current round state. Returned
// states are copies so callers can read them after the lock is released.
func (s *gameServiceImpl) GetRoundState(ctx context.Context, sessionID string) (*engine.RoundState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)
	return sess.Engine.GetState().Clone(), nil
}

// GetShotHistory returns paginated shot history
func (s *gameServiceImpl) GetShotHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Engine.GetShotHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var shots []engine.ShotRecord
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			shots = append(shots, history[i])
		}
	} else if start < total {
		shots = append([]engine.ShotRecord(nil), history[start:end]...)
	}

	if shots == nil {
		shots = []engine.ShotRecord{}
	}

	return &HistoryResponse{
		Shots:       shots,
		TotalShots:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListClubs returns the club bag for a session's course
func (s *gameServiceImpl) ListClubs(ctx context.Context, sessionID string) ([]engine.Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return sess.Engine.Clubs(), nil
}

// ListCourses returns available courses
func (s *gameServiceImpl) ListCourses(ctx context.Context) ([]*CourseInfo, error) {
	return s.courses.ListCourses()
}

// LoadCourse loads a specific course
func (s *gameServiceImpl) LoadCourse(ctx context.Context, courseID string) (*engine.Course, error) {
	return s.courses.LoadCourse(courseID)
}

// SaveCourse saves a course to disk
func (s *gameServiceImpl) SaveCourse(ctx context.Context, courseID string, course *engine.Course) error {
	return s.courses.SaveCourse(courseID, course)
}

// ListScores returns recorded holes, newest first
func (s *gameServiceImpl) ListScores(ctx context.Context, filter scores.Filter) ([]scores.Record, error) {
	if s.scores == nil {
		return []scores.Record{}, nil
	}
	return s.scores.List(ctx, filter)
}

// ScoreSummaries returns per-course aggregates of the score log
func (s *gameServiceImpl) ScoreSummaries(ctx context.Context) ([]scores.Summary, error) {
	if s.scores == nil {
		return []scores.Summary{}, nil
	}
	return s.scores.Summaries(ctx)
}

// rolls returns the request's dice, rolling whichever are missing
func (s *gameServiceImpl) rolls(req ShotRequest) (int, int) {
	if req.AccuracyRoll != nil && req.DirectionRoll != nil {
		return *req.AccuracyRoll, *req.DirectionRoll
	}

	accuracy, direction := s.roller.RollShot()
	if req.AccuracyRoll != nil {
		accuracy = *req.AccuracyRoll
	}
	if req.DirectionRoll != nil {
		direction = *req.DirectionRoll
	}
	return accuracy, direction
}

// save persists a session, logging rather than failing on error
func (s *gameServiceImpl) save(sessionID, after string) {
	if err := s.sessions.Save(sessionID); err != nil {
		fmt.Printf("Warning: Failed to persist session %s after %s: %v\n", sessionID, after, err)
	}
}

func newSessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		CourseID:       sess.Course.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		RoundState:     sess.Engine.GetState().Clone(),
		Course:         sess.Course,
	}
}

// shotEvents generates events from a resolved stroke
func shotEvents(record *engine.ShotRecord, outcome engine.ShotOutcome, state *engine.RoundState) []GameEvent {
	now := time.Now()
	landing := record.Landing
	from := record.From

	events := []GameEvent{{
		Type:      EventShot,
		Message:   fmt.Sprintf("Stroke %d: %s from %s at %s, rolled %d (needed %d)", record.StrokeNumber, record.Club, record.From, record.Target, record.AccuracyRoll, record.RequiredRoll),
		Timestamp: now,
		Position:  &landing,
	}}

	if !record.Success {
		events = append(events, GameEvent{
			Type:      EventMiss,
			Message:   fmt.Sprintf("Missed, ball stays at %s", record.From),
			Timestamp: now,
			Position:  &from,
		})
		return events
	}

	switch {
	case outcome.Drifted:
		events = append(events, GameEvent{
			Type:      EventDrift,
			Message:   fmt.Sprintf("Ball drifted %+d to %s", record.Deviation, record.Landing),
			Timestamp: now,
			Position:  &landing,
		})
	case record.Deviation != 0:
		events = append(events, GameEvent{
			Type:      EventHazard,
			Message:   fmt.Sprintf("Drift would have found a hazard, ball held at %s", record.Target),
			Timestamp: now,
			Position:  &landing,
		})
	}

	if state.Complete {
		events = append(events, GameEvent{
			Type:      EventHoleComplete,
			Message:   state.Message,
			Timestamp: now,
			Position:  &landing,
		})
	}

	return events
}

func findClub(clubs []engine.Club, name string) (engine.Club, bool) {
	for _, c := range clubs {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return engine.Club{}, false
}

func resultWord(success bool) string {
	if success {
		return "HIT"
	}
	return "MISS"
}
