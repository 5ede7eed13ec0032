package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/wricardo/hexgolf/game/engine"
	"github.com/wricardo/hexgolf/game/service"
)

var (
	ErrCourseNotFound = service.ErrCourseNotFound
	ErrInvalidCourse  = errors.New("invalid course")
)

// DefaultCourseID is the course used when a session does not name one
const DefaultCourseID = "classic"

// Manager handles course loading and caching
type Manager struct {
	courseDir     string
	defaultCourse *engine.Course
	courses       map[string]*engine.Course
	mu            sync.RWMutex
}

// NewManager creates a new course manager over a directory of JSON files
func NewManager(courseDir string) (*Manager, error) {
	// Ensure course directory exists
	if _, err := os.Stat(courseDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("course directory does not exist: %s", courseDir)
	}

	m := &Manager{
		courseDir: courseDir,
		courses:   make(map[string]*engine.Course),
	}

	m.loadDefaultCourse()

	return m, nil
}

// LoadCourse loads a course by id
func (m *Manager) LoadCourse(id string) (*engine.Course, error) {
	id = courseID(id)

	m.mu.RLock()
	// Check cache first
	if course, exists := m.courses[id]; exists {
		m.mu.RUnlock()
		return course, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if course, exists := m.courses[id]; exists {
		return course, nil
	}

	course, err := m.readCourse(id)
	if err != nil {
		return nil, err
	}

	m.courses[id] = course
	return course, nil
}

// ReloadCourse drops a course from the cache and reads it again from disk
func (m *Manager) ReloadCourse(id string) error {
	id = courseID(id)

	m.mu.Lock()
	defer m.mu.Unlock()

	course, err := m.readCourse(id)
	if err != nil {
		return err
	}

	m.courses[id] = course
	if m.defaultCourse != nil && m.defaultCourse.ID == id {
		m.defaultCourse = course
	}
	return nil
}

// ValidateCourse checks a course without saving it
func (m *Manager) ValidateCourse(course *engine.Course) error {
	if err := engine.ValidateCourse(course); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}
	return nil
}

// ListCourses returns information about all available courses
func (m *Manager) ListCourses() ([]*service.CourseInfo, error) {
	entries, err := os.ReadDir(m.courseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read course directory: %w", err)
	}

	var courses []*service.CourseInfo

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")

		course, err := m.LoadCourse(id)
		if err != nil {
			// Skip invalid courses
			continue
		}

		courses = append(courses, NewCourseInfo(entry.Name(), course))
	}

	sort.Slice(courses, func(i, j int) bool {
		return courses[i].CourseID < courses[j].CourseID
	})

	return courses, nil
}

// NewCourseInfo summarizes a course for listings
func NewCourseInfo(filename string, course *engine.Course) *service.CourseInfo {
	return &service.CourseInfo{
		Filename:     filename,
		CourseID:     course.ID,
		Name:         course.Name,
		Description:  course.Description,
		Par:          course.Par,
		Tiles:        len(course.Tiles),
		MinimumShots: engine.MinimumShots(course.Board(), course.Start, course.Hole, course.ClubBag()),
	}
}

// GetDefault returns the default course
func (m *Manager) GetDefault() *engine.Course {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.defaultCourse
}

// SetDefault sets the default course by id
func (m *Manager) SetDefault(id string) error {
	course, err := m.LoadCourse(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultCourse = course
	return nil
}

// RefreshCache drops all cached courses and reloads the default
func (m *Manager) RefreshCache() error {
	m.mu.Lock()
	m.courses = make(map[string]*engine.Course)
	m.mu.Unlock()

	m.loadDefaultCourse()
	return nil
}

// SaveCourse validates a course and writes it to disk
func (m *Manager) SaveCourse(id string, course *engine.Course) error {
	id = courseID(id)
	if id == "" {
		return fmt.Errorf("%w: course id is required", ErrInvalidCourse)
	}
	if course != nil && course.ID == "" {
		course.ID = id
	}

	if err := engine.ValidateCourse(course); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}
	if course.ID != id {
		return fmt.Errorf("%w: course id '%s' does not match '%s'", ErrInvalidCourse, course.ID, id)
	}

	data, err := json.MarshalIndent(course, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal course: %w", err)
	}

	coursePath := filepath.Join(m.courseDir, id+".json")
	if err := os.WriteFile(coursePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write course file: %w", err)
	}

	m.mu.Lock()
	m.courses[id] = course
	m.mu.Unlock()

	return nil
}

// loadDefaultCourse picks classic, then the first valid file, then the
// built-in classic course
func (m *Manager) loadDefaultCourse() {
	course, err := m.LoadCourse(DefaultCourseID)
	if err != nil {
		courses, listErr := m.ListCourses()
		if listErr != nil || len(courses) == 0 {
			course = engine.ClassicCourse()
		} else if course, err = m.LoadCourse(courses[0].CourseID); err != nil {
			course = engine.ClassicCourse()
		}
	}

	m.mu.Lock()
	m.defaultCourse = course
	m.mu.Unlock()
}

// readCourse reads and validates a course file. Callers hold the lock.
func (m *Manager) readCourse(id string) (*engine.Course, error) {
	coursePath := filepath.Join(m.courseDir, id+".json")

	data, err := os.ReadFile(coursePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to read course file: %w", err)
	}

	var course engine.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("failed to parse course: %w", err)
	}
	if course.ID == "" {
		course.ID = id
	}

	if err := engine.ValidateCourse(&course); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCourse, err)
	}

	return &course, nil
}

// courseID strips a .json extension and path components from a course name
func courseID(name string) string {
	return strings.TrimSuffix(filepath.Base(strings.TrimSpace(name)), ".json")
}
