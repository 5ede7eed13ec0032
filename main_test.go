package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wricardo/hexgolf/api"
	"github.com/wricardo/hexgolf/game/config"
	"github.com/wricardo/hexgolf/game/engine"
	"github.com/wricardo/hexgolf/game/service"
	"github.com/wricardo/hexgolf/game/session"
	"github.com/wricardo/hexgolf/transport/mcp"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}

	expectedAppName := "Hex Golf Server"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestLoadSettings_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "HOST", "CONFIG_DIR", "SESSIONS_DIR", "SCORES_DB", "DEBUG", "NGROK_ENABLED", "NGROK_AUTHTOKEN", "NGROK_AUTH_TOKEN", "NGROK_DOMAIN"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	settings, args, err := loadSettings(nil)
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}

	if settings.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", settings.Port)
	}
	if settings.Host != "localhost" {
		t.Errorf("Expected default host localhost, got %s", settings.Host)
	}
	if settings.ConfigDir != "configs/courses" {
		t.Errorf("Expected default config dir configs/courses, got %s", settings.ConfigDir)
	}
	if settings.SessionsDir != "sessions" || settings.ScoresDB != "scores.db" {
		t.Errorf("Unexpected storage defaults: %+v", settings)
	}
	if settings.NgrokEnabled || settings.Debug {
		t.Error("Ngrok and debug should be off by default")
	}
	if len(args) != 0 {
		t.Errorf("Expected no positional args, got %v", args)
	}
}

func TestLoadSettings_EnvAndFlags(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CONFIG_DIR", "/srv/courses")
	t.Setenv("NGROK_ENABLED", "true")
	t.Setenv("NGROK_AUTHTOKEN", "")
	t.Setenv("NGROK_AUTH_TOKEN", "legacy-token")

	settings, args, err := loadSettings([]string{"-port", "9090", "-scores-db", "/tmp/s.db", "stdio-mcp"})
	if err != nil {
		t.Fatalf("loadSettings failed: %v", err)
	}

	if settings.Port != 9090 {
		t.Errorf("Flag should override env port, got %d", settings.Port)
	}
	if settings.ConfigDir != "/srv/courses" {
		t.Errorf("Expected env config dir, got %s", settings.ConfigDir)
	}
	if settings.ScoresDB != "/tmp/s.db" {
		t.Errorf("Expected flag scores db, got %s", settings.ScoresDB)
	}
	if !settings.NgrokEnabled || settings.NgrokAuth != "legacy-token" {
		t.Errorf("Expected ngrok settings from env, got %+v", settings)
	}
	if len(args) != 1 || args[0] != "stdio-mcp" {
		t.Errorf("Expected mode argument, got %v", args)
	}
}

func TestLoadSettings_InvalidEnv(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	if _, _, err := loadSettings(nil); err == nil {
		t.Error("Expected error for invalid PORT")
	}
}

func testSettings(t *testing.T) *serverSettings {
	t.Helper()

	courseDir := t.TempDir()
	manager, err := config.NewManager(courseDir)
	if err != nil {
		t.Fatalf("Failed to create course manager: %v", err)
	}
	for _, course := range engine.DefaultCourses() {
		if err := manager.SaveCourse(course.ID, course); err != nil {
			t.Fatalf("Failed to save course: %v", err)
		}
	}

	return &serverSettings{
		Port:        8080,
		Host:        "localhost",
		ConfigDir:   courseDir,
		SessionsDir: filepath.Join(t.TempDir(), "sessions"),
		ScoresDB:    filepath.Join(t.TempDir(), "scores.db"),
	}
}

func TestInitializeServices(t *testing.T) {
	settings := testSettings(t)

	services, err := initializeServices(settings)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer services.Close()

	info, err := services.game.CreateSession(context.Background(), "island")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	// Server dice fill in the rolls
	result, err := services.game.Shoot(context.Background(), info.ID, service.ShotRequest{Club: "Driver", Target: engine.HexCoord{Q: 1, R: 0}})
	if err != nil {
		t.Fatalf("Shoot failed: %v", err)
	}
	if result.Shot.AccuracyRoll < 1 || result.Shot.AccuracyRoll > 6 {
		t.Errorf("Expected a rolled die, got %d", result.Shot.AccuracyRoll)
	}

	if !services.persistence.Exists(info.ID) {
		t.Error("Expected session to be persisted")
	}
}

func TestInitializeServices_InvalidConfigDir(t *testing.T) {
	settings := testSettings(t)
	settings.ConfigDir = "/non/existent/path"

	if _, err := initializeServices(settings); err == nil {
		t.Error("Expected error for non-existent config directory")
	}
}

func TestInitializeServices_ReloadsSessions(t *testing.T) {
	settings := testSettings(t)

	first, err := initializeServices(settings)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	info, err := first.game.CreateSession(context.Background(), "dogleg")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	first.Close()

	second, err := initializeServices(settings)
	if err != nil {
		t.Fatalf("Failed to reinitialize services: %v", err)
	}
	defer second.Close()

	reloaded, err := second.game.GetSession(context.Background(), info.ID)
	if err != nil {
		t.Fatalf("Expected session %s after restart: %v", info.ID, err)
	}
	if reloaded.CourseID != "dogleg" {
		t.Errorf("Expected dogleg course, got %s", reloaded.CourseID)
	}
}

func TestPruneOrphanedSessions(t *testing.T) {
	settings := testSettings(t)

	manager, err := config.NewManager(settings.ConfigDir)
	if err != nil {
		t.Fatalf("Failed to create course manager: %v", err)
	}
	persistence, err := session.NewFilePersistence(settings.SessionsDir, manager)
	if err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}
	sessions := session.NewManagerWithPersistence(persistence)

	if _, err := sessions.Create("keep", engine.ClassicCourse()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := sessions.Create("gone", engine.ClassicCourse()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := os.Remove(filepath.Join(settings.SessionsDir, "gone.json")); err != nil {
		t.Fatalf("Failed to remove session file: %v", err)
	}

	if pruned := pruneOrphanedSessions(sessions, persistence); pruned != 1 {
		t.Errorf("Expected 1 pruned session, got %d", pruned)
	}
	if _, err := sessions.Get("keep"); err != nil {
		t.Errorf("Expected keep to survive: %v", err)
	}
	if sessions.Count() != 1 {
		t.Errorf("Expected 1 session in memory, got %d", sessions.Count())
	}

	if pruneOrphanedSessions(sessions, nil) != 0 {
		t.Error("Expected no pruning without persistence")
	}
}

func TestBackgroundRoutinesStop(t *testing.T) {
	sessions := session.NewManager()
	stop := make(chan struct{})
	done := make(chan struct{}, 2)

	go func() {
		sessionCleanupRoutine(sessions, time.Millisecond, stop)
		done <- struct{}{}
	}()
	go func() {
		filesystemSyncRoutine(sessions, nil, time.Millisecond, stop)
		done <- struct{}{}
	}()

	time.Sleep(10 * time.Millisecond)
	close(stop)

	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("Background routine did not stop")
		}
	}
}

func TestNewRouter_MCPEndpoint(t *testing.T) {
	settings := testSettings(t)
	services, err := initializeServices(settings)
	if err != nil {
		t.Fatalf("Failed to initialize services: %v", err)
	}
	defer services.Close()

	apiServer := httptest.NewServer(api.NewServer(services.game, nil))
	defer apiServer.Close()

	router := newRouter(api.NewServer(services.game, nil), mcp.NewClient(apiServer.URL))

	t.Run("rejects GET", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/mcp", nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("Expected 405, got %d", w.Code)
		}
	})

	t.Run("lists tools", func(t *testing.T) {
		body := []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list","params":{}}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/mcp", bytes.NewReader(body)))

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var response struct {
			Result struct {
				Tools []struct {
					Name string `json:"name"`
				} `json:"tools"`
			} `json:"result"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to parse response: %v", err)
		}

		names := make(map[string]bool)
		for _, tool := range response.Result.Tools {
			names[tool.Name] = true
		}
		for _, name := range []string{"create_session", "select_club", "take_shot", "describe_tile"} {
			if !names[name] {
				t.Errorf("Expected tool %s in list", name)
			}
		}
	})

	t.Run("serves API", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 from /health, got %d", w.Code)
		}
	})
}
