// Package session provides session management for Hex Golf rounds.
//
// A session pairs one round engine with the course it is played on. The
// package implements:
//   - Thread-safe session storage and retrieval
//   - Short session ID generation and validation
//   - File-backed persistence of round state
//   - Cleanup of idle sessions
//
// Session Identifiers:
//
// Generated IDs are 4 lowercase alphanumeric characters. Caller supplied IDs
// may use letters, digits, '-' and '_' (up to 32 characters) and are matched
// case-insensitively.
//
// Persistence:
//
// FilePersistence writes one JSON file per session holding the course ID and
// the round state. Valid targets are not stored; they are recomputed from the
// selected club when the session is loaded.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("sessions", courseManager)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//
//	sess, err := manager.Create("", engine.ClassicCourse())
//	if err != nil {
//		log.Fatal(err)
//	}
package session
