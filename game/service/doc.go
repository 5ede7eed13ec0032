// Package service provides the business logic layer for Hex Golf.
//
// The service package implements:
//   - Multi-session round management
//   - Course catalog access
//   - Club selection and shot resolution with server-side dice
//   - Score recording for completed holes
//   - Shot history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// CourseManager loads and lists courses.
// ScoreStore appends and queries the completed-hole log.
// ShotRoller supplies dice when a client does not send its own.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine, providing session isolation and orchestration. Each
// session owns its own GameEngine. The engine is not safe for concurrent use,
// so every operation runs under the service mutex.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	courseMgr, _ := config.NewManager("configs/courses")
//	store, _ := scores.Open("scores.db")
//	roller, _ := dice.NewRandomRoller()
//	gameService := service.NewGameService(sessionMgr, courseMgr, store, roller)
//
//	info, err := gameService.CreateSession(ctx, "island")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	targets, err := gameService.SelectClub(ctx, info.ID, "Driver")
//	result, err := gameService.Shoot(ctx, info.ID, service.ShotRequest{
//		Target: targets.Targets[0].Coord,
//	})
package service
