// Package mcp exposes Hex Golf to AI agents over the Model Context Protocol.
//
// The Client wraps the REST API: every tool translates its arguments into an
// HTTP call against a running server and renders the JSON response as text.
//
// MCP Tools:
//   - create_session, list_sessions, get_session: session management
//   - round_state, list_clubs, describe_tile: inspect the round
//   - select_club: list the targets a club can reach with their required rolls
//   - take_shot: shoot at an offered target, optionally with explicit dice
//   - reset_round: return the ball to the tee
//   - shot_history: paginated stroke log
//   - list_courses, score_history: course catalog and completed holes
//   - game_instructions: rules and strategy
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
//
// Session-scoped tools take a required session_id; create_session returns one.
package mcp
