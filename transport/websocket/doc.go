// Package websocket pushes live round updates to spectators.
//
// A central Hub owns every connection. Clients join a session with
// /ws?session=<id> and receive JSON messages for that session only:
//
//	{"session_id": "ab12", "event": "round_state", "round_state": {...}}
//	{"session_id": "ab12", "event": "shot", "data": {...shot record...}}
//	{"session_id": "ab12", "event": "hole_complete", "data": {...score...}}
//
// Incoming frames are ignored. Each client has a read pump that enforces the
// pong deadline and a write pump that sends pings.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	hub.BroadcastState(sessionID, state)
package websocket
