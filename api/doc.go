// Package api provides the HTTP REST API for Hex Golf.
//
// Endpoints:
//
// Sessions:
//   - POST /api/sessions - Create a round ({"course_id": "island"}, default classic)
//   - GET /api/sessions - List rounds (?sort=created|accessed&order=asc|desc&limit=N&course=id)
//   - GET /api/sessions/{id} - Get one round with its course
//   - DELETE /api/sessions/{id} - Delete a round
//
// Round Operations:
//   - GET /api/sessions/{id}/state - Current round state
//   - GET /api/sessions/{id}/clubs - Club bag for the round's course
//   - POST /api/sessions/{id}/club - Select a club, returns the reachable targets
//   - POST /api/sessions/{id}/shot - Take a stroke
//   - POST /api/sessions/{id}/reset - Back to the tee
//   - GET /api/sessions/{id}/history - Paginated shots (?page&limit&order)
//
// Courses and Scores:
//   - GET /api/courses, GET /api/courses/{id}, POST /api/courses
//   - GET /api/scores (?course&limit), GET /api/scores/summary
//
// Live updates are served on /ws?session={id}; /health reports liveness.
//
// Shot Request:
//
//	{
//	  "club": "Iron",                 // optional when a club is selected
//	  "target": {"q": -2, "r": 0},
//	  "accuracy_roll": 4,             // optional, rolled by the server
//	  "direction_roll": 3             // optional, rolled by the server
//	}
//
// Error Handling:
//
// Errors are returned as {"error": "message"}. Rule violations (unknown or
// invalid club, dice outside 1-6, a target that was not offered, no club
// selected, invalid course) are 400, shooting after the hole is finished is
// 409 and unknown sessions or courses are 404.
package api
