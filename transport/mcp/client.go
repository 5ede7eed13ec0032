package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/hexgolf/game/engine"
	"github.com/wricardo/hexgolf/game/scores"
	"github.com/wricardo/hexgolf/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Hex Golf",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Hex Golf - MCP Interface

This is a thin client that proxies all requests to the REST API server.

OBJECTIVE:
Get the ball from the tee into the hole in as few strokes as possible.

AVAILABLE TOOLS:
- create_session / list_sessions / get_session: manage rounds
- round_state: ball position, strokes and par
- list_clubs: the club bag for a round
- select_club: pick a club and see every target it can reach with the roll needed
- take_shot: hit at one of the offered targets (dice are rolled for you unless given)
- reset_round: back to the tee
- shot_history: past strokes
- list_courses / score_history: course catalog and completed holes
- describe_tile: terrain at a hex
- game_instructions: full rules

NOTE: The 'intent' parameter on take_shot serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new round with optional course selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"course_id": map[string]interface{}{
					"type":        "string",
					"description": "Course to play (optional, see list_courses)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active rounds",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific round, including its course",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Round operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "round_state",
		Description: "Get the current round state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleRoundState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_clubs",
		Description: "List the clubs available in a round with their distance and accuracy",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleListClubs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_club",
		Description: "Select a club and list every target it can reach with the accuracy roll needed",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"club": map[string]interface{}{
					"type":        "string",
					"description": "Club name, e.g. Driver, Iron, Wedge, Putter",
				},
			},
			Required: []string{"session_id", "club"},
		},
	}, c.handleSelectClub)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "take_shot",
		Description: "Hit the ball at one of the offered targets. Dice are rolled by the server unless provided.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"club": map[string]interface{}{
					"type":        "string",
					"description": "Club to use (optional when a club is already selected)",
				},
				"q": map[string]interface{}{
					"type":        "integer",
					"description": "Target hex q coordinate",
				},
				"r": map[string]interface{}{
					"type":        "integer",
					"description": "Target hex r coordinate",
				},
				"accuracy_roll": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"maximum":     6,
					"description": "Accuracy die (optional)",
				},
				"direction_roll": map[string]interface{}{
					"type":        "integer",
					"minimum":     1,
					"maximum":     6,
					"description": "Direction die (optional)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this shot (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "q", "r"},
		},
	}, c.handleTakeShot)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_round",
		Description: "Return the ball to the tee and clear strokes",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "shot_history",
		Description: "Get the shot history for a round",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleShotHistory)

	// Courses and scores
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_courses",
		Description: "List available courses",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListCourses)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "score_history",
		Description: "List completed holes and per-course bests",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"course_id": map[string]interface{}{
					"type":        "string",
					"description": "Only show this course (optional)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of records",
				},
			},
		},
	}, c.handleScoreHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_tile",
		Description: "Describe the terrain at a hex of the round's course and whether a ball can land there",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"q": map[string]interface{}{
					"type":        "integer",
					"description": "Hex q coordinate",
				},
				"r": map[string]interface{}{
					"type":        "integer",
					"description": "Hex r coordinate",
				},
			},
			Required: []string{"session_id", "q", "r"},
		},
	}, c.handleDescribeTile)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Argument helpers

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a numeric argument; JSON numbers arrive as float64
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	default:
		return 0, false
	}
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	courseID, _ := args["course_id"].(string)

	body := map[string]string{}
	if courseID != "" {
		body["course_id"] = courseID
	}

	var session service.SessionInfo
	if err := c.apiCall("POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nCourse: %s\n\n%s", session.ID, session.CourseID, formatRoundState(session.RoundState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall("GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		strokes, status := 0, "in play"
		if s.RoundState != nil {
			strokes = s.RoundState.StrokeCount
			if s.RoundState.Complete {
				status = "complete"
			}
		}
		fmt.Fprintf(&b, "- %s (Course: %s, Strokes: %d, %s, Created: %s)\n",
			s.ID, s.CourseID, strokes, status, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall("GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleRoundState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var state engine.RoundState
	if err := c.apiCall("GET", sessionPath(sessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoundState(&state)), nil
}

func (c *Client) handleListClubs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Clubs []engine.Club `json:"clubs"`
	}
	if err := c.apiCall("GET", sessionPath(sessionID, "/clubs"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatClubs(response.Clubs)), nil
}

func (c *Client) handleSelectClub(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	club, _ := args["club"].(string)

	var result service.TargetsResult
	if err := c.apiCall("POST", sessionPath(sessionID, "/club"), map[string]string{"club": club}, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatTargets(&result)), nil
}

func (c *Client) handleTakeShot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	club, _ := args["club"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_, _ = args["intent"].(string)

	q, okQ := intArg(args, "q")
	r, okR := intArg(args, "r")
	if !okQ || !okR {
		return mcp.NewToolResultError("q and r are required"), nil
	}

	req := service.ShotRequest{
		Club:   club,
		Target: engine.HexCoord{Q: q, R: r},
	}
	if v, ok := intArg(args, "accuracy_roll"); ok {
		req.AccuracyRoll = &v
	}
	if v, ok := intArg(args, "direction_roll"); ok {
		req.DirectionRoll = &v
	}

	var result service.ShotResult
	if err := c.apiCall("POST", sessionPath(sessionID, "/shot"), req, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatShotResult(&result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var response struct {
		Message string             `json:"message"`
		State   *engine.RoundState `json:"state"`
	}
	if err := c.apiCall("POST", sessionPath(sessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatRoundState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleShotHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall("GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListCourses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var courses []service.CourseInfo
	if err := c.apiCall("GET", "/api/courses", nil, &courses); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Courses:\n\n")
	for _, course := range courses {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n  Par %d, %d tiles, best possible %d shots\n\n",
			course.Name, course.CourseID, course.Description, course.Par, course.Tiles, course.MinimumShots)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleScoreHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	params := url.Values{}
	if courseID, _ := args["course_id"].(string); courseID != "" {
		params.Set("course", courseID)
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	path := "/api/scores"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var list struct {
		Scores []scores.Record `json:"scores"`
	}
	if err := c.apiCall("GET", path, nil, &list); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var summary struct {
		Courses []scores.Summary `json:"courses"`
	}
	if err := c.apiCall("GET", "/api/scores/summary", nil, &summary); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatScores(list.Scores, summary.Courses)), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `⛳ Hex Golf - Complete Instructions

OBJECTIVE:
Play one hole on a hex course: move the ball from the tee into the hole in as few strokes as possible. Par is the expected number of strokes.

COORDINATES:
Hexes use axial coordinates (q, r). A club's range is counted as |dq| + |dr| between the ball and the target.

TERRAIN:
• tee, fairway, green, hole - normal lies
• rough - lowers the roll needed for that target by 1
• bunker - lowers the roll needed for that target by 2
• water - never a target; a ball is never left in water
• hexes that are not on the course are never targets

CLUBS (default bag):
• Driver - distance 3, accuracy 2
• Iron - distance 2, accuracy 3
• Wedge - distance 1, accuracy 4
• Putter - distance 1, accuracy 5
Courses may bring their own bag; use list_clubs.

TAKING A SHOT:
1. select_club lists every target in range with its required roll (always 1-6)
2. take_shot at one of those targets
3. Two dice are rolled:
   - Accuracy die: the shot succeeds when it is at least the required roll
   - Direction die: 1-2 drifts -1, 3-4 flies straight, 5-6 drifts +1
4. Drift moves the landing one hex sideways: along r when the shot travels mostly along q, otherwise along q
5. If the drifted hex is water or off the course, the ball lands on the target instead

MISSES:
A missed shot still costs a stroke. The ball stays where it was.

FINISHING:
The hole is complete when the ball lands on the hole hex. The score is recorded against par (Birdie, Par, Bogey...). A finished round accepts no more shots; use reset_round to replay.

STRATEGY:
- Longer clubs cover more ground but need higher rolls on clean lies
- Aiming into rough or bunkers is easier to hit but leaves a worse lie for the next shot
- Watch for water beside the line of play: a drift toward it falls back to the target

SESSION MANAGEMENT:
- Each round has a short session ID
- Rounds keep independent state and can be resumed later
- score_history shows completed holes and per-course bests

Good luck out there! 🏌️`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeTile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	q, okQ := intArg(args, "q")
	r, okR := intArg(args, "r")
	if !okQ || !okR {
		return mcp.NewToolResultError("q and r are required"), nil
	}

	var session service.SessionInfo
	if err := c.apiCall("GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if session.Course == nil {
		return mcp.NewToolResultError("session has no course"), nil
	}

	return mcp.NewToolResultText(describeTile(&session, engine.HexCoord{Q: q, R: r})), nil
}
