// Package api implements schedule.Store against the hosted runofshow
// backend. Every mutation is a POST of a small JSON body; the server
// replies with the stored entity so optimistic local state can be
// reconciled.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/time/rate"

	"github.com/runofshow/runofshow/internal/schedule"
)

// Client errors.
var (
	ErrNoToken      = errors.New("api token is not configured")
	ErrBadToken     = errors.New("api token is not a valid JWT")
	ErrUnauthorized = errors.New("api rejected the token")
)

const requestTimeout = 30 * time.Second

// Client talks to the runofshow backend. It implements schedule.Store.
// Burst-heavy interactions (drag resizing fires an update per settle) are
// smoothed by a client-side rate limiter.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// New creates a client for the given backend.
func New(baseURL, token string) (*Client, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: requestTimeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 20),
	}, nil
}

// identityClaims is the subset of the sign-in JWT the client reads.
type identityClaims struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture"`
	jwt.RegisteredClaims
}

// CurrentUser derives the signed-in person from the token payload. The
// signature is the server's concern; the client only needs the identity
// fields to label the "You" lane.
func (c *Client) CurrentUser() (schedule.Person, error) {
	var claims identityClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(c.token, &claims); err != nil {
		return schedule.Person{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if claims.Email == "" {
		return schedule.Person{}, fmt.Errorf("%w: missing email claim", ErrBadToken)
	}
	return schedule.Person{
		Email:          claims.Email,
		Name:           claims.Name,
		ProfilePicture: claims.ProfilePicture,
	}, nil
}

// Wire types. Timestamps travel as RFC 3339 UTC strings.

type personJSON struct {
	Email          string `json:"email"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

type blockJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Color     string `json:"color"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type taskJSON struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	StartTime   string       `json:"start_time"`
	EndTime     string       `json:"end_time"`
	AssignedTo  []personJSON `json:"assigned_to"`
}

type eventJSON struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	StartTime      string       `json:"start_time"`
	EndTime        string       `json:"end_time"`
	TeamMembers    []personJSON `json:"team_members"`
	CalendarEvents []blockJSON  `json:"calendar_events"`
	Tasks          []taskJSON   `json:"tasks"`
}

func decodePerson(p personJSON) schedule.Person {
	return schedule.Person{Email: p.Email, Name: p.Name, ProfilePicture: p.ProfilePicture}
}

func encodePerson(p schedule.Person) personJSON {
	return personJSON{Email: p.Email, Name: p.Name, ProfilePicture: p.ProfilePicture}
}

func decodeTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func decodeBlock(b blockJSON) (schedule.CalendarBlock, error) {
	start, err := decodeTime(b.StartTime)
	if err != nil {
		return schedule.CalendarBlock{}, err
	}
	end, err := decodeTime(b.EndTime)
	if err != nil {
		return schedule.CalendarBlock{}, err
	}
	return schedule.CalendarBlock{ID: b.ID, Title: b.Title, Color: b.Color, Start: start, End: end}, nil
}

func decodeTask(t taskJSON) (schedule.Task, error) {
	start, err := decodeTime(t.StartTime)
	if err != nil {
		return schedule.Task{}, err
	}
	end, err := decodeTime(t.EndTime)
	if err != nil {
		return schedule.Task{}, err
	}
	task := schedule.Task{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Start:       start,
		End:         end,
	}
	for _, p := range t.AssignedTo {
		task.AssignedTo = append(task.AssignedTo, decodePerson(p))
	}
	return task, nil
}

func decodeEvent(e eventJSON) (*schedule.Event, error) {
	start, err := decodeTime(e.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := decodeTime(e.EndTime)
	if err != nil {
		return nil, err
	}
	event := &schedule.Event{ID: e.ID, Title: e.Title, Start: start, End: end}
	for _, p := range e.TeamMembers {
		event.TeamMembers = append(event.TeamMembers, decodePerson(p))
	}
	for _, b := range e.CalendarEvents {
		block, err := decodeBlock(b)
		if err != nil {
			return nil, err
		}
		event.CalendarBlocks = append(event.CalendarBlocks, block)
	}
	for _, t := range e.Tasks {
		task, err := decodeTask(t)
		if err != nil {
			return nil, err
		}
		event.Tasks = append(event.Tasks, task)
	}
	return event, nil
}

// post sends one API call and decodes the response body into out (when
// out is non-nil).
func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s: %w", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return notFoundFor(endpoint)
	default:
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s failed (status %d): %s", endpoint, resp.StatusCode, string(msg))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}
	return nil
}

// notFoundFor maps a 404 to the domain sentinel for the entity the
// endpoint operates on.
func notFoundFor(endpoint string) error {
	switch endpoint {
	case "/api/getEvent":
		return schedule.ErrEventNotFound
	case "/api/updateCalendarEvent", "/api/deleteCalendarEvent":
		return schedule.ErrBlockNotFound
	case "/api/editEventTask", "/api/deleteEventTask", "/api/assignEventTask", "/api/unassignEventTask":
		return schedule.ErrTaskNotFound
	default:
		return schedule.ErrEventNotFound
	}
}

// GetEvent fetches the full event snapshot.
func (c *Client) GetEvent(ctx context.Context, id string) (*schedule.Event, error) {
	var wire eventJSON
	body := map[string]string{"event_id": id}
	if err := c.post(ctx, "/api/getEvent", body, &wire); err != nil {
		return nil, err
	}
	return decodeEvent(wire)
}

// CreateCalendarBlock stores a new block on the schedule lane.
func (c *Client) CreateCalendarBlock(ctx context.Context, eventID string, b schedule.CalendarBlock) (schedule.CalendarBlock, error) {
	body := struct {
		EventID string `json:"event_id"`
		blockJSON
	}{
		EventID: eventID,
		blockJSON: blockJSON{
			ID:        b.ID,
			Title:     b.Title,
			Color:     b.Color,
			StartTime: encodeTime(b.Start),
			EndTime:   encodeTime(b.End),
		},
	}
	var wire blockJSON
	if err := c.post(ctx, "/api/createCalendarEvent", body, &wire); err != nil {
		return schedule.CalendarBlock{}, err
	}
	return decodeBlock(wire)
}

// blockPatchJSON carries only the changed fields.
type blockPatchJSON struct {
	ID        string  `json:"id"`
	Title     *string `json:"title,omitempty"`
	Color     *string `json:"color,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
}

// UpdateCalendarBlock applies a partial update and returns the stored block.
func (c *Client) UpdateCalendarBlock(ctx context.Context, id string, patch schedule.BlockPatch) (schedule.CalendarBlock, error) {
	body := blockPatchJSON{ID: id, Title: patch.Title, Color: patch.Color}
	if patch.Span != nil {
		start := encodeTime(patch.Span.Start)
		end := encodeTime(patch.Span.End)
		body.StartTime = &start
		body.EndTime = &end
	}
	var wire blockJSON
	if err := c.post(ctx, "/api/updateCalendarEvent", body, &wire); err != nil {
		return schedule.CalendarBlock{}, err
	}
	return decodeBlock(wire)
}

// DeleteCalendarBlock removes a block.
func (c *Client) DeleteCalendarBlock(ctx context.Context, id string) error {
	return c.post(ctx, "/api/deleteCalendarEvent", map[string]string{"id": id}, nil)
}

// CreateTask stores a new task assigned to one person.
func (c *Client) CreateTask(ctx context.Context, eventID string, t schedule.Task, assigneeEmail string) (schedule.Task, error) {
	body := struct {
		EventID     string `json:"event_id"`
		ID          string `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
		AssignedTo  string `json:"assigned_to"`
	}{
		EventID:     eventID,
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		StartTime:   encodeTime(t.Start),
		EndTime:     encodeTime(t.End),
		AssignedTo:  assigneeEmail,
	}
	var wire taskJSON
	if err := c.post(ctx, "/api/createEventTask", body, &wire); err != nil {
		return schedule.Task{}, err
	}
	return decodeTask(wire)
}

// taskPatchJSON carries only the changed fields.
type taskPatchJSON struct {
	ID          string  `json:"id"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartTime   *string `json:"start_time,omitempty"`
	EndTime     *string `json:"end_time,omitempty"`
}

// UpdateTask applies a partial update and returns the stored task.
func (c *Client) UpdateTask(ctx context.Context, id string, patch schedule.TaskPatch) (schedule.Task, error) {
	body := taskPatchJSON{ID: id, Title: patch.Title, Description: patch.Description}
	if patch.Span != nil {
		start := encodeTime(patch.Span.Start)
		end := encodeTime(patch.Span.End)
		body.StartTime = &start
		body.EndTime = &end
	}
	var wire taskJSON
	if err := c.post(ctx, "/api/editEventTask", body, &wire); err != nil {
		return schedule.Task{}, err
	}
	return decodeTask(wire)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.post(ctx, "/api/deleteEventTask", map[string]string{"id": id}, nil)
}

// AssignTask adds a team member to a task's assignees and returns the
// stored task.
func (c *Client) AssignTask(ctx context.Context, taskID, eventID, email string) (schedule.Task, error) {
	body := map[string]string{"task_id": taskID, "event_id": eventID, "email": email}
	var wire taskJSON
	if err := c.post(ctx, "/api/assignEventTask", body, &wire); err != nil {
		return schedule.Task{}, err
	}
	return decodeTask(wire)
}

// UnassignTask removes a team member from a task's assignees and returns
// the stored task.
func (c *Client) UnassignTask(ctx context.Context, taskID, email string) (schedule.Task, error) {
	body := map[string]string{"task_id": taskID, "email": email}
	var wire taskJSON
	if err := c.post(ctx, "/api/unassignEventTask", body, &wire); err != nil {
		return schedule.Task{}, err
	}
	return decodeTask(wire)
}

// Close is a no-op; the HTTP client holds no resources worth releasing.
func (c *Client) Close() error {
	return nil
}
