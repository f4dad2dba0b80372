// Package client talks to a taskboard backend. It owns the session
// credentials, enforces the authorization policy before dispatching anything
// the server would reject anyway, and maps HTTP failures back onto domain
// errors. The server stays the source of truth: every mutation returns the
// server's copy of the entity, never a locally patched one.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/policy"
	"github.com/takdanai-ph/taskboard/services"

	"github.com/charmbracelet/log"
)

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	logger  *log.Logger
}

func New(baseURL string, session *Session, logger *log.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		session: session,
		logger:  logger,
	}
}

func (c *Client) Session() *Session {
	return c.session
}

// do performs a request and decodes the response into out (if non-nil).
// A 401 from any endpoint clears the session via OnUnauthorized.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Current().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkFailure(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// errorFromResponse maps a status code onto the domain taxonomy, carrying the
// server's message through verbatim when there is one.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	var base error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		c.session.OnUnauthorized()
		base = domain.ErrUnauthorized()
	case http.StatusForbidden:
		base = domain.ErrForbidden()
	case http.StatusNotFound:
		base = domain.ErrNotFound()
	case http.StatusConflict:
		base = domain.ErrConflict()
	case http.StatusBadRequest:
		base = domain.ErrValidation(payload.Message)
		return base
	default:
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, payload.Message)
	}

	if payload.Message != "" {
		return fmt.Errorf("%w: %s", base, payload.Message)
	}
	return base
}

// LogIn authenticates and stores the returned credentials in the session.
func (c *Client) LogIn(ctx context.Context, username, password string) (*domain.User, error) {
	req := map[string]string{"username": username, "password": password}
	var resp struct {
		Status      string      `json:"status"`
		AccessToken string      `json:"accessToken"`
		User        domain.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		if errors.Is(err, domain.ErrUnauthorized()) {
			return nil, domain.ErrInvalidCredentials()
		}
		return nil, err
	}

	if err := c.session.set(resp.AccessToken, resp.User.Role, resp.User.Id.Hex()); err != nil {
		return nil, err
	}
	c.logger.Info("logged in", "username", username, "role", resp.User.Role)
	return &resp.User, nil
}

// LogOut clears the local session. The backend keeps no session state, so
// there is nothing to call remotely.
func (c *Client) LogOut() {
	c.session.Clear()
	c.logger.Info("logged out")
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/auth/forgot-password", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	req := map[string]string{"token": token, "password": password}
	return c.do(ctx, http.MethodPost, "/auth/reset-password", req, nil)
}

// TaskPayload mirrors the task form: nil fields are left untouched by the
// server, empty-string references clear the link.
type TaskPayload struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	AssigneeId  *string   `json:"assignee_id,omitempty"`
	TeamId      *string   `json:"team_id,omitempty"`
}

func (p TaskPayload) touchesNonStatusFields() bool {
	return p.Title != nil || p.Description != nil || p.DueDate != nil ||
		p.Tags != nil || p.AssigneeId != nil || p.TeamId != nil
}

func (c *Client) Tasks(ctx context.Context) (domain.Tasks, error) {
	var tasks domain.Tasks
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) Task(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+id, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) MyWork(ctx context.Context) (domain.Tasks, error) {
	var tasks domain.Tasks
	if err := c.do(ctx, http.MethodGet, "/tasks/my-work", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) TaskSummary(ctx context.Context) (services.TaskSummary, error) {
	var summary services.TaskSummary
	if err := c.do(ctx, http.MethodGet, "/tasks/summary", nil, &summary); err != nil {
		return services.TaskSummary{}, err
	}
	return summary, nil
}

func (c *Client) TaskDurations(ctx context.Context, timeRange string) ([]services.TaskDuration, error) {
	var durations []services.TaskDuration
	path := "/tasks/durations?timeRange=" + timeRange
	if err := c.do(ctx, http.MethodGet, path, nil, &durations); err != nil {
		return nil, err
	}
	return durations, nil
}

// CreateTask rejects User-role callers before anything goes on the wire.
func (c *Client) CreateTask(ctx context.Context, payload TaskPayload) (*domain.Task, error) {
	if !policy.CanCreateTask(c.session.Current().Role) {
		return nil, domain.ErrForbidden()
	}
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask checks the field policy client-side first: a User-role caller
// submitting anything beyond a status change is rejected without a request.
func (c *Client) UpdateTask(ctx context.Context, id string, payload TaskPayload) (*domain.Task, error) {
	fields, err := policy.MutableTaskFields(c.session.Current().Role, true)
	if err != nil {
		return nil, err
	}
	if len(fields) == 1 && payload.touchesNonStatusFields() {
		return nil, domain.ErrForbidden()
	}

	var task domain.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, payload, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskStatus is the one mutation every authenticated role may attempt;
// the server's state machine decides whether this actor can make this move.
func (c *Client) UpdateTaskStatus(ctx context.Context, id string, status domain.Status) (*domain.Task, error) {
	s := status.String()
	return c.UpdateTask(ctx, id, TaskPayload{Status: &s})
}

func (c *Client) ApproveTask(ctx context.Context, id string) (*domain.Task, error) {
	if !policy.CanApproveCompletion(c.session.Current().Role) {
		return nil, domain.ErrForbidden()
	}
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/"+id+"/approve", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) RejectTask(ctx context.Context, id string) (*domain.Task, error) {
	if !policy.CanApproveCompletion(c.session.Current().Role) {
		return nil, domain.ErrForbidden()
	}
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/"+id+"/reject", nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if !policy.CanDeleteTask(c.session.Current().Role) {
		return domain.ErrForbidden()
	}
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil)
}

func (c *Client) Teams(ctx context.Context) (domain.Teams, error) {
	var teams domain.Teams
	if err := c.do(ctx, http.MethodGet, "/teams", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (c *Client) Team(ctx context.Context, id string) (*domain.Team, error) {
	var team domain.Team
	if err := c.do(ctx, http.MethodGet, "/teams/"+id, nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) CreateTeam(ctx context.Context, name, description string) (*domain.Team, error) {
	if !policy.CanManageTeams(c.session.Current().Role) {
		return nil, domain.ErrForbidden()
	}
	req := map[string]string{"name": name, "description": description}
	var team domain.Team
	if err := c.do(ctx, http.MethodPost, "/teams", req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) DeleteTeam(ctx context.Context, id string) error {
	if !policy.CanManageTeams(c.session.Current().Role) {
		return domain.ErrForbidden()
	}
	return c.do(ctx, http.MethodDelete, "/teams/"+id, nil, nil)
}

func (c *Client) AddTeamMember(ctx context.Context, teamId, userId string) (*domain.Team, error) {
	if !policy.CanManageTeams(c.session.Current().Role) {
		return nil, domain.ErrForbidden()
	}
	var team domain.Team
	req := map[string]string{"user_id": userId}
	if err := c.do(ctx, http.MethodPost, "/teams/"+teamId+"/members", req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) RemoveTeamMember(ctx context.Context, teamId, userId string) (*domain.Team, error) {
	if !policy.CanManageTeams(c.session.Current().Role) {
		return nil, domain.ErrForbidden()
	}
	var team domain.Team
	if err := c.do(ctx, http.MethodDelete, "/teams/"+teamId+"/members/"+userId, nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) SetTeamLeader(ctx context.Context, teamId, userId string) (*domain.Team, error) {
	if !policy.CanManageTeams(c.session.Current().Role) {
		return nil, domain.ErrForbidden()
	}
	var team domain.Team
	req := map[string]string{"user_id": userId}
	if err := c.do(ctx, http.MethodPut, "/teams/"+teamId+"/leader", req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (c *Client) Users(ctx context.Context) (domain.Users, error) {
	var users domain.Users
	if err := c.do(ctx, http.MethodGet, "/auth/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, error) {
	var notifications []domain.Notification
	if err := c.do(ctx, http.MethodGet, "/notifications", nil, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/notifications/"+id+"/read", nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPatch, "/notifications/read", nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notifications/"+id, nil, nil)
}
