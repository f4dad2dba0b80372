package client

import (
	"context"
	"io"
	stdlog "log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/handlers"
	"github.com/takdanai-ph/taskboard/repositories"
	"github.com/takdanai-ph/taskboard/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

const testPassword = "correct-horse"

// testEnv runs the full HTTP stack over in-memory repositories, with one
// seeded account per role.
type testEnv struct {
	server   *httptest.Server
	users    map[string]domain.User
	requests int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userRepo := repositories.NewUserInMem()
	taskRepo := repositories.NewTaskInMem()
	teamRepo := repositories.NewTeamInMem()
	notificationRepo := repositories.NewNotificationInMem()

	env := &testEnv{users: make(map[string]domain.User)}
	seed := func(username string, role domain.Role) {
		hash, err := services.HashPassword(testPassword)
		require.NoError(t, err)
		user, err := userRepo.Insert(domain.User{
			Username: username,
			Password: hash,
			Email:    username + "@example.com",
			Role:     role,
		})
		require.NoError(t, err)
		env.users[username] = user
	}
	seed("alice", domain.ADMIN)
	seed("mallory", domain.MANAGER)
	seed("bob", domain.USER)

	tracer := noop.NewTracerProvider().Tracer("test")
	authService := services.NewAuthService(userRepo, "test-secret")
	notificationService := services.NewNotificationService(notificationRepo)
	taskService := services.NewTaskService(taskRepo, notificationService, stdlog.New(io.Discard, "", 0), tracer)

	router := handlers.NewRouter(
		handlers.NewAuthMiddleware(authService),
		handlers.NewAuthHandler(authService, services.NewUserService(userRepo)),
		handlers.NewTaskHandler(taskService, tracer),
		handlers.NewTeamHandler(services.NewTeamService(teamRepo, userRepo)),
		handlers.NewNotificationHandler(notificationService),
	)

	env.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&env.requests, 1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) requestCount() int64 {
	return atomic.LoadInt64(&e.requests)
}

func (e *testEnv) client(t *testing.T) *Client {
	t.Helper()
	session, err := NewSession(nil, testLogger())
	require.NoError(t, err)
	return New(e.server.URL, session, testLogger())
}

func (e *testEnv) login(t *testing.T, username string) *Client {
	t.Helper()
	c := e.client(t)
	_, err := c.LogIn(context.Background(), username, testPassword)
	require.NoError(t, err)
	return c
}

func str(s string) *string { return &s }

func (e *testEnv) createTask(t *testing.T, c *Client, title string, assignee string) *domain.Task {
	t.Helper()
	payload := TaskPayload{
		Title:       str(title),
		Description: str("some work"),
		DueDate:     str("2026-09-30"),
	}
	if assignee != "" {
		payload.AssigneeId = str(e.users[assignee].Id.Hex())
	}
	task, err := c.CreateTask(context.Background(), payload)
	require.NoError(t, err)
	return task
}

func TestLogInStoresAndPersistsCredentials(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(t.TempDir(), "creds.db")

	store, err := OpenCredStore(path)
	require.NoError(t, err)
	session, err := NewSession(store, testLogger())
	require.NoError(t, err)

	c := New(env.server.URL, session, testLogger())
	user, err := c.LogIn(context.Background(), "mallory", testPassword)
	require.NoError(t, err)
	assert.Equal(t, domain.MANAGER, user.Role)

	state := session.Current()
	assert.True(t, state.Authenticated())
	assert.Equal(t, domain.MANAGER, state.Role)
	assert.Equal(t, env.users["mallory"].Id.Hex(), state.UserId)
	require.NoError(t, store.Close())

	// Restart: the same store path restores the session.
	store, err = OpenCredStore(path)
	require.NoError(t, err)
	defer store.Close()
	restored, err := NewSession(store, testLogger())
	require.NoError(t, err)
	assert.Equal(t, state, restored.Current())
}

func TestLogInBadPassword(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)

	_, err := c.LogIn(context.Background(), "mallory", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials())
	assert.False(t, c.Session().Current().Authenticated())
}

func TestLogOutClearsSession(t *testing.T) {
	env := newTestEnv(t)
	c := env.login(t, "bob")

	c.LogOut()
	assert.False(t, c.Session().Current().Authenticated())

	_, err := c.Me(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized())
}

// A User-role caller never gets to put a forbidden request on the wire.
func TestUserForbiddenActionsFailFast(t *testing.T) {
	env := newTestEnv(t)
	c := env.login(t, "bob")
	before := env.requestCount()

	_, err := c.CreateTask(context.Background(), TaskPayload{Title: str("nope")})
	assert.ErrorIs(t, err, domain.ErrForbidden())

	_, err = c.UpdateTask(context.Background(), "ignored", TaskPayload{Title: str("nope")})
	assert.ErrorIs(t, err, domain.ErrForbidden())

	_, err = c.ApproveTask(context.Background(), "ignored")
	assert.ErrorIs(t, err, domain.ErrForbidden())

	_, err = c.RejectTask(context.Background(), "ignored")
	assert.ErrorIs(t, err, domain.ErrForbidden())

	err = c.DeleteTask(context.Background(), "ignored")
	assert.ErrorIs(t, err, domain.ErrForbidden())

	_, err = c.CreateTeam(context.Background(), "nope", "")
	assert.ErrorIs(t, err, domain.ErrForbidden())

	assert.Equal(t, before, env.requestCount(), "forbidden calls must not reach the server")
}

func TestTaskLifecycleWithApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	task := env.createTask(t, manager, "write report", "bob")
	assert.Equal(t, domain.PENDING, task.Status)
	assert.False(t, task.NeedsCompletionApproval)

	bob := env.login(t, "bob")
	mine, err := bob.MyWork(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, task.Id, mine[0].Id)

	task, err = bob.UpdateTaskStatus(ctx, task.Id.Hex(), domain.IN_PROGRESS)
	require.NoError(t, err)
	assert.Equal(t, domain.IN_PROGRESS, task.Status)

	// An assignee's completion is provisional until a manager signs off.
	task, err = bob.UpdateTaskStatus(ctx, task.Id.Hex(), domain.COMPLETED)
	require.NoError(t, err)
	assert.Equal(t, domain.COMPLETED, task.Status)
	assert.True(t, task.NeedsCompletionApproval)

	admin := env.login(t, "alice")
	task, err = admin.ApproveTask(ctx, task.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.COMPLETED, task.Status)
	assert.False(t, task.NeedsCompletionApproval)
}

func TestTaskLifecycleWithRejection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	task := env.createTask(t, manager, "fix the build", "bob")

	bob := env.login(t, "bob")
	_, err := bob.UpdateTaskStatus(ctx, task.Id.Hex(), domain.IN_PROGRESS)
	require.NoError(t, err)
	_, err = bob.UpdateTaskStatus(ctx, task.Id.Hex(), domain.COMPLETED)
	require.NoError(t, err)

	// Rejection lands the task back at Pending, never In Progress.
	task, err = manager.RejectTask(ctx, task.Id.Hex())
	require.NoError(t, err)
	assert.Equal(t, domain.PENDING, task.Status)
	assert.False(t, task.NeedsCompletionApproval)
}

func TestManagerCompletionSkipsApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	task := env.createTask(t, manager, "quick fix", "")

	task, err := manager.UpdateTaskStatus(ctx, task.Id.Hex(), domain.COMPLETED)
	require.NoError(t, err)
	assert.Equal(t, domain.COMPLETED, task.Status)
	assert.False(t, task.NeedsCompletionApproval)
}

func TestApproveNotAwaitingIsConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	task := env.createTask(t, manager, "still pending", "")

	_, err := manager.ApproveTask(ctx, task.Id.Hex())
	assert.ErrorIs(t, err, domain.ErrConflict())

	_, err = manager.RejectTask(ctx, task.Id.Hex())
	assert.ErrorIs(t, err, domain.ErrConflict())
}

func TestAssigneeCannotSkipInProgress(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	task := env.createTask(t, manager, "no shortcuts", "bob")

	bob := env.login(t, "bob")
	_, err := bob.UpdateTaskStatus(ctx, task.Id.Hex(), domain.COMPLETED)
	assert.ErrorIs(t, err, domain.ErrConflict())
}

func TestOtherUserCannotTouchTask(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	task := env.createTask(t, manager, "not yours", "")

	bob := env.login(t, "bob")
	_, err := bob.UpdateTaskStatus(ctx, task.Id.Hex(), domain.IN_PROGRESS)
	assert.ErrorIs(t, err, domain.ErrForbidden())
}

func TestUnauthorizedResponseClearsSession(t *testing.T) {
	env := newTestEnv(t)
	c := env.client(t)
	require.NoError(t, c.Session().set("not-a-real-token", domain.ADMIN, "whoever"))

	_, err := c.Tasks(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized())
	assert.False(t, c.Session().Current().Authenticated())
}

func TestAssignmentCreatesNotification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	env.createTask(t, manager, "read your inbox", "bob")

	bob := env.login(t, "bob")
	notifications, err := bob.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "read your inbox")
	assert.False(t, notifications[0].IsRead)

	require.NoError(t, bob.MarkNotificationRead(ctx, notifications[0].ID))
	notifications, err = bob.Notifications(ctx)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.True(t, notifications[0].IsRead)

	require.NoError(t, bob.DeleteNotification(ctx, notifications[0].ID))
	notifications, err = bob.Notifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestTeamManagement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	team, err := manager.CreateTeam(ctx, "platform", "keeps the lights on")
	require.NoError(t, err)

	_, err = manager.CreateTeam(ctx, "platform", "duplicate")
	assert.ErrorIs(t, err, domain.ErrConflict())

	bobId := env.users["bob"].Id.Hex()
	team, err = manager.AddTeamMember(ctx, team.Id.Hex(), bobId)
	require.NoError(t, err)
	require.Len(t, team.Members, 1)

	team, err = manager.SetTeamLeader(ctx, team.Id.Hex(), bobId)
	require.NoError(t, err)
	require.NotNil(t, team.LeaderId)
	assert.Equal(t, bobId, team.LeaderId.Hex())

	team, err = manager.RemoveTeamMember(ctx, team.Id.Hex(), bobId)
	require.NoError(t, err)
	assert.Empty(t, team.Members)
	assert.Nil(t, team.LeaderId)
}

func TestUserAdministrationIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Managers can list users but the server still refuses account changes.
	manager := env.login(t, "mallory")
	users, err := manager.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)

	bob := env.login(t, "bob")
	_, err = bob.Users(ctx)
	assert.ErrorIs(t, err, domain.ErrForbidden())
}

func TestTaskSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	env.createTask(t, manager, "one", "")
	task := env.createTask(t, manager, "two", "")
	_, err := manager.UpdateTaskStatus(ctx, task.Id.Hex(), domain.COMPLETED)
	require.NoError(t, err)

	summary, err := manager.TaskSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Pending)
	assert.Equal(t, 0, summary.InProgress)
	assert.Equal(t, 1, summary.Completed)
	assert.Equal(t, 0, summary.AwaitingApproval)
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	c := env.client(t)

	// The endpoint answers the same whether or not the address exists.
	require.NoError(t, c.ForgotPassword(ctx, "bob@example.com"))
	require.NoError(t, c.ForgotPassword(ctx, "nobody@example.com"))

	err := c.ResetPassword(ctx, "bogus-token", "new-password")
	assert.Error(t, err)
}

func TestTaskDurationsValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	manager := env.login(t, "mallory")
	_, err := manager.TaskDurations(ctx, "Q")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	durations, err := manager.TaskDurations(ctx, "W")
	require.NoError(t, err)
	assert.Empty(t, durations)
}
