package handlers

import (
	"net/http"

	"github.com/takdanai-ph/taskboard/policy"

	"github.com/gorilla/mux"
)

// NewRouter wires every endpoint. The /auth/login, forgot- and reset-password
// routes are the only ones reachable without a bearer token; user account
// administration additionally sits behind the AdminOnly route tag, and task
// and team management behind AdminOrManager.
func NewRouter(
	authMw AuthMiddleware,
	authHandler AuthHandler,
	taskHandler TaskHandler,
	teamHandler TeamHandler,
	notificationHandler NotificationHandler,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)

	// Public auth routes.
	router.HandleFunc("/auth/login", authHandler.LogIn).Methods(http.MethodPost)
	router.HandleFunc("/auth/forgot-password", authHandler.ForgotPassword).Methods(http.MethodPost)
	router.HandleFunc("/auth/reset-password", authHandler.ResetPassword).Methods(http.MethodPost)

	// Everything below requires a valid token.
	authed := router.NewRoute().Subrouter()
	authed.Use(authMw.Handle)

	authed.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	authed.HandleFunc("/tasks", taskHandler.GetAll).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/summary", taskHandler.Summary).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/durations", taskHandler.Durations).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/my-work", taskHandler.MyWork).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{id}", taskHandler.GetById).Methods(http.MethodGet)
	authed.HandleFunc("/tasks/{id}", taskHandler.Update).Methods(http.MethodPut)

	authed.HandleFunc("/teams", teamHandler.GetAll).Methods(http.MethodGet)
	authed.HandleFunc("/teams/{id}", teamHandler.GetById).Methods(http.MethodGet)

	authed.HandleFunc("/notifications", notificationHandler.GetAll).Methods(http.MethodGet)
	authed.HandleFunc("/notifications/read", notificationHandler.MarkAllAsRead).Methods(http.MethodPatch)
	authed.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods(http.MethodPatch)
	authed.HandleFunc("/notifications/{id}", notificationHandler.Delete).Methods(http.MethodDelete)

	// Task and team management for managers and admins.
	managerial := authed.NewRoute().Subrouter()
	managerial.Use(authMw.RequireRoute(policy.AdminOrManager))

	managerial.HandleFunc("/auth/users", authHandler.GetUsers).Methods(http.MethodGet)

	managerial.HandleFunc("/tasks", taskHandler.Create).Methods(http.MethodPost)
	managerial.HandleFunc("/tasks/{id}", taskHandler.Delete).Methods(http.MethodDelete)
	managerial.HandleFunc("/tasks/{id}/approve", taskHandler.Approve).Methods(http.MethodPost)
	managerial.HandleFunc("/tasks/{id}/reject", taskHandler.Reject).Methods(http.MethodPost)

	managerial.HandleFunc("/teams", teamHandler.Create).Methods(http.MethodPost)
	managerial.HandleFunc("/teams/{id}", teamHandler.Update).Methods(http.MethodPut)
	managerial.HandleFunc("/teams/{id}", teamHandler.Delete).Methods(http.MethodDelete)
	managerial.HandleFunc("/teams/{id}/members", teamHandler.AddMember).Methods(http.MethodPost)
	managerial.HandleFunc("/teams/{id}/members/{userId}", teamHandler.RemoveMember).Methods(http.MethodDelete)
	managerial.HandleFunc("/teams/{id}/leader", teamHandler.SetLeader).Methods(http.MethodPut)

	// User account administration is Admin only.
	admin := authed.NewRoute().Subrouter()
	admin.Use(authMw.RequireRoute(policy.AdminOnly))

	admin.HandleFunc("/auth/users", authHandler.CreateUser).Methods(http.MethodPost)
	admin.HandleFunc("/auth/users/{id}", authHandler.PatchUser).Methods(http.MethodPatch)
	admin.HandleFunc("/auth/users/{id}", authHandler.DeleteUser).Methods(http.MethodDelete)

	return router
}
