package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/policy"
	"github.com/takdanai-ph/taskboard/services"
	"github.com/takdanai-ph/taskboard/workflow"
)

type KeyActor struct{}

type AuthMiddleware struct {
	auth *services.AuthService
}

func NewAuthMiddleware(auth *services.AuthService) AuthMiddleware {
	return AuthMiddleware{auth: auth}
}

// Handle requires a valid bearer token and stores the resolved user in the
// request context.
func (m AuthMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeErrorResp(domain.ErrUnauthorized(), w)
			return
		}

		user, err := m.auth.ResolveUser(token)
		if err != nil {
			writeErrorResp(domain.ErrUnauthorized(), w)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), KeyActor{}, user))
		next.ServeHTTP(w, r)
	})
}

// RequireRoute gates a subrouter on the policy's route table; 403 on a role
// mismatch, mirroring the SPA redirect-to-home behavior.
func (m AuthMiddleware) RequireRoute(tag policy.RouteTag) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userFromContext(r)
			if user == nil {
				writeErrorResp(domain.ErrUnauthorized(), w)
				return
			}
			if !policy.CanAccessRoute(user.Role, tag) {
				writeErrorResp(domain.ErrForbidden(), w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func userFromContext(r *http.Request) *domain.User {
	if user, ok := r.Context().Value(KeyActor{}).(*domain.User); ok {
		return user
	}
	return nil
}

func actorFromContext(r *http.Request) workflow.Actor {
	user := userFromContext(r)
	if user == nil {
		return workflow.Actor{}
	}
	return workflow.Actor{UserId: user.Id.Hex(), Role: user.Role}
}

// MiddlewareContentTypeSet marks every response as JSON.
func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		next.ServeHTTP(rw, h)
	})
}
