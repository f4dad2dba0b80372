package handlers

import (
	"log"
	"net/http"

	"github.com/takdanai-ph/taskboard/domain"
	"github.com/takdanai-ph/taskboard/services"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuthHandler struct {
	auth  *services.AuthService
	users *services.UserService
}

func NewAuthHandler(auth *services.AuthService, users *services.UserService) AuthHandler {
	return AuthHandler{auth: auth, users: users}
}

func (h AuthHandler) LogIn(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	token, user, err := h.auth.LogIn(req.Username, req.Password)
	if err != nil {
		log.Println("Login failed:", err)
		writeErrorResp(err, w)
		return
	}

	resp := struct {
		Status      string       `json:"status"`
		AccessToken string       `json:"accessToken"`
		User        *domain.User `json:"user"`
	}{
		Status:      "ok",
		AccessToken: token,
		User:        user,
	}
	writeResp(resp, http.StatusOK, w)
}

// Me returns the user behind the presented token.
func (h AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	if user == nil {
		writeErrorResp(domain.ErrUnauthorized(), w)
		return
	}
	writeResp(user, http.StatusOK, w)
}

func (h AuthHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.GetAll(actorFromContext(r))
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(users, http.StatusOK, w)
}

func (h AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Fname    string `json:"fname"`
		Lname    string `json:"lname"`
		Email    string `json:"email"`
		Role     string `json:"role"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.USER
	}

	user, err := h.users.Create(actorFromContext(r), services.CreateUserParams{
		Username: req.Username,
		Password: req.Password,
		Fname:    req.Fname,
		Lname:    req.Lname,
		Email:    req.Email,
		Role:     role,
	})
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(user, http.StatusCreated, w)
}

func (h AuthHandler) PatchUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	req := &struct {
		Fname  *string `json:"fname"`
		Lname  *string `json:"lname"`
		Email  *string `json:"email"`
		Role   *string `json:"role"`
		TeamId *string `json:"team_id"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	params := services.UpdateUserParams{
		Fname: req.Fname,
		Lname: req.Lname,
		Email: req.Email,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		params.Role = &role
	}
	if req.TeamId != nil && *req.TeamId != "" {
		teamId, err := primitive.ObjectIDFromHex(*req.TeamId)
		if err != nil {
			writeErrorResp(domain.ErrValidation("invalid team id"), w)
			return
		}
		params.TeamId = &teamId
	}

	user, err := h.users.Update(actorFromContext(r), id, params)
	if err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(user, http.StatusOK, w)
}

func (h AuthHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.users.Delete(actorFromContext(r), id); err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(nil, http.StatusNoContent, w)
}

// ForgotPassword always responds the same way so account existence cannot be
// probed; the reset token travels out of band.
func (h AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Email string `json:"email"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	if _, err := h.auth.ForgotPassword(req.Email); err != nil {
		log.Println("Forgot-password request failed:", err)
	}
	writeResp(map[string]string{
		"message": "If the account exists, a reset link has been sent.",
	}, http.StatusOK, w)
}

func (h AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Token    string `json:"token"`
		Password string `json:"password"`
	}{}
	if err := readReq(req, r, w); err != nil {
		return
	}

	if err := h.auth.ResetPassword(req.Token, req.Password); err != nil {
		writeErrorResp(err, w)
		return
	}
	writeResp(map[string]string{"message": "Password has been reset."}, http.StatusOK, w)
}
