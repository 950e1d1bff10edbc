package controllers

import (
	"net/http"

	"quill/app/middleware"
	"quill/app/models"
	"quill/app/services"
)

// AuthController handles registration, login and admin account actions
type AuthController struct {
	users *services.UserService
}

// NewAuthController creates a new AuthController
func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{users: users}
}

type credentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Repassword string `json:"repassword"`
}

type session struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register creates a new account.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decodeJSON(r, &body); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ac.users.Register(body.Username, body.Password, body.Repassword)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusCreated, user)
}

// Login checks credentials and issues a session token.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := decodeJSON(r, &body); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := ac.users.Login(body.Username, body.Password)
	if err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, session{User: user, Token: token})
}

// Me returns the account behind the request's token.
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFrom(r.Context())
	if !ok {
		sendError(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	sendJSON(w, http.StatusOK, user)
}

// ListUsers returns all accounts, for the admin panel.
func (ac *AuthController) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := ac.users.ListUsers()
	if err != nil {
		sendServiceError(w, err)
		return
	}
	if users == nil {
		users = []*models.User{}
	}
	sendJSON(w, http.StatusOK, users)
}

// SetFrozen freezes or unfreezes an account. Admin only.
func (ac *AuthController) SetFrozen(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Frozen bool `json:"frozen"`
	}
	if err := decodeJSON(r, &body); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := ac.users.SetFrozen(id, body.Frozen); err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]bool{"frozen": body.Frozen})
}

// ResetPassword replaces an account's password. Admin only.
func (ac *AuthController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		sendError(w, "invalid user ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		sendError(w, "invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := ac.users.ResetPassword(id, body.Password); err != nil {
		sendServiceError(w, err)
		return
	}

	sendJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
