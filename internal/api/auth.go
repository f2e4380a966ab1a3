package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/qtts/assetdesk/internal/auth"
	"github.com/qtts/assetdesk/internal/model"
	"github.com/qtts/assetdesk/internal/state"
)

// AuthHandler handles the session endpoints.
type AuthHandler struct {
	Store     *state.Store
	JWTSecret string
	TokenTTL  time.Duration
}

type loginRequest struct {
	Identifier string `json:"identifier"`
}

type loginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type meResponse struct {
	User         model.User         `json:"user"`
	RoleLabel    string             `json:"roleLabel"`
	Capabilities []model.Capability `json:"capabilities"`
	Navigation   []model.NavEntry   `json:"navigation"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	identifier := req.Identifier
	if strings.TrimSpace(identifier) == "" {
		jsonError(w, http.StatusBadRequest, "identifier required")
		return
	}

	session, ok := h.Store.Login(identifier)
	if !ok {
		slog.Warn("login failed", "identifier", identifier, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "unknown identifier")
		return
	}

	user := session.User
	token, err := auth.GenerateToken(h.JWTSecret, user, session.ID, h.TokenTTL)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("user logged in", "user", user.Email, "role", user.Role)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token, User: user})
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Store.Logout()
	slog.Info("user logged out", "user", actor(r))
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me handles GET /api/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	session := h.Store.State().Session
	if session == nil {
		jsonError(w, http.StatusUnauthorized, "not logged in")
		return
	}
	jsonResponse(w, http.StatusOK, meResponse{
		User:         *session,
		RoleLabel:    session.Role.Label(),
		Capabilities: model.Capabilities(session.Role),
		Navigation:   model.Navigation(session.Role),
	})
}
