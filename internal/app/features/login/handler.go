// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/leadhub/internal/app/features/shared"
	loginstore "github.com/dalemusser/leadhub/internal/app/store/logins"
	userstore "github.com/dalemusser/leadhub/internal/app/store/users"
	"github.com/dalemusser/leadhub/internal/app/system/auth"
	"github.com/dalemusser/leadhub/internal/app/system/normalize"
	"github.com/dalemusser/leadhub/internal/app/system/ratelimit"
	"github.com/dalemusser/leadhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users      *userstore.Store
	Logins     *loginstore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger
}

func NewHandler(db *mongo.Database, sessionMgr *auth.SessionManager, limiter *ratelimit.LoginLimiter, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Logins:     loginstore.New(db),
		SessionMgr: sessionMgr,
		Limiter:    limiter,
		Log:        logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// HandleLogin handles POST /login. Every failure mode after rate limiting
// returns the same 401 body, so a caller cannot tell an unknown email from
// a wrong password.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	email := normalize.Email(req.Email)

	if allowed, reason := h.Limiter.Check(r, email); !allowed {
		shared.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Authenticate(ctx, email, req.Password)
	if err != nil {
		if errors.Is(err, userstore.ErrInvalidCredentials) {
			shared.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Log.Error("login: authenticate", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "sign-in is unavailable right now")
		return
	}

	if err := h.SessionMgr.SignIn(w, r, auth.SessionUser{
		ID:    user.ID.Hex(),
		Email: user.Email,
	}); err != nil {
		h.Log.Error("login: establish session", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "sign-in is unavailable right now")
		return
	}

	h.Limiter.ResetEmail(email)

	// Sign-in history is best-effort; a write failure must not block login.
	if err := h.Logins.CreateFrom(ctx, r, user.ID, "password"); err != nil {
		h.Log.Warn("login: record sign-in", zap.Error(err))
	}

	h.Log.Info("user signed in", zap.String("user_id", user.ID.Hex()))
	shared.JSON(w, http.StatusOK, loginResponse{
		ID:    user.ID.Hex(),
		Email: user.Email,
	})
}
