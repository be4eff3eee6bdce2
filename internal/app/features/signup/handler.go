// internal/app/features/signup/handler.go
package signup

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"unicode"

	"github.com/dalemusser/leadhub/internal/app/features/shared"
	userstore "github.com/dalemusser/leadhub/internal/app/store/users"
	"github.com/dalemusser/leadhub/internal/app/system/normalize"
	"github.com/dalemusser/leadhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users: userstore.New(db),
		Log:   logger,
	}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
}

type signupResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// HandleSignup handles POST /signup. Validation runs before any storage
// call, mirroring the account form rules: well-formed email, password of
// at least 6 characters, mobile of 10-15 digits.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	email := normalize.Email(req.Email)
	mobile := normalize.Mobile(req.Mobile)

	if msg := validate(email, req.Password, mobile); msg != "" {
		shared.Error(w, http.StatusBadRequest, msg)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, email, req.Password, mobile)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			// Keep the message generic; don't confirm which emails exist
			// beyond what the conflict status already implies.
			shared.Error(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		h.Log.Error("signup: create user", zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "could not create account")
		return
	}

	h.Log.Info("account created", zap.String("user_id", user.ID.Hex()))
	shared.JSON(w, http.StatusCreated, signupResponse{
		ID:    user.ID.Hex(),
		Email: user.Email,
	})
}

func validate(email, password, mobile string) string {
	if email == "" {
		return "email is required"
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return "email is not valid"
	}
	if len(password) < 6 {
		return "password must be at least 6 characters"
	}
	if !validMobile(mobile) {
		return "mobile number must be 10-15 digits"
	}
	return ""
}

// validMobile accepts 10-15 digits with an optional leading +.
func validMobile(mobile string) bool {
	s := strings.TrimPrefix(mobile, "+")
	if len(s) < 10 || len(s) > 15 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
