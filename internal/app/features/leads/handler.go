// internal/app/features/leads/handler.go
package leads

import (
	"errors"
	"net/http"

	"github.com/dalemusser/leadhub/internal/app/features/shared"
	leadstore "github.com/dalemusser/leadhub/internal/app/store/leads"
	"github.com/dalemusser/leadhub/internal/app/system/auth"
	"github.com/dalemusser/leadhub/internal/app/system/mailer"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the leads feature.
// It holds the lead store, the outreach mailer, and the logger so the
// per-operation handlers (list, create, edit, status, delete, email)
// can all share the same core dependencies.
type Handler struct {
	Leads    *leadstore.Store
	Mailer   *mailer.Mailer
	SiteName string
	Log      *zap.Logger
}

// NewHandler constructs a leads Handler. It is typically called from the
// bootstrap BuildHandler function, where the application's DB, mailer,
// and logger are already initialized.
func NewHandler(db *mongo.Database, m *mailer.Mailer, siteName string, logger *zap.Logger) *Handler {
	return &Handler{
		Leads:    leadstore.New(db),
		Mailer:   m,
		SiteName: siteName,
		Log:      logger,
	}
}

// ownerID resolves the signed-in user's id from the request context.
// Routes sit behind RequireSignedIn, so a missing or malformed id here
// means the session itself is broken; respond 401 and report false.
func (h *Handler) ownerID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		shared.Error(w, http.StatusUnauthorized, "unauthorized")
		return primitive.NilObjectID, false
	}
	oid := u.OwnerID()
	if oid.IsZero() {
		h.Log.Warn("session user id is not a valid object id", zap.String("user_id", u.ID))
		shared.Error(w, http.StatusUnauthorized, "unauthorized")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// leadID parses the {id} route parameter.
func leadID(w http.ResponseWriter, raw string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		shared.Error(w, http.StatusNotFound, "lead not found")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// respondStoreErr maps lead store errors onto HTTP statuses.
func (h *Handler) respondStoreErr(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, leadstore.ErrNotAuthenticated):
		shared.Error(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, leadstore.ErrNotFound):
		shared.Error(w, http.StatusNotFound, "lead not found")
	default:
		h.Log.Error(op, zap.Error(err))
		shared.Error(w, http.StatusInternalServerError, "storage error")
	}
}
