// internal/app/features/logout/logout_test.go
package logout

import (
	"testing"

	"github.com/dalemusser/leadhub/internal/app/system/auth"
	"github.com/dalemusser/leadhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "leadhub-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return NewHandler(sm, zap.NewNop())
}

func TestHandleLogout(t *testing.T) {
	h := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleLogout(rec, testutil.NewRequest("POST", "/logout", nil))

	rec.AssertStatus(t, 204)

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("logout did not set a deletion cookie")
	}
	if cookies[0].MaxAge >= 0 && cookies[0].Expires.IsZero() {
		t.Error("session cookie was not expired")
	}
}

// Logging out without an existing session still succeeds.
func TestHandleLogout_Idempotent(t *testing.T) {
	h := newTestHandler(t)

	for i := 0; i < 2; i++ {
		rec := testutil.NewRecorder()
		h.HandleLogout(rec, testutil.NewRequest("POST", "/logout", nil))
		rec.AssertStatus(t, 204)
	}
}
