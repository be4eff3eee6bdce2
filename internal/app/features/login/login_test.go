// internal/app/features/login/login_test.go
package login

import (
	"testing"
	"time"

	"github.com/dalemusser/leadhub/internal/app/system/auth"
	"github.com/dalemusser/leadhub/internal/app/system/ratelimit"
	"github.com/dalemusser/leadhub/internal/testutil"
	"go.uber.org/zap"
)

const sessionKey = "0123456789abcdef0123456789abcdef"

func newTestHandler(t *testing.T) (*Handler, *testutil.Fixtures) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	sm, err := auth.NewSessionManager(sessionKey, "leadhub-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	limiter := ratelimit.NewLoginLimiter()
	return NewHandler(db, sm, limiter, zap.NewNop()), testutil.NewFixtures(t, db)
}

func TestHandleLogin_Success(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "ada@example.com", "secret1")

	req := testutil.NewJSONRequest(t, "POST", "/login", map[string]any{
		"email":    "ADA@example.com",
		"password": "secret1",
	})
	req.RemoteAddr = "203.0.113.7:52100"
	rec := testutil.NewRecorder()

	h.HandleLogin(rec, req)

	rec.AssertStatus(t, 200)

	var resp struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	rec.DecodeJSON(t, &resp)
	if resp.ID != user.ID.Hex() {
		t.Errorf("id: got %q, want %q", resp.ID, user.ID.Hex())
	}
	if resp.Email != "ada@example.com" {
		t.Errorf("email: got %q", resp.Email)
	}

	if len(rec.Result().Cookies()) == 0 {
		t.Error("login did not set a session cookie")
	}

	// Sign-in history is written as part of the flow.
	records, err := h.Logins.RecentByUser(ctx, user.ID, 5)
	if err != nil {
		t.Fatalf("recent logins: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("login records: got %d, want 1", len(records))
	}
	if records[0].Provider != "password" {
		t.Errorf("provider: got %q, want %q", records[0].Provider, "password")
	}
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "ada@example.com", "secret1")

	rec := testutil.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/login", map[string]any{
		"email": "ada@example.com", "password": "wrong-password",
	}))

	rec.AssertStatus(t, 401)
	rec.AssertContains(t, "invalid email or password")
}

// An unknown email produces the same response as a wrong password.
func TestHandleLogin_UnknownEmail(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/login", map[string]any{
		"email": "nobody@example.com", "password": "whatever1",
	}))

	rec.AssertStatus(t, 401)
	rec.AssertContains(t, "invalid email or password")
}

func TestHandleLogin_RateLimited(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "ada@example.com", "secret1")

	// One failed attempt allowed per email; the second is throttled.
	h.Limiter = ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 1, time.Minute)

	first := testutil.NewRecorder()
	h.HandleLogin(first, testutil.NewJSONRequest(t, "POST", "/login", map[string]any{
		"email": "ada@example.com", "password": "wrong-password",
	}))
	first.AssertStatus(t, 401)

	second := testutil.NewRecorder()
	h.HandleLogin(second, testutil.NewJSONRequest(t, "POST", "/login", map[string]any{
		"email": "ada@example.com", "password": "secret1",
	}))
	second.AssertStatus(t, 429)
}

// A successful login clears the email's attempt window so the next
// sign-in is not throttled by earlier successes.
func TestHandleLogin_SuccessResetsEmailWindow(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx.CreateUser(ctx, "ada@example.com", "secret1")
	h.Limiter = ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 1, time.Minute)

	for i := 0; i < 2; i++ {
		rec := testutil.NewRecorder()
		h.HandleLogin(rec, testutil.NewJSONRequest(t, "POST", "/login", map[string]any{
			"email": "ada@example.com", "password": "secret1",
		}))
		rec.AssertStatus(t, 200)
	}
}

func TestHandleLogin_EmptyBody(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := testutil.NewRecorder()
	h.HandleLogin(rec, testutil.NewRequest("POST", "/login", nil))

	rec.AssertStatus(t, 400)
}
