// internal/app/system/auth/auth_test.go
package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newTestManager(t *testing.T) *SessionManager {
	t.Helper()
	sm, err := NewSessionManager(testKey, "leadhub-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return sm
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := NewSessionManager("", "leadhub-session", "", false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestSignInThenLoadSessionUser(t *testing.T) {
	sm := newTestManager(t)

	// Sign in and capture the cookie.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	user := SessionUser{ID: "64f000000000000000000001", Email: "ada@example.com"}
	if err := sm.SignIn(rec, req, user); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookies")
	}

	// Replay the cookie through the middleware.
	var got *SessionUser
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = CurrentUser(r)
	})
	req2 := httptest.NewRequest("GET", "/leads", nil)
	for _, c := range cookies {
		req2.AddCookie(c)
	}
	sm.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), req2)

	if got == nil {
		t.Fatal("no user in context after sign-in round-trip")
	}
	if got.ID != user.ID || got.Email != user.Email {
		t.Errorf("got %+v, want %+v", got, user)
	}
}

func TestLoadSessionUser_NoCookie(t *testing.T) {
	sm := newTestManager(t)

	var found bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = CurrentUser(r)
	})
	sm.LoadSessionUser(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

	if found {
		t.Fatal("found a user without a session cookie")
	}
}

func TestRequireSignedIn_Unauthenticated(t *testing.T) {
	sm := newTestManager(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	sm.RequireSignedIn(next).ServeHTTP(rec, httptest.NewRequest("GET", "/leads", nil))

	if called {
		t.Error("handler ran without a signed-in user")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "unauthorized") {
		t.Errorf("body: got %q", rec.Body.String())
	}
}

func TestRequireSignedIn_Authenticated(t *testing.T) {
	sm := newTestManager(t)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := WithTestUser(httptest.NewRequest("GET", "/leads", nil), &SessionUser{ID: "abc", Email: "a@b.c"})
	sm.RequireSignedIn(next).ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Error("handler did not run for signed-in user")
	}
}

func TestSignOut_ExpiresCookie(t *testing.T) {
	sm := newTestManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/logout", nil)
	if err := sm.SignOut(rec, req); err != nil {
		t.Fatalf("SignOut failed: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignOut set no cookies")
	}
	if cookies[0].MaxAge >= 0 && cookies[0].Expires.IsZero() {
		t.Error("expected a cookie that expires immediately")
	}
}

func TestSessionUserOwnerID(t *testing.T) {
	u := SessionUser{ID: "64f000000000000000000001"}
	if u.OwnerID().IsZero() {
		t.Error("valid hex id produced zero ObjectID")
	}

	bad := SessionUser{ID: "not-hex"}
	if !bad.OwnerID().IsZero() {
		t.Error("malformed id should produce zero ObjectID")
	}
}
