package store

import (
	"path/filepath"
	"testing"
	"time"

	"bilty/internal/core"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := NewState(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStateToken(t *testing.T) {
	s := newTestState(t)

	if _, ok := s.Token(); ok {
		t.Fatal("fresh store should have no token")
	}
	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("set token: %v", err)
	}
	if tok, ok := s.Token(); !ok || tok != "tok-123" {
		t.Fatalf("token = %q, %v", tok, ok)
	}
	if err := s.SetToken("tok-456"); err != nil {
		t.Fatalf("overwrite token: %v", err)
	}
	if tok, _ := s.Token(); tok != "tok-456" {
		t.Fatalf("token after overwrite = %q", tok)
	}
	if err := s.ClearToken(); err != nil {
		t.Fatalf("clear token: %v", err)
	}
	if _, ok := s.Token(); ok {
		t.Fatal("token should be gone after clear")
	}
}

func TestStateUserCache(t *testing.T) {
	s := newTestState(t)

	if _, _, ok := s.User(); ok {
		t.Fatal("fresh store should have no cached user")
	}

	u := core.User{
		ID:    "u1",
		Email: "owner@example.com",
		Profile: core.Profile{
			OwnerName:   "Ramesh",
			CompanyName: "Ramesh Transport",
		},
		Role:     "user",
		IsActive: true,
	}
	stamp := time.Date(2025, 8, 31, 10, 0, 0, 0, time.UTC)
	if err := s.SetUser(u, stamp); err != nil {
		t.Fatalf("set user: %v", err)
	}

	got, at, ok := s.User()
	if !ok {
		t.Fatal("expected cached user")
	}
	if got.ID != u.ID || got.Email != u.Email || got.Profile.CompanyName != u.Profile.CompanyName {
		t.Fatalf("cached user = %+v", got)
	}
	if !at.Equal(stamp) {
		t.Fatalf("timestamp = %v, want %v", at, stamp)
	}

	if err := s.ClearUser(); err != nil {
		t.Fatalf("clear user: %v", err)
	}
	if _, _, ok := s.User(); ok {
		t.Fatal("user should be gone after clear")
	}
}

func TestStateRememberedEmail(t *testing.T) {
	s := newTestState(t)

	if _, ok := s.RememberedEmail(); ok {
		t.Fatal("nothing remembered yet")
	}
	if err := s.RememberEmail("owner@example.com"); err != nil {
		t.Fatalf("remember: %v", err)
	}
	if email, ok := s.RememberedEmail(); !ok || email != "owner@example.com" {
		t.Fatalf("remembered = %q, %v", email, ok)
	}
	if err := s.ForgetEmail(); err != nil {
		t.Fatalf("forget: %v", err)
	}
	if _, ok := s.RememberedEmail(); ok {
		t.Fatal("email should be forgotten")
	}
}

func TestCookieStore(t *testing.T) {
	cs, err := NewCookieStore("http://localhost:5000", 7*24*time.Hour)
	if err != nil {
		t.Fatalf("new cookie store: %v", err)
	}

	if _, ok := cs.Token(); ok {
		t.Fatal("fresh jar should have no token")
	}
	if err := cs.SetToken("tok-789"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tok, ok := cs.Token(); !ok || tok != "tok-789" {
		t.Fatalf("token = %q, %v", tok, ok)
	}
	if err := cs.ClearToken(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := cs.Token(); ok {
		t.Fatal("token should be gone after clear")
	}
}

func TestDualKeepsStoresInSync(t *testing.T) {
	local := newTestState(t)
	cookie, err := NewCookieStore("http://localhost:5000", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	dual := NewDual(local, cookie)

	if err := dual.SetToken("tok-abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if tok, _ := local.Token(); tok != "tok-abc" {
		t.Fatal("local store missed the write")
	}
	if tok, _ := cookie.Token(); tok != "tok-abc" {
		t.Fatal("cookie mirror missed the write")
	}

	if err := dual.ClearToken(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := dual.Token(); ok {
		t.Fatal("token should be cleared everywhere")
	}
}

// Reads fall back to the cookie when the local store lost the token, the
// same lookup order the browser client used.
func TestDualFallsBackToCookie(t *testing.T) {
	local := newTestState(t)
	cookie, err := NewCookieStore("http://localhost:5000", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	dual := NewDual(local, cookie)

	if err := dual.SetToken("tok-xyz"); err != nil {
		t.Fatal(err)
	}
	if err := local.ClearToken(); err != nil {
		t.Fatal(err)
	}
	if tok, ok := dual.Token(); !ok || tok != "tok-xyz" {
		t.Fatalf("fallback token = %q, %v", tok, ok)
	}
}
