package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/recordkeep/customer-api/internal/core/domain"
	"github.com/recordkeep/customer-api/internal/core/token"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.Username] = user
	return user, nil
}

func newTestDeps() (*token.Codec, *stubUserRepo) {
	codec := token.NewCodec("testSecretKeyWithAtLeast32Characters", time.Hour)
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice": {Username: "alice", Role: domain.RoleAdmin},
	}}
	return codec, repo
}

func runAuthenticate(t *testing.T, codec *token.Codec, repo *stubUserRepo, header string) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Authenticate(codec, repo)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !called {
		t.Fatalf("next not called: the filter must always forward")
	}
	return c
}

func TestAuthenticate_ValidToken(t *testing.T) {
	codec, repo := newTestDeps()
	tok, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c := runAuthenticate(t, codec, repo, "Bearer "+tok)

	if got := c.Get(ContextKeyUsername); got != "alice" {
		t.Fatalf("username = %v, want alice", got)
	}
	if got := c.Get(ContextKeyRole); got != domain.RoleAdmin {
		t.Fatalf("role = %v, want %s", got, domain.RoleAdmin)
	}
}

func TestAuthenticate_CaseInsensitiveScheme(t *testing.T) {
	codec, repo := newTestDeps()
	tok, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c := runAuthenticate(t, codec, repo, "bearer "+tok)
	if got := c.Get(ContextKeyUsername); got != "alice" {
		t.Fatalf("username = %v, want alice", got)
	}
}

func TestAuthenticate_PassesThroughUnauthenticated(t *testing.T) {
	codec, repo := newTestDeps()
	tok, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	expiredTok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}).SignedString([]byte("testSecretKeyWithAtLeast32Characters"))
	if err != nil {
		t.Fatalf("issue expired token: %v", err)
	}

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Token " + tok},
		{"no token after scheme", "Bearer"},
		{"garbage token", "Bearer not-a-token"},
		{"expired token", "Bearer " + expiredTok},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := runAuthenticate(t, codec, repo, tc.header)
			if got := c.Get(ContextKeyUsername); got != nil {
				t.Fatalf("expected no identity, got username %v", got)
			}
			if got := c.Get(ContextKeyRole); got != nil {
				t.Fatalf("expected no identity, got role %v", got)
			}
		})
	}
}

func TestAuthenticate_SubjectDeletedAfterIssuance(t *testing.T) {
	codec, repo := newTestDeps()
	tok, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	delete(repo.users, "alice")

	c := runAuthenticate(t, codec, repo, "Bearer "+tok)
	if got := c.Get(ContextKeyUsername); got != nil {
		t.Fatalf("expected no identity for deleted subject, got %v", got)
	}
}
