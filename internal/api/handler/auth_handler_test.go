package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/recordkeep/customer-api/internal/api"
	"github.com/recordkeep/customer-api/internal/api/handler"
	"github.com/recordkeep/customer-api/internal/api/middleware"
	"github.com/recordkeep/customer-api/internal/core/domain"
	"github.com/recordkeep/customer-api/internal/core/service"
	"github.com/recordkeep/customer-api/internal/core/token"
)

const strongPassword = "Str0ng!Passw0rd1234"

type memUserRepo struct {
	users map[string]*domain.User
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	clone := *user
	clone.ID = user.Username
	r.users[user.Username] = &clone
	return &clone, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

// newAuthApp wires a minimal echo app the way the router does: global
// non-rejecting authentication, public auth routes, and one protected
// route that reports the resolved identity.
func newAuthApp() (*echo.Echo, *memUserRepo) {
	repo := &memUserRepo{users: make(map[string]*domain.User)}
	codec := token.NewCodec("testSecretKeyWithAtLeast32Characters", time.Hour)
	authService := service.NewAuthService(repo, service.NewBcryptHasher(), codec)
	authHandler := handler.NewAuthHandler(authService)

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	e.Use(middleware.Authenticate(codec, repo))

	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/public", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "public"})
	})
	e.GET("/whoami", func(c echo.Context) error {
		username, _ := c.Get(middleware.ContextKeyUsername).(string)
		role, _ := c.Get(middleware.ContextKeyRole).(string)
		return c.JSON(http.StatusOK, map[string]string{"username": username, "role": role})
	}, middleware.RequireAuth())

	return e, repo
}

func doJSON(e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e, _ := newAuthApp()

	body := fmt.Sprintf(`{"username":"alice","password":%q,"role":"user"}`, strongPassword)
	rec := doJSON(e, http.MethodPost, "/auth/register", body, "")

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "user" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "hash") || strings.Contains(rec.Body.String(), "$2a$") {
		t.Fatalf("response leaks password material: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	e, _ := newAuthApp()

	rec := doJSON(e, http.MethodPost, "/auth/register", `{"username":"alice","password":"short","role":"user"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	e, _ := newAuthApp()

	body := fmt.Sprintf(`{"username":"alice","password":%q,"role":"user"}`, strongPassword)
	if rec := doJSON(e, http.MethodPost, "/auth/register", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodPost, "/auth/register", body, ""); rec.Code != http.StatusConflict {
		t.Fatalf("second register: expected 409, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e, _ := newAuthApp()

	if rec := doJSON(e, http.MethodPost, "/auth/register", "not-json", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
	body := fmt.Sprintf(`{"username":"alice","password":%q,"role":"emperor"}`, strongPassword)
	if rec := doJSON(e, http.MethodPost, "/auth/register", body, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_UniformFailures(t *testing.T) {
	e, _ := newAuthApp()

	body := fmt.Sprintf(`{"username":"alice","password":%q,"role":"user"}`, strongPassword)
	if rec := doJSON(e, http.MethodPost, "/auth/register", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	wrongPw := doJSON(e, http.MethodPost, "/auth/login", `{"username":"alice","password":"wrong"}`, "")
	unknown := doJSON(e, http.MethodPost, "/auth/login", `{"username":"ghost","password":"wrong"}`, "")

	if wrongPw.Code != http.StatusUnauthorized || unknown.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", wrongPw.Code, unknown.Code)
	}
	// Identical bodies: no signal about which usernames exist.
	if wrongPw.Body.String() != unknown.Body.String() {
		t.Fatalf("failure responses differ: %q vs %q", wrongPw.Body.String(), unknown.Body.String())
	}
}

func TestAuthFlow_EndToEnd(t *testing.T) {
	e, _ := newAuthApp()

	body := fmt.Sprintf(`{"username":"alice","password":%q,"role":"user"}`, strongPassword)
	if rec := doJSON(e, http.MethodPost, "/auth/register", body, ""); rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	login := doJSON(e, http.MethodPost, "/auth/login", fmt.Sprintf(`{"username":"alice","password":%q}`, strongPassword), "")
	if login.Code != http.StatusOK {
		t.Fatalf("login failed: %d: %s", login.Code, login.Body.String())
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(login.Body.Bytes(), &loginResp); err != nil || loginResp.Token == "" {
		t.Fatalf("expected token in login response: %v %s", err, login.Body.String())
	}

	// A bearer-authenticated request resolves the identity.
	whoami := doJSON(e, http.MethodGet, "/whoami", "", loginResp.Token)
	if whoami.Code != http.StatusOK {
		t.Fatalf("whoami failed: %d", whoami.Code)
	}
	var identity map[string]string
	if err := json.Unmarshal(whoami.Body.Bytes(), &identity); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if identity["username"] != "alice" || identity["role"] != domain.RoleUser {
		t.Fatalf("unexpected identity: %+v", identity)
	}

	// No header: the filter forwards, RequireAuth rejects.
	if rec := doJSON(e, http.MethodGet, "/whoami", "", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// A tampered token degrades to unauthenticated, then 401. Flip the
	// first signature character to a guaranteed-different value.
	sigStart := strings.LastIndex(loginResp.Token, ".") + 1
	repl := byte('A')
	if loginResp.Token[sigStart] == 'A' {
		repl = 'B'
	}
	tampered := loginResp.Token[:sigStart] + string(repl) + loginResp.Token[sigStart+1:]
	if rec := doJSON(e, http.MethodGet, "/whoami", "", tampered); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", rec.Code)
	}

	// Declared-public routes stay reachable without (or with a bad) token.
	if rec := doJSON(e, http.MethodGet, "/public", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("public route without token: expected 200, got %d", rec.Code)
	}
	if rec := doJSON(e, http.MethodGet, "/public", "", tampered); rec.Code != http.StatusOK {
		t.Fatalf("public route with bad token: expected 200, got %d", rec.Code)
	}
}
