package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	authsvc "rmclub-backend/internal/application/auth"
	"rmclub-backend/internal/domain"
	"rmclub-backend/internal/middleware"
	"rmclub-backend/internal/pkg/constants"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUserFinder for tests: returns configured user or error.
type fakeUserFinder struct {
	user *domain.User
	err  error
}

func (f *fakeUserFinder) FindByEmailAndPassword(email, password string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.user != nil && f.user.Email == email && password == "password123" {
		return f.user, nil
	}
	if f.user != nil && f.user.Email == email {
		return nil, authsvc.ErrIncorrectPassword
	}
	return nil, authsvc.ErrInvalidEmail
}

func setupAuthHandlers(t *testing.T, finder authsvc.UserFinder) (*Handlers, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	h := &Handlers{
		UserFinder: finder,
		Rdb:        rdb,
		Config:     middleware.SessionConfig{},
	}
	return h, rdb
}

func loginRequest(payload map[string]string) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	b, _ := io.ReadAll(resp.Body)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestLogin_EmptyBody(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{user: &domain.User{}})
	app := fiber.New()
	app.Post("/login", h.Login)

	req := httptest.NewRequest("POST", "/login", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_MissingCredentials(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Post("/login", h.Login)

	resp, err := app.Test(loginRequest(map[string]string{"email": "a@b.com"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLogin_Rejected(t *testing.T) {
	rm := &domain.User{UserID: uuid.New(), Email: "rm@example.com", Fullname: "Priya Nair", Role: constants.RelationshipManager}
	cases := []struct {
		name   string
		finder authsvc.UserFinder
		email  string
		want   int
	}{
		{"unknown email", &fakeUserFinder{}, "nobody@example.com", fiber.StatusUnauthorized},
		{"wrong password", &fakeUserFinder{user: rm}, "rm@example.com", fiber.StatusUnauthorized},
		{"unlinked customer", &fakeUserFinder{err: authsvc.ErrCustomerNotLinked}, "c@example.com", fiber.StatusForbidden},
		{"unknown role", &fakeUserFinder{err: authsvc.ErrUnknownRole}, "old@example.com", fiber.StatusForbidden},
		{"store down", &fakeUserFinder{err: assert.AnError}, "rm@example.com", fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := setupAuthHandlers(t, tc.finder)
			app := fiber.New()
			app.Post("/login", h.Login)
			resp, err := app.Test(loginRequest(map[string]string{"email": tc.email, "password": "wrong"}))
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestLogin_NilUserFinder(t *testing.T) {
	h, _ := setupAuthHandlers(t, nil)
	app := fiber.New()
	app.Post("/login", h.Login)

	resp, err := app.Test(loginRequest(map[string]string{"email": "a@b.com", "password": "pass"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

func TestLoginMeLogout_Flow(t *testing.T) {
	cid := uuid.New()
	uid := uuid.New()
	h, rdb := setupAuthHandlers(t, &fakeUserFinder{user: &domain.User{
		UserID: uid, Email: "asha@example.com", Fullname: "Asha Rao", Role: constants.Customer, CustomerID: &cid,
	}})
	app := fiber.New()
	app.Use(middleware.Session(rdb))
	app.Post("/login", h.Login)
	app.Get("/me", h.Me)
	app.Delete("/logout", h.Logout)

	resp, err := app.Test(loginRequest(map[string]string{"email": "asha@example.com", "password": "password123"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode(t, resp)
	assert.Equal(t, "Login successful", out["message"])
	user := out["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, cid.String(), user["customer_id"])

	var cookie string
	for _, sc := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, middleware.SessionCookieName+"=") {
			cookie = strings.SplitN(sc, ";", 2)[0]
		}
	}
	require.NotEmpty(t, cookie)

	members, err := rdb.SMembers(context.Background(), "user_sessions:"+uid.String()).Result()
	require.NoError(t, err)
	assert.Len(t, members, 1)

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	me := decode(t, resp)["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.Equal(t, "asha@example.com", me["email"])
	assert.Equal(t, cid.String(), me["customer_id"])

	req = httptest.NewRequest("DELETE", "/logout", nil)
	req.Header.Set("Cookie", cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Cookie", cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestMe_NoSession(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Get("/me", h.Me)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authenticated", decode(t, resp)["error"].(map[string]interface{})["message"])
}

func TestLogout_NoSession(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Delete("/logout", h.Logout)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/logout", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Values("Set-Cookie"))
}

func TestLogoutAll_EndsEverySession(t *testing.T) {
	uid := uuid.New()
	h, rdb := setupAuthHandlers(t, &fakeUserFinder{user: &domain.User{
		UserID: uid, Email: "priya@example.com", Fullname: "Priya", Role: constants.Admin,
	}})
	app := fiber.New()
	app.Use(middleware.Session(rdb))
	app.Post("/login", h.Login)
	app.Get("/me", h.Me)
	app.Post("/logout-all", middleware.RequireAuth(), h.LogoutAll)

	login := func() string {
		resp, err := app.Test(loginRequest(map[string]string{"email": "priya@example.com", "password": "password123"}))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		for _, sc := range resp.Header.Values("Set-Cookie") {
			if strings.HasPrefix(sc, middleware.SessionCookieName+"=") {
				return strings.SplitN(sc, ";", 2)[0]
			}
		}
		t.Fatal("no session cookie")
		return ""
	}
	phone, laptop := login(), login()

	req := httptest.NewRequest("POST", "/logout-all", nil)
	req.Header.Set("Cookie", phone)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decode(t, resp)["data"].(map[string]interface{})["sessions_ended"])

	for _, cookie := range []string{phone, laptop} {
		req = httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Cookie", cookie)
		resp, err = app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	}
	n, err := rdb.Exists(context.Background(), middleware.UserSessionsPrefix+uid.String()).Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLogoutAll_NoSession(t *testing.T) {
	h, _ := setupAuthHandlers(t, &fakeUserFinder{})
	app := fiber.New()
	app.Post("/logout-all", h.LogoutAll)

	resp, err := app.Test(httptest.NewRequest("POST", "/logout-all", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
