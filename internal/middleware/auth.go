package middleware

import (
	"rmclub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(userLocal) == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// GetUser returns the raw session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// CurrentUser decodes the session user. ok is false when there is no
// session user or it lacks a user_id.
func CurrentUser(c *fiber.Ctx) (SessionUser, bool) {
	m, ok := GetUser(c).(map[string]interface{})
	if !ok {
		return SessionUser{}, false
	}
	u := SessionUser{
		UserID:   str(m["user_id"]),
		Fullname: str(m["fullname"]),
		Email:    str(m["email"]),
		Role:     str(m["role"]),
	}
	switch v := m["customer_id"].(type) {
	case string:
		if v != "" {
			u.CustomerID = &v
		}
	case *string:
		if v != nil && *v != "" {
			u.CustomerID = v
		}
	}
	if u.UserID == "" {
		return SessionUser{}, false
	}
	return u, true
}

// CustomerID returns the customer linked to the session user.
func CustomerID(c *fiber.Ctx) (uuid.UUID, bool) {
	u, ok := CurrentUser(c)
	if !ok || u.CustomerID == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*u.CustomerID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func str(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
