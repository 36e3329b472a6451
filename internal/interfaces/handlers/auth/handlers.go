package auth

import (
	"errors"

	authsvc "rmclub-backend/internal/application/auth"
	"rmclub-backend/internal/middleware"
	"rmclub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	UserFinder authsvc.UserFinder
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

// LoginRequest body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/auth/login: authenticate, create session, track it per user, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil {
		return response.Internal(c)
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, authsvc.ErrEmailPasswordRequired.Error())
	}
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, authsvc.ErrEmailPasswordRequired.Error())
	}

	user, err := h.UserFinder.FindByEmailAndPassword(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrEmailPasswordRequired):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, authsvc.ErrInvalidEmail), errors.Is(err, authsvc.ErrIncorrectPassword):
			return response.Unauthorized(c, err.Error())
		case errors.Is(err, authsvc.ErrCustomerNotLinked), errors.Is(err, authsvc.ErrUnknownRole):
			return response.Forbidden(c, err.Error())
		default:
			log.Error().Err(err).Msg("auth/login: user lookup failed")
			return response.Internal(c)
		}
	}

	sessionID := middleware.RegenerateSessionID(c)
	customerID := nilString(user.CustomerID)

	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:     user.UserID.String(),
		Fullname:   user.Fullname,
		Email:      user.Email,
		Role:       user.Role,
		CustomerID: customerID,
	})

	if err := h.Rdb.SAdd(c.Context(), middleware.UserSessionsPrefix+user.UserID.String(), sessionID).Err(); err != nil {
		log.Error().Err(err).Msg("auth/login: session tracking failed")
		return response.Internal(c)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	return response.Success(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"user_id":     user.UserID.String(),
			"fullname":    user.Fullname,
			"email":       user.Email,
			"role":        user.Role,
			"customer_id": customerID,
		},
	}, nil)
}

// Me GET /api/v1/auth/me: current session user.
func (h *Handlers) Me(c *fiber.Ctx) error {
	sessionUser := middleware.GetUser(c)
	user, err := authsvc.VerifyUser(sessionUser)
	if err != nil {
		log.Info().Str("path", "/auth/me").
			Bool("session_id_present", middleware.GetSessionID(c) != "").
			Bool("session_user_nil", sessionUser == nil).
			Msg("auth/me: not authenticated")
		return response.Unauthorized(c, "Not authenticated")
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/v1/auth/logout: drop the session from Redis and clear the cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	ctx := c.Context()

	if u, ok := middleware.CurrentUser(c); ok && sessionID != "" {
		_ = h.Rdb.SRem(ctx, middleware.UserSessionsPrefix+u.UserID, sessionID).Err()
	}
	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}

	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}

// LogoutAll POST /api/v1/auth/logout-all: end every session of the current user.
func (h *Handlers) LogoutAll(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, authsvc.ErrNotAuthenticated.Error())
	}
	n, err := middleware.DestroyUserSessions(c.Context(), h.Rdb, u.UserID)
	if err != nil {
		log.Error().Err(err).Str("user_id", u.UserID).Msg("auth/logout-all: session cleanup failed")
		return response.Internal(c)
	}
	if sid := middleware.GetSessionID(c); sid != "" {
		_ = h.Rdb.Del(c.Context(), middleware.SessionRedisPrefix+sid).Err()
	}
	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out of all sessions", fiber.Map{"sessions_ended": n}, nil)
}

func nilString(u *uuid.UUID) *string {
	if u == nil {
		return nil
	}
	s := u.String()
	return &s
}
