package notifications

import (
	"errors"

	custsvc "rmclub-backend/internal/application/customers"
	notifsvc "rmclub-backend/internal/application/notifications"
	"rmclub-backend/internal/middleware"
	"rmclub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *notifsvc.Service
}

// POST /api/v1/notifications/register-token
func (h *Handlers) RegisterToken(c *fiber.Ctx) error {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	userID, err := uuid.Parse(u.UserID)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	var in notifsvc.RegisterTokenInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if in.Token == "" {
		return response.BadRequest(c, "token is required")
	}
	tok, err := h.Service.RegisterToken(c.Context(), userID, in)
	if err != nil {
		if errors.Is(err, notifsvc.ErrInvalidPushToken) || errors.Is(err, notifsvc.ErrInvalidPlatform) {
			return response.BadRequest(c, err.Error())
		}
		log.Error().Err(err).Str("user_id", u.UserID).Msg("notifications: register token failed")
		return response.Internal(c)
	}
	return response.SuccessCreated(c, "Device registered successfully", tok, nil)
}

// POST /api/v1/admin/customers/:id/remind
func (h *Handlers) SendReminder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid customer id format")
	}
	res, err := h.Service.SendDueReminder(c.Context(), id)
	if err != nil {
		if errors.Is(err, custsvc.ErrCustomerNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("customer_id", id.String()).Msg("notifications: reminder failed")
		return response.Internal(c)
	}
	msg := "Reminder sent"
	switch res.Result {
	case notifsvc.ResultSkipped:
		msg = "Reminder skipped"
	case notifsvc.ResultFailed:
		msg = "Reminder could not be delivered"
	}
	return response.Success(c, msg, res, nil)
}
