package customers

import (
	"errors"

	custsvc "rmclub-backend/internal/application/customers"
	"rmclub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *custsvc.Service
}

// GET /api/v1/admin/customers?status=active
func (h *Handlers) List(c *fiber.Ctx) error {
	list, err := h.Service.List(c.Context(), c.Query("status"))
	if err != nil {
		if errors.Is(err, custsvc.ErrInvalidStatus) {
			return response.BadRequest(c, err.Error())
		}
		log.Error().Err(err).Msg("customers: list failed")
		return response.Internal(c)
	}
	return response.Success(c, "Customers fetched successfully", list, fiber.Map{"count": len(list)})
}

// GET /api/v1/admin/customers/:id
func (h *Handlers) Profile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid customer id format")
	}
	p, err := h.Service.Profile(c.Context(), id)
	if err != nil {
		if errors.Is(err, custsvc.ErrCustomerNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("customer_id", id.String()).Msg("customers: profile failed")
		return response.Internal(c)
	}
	return response.Success(c, "Customer fetched successfully", p, nil)
}
