package portfolio

import (
	custsvc "rmclub-backend/internal/application/customers"
	"rmclub-backend/internal/middleware"
	"rmclub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Handlers serve the signed-in customer's own portfolio.
type Handlers struct {
	Service *custsvc.Service
}

// GET /api/v1/portfolio/summary
func (h *Handlers) Summary(c *fiber.Ctx) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return response.Forbidden(c, "No customer profile linked to this account")
	}
	v, err := h.Service.Portfolio(c.Context(), customerID)
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID.String()).Msg("portfolio: summary failed")
		return response.Internal(c)
	}
	return response.Success(c, "Portfolio fetched successfully", v, nil)
}

// GET /api/v1/portfolio/upcoming-payments?limit=N
func (h *Handlers) UpcomingPayments(c *fiber.Ctx) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return response.Forbidden(c, "No customer profile linked to this account")
	}
	limit := c.QueryInt("limit", -1)
	due, err := h.Service.UpcomingPayments(c.Context(), customerID, limit)
	if err != nil {
		log.Error().Err(err).Str("customer_id", customerID.String()).Msg("portfolio: upcoming payments failed")
		return response.Internal(c)
	}
	return response.Success(c, "Upcoming payments fetched successfully", due, fiber.Map{"count": len(due)})
}
