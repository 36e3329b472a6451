package dashboard

import (
	dashsvc "rmclub-backend/internal/application/dashboard"
	"rmclub-backend/internal/middleware"
	"rmclub-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *dashsvc.Service
}

// GET /api/v1/admin/dashboard
func (h *Handlers) Get(c *fiber.Ctx) error {
	u, _ := middleware.CurrentUser(c)
	data, err := h.Service.Build(c.Context(), u.Fullname)
	if err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("dashboard: build failed")
		return response.Internal(c)
	}
	return response.Success(c, "Dashboard fetched successfully", data, nil)
}
