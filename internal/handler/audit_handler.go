package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/service"
	"github.com/noah-isme/fpams-go-api/internal/utils"
)

// AuditHandler exposes the read-only workflow audit trail.
type AuditHandler struct {
	service service.AuditService
	logger  zerolog.Logger
}

// NewAuditHandler constructs the handler.
func NewAuditHandler(service service.AuditService, logger zerolog.Logger) *AuditHandler {
	return &AuditHandler{
		service: service,
		logger:  logger.With().Str("component", "audit_handler").Logger(),
	}
}

// Register attaches audit endpoints to the router group.
func (h *AuditHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
}

func (h *AuditHandler) list(c *fiber.Ctx) error {
	targetID, err := parseQueryUint(c, "target_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	filter := dto.AuditLogFilter{
		ActionType: c.Query("action_type"),
		TargetType: c.Query("target_type"),
		TargetID:   targetID,
		Limit:      limit,
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	entries, err := h.service.List(c.Context(), actor, filter)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to list audit entries")
	}

	return utils.OK(c, entries, "audit entries retrieved", fiber.Map{"count": len(entries)})
}
