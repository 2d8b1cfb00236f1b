package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/service"
	"github.com/noah-isme/fpams-go-api/internal/utils"
)

// ValidationHandler exposes the workflow transition endpoint. Every status,
// marks or lock change on a submission goes through here.
type ValidationHandler struct {
	service service.ValidationService
	logger  zerolog.Logger
}

// NewValidationHandler constructs the handler.
func NewValidationHandler(service service.ValidationService, logger zerolog.Logger) *ValidationHandler {
	return &ValidationHandler{
		service: service,
		logger:  logger.With().Str("component", "validation_handler").Logger(),
	}
}

// Register attaches the transition endpoint to the router group.
func (h *ValidationHandler) Register(router fiber.Router) {
	router.Patch("/:kind/:id/validate", h.transition)
}

func (h *ValidationHandler) transition(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	kind := c.Params("kind")

	var payload dto.TransitionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	response, err := h.service.Transition(c.Context(), kind, id, actor, payload)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to apply transition")
	}

	logger.Info().
		Str("kind", kind).
		Uint("target_id", id).
		Str("action", payload.Action).
		Uint("actor_id", actor.ID).
		Msg("transition applied")

	return utils.SendSuccess(c, "transition applied", response)
}
