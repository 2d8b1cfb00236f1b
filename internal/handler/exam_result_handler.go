package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/repository"
	"github.com/noah-isme/fpams-go-api/internal/service"
	"github.com/noah-isme/fpams-go-api/internal/utils"
)

// ExamResultHandler wires exam result endpoints for the exam cell.
type ExamResultHandler struct {
	service service.ExamResultService
	logger  zerolog.Logger
}

// NewExamResultHandler constructs the handler.
func NewExamResultHandler(service service.ExamResultService, logger zerolog.Logger) *ExamResultHandler {
	return &ExamResultHandler{
		service: service,
		logger:  logger.With().Str("component", "exam_result_handler").Logger(),
	}
}

// Register attaches exam result endpoints to the router group.
func (h *ExamResultHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Patch("/:id/verify", h.verify)
}

func (h *ExamResultHandler) list(c *fiber.Ctx) error {
	subjectID, err := parseQueryUint(c, "subject_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	filter := repository.ExamResultFilter{
		SubjectID:    subjectID,
		AcademicYear: c.Query("academic_year"),
	}
	if raw := strings.TrimSpace(c.Query("verified")); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
		}
		filter.Verified = &verified
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	results, err := h.service.List(c.Context(), actor, filter)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to list exam results")
	}

	return utils.OK(c, results, "exam results retrieved", fiber.Map{"count": len(results)})
}

func (h *ExamResultHandler) create(c *fiber.Ctx) error {
	var payload dto.ExamResultCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	result, err := h.service.Create(c.Context(), actor, payload)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to upload exam result")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "exam result uploaded", result)
}

func (h *ExamResultHandler) verify(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ExamResultVerifyRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	result, err := h.service.SetVerified(c.Context(), actor, id, payload)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to update exam result")
	}

	return utils.SendSuccess(c, "exam result updated", result)
}
