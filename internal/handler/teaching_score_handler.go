package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/service"
	"github.com/noah-isme/fpams-go-api/internal/utils"
)

// TeachingScoreHandler wires teaching score submission endpoints.
type TeachingScoreHandler struct {
	service service.TeachingScoreService
	logger  zerolog.Logger
}

// NewTeachingScoreHandler constructs the handler.
func NewTeachingScoreHandler(service service.TeachingScoreService, logger zerolog.Logger) *TeachingScoreHandler {
	return &TeachingScoreHandler{
		service: service,
		logger:  logger.With().Str("component", "teaching_score_handler").Logger(),
	}
}

// Register attaches teaching score endpoints to the router group.
func (h *TeachingScoreHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Post("/", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *TeachingScoreHandler) list(c *fiber.Ctx) error {
	facultyID, err := parseQueryUint(c, "faculty_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	subjectID, err := parseQueryUint(c, "subject_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	departmentID, err := parseQueryUint(c, "department_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	filter := dto.TeachingScoreFilter{
		FacultyID:    facultyID,
		SubjectID:    subjectID,
		DepartmentID: departmentID,
		Status:       c.Query("status"),
		AcademicYear: c.Query("academic_year"),
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	scores, err := h.service.List(c.Context(), actor, filter)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to list teaching scores")
	}

	return utils.OK(c, scores, "teaching scores retrieved", fiber.Map{"count": len(scores)})
}

func (h *TeachingScoreHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	score, err := h.service.GetByID(c.Context(), actor, id)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to fetch teaching score")
	}

	return utils.SendSuccess(c, "teaching score retrieved", score)
}

func (h *TeachingScoreHandler) create(c *fiber.Ctx) error {
	var payload dto.TeachingScoreCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	score, err := h.service.Create(c.Context(), actor, payload)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to create teaching score")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "teaching score created", score)
}

func (h *TeachingScoreHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.TeachingScoreUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	score, err := h.service.Update(c.Context(), actor, id, payload)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to update teaching score")
	}

	return utils.SendSuccess(c, "teaching score updated", score)
}

func (h *TeachingScoreHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	if err := h.service.Delete(c.Context(), actor, id); err != nil {
		return handleWorkflowError(c, logger, err, "failed to delete teaching score")
	}

	return utils.SendSuccess(c, "teaching score deleted", nil)
}
