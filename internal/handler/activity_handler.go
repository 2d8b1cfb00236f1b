package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/service"
	"github.com/noah-isme/fpams-go-api/internal/utils"
)

// ActivityHandler wires activity submission endpoints.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register attaches activity endpoints to the router group.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id", h.get)
	router.Post("/", h.create)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.remove)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	filter, err := parseActivityFilter(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	activities, err := h.service.List(c.Context(), actor, filter)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to list activities")
	}

	return utils.OK(c, activities, "activities retrieved", fiber.Map{"count": len(activities)})
}

func parseActivityFilter(c *fiber.Ctx) (dto.ActivityFilter, error) {
	facultyID, err := parseQueryUint(c, "faculty_id")
	if err != nil {
		return dto.ActivityFilter{}, err
	}
	departmentID, err := parseQueryUint(c, "department_id")
	if err != nil {
		return dto.ActivityFilter{}, err
	}

	return dto.ActivityFilter{
		FacultyID:    facultyID,
		DepartmentID: departmentID,
		Category:     c.Query("category"),
		Status:       c.Query("status"),
		AcademicYear: c.Query("academic_year"),
	}, nil
}

func (h *ActivityHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	activity, err := h.service.GetByID(c.Context(), actor, id)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to fetch activity")
	}

	return utils.SendSuccess(c, "activity retrieved", activity)
}

func (h *ActivityHandler) create(c *fiber.Ctx) error {
	var payload dto.ActivityCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	activity, err := h.service.Create(c.Context(), actor, payload)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to create activity")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity created", activity)
}

func (h *ActivityHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	var payload dto.ActivityUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	activity, err := h.service.Update(c.Context(), actor, id, payload)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to update activity")
	}

	return utils.SendSuccess(c, "activity updated", activity)
}

func (h *ActivityHandler) remove(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	if err := h.service.Delete(c.Context(), actor, id); err != nil {
		return handleWorkflowError(c, logger, err, "failed to delete activity")
	}

	return utils.SendSuccess(c, "activity deleted", nil)
}
