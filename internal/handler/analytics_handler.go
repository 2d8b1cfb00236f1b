package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/service"
	"github.com/noah-isme/fpams-go-api/internal/utils"
)

// AnalyticsHandler exposes aggregation and report endpoints.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// Register attaches analytics endpoints to the router group.
func (h *AnalyticsHandler) Register(router fiber.Router) {
	router.Get("/aggregate", h.aggregate)
	router.Get("/faculty/:id", h.facultyReport)
	router.Get("/departments/:id", h.departmentReport)
	router.Get("/institution", h.institutionReport)
}

func (h *AnalyticsHandler) aggregate(c *fiber.Ctx) error {
	departmentID, err := parseQueryUint(c, "department_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}
	facultyID, err := parseQueryUint(c, "faculty_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	scope := dto.AggregateScope{
		DepartmentID: departmentID,
		FacultyID:    facultyID,
		AcademicYear: c.Query("academic_year"),
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	response, err := h.service.Aggregate(c.Context(), actor, scope)
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to aggregate scores")
	}

	return utils.SendSuccess(c, "aggregate computed", response)
}

func (h *AnalyticsHandler) facultyReport(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	report, err := h.service.FacultyReport(c.Context(), actor, id, c.Query("academic_year"))
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to build faculty report")
	}

	return utils.SendSuccess(c, "faculty report generated", report)
}

func (h *AnalyticsHandler) departmentReport(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid identifier")
	}

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	report, err := h.service.DepartmentReport(c.Context(), actor, id, c.Query("academic_year"))
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to build department report")
	}

	return utils.SendSuccess(c, "department report generated", report)
}

func (h *AnalyticsHandler) institutionReport(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	report, err := h.service.InstitutionReport(c.Context(), actor, c.Query("academic_year"))
	if err != nil {
		return handleWorkflowError(c, logger, err, "failed to build institution report")
	}

	return utils.SendSuccess(c, "institution report generated", report)
}
