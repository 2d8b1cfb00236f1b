package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/fpams-go-api/internal/dto"
	"github.com/noah-isme/fpams-go-api/internal/service"
	"github.com/noah-isme/fpams-go-api/internal/utils"
)

// UploadHandler accepts proof documents attached to submissions.
type UploadHandler struct {
	service service.UploadService
	logger  zerolog.Logger
}

// NewUploadHandler constructs the handler.
func NewUploadHandler(service service.UploadService, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service: service,
		logger:  logger.With().Str("component", "upload_handler").Logger(),
	}
}

// Register attaches the upload endpoint to the router group.
func (h *UploadHandler) Register(router fiber.Router) {
	router.Post("/proof", h.uploadProof)
}

func (h *UploadHandler) uploadProof(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "proof file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "could not read proof file")
	}
	defer file.Close()

	actor := actorFromContext(c)
	logger := requestLogger(h.logger, c)

	proof, err := h.service.UploadProof(c.Context(), actor, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProofTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, "proof file exceeds size limit")
		case errors.Is(err, service.ErrProofUnsupported):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, "proof file type not supported")
		default:
			return handleWorkflowError(c, logger, err, "failed to upload proof")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "proof uploaded", dto.UploadResponse{
		URL:         proof.URL,
		FileName:    proof.FileName,
		Size:        proof.Size,
		ContentType: proof.ContentType,
		UploadedAt:  proof.UploadedAt,
	})
}
