package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
)

// Proof files are evidence documents, not media assets. Anything outside
// this set is rejected before touching storage.
var allowedProofTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
}

const maxProofSize = 10 << 20 // 10 MiB

// Upload error taxonomy.
var (
	ErrProofTooLarge    = errors.New("proof file exceeds size limit")
	ErrProofUnsupported = errors.New("proof file type not supported")
)

// FileUploader stores a named file and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// UploadService validates and stores proof documents attached to
// submissions.
type UploadService interface {
	UploadProof(ctx context.Context, actor Actor, fileName string, reader io.Reader) (ProofFile, error)
}

// ProofFile describes a stored proof document.
type ProofFile struct {
	URL         string
	FileName    string
	Size        int64
	ContentType string
	UploadedAt  time.Time
}

type uploadService struct {
	uploader FileUploader
	logger   zerolog.Logger
	now      func() time.Time
}

// NewUploadService constructs the proof upload service.
func NewUploadService(uploader FileUploader, logger zerolog.Logger) UploadService {
	return &uploadService{
		uploader: uploader,
		logger:   logger.With().Str("component", "upload_service").Logger(),
		now:      time.Now,
	}
}

func (s *uploadService) UploadProof(ctx context.Context, actor Actor, fileName string, reader io.Reader) (ProofFile, error) {
	if actor.ID == 0 {
		return ProofFile{}, ErrUnauthorized
	}

	// Read one byte past the limit to distinguish at-limit from over.
	data, err := io.ReadAll(io.LimitReader(reader, maxProofSize+1))
	if err != nil {
		return ProofFile{}, err
	}
	if len(data) > maxProofSize {
		return ProofFile{}, ErrProofTooLarge
	}

	// Content type comes from the bytes, never the file name.
	detected := mimetype.Detect(data)
	if !allowedProofTypes[detected.String()] {
		return ProofFile{}, ErrProofUnsupported
	}

	url, err := s.uploader.Upload(ctx, fileName, bytes.NewReader(data))
	if err != nil {
		return ProofFile{}, err
	}

	s.logger.Info().
		Uint("actor_id", actor.ID).
		Str("file_name", fileName).
		Str("content_type", detected.String()).
		Int("size", len(data)).
		Msg("proof uploaded")

	return ProofFile{
		URL:         url,
		FileName:    fileName,
		Size:        int64(len(data)),
		ContentType: detected.String(),
		UploadedAt:  s.now(),
	}, nil
}
