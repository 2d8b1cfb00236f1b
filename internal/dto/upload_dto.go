package dto

import "time"

// UploadResponse reports where a proof file landed.
type UploadResponse struct {
	URL         string    `json:"url"`
	FileName    string    `json:"file_name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
