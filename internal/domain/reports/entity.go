package reports

import (
	"time"
)

// ID tipe untuk Report
type ReportID string

// Aggregate Root: Report, metadata for one uploaded PDF
type Report struct {
	ID          ReportID  `json:"id"`
	FileName    string    `json:"file_name"`
	Title       string    `json:"title,omitempty"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type,omitempty"`
	StorageKey  string    `json:"storage_key"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
