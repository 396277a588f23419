package api

import (
	"time"

	"github.com/ironsheep/notesplit/internal/pipeline"
	"github.com/ironsheep/notesplit/internal/session"
)

// Error codes returned in ErrorBody.
const (
	CodeInvalidFileFormat = "INVALID_FILE_FORMAT"
	CodeFileTooLarge      = "FILE_TOO_LARGE"
	CodeInvalidConfig     = "INVALID_CONFIG"
	CodeProcessingError   = "PROCESSING_ERROR"
	CodeFileNotFound      = "FILE_NOT_FOUND"
	CodeSessionNotFound   = "SESSION_NOT_FOUND"
)

type ExtractionResponse struct {
	Success        bool               `json:"success"`
	ProcessingTime float64            `json:"processing_time"`
	SessionID      string             `json:"session_id"`
	Manifest       *pipeline.Manifest `json:"manifest"`
	Diagrams       []DiagramFile      `json:"diagrams"`
	DebugImages    []DebugImage       `json:"debug_images,omitempty"`
}

type DiagramFile struct {
	ID         int     `json:"id"`
	Filename   string  `json:"filename"`
	BBox       [4]int  `json:"bbox"`
	Confidence float64 `json:"confidence"`
	URL        string  `json:"url"`
}

type DebugImage struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type CleanupResponse struct {
	Success      bool  `json:"success"`
	FilesDeleted int   `json:"files_deleted"`
	BytesFreed   int64 `json:"bytes_freed"`
}

type HealthResponse struct {
	Status            string  `json:"status"`
	Version           string  `json:"version"`
	SessionTTLMinutes float64 `json:"session_ttl_minutes"`
}

// SessionInfoResponse is a session listing plus the summary of its manifest
// when the session holds one.
type SessionInfoResponse struct {
	*session.Info
	Summary *pipeline.Summary `json:"summary,omitempty"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type ErrorBody struct {
	Success   bool        `json:"success"`
	Error     ErrorDetail `json:"error"`
	Timestamp time.Time   `json:"timestamp"`
}
