package models

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionPending SessionStatus = "pending"
	SessionRanked  SessionStatus = "ranked"
	SessionFailed  SessionStatus = "failed"
)

// Upload is a stored résumé file awaiting extraction.
type Upload struct {
	Name     string `json:"name"`
	Filename string `json:"filename"`
	FilePath string `json:"-"`
	Size     int64  `json:"size"`
}

// Session carries the inputs collected on submission to the report stage.
type Session struct {
	ID             uuid.UUID     `json:"id"`
	JobDescription string        `json:"-"`
	Uploads        []Upload      `json:"uploads"`
	Status         SessionStatus `json:"status"`
	Report         *Report       `json:"-"`
	ErrorMessage   string        `json:"error_message,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
	ExpiresAt      time.Time     `json:"expires_at"`
}

// Expired reports whether the session outlived its TTL at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// UploadNames returns the display names in upload order.
func (s *Session) UploadNames() []string {
	names := make([]string, len(s.Uploads))
	for i, u := range s.Uploads {
		names[i] = u.Name
	}
	return names
}
