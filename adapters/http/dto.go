package http

import (
	"time"

	"github.com/khoahotran/scholar-folio/internal/domain/session"
)

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	AccessToken string        `json:"access_token"`
	State       session.State `json:"state"`
}

type changePasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// SessionDTO is the gate state as seen by the view layer. LastUpdated is
// omitted until content has been written once.
type SessionDTO struct {
	State           session.State `json:"state"`
	IsAuthenticated bool          `json:"isAuthenticated"`
	IsEditing       bool          `json:"isEditing"`
	LastUpdated     *time.Time    `json:"lastUpdated,omitempty"`
}

type highlightRequest struct {
	Token string `json:"token"`
}

type highlightResponse struct {
	Token string `json:"token"`
}

type itemCreatedResponse struct {
	ID string `json:"id"`
}
