package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	authUC "github.com/khoahotran/scholar-folio/internal/application/usecase/auth"
	contentUC "github.com/khoahotran/scholar-folio/internal/application/usecase/content"
	"github.com/khoahotran/scholar-folio/internal/application/usecase/notify"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
)

// MetaReader reports when content was last written to storage.
type MetaReader interface {
	LastUpdated() time.Time
}

// SessionHandler serves the view state around the content: gate status,
// edit mode, the notification slot and the active highlight.
type SessionHandler struct {
	gate     *authUC.Gate
	store    *contentUC.Store
	notifier *notify.Channel
	meta     MetaReader
}

func NewSessionHandler(gate *authUC.Gate, store *contentUC.Store, notifier *notify.Channel, meta MetaReader) *SessionHandler {
	return &SessionHandler{
		gate:     gate,
		store:    store,
		notifier: notifier,
		meta:     meta,
	}
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.session())
}

func (h *SessionHandler) ToggleEditing(c *gin.Context) {
	h.gate.ToggleEditing()
	c.JSON(http.StatusOK, h.session())
}

func (h *SessionHandler) session() SessionDTO {
	dto := SessionDTO{
		State:           h.gate.State(),
		IsAuthenticated: h.gate.IsAuthenticated(),
		IsEditing:       h.gate.IsEditing(),
	}
	if h.meta != nil {
		if ts := h.meta.LastUpdated(); !ts.IsZero() {
			dto.LastUpdated = &ts
		}
	}
	return dto
}

func (h *SessionHandler) GetNotification(c *gin.Context) {
	n, ok := h.notifier.Current()
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, n)
}

// ClearNotification clears the slot. With ?seq=N it clears only if N is
// still the current notification.
func (h *SessionHandler) ClearNotification(c *gin.Context) {
	raw := c.Query("seq")
	if raw == "" {
		h.notifier.Clear()
		c.Status(http.StatusNoContent)
		return
	}
	seq, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.Error(apperror.NewValidation("seq must be an unsigned integer", err))
		return
	}
	h.notifier.ClearIf(seq)
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) GetHighlight(c *gin.Context) {
	c.JSON(http.StatusOK, highlightResponse{Token: h.store.ActiveHighlight()})
}

func (h *SessionHandler) SetHighlight(c *gin.Context) {
	var req highlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation(err.Error(), err))
		return
	}
	h.store.SetActiveHighlight(req.Token)
	c.JSON(http.StatusOK, highlightResponse{Token: req.Token})
}
