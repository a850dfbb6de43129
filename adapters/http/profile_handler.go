package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	contentUC "github.com/khoahotran/scholar-folio/internal/application/usecase/content"
	"github.com/khoahotran/scholar-folio/internal/domain/profile"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

type ProfileHandler struct {
	store  *contentUC.Store
	logger logger.Logger
}

func NewProfileHandler(store *contentUC.Store, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{
		store:  store,
		logger: log,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Profile())
}

// UpdateProfile applies a partial update. Each top-level field present in the
// body replaces the stored field whole.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperror.NewValidation("cannot read request body", err))
		return
	}

	patch, err := profile.DecodePatch(raw)
	if err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for profile update", err))
		return
	}

	updated, err := h.store.SetProfile(c.Request.Context(), patch)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ReplaceProfile stores the body as the whole profile.
func (h *ProfileHandler) ReplaceProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		c.Error(apperror.NewValidation("invalid JSON body for profile", err))
		return
	}

	updated, err := h.store.ReplaceProfile(c.Request.Context(), p)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
