package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authUC "github.com/khoahotran/scholar-folio/internal/application/usecase/auth"
	"github.com/khoahotran/scholar-folio/internal/application/usecase/notify"
	"github.com/khoahotran/scholar-folio/internal/domain/notification"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/auth"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

type AuthHandler struct {
	gate     *authUC.Gate
	jwtSvc   *auth.JWTService
	notifier *notify.Channel
	logger   logger.Logger
}

func NewAuthHandler(gate *authUC.Gate, jwtSvc *auth.JWTService, notifier *notify.Channel, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		gate:     gate,
		jwtSvc:   jwtSvc,
		notifier: notifier,
		logger:   log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation(err.Error(), err))
		return
	}

	if err := h.gate.Login(c.Request.Context(), req.Password); err != nil {
		h.notifier.Notify("Incorrect password", notification.KindError)
		c.Error(err)
		return
	}

	token, err := h.jwtSvc.GenerateToken(h.gate.SessionID())
	if err != nil {
		h.logger.Error("Failed to generate token", err)
		c.Error(apperror.NewInternal("failed to generate token", err))
		return
	}

	h.notifier.Notify("Logged in", notification.KindSuccess)
	c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		State:       h.gate.State(),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.gate.Logout(c.Request.Context())
	h.notifier.Notify("Logged out", notification.KindInfo)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewValidation(err.Error(), err))
		return
	}

	if err := h.gate.ChangePassword(c.Request.Context(), req.Password); err != nil {
		h.notifier.Notify(apperror.MessageOf(err), notification.KindError)
		c.Error(err)
		return
	}

	h.notifier.Notify("Password changed successfully", notification.KindSuccess)
	c.Status(http.StatusNoContent)
}
