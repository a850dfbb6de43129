package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authUC "github.com/khoahotran/scholar-folio/internal/application/usecase/auth"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/auth"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.uber.org/zap"
)

// AuthMiddleware requires a valid bearer token bound to the gate's current
// login. Logging out invalidates every outstanding token.
func AuthMiddleware(jwtSvc *auth.JWTService, gate *authUC.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Error(apperror.NewUnauthorized("Authorization header is required", nil))
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.Error(apperror.NewUnauthorized("Invalid token format", nil))
			c.Abort()
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.Error(apperror.NewUnauthorized("Invalid or expired token", err))
			c.Abort()
			return
		}

		if !gate.IsSession(claims.SessionID) {
			c.Error(apperror.NewUnauthorized("Session has ended", nil))
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireEditing rejects content mutations outside edit mode.
func RequireEditing(gate *authUC.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !gate.IsEditing() {
			c.Error(apperror.NewPermissionDenied("edit mode is off"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ErrorMiddleware renders the last error recorded on the context.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}
		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", appErr,
				zap.String("path", c.FullPath()),
				zap.String("method", c.Request.Method),
			)
		} else {
			log.Debug("Request rejected",
				zap.String("path", c.FullPath()),
				zap.Int("status", status),
				zap.String("details", appErr.Details),
			)
		}
		if !c.Writer.Written() {
			c.JSON(status, appErr.ToJSON())
		}
	}
}
