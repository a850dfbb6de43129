package http

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	backupUC "github.com/khoahotran/scholar-folio/internal/application/usecase/backup"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

// MaxImportBytes bounds the size of an uploaded backup.
const MaxImportBytes = 16 << 20

type BackupHandler struct {
	backupUseCase *backupUC.BackupUseCase
	logger        logger.Logger
}

func NewBackupHandler(uc *backupUC.BackupUseCase, log logger.Logger) *BackupHandler {
	return &BackupHandler{
		backupUseCase: uc,
		logger:        log,
	}
}

func (h *BackupHandler) Export(c *gin.Context) {
	raw, err := h.backupUseCase.Export(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+backupUC.ExportFilename(time.Now())+`"`)
	c.Data(http.StatusOK, jsonContentType, raw)
}

// Import accepts the document either as the raw body or as a multipart
// "file" field.
func (h *BackupHandler) Import(c *gin.Context) {
	raw, err := h.readDocument(c)
	if err != nil {
		c.Error(apperror.NewImport("cannot read uploaded file", err))
		return
	}
	if err := h.backupUseCase.Import(c.Request.Context(), raw); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BackupHandler) readDocument(c *gin.Context) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImportBytes)
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		return io.ReadAll(c.Request.Body)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
