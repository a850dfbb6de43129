package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/internal/domain/notification"
	"github.com/khoahotran/scholar-folio/internal/domain/profile"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// DocumentVersion is written to every export.
const DocumentVersion = 1

var tracer = otel.Tracer("backup_usecase")

type ContentStore interface {
	Snapshot() content.Snapshot
	ReplaceAll(ctx context.Context, snap content.Snapshot) error
}

type Notifier interface {
	Notify(message string, kind notification.Kind) notification.Notification
}

// Document is the export file layout: metadata followed by the content graph.
type Document struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exportedAt"`
	content.Snapshot
}

type BackupUseCase struct {
	store    ContentStore
	notifier Notifier
	logger   logger.Logger
	now      func() time.Time
}

func NewBackupUseCase(store ContentStore, notifier Notifier, log logger.Logger) *BackupUseCase {
	return &BackupUseCase{
		store:    store,
		notifier: notifier,
		logger:   log,
		now:      time.Now,
	}
}

// Export serializes the whole content graph as an indented JSON document.
func (uc *BackupUseCase) Export(ctx context.Context) ([]byte, error) {
	_, span := tracer.Start(ctx, "Export")
	defer span.End()

	doc := Document{
		Version:    DocumentVersion,
		ExportedAt: uc.now().UTC(),
		Snapshot:   uc.store.Snapshot(),
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		span.RecordError(err)
		uc.logger.Error("Failed to encode backup", err)
		uc.notify("Export failed", notification.KindError)
		return nil, apperror.NewInternal("failed to encode backup", err)
	}
	uc.logger.Info("Backup exported", zap.Int("bytes", len(raw)))
	uc.notify("Data exported successfully", notification.KindSuccess)
	return raw, nil
}

// ExportFilename names an export taken at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("portfolio-backup-%s.json", t.Format("2006-01-02"))
}

// Import replaces all content with the document in raw. Nothing changes
// unless the whole document is valid.
func (uc *BackupUseCase) Import(ctx context.Context, raw []byte) error {
	ctx, span := tracer.Start(ctx, "Import")
	defer span.End()

	snap, err := decode(raw)
	if err == nil {
		err = uc.store.ReplaceAll(ctx, snap)
		if err != nil {
			err = apperror.NewImport("store rejected document", err)
		}
	}
	if err != nil {
		span.RecordError(err)
		uc.logger.Warn("Backup import rejected", zap.Error(err))
		uc.notify("Failed to import data. Please check the file format.", notification.KindError)
		return err
	}
	uc.logger.Info("Backup imported")
	uc.notify("Data imported successfully", notification.KindSuccess)
	return nil
}

func decode(raw []byte) (content.Snapshot, error) {
	var snap content.Snapshot
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil || doc == nil {
		return snap, apperror.NewImport("document is not a JSON object", err)
	}

	pRaw, ok := doc[content.ProfileKey]
	if !ok || isNull(pRaw) {
		return snap, apperror.NewImport("missing key: "+content.ProfileKey, nil)
	}
	var p profile.Profile
	if err := json.Unmarshal(pRaw, &p); err != nil {
		return snap, apperror.NewImport("invalid profile", err)
	}
	snap.Profile = p

	for _, c := range content.All() {
		name := string(c.Name())
		cRaw, ok := doc[name]
		if !ok {
			return snap, apperror.NewImport("missing key: "+name, nil)
		}
		if err := c.Unmarshal(&snap, cRaw); err != nil {
			return snap, apperror.NewImport("invalid "+name, err)
		}
		if err := c.CheckIDs(&snap); err != nil {
			return snap, apperror.NewImport(err.Error(), err)
		}
	}
	return snap, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func (uc *BackupUseCase) notify(message string, kind notification.Kind) {
	if uc.notifier != nil {
		uc.notifier.Notify(message, kind)
	}
}
