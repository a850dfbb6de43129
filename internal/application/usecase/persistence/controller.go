package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/internal/domain/profile"
	"github.com/khoahotran/scholar-folio/internal/domain/session"
	"github.com/khoahotran/scholar-folio/internal/seed"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SchemaVersion is written to the meta key and to export documents.
const SchemaVersion = 1

var tracer = otel.Tracer("persistence_usecase")

type meta struct {
	LastUpdated   time.Time `json:"lastUpdated"`
	SchemaVersion int       `json:"schemaVersion"`
}

// HydrateReport describes where the hydrated state came from.
type HydrateReport struct {
	// FellBack lists keys that were missing or unreadable and now hold defaults.
	FellBack []string
	// Corrupt lists keys whose stored value could not be decoded.
	Corrupt            []string
	StorageUnavailable bool
	// FirstRun is set when no content key was stored at all.
	FirstRun    bool
	LastUpdated time.Time
}

// Controller moves snapshots between memory and the storage adapter. Writes
// are debounced and only keys whose serialized form changed are written.
type Controller struct {
	adapter  *Adapter
	debounce time.Duration
	logger   logger.Logger
	now      func() time.Time

	// writeMu serializes writes and guards written and lastUpdated.
	writeMu     sync.Mutex
	written     map[string]string
	lastUpdated time.Time

	mu      sync.Mutex
	pending *content.Snapshot
	timer   *time.Timer
	closed  bool
}

func NewController(adapter *Adapter, debounce time.Duration, log logger.Logger) *Controller {
	return &Controller{
		adapter:  adapter,
		debounce: debounce,
		logger:   log,
		now:      time.Now,
		written:  make(map[string]string),
	}
}

// Hydrate loads every key, falling back to the bundled defaults per key. A
// corrupt or unreadable key never affects the others.
func (c *Controller) Hydrate(ctx context.Context) (content.Snapshot, HydrateReport) {
	ctx, span := tracer.Start(ctx, "Hydrate")
	defer span.End()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	snap := seed.Defaults()
	var report HydrateReport
	found := 0

	fallback := func(key string, err error) {
		report.FellBack = append(report.FellBack, key)
		if err != nil {
			report.StorageUnavailable = true
		}
	}
	corrupt := func(key string, err error) {
		c.logger.Warn("Discarding unreadable stored value", zap.String("key", key), zap.Error(err))
		span.RecordError(apperror.NewDeserialization(key, err))
		report.Corrupt = append(report.Corrupt, key)
		report.FellBack = append(report.FellBack, key)
	}

	if raw, ok, err := c.adapter.lookup(ctx, KeyProfile); !ok {
		fallback(KeyProfile, err)
	} else {
		found++
		var p profile.Profile
		if err := decodeProfile(raw, &p); err != nil {
			corrupt(KeyProfile, err)
		} else {
			snap.Profile = p.Normalize()
			c.written[KeyProfile] = raw
		}
	}

	for _, coll := range content.All() {
		key := CollectionKey(coll.Name())
		raw, ok, err := c.adapter.lookup(ctx, key)
		if !ok {
			fallback(key, err)
			continue
		}
		found++
		if err := coll.Load(&snap, []byte(raw)); err != nil {
			corrupt(key, err)
			continue
		}
		c.written[key] = raw
	}

	if raw, ok := c.adapter.Read(ctx, KeyMeta); ok {
		var m meta
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			c.logger.Warn("Ignoring unreadable meta record", zap.Error(err))
		} else {
			c.lastUpdated = m.LastUpdated
		}
	}

	report.FirstRun = found == 0 && !report.StorageUnavailable
	report.LastUpdated = c.lastUpdated
	span.SetAttributes(
		attribute.Int("fell_back", len(report.FellBack)),
		attribute.Bool("first_run", report.FirstRun),
	)
	c.logger.Info("Content hydrated",
		zap.Int("stored_keys", found),
		zap.Strings("fell_back", report.FellBack),
		zap.Bool("storage_unavailable", report.StorageUnavailable),
	)
	return snap, report
}

// Persist schedules snap to be written. With a zero debounce it writes
// immediately. A newer snapshot replaces any pending one.
func (c *Controller) Persist(ctx context.Context, snap content.Snapshot) error {
	c.mu.Lock()
	if c.debounce <= 0 || c.closed {
		c.mu.Unlock()
		return c.write(ctx, snap)
	}
	c.pending = &snap
	if c.timer == nil {
		c.timer = time.AfterFunc(c.debounce, func() {
			_ = c.Flush(context.Background())
		})
	} else {
		c.timer.Reset(c.debounce)
	}
	c.mu.Unlock()
	return nil
}

// Flush writes the pending snapshot, if any.
func (c *Controller) Flush(ctx context.Context) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.mu.Lock()
	snap := c.pending
	c.pending = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	if snap == nil {
		return nil
	}
	return c.writeLocked(ctx, *snap)
}

// Close flushes pending writes. Later calls to Persist write synchronously.
func (c *Controller) Close(ctx context.Context) error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return c.Flush(ctx)
}

// Reset drops pending writes and removes every stored content key along with
// the meta record. The auth record is kept. The next hydrate is a first run.
func (c *Controller) Reset(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Reset")
	defer span.End()

	c.mu.Lock()
	c.pending = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	keys := []string{KeyProfile}
	for _, coll := range content.All() {
		keys = append(keys, CollectionKey(coll.Name()))
	}
	keys = append(keys, KeyMeta)

	var firstErr error
	for _, key := range keys {
		delete(c.written, key)
		if err := c.adapter.Remove(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		span.RecordError(firstErr)
		return firstErr
	}
	c.lastUpdated = time.Time{}
	c.logger.Info("Stored content removed")
	return nil
}

// LastUpdated reports the time of the last successful write.
func (c *Controller) LastUpdated() time.Time {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.lastUpdated
}

func (c *Controller) write(ctx context.Context, snap content.Snapshot) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.writeLocked(ctx, snap)
}

func (c *Controller) writeLocked(ctx context.Context, snap content.Snapshot) error {
	ctx, span := tracer.Start(ctx, "Write")
	defer span.End()

	blobs, err := encode(snap)
	if err != nil {
		span.RecordError(err)
		return err
	}

	var firstErr error
	changed := 0
	for _, b := range blobs {
		if prev, ok := c.written[b.key]; ok && prev == b.value {
			continue
		}
		if err := c.adapter.Write(ctx, b.key, b.value); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		c.written[b.key] = b.value
		changed++
	}
	span.SetAttributes(attribute.Int("changed_keys", changed))

	if changed > 0 {
		ts := c.now().UTC()
		raw, err := json.Marshal(meta{LastUpdated: ts, SchemaVersion: SchemaVersion})
		if err == nil {
			err = c.adapter.Write(ctx, KeyMeta, string(raw))
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
		} else {
			c.lastUpdated = ts
		}
		c.logger.Debug("Content persisted", zap.Int("changed_keys", changed))
	}
	if firstErr != nil {
		span.RecordError(firstErr)
	}
	return firstErr
}

func decodeProfile(raw string, p *profile.Profile) error {
	if raw == "null" {
		return errors.New("profile is null")
	}
	return json.Unmarshal([]byte(raw), p)
}

type blob struct {
	key   string
	value string
}

func encode(snap content.Snapshot) ([]blob, error) {
	out := make([]blob, 0, len(content.All())+1)
	raw, err := json.Marshal(snap.Profile)
	if err != nil {
		return nil, apperror.NewInternal("failed to encode profile", err)
	}
	out = append(out, blob{key: KeyProfile, value: string(raw)})
	for _, coll := range content.All() {
		raw, err := coll.Marshal(&snap)
		if err != nil {
			return nil, apperror.NewInternal("failed to encode "+string(coll.Name()), err)
		}
		out = append(out, blob{key: CollectionKey(coll.Name()), value: string(raw)})
	}
	return out, nil
}

// LoadAuth reads the persisted auth record.
func (c *Controller) LoadAuth(ctx context.Context) (session.AuthRecord, bool) {
	var rec session.AuthRecord
	raw, ok := c.adapter.Read(ctx, KeyAuth)
	if !ok {
		return rec, false
	}
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		c.logger.Warn("Discarding unreadable auth record", zap.Error(err))
		return session.AuthRecord{}, false
	}
	return rec, true
}

// SaveAuth writes the auth record immediately; it is never debounced.
func (c *Controller) SaveAuth(ctx context.Context, rec session.AuthRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return apperror.NewInternal("failed to encode auth record", err)
	}
	return c.adapter.Write(ctx, KeyAuth, string(raw))
}
