package persistence

import (
	"context"
	"errors"

	"github.com/khoahotran/scholar-folio/internal/application/service"
	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.uber.org/zap"
)

// Key names below are relative; the adapter prepends its namespace prefix.
const (
	KeyProfile = "profile"
	KeyAuth    = "auth"
	KeyMeta    = "meta"
)

// CollectionKey is the storage key of a collection blob.
func CollectionKey(name content.Name) string {
	return "collection:" + string(name)
}

// Adapter namespaces keys in a KeyValueStore and absorbs backend failures.
// Reads never fail: an unreadable key is logged and reported absent.
type Adapter struct {
	kv     service.KeyValueStore
	prefix string
	logger logger.Logger
}

func NewAdapter(kv service.KeyValueStore, prefix string, log logger.Logger) *Adapter {
	return &Adapter{
		kv:     kv,
		prefix: prefix,
		logger: log,
	}
}

func (a *Adapter) Key(name string) string {
	return a.prefix + name
}

// Read returns the stored value and whether one was found.
func (a *Adapter) Read(ctx context.Context, name string) (string, bool) {
	v, ok, _ := a.lookup(ctx, name)
	return v, ok
}

// lookup is Read with the backend error kept, so hydration can tell a missing
// key from an unavailable store.
func (a *Adapter) lookup(ctx context.Context, name string) (string, bool, error) {
	v, err := a.kv.Get(ctx, a.Key(name))
	if err != nil {
		if errors.Is(err, service.ErrKeyNotFound) {
			return "", false, nil
		}
		a.logger.Warn("Storage read failed", zap.String("key", a.Key(name)), zap.Error(err))
		return "", false, apperror.NewStorageUnavailable(a.Key(name), err)
	}
	return v, true, nil
}

// Write stores value. A failed write is logged and returned as
// ErrStorageUnavailable; callers keep their in-memory state either way.
func (a *Adapter) Write(ctx context.Context, name, value string) error {
	if err := a.kv.Set(ctx, a.Key(name), value); err != nil {
		a.logger.Error("Storage write failed", err, zap.String("key", a.Key(name)))
		return apperror.NewStorageUnavailable(a.Key(name), err)
	}
	return nil
}

func (a *Adapter) Remove(ctx context.Context, name string) error {
	if err := a.kv.Delete(ctx, a.Key(name)); err != nil && !errors.Is(err, service.ErrKeyNotFound) {
		a.logger.Error("Storage delete failed", err, zap.String("key", a.Key(name)))
		return apperror.NewStorageUnavailable(a.Key(name), err)
	}
	return nil
}
