package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/khoahotran/scholar-folio/internal/application/service"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

// BadgerKV stores blobs in an embedded BadgerDB, the on-device default.
type BadgerKV struct {
	db *badger.DB
}

// NewBadgerKV opens the database at path, or in memory when path is empty.
func NewBadgerKV(path string, log logger.Logger) (*BadgerKV, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create badger directory: %w", err)
	}
	opts = opts.WithLogger(&badgerLogger{log: log}).WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	log.Info("Opened BadgerDB storage")
	return &BadgerKV{db: db}, nil
}

func (b *BadgerKV) Get(_ context.Context, key string) (string, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", service.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("badger get %s: %w", key, err)
	}
	return string(value), nil
}

func (b *BadgerKV) Set(_ context.Context, key, value string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("badger set %s: %w", key, err)
	}
	return nil
}

func (b *BadgerKV) Delete(_ context.Context, key string) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("badger delete %s: %w", key, err)
	}
	return nil
}

func (b *BadgerKV) Close() error {
	return b.db.Close()
}

// badgerLogger routes badger's printf-style logging into the app logger.
type badgerLogger struct {
	log logger.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...), nil)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}
