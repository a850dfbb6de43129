package persistence

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/scholar-folio/internal/application/service"
	"github.com/khoahotran/scholar-folio/internal/config"
	"github.com/khoahotran/scholar-folio/pkg/logger"
)

// KVContractSuite runs the same checks against every backend.
type KVContractSuite struct {
	suite.Suite
	open func() service.KeyValueStore
	kv   service.KeyValueStore
	ns   string
}

func (s *KVContractSuite) SetupTest() {
	s.kv = s.open()
	s.ns = "test:" + uuid.NewString() + ":"
}

func (s *KVContractSuite) TearDownTest() {
	ctx := context.Background()
	for _, k := range []string{"a", "b"} {
		_ = s.kv.Delete(ctx, s.ns+k)
	}
	s.NoError(s.kv.Close())
}

func (s *KVContractSuite) TestMissingKey() {
	_, err := s.kv.Get(context.Background(), s.ns+"a")
	s.ErrorIs(err, service.ErrKeyNotFound)
}

func (s *KVContractSuite) TestSetGetOverwrite() {
	ctx := context.Background()
	s.Require().NoError(s.kv.Set(ctx, s.ns+"a", `{"v":1}`))
	s.Require().NoError(s.kv.Set(ctx, s.ns+"b", `[]`))

	v, err := s.kv.Get(ctx, s.ns+"a")
	s.NoError(err)
	s.Equal(`{"v":1}`, v)

	s.Require().NoError(s.kv.Set(ctx, s.ns+"a", `{"v":2}`))
	v, err = s.kv.Get(ctx, s.ns+"a")
	s.NoError(err)
	s.Equal(`{"v":2}`, v)

	v, err = s.kv.Get(ctx, s.ns+"b")
	s.NoError(err)
	s.Equal(`[]`, v)
}

func (s *KVContractSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.kv.Set(ctx, s.ns+"a", "x"))
	s.Require().NoError(s.kv.Delete(ctx, s.ns+"a"))
	_, err := s.kv.Get(ctx, s.ns+"a")
	s.ErrorIs(err, service.ErrKeyNotFound)

	s.NoError(s.kv.Delete(ctx, s.ns+"never-set"))
}

func TestMemoryKV(t *testing.T) {
	suite.Run(t, &KVContractSuite{open: func() service.KeyValueStore { return NewMemoryKV() }})
}

func TestBadgerKV_InMemory(t *testing.T) {
	suite.Run(t, &KVContractSuite{open: func() service.KeyValueStore {
		kv, err := NewBadgerKV("", logger.NewNopLogger())
		if err != nil {
			t.Fatalf("open badger: %v", err)
		}
		return kv
	}})
}

func TestBadgerKV_OnDisk(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	kv, err := NewBadgerKV(dir, logger.NewNopLogger())
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	if err := kv.Set(ctx, "folio:profile", `{"name":"x"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewBadgerKV(dir, logger.NewNopLogger())
	if err != nil {
		t.Fatalf("reopen badger: %v", err)
	}
	defer reopened.Close()
	v, err := reopened.Get(ctx, "folio:profile")
	if err != nil || v != `{"name":"x"}` {
		t.Fatalf("got %q, %v", v, err)
	}
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("FOLIO_TEST_REDIS_ADDR")
	if testing.Short() || addr == "" {
		t.Skip("Skipping redis test: FOLIO_TEST_REDIS_ADDR not set.")
	}
	var cfg config.Config
	cfg.Redis.Addr = addr
	suite.Run(t, &KVContractSuite{open: func() service.KeyValueStore {
		rdb, err := NewRedisClient(cfg, logger.NewNopLogger())
		if err != nil {
			t.Fatalf("redis: %v", err)
		}
		return NewRedisKV(rdb)
	}})
}

func TestPostgresKV(t *testing.T) {
	dsn := os.Getenv("FOLIO_TEST_DB_DSN")
	if testing.Short() || dsn == "" {
		t.Skip("Skipping integration test: FOLIO_TEST_DB_DSN not set.")
	}
	var cfg config.Config
	cfg.DB.DSN = dsn
	suite.Run(t, &KVContractSuite{open: func() service.KeyValueStore {
		pool, err := NewPostgresPool(cfg, logger.NewNopLogger())
		if err != nil {
			t.Fatalf("postgres: %v", err)
		}
		kv, err := NewPostgresKV(context.Background(), pool, logger.NewNopLogger())
		if err != nil {
			t.Fatalf("postgres kv: %v", err)
		}
		return kv
	}})
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	var cfg config.Config
	cfg.Storage.Driver = "floppy"
	_, err := OpenStore(context.Background(), cfg, logger.NewNopLogger())
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
