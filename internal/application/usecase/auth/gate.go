package auth

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/khoahotran/scholar-folio/internal/domain/session"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/auth"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("auth_usecase")

// RecordStore persists the owner auth record.
type RecordStore interface {
	LoadAuth(ctx context.Context) (session.AuthRecord, bool)
	SaveAuth(ctx context.Context, rec session.AuthRecord) error
}

type GateConfig struct {
	DefaultPassword   string
	MinPasswordLength int
}

// Gate decides whether content may be mutated. The authenticated flag
// survives restarts; the editing flag does not.
type Gate struct {
	mu      sync.Mutex
	record  session.AuthRecord
	editing bool

	store  RecordStore
	hasher *auth.PasswordHasher
	minLen int
	logger logger.Logger
}

// NewGate loads the stored auth record, seeding the default credential on
// first run.
func NewGate(ctx context.Context, store RecordStore, hasher *auth.PasswordHasher, cfg GateConfig, log logger.Logger) (*Gate, error) {
	g := &Gate{
		store:  store,
		hasher: hasher,
		minLen: cfg.MinPasswordLength,
		logger: log,
	}
	rec, ok := store.LoadAuth(ctx)
	if ok && rec.Credential != "" {
		g.record = rec
		return g, nil
	}

	hash, err := hasher.Hash(cfg.DefaultPassword)
	if err != nil {
		return nil, apperror.NewInternal("failed to seed owner credential", err)
	}
	g.record = session.AuthRecord{Credential: hash}
	if err := store.SaveAuth(ctx, g.record); err != nil {
		log.Warn("Default credential kept in memory only", zap.Error(err))
	}
	log.Info("Seeded default owner credential")
	return g, nil
}

// Login authenticates the owner. A wrong candidate leaves the state unchanged.
func (g *Gate) Login(ctx context.Context, candidate string) error {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()

	ok, needsRehash := g.hasher.Check(candidate, g.record.Credential)
	if !ok {
		err := apperror.NewUnauthorized("incorrect password", nil)
		span.RecordError(err)
		g.logger.Warn("Rejected login attempt")
		return err
	}

	next := g.record
	next.IsAuthenticated = true
	next.SessionID = uuid.New()
	if needsRehash {
		hash, err := g.hasher.Hash(candidate)
		if err != nil {
			g.logger.Error("Failed to upgrade stored credential", err)
		} else {
			next.Credential = hash
			span.SetAttributes(attribute.Bool("credential_upgraded", true))
		}
	}
	g.record = next
	g.save(ctx)
	return nil
}

// Logout clears authentication and leaves edit mode. Tokens bound to the
// ended session stay invalid after the next login.
func (g *Gate) Logout(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "Logout")
	defer span.End()

	g.mu.Lock()
	defer g.mu.Unlock()
	g.record.IsAuthenticated = false
	g.record.SessionID = uuid.Nil
	g.editing = false
	g.save(ctx)
}

// ChangePassword replaces the credential. It does not check the current
// authentication state; callers gate it.
func (g *Gate) ChangePassword(ctx context.Context, next string) error {
	ctx, span := tracer.Start(ctx, "ChangePassword")
	defer span.End()

	var err error
	switch {
	case utf8.RuneCountInString(next) < g.minLen:
		err = apperror.NewAppError(apperror.ErrInvalidInput, "Password is too short",
			fmt.Sprintf("password must have at least %d characters", g.minLen), nil)
	case len(next) > auth.MaxPasswordBytes:
		err = apperror.NewAppError(apperror.ErrInvalidInput, "Password is too long",
			fmt.Sprintf("password must be at most %d bytes", auth.MaxPasswordBytes), nil)
	}
	if err != nil {
		span.RecordError(err)
		return err
	}
	hash, err := g.hasher.Hash(next)
	if err != nil {
		span.RecordError(err)
		return apperror.NewInternal("failed to hash password", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.record.Credential = hash
	g.save(ctx)
	return nil
}

// ToggleEditing flips edit mode and returns the new value. It does nothing
// while logged out.
func (g *Gate) ToggleEditing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.record.IsAuthenticated {
		return false
	}
	g.editing = !g.editing
	return g.editing
}

func (g *Gate) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.record.IsAuthenticated
}

// SessionID returns the id of the current login, or uuid.Nil when logged out.
func (g *Gate) SessionID() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.record.SessionID
}

// IsSession reports whether id names the current login.
func (g *Gate) IsSession(id uuid.UUID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.record.IsAuthenticated && id != uuid.Nil && id == g.record.SessionID
}

func (g *Gate) IsEditing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.record.IsAuthenticated && g.editing
}

func (g *Gate) State() session.State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return session.StateOf(g.record.IsAuthenticated, g.editing)
}

func (g *Gate) save(ctx context.Context) {
	if err := g.store.SaveAuth(ctx, g.record); err != nil {
		g.logger.Warn("Auth record kept in memory only", zap.Error(err))
	}
}
