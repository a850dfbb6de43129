package content

import (
	"context"
	"errors"
	"sync"

	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/internal/domain/profile"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"github.com/khoahotran/scholar-folio/pkg/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("content_usecase")

// Persister receives a copy of the state after every successful mutation.
type Persister interface {
	Persist(ctx context.Context, snap content.Snapshot) error
}

// Store is the single source of truth for portfolio content. Reads return
// copies; mutations are serialized and handed to the persister in order.
type Store struct {
	mu        sync.RWMutex
	state     content.Snapshot
	highlight string
	persister Persister
	logger    logger.Logger
}

func NewStore(initial content.Snapshot, p Persister, log logger.Logger) *Store {
	initial = initial.Clone()
	initial.Profile = initial.Profile.Normalize()
	return &Store{
		state:     initial,
		persister: p,
		logger:    log,
	}
}

func (s *Store) Profile() profile.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Profile.Clone()
}

// SetProfile replaces every top-level field present in patch. Nested objects
// are replaced whole, never merged.
func (s *Store) SetProfile(ctx context.Context, patch profile.Patch) (profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "SetProfile")
	defer span.End()

	if patch.IsEmpty() {
		return s.Profile(), nil
	}
	var out profile.Profile
	err := s.commit(ctx, func(next *content.Snapshot) error {
		next.Profile = next.Profile.Apply(patch).Normalize()
		out = next.Profile.Clone()
		return nil
	})
	return out, err
}

// ReplaceProfile swaps in p wholesale. Fields p leaves empty stay empty.
func (s *Store) ReplaceProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	ctx, span := tracer.Start(ctx, "ReplaceProfile")
	defer span.End()

	var out profile.Profile
	err := s.commit(ctx, func(next *content.Snapshot) error {
		next.Profile = p.Clone().Normalize()
		out = next.Profile.Clone()
		return nil
	})
	return out, err
}

// Snapshot returns a deep copy of the whole content graph.
func (s *Store) Snapshot() content.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// ReplaceAll swaps in snap wholesale with a single persist. Every collection
// must carry unique non-empty ids.
func (s *Store) ReplaceAll(ctx context.Context, snap content.Snapshot) error {
	ctx, span := tracer.Start(ctx, "ReplaceAll")
	defer span.End()

	incoming := snap.Clone()
	for _, c := range content.All() {
		if err := c.CheckIDs(&incoming); err != nil {
			span.RecordError(err)
			return apperror.NewValidation(err.Error(), err)
		}
	}
	return s.commit(ctx, func(next *content.Snapshot) error {
		incoming.Profile = incoming.Profile.Normalize()
		incoming.News = content.NormalizeFeatured(next.News, incoming.News)
		*next = incoming
		return nil
	})
}

func (s *Store) ActiveHighlight() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highlight
}

// SetActiveHighlight sets the cross-section filter token. It is never persisted.
func (s *Store) SetActiveHighlight(token string) {
	s.mu.Lock()
	s.highlight = token
	s.mu.Unlock()
}

// commit applies fn to a working copy and installs it when fn succeeds. The
// persister sees snapshots in commit order; its failure is logged only.
func (s *Store) commit(ctx context.Context, fn func(next *content.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	s.state = next

	if s.persister == nil {
		return nil
	}
	if err := s.persister.Persist(ctx, s.state.Clone()); err != nil {
		s.logger.Warn("Content kept in memory only", zap.Error(err))
	}
	return nil
}

func lookup(name content.Name) (content.Collection, error) {
	c, ok := content.Lookup(name)
	if !ok {
		return nil, apperror.NewNotFound("collection", string(name))
	}
	return c, nil
}

// domainErr maps errors from the domain layer onto application errors.
func domainErr(err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperror.NewValidation(err.Error(), err)
}

func spanAttrs(name content.Name, id string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.String("collection", string(name))}
	if id != "" {
		attrs = append(attrs, attribute.String("item_id", id))
	}
	return attrs
}
