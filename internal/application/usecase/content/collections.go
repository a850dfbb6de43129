package content

import (
	"context"

	"github.com/khoahotran/scholar-folio/internal/domain/content"
	"github.com/khoahotran/scholar-folio/pkg/apperror"
	"go.opentelemetry.io/otel/trace"
)

// Get returns a copy of the collection d.
func Get[T content.Entity[T]](s *Store, d content.Descriptor[T]) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return d.Get(&s.state)
}

// Set replaces the whole collection, keeping the given order. Items without
// an id get one; repeated ids are rejected.
func Set[T content.Entity[T]](ctx context.Context, s *Store, d content.Descriptor[T], items []T) error {
	ctx, span := tracer.Start(ctx, "Set", trace.WithAttributes(spanAttrs(d.Name(), "")...))
	defer span.End()

	list := content.FillIDs(items)
	if err := content.CheckIDs(list); err != nil {
		span.RecordError(err)
		return domainErr(err)
	}
	return s.commit(ctx, func(next *content.Snapshot) error {
		d.Put(next, list)
		return nil
	})
}

// Add appends item and returns it with its assigned id.
func Add[T content.Entity[T]](ctx context.Context, s *Store, d content.Descriptor[T], item T) (T, error) {
	ctx, span := tracer.Start(ctx, "Add", trace.WithAttributes(spanAttrs(d.Name(), "")...))
	defer span.End()

	var stored T
	err := s.commit(ctx, func(next *content.Snapshot) error {
		var err error
		stored, err = d.Add(next, item)
		if err != nil {
			return domainErr(err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
	}
	return stored, err
}

// Update replaces the item with id.
func Update[T content.Entity[T]](ctx context.Context, s *Store, d content.Descriptor[T], id string, item T) error {
	ctx, span := tracer.Start(ctx, "Update", trace.WithAttributes(spanAttrs(d.Name(), id)...))
	defer span.End()

	err := s.commit(ctx, func(next *content.Snapshot) error {
		ok, err := d.Update(next, id, item)
		if err != nil {
			return domainErr(err)
		}
		if !ok {
			return apperror.NewNotFound(string(d.Name()), id)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// Delete removes the item with id.
func Delete[T content.Entity[T]](ctx context.Context, s *Store, d content.Descriptor[T], id string) error {
	return s.DeleteItem(ctx, d.Name(), id)
}

// CollectionJSON returns the named collection as a JSON array.
func (s *Store) CollectionJSON(name content.Name) ([]byte, error) {
	c, err := lookup(name)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, err := c.Marshal(&s.state)
	if err != nil {
		return nil, apperror.NewInternal("failed to encode collection", err)
	}
	return raw, nil
}

// SetCollectionJSON replaces the named collection from a JSON array, with the
// same id rules as Set.
func (s *Store) SetCollectionJSON(ctx context.Context, name content.Name, raw []byte) error {
	ctx, span := tracer.Start(ctx, "SetCollectionJSON", trace.WithAttributes(spanAttrs(name, "")...))
	defer span.End()

	c, err := lookup(name)
	if err != nil {
		return err
	}
	err = s.commit(ctx, func(next *content.Snapshot) error {
		if err := c.Load(next, raw); err != nil {
			return domainErr(err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// AddItemJSON decodes one item into the named collection and returns its id.
func (s *Store) AddItemJSON(ctx context.Context, name content.Name, raw []byte) (string, error) {
	ctx, span := tracer.Start(ctx, "AddItemJSON", trace.WithAttributes(spanAttrs(name, "")...))
	defer span.End()

	c, err := lookup(name)
	if err != nil {
		return "", err
	}
	var id string
	err = s.commit(ctx, func(next *content.Snapshot) error {
		var err error
		if id, err = c.AddJSON(next, raw); err != nil {
			return domainErr(err)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateItemJSON(ctx context.Context, name content.Name, id string, raw []byte) error {
	ctx, span := tracer.Start(ctx, "UpdateItemJSON", trace.WithAttributes(spanAttrs(name, id)...))
	defer span.End()

	c, err := lookup(name)
	if err != nil {
		return err
	}
	err = s.commit(ctx, func(next *content.Snapshot) error {
		ok, err := c.UpdateJSON(next, id, raw)
		if err != nil {
			return domainErr(err)
		}
		if !ok {
			return apperror.NewNotFound(string(name), id)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
	}
	return err
}

func (s *Store) DeleteItem(ctx context.Context, name content.Name, id string) error {
	ctx, span := tracer.Start(ctx, "DeleteItem", trace.WithAttributes(spanAttrs(name, id)...))
	defer span.End()

	c, err := lookup(name)
	if err != nil {
		return err
	}
	err = s.commit(ctx, func(next *content.Snapshot) error {
		if !c.Delete(next, id) {
			return apperror.NewNotFound(string(name), id)
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
	}
	return err
}
