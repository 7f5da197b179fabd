package activerecord

import (
	"context"
	"time"
)

// Save persists the entity: an update constrained by primary key when
// the instance already exists, an insert otherwise. On insert the
// generated identifier is assigned to the key attribute and the
// instance is marked persisted, so a later Save updates instead of
// inserting again. created_at and updated_at share a single clock read
// on creation; on update only updated_at changes.
func Save(ctx context.Context, e Entity) error {
	m := e.model()
	if m.registry == nil || m.def == nil {
		return ErrUnboundEntity
	}
	def := m.def
	m.ensureAttrs()
	if def.timestamps {
		now := time.Now()
		m.attrs.Set("updated_at", now)
		if !m.exists {
			m.attrs.Set("created_at", now)
		}
	}
	q := newQuery(m.registry, def, m.conn)
	if q.Err() != nil {
		return q.Err()
	}
	if m.exists {
		return q.Where(def.keyName, "=", m.Key()).Update(ctx, m.attrs)
	}
	if def.keyDefault != nil && m.attrs.Get(def.keyName) == nil {
		m.attrs.Set(def.keyName, def.keyDefault())
	}
	if m.attrs.Get(def.keyName) != nil {
		// Client-side key: nothing to read back from the driver.
		if err := q.Insert(ctx, m.attrs); err != nil {
			return err
		}
	} else {
		id, err := q.InsertGetID(ctx, m.attrs)
		if err != nil {
			return err
		}
		m.attrs.Set(def.keyName, id)
	}
	m.exists = true
	return nil
}

// Delete removes the entity's row, constrained by primary key, and
// marks the instance as no longer persisted.
func Delete(ctx context.Context, e Entity) error {
	m := e.model()
	if m.registry == nil || m.def == nil {
		return ErrUnboundEntity
	}
	q := newQuery(m.registry, m.def, m.conn)
	if q.Err() != nil {
		return q.Err()
	}
	if err := q.Where(m.def.keyName, "=", m.Key()).Delete(ctx); err != nil {
		return err
	}
	m.exists = false
	return nil
}

// Save persists the entity through the registry it is bound to.
func (r *Registry) Save(ctx context.Context, e Entity) error {
	if e.model().registry == nil {
		if err := r.Bind(e); err != nil {
			return err
		}
	}
	return Save(ctx, e)
}

// Create constructs an entity of the given type, fills it with the
// given attributes (through their mutators), saves it, and returns it.
func (r *Registry) Create(ctx context.Context, name string, attrs map[string]any) (Entity, error) {
	e, err := r.New(name)
	if err != nil {
		return nil, err
	}
	e.model().Fill(attrs)
	if err := Save(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Find fetches one entity of the given type by primary key.
func (r *Registry) Find(ctx context.Context, name string, id any, columns ...string) (Entity, error) {
	return r.Query(name).Find(ctx, id, columns...)
}
