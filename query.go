package activerecord

import (
	"context"
	"fmt"
	"time"

	"github.com/syssam/activerecord/dialect"
	"github.com/syssam/activerecord/dialect/sql"
)

// Query is the per-entity query adapter: a statement builder bound to
// the entity's table, connection, and hydration target. Construction
// failures are deferred onto the query and surface on execution.
type Query struct {
	registry *Registry
	def      *Definition
	connName string
	drv      dialect.Driver
	sel      *sql.Selector
	withs    []string
	cacheTTL time.Duration
	err      error
}

// newQuery builds a query for the given definition on the named
// connection; an empty name resolves the registry default.
func newQuery(r *Registry, def *Definition, connName string) *Query {
	q := &Query{registry: r, def: def, connName: connName}
	var (
		drv dialect.Driver
		err error
	)
	if connName == "" {
		drv, err = r.Default()
	} else {
		drv, err = r.Resolve(connName)
	}
	if err != nil {
		q.err = err
		return q
	}
	q.drv = drv
	q.sel = sql.Dialect(drv.Dialect()).Select().From(def.table)
	return q
}

// QueryFor starts a query for the entity's type on the entity's
// effective connection.
func QueryFor(e Entity) *Query {
	m := e.model()
	if m.registry == nil || m.def == nil {
		return &Query{err: ErrUnboundEntity}
	}
	return newQuery(m.registry, m.def, m.conn)
}

// Err returns any error deferred on the query.
func (q *Query) Err() error { return q.err }

// Where appends a "column <op> value" constraint.
func (q *Query) Where(column, op string, v any) *Query {
	if q.sel != nil {
		q.sel.Where(sql.Op(column, op, v))
	}
	return q
}

// WhereP appends a raw predicate, for conditions beyond the comparison
// and IN helpers (e.g. sql.Or, sql.Contains, sql.NotNull).
func (q *Query) WhereP(p *sql.Predicate) *Query {
	if q.sel != nil {
		q.sel.Where(p)
	}
	return q
}

// WhereIn appends a "column IN (...)" constraint.
func (q *Query) WhereIn(column string, vs ...any) *Query {
	if q.sel != nil {
		q.sel.Where(sql.In(column, vs...))
	}
	return q
}

// Select restricts the selected columns.
func (q *Query) Select(columns ...string) *Query {
	if q.sel != nil {
		q.sel.Select(columns...)
	}
	return q
}

// OrderBy appends order-by terms.
func (q *Query) OrderBy(columns ...string) *Query {
	if q.sel != nil {
		q.sel.OrderBy(columns...)
	}
	return q
}

// Limit sets the row limit.
func (q *Query) Limit(n int) *Query {
	if q.sel != nil {
		q.sel.Limit(n)
	}
	return q
}

// With marks relation names to eager-load with the result batch.
func (q *Query) With(names ...string) *Query {
	q.withs = append(q.withs, names...)
	return q
}

// CacheTTL requests result caching for this query. It has effect only
// when the registry carries a cache.
func (q *Query) CacheTTL(d time.Duration) *Query {
	q.cacheTTL = d
	return q
}

// Selector exposes the underlying statement builder.
func (q *Query) Selector() *sql.Selector { return q.sel }

// All executes the query and returns the hydrated entities, running any
// pending eager loads over the result batch.
func (q *Query) All(ctx context.Context) ([]Entity, error) {
	if q.err != nil {
		return nil, q.err
	}
	query, args := q.sel.Query()
	rows, err := q.fetchRows(ctx, query, args)
	if err != nil {
		return nil, err
	}
	entities := make([]Entity, 0, len(rows))
	for _, row := range rows {
		e := q.def.factory()
		m := e.model()
		m.bind(q.registry, q.def)
		m.conn = q.connName
		if err := m.hydrate(row); err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	if len(q.withs) > 0 {
		if err := q.eagerLoad(ctx, entities); err != nil {
			return nil, err
		}
	}
	return entities, nil
}

// First executes the query limited to one row.
func (q *Query) First(ctx context.Context) (Entity, error) {
	if q.err != nil {
		return nil, q.err
	}
	entities, err := q.Limit(1).All(ctx)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, &NotFoundError{label: q.def.name}
	}
	return entities[0], nil
}

// Find fetches one entity by primary key, optionally restricted to the
// given columns.
func (q *Query) Find(ctx context.Context, id any, columns ...string) (Entity, error) {
	if q.err != nil {
		return nil, q.err
	}
	if len(columns) > 0 {
		q.Select(columns...)
	}
	entities, err := q.Where(q.def.keyName, "=", id).Limit(1).All(ctx)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, &NotFoundError{label: q.def.name, id: id}
	}
	return entities[0], nil
}

// Update issues an UPDATE of the given attributes constrained by the
// accumulated predicates.
func (q *Query) Update(ctx context.Context, attrs map[string]any) error {
	if q.err != nil {
		return q.err
	}
	ub := sql.Dialect(q.drv.Dialect()).Update(q.def.table)
	for _, k := range Attributes(attrs).Keys() {
		v, err := q.encode(k, attrs[k])
		if err != nil {
			return err
		}
		ub.Set(k, v)
	}
	if p := q.sel.P(); p != nil {
		ub.Where(p)
	}
	query, args := ub.Query()
	if err := q.drv.Exec(ctx, query, args, nil); err != nil {
		return err
	}
	q.invalidate(ctx)
	return nil
}

// Insert issues an INSERT of the given attributes without reading back
// a generated identifier.
func (q *Query) Insert(ctx context.Context, attrs map[string]any) error {
	if q.err != nil {
		return q.err
	}
	ib, err := q.insertBuilder(attrs)
	if err != nil {
		return err
	}
	query, args := ib.Query()
	if err := q.drv.Exec(ctx, query, args, nil); err != nil {
		return err
	}
	q.invalidate(ctx)
	return nil
}

// InsertGetID issues an INSERT of the given attributes and returns the
// generated identifier: RETURNING on postgres, LastInsertId elsewhere.
func (q *Query) InsertGetID(ctx context.Context, attrs map[string]any) (any, error) {
	if q.err != nil {
		return nil, q.err
	}
	ib, err := q.insertBuilder(attrs)
	if err != nil {
		return nil, err
	}
	if q.drv.Dialect() == dialect.Postgres {
		ib.Returning(q.def.keyName)
		query, args := ib.Query()
		var rows sql.Rows
		if err := q.drv.Query(ctx, query, args, &rows); err != nil {
			return nil, err
		}
		defer rows.Close()
		if !rows.Next() {
			return nil, fmt.Errorf("activerecord: insert %s: no id returned", q.def.name)
		}
		var id any
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		q.invalidate(ctx)
		return id, rows.Err()
	}
	query, args := ib.Query()
	var res sql.Result
	if err := q.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	q.invalidate(ctx)
	return id, nil
}

// Delete issues a DELETE constrained by the accumulated predicates.
func (q *Query) Delete(ctx context.Context) error {
	if q.err != nil {
		return q.err
	}
	db := sql.Dialect(q.drv.Dialect()).Delete(q.def.table)
	if p := q.sel.P(); p != nil {
		db.Where(p)
	}
	query, args := db.Query()
	if err := q.drv.Exec(ctx, query, args, nil); err != nil {
		return err
	}
	q.invalidate(ctx)
	return nil
}

func (q *Query) insertBuilder(attrs map[string]any) (*sql.InsertBuilder, error) {
	ib := sql.Dialect(q.drv.Dialect()).Insert(q.def.table)
	for _, k := range Attributes(attrs).Keys() {
		v, err := q.encode(k, attrs[k])
		if err != nil {
			return nil, err
		}
		ib.Set(k, v)
	}
	return ib, nil
}

// encode applies the registered cast codec for the column, if any.
func (q *Query) encode(column string, v any) (any, error) {
	if codec, ok := q.def.casts[column]; ok {
		return codec.Encode(v)
	}
	return v, nil
}

// fetchRows runs the compiled statement, consulting the registry cache
// when a TTL was requested.
func (q *Query) fetchRows(ctx context.Context, query string, args []any) ([]map[string]any, error) {
	var key string
	cacheable := q.cacheTTL > 0 && q.registry != nil && q.registry.cache != nil
	if cacheable {
		key = CacheKey{Table: q.def.table, Query: query, Args: args}.String()
		if b, err := q.registry.cache.Get(ctx, key); err == nil && b != nil {
			if rows, err := decodeRows(b); err == nil {
				return rows, nil
			}
		}
	}
	var srows sql.Rows
	if err := q.drv.Query(ctx, query, args, &srows); err != nil {
		return nil, err
	}
	rows, err := sql.ScanMaps(srows)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if b, err := encodeRows(rows); err == nil {
			_ = q.registry.cache.Set(ctx, key, b, q.cacheTTL)
		}
	}
	return rows, nil
}

// invalidate drops cached results for the query's table.
func (q *Query) invalidate(ctx context.Context) {
	if q.registry != nil && q.registry.cache != nil {
		_ = q.registry.cache.DeletePrefix(ctx, q.def.table+":")
	}
}

// eagerLoad prefetches each requested relation for the owner batch: one
// query per relation, keyed by the owners' primary keys, partitioned
// back onto the owners by foreign-key equality. Relations run
// sequentially; the first failure aborts the whole load.
func (q *Query) eagerLoad(ctx context.Context, owners []Entity) error {
	for _, name := range q.withs {
		fn, ok := q.def.relation(name)
		if !ok {
			return &UnknownRelationError{Entity: q.def.name, Relation: name}
		}
		if len(owners) == 0 {
			continue
		}
		rel := fn(owners[0])
		rq := rel.Query()
		if rq.Err() != nil {
			return rq.Err()
		}
		rel.eagerConstrain(owners)
		results, err := rq.All(ctx)
		if err != nil {
			return err
		}
		rel.match(owners, results, name)
	}
	return nil
}
