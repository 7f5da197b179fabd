package sql

import (
	"strconv"
	"strings"

	"github.com/syssam/activerecord/dialect"
)

// Querier wraps the Query method, implemented by all statement builders.
type Querier interface {
	// Query returns the query representation of the element
	// and its arguments (if any).
	Query() (string, []any)
}

// Builder is the base query builder for the sql dsl.
type Builder struct {
	sb      strings.Builder
	dialect string
	args    []any
}

// As returns an aliased identifier, understood by Quote.
func As(ident, as string) string {
	return ident + " AS " + as
}

// Quote quotes the given identifier with the dialect quote character.
// Qualified identifiers (e.g. "users.id") and aliases produced by As
// are quoted per part.
func (b *Builder) Quote(ident string) string {
	if before, after, ok := strings.Cut(ident, " AS "); ok {
		return b.Quote(before) + " AS " + b.Quote(after)
	}
	quote := "`"
	if b.dialect == dialect.Postgres {
		quote = `"`
	}
	parts := strings.Split(ident, ".")
	for i, p := range parts {
		if p != "*" {
			parts[i] = quote + p + quote
		}
	}
	return strings.Join(parts, ".")
}

// Arg appends an input argument to the builder and writes its placeholder.
func (b *Builder) Arg(v any) {
	b.args = append(b.args, v)
	if b.dialect == dialect.Postgres {
		b.sb.WriteString("$" + strconv.Itoa(len(b.args)))
		return
	}
	b.sb.WriteString("?")
}

// WriteString appends the string s to the query buffer.
func (b *Builder) WriteString(s string) { b.sb.WriteString(s) }

// Dialect returns the dialect of the builder.
func (b *Builder) Dialect() string { return b.dialect }

// String returns the accumulated query string.
func (b *Builder) String() string { return b.sb.String() }

// DialectBuilder prefixes all root builders with the given dialect.
type DialectBuilder struct {
	dialect string
}

// Dialect creates a new DialectBuilder for the given dialect name.
func Dialect(name string) *DialectBuilder {
	return &DialectBuilder{dialect: name}
}

// Select creates a Selector for the configured dialect.
func (d *DialectBuilder) Select(columns ...string) *Selector {
	s := &Selector{columns: columns}
	s.dialect = d.dialect
	return s
}

// Insert creates an InsertBuilder for the configured dialect.
func (d *DialectBuilder) Insert(table string) *InsertBuilder {
	i := &InsertBuilder{table: table}
	i.dialect = d.dialect
	return i
}

// Update creates an UpdateBuilder for the configured dialect.
func (d *DialectBuilder) Update(table string) *UpdateBuilder {
	u := &UpdateBuilder{table: table}
	u.dialect = d.dialect
	return u
}

// Delete creates a DeleteBuilder for the configured dialect.
func (d *DialectBuilder) Delete(table string) *DeleteBuilder {
	dl := &DeleteBuilder{table: table}
	dl.dialect = d.dialect
	return dl
}

// Predicate is a where predicate. Predicates combined on the
// same statement are joined with AND.
type Predicate struct {
	fns []func(*Builder)
}

// P creates a new predicate.
func P() *Predicate { return &Predicate{} }

// Op appends a "column <op> value" condition, for an arbitrary
// comparison operator coming from the caller.
func Op(column, op string, v any) *Predicate {
	p := P()
	p.fns = append(p.fns, func(b *Builder) {
		b.WriteString(b.Quote(column) + " " + op + " ")
		b.Arg(v)
	})
	return p
}

// EQ returns a "column = value" predicate.
func EQ(column string, v any) *Predicate { return Op(column, "=", v) }

// In returns a "column IN (...)" predicate.
// An empty list of values matches no rows.
func In(column string, vs ...any) *Predicate {
	p := P()
	p.fns = append(p.fns, func(b *Builder) {
		if len(vs) == 0 {
			b.WriteString("FALSE")
			return
		}
		b.WriteString(b.Quote(column) + " IN (")
		for i, v := range vs {
			if i > 0 {
				b.WriteString(", ")
			}
			b.Arg(v)
		}
		b.WriteString(")")
	})
	return p
}

// IsNull returns a "column IS NULL" predicate.
func IsNull(column string) *Predicate {
	p := P()
	p.fns = append(p.fns, func(b *Builder) {
		b.WriteString(b.Quote(column) + " IS NULL")
	})
	return p
}

// And combines the given predicates into a single one.
func And(preds ...*Predicate) *Predicate {
	p := P()
	p.fns = append(p.fns, func(b *Builder) {
		for i, pred := range preds {
			if i > 0 {
				b.WriteString(" AND ")
			}
			pred.build(b)
		}
	})
	return p
}

func (p *Predicate) build(b *Builder) {
	for i, f := range p.fns {
		if i > 0 {
			b.WriteString(" AND ")
		}
		f(b)
	}
}

// merge appends the conditions of other to p.
func (p *Predicate) merge(other *Predicate) *Predicate {
	p.fns = append(p.fns, other.fns...)
	return p
}

type join struct {
	table string
	on    [2]string
}

// Selector builds a SELECT statement.
type Selector struct {
	Builder
	columns []string
	from    string
	joins   []join
	where   *Predicate
	order   []string
	limit   *int
}

// From sets the source table of the statement.
func (s *Selector) From(table string) *Selector {
	s.from = table
	return s
}

// Table returns the source table of the statement.
func (s *Selector) Table() string { return s.from }

// Select overrides the selected columns of the statement.
func (s *Selector) Select(columns ...string) *Selector {
	s.columns = columns
	return s
}

// SelectedColumns returns the selected columns of the statement.
func (s *Selector) SelectedColumns() []string { return s.columns }

// Where appends the given predicate, joined with AND to any existing one.
func (s *Selector) Where(p *Predicate) *Selector {
	if s.where == nil {
		s.where = P()
	}
	s.where.merge(p)
	return s
}

// ResetWhere drops all predicates accumulated on the statement.
func (s *Selector) ResetWhere() *Selector {
	s.where = nil
	return s
}

// P returns the predicate accumulated on the statement, or nil.
func (s *Selector) P() *Predicate { return s.where }

// Join adds an inner join on table with an "ON left = right" clause.
func (s *Selector) Join(table, left, right string) *Selector {
	s.joins = append(s.joins, join{table: table, on: [2]string{left, right}})
	return s
}

// OrderBy appends order-by terms to the statement.
func (s *Selector) OrderBy(columns ...string) *Selector {
	s.order = append(s.order, columns...)
	return s
}

// Limit sets the row limit of the statement.
func (s *Selector) Limit(n int) *Selector {
	s.limit = &n
	return s
}

// Query returns query representation of a `SELECT` statement.
func (s *Selector) Query() (string, []any) {
	s.sb.Reset()
	s.args = nil
	s.WriteString("SELECT ")
	if len(s.columns) == 0 {
		s.WriteString("*")
	} else {
		for i, c := range s.columns {
			if i > 0 {
				s.WriteString(", ")
			}
			s.WriteString(s.Quote(c))
		}
	}
	s.WriteString(" FROM " + s.Quote(s.from))
	for _, j := range s.joins {
		s.WriteString(" JOIN " + s.Quote(j.table))
		s.WriteString(" ON " + s.Quote(j.on[0]) + " = " + s.Quote(j.on[1]))
	}
	if s.where != nil {
		s.WriteString(" WHERE ")
		s.where.build(&s.Builder)
	}
	if len(s.order) > 0 {
		s.WriteString(" ORDER BY ")
		for i, c := range s.order {
			if i > 0 {
				s.WriteString(", ")
			}
			s.WriteString(s.Quote(c))
		}
	}
	if s.limit != nil {
		s.WriteString(" LIMIT " + strconv.Itoa(*s.limit))
	}
	return s.String(), s.args
}

// InsertBuilder builds an INSERT statement.
type InsertBuilder struct {
	Builder
	table     string
	columns   []string
	values    []any
	returning string
}

// Set sets a column and its value on the statement.
func (i *InsertBuilder) Set(column string, v any) *InsertBuilder {
	i.columns = append(i.columns, column)
	i.values = append(i.values, v)
	return i
}

// Returning adds a RETURNING clause to the statement.
// Only meaningful for dialects that support it.
func (i *InsertBuilder) Returning(column string) *InsertBuilder {
	i.returning = column
	return i
}

// Query returns query representation of an `INSERT INTO` statement.
func (i *InsertBuilder) Query() (string, []any) {
	i.sb.Reset()
	i.args = nil
	i.WriteString("INSERT INTO " + i.Quote(i.table) + " (")
	for j, c := range i.columns {
		if j > 0 {
			i.WriteString(", ")
		}
		i.WriteString(i.Quote(c))
	}
	i.WriteString(") VALUES (")
	for j, v := range i.values {
		if j > 0 {
			i.WriteString(", ")
		}
		i.Arg(v)
	}
	i.WriteString(")")
	if i.returning != "" && i.dialect == dialect.Postgres {
		i.WriteString(" RETURNING " + i.Quote(i.returning))
	}
	return i.String(), i.args
}

// UpdateBuilder builds an UPDATE statement.
type UpdateBuilder struct {
	Builder
	table   string
	columns []string
	values  []any
	where   *Predicate
}

// Set sets a column and its value on the statement.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.columns = append(u.columns, column)
	u.values = append(u.values, v)
	return u
}

// Where appends the given predicate, joined with AND to any existing one.
func (u *UpdateBuilder) Where(p *Predicate) *UpdateBuilder {
	if u.where == nil {
		u.where = P()
	}
	u.where.merge(p)
	return u
}

// Query returns query representation of an `UPDATE` statement.
func (u *UpdateBuilder) Query() (string, []any) {
	u.sb.Reset()
	u.args = nil
	u.WriteString("UPDATE " + u.Quote(u.table) + " SET ")
	for j, c := range u.columns {
		if j > 0 {
			u.WriteString(", ")
		}
		u.WriteString(u.Quote(c) + " = ")
		u.Arg(u.values[j])
	}
	if u.where != nil {
		u.WriteString(" WHERE ")
		u.where.build(&u.Builder)
	}
	return u.String(), u.args
}

// DeleteBuilder builds a DELETE statement.
type DeleteBuilder struct {
	Builder
	table string
	where *Predicate
}

// Where appends the given predicate, joined with AND to any existing one.
func (d *DeleteBuilder) Where(p *Predicate) *DeleteBuilder {
	if d.where == nil {
		d.where = P()
	}
	d.where.merge(p)
	return d
}

// Query returns query representation of a `DELETE` statement.
func (d *DeleteBuilder) Query() (string, []any) {
	d.sb.Reset()
	d.args = nil
	d.WriteString("DELETE FROM " + d.Quote(d.table))
	if d.where != nil {
		d.WriteString(" WHERE ")
		d.where.build(&d.Builder)
	}
	return d.String(), d.args
}
