package sql

// NEQ returns a "column <> value" predicate.
func NEQ(column string, v any) *Predicate { return Op(column, "<>", v) }

// GT returns a "column > value" predicate.
func GT(column string, v any) *Predicate { return Op(column, ">", v) }

// GTE returns a "column >= value" predicate.
func GTE(column string, v any) *Predicate { return Op(column, ">=", v) }

// LT returns a "column < value" predicate.
func LT(column string, v any) *Predicate { return Op(column, "<", v) }

// LTE returns a "column <= value" predicate.
func LTE(column string, v any) *Predicate { return Op(column, "<=", v) }

// NotIn returns a "column NOT IN (...)" predicate.
// An empty list of values matches all rows.
func NotIn(column string, vs ...any) *Predicate {
	p := P()
	p.fns = append(p.fns, func(b *Builder) {
		if len(vs) == 0 {
			b.WriteString("TRUE")
			return
		}
		b.WriteString(b.Quote(column) + " NOT IN (")
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

// Like returns a "column LIKE pattern" predicate.
func Like(column, pattern string) *Predicate {
	p := P()
	p.fns = append(p.fns, func(b *Builder) {
		b.WriteString(b.Quote(column) + " LIKE ")
		b.Arg(pattern)
	})
	return p
}

// Contains returns a predicate matching columns that contain the given
// substring.
func Contains(column, substr string) *Predicate {
	return Like(column, "%"+substr+"%")
}

// HasPrefix returns a predicate matching columns that start with the
// given prefix.
func HasPrefix(column, prefix string) *Predicate {
	return Like(column, prefix+"%")
}

// HasSuffix returns a predicate matching columns that end with the
// given suffix.
func HasSuffix(column, suffix string) *Predicate {
	return Like(column, "%"+suffix)
}

// NotNull returns a "column IS NOT NULL" predicate.
func NotNull(column string) *Predicate {
	p := P()
	p.fns = append(p.fns, func(b *Builder) {
		b.WriteString(b.Quote(column) + " IS NOT NULL")
	})
	return p
}

// Or combines the given predicates with OR, parenthesized as a unit.
func Or(preds ...*Predicate) *Predicate {
	p := P()
	p.fns = append(p.fns, func(b *Builder) {
		b.WriteString("(")
		for i, pred := range preds {
			if i > 0 {
				b.WriteString(" OR ")
			}
			pred.build(b)
		}
		b.WriteString(")")
	})
	return p
}

// Not negates the given predicate, parenthesized as a unit.
func Not(pred *Predicate) *Predicate {
	p := P()
	p.fns = append(p.fns, func(b *Builder) {
		b.WriteString("NOT (")
		pred.build(b)
		b.WriteString(")")
	})
	return p
}
