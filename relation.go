package activerecord

// Relationer is the contract shared by the four relationship resolvers.
// A resolver is both a deferred query (through Query) and an
// eager-loading constraint engine for a batch of owner entities.
type Relationer interface {
	// Query exposes the constrained query for the related type.
	Query() *Query

	// eagerConstrain replaces the single-owner base constraint with a
	// batch constraint over the owners' keys.
	eagerConstrain(owners []Entity)

	// match partitions the fetched results back onto the owners and
	// stores them under the given relation name.
	match(owners, results []Entity, name string)
}

// relation is the shared state of all relationship kinds: the related
// query, the owning entity, and the foreign-key column driving the
// base constraint.
type relation struct {
	query      *Query
	owner      Entity
	related    string
	foreignKey string
}

// newRelation resolves the related definition and builds its query.
// Resolution failures are deferred onto the query.
func newRelation(owner Entity, related string) relation {
	r := relation{owner: owner, related: related}
	m := owner.model()
	if m.registry == nil || m.def == nil {
		r.query = &Query{err: ErrUnboundEntity}
		return r
	}
	def, err := m.registry.Lookup(related)
	if err != nil {
		r.query = &Query{registry: m.registry, err: err}
		return r
	}
	r.query = newQuery(m.registry, def, "")
	return r
}

// Query returns the constrained query for the related type.
func (r *relation) Query() *Query { return r.query }

// ForeignKey returns the foreign-key column of the relationship.
func (r *relation) ForeignKey() string { return r.foreignKey }

// ownerName returns the owning entity's type name.
func (r *relation) ownerName() string {
	if m := r.owner.model(); m.def != nil {
		return m.def.name
	}
	return BaseName(r.owner)
}

// normKey normalizes scalar key values so values scanned from storage
// compare equal to values set in memory (e.g. int vs int64).
func normKey(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return int64(x)
	case float32:
		return float64(x)
	case []byte:
		return string(x)
	default:
		return v
	}
}

// keyValues returns the distinct, non-nil values of the given attribute
// across the owner batch, in first-seen order.
func keyValues(owners []Entity, attr string) []any {
	seen := make(map[any]struct{}, len(owners))
	var out []any
	for _, o := range owners {
		v := o.model().Attributes().Get(attr)
		if v == nil {
			continue
		}
		k := normKey(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}
