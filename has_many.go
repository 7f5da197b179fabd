package activerecord

import "context"

// HasMany resolves a one-to-many relationship where the related table
// holds the foreign key: related.foreignKey = owner.primaryKey.
type HasMany struct {
	relation
}

// NewHasMany builds a HasMany resolver for the given owner. The foreign
// key defaults to snake_case(owner type) + "_id".
func NewHasMany(owner Entity, related string, foreignKey ...string) *HasMany {
	h := &HasMany{relation: newRelation(owner, related)}
	h.foreignKey = ForeignKey(h.ownerName())
	if len(foreignKey) > 0 && foreignKey[0] != "" {
		h.foreignKey = foreignKey[0]
	}
	if h.query.Err() == nil {
		h.query.Where(h.foreignKey, "=", owner.model().Key())
	}
	return h
}

// All executes the relationship query.
func (h *HasMany) All(ctx context.Context) ([]Entity, error) {
	return h.query.All(ctx)
}

func (h *HasMany) eagerConstrain(owners []Entity) {
	h.query.Selector().ResetWhere()
	h.query.WhereIn(h.foreignKey, keyValues(owners, h.owner.model().KeyName())...)
}

func (h *HasMany) match(owners, results []Entity, name string) {
	groups := make(map[any][]Entity, len(owners))
	for _, res := range results {
		k := normKey(res.model().Attributes().Get(h.foreignKey))
		groups[k] = append(groups[k], res)
	}
	keyName := h.owner.model().KeyName()
	for _, o := range owners {
		m := o.model()
		group := groups[normKey(m.Attributes().Get(keyName))]
		if group == nil {
			// Owners with zero matches get an empty, non-nil batch.
			group = []Entity{}
		}
		m.SetRelationValue(name, group)
	}
}
