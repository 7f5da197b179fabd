package activerecord

import "context"

// HasOne resolves a one-to-one relationship where the related table
// holds the foreign key: related.foreignKey = owner.primaryKey.
type HasOne struct {
	relation
}

// NewHasOne builds a HasOne resolver for the given owner. The foreign
// key defaults to snake_case(owner type) + "_id".
func NewHasOne(owner Entity, related string, foreignKey ...string) *HasOne {
	h := &HasOne{relation: newRelation(owner, related)}
	h.foreignKey = ForeignKey(h.ownerName())
	if len(foreignKey) > 0 && foreignKey[0] != "" {
		h.foreignKey = foreignKey[0]
	}
	if h.query.Err() == nil {
		h.query.Where(h.foreignKey, "=", owner.model().Key())
	}
	return h
}

// First executes the relationship query, expecting zero or one result.
func (h *HasOne) First(ctx context.Context) (Entity, error) {
	return h.query.First(ctx)
}

func (h *HasOne) eagerConstrain(owners []Entity) {
	h.query.Selector().ResetWhere()
	h.query.WhereIn(h.foreignKey, keyValues(owners, h.owner.model().KeyName())...)
}

func (h *HasOne) match(owners, results []Entity, name string) {
	groups := make(map[any]Entity, len(results))
	for _, res := range results {
		k := normKey(res.model().Attributes().Get(h.foreignKey))
		if _, ok := groups[k]; !ok {
			groups[k] = res
		}
	}
	keyName := h.owner.model().KeyName()
	for _, o := range owners {
		m := o.model()
		if res, ok := groups[normKey(m.Attributes().Get(keyName))]; ok {
			m.SetRelationValue(name, res)
		} else {
			m.SetRelationValue(name, nil)
		}
	}
}
