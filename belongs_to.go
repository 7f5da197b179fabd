package activerecord

import "context"

// BelongsTo resolves the inverse one-to-one/many relationship: the
// owning entity holds the foreign key pointing at the related table's
// primary key.
//
// The relation name is an explicit argument: the conventional foreign
// key is derived from it (name + "_id") when none is supplied. The
// source convention of inferring the name from the calling method via
// stack introspection does not port; the binding is declared instead.
type BelongsTo struct {
	relation
}

// NewBelongsTo builds a BelongsTo resolver for the given owner. The
// foreign key defaults to snake_case(name) + "_id".
func NewBelongsTo(owner Entity, related, name string, foreignKey ...string) *BelongsTo {
	b := &BelongsTo{relation: newRelation(owner, related)}
	b.foreignKey = Snake(name) + "_id"
	if len(foreignKey) > 0 && foreignKey[0] != "" {
		b.foreignKey = foreignKey[0]
	}
	if b.query.Err() == nil {
		b.query.Where(b.relatedKey(), "=", owner.model().Attributes().Get(b.foreignKey))
	}
	return b
}

// relatedKey returns the primary-key column of the related type.
func (b *BelongsTo) relatedKey() string {
	return b.query.def.keyName
}

// First executes the relationship query, expecting zero or one result.
func (b *BelongsTo) First(ctx context.Context) (Entity, error) {
	return b.query.First(ctx)
}

func (b *BelongsTo) eagerConstrain(owners []Entity) {
	b.query.Selector().ResetWhere()
	b.query.WhereIn(b.relatedKey(), keyValues(owners, b.foreignKey)...)
}

func (b *BelongsTo) match(owners, results []Entity, name string) {
	relatedKey := b.relatedKey()
	groups := make(map[any]Entity, len(results))
	for _, res := range results {
		k := normKey(res.model().Attributes().Get(relatedKey))
		if _, ok := groups[k]; !ok {
			groups[k] = res
		}
	}
	for _, o := range owners {
		m := o.model()
		fk := m.Attributes().Get(b.foreignKey)
		if fk == nil {
			m.SetRelationValue(name, nil)
			continue
		}
		if res, ok := groups[normKey(fk)]; ok {
			m.SetRelationValue(name, res)
		} else {
			m.SetRelationValue(name, nil)
		}
	}
}
