package activerecord

import (
	"context"

	"github.com/syssam/activerecord/dialect/sql"
)

// BelongsToMany resolves a many-to-many relationship through a join
// table holding a foreign key for each side: rows of the related table
// are joined on joinTable.otherKey = related.primaryKey and constrained
// by joinTable.foreignKey = owner.primaryKey.
type BelongsToMany struct {
	relation
	joinTable string
	otherKey  string
}

// NewBelongsToMany builds a BelongsToMany resolver for the given owner.
// Empty arguments take the conventional defaults: the join table is the
// two snake-cased type names sorted and joined with "_", the foreign
// key is snake_case(owner type) + "_id", and the other key is
// snake_case(related type) + "_id".
func NewBelongsToMany(owner Entity, related, joinTable, foreignKey, otherKey string) *BelongsToMany {
	b := &BelongsToMany{relation: newRelation(owner, related)}
	ownerName := b.ownerName()
	b.joinTable = joinTable
	if b.joinTable == "" {
		b.joinTable = JoiningTable(ownerName, related)
	}
	b.foreignKey = foreignKey
	if b.foreignKey == "" {
		b.foreignKey = ForeignKey(ownerName)
	}
	b.otherKey = otherKey
	if b.otherKey == "" {
		b.otherKey = ForeignKey(related)
	}
	if b.query.Err() == nil {
		relatedTable := b.query.def.table
		b.query.Select(relatedTable + ".*")
		b.query.Selector().Join(
			b.joinTable,
			b.joinTable+"."+b.otherKey,
			relatedTable+"."+b.query.def.keyName,
		)
		b.query.Where(b.joinTable+"."+b.foreignKey, "=", owner.model().Key())
	}
	return b
}

// JoinTable returns the join table of the relationship.
func (b *BelongsToMany) JoinTable() string { return b.joinTable }

// OtherKey returns the related-side key column of the join table.
func (b *BelongsToMany) OtherKey() string { return b.otherKey }

// All executes the relationship query.
func (b *BelongsToMany) All(ctx context.Context) ([]Entity, error) {
	return b.query.All(ctx)
}

// pivotAlias is the column alias carrying the join-table foreign key in
// eager-load batches, so each related row can be attributed to its owner.
func (b *BelongsToMany) pivotAlias() string {
	return "pivot_" + b.foreignKey
}

func (b *BelongsToMany) eagerConstrain(owners []Entity) {
	relatedTable := b.query.def.table
	b.query.Select(
		relatedTable+".*",
		sql.As(b.joinTable+"."+b.foreignKey, b.pivotAlias()),
	)
	b.query.Selector().ResetWhere()
	b.query.WhereIn(b.joinTable+"."+b.foreignKey, keyValues(owners, b.owner.model().KeyName())...)
}

func (b *BelongsToMany) match(owners, results []Entity, name string) {
	pivot := b.pivotAlias()
	groups := make(map[any][]Entity, len(owners))
	for _, res := range results {
		m := res.model()
		k := normKey(m.Attributes().Get(pivot))
		m.Unset(pivot)
		groups[k] = append(groups[k], res)
	}
	keyName := b.owner.model().KeyName()
	for _, o := range owners {
		m := o.model()
		group := groups[normKey(m.Attributes().Get(keyName))]
		if group == nil {
			group = []Entity{}
		}
		m.SetRelationValue(name, group)
	}
}
