// Package activerecord implements an active-record mapping layer: a
// base entity type binding dynamic attribute state to rows of a
// relational table, relationship resolvers between entity types, and
// the query generation needed to persist and hydrate that state.
//
// # Entities
//
// An entity embeds Model and is declared once against a Registry:
//
//	type User struct {
//	    activerecord.Model
//	}
//
//	reg := activerecord.NewRegistry()
//	reg.Define("User", func() activerecord.Entity { return &User{} },
//	    activerecord.Mutator("password", hashPassword),
//	    activerecord.Relation("posts", func(e activerecord.Entity) activerecord.Relationer {
//	        return e.(*User).Posts()
//	    }),
//	)
//
// Attributes are schema-less: columns are whatever keys were set on the
// instance or scanned from storage, with optional per-column accessor,
// mutator, and cast hooks registered on the definition.
//
// # Relationships
//
// Relationship accessors are ordinary methods returning a resolver:
//
//	func (u *User) Posts() *activerecord.HasMany {
//	    return activerecord.NewHasMany(u, "Post")
//	}
//
// A resolver is a constrained query for the related type and an
// eager-loading engine: Query.With("posts") prefetches the relation for
// a whole result batch in one additional query.
//
// # Persistence
//
//	user, err := reg.Create(ctx, "User", map[string]any{"name": "a8m"})
//	posts, err := reg.Query("Post").Where("status", "=", "draft").All(ctx)
//
// Connections are dialect.Driver handles registered by name on the
// Registry; the first registered connection becomes the default.
package activerecord
