package sql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/activerecord/dialect"
)

func TestPredicates(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input     *Predicate
		wantQuery string
		wantArgs  []any
	}{
		{
			input:     NEQ("name", "a8m"),
			wantQuery: "SELECT * FROM `users` WHERE `name` <> ?",
			wantArgs:  []any{"a8m"},
		},
		{
			input:     And(GT("age", 18), LTE("age", 60)),
			wantQuery: "SELECT * FROM `users` WHERE `age` > ? AND `age` <= ?",
			wantArgs:  []any{18, 60},
		},
		{
			input:     Or(EQ("name", "a8m"), EQ("name", "nati")),
			wantQuery: "SELECT * FROM `users` WHERE (`name` = ? OR `name` = ?)",
			wantArgs:  []any{"a8m", "nati"},
		},
		{
			input:     Not(IsNull("email")),
			wantQuery: "SELECT * FROM `users` WHERE NOT (`email` IS NULL)",
		},
		{
			input:     NotNull("email"),
			wantQuery: "SELECT * FROM `users` WHERE `email` IS NOT NULL",
		},
		{
			input:     Contains("email", "@gmail"),
			wantQuery: "SELECT * FROM `users` WHERE `email` LIKE ?",
			wantArgs:  []any{"%@gmail%"},
		},
		{
			input:     HasPrefix("name", "a"),
			wantQuery: "SELECT * FROM `users` WHERE `name` LIKE ?",
			wantArgs:  []any{"a%"},
		},
		{
			input:     HasSuffix("name", "m"),
			wantQuery: "SELECT * FROM `users` WHERE `name` LIKE ?",
			wantArgs:  []any{"%m"},
		},
		{
			input:     NotIn("id", 1, 2),
			wantQuery: "SELECT * FROM `users` WHERE `id` NOT IN (?, ?)",
			wantArgs:  []any{1, 2},
		},
		{
			input:     NotIn("id"),
			wantQuery: "SELECT * FROM `users` WHERE TRUE",
		},
		{
			input:     And(GTE("id", 1)),
			wantQuery: "SELECT * FROM `users` WHERE `id` >= ?",
			wantArgs:  []any{1},
		},
	}
	for _, tt := range tests {
		query, args := Dialect(dialect.MySQL).Select().From("users").Where(tt.input).Query()
		require.Equal(t, tt.wantQuery, query)
		require.Equal(t, tt.wantArgs, args)
	}
}

func TestPredicatePostgresPlaceholders(t *testing.T) {
	t.Parallel()
	query, args := Dialect(dialect.Postgres).Select().From("users").
		Where(Or(LT("age", 18), GT("age", 60))).
		Query()
	require.Equal(t, `SELECT * FROM "users" WHERE ("age" < $1 OR "age" > $2)`, query)
	require.Equal(t, []any{18, 60}, args)
}
