package activerecord_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ar "github.com/syssam/activerecord"
)

func TestHasManyConstraint(t *testing.T) {
	t.Parallel()

	reg, _ := mockRegistry(t)
	u, err := reg.New("User")
	require.NoError(t, err)
	u.(*User).Set("id", 1)

	rel := ar.NewHasMany(u, "Post")
	require.NoError(t, rel.Query().Err())

	// Exactly one constraint: foreignKey = owner.primaryKey.
	query, args := rel.Query().Selector().Query()
	assert.Equal(t, "SELECT * FROM `posts` WHERE `user_id` = ?", query)
	assert.Equal(t, []any{1}, args)
}

func TestHasManyCustomForeignKey(t *testing.T) {
	t.Parallel()

	reg, _ := mockRegistry(t)
	u, err := reg.New("User")
	require.NoError(t, err)
	u.(*User).Set("id", 1)

	rel := ar.NewHasMany(u, "Post", "author_id")
	query, _ := rel.Query().Selector().Query()
	assert.Equal(t, "SELECT * FROM `posts` WHERE `author_id` = ?", query)
}

func TestHasManyAll(t *testing.T) {
	t.Parallel()

	reg, mock := mockRegistry(t)
	u, err := reg.New("User")
	require.NoError(t, err)
	u.(*User).Set("id", 1)

	mock.ExpectQuery("SELECT * FROM `posts` WHERE `user_id` = ?").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title"}).
			AddRow(11, 1, "hello").
			AddRow(12, 1, "world"))

	posts, err := ar.NewHasMany(u, "Post").All(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "hello", posts[0].(*Post).Get("title"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHasOneFirst(t *testing.T) {
	t.Parallel()

	reg, mock := mockRegistry(t)
	u, err := reg.New("User")
	require.NoError(t, err)
	u.(*User).Set("id", 3)

	mock.ExpectQuery("SELECT * FROM `profiles` WHERE `user_id` = ? LIMIT 1").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bio"}).AddRow(1, 3, "gopher"))

	p, err := ar.NewHasOne(u, "Profile").First(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "gopher", p.(*Profile).Get("bio"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBelongsToConstraint(t *testing.T) {
	t.Parallel()

	reg, _ := mockRegistry(t)
	p, err := reg.New("Post")
	require.NoError(t, err)
	p.(*Post).Set("id", 11)
	p.(*Post).Set("user_id", 9)

	// The foreign key is derived from the explicit relation name.
	rel := ar.NewBelongsTo(p, "User", "user")
	query, args := rel.Query().Selector().Query()
	assert.Equal(t, "SELECT * FROM `users` WHERE `id` = ?", query)
	assert.Equal(t, []any{9}, args)
}

func TestBelongsToFirst(t *testing.T) {
	t.Parallel()

	reg, mock := mockRegistry(t)
	p, err := reg.New("Post")
	require.NoError(t, err)
	p.(*Post).Set("user_id", 9)

	mock.ExpectQuery("SELECT * FROM `users` WHERE `id` = ? LIMIT 1").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(9, "a8m"))

	u, err := ar.NewBelongsTo(p, "User", "user").First(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a8m", u.(*User).Get("name"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBelongsToManyConstraint(t *testing.T) {
	t.Parallel()

	reg, _ := mockRegistry(t)
	u, err := reg.New("User")
	require.NoError(t, err)
	u.(*User).Set("id", 1)

	rel := ar.NewBelongsToMany(u, "Role", "", "", "")
	assert.Equal(t, "role_user", rel.JoinTable())
	assert.Equal(t, "user_id", rel.ForeignKey())
	assert.Equal(t, "role_id", rel.OtherKey())

	query, args := rel.Query().Selector().Query()
	assert.Equal(t,
		"SELECT `roles`.* FROM `roles` "+
			"JOIN `role_user` ON `role_user`.`role_id` = `roles`.`id` "+
			"WHERE `role_user`.`user_id` = ?",
		query,
	)
	assert.Equal(t, []any{1}, args)
}

func TestRelationUnknownRelatedType(t *testing.T) {
	t.Parallel()

	reg, _ := mockRegistry(t)
	u, err := reg.New("User")
	require.NoError(t, err)

	rel := ar.NewHasMany(u, "Ghost")
	assert.True(t, ar.IsInvalidRelatedType(rel.Query().Err()))

	_, err = rel.All(context.Background())
	assert.ErrorIs(t, err, ar.ErrInvalidRelatedType)
}

func TestRelationUnboundOwner(t *testing.T) {
	t.Parallel()

	u := &User{}
	rel := ar.NewHasMany(u, "Post")
	_, err := rel.All(context.Background())
	assert.ErrorIs(t, err, ar.ErrUnboundEntity)
}

func TestEagerLoadHasMany(t *testing.T) {
	t.Parallel()

	reg, mock := mockRegistry(t)
	mock.ExpectQuery("SELECT * FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "a8m").
			AddRow(2, "nati").
			AddRow(3, "alex"))
	mock.ExpectQuery("SELECT * FROM `posts` WHERE `user_id` IN (?, ?, ?)").
		WithArgs(1, 2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title"}).
			AddRow(11, 1, "first").
			AddRow(12, 1, "second").
			AddRow(13, 3, "third"))

	users, err := reg.Query("User").With("posts").All(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)

	v, ok := users[0].(*User).RelationValue("posts")
	require.True(t, ok)
	require.Len(t, v.([]ar.Entity), 2)
	assert.Equal(t, "first", v.([]ar.Entity)[0].(*Post).Get("title"))

	// Owners with zero matches get an empty, non-nil batch.
	v, ok = users[1].(*User).RelationValue("posts")
	require.True(t, ok)
	assert.NotNil(t, v)
	assert.Len(t, v.([]ar.Entity), 0)

	v, _ = users[2].(*User).RelationValue("posts")
	require.Len(t, v.([]ar.Entity), 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEagerLoadHasOne(t *testing.T) {
	t.Parallel()

	reg, mock := mockRegistry(t)
	mock.ExpectQuery("SELECT * FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(1).
			AddRow(2))
	mock.ExpectQuery("SELECT * FROM `profiles` WHERE `user_id` IN (?, ?)").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "bio"}).
			AddRow(7, 2, "gopher"))

	users, err := reg.Query("User").With("profile").All(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	v, ok := users[0].(*User).RelationValue("profile")
	require.True(t, ok)
	assert.Nil(t, v)

	v, _ = users[1].(*User).RelationValue("profile")
	require.NotNil(t, v)
	assert.Equal(t, "gopher", v.(ar.Entity).(*Profile).Get("bio"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEagerLoadBelongsTo(t *testing.T) {
	t.Parallel()

	reg, mock := mockRegistry(t)
	mock.ExpectQuery("SELECT * FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title"}).
			AddRow(11, 9, "first").
			AddRow(12, 9, "second").
			AddRow(13, nil, "orphan"))
	mock.ExpectQuery("SELECT * FROM `users` WHERE `id` IN (?)").
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(9, "a8m"))

	posts, err := reg.Query("Post").With("author").All(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)

	v, ok := posts[0].(*Post).RelationValue("author")
	require.True(t, ok)
	assert.Equal(t, "a8m", v.(ar.Entity).(*User).Get("name"))

	v, _ = posts[1].(*Post).RelationValue("author")
	require.NotNil(t, v)

	// Owners with a NULL foreign key resolve to no related entity.
	v, ok = posts[2].(*Post).RelationValue("author")
	require.True(t, ok)
	assert.Nil(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEagerLoadBelongsToMany(t *testing.T) {
	t.Parallel()

	reg, mock := mockRegistry(t)
	mock.ExpectQuery("SELECT * FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(1).
			AddRow(2))
	mock.ExpectQuery(
		"SELECT `roles`.*, `role_user`.`user_id` AS `pivot_user_id` FROM `roles` "+
			"JOIN `role_user` ON `role_user`.`role_id` = `roles`.`id` "+
			"WHERE `role_user`.`user_id` IN (?, ?)").
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "pivot_user_id"}).
			AddRow(100, "admin", 1).
			AddRow(101, "editor", 1).
			AddRow(100, "admin", 2))

	users, err := reg.Query("User").With("roles").All(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)

	v, ok := users[0].(*User).RelationValue("roles")
	require.True(t, ok)
	roles := v.([]ar.Entity)
	require.Len(t, roles, 2)
	assert.Equal(t, "admin", roles[0].(*Role).Get("name"))
	// The pivot column is stripped after partitioning.
	assert.False(t, roles[0].(*Role).Has("pivot_user_id"))

	v, _ = users[1].(*User).RelationValue("roles")
	require.Len(t, v.([]ar.Entity), 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEagerLoadUnknownRelation(t *testing.T) {
	t.Parallel()

	reg, mock := mockRegistry(t)
	mock.ExpectQuery("SELECT * FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := reg.Query("User").With("ghosts").All(context.Background())
	assert.True(t, ar.IsUnknownRelation(err))
	assert.ErrorContains(t, err, "ghosts")
}
