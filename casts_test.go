package activerecord_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ar "github.com/syssam/activerecord"
)

func TestJSONCodec(t *testing.T) {
	t.Parallel()

	c := ar.JSONCodec{}

	enc, err := c.Encode(map[string]any{"theme": "dark"})
	require.NoError(t, err)
	assert.Equal(t, `{"theme":"dark"}`, enc)

	dec, err := c.Decode(`{"theme":"dark"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "dark"}, dec)

	// Text columns may scan as []byte.
	dec, err = c.Decode([]byte(`[1,2]`))
	require.NoError(t, err)
	assert.Equal(t, []any{float64(1), float64(2)}, dec)

	enc, err = c.Encode(nil)
	require.NoError(t, err)
	assert.Nil(t, enc)

	dec, err = c.Decode(nil)
	require.NoError(t, err)
	assert.Nil(t, dec)

	_, err = c.Decode("{not json")
	assert.Error(t, err)
}

func castRegistry(t *testing.T) (*ar.Registry, sqlmock.Sqlmock) {
	t.Helper()
	reg := ar.NewRegistry()
	drv, mock := mockDriver(t)
	reg.Register("default", drv)
	reg.Define("User", func() ar.Entity { return &User{} },
		ar.WithoutTimestamps(),
		ar.Cast("settings", ar.JSONCodec{}),
	)
	return reg, mock
}

func TestCastOnSave(t *testing.T) {
	t.Parallel()

	reg, mock := castRegistry(t)
	mock.ExpectExec("INSERT INTO `users` (`name`, `settings`) VALUES (?, ?)").
		WithArgs("a8m", `{"theme":"dark"}`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	e, err := reg.New("User")
	require.NoError(t, err)
	u := e.(*User)
	u.Set("name", "a8m")
	u.Set("settings", map[string]any{"theme": "dark"})

	require.NoError(t, ar.Save(context.Background(), u))
	// The in-memory attribute keeps its decoded form.
	assert.Equal(t, map[string]any{"theme": "dark"}, u.Get("settings"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCastOnHydrate(t *testing.T) {
	t.Parallel()

	reg, mock := castRegistry(t)
	mock.ExpectQuery("SELECT * FROM `users` WHERE `id` = ? LIMIT 1").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "settings"}).
			AddRow(1, `{"theme":"dark","pages":3}`))

	e, err := reg.Find(context.Background(), "User", 1)
	require.NoError(t, err)

	v, ok := e.(*User).Get("settings").(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "dark", v["theme"])
	assert.Equal(t, float64(3), v["pages"])
	require.NoError(t, mock.ExpectationsWereMet())
}
