package activerecord_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ar "github.com/syssam/activerecord"
)

type User struct {
	ar.Model
}

type Post struct {
	ar.Model
}

type Profile struct {
	ar.Model
}

type Role struct {
	ar.Model
}

func newTestRegistry() *ar.Registry {
	reg := ar.NewRegistry()
	reg.Define("User", func() ar.Entity { return &User{} },
		ar.Relation("posts", func(e ar.Entity) ar.Relationer {
			return ar.NewHasMany(e, "Post")
		}),
		ar.Relation("profile", func(e ar.Entity) ar.Relationer {
			return ar.NewHasOne(e, "Profile")
		}),
		ar.Relation("roles", func(e ar.Entity) ar.Relationer {
			return ar.NewBelongsToMany(e, "Role", "", "", "")
		}),
	)
	reg.Define("Post", func() ar.Entity { return &Post{} },
		ar.Relation("author", func(e ar.Entity) ar.Relationer {
			return ar.NewBelongsTo(e, "User", "user")
		}),
	)
	reg.Define("Profile", func() ar.Entity { return &Profile{} })
	reg.Define("Role", func() ar.Entity { return &Role{} })
	return reg
}

func TestModelGetSet(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	e, err := reg.New("User")
	require.NoError(t, err)

	// Without a mutator, the stored value is returned as-is.
	e.(*User).Set("name", "a8m")
	assert.Equal(t, "a8m", e.(*User).Get("name"))
	assert.True(t, e.(*User).Has("name"))

	e.(*User).Unset("name")
	assert.False(t, e.(*User).Has("name"))
	assert.Nil(t, e.(*User).Get("name"))
}

func TestModelAttributesAlwaysDefined(t *testing.T) {
	t.Parallel()

	u := &User{}
	assert.NotNil(t, u.Attributes())
	assert.False(t, u.Exists())
}

func TestModelMutator(t *testing.T) {
	t.Parallel()

	reg := ar.NewRegistry()
	upper := func(v any) any { return strings.ToUpper(v.(string)) }
	reg.Define("User", func() ar.Entity { return &User{} },
		ar.Mutator("code", upper),
	)
	e, err := reg.New("User")
	require.NoError(t, err)
	u := e.(*User)

	u.Set("code", "abc")
	// The mutator's return value is what gets stored, and Get (absent
	// an accessor) returns the stored value.
	assert.Equal(t, "ABC", u.Attributes().Get("code"))
	assert.Equal(t, "ABC", u.Get("code"))
}

func TestModelAccessor(t *testing.T) {
	t.Parallel()

	reg := ar.NewRegistry()
	reg.Define("User", func() ar.Entity { return &User{} },
		ar.Accessor("name", func(v any) any {
			if v == nil {
				return ""
			}
			return "Mr. " + v.(string)
		}),
	)
	e, err := reg.New("User")
	require.NoError(t, err)
	u := e.(*User)

	u.Set("name", "a8m")
	// The accessor receives the raw stored value.
	assert.Equal(t, "a8m", u.Attributes().Get("name"))
	assert.Equal(t, "Mr. a8m", u.Get("name"))
}

func TestModelFill(t *testing.T) {
	t.Parallel()

	reg := ar.NewRegistry()
	reg.Define("User", func() ar.Entity { return &User{} },
		ar.Mutator("email", func(v any) any { return strings.ToLower(v.(string)) }),
	)
	e, err := reg.New("User")
	require.NoError(t, err)
	u := e.(*User)

	u.Fill(map[string]any{"email": "A8M@EXAMPLE.COM", "name": "a8m"})
	assert.Equal(t, "a8m@example.com", u.Get("email"))
	assert.Equal(t, "a8m", u.Get("name"))
}

func TestModelKey(t *testing.T) {
	t.Parallel()

	reg := ar.NewRegistry()
	reg.Define("User", func() ar.Entity { return &User{} })
	reg.Define("Post", func() ar.Entity { return &Post{} }, ar.Key("uuid"))

	u, err := reg.New("User")
	require.NoError(t, err)
	assert.Equal(t, "id", u.(*User).KeyName())
	u.(*User).Set("id", 7)
	assert.Equal(t, 7, u.(*User).Key())

	p, err := reg.New("Post")
	require.NoError(t, err)
	assert.Equal(t, "uuid", p.(*Post).KeyName())
}

func TestRegistryBind(t *testing.T) {
	t.Parallel()

	reg := newTestRegistry()
	u := &User{}
	require.NoError(t, reg.Bind(u))
	u.Set("id", 1)
	assert.Equal(t, 1, u.Key())

	type Ghost struct{ ar.Model }
	err := reg.Bind(&Ghost{})
	assert.True(t, ar.IsInvalidRelatedType(err))
}
