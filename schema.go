package activerecord

// AccessorFunc transforms the raw stored value of an attribute into its
// externally visible value on read.
type AccessorFunc func(any) any

// MutatorFunc transforms an incoming value before it is stored.
type MutatorFunc func(any) any

// RelationFunc constructs a relationship resolver for the given owner
// entity. Bindings are registered once, at type-definition time, so
// eager loading can resolve relations by name without reflection.
type RelationFunc func(Entity) Relationer

// Definition holds the type-level declaration of an entity: its table,
// primary key, factory, attribute hooks, casts, and relation bindings.
type Definition struct {
	name       string
	table      string
	keyName    string
	keyDefault func() any
	factory    func() Entity
	timestamps bool
	accessors  map[string]AccessorFunc
	mutators   map[string]MutatorFunc
	casts      map[string]Codec
	relations  map[string]RelationFunc
}

// DefineOption configures an entity definition.
type DefineOption func(*Definition)

// Table overrides the conventional table name.
func Table(name string) DefineOption {
	return func(d *Definition) {
		if name != "" {
			d.table = name
		}
	}
}

// Key overrides the primary-key column name. The default is "id".
func Key(name string) DefineOption {
	return func(d *Definition) {
		if name != "" {
			d.keyName = name
		}
	}
}

// KeyDefault sets a generator for client-side primary keys. When set and
// the key attribute is empty at insert time, the generated value is
// stored before the insert is issued (e.g. uuid.NewString).
func KeyDefault(fn func() any) DefineOption {
	return func(d *Definition) {
		d.keyDefault = fn
	}
}

// Accessor registers a read hook for the given attribute.
func Accessor(attr string, fn AccessorFunc) DefineOption {
	return func(d *Definition) {
		d.accessors[attr] = fn
	}
}

// Mutator registers a write hook for the given attribute.
func Mutator(attr string, fn MutatorFunc) DefineOption {
	return func(d *Definition) {
		d.mutators[attr] = fn
	}
}

// Cast registers a storage codec for the given attribute. The codec
// encodes the value before it is written to the driver and decodes it
// when a row is hydrated.
func Cast(attr string, c Codec) DefineOption {
	return func(d *Definition) {
		d.casts[attr] = c
	}
}

// Relation registers a named relationship binding used by eager loading.
func Relation(name string, fn RelationFunc) DefineOption {
	return func(d *Definition) {
		d.relations[name] = fn
	}
}

// WithoutTimestamps disables created_at/updated_at maintenance on save.
func WithoutTimestamps() DefineOption {
	return func(d *Definition) {
		d.timestamps = false
	}
}

func newDefinition(name string, factory func() Entity, opts ...DefineOption) *Definition {
	d := &Definition{
		name:       name,
		table:      TableName(name),
		keyName:    "id",
		factory:    factory,
		timestamps: true,
		accessors:  make(map[string]AccessorFunc),
		mutators:   make(map[string]MutatorFunc),
		casts:      make(map[string]Codec),
		relations:  make(map[string]RelationFunc),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the entity type name of the definition.
func (d *Definition) Name() string { return d.name }

// Table returns the table name of the definition.
func (d *Definition) Table() string { return d.table }

// KeyName returns the primary-key column name of the definition.
func (d *Definition) KeyName() string { return d.keyName }

// relation returns the named relation binding.
func (d *Definition) relation(name string) (RelationFunc, bool) {
	fn, ok := d.relations[name]
	return fn, ok
}

// access applies the registered accessor for the attribute, if any.
func (d *Definition) access(attr string, raw any) any {
	if fn, ok := d.accessors[attr]; ok {
		return fn(raw)
	}
	return raw
}

// mutate applies the registered mutator for the attribute, if any.
func (d *Definition) mutate(attr string, v any) any {
	if fn, ok := d.mutators[attr]; ok {
		return fn(v)
	}
	return v
}
