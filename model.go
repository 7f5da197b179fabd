package activerecord

// Entity is implemented by every active-record type through an embedded
// Model. The unexported accessor keeps the contract closed to this
// package while letting any struct embed the base.
type Entity interface {
	model() *Model
}

// Model is the embeddable active-record base. It carries the dynamic
// attribute state, existence tracking, the registry binding, and loaded
// relation values. Declare entities by embedding it:
//
//	type User struct {
//	    activerecord.Model
//	}
type Model struct {
	registry  *Registry
	def       *Definition
	attrs     Attributes
	exists    bool
	conn      string
	relations map[string]any
}

func (m *Model) model() *Model { return m }

// bind attaches the model to a registry and its type definition.
// The attribute mapping is always defined after binding.
func (m *Model) bind(r *Registry, def *Definition) {
	m.registry = r
	m.def = def
	if m.attrs == nil {
		m.attrs = NewAttributes()
	}
	if m.relations == nil {
		m.relations = make(map[string]any)
	}
}

// ensureAttrs keeps the attributes invariant for unbound instances.
func (m *Model) ensureAttrs() {
	if m.attrs == nil {
		m.attrs = NewAttributes()
	}
}

// Get returns the value of the given attribute, routed through the
// registered accessor for that attribute, if any.
func (m *Model) Get(key string) any {
	m.ensureAttrs()
	raw := m.attrs.Get(key)
	if m.def != nil {
		return m.def.access(key, raw)
	}
	return raw
}

// Set stores the given value under the given attribute, routed through
// the registered mutator for that attribute, if any.
func (m *Model) Set(key string, v any) {
	m.ensureAttrs()
	if m.def != nil {
		v = m.def.mutate(key, v)
	}
	m.attrs.Set(key, v)
}

// Has reports whether the given attribute holds a value.
func (m *Model) Has(key string) bool {
	m.ensureAttrs()
	return m.attrs.Has(key)
}

// Unset removes the given attribute.
func (m *Model) Unset(key string) {
	m.ensureAttrs()
	m.attrs.Remove(key)
}

// Attributes returns the full current attribute mapping.
func (m *Model) Attributes() Attributes {
	m.ensureAttrs()
	return m.attrs
}

// Fill sets all entries of the given map as attributes, routing each
// through its mutator.
func (m *Model) Fill(attrs map[string]any) {
	for _, k := range Attributes(attrs).Keys() {
		m.Set(k, attrs[k])
	}
}

// KeyName returns the primary-key column of the entity type.
func (m *Model) KeyName() string {
	if m.def != nil {
		return m.def.keyName
	}
	return "id"
}

// Key returns the raw primary-key value of the instance.
func (m *Model) Key() any {
	m.ensureAttrs()
	return m.attrs.Get(m.KeyName())
}

// Exists reports whether the instance was persisted or loaded from storage.
func (m *Model) Exists() bool { return m.exists }

// UseConnection overrides the connection backing this instance. An empty
// name falls back to the registry default.
func (m *Model) UseConnection(name string) {
	m.conn = name
}

// Connection returns the connection override of this instance, if any.
func (m *Model) Connection() string { return m.conn }

// SetRelationValue stores a loaded relation result under its name.
func (m *Model) SetRelationValue(name string, v any) {
	if m.relations == nil {
		m.relations = make(map[string]any)
	}
	m.relations[name] = v
}

// RelationValue returns the loaded relation result for the given name.
// The second return reports whether the relation was loaded at all.
func (m *Model) RelationValue(name string) (any, bool) {
	v, ok := m.relations[name]
	return v, ok
}

// hydrate replaces the attribute state with a scanned storage row,
// bypassing mutators, decoding casts, and marking the instance persisted.
func (m *Model) hydrate(row map[string]any) error {
	m.attrs = NewAttributes()
	for k, v := range row {
		if m.def != nil {
			if codec, ok := m.def.casts[k]; ok {
				decoded, err := codec.Decode(v)
				if err != nil {
					return err
				}
				v = decoded
			}
		}
		m.attrs.Set(k, v)
	}
	m.exists = true
	return nil
}
