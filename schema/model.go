package schema

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/syssam/docgraph"
	"github.com/syssam/docgraph/schema/field"
)

// Model represents a loaded document definition.
type Model struct {
	Name        string
	Description string
	Embedded    bool
	Connection  bool
	Fields      []*field.Descriptor
}

// Field returns the field with the given name, or nil.
func (m *Model) Field(name string) *field.Descriptor {
	for _, f := range m.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// New creates a model from field descriptors. Descriptors are copied and
// stamped with the model name. It fails on builder errors and on
// duplicate field names.
func New(name string, fields ...*field.Descriptor) (*Model, error) {
	if name == "" {
		return nil, errors.New("docgraph: model name cannot be empty")
	}
	m := &Model{Name: name}
	seen := make(map[string]bool, len(fields))
	for _, fd := range fields {
		if fd == nil {
			continue
		}
		if fd.Err != nil {
			return nil, docgraph.NewFieldError(name, fd.Name, fd.Err)
		}
		if fd.Name == "" {
			return nil, docgraph.NewFieldError(name, fd.Name, errors.New("field name cannot be empty"))
		}
		if seen[fd.Name] {
			return nil, docgraph.NewFieldError(name, fd.Name, errors.New("duplicate field"))
		}
		seen[fd.Name] = true
		c := fd.Clone()
		c.SetOwner(name)
		m.Fields = append(m.Fields, c)
	}
	return m, nil
}

// NewModel loads a single document definition.
func NewModel(doc docgraph.Interface) (*Model, error) {
	cfg := doc.Config()
	name := cfg.Name
	if name == "" {
		name = indirect(reflect.TypeOf(doc)).Name()
	}
	var fields []*field.Descriptor
	for _, mx := range doc.Mixin() {
		for _, f := range mx.Fields() {
			fields = append(fields, f.Descriptor())
		}
	}
	for _, f := range doc.Fields() {
		fields = append(fields, f.Descriptor())
	}
	m, err := New(name, fields...)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}
	m.Description = cfg.Description
	_, m.Embedded = doc.(docgraph.Embedder)
	m.Connection = cfg.Connection && !m.Embedded
	return m, nil
}

// Load loads the given document definitions in order.
func Load(docs ...docgraph.Interface) ([]*Model, error) {
	models := make([]*Model, 0, len(docs))
	names := make(map[string]bool, len(docs))
	for _, doc := range docs {
		m, err := NewModel(doc)
		if err != nil {
			return nil, err
		}
		if names[m.Name] {
			return nil, fmt.Errorf("schema %q: %w", m.Name, docgraph.NewRegistryError(m.Name))
		}
		names[m.Name] = true
		models = append(models, m)
	}
	return models, nil
}

func indirect(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}
