package graphql

import (
	"errors"
	"fmt"
	"slices"

	"github.com/syssam/docgraph"
	"github.com/syssam/docgraph/schema"
	"github.com/syssam/docgraph/schema/field"
)

// Builder builds the GraphQL types of document models in two phases.
// Register creates and registers one object per model; Build converts
// the fields of every registered model.
//
//	b, err := graphql.NewBuilder(graphql.NewRegistry())
//	if err != nil {
//		return err
//	}
//	if err := b.Register(models...); err != nil {
//		return err
//	}
//	s, err := b.Build()
type Builder struct {
	cfg    *Config
	conv   *Converter
	reg    *Registry
	models []*schema.Model
	objs   map[string]*Object
}

// NewBuilder returns a builder registering into reg. A nil reg is
// replaced by an empty registry.
func NewBuilder(reg *Registry, opts ...Option) (*Builder, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = NewRegistry()
	}
	return &Builder{
		cfg:  cfg,
		conv: &Converter{cfg: cfg},
		reg:  reg,
		objs: make(map[string]*Object),
	}, nil
}

// Registry returns the registry of the builder.
func (b *Builder) Registry() *Registry { return b.reg }

// Converter returns the converter used by Build.
func (b *Builder) Converter() *Converter { return b.conv }

// Register creates the objects of the given models and registers them.
// Embedded documents are never nodes.
func (b *Builder) Register(models ...*schema.Model) error {
	var errs []error
	for _, m := range models {
		if m == nil {
			continue
		}
		obj := &Object{
			Name:        m.Name,
			Description: m.Description,
			Model:       m.Name,
			Node:        m.Connection && !m.Embedded,
		}
		if err := b.reg.Register(m.Name, obj); err != nil {
			errs = append(errs, err)
			continue
		}
		b.models = append(b.models, m)
		b.objs[m.Name] = obj
	}
	return docgraph.NewAggregateError(errs...)
}

// pending is a field waiting for its target models.
type pending struct {
	model *schema.Model
	field *field.Descriptor
}

// Build converts the fields of every registered model. Fields that
// depend on missing models are replayed until no pass makes progress or
// the pass budget is spent. Fields still unresolved are left out of
// their object and listed in Schema.Unresolved. Objects left without
// fields are omitted, together with the fields referring to them. Build
// may be called again after registering more models.
func (b *Builder) Build() (*Schema, error) {
	var queue []pending
	for _, m := range b.models {
		for _, f := range m.Fields {
			queue = append(queue, pending{model: m, field: f})
		}
	}
	var (
		errs     []error
		resolved = make(map[*field.Descriptor]Type, len(queue))
	)
	for pass := 1; pass <= b.cfg.MaxPasses && len(queue) > 0; pass++ {
		var next []pending
		for _, p := range queue {
			t, err := b.convert(p.field)
			if err != nil {
				errs = append(errs, fmt.Errorf("schema %q: %w", p.model.Name, err))
				continue
			}
			if t == nil {
				next = append(next, p)
				continue
			}
			resolved[p.field] = t
		}
		progress := len(next) < len(queue)
		queue = next
		if !progress {
			break
		}
	}
	if err := docgraph.NewAggregateError(errs...); err != nil {
		return nil, err
	}
	s := &Schema{}
	for _, p := range queue {
		b.conv.logger().Warn("graphql: field left unresolved",
			"field", p.field.String(), "kind", p.field.KindName(), "target", target(p.field))
		s.Unresolved = append(s.Unresolved, p.field)
	}
	for _, m := range b.models {
		obj := b.objs[m.Name]
		obj.Fields = nil
		for _, f := range m.Fields {
			if t, ok := resolved[f]; ok {
				obj.Fields = append(obj.Fields, &ObjectField{Name: FieldName(f), Type: t, Source: f})
			}
		}
	}
	empty := b.prune(s)
	for _, name := range b.reg.Names() {
		if o := b.reg.Lookup(name); !empty[o] {
			s.Objects = append(s.Objects, o)
		}
	}
	s.collect()
	return s, nil
}

// prune finds the model objects left without fields. An object type must
// have fields, so these objects are left out of the schema, and fields of
// other objects referring to them are moved to Schema.Unresolved.
func (b *Builder) prune(s *Schema) map[*Object]bool {
	empty := make(map[*Object]bool)
	for changed := true; changed; {
		changed = false
		for _, m := range b.models {
			obj := b.objs[m.Name]
			if empty[obj] {
				continue
			}
			if len(obj.Fields) == 0 {
				b.conv.logger().Warn("graphql: object left without fields", "model", m.Name)
				empty[obj] = true
				changed = true
				continue
			}
			kept := obj.Fields[:0]
			for _, f := range obj.Fields {
				if !refers(f.Type, empty) {
					kept = append(kept, f)
					continue
				}
				b.conv.logger().Warn("graphql: field refers to an object without fields",
					"field", f.Source.String(), "target", target(f.Source))
				s.Unresolved = append(s.Unresolved, f.Source)
				changed = true
			}
			obj.Fields = kept
		}
	}
	return empty
}

// refers reports whether t mounts one of the given objects.
func refers(t Type, objs map[*Object]bool) bool {
	switch t := t.(type) {
	case *Field:
		return refers(t.Type, objs)
	case *List:
		return refers(t.Of, objs)
	case *Object:
		return objs[t]
	case *Connection:
		return objs[t.Node]
	case *Union:
		return slices.ContainsFunc(t.Types, func(o *Object) bool { return objs[o] })
	default:
		return false
	}
}

// convert converts a field and resolves a deferred result.
func (b *Builder) convert(f *field.Descriptor) (Type, error) {
	t, err := b.conv.Convert(f, b.reg)
	if err != nil {
		return nil, err
	}
	if d, ok := t.(*Deferred); ok {
		if rf := b.reg.Resolve(d); rf != nil {
			return rf, nil
		}
		return nil, nil
	}
	return t, nil
}

// target returns the models a field depends on, for diagnostics.
func target(f *field.Descriptor) []string {
	switch {
	case f.Target != "":
		return []string{f.Target}
	case len(f.Choices) > 0:
		return f.Choices
	case f.Inner != nil:
		return target(f.Inner)
	default:
		return nil
	}
}

// Schema is the result of a Build.
type Schema struct {
	// Objects holds the registered objects in registration order.
	Objects []*Object
	// Fixed holds the geo-spatial and file objects in use.
	Fixed []*Object
	// Unions and Connections hold the types mounted on object fields.
	Unions      []*Union
	Connections []*Connection
	// Scalars holds the non-builtin scalars in use.
	Scalars []*Scalar
	// Unresolved holds the fields whose target models are missing or were
	// left out for having no fields.
	Unresolved []*field.Descriptor
}

// Object returns the object with the given name, or nil.
func (s *Schema) Object(name string) *Object {
	for _, o := range s.Objects {
		if o.Name == name {
			return o
		}
	}
	for _, o := range s.Fixed {
		if o.Name == name {
			return o
		}
	}
	return nil
}

// Union returns the union with the given name, or nil.
func (s *Schema) Union(name string) *Union {
	for _, u := range s.Unions {
		if u.Name == name {
			return u
		}
	}
	return nil
}

// collect gathers the named types reachable from the object fields.
func (s *Schema) collect() {
	seen := make(map[Named]bool)
	for _, o := range s.Objects {
		seen[o] = true
	}
	var walk func(Type)
	walk = func(t Type) {
		switch t := t.(type) {
		case *Field:
			walk(t.Type)
		case *List:
			walk(t.Of)
		case *Scalar:
			if !seen[t] && !t.Builtin() {
				seen[t] = true
				s.Scalars = append(s.Scalars, t)
			}
		case *Union:
			if !seen[t] {
				seen[t] = true
				s.Unions = append(s.Unions, t)
			}
		case *Connection:
			if !seen[t] {
				seen[t] = true
				s.Connections = append(s.Connections, t)
			}
		case *Object:
			if !seen[t] {
				seen[t] = true
				s.Fixed = append(s.Fixed, t)
				for _, f := range t.Fields {
					walk(f.Type)
				}
			}
		}
	}
	for _, o := range s.Objects {
		for _, f := range o.Fields {
			walk(f.Type)
		}
	}
}

// ErrUnresolved is returned by Schema.Check when fields are unresolved.
var ErrUnresolved = errors.New("graphql: unresolved fields")

// Check returns ErrUnresolved, naming the fields, if any field of the
// schema is unresolved.
func (s *Schema) Check() error {
	if len(s.Unresolved) == 0 {
		return nil
	}
	names := make([]string, len(s.Unresolved))
	for i, f := range s.Unresolved {
		names[i] = f.String()
	}
	return fmt.Errorf("%w: %v", ErrUnresolved, names)
}
