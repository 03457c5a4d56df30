package graphql

import (
	"strings"

	"github.com/syssam/docgraph"
	"github.com/syssam/docgraph/schema/field"
)

// Registry maps document model names to their GraphQL object types.
// It is append-only and not safe for concurrent mutation.
type Registry struct {
	objects     map[string]*Object
	names       []string
	connections map[string]*Connection
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		objects:     make(map[string]*Object),
		connections: make(map[string]*Connection),
	}
}

// Register adds the object of a model. Registering the same object twice
// is a no-op; registering a different object under a taken name fails
// with a *docgraph.RegistryError.
func (r *Registry) Register(model string, obj *Object) error {
	if prev, ok := r.objects[model]; ok {
		if prev == obj {
			return nil
		}
		return docgraph.NewRegistryError(model)
	}
	r.objects[model] = obj
	r.names = append(r.names, model)
	return nil
}

// Lookup returns the object registered for the model, or nil.
func (r *Registry) Lookup(model string) *Object {
	if r == nil {
		return nil
	}
	return r.objects[model]
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns the registered model names in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Connection returns the connection type of a node object. The same
// connection is returned for every call with the same node.
func (r *Registry) Connection(node *Object) *Connection {
	if c, ok := r.connections[node.Name]; ok && c.Node == node {
		return c
	}
	c := &Connection{Node: node, Names: paginationNames(node.Name)}
	r.connections[node.Name] = c
	return c
}

// Resolve returns the field type a deferred type stands for, or nil
// while its target model is not registered.
func (r *Registry) Resolve(d *Deferred) *Field {
	obj := r.Lookup(d.Model)
	if obj == nil {
		return nil
	}
	f := &Field{
		Type:        obj,
		Description: describe(d.Source, obj.Description),
	}
	if d.Lazy && d.Source != nil {
		f.Resolver = LazyResolver(d.Source)
	}
	return f
}

// describe joins the description of a field: the description of its
// target model, the field help text, and the storage name when it differs
// from the field name.
func describe(f *field.Descriptor, target string) string {
	var parts []string
	if target != "" {
		parts = append(parts, target)
	}
	if f != nil {
		if f.Comment != "" {
			parts = append(parts, f.Comment)
		}
		if f.DBField != "" && f.DBField != f.Name {
			parts = append(parts, "("+f.DBField+")")
		}
	}
	return strings.Join(parts, "\n")
}
