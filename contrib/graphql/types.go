package graphql

import "github.com/syssam/docgraph/schema/field"

// Kind identifies the variant of a Type.
type Kind uint8

// Type variants.
const (
	KindScalar Kind = iota + 1
	KindObject
	KindUnion
	KindConnection
	KindField
	KindList
	KindDeferred
)

var kindNames = [...]string{
	KindScalar:     "scalar",
	KindObject:     "object",
	KindUnion:      "union",
	KindConnection: "connection",
	KindField:      "field",
	KindList:       "list",
	KindDeferred:   "deferred",
}

// String returns the variant name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}

// Type is a GraphQL schema type descriptor.
type Type interface {
	// Kind returns the variant of the descriptor.
	Kind() Kind
	// String returns the GraphQL type reference, e.g. "[String]!".
	String() string
}

// Named is implemented by types that are defined by name in a schema.
type Named interface {
	Type
	TypeName() string
}

// Scalar is a named leaf type.
type Scalar struct {
	Name        string
	Description string
}

func (s *Scalar) Kind() Kind       { return KindScalar }
func (s *Scalar) String() string   { return s.Name }
func (s *Scalar) TypeName() string { return s.Name }

// Builtin reports if the scalar is part of every GraphQL schema.
func (s *Scalar) Builtin() bool {
	switch s {
	case ID, String, Int, Float, Boolean:
		return true
	default:
		return false
	}
}

// Scalars the converter maps field kinds to.
var (
	ID      = &Scalar{Name: "ID"}
	String  = &Scalar{Name: "String"}
	Int     = &Scalar{Name: "Int"}
	Float   = &Scalar{Name: "Float"}
	Boolean = &Scalar{Name: "Boolean"}

	DateTime = &Scalar{
		Name:        "DateTime",
		Description: "The `DateTime` scalar type represents a DateTime value as specified by [iso8601](https://en.wikipedia.org/wiki/ISO_8601).",
	}
	JSONString = &Scalar{
		Name:        "JSONString",
		Description: "Allows use of a JSON String for input / output from the GraphQL schema.",
	}
)

// ObjectField is a field of an object type.
type ObjectField struct {
	Name   string            // GraphQL field name.
	Type   Type              // *Field, *List or *Connection.
	Source *field.Descriptor // nil for fixed objects.
}

// Object is a named type with fields. Document models convert to objects.
type Object struct {
	Name        string
	Description string
	// Model is the name of the document model the object was built for.
	// It is empty for the fixed geo and file objects.
	Model string
	// Node objects support paginated connections.
	Node   bool
	Fields []*ObjectField
}

func (o *Object) Kind() Kind       { return KindObject }
func (o *Object) String() string   { return o.Name }
func (o *Object) TypeName() string { return o.Name }

// Field returns the object field with the given GraphQL name, or nil.
func (o *Object) Field(name string) *ObjectField {
	for _, f := range o.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Union is a named type standing for one of several objects.
type Union struct {
	Name        string
	Description string
	Types       []*Object
}

func (u *Union) Kind() Kind       { return KindUnion }
func (u *Union) String() string   { return u.Name }
func (u *Union) TypeName() string { return u.Name }

// Connection is the cursor-based paginated list type of a node object.
type Connection struct {
	Node  *Object
	Names *PaginationNames
}

func (c *Connection) Kind() Kind       { return KindConnection }
func (c *Connection) String() string   { return c.Names.Connection }
func (c *Connection) TypeName() string { return c.Names.Connection }

// Field mounts a named type on an object field.
type Field struct {
	Type        Named
	Required    bool
	Description string
	// Resolver loads the field value; nil means the value is read from
	// the parent object.
	Resolver Resolver
}

func (f *Field) Kind() Kind { return KindField }

func (f *Field) String() string {
	if f.Required {
		return f.Type.TypeName() + "!"
	}
	return f.Type.TypeName()
}

// List is a list of a named type or of another list.
type List struct {
	Of          Type
	Required    bool
	Description string
}

func (l *List) Kind() Kind { return KindList }

func (l *List) String() string {
	s := "[" + l.Of.String() + "]"
	if l.Required {
		s += "!"
	}
	return s
}

// Deferred stands for a field whose type is the registered type of another
// model. It is resolved with Registry.Resolve once the model is registered.
type Deferred struct {
	Model  string            // target model.
	Source *field.Descriptor // originating field.
	Lazy   bool              // attach a lazy resolver on resolution.
}

func (d *Deferred) Kind() Kind     { return KindDeferred }
func (d *Deferred) String() string { return "deferred(" + d.Model + ")" }

var (
	_ Named = (*Scalar)(nil)
	_ Named = (*Object)(nil)
	_ Named = (*Union)(nil)
	_ Named = (*Connection)(nil)
	_ Type  = (*Field)(nil)
	_ Type  = (*List)(nil)
	_ Type  = (*Deferred)(nil)
)
