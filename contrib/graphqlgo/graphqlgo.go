// Package graphqlgo materializes built docgraph schemas as
// github.com/graphql-go/graphql types, ready to execute queries.
//
//	types, err := graphqlgo.New(s)
//	if err != nil {
//		return err
//	}
//	schema, err := types.Schema(graphql.Fields{
//		"editor": &graphql.Field{Type: types.Object("Editor"), Resolve: loadEditor},
//	})
package graphqlgo

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-openapi/inflect"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	dg "github.com/syssam/docgraph/contrib/graphql"
)

// TypeNamer is implemented by values that name their GraphQL object
// type. It is used to resolve the concrete type of union values.
type TypeNamer interface {
	TypeName() string
}

// Option configures the materialization.
type Option func(*Types) error

// WithTypeResolver sets the function naming the object type of a union
// value. It is consulted before the default rules.
func WithTypeResolver(fn func(v any) string) Option {
	return func(t *Types) error {
		if fn == nil {
			return errors.New("graphqlgo: nil type resolver")
		}
		t.typeOf = fn
		return nil
	}
}

// Types holds the graphql-go types of a schema.
type Types struct {
	schema   *dg.Schema
	typeOf   func(v any) string
	objects  map[*dg.Object]*graphql.Object
	unions   map[*dg.Union]*graphql.Union
	conns    map[*dg.Connection]*graphql.Object
	scalars  map[*dg.Scalar]*graphql.Scalar
	pageInfo *graphql.Object
}

// New materializes the types of s.
func New(s *dg.Schema, opts ...Option) (*Types, error) {
	if s == nil {
		return nil, errors.New("graphqlgo: nil schema")
	}
	t := &Types{
		schema:  s,
		objects: make(map[*dg.Object]*graphql.Object),
		unions:  make(map[*dg.Union]*graphql.Union),
		conns:   make(map[*dg.Connection]*graphql.Object),
		scalars: map[*dg.Scalar]*graphql.Scalar{
			dg.ID:         graphql.ID,
			dg.String:     graphql.String,
			dg.Int:        graphql.Int,
			dg.Float:      graphql.Float,
			dg.Boolean:    graphql.Boolean,
			dg.DateTime:   graphql.DateTime,
			dg.JSONString: jsonString,
		},
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	for _, o := range s.Objects {
		t.object(o)
	}
	for _, o := range s.Fixed {
		t.object(o)
	}
	for _, u := range s.Unions {
		t.union(u)
	}
	for _, c := range s.Connections {
		t.connection(c)
	}
	return t, nil
}

// Object returns the object type with the given name, or nil.
func (t *Types) Object(name string) *graphql.Object {
	if o := t.schema.Object(name); o != nil {
		return t.object(o)
	}
	return nil
}

// Union returns the union type with the given name, or nil.
func (t *Types) Union(name string) *graphql.Union {
	if u := t.schema.Union(name); u != nil {
		return t.union(u)
	}
	return nil
}

// Output returns the graphql-go type of a docgraph type.
func (t *Types) Output(typ dg.Type) graphql.Output {
	switch typ := typ.(type) {
	case *dg.Field:
		out := t.named(typ.Type)
		if typ.Required {
			return graphql.NewNonNull(out)
		}
		return out
	case *dg.List:
		var out graphql.Output = graphql.NewList(t.Output(typ.Of))
		if typ.Required {
			return graphql.NewNonNull(out)
		}
		return out
	case dg.Named:
		return t.named(typ)
	default:
		panic(fmt.Sprintf("graphqlgo: unexpected type %s", typ))
	}
}

// Schema returns an executable schema with the given query fields. Every
// object and union of the docgraph schema is part of it.
func (t *Types) Schema(query graphql.Fields) (graphql.Schema, error) {
	var types []graphql.Type
	for _, o := range t.schema.Objects {
		types = append(types, t.object(o))
	}
	for _, u := range t.schema.Unions {
		types = append(types, t.union(u))
	}
	return graphql.NewSchema(graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: query}),
		Types: types,
	})
}

func (t *Types) named(n dg.Named) graphql.Output {
	switch n := n.(type) {
	case *dg.Scalar:
		return t.scalar(n)
	case *dg.Object:
		return t.object(n)
	case *dg.Union:
		return t.union(n)
	case *dg.Connection:
		return t.connection(n)
	default:
		panic(fmt.Sprintf("graphqlgo: unexpected named type %s", n))
	}
}

func (t *Types) scalar(s *dg.Scalar) *graphql.Scalar {
	if gs, ok := t.scalars[s]; ok {
		return gs
	}
	gs := graphql.NewScalar(graphql.ScalarConfig{
		Name:         s.Name,
		Description:  s.Description,
		Serialize:    func(v any) any { return v },
		ParseValue:   func(v any) any { return v },
		ParseLiteral: func(v ast.Value) any { return v.GetValue() },
	})
	t.scalars[s] = gs
	return gs
}

// object returns the object type of o. Fields are built on first use so
// that objects may refer to each other.
func (t *Types) object(o *dg.Object) *graphql.Object {
	if obj, ok := t.objects[o]; ok {
		return obj
	}
	obj := graphql.NewObject(graphql.ObjectConfig{
		Name:        o.Name,
		Description: o.Description,
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			fields := make(graphql.Fields, len(o.Fields))
			for _, f := range o.Fields {
				fields[f.Name] = t.field(f)
			}
			return fields
		}),
	})
	t.objects[o] = obj
	return obj
}

func (t *Types) field(f *dg.ObjectField) *graphql.Field {
	gf := &graphql.Field{
		Name:    f.Name,
		Type:    t.Output(f.Type),
		Resolve: valueResolver(f),
	}
	switch typ := f.Type.(type) {
	case *dg.Field:
		gf.Description = typ.Description
		if typ.Resolver != nil {
			gf.Resolve = func(p graphql.ResolveParams) (any, error) {
				return typ.Resolver(p.Context, p.Source)
			}
		}
	case *dg.List:
		gf.Description = typ.Description
	case *dg.Connection:
		gf.Args = connectionArgs
		gf.Resolve = connectionResolver(f)
	}
	return gf
}

// valueResolver reads the field value from the parent object.
func valueResolver(f *dg.ObjectField) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		if f.Source != nil {
			v, _ := dg.FieldValue(p.Source, f.Source)
			return v, nil
		}
		v, _ := dg.Value(p.Source, f.Name, inflect.Underscore(f.Name))
		return v, nil
	}
}

func (t *Types) union(u *dg.Union) *graphql.Union {
	if gu, ok := t.unions[u]; ok {
		return gu
	}
	members := make([]*graphql.Object, len(u.Types))
	for i, m := range u.Types {
		members[i] = t.object(m)
	}
	gu := graphql.NewUnion(graphql.UnionConfig{
		Name:        u.Name,
		Description: u.Description,
		Types:       members,
		ResolveType: func(p graphql.ResolveTypeParams) *graphql.Object {
			name := t.typeName(p.Value)
			for i, m := range u.Types {
				if m.Name == name {
					return members[i]
				}
			}
			return nil
		},
	})
	t.unions[u] = gu
	return gu
}

// typeName returns the object type name of a union value.
func (t *Types) typeName(v any) string {
	if t.typeOf != nil {
		if name := t.typeOf(v); name != "" {
			return name
		}
	}
	switch v := v.(type) {
	case TypeNamer:
		return v.TypeName()
	case map[string]any:
		name, _ := v[dg.GQLFieldTypeName].(string)
		return name
	}
	rt := reflect.TypeOf(v)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil {
		return ""
	}
	return rt.Name()
}

// jsonString serializes dict and map values as their JSON encoding.
var jsonString = graphql.NewScalar(graphql.ScalarConfig{
	Name:        dg.JSONString.Name,
	Description: dg.JSONString.Description,
	Serialize: func(v any) any {
		data, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(data)
	},
	ParseValue: func(v any) any {
		s, ok := v.(string)
		if !ok {
			return nil
		}
		var out any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil
		}
		return out
	},
	ParseLiteral: func(v ast.Value) any {
		sv, ok := v.(*ast.StringValue)
		if !ok {
			return nil
		}
		var out any
		if err := json.Unmarshal([]byte(sv.Value), &out); err != nil {
			return nil
		}
		return out
	},
})
