package graphql

import (
	"fmt"
	"strings"

	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"
)

// Document returns the schema as a GraphQL schema document. It holds the
// scalar, object, union and connection definitions of the schema; root
// operation types are left to the caller.
func (s *Schema) Document() *ast.SchemaDocument {
	doc := &ast.SchemaDocument{}
	for _, sc := range s.Scalars {
		doc.Definitions = append(doc.Definitions, &ast.Definition{
			Kind:        ast.Scalar,
			Name:        sc.Name,
			Description: sc.Description,
		})
	}
	for _, o := range s.Objects {
		doc.Definitions = append(doc.Definitions, objectDefinition(o))
	}
	for _, o := range s.Fixed {
		doc.Definitions = append(doc.Definitions, objectDefinition(o))
	}
	for _, u := range s.Unions {
		def := &ast.Definition{
			Kind:        ast.Union,
			Name:        u.Name,
			Description: u.Description,
		}
		for _, t := range u.Types {
			def.Types = append(def.Types, t.Name)
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	if len(s.Connections) > 0 {
		doc.Definitions = append(doc.Definitions, pageInfoDefinition())
	}
	for _, c := range s.Connections {
		doc.Definitions = append(doc.Definitions, connectionDefinitions(c)...)
	}
	return doc
}

// SDL returns the schema document in the GraphQL schema language.
func (s *Schema) SDL() string {
	var b strings.Builder
	formatter.NewFormatter(&b).FormatSchemaDocument(s.Document())
	return b.String()
}

// Validate checks that the schema document is a valid GraphQL schema.
// A placeholder query root is added when the document has none.
func (s *Schema) Validate() error {
	sources := []*ast.Source{{Name: "docgraph.graphql", Input: s.SDL()}}
	if s.Object("Query") == nil {
		sources = append(sources, &ast.Source{
			Name:  "query.graphql",
			Input: "type Query {\n  _placeholder: Boolean\n}\n",
		})
	}
	if _, err := gqlparser.LoadSchema(sources...); err != nil {
		return fmt.Errorf("graphql: invalid schema: %w", err)
	}
	return nil
}

func objectDefinition(o *Object) *ast.Definition {
	def := &ast.Definition{
		Kind:        ast.Object,
		Name:        o.Name,
		Description: o.Description,
	}
	for _, f := range o.Fields {
		fd := &ast.FieldDefinition{
			Name: f.Name,
			Type: astType(f.Type),
		}
		switch t := f.Type.(type) {
		case *Field:
			fd.Description = t.Description
		case *List:
			fd.Description = t.Description
		case *Connection:
			fd.Arguments = connectionArgs()
		}
		def.Fields = append(def.Fields, fd)
	}
	return def
}

// astType returns the type reference of t.
func astType(t Type) *ast.Type {
	switch t := t.(type) {
	case *Field:
		if t.Required {
			return ast.NonNullNamedType(t.Type.TypeName(), nil)
		}
		return ast.NamedType(t.Type.TypeName(), nil)
	case *List:
		if t.Required {
			return ast.NonNullListType(astType(t.Of), nil)
		}
		return ast.ListType(astType(t.Of), nil)
	case Named:
		return ast.NamedType(t.TypeName(), nil)
	default:
		panic(fmt.Sprintf("graphql: no type reference for %s", t))
	}
}

func connectionArgs() ast.ArgumentDefinitionList {
	return ast.ArgumentDefinitionList{
		{Name: "after", Type: ast.NamedType(String.Name, nil)},
		{Name: "first", Type: ast.NamedType(Int.Name, nil)},
		{Name: "before", Type: ast.NamedType(String.Name, nil)},
		{Name: "last", Type: ast.NamedType(Int.Name, nil)},
	}
}

func pageInfoDefinition() *ast.Definition {
	return &ast.Definition{
		Kind:        ast.Object,
		Name:        PageInfoType,
		Description: "Information about pagination in a connection.",
		Fields: ast.FieldList{
			{Name: "hasNextPage", Type: ast.NonNullNamedType(Boolean.Name, nil)},
			{Name: "hasPreviousPage", Type: ast.NonNullNamedType(Boolean.Name, nil)},
			{Name: "startCursor", Type: ast.NamedType(String.Name, nil)},
			{Name: "endCursor", Type: ast.NamedType(String.Name, nil)},
		},
	}
}

func connectionDefinitions(c *Connection) []*ast.Definition {
	return []*ast.Definition{
		{
			Kind:        ast.Object,
			Name:        c.Names.Connection,
			Description: "A connection to a list of items.",
			Fields: ast.FieldList{
				{Name: "edges", Type: ast.NonNullListType(ast.NamedType(c.Names.Edge, nil), nil)},
				{Name: "pageInfo", Type: ast.NonNullNamedType(PageInfoType, nil)},
			},
		},
		{
			Kind:        ast.Object,
			Name:        c.Names.Edge,
			Description: "An edge in a connection.",
			Fields: ast.FieldList{
				{Name: "node", Type: ast.NamedType(c.Names.Node, nil)},
				{Name: "cursor", Type: ast.NonNullNamedType(String.Name, nil)},
			},
		},
	}
}
