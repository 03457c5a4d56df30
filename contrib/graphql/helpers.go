package graphql

import (
	"fmt"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/docgraph/schema/field"
)

// Names of the fixed types every connection depends on.
const (
	// PageInfoType is the name of the connection page information type.
	PageInfoType = "PageInfo"
	// GQLFieldTypeName is the GraphQL __typename field name.
	GQLFieldTypeName = "__typename"
)

// PaginationNames holds the names of the pagination types for a node.
type PaginationNames struct {
	Connection string
	Edge       string
	Node       string
}

// paginationNames generates pagination type names from a node name.
func paginationNames(node string) *PaginationNames {
	return &PaginationNames{
		Connection: fmt.Sprintf("%sConnection", node),
		Edge:       fmt.Sprintf("%sEdge", node),
		Node:       node,
	}
}

// FieldName returns the GraphQL name of a document field, the camel-cased
// form of its declared name ("first_name" becomes "firstName").
func FieldName(f *field.Descriptor) string {
	if f.Name == "" || f.Name == "_id" {
		return "id"
	}
	return inflect.CamelizeDownFirst(f.Name)
}

// UnionNamer names the union type built for a generic field.
type UnionNamer func(f *field.Descriptor) string

// UniqueUnionName is the default UnionNamer. It returns
// "<Owner>_<dbfield>_union_<token>" where token is a fresh time-based
// UUID without dashes, so every call yields a new name.
func UniqueUnionName(f *field.Descriptor) string {
	id, err := uuid.NewUUID()
	if err != nil {
		id = uuid.New()
	}
	token := strings.ReplaceAll(id.String(), "-", "")
	return fmt.Sprintf("%s_%s_union_%s", f.Owner, f.StorageName(), token)
}

// StableUnionName is a deterministic UnionNamer: "<Owner><DbField>Union",
// e.g. "ReporterGenericReferenceUnion". Rebuilding a schema yields the
// same names.
func StableUnionName(f *field.Descriptor) string {
	// A Caser is stateful and cannot be shared between goroutines.
	title := cases.Title(language.English, cases.NoLower)
	return title.String(f.Owner) + inflect.Camelize(f.StorageName()) + "Union"
}
