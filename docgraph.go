// Package docgraph maps document-model field declarations onto GraphQL
// schema types.
//
// Documents are declared as Go types embedding Document or EmbeddedDocument:
//
//	type Editor struct{ docgraph.Document }
//
//	func (Editor) Fields() []docgraph.Field {
//	    return []docgraph.Field{
//	        field.String("first_name").Required().DBField("fname"),
//	        field.LazyReference("company", "Publisher"),
//	    }
//	}
//
// The schema package loads them into models, and contrib/graphql converts
// the models into GraphQL type descriptors.
package docgraph

import "github.com/syssam/docgraph/schema/field"

// The Interface type describes the requirements for a document definition.
type Interface interface {
	// Fields returns the fields of the document.
	Fields() []Field
	// Mixin returns an optional list of Mixin to extend the document.
	Mixin() []Mixin
	// Config returns the document options.
	Config() Config
}

// Field is the interface for document fields.
// It is implemented by the field builders.
type Field interface {
	Descriptor() *field.Descriptor
}

// Mixin is a reusable set of fields that can be mixed into documents.
type Mixin interface {
	Fields() []Field
}

// Config holds the options of a document.
type Config struct {
	// Name overrides the document name, which defaults to the Go type name.
	Name string
	// Description is used as the GraphQL type description.
	Description string
	// Connection marks the document as a node type: lists of references to
	// it are exposed as cursor-based connections.
	Connection bool
}

// Document is the default implementation for the document Interface.
// It can be embedded in end-user documents as follows:
//
//	type T struct {
//		docgraph.Document
//	}
type Document struct {
	Interface
}

// Fields of the document.
func (Document) Fields() []Field { return nil }

// Mixin of the document.
func (Document) Mixin() []Mixin { return nil }

// Config of the document.
func (Document) Config() Config { return Config{} }

// EmbeddedDocument is the base for documents that are only stored inside
// other documents. Embedded documents are never node types.
type EmbeddedDocument struct {
	Document
}

func (EmbeddedDocument) embedded() {}

// Embedder is implemented by documents embedding EmbeddedDocument.
type Embedder interface {
	Interface
	embedded()
}

var (
	_ Interface = (*Document)(nil)
	_ Embedder  = (*EmbeddedDocument)(nil)
)
