// Package testmodels holds document definitions shared by tests.
package testmodels

import (
	"github.com/syssam/docgraph"
	"github.com/syssam/docgraph/schema/field"
	"github.com/syssam/docgraph/schema/mixin"
)

// Publisher of a publication.
type Publisher struct{ docgraph.Document }

func (Publisher) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("name"),
	}
}

// Editor of a publication.
type Editor struct{ docgraph.Document }

func (Editor) Config() docgraph.Config {
	return docgraph.Config{Description: "An Editor of a publication."}
}

func (Editor) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("id"),
		field.String("first_name").Required().Comment("Editor's first name.").DBField("fname"),
		field.String("last_name").Required().Comment("Editor's last name."),
		field.Map("metadata", field.String("")).Comment("Arbitrary metadata."),
		field.LazyReference("company", "Publisher"),
		field.File("avatar"),
		field.Sequence("seq"),
	}
}

// Article is a stored article. Lists of articles are connections.
type Article struct{ docgraph.Document }

func (Article) Config() docgraph.Config {
	return docgraph.Config{Connection: true}
}

func (Article) Mixin() []docgraph.Mixin {
	return []docgraph.Mixin{mixin.ID{}}
}

func (Article) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("headline").Required().Comment("The article headline."),
		field.DateTime("pub_date").Comment("The date of first press."),
		field.Reference("editor", "Editor"),
		field.Reference("reporter", "Reporter"),
	}
}

// EmbeddedArticle is an article stored inside another document.
type EmbeddedArticle struct{ docgraph.EmbeddedDocument }

func (EmbeddedArticle) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("headline").Required(),
		field.DateTime("pub_date"),
		field.Reference("editor", "Editor"),
		field.Reference("reporter", "Reporter"),
	}
}

// EmbeddedFoo is a minimal embedded document.
type EmbeddedFoo struct{ docgraph.EmbeddedDocument }

func (EmbeddedFoo) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("bar"),
	}
}

// Reporter exercises every list and generic kind.
type Reporter struct{ docgraph.Document }

func (Reporter) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("id"),
		field.String("first_name").Required(),
		field.String("last_name").Required(),
		field.Email("email"),
		field.List("awards", field.String("")),
		field.List("articles", field.Reference("", "Article")),
		field.List("embedded_articles", field.EmbeddedDocument("", "EmbeddedArticle")),
		field.EmbeddedDocumentList("embedded_list_articles", "EmbeddedArticle"),
		field.GenericReference("generic_reference", "Article", "Editor"),
		field.GenericEmbeddedDocument("generic_embedded_document", "EmbeddedArticle", "EmbeddedFoo"),
		field.List("generic_references", field.GenericReference("", "Article", "Editor")),
	}
}

// Player references itself.
type Player struct{ docgraph.Document }

func (Player) Config() docgraph.Config {
	return docgraph.Config{Connection: true}
}

func (Player) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("first_name").Required(),
		field.String("last_name").Required(),
		field.Reference("opponent", "Player"),
		field.List("players", field.Reference("", "Player")),
		field.List("articles", field.Reference("", "Article")),
		field.EmbeddedDocumentList("embedded_list_articles", "EmbeddedArticle"),
	}
}

// Parent is a document with a multi-polygon location.
type Parent struct{ docgraph.Document }

func (Parent) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("bar"),
		field.MultiPolygon("loc"),
	}
}

// Child overrides the location of Parent with a point.
type Child struct{ docgraph.Document }

func (Child) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("bar"),
		field.String("baz"),
		field.Point("loc"),
	}
}

// CellTower has polygon fields.
type CellTower struct{ docgraph.Document }

func (CellTower) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("code"),
		field.Polygon("base"),
		field.MultiPolygon("coverage_area"),
	}
}

// ProfessorMetadata is embedded in ProfessorVector.
type ProfessorMetadata struct{ docgraph.EmbeddedDocument }

func (ProfessorMetadata) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("id"),
		field.String("first_name"),
		field.String("last_name"),
		field.List("departments", field.String("")),
	}
}

// ProfessorVector holds a float list and an embedded document.
type ProfessorVector struct{ docgraph.Document }

func (ProfessorVector) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.List("vec", field.Float("")),
		field.EmbeddedDocument("metadata", "ProfessorMetadata"),
	}
}

// ParentWithRelationship references children declared before and after it.
type ParentWithRelationship struct{ docgraph.Document }

func (ParentWithRelationship) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.List("before_child", field.Reference("", "ChildRegisteredBefore")),
		field.List("after_child", field.Reference("", "ChildRegisteredAfter")),
		field.String("name"),
	}
}

// ChildRegisteredBefore is registered before its parent.
type ChildRegisteredBefore struct{ docgraph.Document }

func (ChildRegisteredBefore) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.Reference("parent", "ParentWithRelationship"),
		field.String("name"),
	}
}

// ChildRegisteredAfter is registered after its parent.
type ChildRegisteredAfter struct{ docgraph.Document }

func (ChildRegisteredAfter) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.Reference("parent", "ParentWithRelationship"),
		field.String("name"),
	}
}

// Bar has a required list.
type Bar struct{ docgraph.EmbeddedDocument }

func (Bar) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.List("some_list_field", field.String("")).Required(),
	}
}

// Foo embeds a list of Bar.
type Foo struct{ docgraph.Document }

func (Foo) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.EmbeddedDocumentList("bars", "Bar"),
	}
}

// Unsupported declares a field kind without a GraphQL mapping.
type Unsupported struct{ docgraph.Document }

func (Unsupported) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.String("name"),
		field.Custom("custom", "UnsupportedCustomField"),
	}
}

// All returns every supported document, in declaration order.
func All() []docgraph.Interface {
	return []docgraph.Interface{
		Publisher{},
		Editor{},
		Article{},
		EmbeddedArticle{},
		EmbeddedFoo{},
		Reporter{},
		Player{},
		Parent{},
		Child{},
		CellTower{},
		ProfessorMetadata{},
		ProfessorVector{},
		ChildRegisteredBefore{},
		ParentWithRelationship{},
		ChildRegisteredAfter{},
		Bar{},
		Foo{},
	}
}
