// Package field provides fluent builders for declaring document fields.
//
// Field names are the attribute names of a document. The name a field is
// stored under defaults to its name and can be changed with DBField:
//
//	field.String("first_name").DBField("fname") // attribute: first_name, stored: fname
//
// # Field Kinds
//
// The kind vocabulary is closed. Each builder maps to one Type:
//
//	// Scalars
//	field.String("name")
//	field.Email("email")
//	field.URL("homepage")
//	field.ObjectID("id")
//	field.Int("count")
//	field.Sequence("seq")
//	field.Float("score")
//	field.DateTime("pub_date")
//	field.Dict("metadata")
//
//	// Geo and blob data
//	field.Point("loc")
//	field.Polygon("base")
//	field.MultiPolygon("coverage_area")
//	field.File("avatar")
//
//	// Lists
//	field.List("awards", field.String(""))
//	field.EmbeddedDocumentList("embedded_list_articles", "EmbeddedArticle")
//
//	// References to other documents
//	field.Reference("editor", "Editor")
//	field.LazyReference("company", "Publisher")
//	field.EmbeddedDocument("metadata", "ProfessorMetadata")
//	field.GenericReference("generic_reference", "Article", "Editor")
//
// Targets are document names, which allows referencing documents that are
// declared later.
//
// # Field Options
//
//	field.String("headline").
//	    Required().                      // Non-null in the GraphQL schema
//	    Comment("The article headline.") // Field description
package field
