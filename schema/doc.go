// Package schema loads document definitions into models.
//
// A Model is the flattened, validated view of a document: its name, its
// options and the descriptors of its mixed-in and own fields, each stamped
// with the owning model name.
//
//	models, err := schema.Load(Editor{}, Reporter{}, EmbeddedArticle{})
//
// Models can also be assembled from descriptors directly, which is what
// the YAML loader does:
//
//	m, err := schema.New("Editor",
//	    field.String("first_name").Required().Descriptor(),
//	)
package schema
