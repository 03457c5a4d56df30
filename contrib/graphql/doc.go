// Package graphql converts document model fields to GraphQL types.
//
// Every field kind maps to exactly one type variant:
//
//	string, email, url                    Field(String)
//	uuid, object-id                       Field(ID)
//	int, long, sequence                   Field(Int)
//	bool                                  Field(Boolean)
//	decimal, float                        Field(Float)
//	datetime                              Field(DateTime)
//	dict, map                             Field(JSONString)
//	point, polygon, multi-polygon, file   Field(fixed object)
//	list, embedded-document list          List or Connection
//	generic reference, generic embedded   Field(Union)
//	embedded-document, (cached) reference Deferred
//	lazy reference                        Deferred with a lazy resolver
//
// Any other kind fails with a *docgraph.ConversionError.
//
// # Forward references
//
// Reference kinds depend on the object of another model, which may not
// be registered yet. Convert returns a *Deferred for them, resolved with
// Registry.Resolve; lists and unions resolve their targets at once and
// convert to nil while a target is missing. A nil result is not an error:
// the field is converted again once more models are registered.
//
// The Builder runs this protocol in two phases:
//
//	reg := graphql.NewRegistry()
//	b, err := graphql.NewBuilder(reg, graphql.WithStableUnionNames())
//	if err != nil {
//		log.Fatal(err)
//	}
//	models, err := schema.Load(testmodels.All()...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := b.Register(models...); err != nil {
//		log.Fatal(err)
//	}
//	s, err := b.Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(s.SDL())
//
// # Unions
//
// Generic fields convert to a union of their registered candidate models.
// Unregistered candidates are dropped, unless WithStrictUnions is set, in
// which case the whole field waits for them. Union names are unique per
// call by default ("Reporter_generic_reference_union_<uuid>");
// WithStableUnionNames makes them deterministic.
//
// # gqlgen
//
// GQLGenConfig.Bind updates a gqlgen.yml with the bindings of a built
// schema. The JSONString and DateTime scalars bind to the marshalers of
// this package.
package graphql
