package field

import (
	"errors"
	"fmt"
	"slices"
)

// Descriptor for field configuration.
type Descriptor struct {
	Name     string      // field name.
	DBField  string      // storage name, defaults to Name.
	Type     Type        // field kind.
	Custom   string      // kind name of a TypeOther field.
	Required bool        // required on input.
	Comment  string      // help text.
	Owner    string      // owning model name.
	Inner    *Descriptor // element field of list kinds.
	Target   string      // target model of reference kinds.
	Choices  []string    // candidate models of generic kinds.
	Err      error
}

// StorageName returns the name the field is stored under.
func (d *Descriptor) StorageName() string {
	if d.DBField != "" {
		return d.DBField
	}
	return d.Name
}

// KindName returns the name of the field kind, used in diagnostics.
func (d *Descriptor) KindName() string {
	if d.Type == TypeOther && d.Custom != "" {
		return d.Custom
	}
	return d.Type.String()
}

// String returns the qualified field name, e.g. "Editor.first_name".
func (d *Descriptor) String() string {
	if d.Owner == "" {
		return d.Name
	}
	return d.Owner + "." + d.Name
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	c := *d
	c.Choices = slices.Clone(d.Choices)
	c.Inner = d.Inner.Clone()
	return &c
}

// SetOwner sets the owning model of the field and of its inner fields.
// Inner fields inherit the name and storage name of their list.
func (d *Descriptor) SetOwner(owner string) {
	d.Owner = owner
	if in := d.Inner; in != nil {
		if in.Name == "" {
			in.Name = d.Name
		}
		if in.DBField == "" {
			in.DBField = d.DBField
		}
		in.SetOwner(owner)
	}
}

// Candidate returns the synthetic single-target field that stands for
// one choice of a generic field.
func (d *Descriptor) Candidate(model string) *Descriptor {
	typ := TypeReference
	if d.Type == TypeGenericEmbeddedDocument {
		typ = TypeEmbeddedDocument
	}
	return &Descriptor{
		Name:    d.Name,
		DBField: d.DBField,
		Type:    typ,
		Owner:   d.Owner,
		Target:  model,
	}
}

// Builder is the builder for all field kinds.
type Builder struct {
	desc *Descriptor
}

func newBuilder(name string, t Type) *Builder {
	return &Builder{desc: &Descriptor{Name: name, Type: t}}
}

// String returns a new Field with type string.
func String(name string) *Builder { return newBuilder(name, TypeString) }

// Email returns a new Field with type email.
func Email(name string) *Builder { return newBuilder(name, TypeEmail) }

// URL returns a new Field with type url.
func URL(name string) *Builder { return newBuilder(name, TypeURL) }

// UUID returns a new Field with type uuid.
func UUID(name string) *Builder { return newBuilder(name, TypeUUID) }

// ObjectID returns a new Field with type object-id.
func ObjectID(name string) *Builder { return newBuilder(name, TypeObjectID) }

// Int returns a new Field with type int.
func Int(name string) *Builder { return newBuilder(name, TypeInt) }

// Long returns a new Field with type long.
func Long(name string) *Builder { return newBuilder(name, TypeLong) }

// Sequence returns a new auto-incremented Field with type int.
func Sequence(name string) *Builder { return newBuilder(name, TypeSequence) }

// Bool returns a new Field with type bool.
func Bool(name string) *Builder { return newBuilder(name, TypeBool) }

// Decimal returns a new Field with type decimal.
func Decimal(name string) *Builder { return newBuilder(name, TypeDecimal) }

// Float returns a new Field with type float.
func Float(name string) *Builder { return newBuilder(name, TypeFloat) }

// DateTime returns a new Field with type datetime.
func DateTime(name string) *Builder { return newBuilder(name, TypeDateTime) }

// Dict returns a new Field holding an untyped document.
func Dict(name string) *Builder { return newBuilder(name, TypeDict) }

// Map returns a new Field holding a document whose values are described
// by the given field. The value field is informational only.
func Map(name string, value *Builder) *Builder {
	b := newBuilder(name, TypeMap)
	if value != nil {
		b.desc.Inner = value.Descriptor()
	}
	return b
}

// Point returns a new GeoJSON point Field.
func Point(name string) *Builder { return newBuilder(name, TypePoint) }

// Polygon returns a new GeoJSON polygon Field.
func Polygon(name string) *Builder { return newBuilder(name, TypePolygon) }

// MultiPolygon returns a new GeoJSON multi-polygon Field.
func MultiPolygon(name string) *Builder { return newBuilder(name, TypeMultiPolygon) }

// File returns a new Field stored as a file.
func File(name string) *Builder { return newBuilder(name, TypeFile) }

// List returns a new list Field whose elements are described by of.
//
//	field.List("awards", field.String(""))
//	field.List("articles", field.Reference("", "Article"))
func List(name string, of *Builder) *Builder {
	b := newBuilder(name, TypeList)
	if of == nil {
		b.desc.Err = errors.New("list field requires an element field")
		return b
	}
	b.desc.Inner = of.Descriptor()
	b.desc.Err = b.desc.Inner.Err
	return b
}

// EmbeddedDocumentList returns a new list Field of embedded documents.
func EmbeddedDocumentList(name, target string) *Builder {
	b := newBuilder(name, TypeEmbeddedDocumentList)
	b.desc.Inner = EmbeddedDocument(name, target).Descriptor()
	b.desc.Err = b.desc.Inner.Err
	return b
}

// EmbeddedDocument returns a new Field holding an embedded document.
func EmbeddedDocument(name, target string) *Builder {
	return newTarget(name, TypeEmbeddedDocument, target)
}

// Reference returns a new Field referencing a document.
func Reference(name, target string) *Builder {
	return newTarget(name, TypeReference, target)
}

// CachedReference returns a new Field referencing a document whose
// selected fields are cached alongside the reference.
func CachedReference(name, target string) *Builder {
	return newTarget(name, TypeCachedReference, target)
}

// LazyReference returns a new Field referencing a document that is
// fetched on demand.
func LazyReference(name, target string) *Builder {
	return newTarget(name, TypeLazyReference, target)
}

// GenericReference returns a new Field referencing one of the given documents.
func GenericReference(name string, choices ...string) *Builder {
	return newGeneric(name, TypeGenericReference, choices)
}

// GenericEmbeddedDocument returns a new Field embedding one of the given documents.
func GenericEmbeddedDocument(name string, choices ...string) *Builder {
	return newGeneric(name, TypeGenericEmbeddedDocument, choices)
}

// Custom returns a new Field of a user-defined kind. Custom kinds have no
// GraphQL mapping and are reported by the converter.
func Custom(name, kind string) *Builder {
	b := newBuilder(name, TypeOther)
	b.desc.Custom = kind
	return b
}

func newTarget(name string, t Type, target string) *Builder {
	b := newBuilder(name, t)
	b.desc.Target = target
	if target == "" {
		b.desc.Err = fmt.Errorf("%s requires a target document", t)
	}
	return b
}

func newGeneric(name string, t Type, choices []string) *Builder {
	b := newBuilder(name, t)
	b.desc.Choices = slices.Clone(choices)
	seen := make(map[string]bool, len(choices))
	for _, c := range choices {
		switch {
		case c == "":
			b.desc.Err = fmt.Errorf("%s has an empty choice", t)
		case seen[c]:
			b.desc.Err = fmt.Errorf("%s has duplicate choice %q", t, c)
		}
		if b.desc.Err != nil {
			return b
		}
		seen[c] = true
	}
	return b
}

// Required indicates that this field is required.
func (b *Builder) Required() *Builder {
	b.desc.Required = true
	return b
}

// DBField sets the storage name of the field.
func (b *Builder) DBField(name string) *Builder {
	b.desc.DBField = name
	return b
}

// Comment sets the help text of the field.
func (b *Builder) Comment(c string) *Builder {
	b.desc.Comment = c
	return b
}

// Owner sets the owning model of a field built outside a model, such as
// a field converted on its own. Loading a model overrides it.
func (b *Builder) Owner(model string) *Builder {
	b.desc.SetOwner(model)
	return b
}

// Descriptor implements the docgraph.Field interface by returning its descriptor.
func (b *Builder) Descriptor() *Descriptor {
	return b.desc
}
