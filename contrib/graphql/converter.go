package graphql

import (
	"errors"
	"log/slog"

	"github.com/syssam/docgraph"
	"github.com/syssam/docgraph/schema/field"
)

// Converter converts document field descriptors to GraphQL types.
//
// A nil Type with a nil error means the field depends on a model that is
// not registered yet; the caller converts it again after registering
// more models.
type Converter struct {
	cfg *Config
}

// NewConverter returns a converter configured with the given options.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Converter{cfg: cfg}, nil
}

var defaultConverter = &Converter{cfg: &Config{UnionNamer: UniqueUnionName, MaxPasses: DefaultMaxPasses}}

// Convert converts f with the default converter.
func Convert(f *field.Descriptor, r *Registry) (Type, error) {
	return defaultConverter.Convert(f, r)
}

// scalars maps the leaf field kinds to their scalar types.
var scalars = map[field.Type]*Scalar{
	field.TypeString:   String,
	field.TypeEmail:    String,
	field.TypeURL:      String,
	field.TypeUUID:     ID,
	field.TypeObjectID: ID,
	field.TypeInt:      Int,
	field.TypeLong:     Int,
	field.TypeSequence: Int,
	field.TypeBool:     Boolean,
	field.TypeDecimal:  Float,
	field.TypeFloat:    Float,
	field.TypeDateTime: DateTime,
	field.TypeDict:     JSONString,
	field.TypeMap:      JSONString,
}

// fixed maps the geo-spatial and file kinds to their fixed objects.
var fixed = map[field.Type]*Object{
	field.TypePoint:        PointFieldType,
	field.TypePolygon:      PolygonFieldType,
	field.TypeMultiPolygon: MultiPolygonFieldType,
	field.TypeFile:         FileFieldType,
}

// Convert returns the GraphQL type of the field. Reference kinds convert
// to a *Deferred, resolved with Registry.Resolve. List and generic kinds
// resolve their references immediately and return nil while a target is
// missing. Unknown kinds fail with a *docgraph.ConversionError.
func (c *Converter) Convert(f *field.Descriptor, r *Registry) (Type, error) {
	if f == nil {
		return nil, docgraph.NewFieldError("", "", errors.New("nil field"))
	}
	if f.Err != nil {
		return nil, docgraph.NewFieldError(f.Owner, f.Name, f.Err)
	}
	if s, ok := scalars[f.Type]; ok {
		return &Field{Type: s, Required: f.Required, Description: describe(f, "")}, nil
	}
	if obj, ok := fixed[f.Type]; ok {
		return &Field{Type: obj}, nil
	}
	switch f.Type {
	case field.TypeList, field.TypeEmbeddedDocumentList:
		return c.list(f, r)
	case field.TypeGenericReference, field.TypeGenericEmbeddedDocument:
		return c.union(f, r)
	case field.TypeEmbeddedDocument, field.TypeReference, field.TypeCachedReference:
		return &Deferred{Model: f.Target, Source: f}, nil
	case field.TypeLazyReference:
		return &Deferred{Model: f.Target, Source: f, Lazy: true}, nil
	default:
		return nil, docgraph.NewConversionError(f.Owner, f.Name, f.KindName())
	}
}

// list converts the inner field of a list and wraps it. Lists of node
// objects convert to their connection.
func (c *Converter) list(f *field.Descriptor, r *Registry) (Type, error) {
	if f.Inner == nil {
		return nil, docgraph.NewFieldError(f.Owner, f.Name, errors.New("list without element field"))
	}
	inner, err := c.Convert(f.Inner, r)
	if err != nil {
		return nil, err
	}
	var of Type
	switch t := inner.(type) {
	case nil:
		return nil, nil
	case *Field:
		of = t.Type
	case *List:
		of = t
	case *Deferred:
		resolved := r.Resolve(t)
		if resolved == nil {
			return nil, nil
		}
		if obj, ok := resolved.Type.(*Object); ok && obj.Node {
			return r.Connection(obj), nil
		}
		of = resolved.Type
	default:
		of = inner
	}
	return &List{Of: of, Required: f.Required, Description: describe(f, "")}, nil
}

// union builds the union of the registered candidates of a generic field.
// Choices are unique by name; choices registered as the same object give
// one member.
func (c *Converter) union(f *field.Descriptor, r *Registry) (Type, error) {
	var (
		members []*Object
		seen    = make(map[*Object]bool)
	)
	for _, choice := range f.Choices {
		d := &Deferred{Model: choice, Source: f.Candidate(choice)}
		resolved := r.Resolve(d)
		if resolved == nil {
			if c.cfg.StrictUnions {
				return nil, nil
			}
			c.logger().Debug("graphql: dropping unregistered union candidate", "field", f.String(), "model", choice)
			continue
		}
		obj := resolved.Type.(*Object)
		if !seen[obj] {
			seen[obj] = true
			members = append(members, obj)
		}
	}
	if len(members) == 0 {
		return nil, nil
	}
	return &Field{Type: &Union{Name: c.cfg.UnionNamer(f), Types: members}}, nil
}

func (c *Converter) logger() *slog.Logger {
	if c.cfg.Logger != nil {
		return c.cfg.Logger
	}
	return slog.Default()
}
