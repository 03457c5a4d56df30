package graphql

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-openapi/inflect"

	"github.com/syssam/docgraph/schema/field"
)

// Resolver loads the value of a field for the given parent object.
type Resolver func(ctx context.Context, root any) (any, error)

// LazyReference is a stored reference that is dereferenced on demand.
type LazyReference interface {
	Fetch(ctx context.Context) (any, error)
}

// FieldValuer is implemented by parent objects that expose their fields
// by name. ok is false if the object has no value for the field.
type FieldValuer interface {
	FieldValue(name string) (v any, ok bool)
}

// LazyResolver returns the resolver attached to lazy-reference fields.
// The value is looked up on the parent with FieldValue. A missing or nil
// value resolves to nil and a LazyReference is fetched. Any other value
// is an error.
func LazyResolver(f *field.Descriptor) Resolver {
	return func(ctx context.Context, root any) (any, error) {
		v, _ := FieldValue(root, f)
		if v == nil || isNil(v) {
			return nil, nil
		}
		ref, ok := v.(LazyReference)
		if !ok {
			return nil, fmt.Errorf("graphql: field %s holds %T, not a lazy reference", f, v)
		}
		return ref.Fetch(ctx)
	}
}

// FieldValue returns the value of a document field held by root, looked
// up by field name, then storage name, then GraphQL name.
func FieldValue(root any, f *field.Descriptor) (any, bool) {
	return Value(root, f.Name, f.StorageName(), FieldName(f))
}

// Value returns the first value root holds under one of the names.
// Maps are indexed by name. Structs are searched by the camel-cased
// name, then by bson and json tags.
func Value(root any, names ...string) (any, bool) {
	for i, name := range names {
		if name == "" || slices.Contains(names[:i], name) {
			continue
		}
		if v, ok := lookup(root, name); ok {
			return v, true
		}
	}
	return nil, false
}

// lookup returns the value of the named field of root.
func lookup(root any, name string) (any, bool) {
	switch r := root.(type) {
	case nil:
		return nil, false
	case FieldValuer:
		return r.FieldValue(name)
	case map[string]any:
		v, ok := r[name]
		return v, ok
	}
	rv := reflect.ValueOf(root)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	if fv := rv.FieldByName(inflect.Camelize(name)); fv.IsValid() && fv.CanInterface() {
		return fv.Interface(), true
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		for _, key := range []string{"bson", "json"} {
			if tagName(sf.Tag.Get(key)) == name {
				return rv.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}

func tagName(tag string) string {
	name, _, _ := strings.Cut(tag, ",")
	return name
}

func isNil(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
