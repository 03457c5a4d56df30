package mixin

import (
	"github.com/syssam/docgraph"
	"github.com/syssam/docgraph/schema/field"
)

// Schema is the default implementation for the docgraph.Mixin interface.
// It should be embedded in all custom mixin definitions.
//
// Example:
//
//	type MyMixin struct {
//	    mixin.Schema
//	}
//
//	func (MyMixin) Fields() []docgraph.Field {
//	    return []docgraph.Field{
//	        field.String("custom_field"),
//	    }
//	}
type Schema struct{}

// Fields returns the fields of the mixin.
func (Schema) Fields() []docgraph.Field { return nil }

var _ docgraph.Mixin = (*Schema)(nil)

// ID adds the required object id of a stored document.
type ID struct {
	Schema
}

// Fields returns the id field.
func (ID) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.ObjectID("id").
			Required().
			DBField("_id").
			Comment("The ID of the object."),
	}
}

// Time adds created_at and updated_at timestamp fields to a document.
type Time struct {
	Schema
}

// Fields returns the time tracking fields.
func (Time) Fields() []docgraph.Field {
	return append(CreateTime{}.Fields(), UpdateTime{}.Fields()...)
}

// CreateTime adds only the created_at timestamp field to a document.
type CreateTime struct {
	Schema
}

// Fields returns the created_at field.
func (CreateTime) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.DateTime("created_at").
			Comment("Timestamp when the document was created"),
	}
}

// UpdateTime adds only the updated_at timestamp field to a document.
type UpdateTime struct {
	Schema
}

// Fields returns the updated_at field.
func (UpdateTime) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.DateTime("updated_at").
			Comment("Timestamp when the document was last updated"),
	}
}

// SoftDelete adds a deleted_at field for soft deletion support.
type SoftDelete struct {
	Schema
}

// Fields returns the soft delete field.
func (SoftDelete) Fields() []docgraph.Field {
	return []docgraph.Field{
		field.DateTime("deleted_at").
			Comment("Timestamp when the document was soft deleted (null means not deleted)"),
	}
}

// TimeSoftDelete combines Time and SoftDelete mixins.
type TimeSoftDelete struct {
	Schema
}

// Fields returns all timestamp and soft delete fields.
func (TimeSoftDelete) Fields() []docgraph.Field {
	return append(Time{}.Fields(), SoftDelete{}.Fields()...)
}

// Required wraps a mixin and marks all its fields as required.
//
// Example:
//
//	mixin.Required(mixin.Time{})
func Required(m docgraph.Mixin) docgraph.Mixin {
	return requiredFields{Mixin: m}
}

type requiredFields struct {
	docgraph.Mixin
}

func (r requiredFields) Fields() []docgraph.Field {
	fields := r.Mixin.Fields()
	for i := range fields {
		fields[i].Descriptor().Required = true
	}
	return fields
}
