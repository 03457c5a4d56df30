// Package mixin provides reusable field sets for documents.
//
// # Built-in Mixins
//
//	// ID mixin: Adds the object id
//	mixin.ID{}
//
//	// Time mixin: Adds created_at and updated_at timestamps
//	mixin.Time{}
//
//	// SoftDelete mixin: Adds deleted_at for soft deletes
//	mixin.SoftDelete{}
//
// # Using Mixins
//
// Mixins are applied to documents via the Mixin() method. Mixed-in fields
// come before the document's own fields:
//
//	type Editor struct{ docgraph.Document }
//
//	func (Editor) Mixin() []docgraph.Mixin {
//	    return []docgraph.Mixin{
//	        mixin.ID{},
//	        mixin.Time{},
//	    }
//	}
package mixin
