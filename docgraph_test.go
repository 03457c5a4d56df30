package docgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/docgraph"
)

// TestDocumentDefaultMethods tests the default implementations of Document methods.
func TestDocumentDefaultMethods(t *testing.T) {
	t.Parallel()

	type TestDocument struct {
		docgraph.Document
	}

	d := TestDocument{}

	assert.Nil(t, d.Fields())
	assert.Nil(t, d.Mixin())
	assert.Equal(t, docgraph.Config{}, d.Config())

	_, ok := any(d).(docgraph.Embedder)
	assert.False(t, ok)
}

// TestEmbeddedDocument tests the EmbeddedDocument struct.
func TestEmbeddedDocument(t *testing.T) {
	t.Parallel()

	type TestEmbedded struct {
		docgraph.EmbeddedDocument
	}

	e := TestEmbedded{}
	assert.Nil(t, e.Fields())

	var _ docgraph.Embedder = e
}
