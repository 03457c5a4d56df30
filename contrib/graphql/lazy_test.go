package graphql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/docgraph/contrib/graphql"
	"github.com/syssam/docgraph/schema/field"
)

type publisher struct{ Name string }

type lazyRef struct {
	value any
	err   error
	calls int
}

func (l *lazyRef) Fetch(context.Context) (any, error) {
	l.calls++
	return l.value, l.err
}

type editorDoc struct {
	Company *lazyRef
	Owner   *lazyRef `bson:"owner_ref"`
	Tagged  any      `json:"sponsor,omitempty"`
	Name    string
}

type valuer map[string]any

func (v valuer) FieldValue(name string) (any, bool) {
	val, ok := v[name]
	return val, ok
}

func TestLazyResolver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	pub := &publisher{Name: "Daily"}

	t.Run("struct field", func(t *testing.T) {
		ref := &lazyRef{value: pub}
		resolve := graphql.LazyResolver(field.LazyReference("company", "Publisher").Descriptor())
		v, err := resolve(ctx, &editorDoc{Company: ref})
		require.NoError(t, err)
		assert.Same(t, pub, v)
		assert.Equal(t, 1, ref.calls)
	})

	t.Run("storage name", func(t *testing.T) {
		ref := &lazyRef{value: pub}
		fd := field.LazyReference("owner", "Publisher").DBField("owner_ref").Descriptor()
		v, err := graphql.LazyResolver(fd)(ctx, editorDoc{Owner: ref})
		require.NoError(t, err)
		assert.Same(t, pub, v)
	})

	t.Run("json tag", func(t *testing.T) {
		ref := &lazyRef{value: pub}
		v, err := graphql.LazyResolver(field.LazyReference("sponsor", "Publisher").Descriptor())(ctx, editorDoc{Tagged: ref})
		require.NoError(t, err)
		assert.Same(t, pub, v)
	})

	t.Run("map", func(t *testing.T) {
		ref := &lazyRef{value: pub}
		v, err := graphql.LazyResolver(field.LazyReference("company", "Publisher").Descriptor())(ctx, map[string]any{"company": ref})
		require.NoError(t, err)
		assert.Same(t, pub, v)
	})

	t.Run("field valuer", func(t *testing.T) {
		ref := &lazyRef{value: pub}
		v, err := graphql.LazyResolver(field.LazyReference("company", "Publisher").Descriptor())(ctx, valuer{"company": ref})
		require.NoError(t, err)
		assert.Same(t, pub, v)
	})

	t.Run("missing or nil", func(t *testing.T) {
		resolve := graphql.LazyResolver(field.LazyReference("company", "Publisher").Descriptor())
		for _, root := range []any{nil, &editorDoc{}, map[string]any{}, valuer{"company": nil}, 42} {
			v, err := resolve(ctx, root)
			require.NoError(t, err)
			assert.Nil(t, v)
		}
	})

	t.Run("fetch error", func(t *testing.T) {
		fetchErr := errors.New("gone")
		resolve := graphql.LazyResolver(field.LazyReference("company", "Publisher").Descriptor())
		_, err := resolve(ctx, map[string]any{"company": &lazyRef{err: fetchErr}})
		assert.ErrorIs(t, err, fetchErr)
	})

	t.Run("not a lazy reference", func(t *testing.T) {
		resolve := graphql.LazyResolver(field.LazyReference("name", "Publisher").Descriptor())
		_, err := resolve(ctx, editorDoc{Name: "Daily"})
		assert.ErrorContains(t, err, "not a lazy reference")
	})
}
