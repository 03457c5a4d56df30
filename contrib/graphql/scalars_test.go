package graphql_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/docgraph/contrib/graphql"
)

func TestJSONString(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	graphql.MarshalJSONString(map[string]any{"a": 1}).MarshalGQL(&buf)
	assert.Equal(t, `"{\"a\":1}"`, buf.String())

	buf.Reset()
	graphql.MarshalJSONString(make(chan int)).MarshalGQL(&buf)
	assert.Equal(t, "null", buf.String())

	v, err := graphql.UnmarshalJSONString(`{"a":[1,2]}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{float64(1), float64(2)}}, v)

	_, err = graphql.UnmarshalJSONString(42)
	assert.Error(t, err)
	_, err = graphql.UnmarshalJSONString("{")
	assert.Error(t, err)
}

func TestDateTime(t *testing.T) {
	t.Parallel()
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	var buf bytes.Buffer
	graphql.MarshalDateTime(ts).MarshalGQL(&buf)
	assert.Equal(t, `"2020-01-02T03:04:05Z"`, buf.String())

	buf.Reset()
	graphql.MarshalDateTime(time.Time{}).MarshalGQL(&buf)
	assert.Equal(t, "null", buf.String())

	got, err := graphql.UnmarshalDateTime("2020-01-02T03:04:05Z")
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
}

func TestNewPoint(t *testing.T) {
	t.Parallel()
	p := graphql.NewPoint(1.5, -2)
	assert.Equal(t, "Point", p.Type)
	assert.Equal(t, []float64{1.5, -2}, p.Coordinates)
}
