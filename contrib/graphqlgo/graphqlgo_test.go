package graphqlgo_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dg "github.com/syssam/docgraph/contrib/graphql"
	"github.com/syssam/docgraph/contrib/graphqlgo"
	"github.com/syssam/docgraph/internal/testmodels"
	"github.com/syssam/docgraph/schema"
)

func build(t *testing.T) *dg.Schema {
	t.Helper()
	models, err := schema.Load(testmodels.All()...)
	require.NoError(t, err)
	b, err := dg.NewBuilder(nil, dg.WithStableUnionNames())
	require.NoError(t, err)
	require.NoError(t, b.Register(models...))
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

type lazyPublisher struct{ name string }

func (l lazyPublisher) Fetch(context.Context) (any, error) {
	return map[string]any{"name": l.name}, nil
}

type editor struct {
	ID        string
	FirstName string `bson:"fname"`
	LastName  string
	Company   dg.LazyReference
	Avatar    *dg.File
}

func (editor) TypeName() string { return "Editor" }

func TestTypes(t *testing.T) {
	t.Parallel()
	types, err := graphqlgo.New(build(t))
	require.NoError(t, err)

	editorType := types.Object("Editor")
	require.NotNil(t, editorType)
	fields := editorType.Fields()
	require.Contains(t, fields, "firstName")
	assert.Equal(t, "String!", fields["firstName"].Type.String())
	assert.Equal(t, "JSONString", fields["metadata"].Type.String())
	assert.Equal(t, "FileFieldType", fields["avatar"].Type.String())

	reporter := types.Object("Reporter").Fields()
	assert.Equal(t, "ArticleConnection", reporter["articles"].Type.String())
	assert.Len(t, reporter["articles"].Args, 4)
	assert.Equal(t, "[EmbeddedArticle]", reporter["embeddedListArticles"].Type.String())

	union := types.Union("ReporterGenericReferenceUnion")
	require.NotNil(t, union)
	assert.Len(t, union.Types(), 2)

	assert.Nil(t, types.Object("Missing"))
	assert.Nil(t, types.Union("Missing"))

	_, err = graphqlgo.New(nil)
	assert.Error(t, err)
	_, err = graphqlgo.New(build(t), graphqlgo.WithTypeResolver(nil))
	assert.Error(t, err)
}

func TestExecute(t *testing.T) {
	t.Parallel()
	types, err := graphqlgo.New(build(t))
	require.NoError(t, err)

	ann := editor{
		ID:        "e1",
		FirstName: "Ann",
		LastName:  "Lee",
		Company:   lazyPublisher{name: "Daily"},
		Avatar:    &dg.File{ContentType: "image/png", MD5: "abc", ChunkSize: 255},
	}
	reporter := map[string]any{
		"first_name": "Rob",
		"last_name":  "Roe",
		"awards":     []string{"pulitzer"},
		"articles": []any{
			map[string]any{"headline": "First"},
			map[string]any{"headline": "Second"},
			map[string]any{"headline": "Third"},
		},
		"generic_reference": ann,
		"generic_embedded_document": map[string]any{
			"__typename": "EmbeddedFoo",
			"bar":        "baz",
		},
	}
	s, err := types.Schema(graphql.Fields{
		"editor": &graphql.Field{
			Type: types.Object("Editor"),
			Resolve: func(graphql.ResolveParams) (any, error) {
				return map[string]any{
					"id":        "e2",
					"fname":     "Eve",
					"last_name": "Moe",
					"metadata":  map[string]any{"k": 1},
				}, nil
			},
		},
		"reporter": &graphql.Field{
			Type:    types.Object("Reporter"),
			Resolve: func(graphql.ResolveParams) (any, error) { return reporter, nil },
		},
	})
	require.NoError(t, err)

	res := graphql.Do(graphql.Params{
		Schema:  s,
		Context: context.Background(),
		RequestString: `{
			editor { id firstName lastName metadata company { name } }
			reporter {
				firstName
				awards
				articles(first: 2) {
					edges { node { headline } }
					pageInfo { hasNextPage hasPreviousPage }
				}
				genericReference {
					__typename
					... on Editor { firstName avatar { contentType md5 chunkSize } company { name } }
				}
				genericEmbeddedDocument {
					... on EmbeddedFoo { bar }
				}
			}
		}`,
	})
	require.Empty(t, res.Errors)
	got, err := json.Marshal(res.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"editor": {
			"id": "e2",
			"firstName": "Eve",
			"lastName": "Moe",
			"metadata": "{\"k\":1}",
			"company": null
		},
		"reporter": {
			"firstName": "Rob",
			"awards": ["pulitzer"],
			"articles": {
				"edges": [{"node": {"headline": "First"}}, {"node": {"headline": "Second"}}],
				"pageInfo": {"hasNextPage": true, "hasPreviousPage": false}
			},
			"genericReference": {
				"__typename": "Editor",
				"firstName": "Ann",
				"avatar": {"contentType": "image/png", "md5": "abc", "chunkSize": 255},
				"company": {"name": "Daily"}
			},
			"genericEmbeddedDocument": {"bar": "baz"}
		}
	}`, string(got))
}

func TestPaginate(t *testing.T) {
	t.Parallel()
	items := []any{"a", "b", "c", "d"}
	nodes := func(conn map[string]any) []any {
		var out []any
		for _, e := range conn["edges"].([]any) {
			out = append(out, e.(map[string]any)["node"])
		}
		return out
	}
	two := 2

	all := graphqlgo.Paginate(items, graphqlgo.PageArgs{})
	assert.Equal(t, items, nodes(all))
	info := all["pageInfo"].(map[string]any)
	assert.False(t, info["hasNextPage"].(bool))
	assert.False(t, info["hasPreviousPage"].(bool))

	first := graphqlgo.Paginate(items, graphqlgo.PageArgs{First: &two})
	assert.Equal(t, []any{"a", "b"}, nodes(first))
	end := first["pageInfo"].(map[string]any)["endCursor"].(string)

	next := graphqlgo.Paginate(items, graphqlgo.PageArgs{After: end, First: &two})
	assert.Equal(t, []any{"c", "d"}, nodes(next))
	info = next["pageInfo"].(map[string]any)
	assert.False(t, info["hasNextPage"].(bool))
	assert.True(t, info["hasPreviousPage"].(bool))

	last := graphqlgo.Paginate(items, graphqlgo.PageArgs{Last: &two})
	assert.Equal(t, []any{"c", "d"}, nodes(last))
	start := last["pageInfo"].(map[string]any)["startCursor"].(string)

	before := graphqlgo.Paginate(items, graphqlgo.PageArgs{Before: start})
	assert.Equal(t, []any{"a", "b"}, nodes(before))

	empty := graphqlgo.Paginate(nil, graphqlgo.PageArgs{After: "garbage"})
	assert.Empty(t, nodes(empty))
	assert.Nil(t, empty["pageInfo"].(map[string]any)["startCursor"])
}
