package graphql_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/syssam/docgraph/contrib/graphql"
	"github.com/syssam/docgraph/internal/testmodels"
)

func TestStringList(t *testing.T) {
	t.Parallel()
	var v struct {
		One  graphql.StringList `yaml:"one"`
		Many graphql.StringList `yaml:"many"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("one: a\nmany: [b, c]\n"), &v))
	assert.Equal(t, graphql.StringList{"a"}, v.One)
	assert.Equal(t, graphql.StringList{"b", "c"}, v.Many)

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(out), "one: a\n")

	err = yaml.Unmarshal([]byte("one: {a: b}\n"), &v)
	assert.Error(t, err)
}

func TestGQLGenConfig(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	path := filepath.Join(dir, "gqlgen.yml")

	cfg, err := graphql.LoadGQLGenConfig(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg.Models)

	require.NoError(t, os.WriteFile(path, []byte(`schema: schema.graphql
exec:
  filename: generated.go
  package: graph
models:
  Query:
    model: example.com/graph.Query
`), 0o644))
	cfg, err = graphql.LoadGQLGenConfig(path)
	require.NoError(t, err)
	assert.Equal(t, graphql.StringList{"schema.graphql"}, cfg.SchemaFilename)
	assert.Equal(t, "graph", cfg.Exec.Package)

	s := build(t, testmodels.All()...)
	cfg.Bind(s, "docgraph.graphql", "example.com/models")
	cfg.Bind(s, "docgraph.graphql", "example.com/models")

	assert.Equal(t, graphql.StringList{"schema.graphql", "docgraph.graphql"}, cfg.SchemaFilename)
	assert.Equal(t, []string{"example.com/models"}, cfg.Autobind)
	assert.Equal(t, graphql.StringList{graphql.ScalarPackage + ".JSONString"}, cfg.Models["JSONString"].Model)
	assert.Equal(t, graphql.StringList{graphql.ScalarPackage + ".DateTime"}, cfg.Models["DateTime"].Model)
	assert.Equal(t, graphql.StringList{graphql.ScalarPackage + ".Point"}, cfg.Models["PointFieldType"].Model)
	assert.Equal(t, graphql.StringList{"example.com/models.Editor"}, cfg.Models["Editor"].Model)
	assert.True(t, cfg.Models["Editor"].Fields["company"].Resolver)
	assert.Equal(t, graphql.StringList{"example.com/graph.Query"}, cfg.Models["Query"].Model)

	out := filepath.Join(dir, "nested", "gqlgen.yml")
	require.NoError(t, graphql.SaveGQLGenConfig(out, cfg))
	saved, err := graphql.LoadGQLGenConfig(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Models, saved.Models)
	assert.Equal(t, cfg.SchemaFilename, saved.SchemaFilename)
}

func TestGQLGenConfigKeepsUnknownKeys(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "gqlgen.yml")
	require.NoError(t, os.WriteFile(path, []byte(`schema: a.graphql
omit_getters: true
federation:
  filename: fed.go
models:
  Editor:
    model: example.com/models.Editor
    extraFields:
      Secret:
        type: string
    fields:
      company:
        fieldName: Publisher
        batch: true
`), 0o644))
	cfg, err := graphql.LoadGQLGenConfig(path)
	require.NoError(t, err)
	cfg.Bind(build(t, testmodels.Editor{}, testmodels.Publisher{}), "docgraph.graphql", "example.com/models")
	require.NoError(t, graphql.SaveGQLGenConfig(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved map[string]any
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, true, saved["omit_getters"])
	assert.Equal(t, map[string]any{"filename": "fed.go"}, saved["federation"])

	cfg, err = graphql.LoadGQLGenConfig(path)
	require.NoError(t, err)
	editor := cfg.Models["Editor"]
	assert.Contains(t, editor.Extra, "extraFields")
	company := editor.Fields["company"]
	assert.True(t, company.Resolver)
	assert.Equal(t, "Publisher", company.FieldName)
	assert.Equal(t, true, company.Extra["batch"])
}

func TestGQLGenConfigBindWithoutModels(t *testing.T) {
	t.Parallel()
	cfg := &graphql.GQLGenConfig{}
	cfg.Bind(build(t, testmodels.Editor{}, testmodels.Publisher{}), "", "")
	assert.Empty(t, cfg.SchemaFilename)
	assert.Empty(t, cfg.Autobind)
	assert.Contains(t, cfg.Models, "FileFieldType")
	assert.NotContains(t, cfg.Models, "Editor")
}

func TestLoadGQLGenConfigInvalid(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "gqlgen.yml")
	require.NoError(t, os.WriteFile(path, []byte("models: [\n"), 0o644))
	_, err := graphql.LoadGQLGenConfig(path)
	assert.ErrorContains(t, err, "parse gqlgen config")
}
