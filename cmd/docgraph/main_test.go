package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/docgraph/contrib/graphql"
)

const models = `
models:
  - name: Publisher
    connection: true
    fields:
      - {name: name, type: string, required: true}
  - name: Editor
    fields:
      - {name: first_name, type: string, help: Editor's first name.}
      - {name: company, type: lazy_reference, target: Publisher}
      - {name: publishers, type: list, of: {type: reference, target: Publisher}}
      - {name: owner, type: generic_reference, choices: [Publisher, Editor]}
`

func writeModels(t *testing.T, dir, name, data string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644))
}

func TestRun(t *testing.T) {
	t.Parallel()
	dir, out := t.TempDir(), t.TempDir()
	writeModels(t, dir, "models.yml", models)
	var (
		stdout, stderr bytes.Buffer
		schemaFile     = filepath.Join(out, "graph", "schema.graphql")
		gqlgenFile     = filepath.Join(out, "gqlgen.yml")
		manifestFile   = filepath.Join(out, "schema.manifest")
	)
	err := run(context.Background(), []string{
		"-out", schemaFile,
		"-gqlgen", gqlgenFile,
		"-models-pkg", "example.com/app/models",
		"-manifest", manifestFile,
		"-stable-union-names",
		dir,
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "schema built")

	sdl, err := os.ReadFile(schemaFile)
	require.NoError(t, err)
	assert.Contains(t, string(sdl), "type Editor")
	assert.Contains(t, string(sdl), "type PublisherConnection")
	assert.Contains(t, string(sdl), "union EditorOwnerUnion")

	cfg, err := graphql.LoadGQLGenConfig(gqlgenFile)
	require.NoError(t, err)
	assert.Equal(t, graphql.StringList{"graph/schema.graphql"}, cfg.SchemaFilename)
	assert.Contains(t, cfg.Autobind, "example.com/app/models")
	assert.Equal(t, graphql.StringList{"example.com/app/models.Editor"}, cfg.Models["Editor"].Model)
	assert.True(t, cfg.Models["Editor"].Fields["company"].Resolver)

	m, err := graphql.ReadManifest(manifestFile)
	require.NoError(t, err)
	assert.Equal(t, "Publisher", m.Types["Editor"]["company"])

	// A second build with a new field logs the change.
	writeModels(t, dir, "models.yml", models+"      - {name: last_name, type: string}\n")
	stderr.Reset()
	require.NoError(t, run(context.Background(), []string{"-out", schemaFile, "-manifest", manifestFile, "-stable-union-names", dir}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "+ Editor.lastName String")
}

func TestRunStdout(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeModels(t, dir, "models.yaml", models)
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-v", dir}, &stdout, io.Discard))
	assert.Contains(t, stdout.String(), "type Publisher")
	assert.Contains(t, stdout.String(), "scalar")
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	t.Run("usage", func(t *testing.T) {
		var stderr bytes.Buffer
		err := run(context.Background(), nil, io.Discard, &stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "usage: docgraph")
	})
	t.Run("unresolved", func(t *testing.T) {
		dir := t.TempDir()
		writeModels(t, dir, "models.yml", "models:\n  - name: A\n    fields:\n      - {name: b, type: reference, target: B}\n")
		err := run(context.Background(), []string{dir}, io.Discard, io.Discard)
		assert.ErrorIs(t, err, graphql.ErrUnresolved)
		var stdout bytes.Buffer
		require.NoError(t, run(context.Background(), []string{"-allow-unresolved", dir}, &stdout, io.Discard))
		assert.NotContains(t, stdout.String(), "type A", "an object without fields is left out")
	})
	t.Run("unsupported", func(t *testing.T) {
		dir := t.TempDir()
		writeModels(t, dir, "models.yml", "models:\n  - name: A\n    fields:\n      - {name: b, type: UnsupportedCustomField}\n")
		err := run(context.Background(), []string{dir}, io.Discard, io.Discard)
		assert.ErrorContains(t, err, "UnsupportedCustomField")
	})
	t.Run("max passes", func(t *testing.T) {
		err := run(context.Background(), []string{"-max-passes", "0", t.TempDir()}, io.Discard, io.Discard)
		assert.Error(t, err)
	})
}

func TestWatch(t *testing.T) {
	t.Parallel()
	dir, out := t.TempDir(), t.TempDir()
	writeModels(t, dir, "models.yml", models)
	schemaFile := filepath.Join(out, "schema.graphql")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{"-watch", "-debounce", "10ms", "-out", schemaFile, "-stable-union-names", dir}, io.Discard, io.Discard)
	}()
	contains := func(s string) func() bool {
		return func() bool {
			data, err := os.ReadFile(schemaFile)
			return err == nil && bytes.Contains(data, []byte(s))
		}
	}
	require.Eventually(t, contains("type Editor"), 5*time.Second, 10*time.Millisecond)

	// The watcher may start after the first build, so the file is
	// rewritten until a rebuild picks it up.
	reporter := contains("type Reporter")
	require.Eventually(t, func() bool {
		if reporter() {
			return true
		}
		_ = os.WriteFile(filepath.Join(dir, "extra.yml"), []byte("models:\n  - name: Reporter\n    fields:\n      - {name: editor, type: reference, target: Editor}\n"), 0o644)
		return false
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
