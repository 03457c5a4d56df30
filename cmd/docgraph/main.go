// docgraph builds a GraphQL schema from YAML document model definitions.
//
//	docgraph -out graph/schema.graphql -gqlgen gqlgen.yml -models-pkg example.com/app/models ./models
//
// With -watch, the schema is rebuilt whenever a definition file changes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/docgraph/contrib/graphql"
	"github.com/syssam/docgraph/internal/load"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "docgraph: %v\n", err)
		}
		os.Exit(1)
	}
}

type options struct {
	dir       string
	out       string
	gqlgen    string
	modelsPkg string
	manifest  string
	watch     bool
	stable    bool
	strict    bool
	allowGaps bool
	maxPasses int
	debounce  time.Duration
	logger    *slog.Logger
	stdout    io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("docgraph", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := options{stdout: stdout}
	fs.StringVar(&opts.out, "out", "", "schema output file (stdout if empty)")
	fs.StringVar(&opts.gqlgen, "gqlgen", "", "gqlgen.yml file to update with the schema bindings")
	fs.StringVar(&opts.modelsPkg, "models-pkg", "", "Go package holding the model types, bound in gqlgen.yml")
	fs.StringVar(&opts.manifest, "manifest", "", "manifest file recording the built types; changes are logged")
	fs.BoolVar(&opts.watch, "watch", false, "rebuild when a definition file changes")
	fs.BoolVar(&opts.stable, "stable-union-names", false, "derive union names from the owning model and field")
	fs.BoolVar(&opts.strict, "strict-unions", false, "leave a union unresolved while any candidate is missing")
	fs.BoolVar(&opts.allowGaps, "allow-unresolved", false, "do not fail on fields whose target model is missing")
	fs.IntVar(&opts.maxPasses, "max-passes", graphql.DefaultMaxPasses, "resolution passes over pending fields")
	fs.DurationVar(&opts.debounce, "debounce", 200*time.Millisecond, "delay before rebuilding in watch mode")
	verbose := fs.Bool("v", false, "log debug messages")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: docgraph [flags] <models dir>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errors.New("expected one models directory")
	}
	opts.dir = fs.Arg(0)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	opts.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := generate(ctx, &opts); err != nil {
		if !opts.watch {
			return err
		}
		opts.logger.Error("build failed", "error", err)
	}
	if !opts.watch {
		return nil
	}
	return watch(ctx, &opts)
}

// generate runs one build of the models directory.
func generate(ctx context.Context, opts *options) error {
	models, err := load.Dir(ctx, opts.dir)
	if err != nil {
		return err
	}
	b, err := graphql.NewBuilder(nil, opts.builderOptions()...)
	if err != nil {
		return err
	}
	if err := b.Register(models...); err != nil {
		return err
	}
	s, err := b.Build()
	if err != nil {
		return err
	}
	if !opts.allowGaps {
		if err := s.Check(); err != nil {
			return err
		}
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if err := writeSchema(opts, s); err != nil {
		return err
	}
	if opts.gqlgen != "" {
		cfg, err := graphql.LoadGQLGenConfig(opts.gqlgen)
		if err != nil {
			return err
		}
		cfg.Bind(s, schemaPath(opts), opts.modelsPkg)
		if err := graphql.SaveGQLGenConfig(opts.gqlgen, cfg); err != nil {
			return err
		}
	}
	if opts.manifest != "" {
		if err := updateManifest(opts, s); err != nil {
			return err
		}
	}
	opts.logger.Info("schema built",
		"models", len(models),
		"unions", len(s.Unions),
		"connections", len(s.Connections),
		"unresolved", len(s.Unresolved),
	)
	return nil
}

func (opts *options) builderOptions() []graphql.Option {
	bopts := []graphql.Option{
		graphql.WithLogger(opts.logger),
		graphql.WithMaxPasses(opts.maxPasses),
	}
	if opts.stable {
		bopts = append(bopts, graphql.WithStableUnionNames())
	}
	if opts.strict {
		bopts = append(bopts, graphql.WithStrictUnions())
	}
	return bopts
}

func writeSchema(opts *options, s *graphql.Schema) error {
	sdl := s.SDL()
	if opts.out == "" {
		_, err := io.WriteString(opts.stdout, sdl)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(opts.out), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}
	return os.WriteFile(opts.out, []byte(sdl), 0o644)
}

// schemaPath returns the schema file as referenced from gqlgen.yml.
func schemaPath(opts *options) string {
	if opts.out == "" {
		return ""
	}
	rel, err := filepath.Rel(filepath.Dir(opts.gqlgen), opts.out)
	if err != nil {
		return opts.out
	}
	return filepath.ToSlash(rel)
}

func updateManifest(opts *options, s *graphql.Schema) error {
	old, err := graphql.ReadManifest(opts.manifest)
	if err != nil {
		return err
	}
	m := s.Manifest()
	for _, c := range m.Diff(old) {
		opts.logger.Info("schema changed", "change", c.String())
	}
	return graphql.WriteManifest(opts.manifest, m)
}

// watch rebuilds the schema on definition file changes until ctx is done.
func watch(ctx context.Context, opts *options) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()
	if err := addDirs(w, opts.dir); err != nil {
		return err
	}
	opts.logger.Info("watching for changes", "dir", opts.dir)

	timer := time.NewTimer(opts.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addDirs(w, ev.Name); err != nil {
						opts.logger.Warn("watch directory", "dir", ev.Name, "error", err)
					}
				}
			}
			if !load.IsDefinitionFile(ev.Name) || (ev.Has(fsnotify.Chmod) && !ev.Has(fsnotify.Write)) {
				continue
			}
			opts.logger.Debug("definition changed", "file", ev.Name, "op", ev.Op.String())
			timer.Reset(opts.debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			opts.logger.Warn("watch error", "error", err)
		case <-timer.C:
			if err := generate(ctx, opts); err != nil {
				opts.logger.Error("build failed", "error", err)
			}
		}
	}
}

// addDirs watches root and every directory below it.
func addDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
