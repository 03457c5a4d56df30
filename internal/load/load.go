// Package load reads document model definitions from YAML files.
//
//	models:
//	  - name: Editor
//	    description: An Editor of a publication.
//	    fields:
//	      - name: first_name
//	        type: string
//	        required: true
//	        db_field: fname
//	        help: Editor's first name.
//	      - name: company
//	        type: lazy_reference
//	        target: Publisher
//	      - name: tags
//	        type: list
//	        of: {type: string}
//
// Field types are the field kind names, matched case-insensitively with
// or without underscores and a "Field" suffix ("ReferenceField",
// "reference"). Unknown types load as custom kinds and fail conversion.
package load

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/syssam/docgraph"
	"github.com/syssam/docgraph/schema"
	"github.com/syssam/docgraph/schema/field"
)

type documentFile struct {
	Models []modelDef `yaml:"models"`
}

type modelDef struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Embedded    bool       `yaml:"embedded"`
	Connection  bool       `yaml:"connection"`
	Fields      []fieldDef `yaml:"fields"`
}

type fieldDef struct {
	Name     string    `yaml:"name"`
	Type     string    `yaml:"type"`
	Required bool      `yaml:"required"`
	DBField  string    `yaml:"db_field"`
	Help     string    `yaml:"help"`
	Target   string    `yaml:"target"`
	Choices  []string  `yaml:"choices"`
	Of       *fieldDef `yaml:"of"`
}

// Parse parses the models of one definition file. source names the file
// in errors.
func Parse(data []byte, source string) ([]*schema.Model, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("load: file %s is empty", source)
	}
	var doc documentFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("load: parse %s: %w", source, err)
	}
	models := make([]*schema.Model, 0, len(doc.Models))
	for _, md := range doc.Models {
		fields := make([]*field.Descriptor, 0, len(md.Fields))
		for _, fd := range md.Fields {
			fields = append(fields, fd.builder().Descriptor())
		}
		m, err := schema.New(md.Name, fields...)
		if err != nil {
			return nil, fmt.Errorf("load: %s: model %q: %w", source, md.Name, err)
		}
		m.Description = md.Description
		m.Embedded = md.Embedded
		m.Connection = md.Connection && !md.Embedded
		models = append(models, m)
	}
	return models, nil
}

var scalarBuilders = map[field.Type]func(string) *field.Builder{
	field.TypeString:       field.String,
	field.TypeEmail:        field.Email,
	field.TypeURL:          field.URL,
	field.TypeUUID:         field.UUID,
	field.TypeObjectID:     field.ObjectID,
	field.TypeInt:          field.Int,
	field.TypeLong:         field.Long,
	field.TypeSequence:     field.Sequence,
	field.TypeBool:         field.Bool,
	field.TypeDecimal:      field.Decimal,
	field.TypeFloat:        field.Float,
	field.TypeDateTime:     field.DateTime,
	field.TypeDict:         field.Dict,
	field.TypePoint:        field.Point,
	field.TypePolygon:      field.Polygon,
	field.TypeMultiPolygon: field.MultiPolygon,
	field.TypeFile:         field.File,
}

func (d *fieldDef) builder() *field.Builder {
	t, ok := field.ParseType(d.Type)
	var b *field.Builder
	switch {
	case !ok:
		b = field.Custom(d.Name, d.Type)
	case scalarBuilders[t] != nil:
		b = scalarBuilders[t](d.Name)
	case t == field.TypeMap:
		b = field.Map(d.Name, d.Of.builderOrNil())
	case t == field.TypeList:
		b = field.List(d.Name, d.Of.builderOrNil())
	case t == field.TypeEmbeddedDocumentList:
		b = field.EmbeddedDocumentList(d.Name, d.Target)
	case t == field.TypeEmbeddedDocument:
		b = field.EmbeddedDocument(d.Name, d.Target)
	case t == field.TypeReference:
		b = field.Reference(d.Name, d.Target)
	case t == field.TypeCachedReference:
		b = field.CachedReference(d.Name, d.Target)
	case t == field.TypeLazyReference:
		b = field.LazyReference(d.Name, d.Target)
	case t == field.TypeGenericReference:
		b = field.GenericReference(d.Name, d.Choices...)
	case t == field.TypeGenericEmbeddedDocument:
		b = field.GenericEmbeddedDocument(d.Name, d.Choices...)
	default:
		b = field.Custom(d.Name, d.Type)
	}
	if d.Required {
		b.Required()
	}
	if d.DBField != "" {
		b.DBField(d.DBField)
	}
	if d.Help != "" {
		b.Comment(d.Help)
	}
	return b
}

func (d *fieldDef) builderOrNil() *field.Builder {
	if d == nil {
		return nil
	}
	return d.builder()
}

// Files loads the given files of fsys concurrently. Models are returned
// in file order, then declaration order. A model name defined twice is
// an error.
func Files(ctx context.Context, fsys fs.FS, paths ...string) ([]*schema.Model, error) {
	results := make([][]*schema.Model, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := fs.ReadFile(fsys, path)
			if err != nil {
				return fmt.Errorf("load: read %s: %w", path, err)
			}
			models, err := Parse(data, path)
			if err != nil {
				return err
			}
			results[i] = models
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	var (
		models []*schema.Model
		seen   = make(map[string]string)
	)
	for i, ms := range results {
		for _, m := range ms {
			if prev, ok := seen[m.Name]; ok {
				return nil, fmt.Errorf("load: %s (first defined in %s): %w", paths[i], prev, docgraph.NewRegistryError(m.Name))
			}
			seen[m.Name] = paths[i]
			models = append(models, m)
		}
	}
	return models, nil
}

// FS loads every .yml and .yaml file of fsys, in lexical order.
func FS(ctx context.Context, fsys fs.FS) ([]*schema.Model, error) {
	paths, err := DefinitionFiles(fsys)
	if err != nil {
		return nil, err
	}
	return Files(ctx, fsys, paths...)
}

// Dir loads every definition file under dir.
func Dir(ctx context.Context, dir string) ([]*schema.Model, error) {
	return FS(ctx, os.DirFS(dir))
}

// DefinitionFiles returns the paths of the definition files of fsys.
func DefinitionFiles(fsys fs.FS) ([]string, error) {
	var paths []string
	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && IsDefinitionFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	return paths, nil
}

// IsDefinitionFile reports if path names a YAML definition file.
func IsDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}
