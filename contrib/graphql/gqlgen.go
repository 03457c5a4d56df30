package graphql

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// ScalarPackage is the Go package holding the scalar marshalers and the
// fixed object value types.
const ScalarPackage = "github.com/syssam/docgraph/contrib/graphql"

// GQLGenConfig is the part of gqlgen.yml that model bindings touch. The
// other keys are kept in Extra and written back when the file is saved.
type GQLGenConfig struct {
	SchemaFilename StringList              `yaml:"schema,omitempty"`
	Exec           PackageConfig           `yaml:"exec,omitempty"`
	Model          PackageConfig           `yaml:"model,omitempty"`
	Resolver       ResolverConfig          `yaml:"resolver,omitempty"`
	Autobind       []string                `yaml:"autobind,omitempty"`
	Models         map[string]TypeMapEntry `yaml:"models,omitempty"`
	Extra          map[string]any          `yaml:",inline"`
}

// PackageConfig names a generated file and its package.
type PackageConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
}

// ResolverConfig configures the resolver generation.
type ResolverConfig struct {
	Filename string `yaml:"filename,omitempty"`
	Package  string `yaml:"package,omitempty"`
	Layout   string `yaml:"layout,omitempty"`
	DirName  string `yaml:"dir,omitempty"`
}

// TypeMapEntry binds a GraphQL type to Go types.
type TypeMapEntry struct {
	Model  StringList              `yaml:"model,omitempty"`
	Fields map[string]TypeMapField `yaml:"fields,omitempty"`
	Extra  map[string]any          `yaml:",inline"`
}

// TypeMapField configures a single field of a bound type.
type TypeMapField struct {
	Resolver  bool           `yaml:"resolver,omitempty"`
	FieldName string         `yaml:"fieldName,omitempty"`
	Extra     map[string]any `yaml:",inline"`
}

// StringList is a YAML value holding a string or a list of strings.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	default:
		return fmt.Errorf("expected string or list, got %v", node.Kind)
	}
}

// MarshalYAML implements yaml.Marshaler.
func (s StringList) MarshalYAML() (any, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	return []string(s), nil
}

// LoadGQLGenConfig loads a gqlgen.yml file. A missing file yields an
// empty configuration.
func LoadGQLGenConfig(path string) (*GQLGenConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GQLGenConfig{Models: make(map[string]TypeMapEntry)}, nil
		}
		return nil, fmt.Errorf("read gqlgen config: %w", err)
	}
	var cfg GQLGenConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse gqlgen config: %w", err)
	}
	if cfg.Models == nil {
		cfg.Models = make(map[string]TypeMapEntry)
	}
	return &cfg, nil
}

// SaveGQLGenConfig writes a gqlgen.yml file, creating its directory.
func SaveGQLGenConfig(path string, cfg *GQLGenConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal gqlgen config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// AddSchemaPath adds a schema path if not already present.
func (c *GQLGenConfig) AddSchemaPath(path string) {
	if !slices.Contains(c.SchemaFilename, path) {
		c.SchemaFilename = append(c.SchemaFilename, path)
	}
}

// AddAutobind adds a package to the autobind list if not already present.
func (c *GQLGenConfig) AddAutobind(pkg string) {
	if !slices.Contains(c.Autobind, pkg) {
		c.Autobind = append(c.Autobind, pkg)
	}
}

// SetModel binds a GraphQL type to a Go type.
func (c *GQLGenConfig) SetModel(typeName, modelPath string) {
	if c.Models == nil {
		c.Models = make(map[string]TypeMapEntry)
	}
	entry := c.Models[typeName]
	if !slices.Contains(entry.Model, modelPath) {
		entry.Model = append(entry.Model, modelPath)
	}
	c.Models[typeName] = entry
}

// Bind adds the bindings of a built schema:
//   - the schema path
//   - the custom scalars to their marshalers in ScalarPackage
//   - the fixed geo-spatial and file objects to their value types
//   - every model object to the type of the same name in modelsPkg
//     (skipped when modelsPkg is empty)
//
// Lazy-reference fields are marked as resolved fields.
func (c *GQLGenConfig) Bind(s *Schema, schemaPath, modelsPkg string) {
	if schemaPath != "" {
		c.AddSchemaPath(schemaPath)
	}
	for _, sc := range s.Scalars {
		c.SetModel(sc.Name, ScalarPackage+"."+sc.Name)
	}
	values := map[*Object]string{
		PointFieldType:        "Point",
		PolygonFieldType:      "Polygon",
		MultiPolygonFieldType: "MultiPolygon",
		FileFieldType:         "File",
	}
	for _, o := range s.Fixed {
		if v, ok := values[o]; ok {
			c.SetModel(o.Name, ScalarPackage+"."+v)
		}
	}
	if modelsPkg == "" {
		return
	}
	c.AddAutobind(modelsPkg)
	for _, o := range s.Objects {
		c.SetModel(o.Name, modelsPkg+"."+o.Name)
		for _, f := range o.Fields {
			if ft, ok := f.Type.(*Field); ok && ft.Resolver != nil {
				entry := c.Models[o.Name]
				if entry.Fields == nil {
					entry.Fields = make(map[string]TypeMapField)
				}
				fc := entry.Fields[f.Name]
				fc.Resolver = true
				entry.Fields[f.Name] = fc
				c.Models[o.Name] = entry
			}
		}
	}
}
