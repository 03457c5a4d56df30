package graphql

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sort"

	"github.com/vmihailenco/msgpack/v5"
)

// TypeMap maps type names to their field names and type references.
type TypeMap map[string]map[string]string

// Manifest is a snapshot of a built schema, stored between builds to
// report what a rebuild changed.
type Manifest struct {
	Types  TypeMap             `msgpack:"types"`
	Unions map[string][]string `msgpack:"unions"`
}

// Manifest returns the snapshot of the schema.
func (s *Schema) Manifest() *Manifest {
	m := &Manifest{
		Types:  make(TypeMap),
		Unions: make(map[string][]string),
	}
	for _, def := range s.Document().Definitions {
		if len(def.Types) > 0 {
			m.Unions[def.Name] = slices.Clone(def.Types)
		}
		if len(def.Fields) == 0 {
			continue
		}
		fields := make(map[string]string, len(def.Fields))
		for _, f := range def.Fields {
			fields[f.Name] = f.Type.String()
		}
		m.Types[def.Name] = fields
	}
	return m
}

// manifest has the fields of Manifest without its methods, so msgpack
// encodes it as a map instead of calling back into MarshalBinary.
type manifest Manifest

// MarshalBinary encodes the manifest with msgpack.
func (m *Manifest) MarshalBinary() ([]byte, error) {
	return msgpack.Marshal((*manifest)(m))
}

// UnmarshalBinary decodes a msgpack encoded manifest.
func (m *Manifest) UnmarshalBinary(data []byte) error {
	return msgpack.Unmarshal(data, (*manifest)(m))
}

// ReadManifest reads a manifest file. A missing file yields an empty
// manifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Manifest{Types: make(TypeMap), Unions: make(map[string][]string)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m := &Manifest{}
	if err := m.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	return m, nil
}

// WriteManifest writes the manifest file.
func WriteManifest(path string, m *Manifest) error {
	data, err := m.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ChangeKind classifies a manifest change.
type ChangeKind string

// Change kinds.
const (
	Added   ChangeKind = "added"
	Removed ChangeKind = "removed"
	Changed ChangeKind = "changed"
)

// Change is a difference between two manifests. Field is empty for
// changes of whole types.
type Change struct {
	Kind  ChangeKind
	Type  string
	Field string
	Old   string
	New   string
}

func (c Change) String() string {
	name := c.Type
	if c.Field != "" {
		name += "." + c.Field
	}
	if c.Old == "" && c.New == "" {
		switch c.Kind {
		case Added:
			return "+ " + name
		case Removed:
			return "- " + name
		}
	}
	switch c.Kind {
	case Added:
		return fmt.Sprintf("+ %s %s", name, c.New)
	case Removed:
		return fmt.Sprintf("- %s %s", name, c.Old)
	default:
		return fmt.Sprintf("~ %s %s -> %s", name, c.Old, c.New)
	}
}

// Diff returns the changes from old to m, sorted by type and field.
func (m *Manifest) Diff(old *Manifest) []Change {
	var changes []Change
	for name, fields := range m.Types {
		prev, ok := old.Types[name]
		if !ok {
			changes = append(changes, Change{Kind: Added, Type: name})
			continue
		}
		for f, t := range fields {
			switch pt, ok := prev[f]; {
			case !ok:
				changes = append(changes, Change{Kind: Added, Type: name, Field: f, New: t})
			case pt != t:
				changes = append(changes, Change{Kind: Changed, Type: name, Field: f, Old: pt, New: t})
			}
		}
		for f, pt := range prev {
			if _, ok := fields[f]; !ok {
				changes = append(changes, Change{Kind: Removed, Type: name, Field: f, Old: pt})
			}
		}
	}
	for name := range old.Types {
		if _, ok := m.Types[name]; !ok {
			changes = append(changes, Change{Kind: Removed, Type: name})
		}
	}
	for name, members := range m.Unions {
		prev, ok := old.Unions[name]
		switch {
		case !ok:
			changes = append(changes, Change{Kind: Added, Type: name, New: fmt.Sprint(members)})
		case !slices.Equal(prev, members):
			changes = append(changes, Change{Kind: Changed, Type: name, Old: fmt.Sprint(prev), New: fmt.Sprint(members)})
		}
	}
	for name, prev := range old.Unions {
		if _, ok := m.Unions[name]; !ok {
			changes = append(changes, Change{Kind: Removed, Type: name, Old: fmt.Sprint(prev)})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		if changes[i].Type != changes[j].Type {
			return changes[i].Type < changes[j].Type
		}
		return changes[i].Field < changes[j].Field
	})
	return changes
}
