package props

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// MapLayer is an in-memory enumerable layer over a flat map of dotted
// keys. It backs programmatic defaults, tests, and the file-based layers,
// which parse into nested maps and flatten them here.
type MapLayer struct {
	name   string
	values map[string]any
}

// NewMapLayer creates a named layer holding a copy of values. Keys are
// dotted paths; values may be any type convertible by the merge.
func NewMapLayer(name string, values map[string]any) *MapLayer {
	l := &MapLayer{name: name, values: make(map[string]any, len(values))}
	for k, v := range values {
		l.values[k] = v
	}
	return l
}

// NewTOMLLayer parses TOML data into a layer, flattening nested tables
// into dotted keys.
func NewTOMLLayer(name string, data []byte) (*MapLayer, error) {
	nested := make(map[string]any)
	if err := toml.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("failed to parse TOML layer %q: %w", name, err)
	}
	return NewMapLayer(name, flattenMap(nested, "")), nil
}

// LoadTOMLLayer reads and parses a TOML file into a layer named after the
// file path.
func LoadTOMLLayer(path string) (*MapLayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read TOML layer '%s': %w", path, err)
	}
	return NewTOMLLayer(path, data)
}

// NewYAMLLayer parses YAML data into a layer, flattening nested mappings
// into dotted keys.
func NewYAMLLayer(name string, data []byte) (*MapLayer, error) {
	nested := make(map[string]any)
	if err := yaml.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("failed to parse YAML layer %q: %w", name, err)
	}
	return NewMapLayer(name, flattenMap(nested, "")), nil
}

// LoadYAMLLayer reads and parses a YAML file into a layer named after the
// file path.
func LoadYAMLLayer(path string) (*MapLayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML layer '%s': %w", path, err)
	}
	return NewYAMLLayer(path, data)
}

// NewEnvironLayer captures process environment variables carrying the
// given prefix. Variable names are mapped to dotted paths by stripping
// the prefix, lowercasing, and replacing underscores with dots, so with
// prefix "MYAPP_" the variable MYAPP_SERVER_PORT=9090 appears as
// server.port=9090. The snapshot is taken once at construction.
func NewEnvironLayer(prefix string) *MapLayer {
	values := make(map[string]any)
	for _, entry := range os.Environ() {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		path := strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(key, prefix), "_", "."))
		if path == "" {
			continue
		}
		values[path] = value
	}
	return NewMapLayer("environ:"+prefix, values)
}

// Name returns the layer name used in diagnostics.
func (l *MapLayer) Name() string {
	return l.name
}

// Keys lists the layer's dotted keys.
func (l *MapLayer) Keys() []string {
	keys := make([]string, 0, len(l.values))
	for k := range l.values {
		keys = append(keys, k)
	}
	return keys
}

// Lookup resolves a single key within the layer.
func (l *MapLayer) Lookup(key string) (any, bool) {
	v, ok := l.values[key]
	return v, ok
}

// Composite is a named grouping of sub-layers. Lookups and merges recurse
// into the sub-layers in order.
type Composite struct {
	name   string
	layers []Layer
}

// NewCompositeLayer groups layers under one name, highest priority first.
func NewCompositeLayer(name string, layers ...Layer) *Composite {
	return &Composite{name: name, layers: layers}
}

// Name returns the composite's name.
func (c *Composite) Name() string {
	return c.name
}

// Layers returns the ordered sub-layers.
func (c *Composite) Layers() []Layer {
	out := make([]Layer, len(c.layers))
	copy(out, c.layers)
	return out
}
