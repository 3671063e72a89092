package props

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Builder assembles a layered environment and wraps it in a FlatSource.
// Layers are added highest priority first; the first error encountered
// while adding layers sticks and is returned from Build.
type Builder struct {
	layers []Layer
	logger zerolog.Logger
	err    error
}

// NewBuilder creates an empty environment builder.
func NewBuilder() *Builder {
	return &Builder{logger: log.Logger}
}

// WithLayer appends an already constructed layer.
func (b *Builder) WithLayer(l Layer) *Builder {
	if b.err == nil {
		b.layers = append(b.layers, l)
	}
	return b
}

// WithMap appends an in-memory layer of dotted keys to values.
func (b *Builder) WithMap(name string, values map[string]any) *Builder {
	return b.WithLayer(NewMapLayer(name, values))
}

// WithEnviron appends a snapshot of prefixed process environment
// variables, names mapped to dotted paths.
func (b *Builder) WithEnviron(prefix string) *Builder {
	return b.WithLayer(NewEnvironLayer(prefix))
}

// WithTOML appends a layer parsed from TOML data.
func (b *Builder) WithTOML(name string, data []byte) *Builder {
	if b.err != nil {
		return b
	}
	layer, err := NewTOMLLayer(name, data)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithLayer(layer)
}

// WithTOMLFile appends a layer parsed from a TOML file.
func (b *Builder) WithTOMLFile(path string) *Builder {
	if b.err != nil {
		return b
	}
	layer, err := LoadTOMLLayer(path)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithLayer(layer)
}

// WithYAML appends a layer parsed from YAML data.
func (b *Builder) WithYAML(name string, data []byte) *Builder {
	if b.err != nil {
		return b
	}
	layer, err := NewYAMLLayer(name, data)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithLayer(layer)
}

// WithYAMLFile appends a layer parsed from a YAML file.
func (b *Builder) WithYAMLFile(path string) *Builder {
	if b.err != nil {
		return b
	}
	layer, err := LoadYAMLLayer(path)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithLayer(layer)
}

// WithLogger sets the logger the built source uses for diagnostics.
func (b *Builder) WithLogger(l zerolog.Logger) *Builder {
	b.logger = l
	return b
}

// Build wraps the accumulated layers in a FlatSource, or returns the
// first error encountered while adding layers.
func (b *Builder) Build() (*FlatSource, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.layers) == 0 {
		return nil, errors.New("no property layers configured")
	}
	return NewFlatSource(NewLayeredEnvironment(b.layers...)).WithLogger(b.logger), nil
}
