package props

// Environment is the layered property store a FlatSource reads from. It
// owns whatever I/O populated the layers; the access layer only queries
// and regroups the values it exposes.
type Environment interface {
	// Property resolves a single key. The second result reports key
	// presence; a present key may still carry a nil value.
	Property(name string) (any, bool)

	// Layers returns the ordered property layers, highest priority first.
	Layers() []Layer
}

// Layer is one ordered property source contributing to the merged view.
// A layer that is neither Enumerable nor Composite cannot contribute to a
// full scan and is skipped with a warning.
type Layer interface {
	Name() string
}

// EnumerableLayer is a layer whose keys can be listed.
type EnumerableLayer interface {
	Layer
	Keys() []string
	Lookup(key string) (any, bool)
}

// CompositeLayer groups sub-layers; merging recurses into them in order.
type CompositeLayer interface {
	Layer
	Layers() []Layer
}

// LayeredEnvironment is the standard Environment: an ordered list of
// layers where the first layer containing a key wins single-key lookups,
// matching the first-seen-wins rule of the full merge.
type LayeredEnvironment struct {
	layers []Layer
}

// NewLayeredEnvironment builds an environment from layers ordered highest
// priority first.
func NewLayeredEnvironment(layers ...Layer) *LayeredEnvironment {
	return &LayeredEnvironment{layers: layers}
}

// Property resolves name through the layers in priority order.
func (e *LayeredEnvironment) Property(name string) (any, bool) {
	return lookupIn(e.layers, name)
}

// Layers returns the ordered layers, highest priority first.
func (e *LayeredEnvironment) Layers() []Layer {
	out := make([]Layer, len(e.layers))
	copy(out, e.layers)
	return out
}

func lookupIn(layers []Layer, name string) (any, bool) {
	for _, layer := range layers {
		switch l := layer.(type) {
		case CompositeLayer:
			if v, ok := lookupIn(l.Layers(), name); ok {
				return v, true
			}
		case EnumerableLayer:
			if v, ok := l.Lookup(name); ok {
				return v, true
			}
		}
	}
	return nil, false
}
