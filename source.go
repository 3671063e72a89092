package props

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// FlatSource adapts a layered Environment into a single flat view of
// string properties. Single-key reads pass straight through to the
// environment; full scans merge every enumerable layer with
// first-seen-wins precedence, so earlier layers shadow later ones.
// FlatSource never writes back to the environment.
type FlatSource struct {
	Accessor
	env Environment
}

// NewFlatSource wraps an environment for typed, grouped property access.
func NewFlatSource(env Environment) *FlatSource {
	s := &FlatSource{env: env}
	s.Accessor = newAccessor(s)
	return s
}

// WithLogger returns the source with its diagnostic logger replaced.
func (s *FlatSource) WithLogger(l zerolog.Logger) *FlatSource {
	s.Accessor.log = l
	return s
}

// Value implements PropertySource by querying the environment directly
// and converting the raw value to its string form. No merge logic runs on
// this path.
func (s *FlatSource) Value(name string) (string, bool) {
	raw, ok := s.env.Property(name)
	if !ok {
		return "", false
	}
	return s.convertValueToString(raw)
}

// Contains reports whether the environment knows the key, whether or not
// a value resolves for it.
func (s *FlatSource) Contains(name string) bool {
	_, ok := s.env.Property(name)
	return ok
}

// ContainsValue reports whether the key resolves to a usable value,
// distinct from mere key presence.
func (s *FlatSource) ContainsValue(name string) bool {
	raw, ok := s.env.Property(name)
	if !ok || raw == nil {
		return false
	}
	_, ok = s.convertValueToString(raw)
	return ok
}

// CollectPrefixed scans the fully merged view of all layers, collects
// every key under the given path, strips the prefix, and returns a new
// group rooted at path.
func (s *FlatSource) CollectPrefixed(path string) *Group {
	prefix := dotTerminated(path)
	group := NewGroup(path, nil)
	group.Accessor.log = s.Accessor.log
	for key, value := range s.merged() {
		if strings.HasPrefix(key, prefix) {
			group.Add(key[len(prefix):], value)
		}
	}
	return group
}

// CollectAll returns every merged property in one group rooted at the
// empty path, with no prefix stripping.
func (s *FlatSource) CollectAll() *Group {
	group := NewGroup("", nil)
	group.Accessor.log = s.Accessor.log
	group.AddAll(s.merged())
	return group
}

// Decode collects the properties under path and decodes them into target.
func (s *FlatSource) Decode(path string, target any) error {
	return s.CollectPrefixed(path).Decode(target)
}

// merged builds the flat merged view: layers are visited in priority
// order, composites are recursed, and a key already seen in an earlier
// layer is never overwritten. Layers that cannot be enumerated contribute
// nothing and are reported once per scan.
func (s *FlatSource) merged() map[string]string {
	acc := make(map[string]string)
	s.mergeLayers(acc, s.env.Layers())
	return acc
}

func (s *FlatSource) mergeLayers(acc map[string]string, layers []Layer) {
	for _, layer := range layers {
		switch l := layer.(type) {
		case CompositeLayer:
			s.mergeLayers(acc, l.Layers())
		case EnumerableLayer:
			for _, key := range l.Keys() {
				if _, seen := acc[key]; seen {
					continue
				}
				raw, ok := l.Lookup(key)
				if !ok {
					continue
				}
				if value, ok := s.convertValueToString(raw); ok {
					acc[key] = value
				}
			}
		default:
			s.log.Warn().Str("layer", layer.Name()).
				Msgf("property layer is a %T and cannot be iterated on", layer)
		}
	}
}

// convertValueToString renders an arbitrarily typed raw property value as
// a string. Unknown types fall back to their default textual form after a
// warning; a value whose rendering panics is logged at error level and
// treated as absent.
func (s *FlatSource) convertValueToString(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		s.log.Warn().Type("type", value).
			Msg("unknown property type, no specific conversion handler found")
		return s.stringifyFallback(value)
	}
}

// stringifyFallback renders unknown types, recovering if a Stringer
// implementation panics so a single bad value cannot abort the caller.
func (s *FlatSource) stringifyFallback(value any) (out string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Type("type", value).
				Msg("failed to convert unknown property type to string")
			out, ok = "", false
		}
	}()
	if str, isStringer := value.(fmt.Stringer); isStringer {
		return str.String(), true
	}
	return fmt.Sprintf("%v", value), true
}
