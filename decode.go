package props

import (
	"fmt"
	"net/url"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Decode rebuilds the group's flat entries into a nested map and decodes
// it into target, which must be a non-nil pointer. Fields are matched via
// `props` struct tags. String values convert weakly to the target types,
// with hooks for time.Duration, RFC3339 time.Time, comma-separated
// slices, and *url.URL.
func (g *Group) Decode(target any) error {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("decode target must be non-nil pointer, got %T", target)
	}

	nested := make(map[string]any)
	for key, value := range g.entries {
		setNestedValue(nested, key, value)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "props",
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToSliceHookFunc(","),
			stringToURLHookFunc(),
		),
	})
	if err != nil {
		return fmt.Errorf("decoder creation failed: %w", err)
	}

	if err := decoder.Decode(nested); err != nil {
		return fmt.Errorf("decode failed for group %q: %w", g.path, err)
	}

	return nil
}

// stringToURLHookFunc handles *url.URL conversion for connection-style
// properties.
func stringToURLHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(&url.URL{}) {
			return data, nil
		}
		return url.Parse(data.(string))
	}
}
