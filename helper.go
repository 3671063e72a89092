package props

import "strings"

// dotTerminated normalizes a prefix so it ends with exactly one dot.
func dotTerminated(prefix string) string {
	if strings.HasSuffix(prefix, ".") {
		return prefix
	}
	return prefix + "."
}

// flattenMap converts a nested map into a flat map keyed by dot-notation
// paths. Leaf values are carried through unchanged.
func flattenMap(nested map[string]any, prefix string) map[string]any {
	flat := make(map[string]any)

	for key, value := range nested {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		if sub, isMap := value.(map[string]any); isMap {
			for subPath, subValue := range flattenMap(sub, path) {
				flat[subPath] = subValue
			}
		} else {
			flat[path] = value
		}
	}

	return flat
}

// setNestedValue sets a value in a nested map using a dot-notation path,
// creating intermediate maps as needed. A non-map value sitting where an
// intermediate map belongs is replaced.
func setNestedValue(nested map[string]any, path string, value any) {
	segments := strings.Split(path, ".")
	current := nested

	for i := 0; i < len(segments)-1; i++ {
		segment := segments[i]
		next, exists := current[segment]
		if !exists {
			child := make(map[string]any)
			current[segment] = child
			current = child
			continue
		}
		if childMap, isMap := next.(map[string]any); isMap {
			current = childMap
		} else {
			child := make(map[string]any)
			current[segment] = child
			current = child
		}
	}

	current[segments[len(segments)-1]] = value
}
