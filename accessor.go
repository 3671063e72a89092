package props

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// PropertySource is the minimal read surface the typed getters operate on.
// Value reports the raw string value of a property and whether the key
// resolved at all; Contains reports key presence regardless of whether a
// value could be resolved, and ContainsValue reports presence of a usable
// value. The two predicates differ for stores that can hold a key without
// a value.
type PropertySource interface {
	Value(name string) (string, bool)
	Contains(name string) bool
	ContainsValue(name string) bool
}

// Accessor supplies typed, defaulted getters on top of a PropertySource.
// It is embedded by FlatSource and Group so the same conversion surface is
// available at every grouping level.
//
// Getters come in pairs: Get* returns (value, ok) where ok is false when
// the key is absent or the value cannot be parsed, and Get*Or resolves to
// the supplied default in those cases. Numeric getters check Contains
// before attempting a parse; a present but unparsable value emits a
// warning and falls back to the default. No getter ever returns an error.
type Accessor struct {
	src PropertySource
	log zerolog.Logger
}

func newAccessor(src PropertySource) Accessor {
	return Accessor{src: src, log: log.Logger}
}

// Logger returns the logger used for conversion diagnostics.
func (a Accessor) Logger() zerolog.Logger {
	return a.log
}

// GetString returns the raw string value, or ok=false when absent.
func (a Accessor) GetString(name string) (string, bool) {
	return a.src.Value(name)
}

// GetStringOr returns the raw string value, or def when absent.
func (a Accessor) GetStringOr(name, def string) string {
	if v, ok := a.src.Value(name); ok {
		return v
	}
	return def
}

// GetStringArray splits the raw value on commas. Absent keys yield
// ok=false; a present empty value yields a single-element slice holding
// the empty string, per standard split semantics.
func (a Accessor) GetStringArray(name string) ([]string, bool) {
	return a.GetStringList(name, ",")
}

// GetStringList splits the raw value on the given separator. Absent keys
// yield ok=false.
func (a Accessor) GetStringList(name, sep string) ([]string, bool) {
	v, ok := a.src.Value(name)
	if !ok {
		return nil, false
	}
	return strings.Split(v, sep), true
}

// GetBool parses the literal "true" (case-insensitive) as true and any
// other present value as false. Absent keys yield ok=false. Malformed
// input is not a warning condition here: permissive boolean parsing is
// part of the contract, unlike the numeric getters.
func (a Accessor) GetBool(name string) (bool, bool) {
	v, ok := a.src.Value(name)
	if !ok {
		return false, false
	}
	return strings.EqualFold(v, "true"), true
}

// GetBoolOr is GetBool resolving to def when the key is absent.
func (a Accessor) GetBoolOr(name string, def bool) bool {
	if v, ok := a.GetBool(name); ok {
		return v
	}
	return def
}

// GetInt parses the value as an int. Absent or unparsable values yield
// ok=false; unparsable values additionally log a warning.
func (a Accessor) GetInt(name string) (int, bool) {
	raw, ok := a.rawForParse(name, "an integer")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		a.warnUnparsable(name, "an integer")
		return 0, false
	}
	return n, true
}

// GetIntOr is GetInt resolving to def when absent or unparsable.
func (a Accessor) GetIntOr(name string, def int) int {
	if v, ok := a.GetInt(name); ok {
		return v
	}
	return def
}

// GetInt64 parses the value as an int64.
func (a Accessor) GetInt64(name string) (int64, bool) {
	raw, ok := a.rawForParse(name, "a long")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		a.warnUnparsable(name, "a long")
		return 0, false
	}
	return n, true
}

// GetInt64Or is GetInt64 resolving to def when absent or unparsable.
func (a Accessor) GetInt64Or(name string, def int64) int64 {
	if v, ok := a.GetInt64(name); ok {
		return v
	}
	return def
}

// GetFloat32 parses the value as a float32.
func (a Accessor) GetFloat32(name string) (float32, bool) {
	raw, ok := a.rawForParse(name, "a float")
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		a.warnUnparsable(name, "a float")
		return 0, false
	}
	return float32(f), true
}

// GetFloat32Or is GetFloat32 resolving to def when absent or unparsable.
func (a Accessor) GetFloat32Or(name string, def float32) float32 {
	if v, ok := a.GetFloat32(name); ok {
		return v
	}
	return def
}

// GetFloat64 parses the value as a float64.
func (a Accessor) GetFloat64(name string) (float64, bool) {
	raw, ok := a.rawForParse(name, "a double")
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		a.warnUnparsable(name, "a double")
		return 0, false
	}
	return f, true
}

// GetFloat64Or is GetFloat64 resolving to def when absent or unparsable.
func (a Accessor) GetFloat64Or(name string, def float64) float64 {
	if v, ok := a.GetFloat64(name); ok {
		return v
	}
	return def
}

// rawForParse gates numeric parsing on key presence. A key that is
// present without a resolvable value is treated as unparsable rather
// than absent, so it still warns instead of silently defaulting.
func (a Accessor) rawForParse(name, kind string) (string, bool) {
	if !a.src.Contains(name) {
		return "", false
	}
	raw, ok := a.src.Value(name)
	if !ok {
		a.warnUnparsable(name, kind)
		return "", false
	}
	return raw, true
}

func (a Accessor) warnUnparsable(name, kind string) {
	a.log.Warn().Str("name", name).Msgf("property value could not be converted to %s", kind)
}
