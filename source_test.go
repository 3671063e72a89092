package props

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bareLayer is a layer that can be neither enumerated nor recursed.
type bareLayer struct{ name string }

func (l bareLayer) Name() string { return l.name }

// panicStringer blows up when rendered, like a misbehaving toString.
type panicStringer struct{}

func (panicStringer) String() string { panic("boom") }

// stamp is a well-behaved Stringer.
type stamp struct{ v string }

func (s stamp) String() string { return "stamp:" + s.v }

func newTestSource(layers ...Layer) (*FlatSource, *bytes.Buffer) {
	var buf bytes.Buffer
	src := NewFlatSource(NewLayeredEnvironment(layers...)).WithLogger(zerolog.New(&buf))
	return src, &buf
}

// TestMergePrecedence tests first-seen-wins shadowing across layers
func TestMergePrecedence(t *testing.T) {
	src, _ := newTestSource(
		NewMapLayer("first", map[string]any{"a": "1"}),
		NewMapLayer("second", map[string]any{"a": "2", "b": "3"}),
	)

	all := src.CollectAll()
	assert.Equal(t, map[string]string{"a": "1", "b": "3"}, all.Map())
	assert.Equal(t, "", all.Path())
}

// TestMergeCompositeRecursion tests that composite layers are flattened
// in order
func TestMergeCompositeRecursion(t *testing.T) {
	inner := NewCompositeLayer("inner",
		NewMapLayer("inner-a", map[string]any{"x": "from-inner-a"}),
		NewMapLayer("inner-b", map[string]any{"x": "shadowed", "y": "from-inner-b"}),
	)
	src, _ := newTestSource(
		NewMapLayer("top", map[string]any{"z": "from-top"}),
		inner,
	)

	assert.Equal(t, map[string]string{
		"x": "from-inner-a",
		"y": "from-inner-b",
		"z": "from-top",
	}, src.CollectAll().Map())
}

// TestMergeSkipsUnenumerableLayers tests the warn-and-continue policy
func TestMergeSkipsUnenumerableLayers(t *testing.T) {
	src, buf := newTestSource(
		bareLayer{name: "opaque"},
		NewMapLayer("real", map[string]any{"a": "1"}),
	)

	all := src.CollectAll()
	assert.Equal(t, map[string]string{"a": "1"}, all.Map())
	assert.Contains(t, buf.String(), "cannot be iterated on")
	assert.Contains(t, buf.String(), "opaque")
}

// TestValueConversion tests typed-to-string conversion during the merge
func TestValueConversion(t *testing.T) {
	src, buf := newTestSource(NewMapLayer("typed", map[string]any{
		"str":     "plain",
		"bool":    true,
		"int":     42,
		"int64":   int64(-7),
		"uint":    uint(9),
		"float32": float32(1.5),
		"float64": 2.25,
		"stringr": stamp{v: "ok"},
	}))

	all := src.CollectAll()
	assert.Equal(t, "plain", all.GetStringOr("str", ""))
	assert.Equal(t, "true", all.GetStringOr("bool", ""))
	assert.Equal(t, "42", all.GetStringOr("int", ""))
	assert.Equal(t, "-7", all.GetStringOr("int64", ""))
	assert.Equal(t, "9", all.GetStringOr("uint", ""))
	assert.Equal(t, "1.5", all.GetStringOr("float32", ""))
	assert.Equal(t, "2.25", all.GetStringOr("float64", ""))

	// Unknown types fall back to their textual form after a warning
	assert.Equal(t, "stamp:ok", all.GetStringOr("stringr", ""))
	assert.Contains(t, buf.String(), "unknown property type")
}

// TestValueConversionTotalFailure tests that an unconvertible value is
// dropped, logged at error level, and never aborts the scan
func TestValueConversionTotalFailure(t *testing.T) {
	src, buf := newTestSource(NewMapLayer("typed", map[string]any{
		"broken": panicStringer{},
		"good":   "still-here",
	}))

	var all *Group
	assert.NotPanics(t, func() { all = src.CollectAll() })
	assert.False(t, all.Contains("broken"))
	assert.Equal(t, "still-here", all.GetStringOr("good", ""))
	assert.Contains(t, buf.String(), "failed to convert unknown property type")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

// TestNilValues tests present-but-nil keys on both lookup paths
func TestNilValues(t *testing.T) {
	src, buf := newTestSource(NewMapLayer("m", map[string]any{"ghost": nil}))

	t.Run("ContainsIsTrueContainsValueIsFalse", func(t *testing.T) {
		assert.True(t, src.Contains("ghost"))
		assert.False(t, src.ContainsValue("ghost"))
	})

	t.Run("NumericGetterWarnsAndDefaults", func(t *testing.T) {
		buf.Reset()
		assert.Equal(t, 5, src.GetIntOr("ghost", 5))
		assert.Contains(t, buf.String(), "could not be converted")
	})

	t.Run("OmittedFromMerge", func(t *testing.T) {
		assert.False(t, src.CollectAll().Contains("ghost"))
	})
}

// TestSingleKeyLookup tests the pass-through path and its agreement with
// merge precedence
func TestSingleKeyLookup(t *testing.T) {
	src, _ := newTestSource(
		NewMapLayer("first", map[string]any{"a": "1"}),
		NewMapLayer("second", map[string]any{"a": "2", "b": 3}),
	)

	v, ok := src.GetString("a")
	require.True(t, ok)
	assert.Equal(t, "1", v, "single-key lookup honors layer priority")

	assert.Equal(t, 3, src.GetIntOr("b", 0))
	assert.False(t, src.Contains("missing"))
	assert.Equal(t, "dflt", src.GetStringOr("missing", "dflt"))
}

// TestCollectPrefixed tests prefix filtering and stripping
func TestCollectPrefixed(t *testing.T) {
	src, _ := newTestSource(NewMapLayer("m", map[string]any{
		"oracle.connection.evildb.url":  "u1",
		"oracle.connection.evildb.pass": "p1",
		"oracle.connection.gooddb.url":  "u2",
		"oracle.connections":            "not-under-the-dot-prefix",
		"postgres.url":                  "excluded",
	}))

	g := src.CollectPrefixed("oracle.connection")
	assert.Equal(t, "oracle.connection", g.Path())
	assert.ElementsMatch(t, []string{"evildb.url", "evildb.pass", "gooddb.url"}, g.Keys())

	t.Run("NoMatchesYieldsEmptyGroup", func(t *testing.T) {
		empty := src.CollectPrefixed("nothing.here")
		require.NotNil(t, empty)
		assert.True(t, empty.IsEmpty())
	})
}

// TestEndToEndBreakDown walks the canonical collect-then-break-down flow
func TestEndToEndBreakDown(t *testing.T) {
	src, _ := newTestSource(NewMapLayer("m", map[string]any{
		"oracle.connection.evildb.url":  "u1",
		"oracle.connection.evildb.pass": "p1",
		"oracle.connection.gooddb.url":  "u2",
	}))

	conns := src.CollectPrefixed("oracle.connection")
	groups := conns.BreakDown()
	require.Len(t, groups, 2)

	evil := groups["evildb"]
	require.NotNil(t, evil)
	assert.Equal(t, "oracle.connection.evildb", evil.Path())
	assert.ElementsMatch(t, []string{"url", "pass"}, evil.Keys())

	good := groups["gooddb"]
	require.NotNil(t, good)
	assert.Equal(t, "oracle.connection.gooddb", good.Path())
	assert.Equal(t, []string{"url"}, good.Keys())

	// Secrets stay masked when derived groups are rendered
	assert.Contains(t, evil.String(), "oracle.connection.evildb.pass=**********")
	assert.NotContains(t, evil.String(), "p1")
}
