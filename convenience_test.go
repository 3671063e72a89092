package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtractHelpers tests nil-safe extraction, the companion to BreakOut
// returning nil on no match
func TestExtractHelpers(t *testing.T) {
	g := NewGroup("db", map[string]string{
		"url":     "postgres://db",
		"size":    "8",
		"big":     "9000000000",
		"ratio":   "0.5",
		"scale":   "1.5",
		"enabled": "true",
	})

	t.Run("PresentValues", func(t *testing.T) {
		assert.Equal(t, "postgres://db", ExtractString(g, "url", ""))
		assert.Equal(t, 8, ExtractInt(g, "size", 0))
		assert.Equal(t, int64(9000000000), ExtractInt64(g, "big", 0))
		assert.Equal(t, float32(0.5), ExtractFloat32(g, "ratio", 0))
		assert.Equal(t, 1.5, ExtractFloat64(g, "scale", 0))
		assert.True(t, ExtractBool(g, "enabled", false))
	})

	t.Run("AbsentKeys", func(t *testing.T) {
		assert.Equal(t, "dflt", ExtractString(g, "missing", "dflt"))
		assert.Equal(t, 5, ExtractInt(g, "missing", 5))
		assert.True(t, ExtractBool(g, "missing", true))
	})

	t.Run("NilGroup", func(t *testing.T) {
		var g *Group
		assert.Equal(t, "dflt", ExtractString(g, "url", "dflt"))
		assert.Equal(t, 5, ExtractInt(g, "size", 5))
		assert.Equal(t, int64(6), ExtractInt64(g, "big", 6))
		assert.Equal(t, float32(7), ExtractFloat32(g, "ratio", 7))
		assert.Equal(t, 8.0, ExtractFloat64(g, "scale", 8))
		assert.True(t, ExtractBool(g, "enabled", true))
	})

	t.Run("ChainedWithBreakOut", func(t *testing.T) {
		root := NewGroup("svc", map[string]string{"pool.db.size": "4"})
		assert.Equal(t, 4, ExtractInt(root.BreakOut("pool.db"), "size", 0))
		assert.Equal(t, 9, ExtractInt(root.BreakOut("pool.missing"), "size", 9))
	})
}
