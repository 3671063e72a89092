package props

// Nil-safe extraction helpers. BreakOut returns nil when no key matches
// its sub-path, so a lookup chain like
//
//	props.ExtractString(cfg.BreakOut("pool.db"), "url", "")
//
// needs no intermediate nil check: a nil group resolves every key to the
// supplied default.

// ExtractString returns the value of key in g, or def when g is nil or
// the key is absent.
func ExtractString(g *Group, key, def string) string {
	if g == nil {
		return def
	}
	return g.GetStringOr(key, def)
}

// ExtractBool returns the boolean value of key in g, or def when g is nil
// or the key is absent.
func ExtractBool(g *Group, key string, def bool) bool {
	if g == nil {
		return def
	}
	return g.GetBoolOr(key, def)
}

// ExtractInt returns the integer value of key in g, or def when g is nil
// or the key is absent or unparsable.
func ExtractInt(g *Group, key string, def int) int {
	if g == nil {
		return def
	}
	return g.GetIntOr(key, def)
}

// ExtractInt64 returns the int64 value of key in g, or def when g is nil
// or the key is absent or unparsable.
func ExtractInt64(g *Group, key string, def int64) int64 {
	if g == nil {
		return def
	}
	return g.GetInt64Or(key, def)
}

// ExtractFloat32 returns the float32 value of key in g, or def when g is
// nil or the key is absent or unparsable.
func ExtractFloat32(g *Group, key string, def float32) float32 {
	if g == nil {
		return def
	}
	return g.GetFloat32Or(key, def)
}

// ExtractFloat64 returns the float64 value of key in g, or def when g is
// nil or the key is absent or unparsable.
func ExtractFloat64(g *Group, key string, def float64) float64 {
	if g == nil {
		return def
	}
	return g.GetFloat64Or(key, def)
}
