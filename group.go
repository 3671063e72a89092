package props

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// passwordSlugs marks key names whose values must never appear in
// diagnostic output. Matching is a case-sensitive substring check.
var passwordSlugs = []string{"pwd", "password", "passwd"}

// redactedValue replaces masked values in diagnostic rendering.
const redactedValue = "**********"

// Group is a bag of flat key/value properties scoped under a shared
// dotted path prefix. Every key is relative to the group's path. The path
// is fixed at construction; the contents are mutable through Add, AddAll
// and SetAll.
//
// Groups are produced by FlatSource.CollectPrefixed/CollectAll and by the
// BreakOut/BreakDown family, or constructed directly from any flat map.
type Group struct {
	Accessor
	path    string
	entries map[string]string
}

// NewGroup creates a group rooted at path holding a copy of entries.
// A nil entries map yields an empty group.
func NewGroup(path string, entries map[string]string) *Group {
	g := &Group{
		path:    path,
		entries: make(map[string]string, len(entries)),
	}
	for k, v := range entries {
		g.entries[k] = v
	}
	g.Accessor = newAccessor(g)
	return g
}

// WithLogger returns the group with its diagnostic logger replaced.
func (g *Group) WithLogger(l zerolog.Logger) *Group {
	g.Accessor.log = l
	return g
}

// Path returns the dotted prefix this group is rooted at.
func (g *Group) Path() string {
	return g.path
}

// Value implements PropertySource over the group's entries.
func (g *Group) Value(name string) (string, bool) {
	v, ok := g.entries[name]
	return v, ok
}

// Contains reports whether the key exists in the group.
func (g *Group) Contains(name string) bool {
	_, ok := g.entries[name]
	return ok
}

// ContainsValue reports whether the key exists with a non-empty value.
func (g *Group) ContainsValue(name string) bool {
	return g.entries[name] != ""
}

// Add inserts or overwrites a single property.
func (g *Group) Add(name, value string) {
	g.entries[name] = value
}

// AddAll inserts or overwrites every property from m.
func (g *Group) AddAll(m map[string]string) {
	for k, v := range m {
		g.entries[k] = v
	}
}

// SetAll swaps the group's contents for a copy of m and returns the prior
// contents for inspection or rollback.
func (g *Group) SetAll(m map[string]string) map[string]string {
	old := g.entries
	g.entries = make(map[string]string, len(m))
	for k, v := range m {
		g.entries[k] = v
	}
	return old
}

// Keys returns a copy of the key set.
func (g *Group) Keys() []string {
	keys := make([]string, 0, len(g.entries))
	for k := range g.entries {
		keys = append(keys, k)
	}
	return keys
}

// Values returns a copy of the stored values.
func (g *Group) Values() []string {
	vals := make([]string, 0, len(g.entries))
	for _, v := range g.entries {
		vals = append(vals, v)
	}
	return vals
}

// Map returns a copy of the group's entries. Mutating the result does not
// affect the group.
func (g *Group) Map() map[string]string {
	m := make(map[string]string, len(g.entries))
	for k, v := range g.entries {
		m[k] = v
	}
	return m
}

// Len returns the number of properties in the group.
func (g *Group) Len() int {
	return len(g.entries)
}

// IsEmpty reports whether the group holds no properties.
func (g *Group) IsEmpty() bool {
	return len(g.entries) == 0
}

// BreakOut extracts the subset of properties under the given sub-path
// into a new group rooted at the group's path extended by sub. Keys in
// the result have the sub prefix stripped.
//
// Given a group at "my.property.tree" holding
//
//	branch1.leaf2=value2
//	pool.db.leaf7=value7
//	pool.cb.leaf8=value8
//
// BreakOut("pool.db") returns a group at "my.property.tree.pool.db"
// holding leaf7=value7.
//
// Returns nil when no key matches; callers must check before use (the
// Extract* helpers do this for free).
func (g *Group) BreakOut(sub string) *Group {
	prefix := dotTerminated(sub)
	id := prefix[:len(prefix)-1]

	var out *Group
	for key, value := range g.entries {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if out == nil {
			out = NewGroup(g.path+"."+id, nil)
			out.Accessor.log = g.Accessor.log
		}
		out.Add(key[len(prefix):], value)
	}
	return out
}

// BreakDown partitions the group's properties by the first dot-delimited
// segment of each key, returning one new group per distinct segment,
// keyed by that segment. Keys without a dot carry no further segment to
// group by and are silently dropped.
//
// Given a group at "oracle.connection" holding
//
//	evildb.url=u1
//	evildb.pass=p1
//	gooddb.url=u2
//
// BreakDown returns groups "evildb" (path "oracle.connection.evildb",
// keys url and pass) and "gooddb" (path "oracle.connection.gooddb",
// key url).
func (g *Group) BreakDown() map[string]*Group {
	out := make(map[string]*Group)
	for key, value := range g.entries {
		idx := strings.Index(key, ".")
		if idx < 0 {
			continue
		}
		id := key[:idx]
		sub, ok := out[id]
		if !ok {
			sub = NewGroup(g.path+"."+id, nil)
			sub.Accessor.log = g.Accessor.log
			out[id] = sub
		}
		sub.Add(key[idx+1:], value)
	}
	return out
}

// BreakDownPrefix filters the group's properties to those under the given
// prefix, strips it, and partitions the remainder by its first segment as
// BreakDown does. Resulting group paths are the group's path extended by
// the prefix and the segment.
func (g *Group) BreakDownPrefix(prefix string) map[string]*Group {
	p := dotTerminated(prefix)
	out := make(map[string]*Group)
	for key, value := range g.entries {
		if !strings.HasPrefix(key, p) {
			continue
		}
		trunk := key[len(p):]
		idx := strings.Index(trunk, ".")
		if idx < 0 {
			continue
		}
		id := trunk[:idx]
		sub, ok := out[id]
		if !ok {
			sub = NewGroup(g.path+"."+p+id, nil)
			sub.Accessor.log = g.Accessor.log
			out[id] = sub
		}
		sub.Add(trunk[idx+1:], value)
	}
	return out
}

// String renders the group with the default two-space separator.
func (g *Group) String() string {
	return g.StringSep("  ")
}

// StringSep renders every property as path.key=value joined by sep, with
// keys sorted so output is deterministic. Values of keys that look like
// password material are masked; masking is presentation-only and the
// stored value is untouched.
func (g *Group) StringSep(sep string) string {
	keys := g.Keys()
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		value := g.entries[key]
		if isSecretKey(key) {
			value = redactedValue
		}
		lines = append(lines, g.path+"."+key+"="+value)
	}
	return strings.Join(lines, sep)
}

func isSecretKey(key string) bool {
	for _, slug := range passwordSlugs {
		if strings.Contains(key, slug) {
			return true
		}
	}
	return false
}
