// Package props provides typed, defaulted access to dotted-path
// configuration properties backed by ordered property layers.
//
// A FlatSource adapts a layered Environment into a single merged view of
// flat key/value pairs, where earlier layers shadow later ones for the
// same key. Related keys sharing a dotted prefix are collected into a
// Group, which can be repeatedly broken out (one explicit prefix) or
// broken down (partitioned by leading path segment) into smaller groups.
//
// Quick Start:
//
//	src, err := props.NewBuilder().
//	    WithEnviron("MYAPP_").
//	    WithTOMLFile("config.toml").
//	    WithMap("defaults", map[string]any{"server.port": 8080}).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	port := src.GetIntOr("server.port", 8080)
//
//	conns := src.CollectPrefixed("oracle.connection")
//	for name, db := range conns.BreakDown() {
//	    url := db.GetStringOr("url", "")
//	    _ = name
//	    _ = url
//	}
//
// Typed getters never return errors: an absent key resolves to the
// caller-supplied default, and a present but unparsable value logs a
// warning and resolves to the default as well. Failures degrade to
// missing/default semantics instead of aborting the caller.
//
// Groups are safe for concurrent reads; Add, AddAll and SetAll require
// external synchronization when used from multiple goroutines. BreakOut
// and BreakDown allocate fully independent groups that never alias the
// source group's storage.
package props
