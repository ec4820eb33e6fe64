// Package pathkit provides convenience filesystem path operations.
//
// This package is organized into per-concern files:
//   - path: the Path value (read, write, append, copy, move, delete, join)
//   - metadata: live stat properties, MIME detection, sizes
//   - search: bounded recursive search with filter predicates
//   - tree: connector-drawn text rendering of a directory
//   - export: consolidated tree-plus-contents artifacts under safety limits
//   - archive: tar.gz / tar.zst snapshots of matched files
//   - formats: JSON, YAML, TOML, CSV and line-oriented helpers
//
// Query-style operations (properties, search, tree) never fail: they return
// empty or zero values and record warning events instead. Mutating operations
// return explicit errors classified by the sentinels in errors.go.
//
// Every operation reports start/success/warning/failure notices to the
// process-wide eventlog, replaceable via eventlog.SetDefault.
//
// Example Usage:
//
//	p := pathkit.New("notes").Join("todo.txt")
//	if err := p.Write("ship it"); err != nil {
//		return err
//	}
//	matches := pathkit.Search(pathkit.New("."), pathkit.Filter{
//		Suffix:    ".txt",
//		Recursive: true,
//	}, pathkit.DefaultLimits())
package pathkit
