package pathkit

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pathkit/pathkit/eventlog"
)

// TreeOptions configures tree rendering.
type TreeOptions struct {
	// IgnoreHidden skips entries with a leading dot without descending.
	IgnoreHidden bool

	// IgnoreVenv skips virtual-environment and dependency directories.
	IgnoreVenv bool

	// MaxDepth bounds how many levels below the root are rendered;
	// 0 means unbounded.
	MaxDepth int
}

// Renderer produces the indented text representation of a directory. The
// zero value reports to the process-wide event log.
type Renderer struct {
	Events *eventlog.Log
}

// Tree renders root as a connector-drawn tree: the root name on the first
// line, each descendant prefixed with branch connectors. Entries follow the
// same order and skip rules as Search, so the line count is one plus the
// number of entries Search would visit. An absent root yields "" and a
// warning event; a file root yields its name only.
func Tree(root *Path, opts TreeOptions) string {
	var r Renderer
	return r.Tree(root, opts)
}

// Tree implements the package-level Tree with an injectable event log.
func (r *Renderer) Tree(root *Path, opts TreeOptions) string {
	log := r.log()
	log.Start("tree", root.raw)

	if !root.Exists() {
		log.Warning("tree", "skipped (path not found) -> "+root.raw)
		return ""
	}

	var b strings.Builder
	b.WriteString(root.Name())

	if root.IsDir() {
		visited := map[string]struct{}{}
		if resolved, ok := resolveDir(root.raw); ok {
			visited[resolved] = struct{}{}
		}
		r.render(&b, root.raw, "", 1, opts, visited, log)
	}

	log.Success("tree", root.raw)
	return b.String()
}

func (r *Renderer) render(b *strings.Builder, dir, prefix string, depth int, opts TreeOptions, visited map[string]struct{}, log *eventlog.Log) {
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warning("tree", "skipped unreadable directory -> "+dir)
		return
	}
	sortEntries(entries)

	filtered := entries[:0]
	for _, d := range entries {
		if opts.IgnoreHidden && strings.HasPrefix(d.Name(), ".") {
			continue
		}
		if opts.IgnoreVenv && d.IsDir() && isVenvName(d.Name()) {
			continue
		}
		filtered = append(filtered, d)
	}

	for i, d := range filtered {
		connector := "├── "
		extension := "│   "
		if i == len(filtered)-1 {
			connector = "└── "
			extension = "    "
		}
		b.WriteString("\n" + prefix + connector + d.Name())

		if !d.IsDir() {
			continue
		}
		full := filepath.Join(dir, d.Name())
		resolved, ok := resolveDir(full)
		if !ok {
			continue
		}
		if _, seen := visited[resolved]; seen {
			log.Warning("tree", "cycle detected, not re-entering -> "+full)
			continue
		}
		visited[resolved] = struct{}{}
		r.render(b, full, prefix+extension, depth+1, opts, visited, log)
	}
}

func (r *Renderer) log() *eventlog.Log {
	if r.Events != nil {
		return r.Events
	}
	return eventlog.Default()
}
