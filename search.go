package pathkit

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pathkit/pathkit/eventlog"
)

// Filter narrows a directory walk. Every set field must hold for an entry to
// match (logical AND); unset fields are vacuously true.
type Filter struct {
	// NameContains matches entries whose name contains the substring,
	// case-insensitively.
	NameContains string

	// Suffix matches the trailing extension, leading dot included,
	// case-sensitively.
	Suffix string

	// Stem matches the name without its extension, case-insensitively.
	Stem string

	// Regex matches the entry name against a full regular expression. An
	// invalid pattern rejects every candidate and records a warning.
	Regex string

	// Glob matches the root-relative path against a doublestar pattern
	// (e.g. "**/*.go"). An invalid pattern rejects every candidate and
	// records a warning.
	Glob string

	// MinSize and MaxSize bound file sizes in bytes; zero means unbounded.
	// Directories are not size-filtered.
	MinSize int64
	MaxSize int64

	// OnlyFiles and OnlyDirs reject entries by type.
	OnlyFiles bool
	OnlyDirs  bool

	// Recursive descends into subdirectories; otherwise only the immediate
	// children of the root are examined.
	Recursive bool

	// IgnoreHidden skips entries with a leading dot without descending.
	IgnoreHidden bool
}

// Searcher walks a directory tree and yields matching Paths. The zero value
// reports to the process-wide event log.
type Searcher struct {
	Events *eventlog.Log
}

// Search walks root depth-first in pre-order and returns every entry
// satisfying the filter. Within a directory, subdirectories come before
// files, each group in case-insensitive name order. Query semantics: an
// absent root or zero matches yield an empty result, never an error;
// unreadable subdirectories are skipped with a warning event.
func Search(root *Path, f Filter, limits Limits) []*Path {
	var s Searcher
	return s.Search(root, f, limits)
}

// Search implements the package-level Search with an injectable event log.
func (s *Searcher) Search(root *Path, f Filter, limits Limits) []*Path {
	log := s.log()
	log.Start("search", root.raw)

	info, err := os.Stat(root.raw)
	if err != nil {
		log.Warning("search", "skipped (path not found) -> "+root.raw)
		return nil
	}

	cf := compileFilter(f, root.raw, log)

	var out []*Path
	if !info.IsDir() {
		// A file root is its own single candidate.
		if cf.matches(root.raw, fs.FileInfoToDirEntry(info)) {
			out = append(out, root)
		}
		log.Success("search", fmt.Sprintf("%s (%d matches)", root.raw, len(out)))
		return out
	}

	visited := map[string]struct{}{}
	if resolved, ok := resolveDir(root.raw); ok {
		visited[resolved] = struct{}{}
	}
	s.walk(root.raw, cf, limits, visited, &out, log)

	log.Success("search", fmt.Sprintf("%s (%d matches)", root.raw, len(out)))
	return out
}

func (s *Searcher) walk(dir string, cf compiledFilter, limits Limits, visited map[string]struct{}, out *[]*Path, log *eventlog.Log) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Warning("search", fmt.Sprintf("skipped unreadable directory %s: %v", dir, err))
		return
	}
	sortEntries(entries)

	for _, d := range entries {
		name := d.Name()
		if cf.IgnoreHidden && strings.HasPrefix(name, ".") {
			continue
		}
		if limits.IgnoreVenv && d.IsDir() && isVenvName(name) {
			continue
		}

		full := filepath.Join(dir, name)
		if cf.matches(full, d) {
			*out = append(*out, &Path{raw: full})
		}

		if d.IsDir() && cf.Recursive {
			resolved, ok := resolveDir(full)
			if !ok {
				continue
			}
			if _, seen := visited[resolved]; seen {
				log.Warning("search", "cycle detected, not re-entering -> "+full)
				continue
			}
			visited[resolved] = struct{}{}
			s.walk(full, cf, limits, visited, out, log)
		}
	}
}

func (s *Searcher) log() *eventlog.Log {
	if s.Events != nil {
		return s.Events
	}
	return eventlog.Default()
}

// compiledFilter carries the parsed predicate state for one traversal.
type compiledFilter struct {
	Filter
	root     string
	re       *regexp.Regexp
	badRegex bool
	badGlob  bool
}

func compileFilter(f Filter, root string, log *eventlog.Log) compiledFilter {
	cf := compiledFilter{Filter: f, root: root}
	if f.Regex != "" {
		re, err := regexp.Compile(f.Regex)
		if err != nil {
			log.Warning("search", fmt.Sprintf("invalid regex %q: %v", f.Regex, err))
			cf.badRegex = true
		} else {
			cf.re = re
		}
	}
	if f.Glob != "" && !doublestar.ValidatePattern(f.Glob) {
		log.Warning("search", fmt.Sprintf("invalid glob %q", f.Glob))
		cf.badGlob = true
	}
	return cf
}

func (cf *compiledFilter) matches(path string, d fs.DirEntry) bool {
	isDir := d.IsDir()
	if cf.OnlyFiles && isDir {
		return false
	}
	if cf.OnlyDirs && !isDir {
		return false
	}

	name := d.Name()
	if cf.NameContains != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(cf.NameContains)) {
		return false
	}
	if cf.Suffix != "" && filepath.Ext(name) != cf.Suffix {
		return false
	}
	if cf.Stem != "" && !strings.EqualFold(strings.TrimSuffix(name, filepath.Ext(name)), cf.Stem) {
		return false
	}
	if cf.Regex != "" {
		if cf.badRegex || !cf.re.MatchString(name) {
			return false
		}
	}
	if cf.Glob != "" {
		if cf.badGlob {
			return false
		}
		rel, err := filepath.Rel(cf.root, path)
		if err != nil {
			return false
		}
		ok, _ := doublestar.Match(cf.Glob, filepath.ToSlash(rel))
		if !ok {
			return false
		}
	}
	if !isDir && (cf.MinSize > 0 || cf.MaxSize > 0) {
		info, err := d.Info()
		if err != nil {
			return false
		}
		if cf.MinSize > 0 && info.Size() < cf.MinSize {
			return false
		}
		if cf.MaxSize > 0 && info.Size() > cf.MaxSize {
			return false
		}
	}
	return true
}

// venvNames are directory markers skipped when Limits.IgnoreVenv is set.
var venvNames = map[string]struct{}{
	"venv":          {},
	".venv":         {},
	"env":           {},
	"__pycache__":   {},
	"node_modules":  {},
	"site-packages": {},
}

func isVenvName(name string) bool {
	_, ok := venvNames[strings.ToLower(name)]
	return ok
}

// sortEntries orders a directory listing: subdirectories first, then files,
// each group by case-insensitive name. Search and tree share this order so
// their visited sets agree.
func sortEntries(entries []os.DirEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].IsDir(), entries[j].IsDir()
		if di != dj {
			return di
		}
		return strings.ToLower(entries[i].Name()) < strings.ToLower(entries[j].Name())
	})
}

// resolveDir resolves symlinks for the cycle guard. Directories that cannot
// be resolved are not descended.
func resolveDir(path string) (string, bool) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false
	}
	return resolved, true
}
