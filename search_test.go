package pathkit_test

import (
	"strings"
	"testing"

	"github.com/pathkit/pathkit"
	"github.com/pathkit/pathkit/eventlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// searchFixture builds:
//
//	root/
//	  .hidden.txt
//	  a.py          (10 bytes)
//	  b.log
//	  b.py          (20 bytes)
//	  sub/c.txt
//	  venv/ignored.py
func searchFixture(t *testing.T) *pathkit.Path {
	t.Helper()
	root := pathkit.New(t.TempDir()).Join("root")
	require.NoError(t, root.Join(".hidden.txt").Write("hidden"))
	require.NoError(t, root.Join("a.py").Write("0123456789"))
	require.NoError(t, root.Join("b.log").Write("log"))
	require.NoError(t, root.Join("b.py").Write("01234567890123456789"))
	require.NoError(t, root.Join("sub", "c.txt").Write("c"))
	require.NoError(t, root.Join("venv", "ignored.py").Write("nope"))
	return root
}

func names(results []*pathkit.Path) []string {
	out := make([]string, len(results))
	for i, p := range results {
		out[i] = p.Name()
	}
	return out
}

func TestSearchNoFilterVisitsEverything(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	results := pathkit.Search(root, pathkit.Filter{
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())

	// Pre-order: directories before files per level, names case-insensitive.
	assert.Equal(t, []string{"sub", "c.txt", "a.py", "b.log", "b.py"}, names(results))

	// Idempotent on an unchanged tree.
	again := pathkit.Search(root, pathkit.Filter{Recursive: true, IgnoreHidden: true}, pathkit.DefaultLimits())
	assert.Equal(t, names(results), names(again))
}

func TestSearchSuffix(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	results := pathkit.Search(root, pathkit.Filter{
		Suffix:       ".py",
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())

	assert.Equal(t, []string{"a.py", "b.py"}, names(results))
}

func TestSearchSuffixCaseSensitive(t *testing.T) {
	captureEvents(t)
	root := pathkit.New(t.TempDir())
	require.NoError(t, root.Join("lower.py").Write("x"))
	require.NoError(t, root.Join("upper.PY").Write("x"))

	results := pathkit.Search(root, pathkit.Filter{Suffix: ".py", Recursive: true}, pathkit.DefaultLimits())
	assert.Equal(t, []string{"lower.py"}, names(results))
}

func TestSearchNameContainsCaseInsensitive(t *testing.T) {
	captureEvents(t)
	root := pathkit.New(t.TempDir())
	require.NoError(t, root.Join("Report.txt").Write("x"))
	require.NoError(t, root.Join("other.txt").Write("x"))

	results := pathkit.Search(root, pathkit.Filter{NameContains: "report", Recursive: true}, pathkit.DefaultLimits())
	assert.Equal(t, []string{"Report.txt"}, names(results))
}

func TestSearchStem(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	results := pathkit.Search(root, pathkit.Filter{
		Stem:         "b",
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())

	assert.Equal(t, []string{"b.log", "b.py"}, names(results))
}

func TestSearchRegex(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	results := pathkit.Search(root, pathkit.Filter{
		Regex:        `^b\.`,
		OnlyFiles:    true,
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())

	assert.Equal(t, []string{"b.log", "b.py"}, names(results))
}

func TestSearchInvalidRegexMatchesNothing(t *testing.T) {
	mem := captureEvents(t)
	root := searchFixture(t)

	results := pathkit.Search(root, pathkit.Filter{
		Regex:     `([`,
		Recursive: true,
	}, pathkit.DefaultLimits())

	assert.Empty(t, results)
	warnings := mem.ByLevel(eventlog.LevelWarning)
	require.NotEmpty(t, warnings)
	assert.Contains(t, warnings[0].Message, "invalid regex")
}

func TestSearchGlob(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	results := pathkit.Search(root, pathkit.Filter{
		Glob:         "**/*.txt",
		OnlyFiles:    true,
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())
	assert.Equal(t, []string{"c.txt"}, names(results))

	flat := pathkit.Search(root, pathkit.Filter{
		Glob:         "*.py",
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())
	assert.Equal(t, []string{"a.py", "b.py"}, names(flat))
}

func TestSearchOnlyDirs(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	results := pathkit.Search(root, pathkit.Filter{
		OnlyDirs:     true,
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())

	assert.Equal(t, []string{"sub"}, names(results))
}

func TestSearchNonRecursive(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	results := pathkit.Search(root, pathkit.Filter{
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())

	// Immediate children only; venv still skipped by limits.
	assert.Equal(t, []string{"sub", "a.py", "b.log", "b.py"}, names(results))
}

func TestSearchSizeBounds(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	big := pathkit.Search(root, pathkit.Filter{
		Suffix:       ".py",
		MinSize:      15,
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())
	assert.Equal(t, []string{"b.py"}, names(big))

	small := pathkit.Search(root, pathkit.Filter{
		Suffix:       ".py",
		MaxSize:      15,
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())
	assert.Equal(t, []string{"a.py"}, names(small))
}

func TestSearchVenvRespected(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	limits := pathkit.DefaultLimits()
	limits.IgnoreVenv = false
	results := pathkit.Search(root, pathkit.Filter{
		Suffix:       ".py",
		Recursive:    true,
		IgnoreHidden: true,
	}, limits)

	assert.Contains(t, names(results), "ignored.py")
}

func TestSearchHiddenNotDescended(t *testing.T) {
	captureEvents(t)
	root := pathkit.New(t.TempDir())
	require.NoError(t, root.Join(".secret", "inner.txt").Write("x"))
	require.NoError(t, root.Join("open.txt").Write("x"))

	results := pathkit.Search(root, pathkit.Filter{
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())

	assert.Equal(t, []string{"open.txt"}, names(results))
}

func TestSearchMissingRootIsEmpty(t *testing.T) {
	mem := captureEvents(t)
	root := pathkit.New(t.TempDir()).Join("does-not-exist")

	results := pathkit.Search(root, pathkit.Filter{Recursive: true}, pathkit.DefaultLimits())
	assert.Empty(t, results)
	assert.NotEmpty(t, mem.ByLevel(eventlog.LevelWarning))
}

func TestSearchFileRoot(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)
	file := root.Join("a.py")

	results := pathkit.Search(file, pathkit.Filter{Suffix: ".py"}, pathkit.DefaultLimits())
	require.Len(t, results, 1)
	assert.True(t, results[0].Equal(file))

	none := pathkit.Search(file, pathkit.Filter{Suffix: ".txt"}, pathkit.DefaultLimits())
	assert.Empty(t, none)
}

func TestSearchFilteredIsSubset(t *testing.T) {
	captureEvents(t)
	root := searchFixture(t)

	all := pathkit.Search(root, pathkit.Filter{Recursive: true, IgnoreHidden: true}, pathkit.DefaultLimits())
	universe := map[string]bool{}
	for _, p := range all {
		universe[p.String()] = true
	}

	filtered := pathkit.Search(root, pathkit.Filter{
		NameContains: "b",
		OnlyFiles:    true,
		Recursive:    true,
		IgnoreHidden: true,
	}, pathkit.DefaultLimits())
	require.NotEmpty(t, filtered)
	for _, p := range filtered {
		assert.True(t, universe[p.String()], "filtered result %s missing from unfiltered walk", p)
		assert.True(t, strings.Contains(strings.ToLower(p.Name()), "b"))
		assert.True(t, p.IsFile())
	}
}
