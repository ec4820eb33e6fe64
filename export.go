package pathkit

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pathkit/pathkit/eventlog"
)

// Exporter composes tree rendering, search and file reads into one
// consolidated text artifact. The zero value reports to the process-wide
// event log.
type Exporter struct {
	Events *eventlog.Log
}

// ExportAll snapshots root into output: a header with a snapshot id, the
// rendered tree, then one section per matched file in search order. The
// filter is forced to files only. Accumulation stops, without aborting, once
// limits.MaxFiles sections were collected or limits.MaxTotalBytes of content
// was read; a warning event names the limit hit. A file that cannot be read
// degrades to a placeholder section and a warning. Only a failure to write
// output itself is fatal. Returns the artifact text.
func ExportAll(root, output *Path, filter Filter, limits Limits) (string, error) {
	var e Exporter
	return e.ExportAll(root, output, filter, limits)
}

// ExportAll implements the package-level ExportAll with an injectable event
// log.
func (e *Exporter) ExportAll(root, output *Path, filter Filter, limits Limits) (string, error) {
	log := e.log()
	log.Start("export", root.raw)

	var b strings.Builder
	fmt.Fprintf(&b, "pathkit export %s\ngenerated %s\n\n", uuid.NewString(), time.Now().Format(time.RFC3339))

	renderer := Renderer{Events: e.Events}
	b.WriteString("Tree Structure:\n")
	b.WriteString(renderer.Tree(root, TreeOptions{
		IgnoreHidden: filter.IgnoreHidden,
		IgnoreVenv:   limits.IgnoreVenv,
	}))
	b.WriteString("\n\n")

	filter.OnlyFiles = true
	filter.OnlyDirs = false
	searcher := Searcher{Events: e.Events}
	matches := searcher.Search(root, filter, limits)

	var (
		fileCount  int
		totalBytes int64
		sections   strings.Builder
	)
	for _, m := range matches {
		if fileCount >= limits.MaxFiles {
			log.Warning("export", fmt.Sprintf("max_files limit reached (%d), skipping remaining files", limits.MaxFiles))
			break
		}

		content, err := m.Read()
		if err != nil {
			content = fmt.Sprintf("[unreadable: %v]", err)
			log.Warning("export", "unreadable file replaced with placeholder -> "+m.raw)
		}

		if totalBytes+int64(len(content)) > limits.MaxTotalBytes {
			log.Warning("export", fmt.Sprintf("max_total_bytes limit reached (%d), skipping remaining files", limits.MaxTotalBytes))
			break
		}

		fmt.Fprintf(&sections, "--- %s ---\n%s\n\n", m.raw, content)
		fileCount++
		totalBytes += int64(len(content))
	}

	if fileCount > 0 {
		b.WriteString("Search Results:\n")
		b.WriteString(sections.String())
	} else {
		b.WriteString("Search Results: None\n")
	}

	text := b.String()
	if err := output.Write(text); err != nil {
		err = fmt.Errorf("export %s: %w", root.raw, err)
		log.Failure("export", err.Error())
		return "", err
	}

	log.Success("export", fmt.Sprintf("%s (%d files, %d bytes) -> %s", root.raw, fileCount, totalBytes, output.raw))
	return text, nil
}

func (e *Exporter) log() *eventlog.Log {
	if e.Events != nil {
		return e.Events
	}
	return eventlog.Default()
}
