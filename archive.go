package pathkit

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ExportArchive snapshots the files matching filter under root into a
// compressed tar at output. Compression follows the output suffix: ".zst"
// selects zstd, everything else gzip. Selection order and safety limits
// match ExportAll; unreadable files are skipped with a warning event.
func ExportArchive(root, output *Path, filter Filter, limits Limits) error {
	var e Exporter
	return e.ExportArchive(root, output, filter, limits)
}

// ExportArchive implements the package-level ExportArchive with an
// injectable event log.
func (e *Exporter) ExportArchive(root, output *Path, filter Filter, limits Limits) error {
	log := e.log()
	log.Start("archive", root.raw)

	filter.OnlyFiles = true
	filter.OnlyDirs = false
	searcher := Searcher{Events: e.Events}
	matches := searcher.Search(root, filter, limits)

	if err := os.MkdirAll(filepath.Dir(output.raw), 0o755); err != nil {
		err = fmt.Errorf("archive %s: %w", root.raw, err)
		log.Failure("archive", err.Error())
		return err
	}

	outFile, err := os.Create(output.raw)
	if err != nil {
		err = fmt.Errorf("archive %s: %w", root.raw, err)
		log.Failure("archive", err.Error())
		return err
	}
	defer outFile.Close()

	var (
		tarWriter  *tar.Writer
		compressor io.WriteCloser
	)
	if strings.HasSuffix(output.raw, ".zst") {
		zstdWriter, err := zstd.NewWriter(outFile)
		if err != nil {
			err = fmt.Errorf("archive %s: %w", root.raw, err)
			log.Failure("archive", err.Error())
			return err
		}
		compressor = zstdWriter
	} else {
		compressor = gzip.NewWriter(outFile)
	}
	tarWriter = tar.NewWriter(compressor)

	var (
		fileCount  int
		totalBytes int64
	)
	for _, m := range matches {
		if fileCount >= limits.MaxFiles {
			log.Warning("archive", fmt.Sprintf("max_files limit reached (%d), skipping remaining files", limits.MaxFiles))
			break
		}

		info, err := os.Stat(m.raw)
		if err != nil {
			log.Warning("archive", "skipped unreadable file -> "+m.raw)
			continue
		}
		if totalBytes+info.Size() > limits.MaxTotalBytes {
			log.Warning("archive", fmt.Sprintf("max_total_bytes limit reached (%d), skipping remaining files", limits.MaxTotalBytes))
			break
		}

		rel, err := filepath.Rel(root.raw, m.raw)
		if err != nil {
			rel = m.Name()
		}

		file, err := os.Open(m.raw)
		if err != nil {
			log.Warning("archive", "skipped unreadable file -> "+m.raw)
			continue
		}

		header := &tar.Header{
			Name:    filepath.ToSlash(rel),
			Mode:    int64(info.Mode().Perm()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}
		if err := tarWriter.WriteHeader(header); err != nil {
			file.Close()
			err = fmt.Errorf("archive %s: %w", m.raw, err)
			log.Failure("archive", err.Error())
			return err
		}
		if _, err := io.Copy(tarWriter, file); err != nil {
			file.Close()
			err = fmt.Errorf("archive %s: %w", m.raw, err)
			log.Failure("archive", err.Error())
			return err
		}
		file.Close()
		fileCount++
		totalBytes += info.Size()
	}

	if err := tarWriter.Close(); err != nil {
		err = fmt.Errorf("archive %s: %w", root.raw, err)
		log.Failure("archive", err.Error())
		return err
	}
	if err := compressor.Close(); err != nil {
		err = fmt.Errorf("archive %s: %w", root.raw, err)
		log.Failure("archive", err.Error())
		return err
	}

	log.Success("archive", fmt.Sprintf("%s (%d files, %d bytes) -> %s", root.raw, fileCount, totalBytes, output.raw))
	return nil
}
