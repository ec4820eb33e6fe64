package pathkit

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pathkit/pathkit/eventlog"
)

// Path is an immutable value wrapping a cleaned, absolute filesystem
// location. Construction never touches the filesystem; metadata is always
// fetched live. Equality and ordering follow the normalized string.
type Path struct {
	raw string
}

// New builds a Path from a string. Relative inputs resolve against the
// current working directory.
func New(s string) *Path {
	abs, err := filepath.Abs(s)
	if err != nil {
		abs = filepath.Clean(s)
	}
	return &Path{raw: abs}
}

// Join returns a new Path with the segments appended. Pure string work.
func (p *Path) Join(segments ...string) *Path {
	parts := append([]string{p.raw}, segments...)
	return &Path{raw: filepath.Join(parts...)}
}

// String returns the normalized path string.
func (p *Path) String() string { return p.raw }

// Equal reports whether both paths normalize to the same string.
func (p *Path) Equal(other *Path) bool {
	return other != nil && p.raw == other.raw
}

// Compare orders paths by their normalized strings.
func (p *Path) Compare(other *Path) int {
	return strings.Compare(p.raw, other.raw)
}

// Name returns the final path element, extension included.
func (p *Path) Name() string { return filepath.Base(p.raw) }

// Ext returns the extension with its leading dot, or "".
func (p *Path) Ext() string { return filepath.Ext(p.raw) }

// Stem returns the final path element without its extension.
func (p *Path) Stem() string {
	name := p.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Parent returns the containing directory as a Path.
func (p *Path) Parent() *Path {
	return &Path{raw: filepath.Dir(p.raw)}
}

// Read returns the file's content as text. Fails with ErrNotFound when the
// path is absent and ErrIsDirectory when it names a directory.
func (p *Path) Read() (string, error) {
	log := eventlog.Default()
	log.Start("read", p.raw)

	info, err := os.Stat(p.raw)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("read %s: %w", p.raw, ErrNotFound)
		} else {
			err = fmt.Errorf("read %s: %w", p.raw, err)
		}
		log.Failure("read", err.Error())
		return "", err
	}
	if info.IsDir() {
		err := fmt.Errorf("read %s: %w", p.raw, ErrIsDirectory)
		log.Failure("read", err.Error())
		return "", err
	}

	data, err := os.ReadFile(p.raw)
	if err != nil {
		err = fmt.Errorf("read %s: %w", p.raw, err)
		log.Failure("read", err.Error())
		return "", err
	}

	log.Success("read", p.raw)
	return string(data), nil
}

// Write replaces the file's content, creating parent directories as needed.
func (p *Path) Write(data string) error {
	return p.writeBytes("write", []byte(data), os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
}

// Append extends the file (creating it first if absent), creating parent
// directories as needed.
func (p *Path) Append(data string) error {
	return p.writeBytes("append", []byte(data), os.O_WRONLY|os.O_CREATE|os.O_APPEND)
}

func (p *Path) writeBytes(op string, data []byte, flag int) error {
	log := eventlog.Default()
	log.Start(op, p.raw)

	if err := os.MkdirAll(filepath.Dir(p.raw), 0o755); err != nil {
		err = fmt.Errorf("%s %s: %w", op, p.raw, err)
		log.Failure(op, err.Error())
		return err
	}

	file, err := os.OpenFile(p.raw, flag, 0o644)
	if err != nil {
		err = fmt.Errorf("%s %s: %w", op, p.raw, err)
		log.Failure(op, err.Error())
		return err
	}
	_, werr := file.Write(data)
	cerr := file.Close()
	if werr == nil {
		werr = cerr
	}
	if werr != nil {
		werr = fmt.Errorf("%s %s: %w", op, p.raw, werr)
		log.Failure(op, werr.Error())
		return werr
	}

	log.Success(op, p.raw)
	return nil
}

// Mkdir creates the directory, parents included. Existing directories are
// not an error; a file occupying the path fails with ErrNotDirectory.
func (p *Path) Mkdir() error {
	log := eventlog.Default()
	log.Start("mkdir", p.raw)
	if info, err := os.Stat(p.raw); err == nil && !info.IsDir() {
		err = fmt.Errorf("mkdir %s: %w", p.raw, ErrNotDirectory)
		log.Failure("mkdir", err.Error())
		return err
	}
	if err := os.MkdirAll(p.raw, 0o755); err != nil {
		err = fmt.Errorf("mkdir %s: %w", p.raw, err)
		log.Failure("mkdir", err.Error())
		return err
	}
	log.Success("mkdir", p.raw)
	return nil
}

// Delete removes the file, or the directory and everything under it.
// Idempotent: an already-absent path is success.
func (p *Path) Delete() error {
	log := eventlog.Default()
	log.Start("delete", p.raw)
	if err := os.RemoveAll(p.raw); err != nil {
		err = fmt.Errorf("delete %s: %w", p.raw, err)
		log.Failure("delete", err.Error())
		return err
	}
	log.Success("delete", p.raw)
	return nil
}

// CopyTo copies the file, or the directory recursively (merging into an
// existing destination), creating destination parents as needed.
func (p *Path) CopyTo(dest *Path) (*Path, error) {
	log := eventlog.Default()
	log.Start("copy_to", p.raw)

	info, err := os.Stat(p.raw)
	if err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("copy %s: %w", p.raw, ErrNotFound)
		} else {
			err = fmt.Errorf("copy %s: %w", p.raw, err)
		}
		log.Failure("copy_to", err.Error())
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dest.raw), 0o755); err != nil {
		err = fmt.Errorf("copy %s to %s: %w", p.raw, dest.raw, err)
		log.Failure("copy_to", err.Error())
		return nil, err
	}

	if info.IsDir() {
		err = copyDir(p.raw, dest.raw)
	} else {
		err = copyFile(p.raw, dest.raw, info.Mode())
	}
	if err != nil {
		err = fmt.Errorf("copy %s to %s: %w", p.raw, dest.raw, err)
		log.Failure("copy_to", err.Error())
		return nil, err
	}

	log.Success("copy_to", p.raw)
	return dest, nil
}

// MoveTo renames the path, falling back to copy-and-delete across devices.
// An existing destination fails with ErrConflict unless overwrite is set.
func (p *Path) MoveTo(dest *Path, overwrite bool) (*Path, error) {
	log := eventlog.Default()
	log.Start("move_to", p.raw)

	if _, err := os.Stat(p.raw); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("move %s: %w", p.raw, ErrNotFound)
		} else {
			err = fmt.Errorf("move %s: %w", p.raw, err)
		}
		log.Failure("move_to", err.Error())
		return nil, err
	}

	if _, err := os.Stat(dest.raw); err == nil {
		if !overwrite {
			err = fmt.Errorf("move %s to %s: %w", p.raw, dest.raw, ErrConflict)
			log.Failure("move_to", err.Error())
			return nil, err
		}
		if err := os.RemoveAll(dest.raw); err != nil {
			err = fmt.Errorf("move %s to %s: %w", p.raw, dest.raw, err)
			log.Failure("move_to", err.Error())
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(dest.raw), 0o755); err != nil {
		err = fmt.Errorf("move %s to %s: %w", p.raw, dest.raw, err)
		log.Failure("move_to", err.Error())
		return nil, err
	}

	if err := os.Rename(p.raw, dest.raw); err != nil {
		// Cross-device rename; degrade to copy then delete.
		if _, cerr := p.CopyTo(dest); cerr != nil {
			log.Failure("move_to", cerr.Error())
			return nil, cerr
		}
		if derr := p.Delete(); derr != nil {
			log.Failure("move_to", derr.Error())
			return nil, derr
		}
	}

	log.Success("move_to", p.raw)
	return dest, nil
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	_, cerr := io.Copy(out, in)
	if err := out.Close(); cerr == nil {
		cerr = err
	}
	return cerr
}

func copyDir(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}
