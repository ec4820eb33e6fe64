package pathkit

import (
	"fmt"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
)

// FileInfo is a point-in-time metadata snapshot.
type FileInfo struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	IsDir     bool      `json:"is_dir"`
	Mode      string    `json:"mode"`
	Modified  time.Time `json:"modified"`
	Extension string    `json:"extension,omitempty"`
}

// Exists reports whether the path currently exists. Never fails.
func (p *Path) Exists() bool {
	_, err := os.Stat(p.raw)
	return err == nil
}

// IsFile reports whether the path is a regular file. Never fails.
func (p *Path) IsFile() bool {
	info, err := os.Stat(p.raw)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether the path is a directory. Never fails.
func (p *Path) IsDir() bool {
	info, err := os.Stat(p.raw)
	return err == nil && info.IsDir()
}

// Size returns the file size in bytes, or the recursive total for a
// directory. Absent or unreadable paths count as 0.
func (p *Path) Size() int64 {
	info, err := os.Stat(p.raw)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}

	var total atomic.Int64
	conf := fastwalk.Config{Follow: false}
	_ = fastwalk.Walk(&conf, p.raw, func(_ string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if fi, err := d.Info(); err == nil {
			total.Add(fi.Size())
		}
		return nil
	})
	return total.Load()
}

// ModTime returns the last modification time, or the zero time when the path
// is absent.
func (p *Path) ModTime() time.Time {
	info, err := os.Stat(p.raw)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// CreatedTime returns the inode change time, the closest the platform gets to
// a creation timestamp. Zero time when the path is absent.
func (p *Path) CreatedTime() time.Time {
	info, err := os.Stat(p.raw)
	if err != nil {
		return time.Time{}
	}
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
	}
	return info.ModTime()
}

// Stat returns a metadata snapshot, or the zero FileInfo when the path is
// absent.
func (p *Path) Stat() FileInfo {
	info, err := os.Stat(p.raw)
	if err != nil {
		return FileInfo{}
	}
	fi := FileInfo{
		Name:     info.Name(),
		Path:     p.raw,
		Size:     info.Size(),
		IsDir:    info.IsDir(),
		Mode:     info.Mode().String(),
		Modified: info.ModTime(),
	}
	if !info.IsDir() {
		fi.Extension = p.Ext()
	}
	return fi
}

// MIMEType sniffs the file content and returns its MIME type, or "" when the
// path is absent or unreadable.
func (p *Path) MIMEType() string {
	if !p.IsFile() {
		return ""
	}
	mtype, err := mimetype.DetectFile(p.raw)
	if err != nil {
		return ""
	}
	return mtype.String()
}

// HumanSize formats Size with IEC units.
func (p *Path) HumanSize() string {
	return humanSize(p.Size())
}

func humanSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
