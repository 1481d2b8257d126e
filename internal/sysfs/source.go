// Package sysfs reads kernel attribute files. A missing, unreadable or
// empty attribute is an ordinary outcome and is reported as absent,
// never as an error.
package sysfs

import (
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// MaxAttrSize bounds a single attribute read.
const MaxAttrSize = 512

type Source interface {
	// Read returns the trimmed content of a single-value attribute.
	Read(path string) (string, bool)
	// ReadFile returns up to limit bytes of a multi-line pseudo-file.
	ReadFile(path string, limit int) ([]byte, bool)
	Exists(path string) bool
}

// FileSource reads attributes relative to root, so a captured tree can
// stand in for the live /sys and /proc.
type FileSource struct {
	root string
}

func NewFileSource(root string) *FileSource {
	return &FileSource{root: root}
}

func (s *FileSource) Root() string {
	if s.root == "" {
		return "/"
	}
	return s.root
}

func (s *FileSource) abs(path string) string {
	if s.root == "" || s.root == "/" {
		return path
	}
	return filepath.Join(s.root, path)
}

func (s *FileSource) Read(path string) (string, bool) {
	var buf [MaxAttrSize]byte

	fd, err := unix.Open(s.abs(path), unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return "", false
	}
	defer unix.Close(fd)

	n, err := readRetry(fd, buf[:])
	if err != nil || n <= 0 {
		return "", false
	}

	v := strings.TrimSpace(string(buf[:n]))
	if v == "" {
		return "", false
	}
	return v, true
}

func (s *FileSource) ReadFile(path string, limit int) ([]byte, bool) {
	if limit <= 0 {
		limit = MaxAttrSize
	}

	fd, err := unix.Open(s.abs(path), unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, false
	}
	defer unix.Close(fd)

	buf := make([]byte, 0, min(limit, 4096))
	chunk := make([]byte, 4096)
	for len(buf) < limit {
		want := min(len(chunk), limit-len(buf))
		n, err := readRetry(fd, chunk[:want])
		if err != nil {
			return nil, false
		}
		if n == 0 {
			break
		}
		buf = append(buf, chunk[:n]...)
	}

	if len(buf) == 0 {
		return nil, false
	}
	return buf, true
}

func (s *FileSource) Exists(path string) bool {
	return unix.Access(s.abs(path), unix.F_OK) == nil
}

func readRetry(fd int, p []byte) (int, error) {
	for {
		n, err := unix.Read(fd, p)
		if err == unix.EINTR {
			continue
		}
		return n, err
	}
}
