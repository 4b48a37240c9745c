package main

import (
	"io/fs"
	"os"
	"path/filepath"
)

// NewFS returns the working-directory file system that task planning and
// directory watching walk over; tests substitute an fstest.MapFS.
func NewFS() fs.FS {
	return dirFS("")
}

// dirFS is like os.DirFS but accepts the OS paths that flatten tasks carry,
// absolute or relative.
type dirFS string

func (dir dirFS) Open(name string) (fs.File, error) {
	return os.Open(filepath.Join(string(dir), name))
}

func (dir dirFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(filepath.Join(string(dir), name))
}
