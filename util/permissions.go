package util

import (
	"io/fs"
)

// Default modes for files and directories written by necrosis tools.
// nolint:godot
const (
	PermDirectory fs.FileMode = 0755 // rwxr-xr-x
	PermFile      fs.FileMode = 0644 // rw-r--r--
)
