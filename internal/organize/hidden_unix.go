//go:build !windows

package organize

import (
	"os"
	"path/filepath"
	"strings"
)

func isHidden(path string, _ os.FileInfo) bool {
	name := filepath.Base(path)
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// isSystemFile excludes irregular filesystem objects (devices, sockets,
// pipes). Regular files and directories are never "system" on unix.
func isSystemFile(_ string, info os.FileInfo) bool {
	mode := info.Mode()
	if mode.IsRegular() || mode.IsDir() || mode&os.ModeSymlink != 0 {
		return false
	}
	return true
}
