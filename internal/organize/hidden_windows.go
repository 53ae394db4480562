package organize

import (
	"os"
	"syscall"
)

func isHidden(path string, info os.FileInfo) bool {
	if st, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return st.FileAttributes&syscall.FILE_ATTRIBUTE_HIDDEN != 0
	}
	return false
}

func isSystemFile(path string, info os.FileInfo) bool {
	if st, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		return st.FileAttributes&syscall.FILE_ATTRIBUTE_SYSTEM != 0
	}
	return false
}
