package organize

import (
	"os"
	"syscall"
	"time"
)

// fileTimes returns the creation time and modification time. On Windows the
// creation time is first-class file metadata.
func fileTimes(info os.FileInfo) (ctime, mtime time.Time) {
	mtime = info.ModTime()
	if st, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		ctime = time.Unix(0, st.CreationTime.Nanoseconds())
	} else {
		ctime = mtime
	}
	return ctime, mtime
}
