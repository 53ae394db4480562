package organize

import (
	"os"
	"syscall"
	"time"
)

// fileTimes returns the closest thing to a creation time the platform
// offers, plus the modification time. Linux exposes no birth time through
// os.FileInfo, so the inode change time stands in for creation.
func fileTimes(info os.FileInfo) (ctime, mtime time.Time) {
	mtime = info.ModTime()
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		ctime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	} else {
		ctime = mtime
	}
	return ctime, mtime
}
