package organize

import (
	"os"
	"syscall"
	"time"
)

// fileTimes returns the file birth time and modification time. Darwin
// keeps a real birth timestamp in Birthtimespec.
func fileTimes(info os.FileInfo) (ctime, mtime time.Time) {
	mtime = info.ModTime()
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		ctime = time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec)
	} else {
		ctime = mtime
	}
	return ctime, mtime
}
