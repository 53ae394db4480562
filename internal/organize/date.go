package organize

import (
	"os"
	"time"
)

// Years outside this window are treated as filesystem noise (FAT epoch
// artifacts, 1601-01-01 placeholders) rather than real file dates.
const minSaneYear = 1980

// OrganizingDateOf derives the date used for dated destination folders.
// It takes the earlier of the creation and modification timestamps; if that
// lands outside the sane window it retries with the modification time alone,
// and reports valid=false when both are out of range. Creation time is
// unreliable on several platforms and after a file has been moved once, so
// this is a best-effort heuristic; callers must tolerate valid=false.
func OrganizingDateOf(path string) (time.Time, bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false, err
	}

	ctime, mtime := fileTimes(info)

	candidate := ctime
	if mtime.Before(candidate) {
		candidate = mtime
	}
	if !saneYear(candidate) {
		candidate = mtime
	}
	if !saneYear(candidate) {
		return time.Time{}, false, nil
	}
	return candidate, true, nil
}

func saneYear(t time.Time) bool {
	y := t.Year()
	return y >= minSaneYear && y <= time.Now().Year()+1
}
