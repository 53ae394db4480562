package organize

import "time"

// DefaultProgressInterval is the collapse window for progress updates
// crossing the engine/presentation boundary.
const DefaultProgressInterval = 80 * time.Millisecond

// ThrottleScan collapses scan progress to at most one update per interval,
// so a slow consumer cannot saturate the engine's execution path. The last
// update before the throttle window closes may be dropped; the terminal
// completion message carries the final totals.
func ThrottleScan(fn ScanProgress, interval time.Duration) ScanProgress {
	if fn == nil || interval <= 0 {
		return fn
	}
	var last time.Time
	return func(status string, seen int) {
		now := time.Now()
		if now.Sub(last) < interval {
			return
		}
		last = now
		fn(status, seen)
	}
}

// ThrottleMove collapses move progress to at most one update per interval.
func ThrottleMove(fn MoveProgress, interval time.Duration) MoveProgress {
	if fn == nil || interval <= 0 {
		return fn
	}
	var last time.Time
	return func(current, total int, name string) {
		now := time.Now()
		if now.Sub(last) < interval {
			return
		}
		last = now
		fn(current, total, name)
	}
}
