package analyzer

import (
	"time"
)

// timeWindow is a bounded-recency queue of event timestamps. Entries are
// appended in stream order and evicted from the front once they fall out of
// the trailing window, which keeps maintenance O(1) amortized on a per-user
// time-ordered stream.
type timeWindow struct {
	times []time.Time
}

// push appends ts and evicts entries older than maxAge relative to ts
func (w *timeWindow) push(ts time.Time, maxAge time.Duration) {
	w.times = append(w.times, ts)
	w.prune(ts, maxAge)
}

// prune drops front entries whose age relative to now exceeds maxAge
func (w *timeWindow) prune(now time.Time, maxAge time.Duration) {
	cut := 0
	for cut < len(w.times) && now.Sub(w.times[cut]) > maxAge {
		cut++
	}
	if cut > 0 {
		w.times = w.times[cut:]
	}
}

func (w *timeWindow) len() int {
	return len(w.times)
}

// userState carries the rolling per-user state consulted by the rules.
// The engine is the sole owner; state is partitioned by user, so nothing
// here needs locking on a single sequential pass.
type userState struct {
	failedLogins timeWindow
	usbInserts   timeWindow
	// dailyAccess counts file accesses per ISO calendar date. Date keys are
	// never evicted; counts live for the duration of the run.
	dailyAccess map[string]int
	lastSeen    time.Time
	seenAny     bool
}

func newUserState() *userState {
	return &userState{
		dailyAccess: make(map[string]int),
	}
}
