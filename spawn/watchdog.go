package spawn

import (
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// cpuPollMin is the shortest sleep between CPU clock samples. The
// sampler sleeps for the remaining budget, so it only spins near the
// limit
const cpuPollMin = time.Millisecond

// watchdog kills a process group once, unless disarmed first. Disarm
// and fire race over the same mutex so a kill can never land after
// the supervisor has reaped the exit status
type watchdog struct {
	mu       sync.Mutex
	disarmed bool
	stop     func()
}

// Disarm cancels the pending kill. Safe to call multiple times and on
// a nil watchdog
func (w *watchdog) Disarm() {
	if w == nil {
		return
	}
	w.mu.Lock()
	already := w.disarmed
	w.disarmed = true
	w.mu.Unlock()
	if !already && w.stop != nil {
		w.stop()
	}
}

func (w *watchdog) fire(pgid int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.disarmed {
		return
	}
	w.disarmed = true
	// negative pid targets the whole process group
	unix.Kill(-pgid, unix.SIGKILL)
}

// armWallWatchdog kills the process group of pid once limit real time
// has passed. A zero limit arms nothing
func armWallWatchdog(pid int, limit time.Duration) *watchdog {
	if limit <= 0 {
		return &watchdog{disarmed: true}
	}
	w := &watchdog{}
	t := time.AfterFunc(limit, func() {
		w.fire(pid)
	})
	w.stop = func() { t.Stop() }
	return w
}

// armCPUWatchdog kills the process group of pid once its CPU clock
// passes limit. Unlike a SIGKILL'ed RLIMIT_CPU this measures the
// process CPU clock directly, so a target sleeping on the wall clock
// is never charged. A zero limit arms nothing
func armCPUWatchdog(pid int, limit time.Duration) *watchdog {
	if limit <= 0 {
		return &watchdog{disarmed: true}
	}
	w := &watchdog{}
	done := make(chan struct{})
	w.stop = func() { close(done) }
	go func() {
		for {
			used, err := processCPUTime(pid)
			if err != nil {
				// clock is gone, the process already exited
				return
			}
			if used >= limit {
				w.fire(pid)
				return
			}
			remaining := limit - used
			if remaining < cpuPollMin {
				remaining = cpuPollMin
			}
			select {
			case <-done:
				return
			case <-time.After(remaining):
			}
		}
	}()
	return w
}
