package spawn

import (
	"os"
	"testing"
	"time"
)

func TestDisarmIdempotent(t *testing.T) {
	w := armWallWatchdog(os.Getpid(), time.Hour)
	w.Disarm()
	w.Disarm()
	w.Disarm()
}

func TestNilWatchdogDisarm(t *testing.T) {
	var w *watchdog
	w.Disarm()
}

func TestZeroLimitArmsNothing(t *testing.T) {
	if w := armWallWatchdog(os.Getpid(), 0); !w.disarmed {
		t.Error("zero wall limit armed a watchdog")
	}
	if w := armCPUWatchdog(os.Getpid(), 0); !w.disarmed {
		t.Error("zero cpu limit armed a watchdog")
	}
}

func TestDisarmBeatsFire(t *testing.T) {
	w := &watchdog{}
	w.Disarm()
	// fire after disarm must not signal anything; firing at our own
	// pgid would kill the test process
	w.fire(os.Getpid())
}

func TestProcessCPUTimeSelf(t *testing.T) {
	d, err := processCPUTime(os.Getpid())
	if err != nil {
		t.Fatal(err)
	}
	if d <= 0 {
		t.Errorf("own cpu time = %v, want positive", d)
	}
}

func TestProcessCPUTimeGone(t *testing.T) {
	// pid 0 encodes our own clock; use an absurd pid instead
	if _, err := processCPUTime(1 << 22); err == nil {
		t.Error("expected an error for a nonexistent pid")
	}
}
