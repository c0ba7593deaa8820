package spawn

import (
	"time"

	"golang.org/x/sys/unix"
)

// kernel encoding of clock_getcpuclockid(3) for another process:
// the pid is folded into the clockid together with CPUCLOCK_SCHED
const cpuClockSched = 2

func processCPUClockID(pid int) int32 {
	return (^int32(pid))<<3 | cpuClockSched
}

// processCPUTime reads the total CPU time consumed by pid. Fails with
// EINVAL or ESRCH once the process has been reaped
func processCPUTime(pid int) (time.Duration, error) {
	var ts unix.Timespec
	if err := unix.ClockGettime(processCPUClockID(pid), &ts); err != nil {
		return 0, err
	}
	return time.Duration(ts.Nano()), nil
}
