package spawn

import (
	"time"

	"golang.org/x/sys/unix"
)

// waitStopped blocks until pid stops at the self-SIGSTOP barrier or
// terminates. Termination before the barrier means setup failed and
// the status has already been consumed
func waitStopped(pid int) (unix.WaitStatus, error) {
	var ws unix.WaitStatus
	for {
		_, err := unix.Wait4(pid, &ws, unix.WUNTRACED, nil)
		if err == unix.EINTR {
			continue
		}
		return ws, err
	}
}

// waitExitedNoReap blocks until pid has terminated but leaves it in
// zombie state, so its CPU clock and exit status stay readable
func waitExitedNoReap(pid int) error {
	var si unix.Siginfo
	for {
		err := unix.Waitid(unix.P_PID, pid, &si, unix.WEXITED|unix.WNOWAIT, nil)
		if err == unix.EINTR {
			continue
		}
		return err
	}
}

// sampleClockAndReap reads the child's CPU clock and then consumes its
// exit status together with rusage. The order matters: the clock of a
// reaped process is gone. A clock read failure is folded into a zero
// reading since the consuming wait still yields rusage-based times
func sampleClockAndReap(pid int) (time.Duration, unix.WaitStatus, unix.Rusage, error) {
	cpuTime, clockErr := processCPUTime(pid)
	if clockErr != nil {
		cpuTime = 0
	}

	var ws unix.WaitStatus
	var rusage unix.Rusage
	for {
		_, err := unix.Wait4(pid, &ws, 0, &rusage)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return cpuTime, ws, rusage, err
		}
		return cpuTime, ws, rusage, nil
	}
}
