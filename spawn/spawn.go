package spawn

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ojtools/go-spawn/pkg/forkexec"
	"github.com/ojtools/go-spawn/pkg/rlimit"
	"github.com/ojtools/go-spawn/runner"
)

// ErrAlreadyRun is returned when Run is called twice on one Spawner
var ErrAlreadyRun = errors.New("spawn: already run")

// cpuBackstopSlack pads the RLIMIT_CPU hard cap beyond the watchdog
// budget so the kernel only steps in when the watchdog itself is stuck
const cpuBackstopSlack = 500 * time.Millisecond

// Spawner describes a single supervised run of a target program.
// A zero limit disables the corresponding watchdog. Run may be called
// at most once
type Spawner struct {
	// Args holds the command line; Args[0] is the executable path
	Args []string
	// Env holds the environment in "key=value" form
	Env []string

	// Files maps child descriptors: entry i becomes fd i. An entry
	// equal to its index is inherited, a negative entry closes fd i
	Files []int

	// WorkDir chdirs the child before exec when non empty
	WorkDir string

	// WallTimeLimit bounds real time from resume to termination
	WallTimeLimit time.Duration
	// CPUTimeLimit bounds the process CPU clock
	CPUTimeLimit time.Duration
	// MemoryLimit caps both address space and stack
	MemoryLimit runner.Size

	// RLimits are applied in the child after the built-in ones
	RLimits []rlimit.RLimit
	// Seccomp, when set, is loaded right before exec
	Seccomp *syscall.SockFprog

	started bool
}

// Run executes the target and supervises it to completion. Abnormal
// termination of the target, including watchdog kills and exec
// failures, is reported inside the Result; a non-nil error means the
// supervisor itself failed and the target's fate is unknown
func (s *Spawner) Run() (runner.Result, error) {
	if s.started {
		return runner.Result{Status: runner.StatusRunnerError}, ErrAlreadyRun
	}
	s.started = true

	baseRL := s.buildRLimits()
	ch := &forkexec.Runner{
		Args:           s.Args,
		Env:            s.Env,
		Files:          s.Files,
		WorkDir:        s.WorkDir,
		RLimits:        append(baseRL.PrepareRLimit(), s.RLimits...),
		Seccomp:        s.Seccomp,
		StopBeforeExec: true,
	}

	pid, errch, err := ch.Start()
	if err != nil {
		return runner.Result{Status: runner.StatusRunnerError}, fmt.Errorf("spawn: start: %w", err)
	}
	defer errch.Close()

	// If anything below fails, kill the whole group and reap the
	// child so no zombie or stray watchdog survives this call
	reaped := false
	defer func() {
		if reaped {
			return
		}
		unix.Kill(-pid, unix.SIGKILL)
		var ws unix.WaitStatus
		for {
			if _, err := unix.Wait4(pid, &ws, 0, nil); err != unix.EINTR {
				break
			}
		}
	}()

	// Barrier: the child self-stops after local setup
	ws, err := waitStopped(pid)
	if err != nil {
		return runner.Result{Status: runner.StatusRunnerError}, fmt.Errorf("spawn: wait barrier: %w", err)
	}
	if !ws.Stopped() {
		// died during setup, status already consumed
		reaped = true
		return runner.Result{
			Status: runner.StatusRunnerError,
			Error:  setupFailure(errch, ws),
		}, nil
	}

	// Arm both watchdogs before the target runs a single instruction
	start := time.Now()
	wall := armWallWatchdog(pid, s.WallTimeLimit)
	defer wall.Disarm()
	cpu := armCPUWatchdog(pid, s.CPUTimeLimit)
	defer cpu.Disarm()

	if err := unix.Kill(pid, unix.SIGCONT); err != nil {
		return runner.Result{Status: runner.StatusRunnerError, WallTime: time.Since(start)},
			fmt.Errorf("spawn: resume: %w", err)
	}

	if err := waitExitedNoReap(pid); err != nil {
		return runner.Result{Status: runner.StatusRunnerError, WallTime: time.Since(start)},
			fmt.Errorf("spawn: wait: %w", err)
	}
	// The CPU watchdog reads the same clock the sample below needs,
	// and must not fire between sample and reap
	cpu.Disarm()

	cpuTime, ws, rusage, err := sampleClockAndReap(pid)
	if err != nil {
		return runner.Result{Status: runner.StatusRunnerError, WallTime: time.Since(start), CPUTime: cpuTime},
			fmt.Errorf("spawn: reap: %w", err)
	}
	reaped = true
	wall.Disarm()
	wallTime := time.Since(start)

	result := runner.Result{
		WallTime: wallTime,
		CPUTime:  cpuTime,
		Usage: runner.Usage{
			UserTime:   time.Duration(rusage.Utime.Nano()),
			SystemTime: time.Duration(rusage.Stime.Nano()),
			MaxRSS:     runner.Size(rusage.Maxrss << 10),
		},
	}
	if result.CPUTime == 0 {
		result.CPUTime = result.Usage.UserTime + result.Usage.SystemTime
	}

	// A record on the error channel means exec itself failed
	if msg, ok := drainChildError(errch); ok {
		result.Status = runner.StatusRunnerError
		result.ExitStatus = ws.ExitStatus()
		result.Error = msg
		return result, nil
	}

	applyWaitStatus(&result, ws)
	return result, nil
}

// applyWaitStatus classifies a consumed wait status into the result,
// synthesizing the termination message for anything but a clean exit
func applyWaitStatus(result *runner.Result, ws unix.WaitStatus) {
	switch {
	case ws.Exited():
		result.Status = runner.StatusExited
		result.ExitStatus = ws.ExitStatus()
		if result.ExitStatus != 0 {
			result.Error = fmt.Sprintf("returned %d", result.ExitStatus)
		}
	case ws.Signaled():
		sig := ws.Signal()
		result.ExitStatus = int(sig)
		if ws.CoreDump() {
			result.Status = runner.StatusDumped
			result.Error = fmt.Sprintf("killed and dumped by signal %d - %s", int(sig), unix.SignalName(sig))
		} else {
			result.Status = runner.StatusSignalled
			result.Error = fmt.Sprintf("killed by signal %d - %s", int(sig), unix.SignalName(sig))
		}
	default:
		result.Status = runner.StatusRunnerError
		result.Error = fmt.Sprintf("unexpected wait status %#x", int(ws))
	}
}

// buildRLimits derives the child's resource limits. RLIMIT_CPU only
// backstops the CPU watchdog, so it rounds the budget up to whole
// seconds with slack on top
func (s *Spawner) buildRLimits() rlimit.RLimits {
	rl := rlimit.RLimits{
		Stack:        uint64(s.MemoryLimit),
		AddressSpace: uint64(s.MemoryLimit),
		DisableCore:  true,
	}
	if s.CPUTimeLimit > 0 {
		sec := uint64((s.CPUTimeLimit+cpuBackstopSlack)/time.Second) + 1
		rl.CPU = sec
		rl.CPUHard = sec + 1
	}
	return rl
}

// setupFailure builds the message for a child that died before the
// barrier, preferring the child's own error record over the raw status
func setupFailure(errch *os.File, ws unix.WaitStatus) string {
	if msg, ok := drainChildError(errch); ok {
		return msg
	}
	if ws.Signaled() {
		return fmt.Sprintf("killed by signal %d - %s during setup", int(ws.Signal()), unix.SignalName(ws.Signal()))
	}
	return fmt.Sprintf("exited %d during setup", ws.ExitStatus())
}

// maxDiagnostic bounds the reported message, not the drain itself
const maxDiagnostic = 1 << 10

// drainChildError reads the error channel to EOF, so a child blocked
// writing a long diagnostic can always finish. A successful exec
// closes the channel with nothing written
func drainChildError(errch *os.File) (string, bool) {
	b, err := io.ReadAll(errch)
	if err != nil || len(b) == 0 {
		return "", false
	}
	if ce, ok := forkexec.DecodeChildError(b); ok {
		return ce.Error(), true
	}
	if len(b) > maxDiagnostic {
		b = b[:maxDiagnostic]
	}
	return string(b), true
}
