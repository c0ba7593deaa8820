package spawn

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ojtools/go-spawn/pkg/forkexec"
	"github.com/ojtools/go-spawn/runner"
)

// RunDirect executes a trusted helper without watchdogs or limits and
// blocks until it terminates. Exec failures are still recovered from
// the error channel into the Result
func RunDirect(args, env []string, files []int, workDir string) (runner.Result, error) {
	start := time.Now()
	ch := &forkexec.Runner{
		Args:    args,
		Env:     env,
		Files:   files,
		WorkDir: workDir,
	}
	pid, errch, err := ch.Start()
	if err != nil {
		return runner.Result{Status: runner.StatusRunnerError}, fmt.Errorf("spawn: start: %w", err)
	}
	defer errch.Close()

	var ws unix.WaitStatus
	var rusage unix.Rusage
	for {
		if _, err = unix.Wait4(pid, &ws, 0, &rusage); err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return runner.Result{Status: runner.StatusRunnerError}, fmt.Errorf("spawn: wait: %w", err)
	}

	result := runner.Result{
		WallTime: time.Since(start),
		Usage: runner.Usage{
			UserTime:   time.Duration(rusage.Utime.Nano()),
			SystemTime: time.Duration(rusage.Stime.Nano()),
			MaxRSS:     runner.Size(rusage.Maxrss << 10),
		},
	}
	result.CPUTime = result.Usage.UserTime + result.Usage.SystemTime

	if msg, ok := drainChildError(errch); ok {
		result.Status = runner.StatusRunnerError
		result.ExitStatus = ws.ExitStatus()
		result.Error = msg
		return result, nil
	}

	applyWaitStatus(&result, ws)
	return result, nil
}
