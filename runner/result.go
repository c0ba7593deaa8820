package runner

import (
	"fmt"
	"time"
)

// Result is the immutable outcome of one run
type Result struct {
	Status            // termination status
	ExitStatus int    // exit code, or signal number if signalled
	Error      string // diagnostic message, non-empty iff not a clean zero exit

	WallTime time.Duration // elapsed real time between resume and reap
	CPUTime  time.Duration // CPU time consumed by the target's process clock

	Usage Usage // resource usage collected at reap
}

func (r Result) String() string {
	switch r.Status {
	case StatusExited:
		return fmt.Sprintf("Result[Exited(%d)][%v %v][%v]", r.ExitStatus, r.WallTime, r.CPUTime, r.Usage)

	case StatusSignalled, StatusDumped:
		return fmt.Sprintf("Result[%v(%d)][%v %v][%v]", r.Status, r.ExitStatus, r.WallTime, r.CPUTime, r.Usage)

	case StatusRunnerError:
		return fmt.Sprintf("Result[RunnerFailed(%s)][%v %v][%v]", r.Error, r.WallTime, r.CPUTime, r.Usage)

	default:
		return fmt.Sprintf("Result[%v(%s %d)][%v %v][%v]", r.Status, r.Error, r.ExitStatus, r.WallTime, r.CPUTime, r.Usage)
	}
}
