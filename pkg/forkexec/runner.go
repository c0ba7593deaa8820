// Package forkexec creates the child process for the supervised and
// direct launchers: it forks, performs local setup inside the child
// (process group, descriptor redirection, working directory, resource
// limits, optional seccomp filter), optionally suspends the child at a
// stop barrier, and finally execs the target.
package forkexec

import (
	"syscall"

	"github.com/ojtools/go-spawn/pkg/rlimit"
)

// Runner configures the child process to create. A successful Start
// hands back the pid and the read end of the error channel: any
// child-side setup or exec failure arrives there as an encoded
// ChildError, while a successful execve closes the channel silently
type Runner struct {
	// argv and env for execve syscall for the child process
	Args []string
	Env  []string

	// file descriptors mapped to 0..len-1 in the child.
	// Files[i] == i inherits the descriptor, a negative value closes it,
	// any other value is duplicated onto i
	Files []int

	// work path set by chdir(dir) (current working directory for child)
	WorkDir string

	// POSIX resource limits installed by the child via prlimit64,
	// before the stop barrier
	RLimits []rlimit.RLimit

	// seccomp syscall filter loaded right before execve
	Seccomp *syscall.SockFprog

	// stop before exec makes the child kill(getpid(), SIGSTOP) itself
	// once local setup is done, so the parent can observe the barrier
	// with a stopped-or-exited wait, arm its timers and SIGCONT the
	// child. Setup latency is thereby excluded from any time budget
	StopBeforeExec bool
}
