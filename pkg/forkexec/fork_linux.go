package forkexec

import (
	"os"
	"syscall"
	_ "unsafe" // required for go:linkname

	"golang.org/x/sys/unix"
)

//go:linkname beforeFork syscall.runtime_BeforeFork
func beforeFork()

//go:linkname afterFork syscall.runtime_AfterFork
func afterFork()

//go:linkname afterForkInChild syscall.runtime_AfterForkInChild
func afterForkInChild()

// Start forks the child and returns its pid together with the read end
// of the error channel. With StopBeforeExec set, the child is left
// suspended in a stopped state after local setup and the caller must
// SIGCONT it; otherwise it proceeds straight to execve.
// The child joins its own fresh process group (pgid == pid)
func (r *Runner) Start() (int, *os.File, error) {
	argv0, argv, env, err := prepareExec(r.Args, r.Env)
	if err != nil {
		return 0, nil, err
	}

	// prepare work dir
	workdir, err := syscallStringFromString(r.WorkDir)
	if err != nil {
		return 0, nil, err
	}

	// error channel: the write end is close-on-exec, so a successful
	// execve closes it with no byte written
	var p [2]int
	if err := syscall.Pipe2(p[:], syscall.O_CLOEXEC); err != nil {
		return 0, nil, err
	}

	// fork in child
	pid, err1 := forkAndExecInChild(r, argv0, argv, env, workdir, p)

	// restore all signals
	afterFork()
	syscall.ForkLock.Unlock()

	unix.Close(p[1])

	// clone syscall failed
	if err1 != 0 {
		unix.Close(p[0])
		return 0, nil, syscall.Errno(err1)
	}
	return int(pid), os.NewFile(uintptr(p[0]), "errch"), nil
}
