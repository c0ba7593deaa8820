//go:build linux

package seccomp

import (
	"testing"

	libseccomp "github.com/elastic/go-seccomp-bpf"
)

var defaultSyscallAllows = []string{
	"read", "write", "readv", "writev", "close", "fstat", "lseek", "dup", "dup3", "fcntl",
	"mmap", "mprotect", "munmap", "brk", "mremap", "madvise",
	"rt_sigaction", "rt_sigprocmask", "rt_sigreturn", "sigaltstack",
	"getcwd", "exit", "exit_group", "arch_prctl",
	"gettimeofday", "getrlimit", "getrusage", "times", "clock_gettime", "restart_syscall",
	"execve",
}

func TestBuild(t *testing.T) {
	b := Builder{
		Allow:   defaultSyscallAllows,
		Default: libseccomp.ActionKillProcess,
	}
	prog, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if prog.Len == 0 || prog.Filter == nil {
		t.Errorf("Build returned empty program: %+v", prog)
	}
}

func TestBuild_UnknownSyscall(t *testing.T) {
	b := Builder{
		Allow:   []string{"definitely_not_a_syscall"},
		Default: libseccomp.ActionKillProcess,
	}
	if _, err := b.Build(); err == nil {
		t.Error("Build accepted an unknown syscall name")
	}
}

// BenchmarkBuildDefaultFilter tracks the cost of assembling the policy
// once per run
func BenchmarkBuildDefaultFilter(b *testing.B) {
	builder := Builder{
		Allow:   defaultSyscallAllows,
		Default: libseccomp.ActionKillProcess,
	}
	for i := 0; i < b.N; i++ {
		builder.Build()
	}
}
