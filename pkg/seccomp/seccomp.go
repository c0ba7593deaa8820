//go:build linux

// Package seccomp assembles a syscall filter policy into the raw BPF
// program form that the child loads right before execve.
package seccomp

import (
	"fmt"
	"syscall"

	libseccomp "github.com/elastic/go-seccomp-bpf"
	"golang.org/x/net/bpf"
)

// Builder builds a kernel-ready filter from syscall name lists
type Builder struct {
	// Allow lists syscall names resolved against the build architecture
	Allow []string
	// Default is the action for syscalls not named in Allow
	Default libseccomp.Action
}

// Build assembles the policy and converts it to a SockFprog suitable
// for the seccomp(SECCOMP_SET_MODE_FILTER) call in the forked child
func (b *Builder) Build() (*syscall.SockFprog, error) {
	policy := libseccomp.Policy{
		DefaultAction: b.Default,
		Syscalls: []libseccomp.SyscallGroup{
			{
				Action: libseccomp.ActionAllow,
				Names:  b.Allow,
			},
		},
	}

	insts, err := policy.Assemble()
	if err != nil {
		return nil, fmt.Errorf("seccomp: assemble policy: %w", err)
	}
	raw, err := bpf.Assemble(insts)
	if err != nil {
		return nil, fmt.Errorf("seccomp: assemble bpf: %w", err)
	}
	return ExportFprog(raw), nil
}

// ExportFprog converts assembled BPF instructions to the SockFprog
// layout shared with the kernel
func ExportFprog(raw []bpf.RawInstruction) *syscall.SockFprog {
	filter := make([]syscall.SockFilter, len(raw))
	for i, ri := range raw {
		filter[i] = syscall.SockFilter{
			Code: ri.Op,
			Jt:   ri.Jt,
			Jf:   ri.Jf,
			K:    ri.K,
		}
	}
	return &syscall.SockFprog{
		Len:    uint16(len(filter)),
		Filter: &filter[0],
	}
}
