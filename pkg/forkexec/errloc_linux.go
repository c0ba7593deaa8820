package forkexec

import (
	"fmt"
	"syscall"
	"unsafe"
)

// ErrorLocation defines the setup step at which the child failed
type ErrorLocation int

// ChildError is the failure record a child writes to the error channel
// before exiting. It is written as raw bytes since the forked child
// cannot allocate; DecodeChildError recovers it on the parent side
type ChildError struct {
	Err      syscall.Errno
	Location ErrorLocation
	Index    int
}

// Location constants
const (
	LocClone ErrorLocation = iota + 1
	LocCloseRead
	LocGetPid
	LocSetPgid
	LocDup3
	LocFcntl
	LocChdir
	LocSetRlimit
	LocSetNoNewPrivs
	LocSeccomp
	LocStop
	LocExecve
)

var locToString = []string{
	"unknown",
	"clone",
	"close_read",
	"getpid",
	"setpgid",
	"dup3",
	"fcntl",
	"chdir",
	"setrlimit",
	"set_no_new_privs",
	"seccomp",
	"stop",
	"execve",
}

func (e ErrorLocation) String() string {
	if e >= LocClone && e <= LocExecve {
		return locToString[e]
	}
	return "unknown"
}

func (e ChildError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("%s(%d): %s", e.Location.String(), e.Index, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Location.String(), e.Err.Error())
}

// DecodeChildError recovers a ChildError from bytes drained off the
// error channel. ok is false when the channel held no complete record
func DecodeChildError(b []byte) (ce ChildError, ok bool) {
	size := int(unsafe.Sizeof(ce))
	if len(b) < size {
		return ce, false
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(&ce)), size), b[:size])
	if ce.Location < LocClone || ce.Location > LocExecve {
		return ChildError{}, false
	}
	return ce, true
}
