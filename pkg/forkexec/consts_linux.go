package forkexec

// defines missing consts from the syscall package
const (
	_SECCOMP_SET_MODE_FILTER   = 1
	_SECCOMP_FILTER_FLAG_TSYNC = 1
)
