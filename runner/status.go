package runner

// Status is the termination status of one run
type Status int

// Termination status for the target program
const (
	StatusInvalid Status = iota // 0 not initialized

	StatusExited    // 1 exited on its own (code in ExitStatus)
	StatusSignalled // 2 killed by a signal
	StatusDumped    // 3 killed by a signal with core dump

	// Runner failure, not a property of the target
	StatusRunnerError // 4 runner error
)

var statusString = []string{
	"Invalid",
	"Exited",
	"Signalled",
	"Dumped",
	"Runner Error",
}

func (s Status) String() string {
	i := int(s)
	if i >= 0 && i < len(statusString) {
		return statusString[i]
	}
	return statusString[0]
}

func (s Status) Error() string {
	return s.String()
}
