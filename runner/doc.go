// Package runner provides the common outcome types shared by the
// supervised and direct program launchers.
//
// Status
//
// Status records how the target terminated:
//  Exited (normal exit, code in ExitStatus)
//  Signalled / Dumped (killed by a signal, signal number in ExitStatus)
//  Runner Error (a supervisor primitive failed, not the target)
//
// Result
//
// Result is the immutable record of one run: termination status,
// wall-clock and CPU runtime, resource usage and an optional
// diagnostic message. The message is non-empty exactly when the run
// was not a clean zero exit.
//
// Size
//
// Size defines size in bytes, underlying type is uint64 so it
// is effective to store up to EiB of size
package runner
