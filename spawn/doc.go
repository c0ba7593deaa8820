// Package spawn starts a target program in its own process group and
// supervises it until exit: wall clock and CPU time budgets are
// enforced by killing the whole group, and resource usage together
// with the termination cause is collected into a runner.Result.
//
// The child is created by pkg/forkexec and suspends itself after local
// setup (fd mapping, workdir, rlimits). The parent only resumes it
// once both watchdogs are armed, so no part of the target's run is
// ever unaccounted for. CPU time is sampled from the child's CPU
// clock while the exit status is still held unreaped, which keeps the
// reading attributable to the target rather than to a recycled pid.
package spawn
