// Command runjail executes a program under wall clock, CPU time and
// memory budgets and reports its termination cause and resource usage.
package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/ojtools/go-spawn/pkg/pipe"
	"github.com/ojtools/go-spawn/runner"
	"github.com/ojtools/go-spawn/spawn"
)

var (
	wallTimeLimit, cpuTimeLimit                  time.Duration
	memoryLimit                                  runner.Size
	inputFileName, outputFileName, errorFileName string
	workPath, policyFile, result                 string
	direct, showDetails                          bool
	envFlags                                     arrayFlags
	args                                         []string
)

func main() {
	flag.Usage = printUsage
	flag.DurationVar(&wallTimeLimit, "wall-time", 0, "Set the real time limit (0 disables it)")
	flag.DurationVar(&cpuTimeLimit, "cpu-time", 0, "Set the cpu time limit (0 disables it)")
	flag.Var(&memoryLimit, "memory", "Set the address space and stack limit (0 disables it)")
	flag.StringVar(&inputFileName, "in", "", "Set input file name")
	flag.StringVar(&outputFileName, "out", "", "Set output file name")
	flag.StringVar(&errorFileName, "err", "", "Set error file name")
	flag.StringVar(&workPath, "work-path", "", "Set the work path of the program")
	flag.StringVar(&policyFile, "policy", "", "Load a syscall policy file")
	flag.StringVar(&result, "res", "stdout", "Set the file name for output the result")
	flag.Var(&envFlags, "env", "Add an environment variable (key=value)")
	flag.BoolVar(&direct, "direct", false, "Run without limits or supervision")
	flag.BoolVar(&showDetails, "show-details", false, "Show supervision details")
	flag.Parse()

	args = flag.Args()
	if len(args) == 0 {
		printUsage()
	}

	var (
		f   *os.File
		err error
	)
	if result == "stdout" {
		f = os.Stdout
	} else if result == "stderr" {
		f = os.Stderr
	} else {
		f, err = os.Create(result)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open result file:", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	rt, err := start()
	if err != nil {
		debug(err)
		rt = runner.Result{
			Status: runner.StatusRunnerError,
			Error:  err.Error(),
		}
	}
	debug("result:", rt)

	fmt.Fprintf(f, "%d %d %d %d\n", int(rt.Status), int(rt.CPUTime/time.Millisecond),
		uint64(rt.Usage.MaxRSS)>>10, rt.ExitStatus)
	if rt.Error != "" {
		fmt.Fprintln(f, rt.Error)
	}
	if rt.Status == runner.StatusRunnerError {
		os.Exit(1)
	}
}

func start() (runner.Result, error) {
	env := append([]string{pathEnv}, envFlags...)

	files, err := prepareFiles(inputFileName, outputFileName, errorFileName)
	if err != nil {
		return runner.Result{}, fmt.Errorf("failed to prepare files: %w", err)
	}
	defer closeFiles(files)

	// if not defined, then use the original descriptor
	fds := make([]int, len(files))
	for i, f := range files {
		if f != nil {
			fds[i] = int(f.Fd())
		} else {
			fds[i] = i
		}
	}

	// with no error file given, capture the target's stderr so it can
	// be echoed in the details
	var stderrBuf *pipe.Buffer
	if errorFileName == "" && showDetails {
		stderrBuf, err = pipe.NewBuffer(4 << 10)
		if err != nil {
			return runner.Result{}, fmt.Errorf("failed to prepare stderr pipe: %w", err)
		}
		fds[2] = int(stderrBuf.W.Fd())
	}

	var filter *syscall.SockFprog
	if policyFile != "" {
		filter, err = loadPolicy(policyFile)
		if err != nil {
			return runner.Result{}, err
		}
		debug("policy loaded:", policyFile)
	}

	var rt runner.Result
	if direct {
		rt, err = spawn.RunDirect(args, env, fds, workPath)
	} else {
		s := &spawn.Spawner{
			Args:          args,
			Env:           env,
			Files:         fds,
			WorkDir:       workPath,
			WallTimeLimit: wallTimeLimit,
			CPUTimeLimit:  cpuTimeLimit,
			MemoryLimit:   memoryLimit,
			Seccomp:       filter,
		}
		debug("spawn:", args, "wall:", wallTimeLimit, "cpu:", cpuTimeLimit, "memory:", memoryLimit)
		rt, err = s.Run()
	}

	if stderrBuf != nil {
		stderrBuf.W.Close()
		<-stderrBuf.Done
		if stderrBuf.Buffer.Len() > 0 {
			debug("target stderr:", stderrBuf.Buffer.String())
		}
	}
	return rt, err
}
