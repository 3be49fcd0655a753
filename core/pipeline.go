package core

import (
	"fmt"
	"os"
	"os/exec"

	"josephlewis.net/pish/core/shell"
)

// stageDelims separate the words of one pipeline stage.
const stageDelims = " \t\v\n;"

// execStage tokenizes one stage and runs it between the pair. Builtins
// run inline in the controlling process and their status is final;
// external commands are started as children and the returned command is
// reaped by the caller.
func (sh *Shell) execStage(cmdstr string, fds Pair) (int, *exec.Cmd) {
	argv, err := shell.Fold(cmdstr, stageDelims, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pish: %v\n", err)
		return -1, nil
	}
	if len(argv) == 0 {
		return 0, nil
	}

	if b := lookupBuiltin(argv[0]); b != nil {
		return b.exec(sh, argv, fds), nil
	}
	return sh.spawn(argv, fds)
}

// pipeline executes the stages concurrently, chained through anonymous
// pipes, and returns the status of the last stage. An empty plan is a
// no-op returning success.
//
// The pipe array holds N+1 pairs: pair 0's read end and pair N's write
// end are duplicated from the outer endpoints so the teardown can close
// every end it sees uniformly; pairs 1..N-1 are fresh pipes. Stage i
// reads from pair i and writes to pair i+1. On every return path all
// descriptors in the array are closed and no started child survives.
func (sh *Shell) pipeline(stages []string, outer Pair) (status int) {
	n := len(stages)
	if n == 0 {
		return 0
	}
	sh.trace.log("pipeline", "stages", n)

	pipev := make([]Pair, n+1)
	cmds := make([]*exec.Cmd, n)
	results := make([]int, n)

	defer func() {
		for _, cmd := range cmds {
			if cmd != nil && sh.procs.has(cmd) {
				if cmd.Process != nil {
					_ = cmd.Process.Kill()
				}
				sh.reap(cmd)
			}
		}
		for _, p := range pipev {
			closeQuiet(p.R)
			closeQuiet(p.W)
		}
	}()

	var err error
	if pipev[0].R, err = dupFile(outer.R); err != nil {
		fmt.Fprintf(os.Stderr, "pish: %v\n", err)
		return -1
	}
	for i := 1; i < n; i++ {
		if pipev[i].R, pipev[i].W, err = os.Pipe(); err != nil {
			fmt.Fprintf(os.Stderr, "pish: pipe: %v\n", err)
			return -1
		}
	}
	if pipev[n].W, err = dupFile(outer.W); err != nil {
		fmt.Fprintf(os.Stderr, "pish: %v\n", err)
		return -1
	}

	for i := 0; i < n; i++ {
		results[i], cmds[i] = sh.execStage(stages[i], Pair{R: pipev[i].R, W: pipev[i+1].W})
		// Drop our copy of the write end so the next stage's reader
		// observes EOF once this stage terminates.
		closeQuiet(pipev[i+1].W)
		if results[i] < 0 {
			return results[i]
		}
	}

	for i, cmd := range cmds {
		if cmd == nil {
			continue
		}
		results[i] = sh.reap(cmd)
		if results[i] < 0 {
			return results[i]
		}
	}

	return results[n-1]
}
