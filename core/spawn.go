package core

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// spawn starts argv[0] from the search path as a child with its standard
// input and output rewired to the pair. The child inherits the current
// environment. The caller reaps the returned command.
//
// A command that cannot be resolved behaves like a child whose exec
// failed: a diagnostic on stderr and a recorded non-zero status. Only a
// genuine failure to create the process returns a negative, fatal status.
func (sh *Shell) spawn(argv []string, fds Pair) (int, *exec.Cmd) {
	path, err := exec.LookPath(argv[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "pish: failed to execute %s: %v\n", argv[0], err)
		return 127, nil
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Stderr: os.Stderr,
	}
	// Leave nil ends unset so os/exec attaches the null device; a nil
	// *os.File in the interface would hand the child a closed descriptor.
	if fds.R != nil {
		cmd.Stdin = fds.R
	}
	if fds.W != nil {
		cmd.Stdout = fds.W
	}
	if err := cmd.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "pish: failed to execute %s: %v\n", argv[0], err)
		return -1, nil
	}

	sh.procs.add(cmd)
	sh.trace.log("spawn", "path", path, "pid", cmd.Process.Pid)
	return 0, cmd
}

// reap waits for a child and converts its wait status: 0 on success, the
// exit code otherwise, negative when the child was killed by a signal or
// the wait itself failed.
func (sh *Shell) reap(cmd *exec.Cmd) int {
	defer sh.procs.remove(cmd)

	err := cmd.Wait()
	sh.trace.log("reap", "pid", cmd.Process.Pid, "err", err)
	if err == nil {
		return 0
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) {
		return exit.ExitCode()
	}
	return -1
}
