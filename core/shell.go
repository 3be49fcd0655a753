package core

import (
	"fmt"
	"os"
	"os/user"
	"strconv"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
	"josephlewis.net/pish/core/shell"
)

const (
	EnvPWD    = "PWD"
	EnvUser   = "USER"
	EnvPath   = "PATH"
	EnvPrompt = "PROMPT"
	EnvTrace  = "PISH_TRACE"
)

// Pair is the {read, write} endpoint pair handed to every command. A nil
// end means the command has no descriptor on that side; children then
// read from the null device.
type Pair struct {
	R *os.File
	W *os.File
}

// Shell is the controlling process state: the launcher's argument vector
// backing $0..$9, the last pipeline status backing $?, and the set of
// living children for the sweep.
type Shell struct {
	// Args holds the launcher's own argv; read-only after startup.
	Args []string
	// Fs backs the source builtin and rc scripts.
	Fs afero.Fs
	// Readline is only set in interactive mode.
	Readline *readline.Instance

	status  string
	history []string
	procs   *procSet
	trace   *tracer
}

func New(args []string) *Shell {
	return &Shell{
		Args:   args,
		Fs:     afero.NewOsFs(),
		status: "0",
		procs:  newProcSet(),
		trace:  newTracer(),
	}
}

var _ shell.Params = (*Shell)(nil)

func (sh *Shell) Getenv(name string) string { return os.Getenv(name) }

func (sh *Shell) Positional(n int) string {
	if n < len(sh.Args) {
		return sh.Args[n]
	}
	return ""
}

func (sh *Shell) LastStatus() string { return sh.status }

func (sh *Shell) Capture(cmdline string) (string, bool) {
	return sh.capture(cmdline, "")
}

func (sh *Shell) setStatus(status int) {
	sh.status = fmt.Sprintf("%5d", status)
}

// RunLine strips the comment, expands and executes one command line as a
// pipeline between the outer endpoints, recording its status for $?.
func (sh *Shell) RunLine(line string, fds Pair) int {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	expanded, err := shell.Expand(line, sh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pish: %v\n", err)
		sh.setStatus(-1)
		return -1
	}

	stages, err := shell.Fold(expanded, "|", true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "pish: %v\n", err)
		sh.setStatus(-1)
		return -1
	}

	status := sh.pipeline(stages, fds)
	sh.setStatus(status)
	return status
}

// RefreshEnv updates the well-known variables before each line so every
// expansion sees the current working directory and login name.
func (sh *Shell) RefreshEnv() {
	if wd, err := os.Getwd(); err == nil {
		os.Setenv(EnvPWD, wd)
	}

	name := ""
	if u, err := user.LookupId(strconv.Itoa(os.Getuid())); err == nil {
		name = u.Username
	}
	os.Setenv(EnvUser, name)
}

// Sweep sends SIGKILL to every living child. Safe to call from the
// signal handler goroutine; the executor that started each child still
// reaps it.
func (sh *Shell) Sweep() {
	sh.trace.log("sweep", "children", sh.procs.len())
	sh.procs.killAll()
}

// dupFile duplicates f's descriptor so the pipe array owns every end it
// closes, including the caller's outer endpoints. A nil file stays nil.
func dupFile(f *os.File) (*os.File, error) {
	if f == nil {
		return nil, nil
	}
	fd, err := unix.Dup(int(f.Fd()))
	if err != nil {
		return nil, fmt.Errorf("dup: %w", err)
	}
	return os.NewFile(uintptr(fd), f.Name()), nil
}

// closeQuiet closes f, suppressing teardown errors once the primary
// status has been determined. Nil files and double closes are no-ops.
func closeQuiet(f *os.File) {
	if f != nil {
		_ = f.Close()
	}
}
