package core

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// capture runs cmdline as a full command line with its standard input
// pre-fed from input (which must fit in the pipe buffer) and its standard
// output drained into memory. Backs $(...) expansion.
//
// The run records its status for $? like any other line. ok is false when
// the pipeline exited non-zero; the substitution is then empty.
func (sh *Shell) capture(cmdline, input string) (out string, ok bool) {
	inR, inW, err := os.Pipe()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pish: pipe: %v\n", err)
		return "", false
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pish: pipe: %v\n", err)
		closeQuiet(inR)
		closeQuiet(inW)
		return "", false
	}
	defer closeQuiet(outR)

	if input != "" {
		if _, err := inW.WriteString(input); err != nil {
			fmt.Fprintf(os.Stderr, "pish: pipe write: %v\n", err)
		}
	}
	closeQuiet(inW)

	status := sh.RunLine(cmdline, Pair{R: inR, W: outW})
	closeQuiet(inR)
	closeQuiet(outW)
	sh.trace.log("capture", "cmdline", cmdline, "status", status)
	if status != 0 {
		return "", false
	}

	size, err := unix.IoctlGetInt(int(outR.Fd()), unix.TIOCINQ)
	if err != nil || size == 0 {
		return "", err == nil
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(outR, buf); err != nil {
		fmt.Fprintf(os.Stderr, "pish: pipe read: %v\n", err)
		return "", false
	}
	return string(buf), true
}
