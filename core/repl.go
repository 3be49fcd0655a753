package core

import (
	"bufio"
	"io"
)

// REPL reads lines from r until end of input, refreshing the well-known
// environment variables before each one and dispatching it to the
// pipeline executor. A negative (fatal) status terminates the loop and is
// returned; any other status is merely recorded for $?.
func (sh *Shell) REPL(r io.Reader, fds Pair) int {
	status := 0

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		sh.RefreshEnv()
		if !sc.Scan() {
			break
		}
		status = sh.RunLine(sc.Text(), fds)
		if status < 0 {
			break
		}
	}

	return status
}
