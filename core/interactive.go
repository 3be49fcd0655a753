package core

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"golang.org/x/term"
	"josephlewis.net/pish/core/shell"
)

const fallbackPrompt = "($PROMPT Unavailable)> "

// DefaultPrompt builds the styled prompt template installed into PROMPT
// on first interactive entry. It goes through the expander every
// iteration, so ${PWD} stays current.
func DefaultPrompt() string {
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)
	return "[" + yellow.Sprint("${PWD}") + "]" + red.Sprint(",`'") + " "
}

// Interactive drives a readline loop over the controlling terminal until
// EOF. SIGINT sweeps all living children and returns to the prompt; a
// fatal line status is reported but does not end the session.
func (sh *Shell) Interactive() int {
	if _, ok := os.LookupEnv(EnvPrompt); !ok {
		os.Setenv(EnvPrompt, DefaultPrompt())
	}

	rl, err := readline.NewEx(&readline.Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		FuncIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "pish: readline: %v\n", err)
		return -1
	}
	defer rl.Close()
	sh.Readline = rl

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer func() {
		signal.Stop(sigs)
		close(sigs)
	}()
	go func() {
		for range sigs {
			sh.Sweep()
		}
	}()

	for {
		sh.RefreshEnv()

		prompt, err := shell.Expand(os.Getenv(EnvPrompt), sh)
		if err != nil || prompt == "" {
			prompt = fallbackPrompt
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		switch {
		case err == io.EOF:
			return 0 // input closed, quit

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			fmt.Fprintf(os.Stderr, "pish: readline: %v\n", err)
			return -1

		case len(line) == 0:
			continue
		}

		sh.history = append(sh.history, line)
		if status := sh.RunLine(line, Pair{R: os.Stdin, W: os.Stdout}); status < 0 {
			fmt.Fprintf(os.Stderr, "task exited abnormally, status = %d\n", status)
		}
	}
}
