// pish is a small interactive and scriptable command interpreter: a
// practical example of chaining pipes and string processing. It is not
// compatible with any existing shell grammar.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pborman/getopt/v2"
	"josephlewis.net/pish/core"
	"josephlewis.net/pish/core/config"
)

var usage = []string{
	"Usage: pish [OPTION] [ARGS]",
	"",
	"Options:",
	"  -c STRING\tsource given STRING .",
	"  -h\t\tdisplay this help information.",
	"  -i\t\trun an interactive shell.",
	"    \t\tpress Ctrl+C to interrupt current command.",
	"    \t\tpress Ctrl+D to send an EOF to exit shell",
	"",
	"run \"help\" in shell to get a list of builtin commands",
	"",
}

func printUsage(w io.Writer) {
	for _, line := range usage {
		fmt.Fprintln(w, line)
	}
}

func main() {
	opts := getopt.New()
	cmdline := opts.String('c', "", "source given STRING")
	showHelp := opts.Bool('h', "display this help information")
	interactive := opts.Bool('i', "run an interactive shell")

	if err := opts.Getopt(os.Args, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		printUsage(os.Stderr)
		os.Exit(-1)
	}

	sh := core.New(os.Args)
	loadRc(sh)

	switch {
	case *showHelp:
		printUsage(os.Stdout)

	case opts.Lookup('c').Seen():
		os.Exit(sh.RunLine(*cmdline, core.Pair{R: os.Stdin, W: os.Stdout}))

	case *interactive:
		os.Exit(sh.Interactive())

	default:
		os.Exit(sh.REPL(os.Stdin, core.Pair{W: os.Stdout}))
	}
}

// loadRc applies the optional rc file: extra environment, PATH and
// PROMPT seeds, then any startup scripts. A missing file is fine.
func loadRc(sh *core.Shell) {
	path := config.DefaultPath()
	if path == "" {
		return
	}

	cfg, err := config.Load(sh.Fs, path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "pish: %v\n", err)
		return
	}

	for k, v := range cfg.Env {
		os.Setenv(k, v)
	}
	if cfg.Path != "" {
		os.Setenv(core.EnvPath, cfg.Path)
	}
	if cfg.Prompt != "" {
		os.Setenv(core.EnvPrompt, cfg.Prompt)
	}

	for _, script := range cfg.Source {
		f, err := sh.Fs.Open(script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "pish: %v\n", err)
			continue
		}
		sh.REPL(f, core.Pair{W: os.Stdout})
		f.Close()
	}
}
