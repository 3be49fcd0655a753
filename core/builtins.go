package core

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pborman/getopt/v2"
	"josephlewis.net/pish/core/shell"
)

// A builtin runs inline in the controlling process. Handlers receive the
// tokenized argument vector and the stage's endpoint pair; they close the
// read end immediately when they take no input, write all output to the
// write end, and return a non-negative status on success.
type builtin struct {
	name string
	exec func(sh *Shell, argv []string, fds Pair) int
	help []string
}

var builtinTable []builtin

func init() {
	builtinTable = []builtin{
		{
			"cd",
			builtinCd,
			[]string{"change directory."},
		},
		{
			"eval",
			builtinEval,
			[]string{"evaluate expression."},
		},
		{
			"exit",
			builtinExit,
			[]string{"exit pish."},
		},
		{
			"help",
			builtinHelp,
			[]string{"show help about builtin commands."},
		},
		{
			"history",
			builtinHistory,
			[]string{"display the interactive history list.",
				"/history -c/ clears the list."},
		},
		{
			"set",
			builtinSet,
			[]string{"manipulating environment variables.",
				"/set/ displays all keys and values in environ.",
				`/set A/ sets the value of A to "".`,
				"/set A B/ sets the value of A to B."},
		},
		{
			"unset",
			builtinUnset,
			[]string{"unset an environment variable",
				"/unset A/ unsets variable A."},
		},
		{
			"source",
			builtinSource,
			[]string{"read & execute contents of a file, line by line."},
		},
	}
}

func lookupBuiltin(name string) *builtin {
	for i := range builtinTable {
		if builtinTable[i].name == name {
			return &builtinTable[i]
		}
	}
	return nil
}

func builtinCd(sh *Shell, argv []string, fds Pair) int {
	closeQuiet(fds.R)

	if len(argv) < 2 {
		return -1
	}
	if err := os.Chdir(argv[1]); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", argv[0], err)
		return -1
	}
	return 0
}

func builtinExit(sh *Shell, argv []string, fds Pair) int {
	code := 0
	if len(argv) > 1 {
		code, _ = strconv.Atoi(argv[1])
	}
	os.Exit(code)
	return 0 // unreachable
}

func builtinHelp(sh *Shell, argv []string, fds Pair) int {
	closeQuiet(fds.R)

	for _, b := range builtinTable {
		fmt.Fprintf(fds.W, "%s:\n", b.name)
		for _, line := range b.help {
			fmt.Fprintf(fds.W, "\t%s\n", line)
		}
	}
	return 0
}

func builtinSet(sh *Shell, argv []string, fds Pair) int {
	closeQuiet(fds.R)

	switch {
	case len(argv) > 2:
		os.Setenv(argv[1], argv[2])
	case len(argv) > 1:
		os.Setenv(argv[1], "")
	default:
		for _, kv := range os.Environ() {
			fmt.Fprintln(fds.W, kv)
		}
	}
	return 0
}

func builtinUnset(sh *Shell, argv []string, fds Pair) int {
	closeQuiet(fds.R)

	if len(argv) > 1 {
		os.Unsetenv(argv[1])
	}
	return 0
}

// builtinSource drives the REPL over each named file in turn, sharing the
// caller's endpoint pair.
func builtinSource(sh *Shell, argv []string, fds Pair) int {
	status := 0
	for _, name := range argv[1:] {
		f, err := sh.Fs.Open(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open file %s: %v\n", name, err)
			return 1
		}

		status = sh.REPL(f, fds)
		f.Close()
		if status < 0 {
			break
		}
	}
	return status
}

// builtinEval re-quotes its arguments, expands the result once more and
// executes it as a single stage. The re-quoting joins with `" "` inside
// outer quotes, which mangles arguments containing a literal quote; known
// limitation.
func builtinEval(sh *Shell, argv []string, fds Pair) int {
	if len(argv) < 2 {
		closeQuiet(fds.R)
		return -1
	}

	cmdline := shell.Join(argv[1:], `" "`, `"`, `"`)
	expanded, err := shell.Expand(cmdline, sh)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", argv[0], err)
		closeQuiet(fds.R)
		return -1
	}

	status, cmd := sh.execStage(expanded, fds)
	if cmd != nil {
		status = sh.reap(cmd)
	}
	return status
}

func builtinHistory(sh *Shell, argv []string, fds Pair) int {
	closeQuiet(fds.R)

	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(argv, nil); err != nil || *helpOpt {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Fprintln(fds.W, "usage: history [-c]")
		fmt.Fprintln(fds.W, "Display or manipulate the history list.")
		fmt.Fprintln(fds.W)
		fmt.Fprintln(fds.W, "Options:")
		opts.PrintOptions(fds.W)
		if err != nil {
			return 1
		}
		return 0
	}

	if *clear {
		if sh.Readline != nil {
			sh.Readline.Operation.ResetHistory()
		}
		sh.history = nil
		return 0
	}

	for i, line := range sh.history {
		fmt.Fprintf(fds.W, "% 5d  %s\n", i, line)
	}
	return 0
}
