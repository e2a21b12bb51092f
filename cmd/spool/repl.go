package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"spool/interpreter-go/pkg/ast"
	"spool/interpreter-go/pkg/interpreter"
	"spool/interpreter-go/pkg/parser"
)

const historyFile = ".spool_history"

// runREPL hosts an interactive session: each submitted form runs against a
// persistent Config, so tapes, variables, and declared functions survive
// between submissions.
func runREPL(args []string) int {
	fs := flag.NewFlagSet("spool repl", flag.ContinueOnError)
	input := fs.String("input", "", "initial contents of the input tape")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	interp := interpreter.New(*input)
	printed := 0

	fmt.Println("spool repl — :quit to exit, :tape NAME to inspect a tape")
	for {
		src, err := ln.Prompt("spool> ")
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "spool: %v\n", err)
			return 1
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(src)

		if strings.HasPrefix(trimmed, ":") {
			if replCommand(interp, trimmed) {
				return 0
			}
			continue
		}

		stmts, err := parser.ParseStatements(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse error: %v\n", err)
			continue
		}
		outcome, err := interp.Run(ast.NewProgram(stmts, nil))
		for _, item := range interp.Output()[printed:] {
			fmt.Println(item)
		}
		printed = len(interp.Output())
		if err != nil {
			fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
			continue
		}
		if outcome.Halted() {
			fmt.Println(verdict(outcome))
		}
	}
}

// replCommand handles colon commands; it reports whether the session should
// end.
func replCommand(interp *interpreter.Interpreter, cmd string) bool {
	fields := strings.Fields(cmd)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":tape":
		if len(fields) != 2 {
			fmt.Println("usage: :tape NAME")
			return false
		}
		_, tape, err := interp.Config().ResolveTape(ast.NewPath(strings.Split(fields[1], ".")...))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return false
		}
		fmt.Printf("%s (head %d)\n", tape.Render(), tape.Head())
		return false
	default:
		fmt.Println("unknown command; :quit exits, :tape NAME inspects a tape")
		return false
	}
}
