// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command vleval evaluates Verilog expressions.
//
// Usage:
//
//	vleval [-config file] [-mode min|typ|max] [-time t] [-set name=literal]... [expr...]
//
// Each expression given on the command line is evaluated and its value
// printed. With no expression arguments, expressions are read from the
// standard input, one per line.
//
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/db47h/vlsim"
	"github.com/db47h/vlsim/internal/config"
	"github.com/db47h/vlsim/vllib"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// assignments collects -set flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(s string) error {
	if !strings.Contains(s, "=") {
		return errors.Errorf("expected name=literal, got %q", s)
	}
	*a = append(*a, s)
	return nil
}

type evaluator struct {
	s   *vlsim.Session
	rep *vllib.LogReporter
	out io.Writer
}

func newEvaluator(cfg *config.Config, mode string, now uint64, sets []string, out, errOut io.Writer) (*evaluator, error) {
	if mode != "" {
		cfg.DelayMode = mode
	}
	dm, err := cfg.Mode()
	if err != nil {
		return nil, err
	}
	lists := vllib.NewLists()
	syms := vllib.NewSymbolTable(lists)
	syms.Implicit = cfg.ImplicitNets
	syms.ImplicitWidth = cfg.ImplicitWidth
	clock := vllib.NewClock(lists)
	clock.Set(now)
	rep := vllib.NewLogReporter(log.New(errOut, "vleval: ", 0))
	s, err := vlsim.NewSession(vlsim.Env{
		Resolver:   syms,
		Funcs:      vllib.Funcs{},
		Tasks:      vllib.NewTasks(clock, cfg.RandomSeed),
		Notifier:   lists,
		Reporter:   rep,
		ArenaBlock: cfg.ArenaBlock,
		DelayMode:  dm,
	})
	if err != nil {
		return nil, err
	}
	for _, a := range sets {
		i := strings.IndexByte(a, '=')
		name, lit := strings.TrimSpace(a[:i]), strings.TrimSpace(a[i+1:])
		v, err := vlsim.ParseValue(lit)
		if err != nil {
			return nil, errors.Wrapf(err, "-set %s", name)
		}
		if _, err = syms.DeclareValue(name, v); err != nil {
			return nil, err
		}
	}
	return &evaluator{s, rep, out}, nil
}

// eval evaluates one line of text. It returns false on error.
func (e *evaluator) eval(text string) bool {
	defer e.s.Reset()
	x, err := vlsim.ParseExpr(text)
	if err != nil {
		e.rep.Error(err.Error())
		return false
	}
	v := e.s.Eval(x)
	if e.rep.Aborted() {
		e.rep.Clear()
		return false
	}
	fmt.Fprintln(e.out, v)
	return true
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("vleval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgFile := fs.String("config", "", "configuration `file`")
	mode := fs.String("mode", "", "delay mode: min, typ or max")
	now := fs.Uint64("time", 0, "simulation time")
	var sets assignments
	fs.Var(&sets, "set", "declare a variable: name=literal (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.DefaultConfig()
	if *cfgFile != "" {
		c, err := config.Load(*cfgFile)
		if err != nil {
			fmt.Fprintln(stderr, "vleval:", err)
			return 1
		}
		cfg = c
	}
	e, err := newEvaluator(cfg, *mode, *now, sets, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "vleval:", err)
		return 1
	}

	status := 0
	if fs.NArg() > 0 {
		for _, a := range fs.Args() {
			if !e.eval(a) {
				status = 1
			}
		}
		return status
	}

	prompt := false
	if f, ok := stdin.(*os.File); ok {
		prompt = term.IsTerminal(int(f.Fd()))
	}
	sc := bufio.NewScanner(stdin)
	for {
		if prompt {
			fmt.Fprint(stdout, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if !e.eval(line) {
			status = 1
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(stderr, "vleval:", err)
		return 1
	}
	return status
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
