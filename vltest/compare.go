// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package vltest provides utility functions for testing expressions.
//
package vltest

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/db47h/vlsim"
	"github.com/db47h/vlsim/vllib"
)

// Reporter is a vlsim.Reporter that records diagnostics.
//
type Reporter struct {
	Warnings []string
	Errors   []string
	Aborts   int
}

// Warn implements vlsim.Reporter.
//
func (r *Reporter) Warn(msg string) { r.Warnings = append(r.Warnings, msg) }

// Error implements vlsim.Reporter.
//
func (r *Reporter) Error(msg string) { r.Errors = append(r.Errors, msg) }

// Abort implements vlsim.Reporter.
//
func (r *Reporter) Abort() { r.Aborts++ }

// Reset clears all recorded diagnostics.
//
func (r *Reporter) Reset() { *r = Reporter{} }

// Env is a test environment: a session wired to a symbol table, notification
// lists, a clock, the default system tasks and a recording reporter.
//
type Env struct {
	*vlsim.Session
	Symbols  *vllib.SymbolTable
	Lists    *vllib.Lists
	Clock    *vllib.Clock
	Tasks    *vllib.Tasks
	Funcs    vllib.Funcs
	Reporter *Reporter
}

// NewEnv returns a new test environment. Implicit declarations are disabled
// in the symbol table.
//
func NewEnv(t testing.TB) *Env {
	t.Helper()
	e := &Env{
		Lists:    vllib.NewLists(),
		Funcs:    make(vllib.Funcs),
		Reporter: new(Reporter),
	}
	e.Symbols = vllib.NewSymbolTable(e.Lists)
	e.Symbols.Implicit = false
	e.Clock = vllib.NewClock(e.Lists)
	e.Tasks = vllib.NewTasks(e.Clock, 1)
	s, err := vlsim.NewSession(vlsim.Env{
		Resolver: e.Symbols,
		Funcs:    e.Funcs,
		Tasks:    e.Tasks,
		Notifier: e.Lists,
		Reporter: e.Reporter,
	})
	if err != nil {
		t.Fatal(err)
	}
	e.Session = s
	return e
}

// Declare declares bit vector variables. It fails the test on error.
//
func (e *Env) Declare(t testing.TB, vars map[string]int) {
	t.Helper()
	for _, n := range sortedNames(vars) {
		if _, err := e.Symbols.Declare(n, vars[n]); err != nil {
			t.Fatal(err)
		}
	}
}

// Set sets a variable from literal text. It fails the test on error.
//
func (e *Env) Set(t testing.TB, name, literal string) {
	t.Helper()
	v, err := vlsim.ParseValue(literal)
	if err != nil {
		t.Fatal(err)
	}
	if err = e.Symbols.Set(name, v); err != nil {
		t.Fatal(err)
	}
}

// EvalString parses and evaluates expression text and returns the resulting
// value rendered as a string. It fails the test on a parse error.
//
func (e *Env) EvalString(t testing.TB, expr string) string {
	t.Helper()
	x, err := vlsim.ParseExpr(expr)
	if err != nil {
		t.Fatal(err)
	}
	return e.Eval(x).String()
}

func sortedNames(vars map[string]int) []string {
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

var symbols = [...]vlsim.Bit{vlsim.Lo, vlsim.Hi, vlsim.X, vlsim.Z}

// CompareExpr evaluates two expressions with the same random 4-state values
// of the given bit vector variables and fails on the first case where the
// results are not case equal. vars maps variable names to their width.
//
// The all 0 and all 1 assignments are always tried first.
//
func CompareExpr(t *testing.T, iter int, vars map[string]int, e1, e2 vlsim.Expr) {
	t.Helper()
	compare(t, iter, vars, e1, e2, len(symbols))
}

// CompareKnown is like CompareExpr but only assigns 0 and 1 bits.
//
func CompareKnown(t *testing.T, iter int, vars map[string]int, e1, e2 vlsim.Expr) {
	t.Helper()
	compare(t, iter, vars, e1, e2, 2)
}

func compare(t *testing.T, iter int, vars map[string]int, e1, e2 vlsim.Expr, states int) {
	t.Helper()
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	env := NewEnv(t)
	env.Declare(t, vars)
	names := sortedNames(vars)
	values := make([]*vlsim.Value, len(names))
	for i, n := range names {
		values[i] = vlsim.NewX(vars[n])
	}

	errString := func(r1, r2 *vlsim.Value) string {
		var b strings.Builder
		for i, n := range names {
			if b.Len() > 0 {
				b.WriteString(", ")
			}
			b.WriteString(n)
			b.WriteRune('=')
			b.WriteString(values[i].String())
		}
		return fmt.Sprintf("\n%s: %v => %v\n%s: %v", e1, b.String(), r1, e2, r2)
	}

	set := func(f func() vlsim.Bit) {
		for i, n := range names {
			for j := 0; j < vars[n]; j++ {
				values[i].SetBit(j, f())
			}
			if err := env.Symbols.Set(n, values[i]); err != nil {
				t.Fatal(err)
			}
		}
	}

	check := func() {
		r1 := env.Eval(e1).Copy()
		r2 := env.Eval(e2).Copy()
		env.Reset()
		if new(vlsim.Value).CaseEq(r1, r2).Bit(0) != vlsim.Hi {
			t.Fatal(errString(r1, r2))
		}
	}

	start := time.Now()

	set(func() vlsim.Bit { return vlsim.Lo })
	check()
	set(func() vlsim.Bit { return vlsim.Hi })
	check()
	for i := 0; i < iter; i++ {
		set(func() vlsim.Bit { return symbols[rnd.Intn(states)] })
		check()
	}

	t.Logf("%d evaluations in %v", 2*(iter+2), time.Since(start))
}
