// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vllib_test

import (
	"bytes"
	"log"
	"testing"

	"github.com/db47h/vlsim"
	"github.com/db47h/vlsim/vllib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	s     *vlsim.Session
	lists *vllib.Lists
	clock *vllib.Clock
	tasks *vllib.Tasks
	funcs vllib.Funcs
	log   bytes.Buffer
	rep   *vllib.LogReporter
}

func newEnv(t *testing.T, seed int64) *env {
	e := &env{lists: vllib.NewLists(), funcs: make(vllib.Funcs)}
	e.clock = vllib.NewClock(e.lists)
	e.tasks = vllib.NewTasks(e.clock, seed)
	e.rep = vllib.NewLogReporter(log.New(&e.log, "", 0))
	s, err := vlsim.NewSession(vlsim.Env{
		Resolver: vllib.NewSymbolTable(e.lists),
		Funcs:    e.funcs,
		Tasks:    e.tasks,
		Notifier: e.lists,
		Reporter: e.rep,
	})
	require.NoError(t, err)
	e.s = s
	return e
}

func (e *env) eval(expr string) string {
	return e.s.Eval(vlsim.MustParseExpr(expr)).String()
}

func TestClock(t *testing.T) {
	e := newEnv(t, 0)
	assert.Equal(t, "$time", e.clock.Name())
	assert.Equal(t, uint64(0), e.clock.Now())
	e.lists.Chain(e.clock, "p")
	e.clock.Advance(3)
	e.clock.Advance(4)
	assert.Equal(t, uint64(7), e.clock.Now())
	assert.Equal(t, "7t", e.clock.Value().String())
	assert.Equal(t, []vlsim.Target{"p"}, e.lists.Pending())
	e.clock.Set(1 << 40)
	assert.Equal(t, "1099511627776t", e.eval("$time"))
	assert.Equal(t, "0", e.eval("$stime"))
	assert.Equal(t, "1.099511627776e+12", e.eval("$realtime"))
}

func TestRandom(t *testing.T) {
	e1, e2 := newEnv(t, 42), newEnv(t, 42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, e1.eval("$random"), e2.eval("$random"))
	}
	assert.Equal(t, vlsim.KindInt, e1.s.Eval(vlsim.MustParseExpr("$random")).Kind())
}

func TestReplicateCalls(t *testing.T) {
	e := newEnv(t, 42)
	n := int32(0)
	e.funcs["next"] = vllib.FuncOf(func(s *vlsim.Session, args []*vlsim.Value) *vlsim.Value {
		n++
		return vlsim.NewInt(n)
	})
	want := e.eval("{3, 2, 1}")
	assert.Equal(t, want, e.eval("{3{next()}}"))
	assert.Equal(t, int32(3), n)

	r := e.eval("{2{$random}}")
	require.Len(t, r, len("64'b")+64)
	assert.NotEqual(t, r[4:36], r[36:])
}

func TestRegister(t *testing.T) {
	e := newEnv(t, 0)
	e.tasks.Register("$answer", vllib.FuncOf(func(s *vlsim.Session, args []*vlsim.Value) *vlsim.Value {
		return vlsim.NewInt(42)
	}))
	assert.Equal(t, "42", e.eval("$answer"))
	assert.Nil(t, e.tasks.ResolveTask("$nope"))
	assert.NotNil(t, e.tasks.ResolveTask("$time"))
}

func TestFuncs(t *testing.T) {
	e := newEnv(t, 0)
	e.funcs["max"] = vllib.FuncOf(func(s *vlsim.Session, args []*vlsim.Value) *vlsim.Value {
		if len(args) == 0 {
			return nil
		}
		m := args[0]
		for _, a := range args[1:] {
			if s.Arena().New().Gt(a, m).Bit(0) == vlsim.Hi {
				m = a
			}
		}
		return m
	})
	assert.Equal(t, "7", e.eval("max(3, 7, 2)"))
	assert.Equal(t, "4'b1100", e.eval("max(4'b1100, 4'b0011)"))
	assert.Equal(t, "1'bx", e.eval("max()"))
	assert.Nil(t, e.funcs.ResolveFunc("min"))
}

func TestLogReporter(t *testing.T) {
	e := newEnv(t, 0)
	assert.Equal(t, "1'bz", e.eval("q"))
	assert.False(t, e.rep.Aborted())
	assert.Equal(t, "1'bx", e.eval("nope(1)"))
	assert.True(t, e.rep.Aborted())
	w, n := e.rep.Counts()
	assert.Equal(t, 0, w)
	assert.Equal(t, 1, n)
	assert.Equal(t, "error: unresolved function nope\n", e.log.String())
	e.rep.Clear()
	assert.False(t, e.rep.Aborted())

	e.log.Reset()
	assert.Equal(t, "0t", e.eval("$time(q)"))
	assert.Equal(t, "warning: arguments of time system tasks are ignored\n", e.log.String())
	w, _ = e.rep.Counts()
	assert.Equal(t, 1, w)

	assert.NotNil(t, vllib.NewLogReporter(nil))
}
