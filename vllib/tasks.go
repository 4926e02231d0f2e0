// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vllib

import (
	"math/rand"

	"github.com/db47h/vlsim"
)

// A Clock holds the current simulation time. It is the variable chained by
// expressions that read the time.
//
type Clock struct {
	v        *vlsim.Value
	notifier vlsim.Notifier
}

// NewClock returns a new clock at time 0. Time changes are triggered on n, if
// not nil.
//
func NewClock(n vlsim.Notifier) *Clock {
	return &Clock{v: vlsim.NewTime(0), notifier: n}
}

// Name implements vlsim.Var.
//
func (c *Clock) Name() string { return "$time" }

// Value implements vlsim.Var.
//
func (c *Clock) Value() *vlsim.Value { return c.v }

// Now returns the current time.
//
func (c *Clock) Now() uint64 { return c.v.Time() }

// Set sets the current time.
//
func (c *Clock) Set(t uint64) {
	c.v.SetTime(t)
	if c.notifier != nil {
		c.notifier.Trigger(c)
	}
}

// Advance advances the time by d.
//
func (c *Clock) Advance(d uint64) { c.Set(c.Now() + d) }

// timeTask reads the clock.
type timeTask struct {
	c    *Clock
	conv func(z *vlsim.Value, t uint64) *vlsim.Value
}

func (t *timeTask) Call(s *vlsim.Session, args []vlsim.Expr) *vlsim.Value {
	if len(args) > 0 {
		s.Warn("arguments of time system tasks are ignored")
	}
	return t.conv(s.Arena().New(), t.c.Now())
}

func (t *timeTask) Sources(s *vlsim.Session) []vlsim.Var { return []vlsim.Var{t.c} }

type randomTask struct {
	r *rand.Rand
}

func (t *randomTask) Call(s *vlsim.Session, args []vlsim.Expr) *vlsim.Value {
	return s.Arena().New().SetInt(int32(t.r.Uint32()))
}

// Tasks is a library of system tasks. It implements vlsim.TaskResolver.
//
// The predefined tasks are:
//
//	$time      current time, as a time value
//	$stime     current time truncated to an integer
//	$realtime  current time as a real
//	$random    pseudo-random integer
//
type Tasks struct {
	Clock *Clock
	m     map[string]vlsim.Func
}

// NewTasks returns a new task library reading time from c and generating
// random numbers from the given seed.
//
func NewTasks(c *Clock, seed int64) *Tasks {
	t := &Tasks{Clock: c, m: make(map[string]vlsim.Func)}
	t.m["$time"] = &timeTask{c, func(z *vlsim.Value, t uint64) *vlsim.Value { return z.SetTime(t) }}
	t.m["$stime"] = &timeTask{c, func(z *vlsim.Value, t uint64) *vlsim.Value { return z.SetInt(int32(t)) }}
	t.m["$realtime"] = &timeTask{c, func(z *vlsim.Value, t uint64) *vlsim.Value { return z.SetReal(float64(t)) }}
	t.m["$random"] = &randomTask{rand.New(rand.NewSource(seed))}
	return t
}

// Register adds or replaces a system task. The name must include the leading
// '$'.
//
func (t *Tasks) Register(name string, f vlsim.Func) {
	t.m[name] = f
}

// ResolveTask implements vlsim.TaskResolver.
//
func (t *Tasks) ResolveTask(name string) vlsim.Func {
	return t.m[name]
}
