// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vllib

import "github.com/db47h/vlsim"

// Disabler is implemented by targets that can leave their owning context, like
// a process of a disabled block. UnchainScoped only removes such targets.
//
type Disabler interface {
	Disabled() bool
}

// Lists holds change-notification lists. It implements vlsim.Notifier.
//
// Variables and targets are used as map keys and compared with ==: they must
// be comparable.
//
type Lists struct {
	m       map[vlsim.Var][]vlsim.Target
	pending []vlsim.Target
	queued  map[vlsim.Target]bool
}

// NewLists returns new, empty, notification lists.
//
func NewLists() *Lists {
	return &Lists{
		m:      make(map[vlsim.Var][]vlsim.Target),
		queued: make(map[vlsim.Target]bool),
	}
}

func indexOf(l []vlsim.Target, t vlsim.Target) int {
	for i, x := range l {
		if x == t {
			return i
		}
	}
	return -1
}

// Chain implements vlsim.Notifier. Chaining the same target twice is a no-op.
//
func (l *Lists) Chain(src vlsim.Var, t vlsim.Target) {
	ts := l.m[src]
	if indexOf(ts, t) < 0 {
		l.m[src] = append(ts, t)
	}
}

// Unchain implements vlsim.Notifier.
//
func (l *Lists) Unchain(src vlsim.Var, t vlsim.Target) {
	ts := l.m[src]
	i := indexOf(ts, t)
	if i < 0 {
		return
	}
	ts = append(ts[:i:i], ts[i+1:]...)
	if len(ts) == 0 {
		delete(l.m, src)
		return
	}
	l.m[src] = ts
}

// UnchainScoped implements vlsim.Notifier.
//
func (l *Lists) UnchainScoped(src vlsim.Var, t vlsim.Target) {
	if d, ok := t.(Disabler); ok && d.Disabled() {
		l.Unchain(src, t)
	}
}

// Trigger implements vlsim.Notifier. It queues the targets chained to src.
// A target is queued at most once until the queue is drained.
//
func (l *Lists) Trigger(src vlsim.Var) {
	for _, t := range l.m[src] {
		if !l.queued[t] {
			l.queued[t] = true
			l.pending = append(l.pending, t)
		}
	}
}

// Pending drains and returns the queue of triggered targets, in trigger order.
//
func (l *Lists) Pending() []vlsim.Target {
	p := l.pending
	l.pending = nil
	for k := range l.queued {
		delete(l.queued, k)
	}
	return p
}

// Targets returns the targets chained to src.
//
func (l *Lists) Targets(src vlsim.Var) []vlsim.Target {
	return append([]vlsim.Target(nil), l.m[src]...)
}

// Len returns the number of chained variable/target pairs.
//
func (l *Lists) Len() int {
	n := 0
	for _, ts := range l.m {
		n += len(ts)
	}
	return n
}
