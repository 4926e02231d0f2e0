// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vllib_test

import (
	"testing"

	"github.com/db47h/vlsim"
	"github.com/db47h/vlsim/vllib"
	"github.com/stretchr/testify/assert"
)

type process struct {
	off bool
}

func (p *process) Disabled() bool { return p.off }

func TestLists(t *testing.T) {
	l := vllib.NewLists()
	st := vllib.NewSymbolTable(l)
	a, _ := st.Declare("a", 1)
	b, _ := st.Declare("b", 1)
	p1, p2 := &process{}, &process{}

	l.Chain(a, p1)
	l.Chain(a, p2)
	l.Chain(a, p1)
	l.Chain(b, p2)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []vlsim.Target{p1, p2}, l.Targets(a))

	l.Trigger(b)
	l.Trigger(a)
	l.Trigger(b)
	assert.Equal(t, []vlsim.Target{p2, p1}, l.Pending())
	assert.Nil(t, l.Pending())

	l.UnchainScoped(a, p1)
	assert.Equal(t, 3, l.Len())
	p1.off = true
	l.UnchainScoped(a, p1)
	assert.Equal(t, []vlsim.Target{p2}, l.Targets(a))
	// targets that cannot be disabled are never unchained by scope
	l.UnchainScoped(b, "static")
	l.Chain(b, "static")
	l.UnchainScoped(b, "static")
	assert.Equal(t, []vlsim.Target{p2, "static"}, l.Targets(b))

	l.Unchain(a, p2)
	l.Unchain(a, p2)
	l.Unchain(b, p1)
	assert.Empty(t, l.Targets(a))
	assert.Equal(t, 2, l.Len())

	// modifying the returned slice leaves the lists untouched
	ts := l.Targets(b)
	ts[0] = nil
	assert.Equal(t, []vlsim.Target{p2, "static"}, l.Targets(b))
}
