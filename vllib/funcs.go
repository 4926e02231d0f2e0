// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vllib

import "github.com/db47h/vlsim"

// FuncOf adapts a Go function to vlsim.Func. Arguments are evaluated before
// the call. They are transient values and must not be kept.
//
type FuncOf func(s *vlsim.Session, args []*vlsim.Value) *vlsim.Value

// Call implements vlsim.Func.
//
func (f FuncOf) Call(s *vlsim.Session, args []vlsim.Expr) *vlsim.Value {
	vals := make([]*vlsim.Value, len(args))
	for i, a := range args {
		vals[i] = s.Eval(a)
	}
	return f(s, vals)
}

// Funcs maps function names to functions. It implements vlsim.FuncResolver.
//
type Funcs map[string]vlsim.Func

// ResolveFunc implements vlsim.FuncResolver.
//
func (f Funcs) ResolveFunc(name string) vlsim.Func {
	return f[name]
}
