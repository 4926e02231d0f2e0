// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package vllib provides reference implementations of the collaborators of a
// vlsim.Session: a symbol table, change notification lists, system tasks,
// user functions and a log based diagnostic reporter.
//
package vllib

import (
	"sort"

	"github.com/db47h/vlsim"
	"github.com/pkg/errors"
)

// A Variable is a named storage location. Bit vector variables carry a
// declared [msb:lsb] range.
//
type Variable struct {
	name     string
	v        *vlsim.Value
	msb, lsb int
	implicit bool
}

// Name implements vlsim.Var.
//
func (v *Variable) Name() string { return v.name }

// Value implements vlsim.Var. The returned value must not be modified. Use
// SymbolTable.Set to update a variable.
//
func (v *Variable) Value() *vlsim.Value { return v.v }

// Range implements vlsim.Ranged.
//
func (v *Variable) Range() (msb, lsb int) { return v.msb, v.lsb }

// Implicit returns true if the variable was declared implicitly on lookup.
//
func (v *Variable) Implicit() bool { return v.implicit }

// width returns the declared width of a bit vector variable.
func (v *Variable) width() int {
	if v.msb >= v.lsb {
		return v.msb - v.lsb + 1
	}
	return v.lsb - v.msb + 1
}

// SymbolTable is an in-memory symbol table. It implements vlsim.Resolver.
//
// When Implicit is true, resolving an unknown name declares it as a Z filled
// net of ImplicitWidth bits.
//
type SymbolTable struct {
	Implicit      bool
	ImplicitWidth int

	vars     map[string]*Variable
	notifier vlsim.Notifier
}

// NewSymbolTable returns a new symbol table. Variables updated with Set are
// triggered on n, if not nil.
//
func NewSymbolTable(n vlsim.Notifier) *SymbolTable {
	return &SymbolTable{
		Implicit:      true,
		ImplicitWidth: 1,
		vars:          make(map[string]*Variable),
		notifier:      n,
	}
}

// Declare declares a bit vector variable [width-1:0], initially X.
//
func (t *SymbolTable) Declare(name string, width int) (*Variable, error) {
	if width < 1 {
		return nil, errors.Errorf("invalid width %d for %s", width, name)
	}
	return t.DeclareRange(name, width-1, 0)
}

// DeclareRange declares a bit vector variable [msb:lsb], initially X.
//
func (t *SymbolTable) DeclareRange(name string, msb, lsb int) (*Variable, error) {
	v := &Variable{name: name, msb: msb, lsb: lsb}
	w := v.width()
	if w > vlsim.MaxWidth {
		return nil, errors.Errorf("invalid range [%d:%d] for %s", msb, lsb, name)
	}
	v.v = vlsim.NewX(w)
	return v, t.add(v)
}

// DeclareValue declares a variable holding a copy of val. Use this to declare
// integer, time, real or string variables. The variable keeps the kind of val.
//
func (t *SymbolTable) DeclareValue(name string, val *vlsim.Value) (*Variable, error) {
	v := &Variable{name: name, v: val.Copy(), msb: val.Width() - 1}
	return v, t.add(v)
}

func (t *SymbolTable) add(v *Variable) error {
	if v.name == "" {
		return errors.New("empty variable name")
	}
	if _, ok := t.vars[v.name]; ok {
		return errors.Errorf("variable %s already declared", v.name)
	}
	t.vars[v.name] = v
	return nil
}

// Lookup returns the variable with the given name, or nil.
//
func (t *SymbolTable) Lookup(name string) *Variable {
	return t.vars[name]
}

// Resolve implements vlsim.Resolver.
//
func (t *SymbolTable) Resolve(name string) vlsim.Var {
	if v := t.vars[name]; v != nil {
		return v
	}
	if !t.Implicit || name == "" {
		return nil
	}
	w := t.ImplicitWidth
	if w < 1 {
		w = 1
	}
	v := &Variable{name: name, v: vlsim.NewX(w), msb: w - 1, implicit: true}
	for i := 0; i < w; i++ {
		v.v.SetBit(i, vlsim.Z)
	}
	t.vars[name] = v
	return v
}

// Set assigns val to the named variable and triggers it. Integer, time and
// real variables keep their kind and val is converted to it. Values assigned
// to bit vector variables are truncated or zero extended to the declared
// width.
//
func (t *SymbolTable) Set(name string, val *vlsim.Value) error {
	v := t.vars[name]
	if v == nil {
		return errors.Errorf("undeclared variable %s", name)
	}
	if val.Kind() == vlsim.KindConcat {
		return errors.Errorf("cannot assign a concatenation reference to %s", name)
	}
	switch v.v.Kind() {
	case vlsim.KindInt:
		v.v.SetInt(val.Int())
	case vlsim.KindTime:
		v.v.SetTime(val.Time())
	case vlsim.KindReal:
		v.v.SetReal(val.Real())
	case vlsim.KindBits:
		if val.Kind() == vlsim.KindString {
			return errors.Errorf("cannot assign a string to bit vector %s", name)
		}
		if val.Kind() == vlsim.KindReal {
			val = vlsim.NewInt(val.Int())
		}
		for i, w := 0, v.width(); i < w; i++ {
			v.v.SetBit(i, val.Bit(i))
		}
	default:
		v.v.Set(val)
	}
	if t.notifier != nil {
		t.notifier.Trigger(v)
	}
	return nil
}

// Names returns the sorted list of declared names.
//
func (t *SymbolTable) Names() []string {
	names := make([]string, 0, len(t.vars))
	for n := range t.vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
