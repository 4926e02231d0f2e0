// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package vlsim is the expression evaluation core of an event driven Verilog
simulator.

Values are tagged: a Value holds a 32 bits signed integer, a 4-state bit
vector, a 64 bits simulation time, a real, a string or a reference to a
concatenation. Operators implicitly promote their operands the way Verilog
does and propagate unknown (x) and high impedance (z) bits with per operator
rules.

Expression trees are built with ParseExpr, or by hand from the Expr node
types, and are evaluated by a Session. The Session does not own variables,
functions or system tasks: it reaches them through the Resolver,
FuncResolver and TaskResolver interfaces. Package vllib provides ready to use
implementations.

Transient values created during evaluation come from the Session's Arena and
are reclaimed in bulk by Session.Reset, typically once per simulation step:

	v := s.Eval(e)
	keep := v.Copy()
	s.Reset() // v must not be used anymore

The chaining traversal (Session.Chain and Session.Unchain) registers the
variables an expression depends on with a Notifier, so that a scheduler can
re-evaluate the expression when any of them changes.
*/
package vlsim
