// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Var is a named variable whose storage is owned outside of the evaluator.
//
type Var interface {
	Name() string
	Value() *Value
}

// Ranged is implemented by variables declared with an explicit [msb:lsb]
// range. Bit and part selects on such variables use declared indices.
//
type Ranged interface {
	Range() (msb, lsb int)
}

// A Resolver looks up variables by name. Resolve returns nil if the name
// cannot be resolved.
//
type Resolver interface {
	Resolve(name string) Var
}

// A Func is a user function or a system task. Call is responsible for the
// evaluation of its arguments.
//
type Func interface {
	Call(s *Session, args []Expr) *Value
}

// FuncResolver looks up user functions by name.
//
type FuncResolver interface {
	ResolveFunc(name string) Func
}

// TaskResolver looks up system tasks by name, including the leading '$'.
//
type TaskResolver interface {
	ResolveTask(name string) Func
}

// Sourcer is implemented by system tasks that read state outside of their
// arguments. Chaining a call to such a task chains the returned variables.
//
type Sourcer interface {
	Sources(s *Session) []Var
}

// A Target is whatever must be notified when a chained variable changes,
// typically a statement or process of the scheduler.
//
type Target = any

// A Notifier maintains change-notification lists.
//
// Unchain must be idempotent. UnchainScoped removes the target only if the
// notifier considers it out of its owning context.
//
type Notifier interface {
	Chain(src Var, t Target)
	Unchain(src Var, t Target)
	UnchainScoped(src Var, t Target)
	Trigger(src Var)
}

// A Reporter receives diagnostics. Abort is called after a fatal error.
//
type Reporter interface {
	Warn(msg string)
	Error(msg string)
	Abort()
}

// DelayMode selects which value of a min:typ:max expression is used.
//
type DelayMode uint8

// Delay modes. The zero value is DelayTyp.
//
const (
	DelayTyp DelayMode = iota
	DelayMin
	DelayMax
)

var delayModeNames = [...]string{
	DelayTyp: "typ",
	DelayMin: "min",
	DelayMax: "max",
}

func (m DelayMode) String() string {
	if int(m) < len(delayModeNames) {
		return delayModeNames[m]
	}
	return "DelayMode(" + strconv.Itoa(int(m)) + ")"
}

// ParseDelayMode returns the DelayMode for the given name: "min", "typ" or
// "max". An empty name is "typ".
//
func ParseDelayMode(name string) (DelayMode, error) {
	switch strings.ToLower(name) {
	case "", "typ":
		return DelayTyp, nil
	case "min":
		return DelayMin, nil
	case "max":
		return DelayMax, nil
	}
	return DelayTyp, errors.Errorf("invalid delay mode %q", name)
}

// ChainMode selects the action of a chaining traversal.
//
type ChainMode uint8

// Chaining modes.
//
const (
	Register ChainMode = iota
	Deregister
	DeregisterScoped
)

// Env holds the external collaborators of a Session. All fields are optional.
//
type Env struct {
	Resolver   Resolver
	Funcs      FuncResolver
	Tasks      TaskResolver
	Notifier   Notifier
	Reporter   Reporter
	ArenaBlock int // Value slots per arena block, DefaultArenaBlock if 0
	DelayMode  DelayMode
}

// A Session evaluates expression trees against a set of collaborators. It
// owns the arena from which transient Values are allocated.
//
// A Session is not safe for concurrent use.
//
type Session struct {
	resolver Resolver
	funcs    FuncResolver
	tasks    TaskResolver
	notifier Notifier
	rep      Reporter
	arena    *Arena
	mode     DelayMode
	err      error
}

// NewSession returns a new Session using the given collaborators.
//
// A missing Reporter discards diagnostics, a missing Notifier makes chaining a
// no-op and a missing Resolver leaves every name unresolved.
//
func NewSession(env Env) (*Session, error) {
	if env.ArenaBlock < 0 {
		return nil, errors.Errorf("invalid arena block size %d", env.ArenaBlock)
	}
	if env.DelayMode > DelayMax {
		return nil, errors.Errorf("invalid delay mode %d", env.DelayMode)
	}
	s := &Session{
		resolver: env.Resolver,
		funcs:    env.Funcs,
		tasks:    env.Tasks,
		notifier: env.Notifier,
		rep:      env.Reporter,
		arena:    NewArena(env.ArenaBlock),
		mode:     env.DelayMode,
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.rep == nil {
		s.rep = nopReporter{}
	}
	return s, nil
}

type nopNotifier struct{}

func (nopNotifier) Chain(Var, Target)         {}
func (nopNotifier) Unchain(Var, Target)       {}
func (nopNotifier) UnchainScoped(Var, Target) {}
func (nopNotifier) Trigger(Var)               {}

type nopReporter struct{}

func (nopReporter) Warn(string)  {}
func (nopReporter) Error(string) {}
func (nopReporter) Abort()       {}

// Eval evaluates e. The returned Value may be transient: it must be copied if
// it is needed after the next call to Reset.
//
func (s *Session) Eval(e Expr) *Value {
	return e.Eval(s)
}

// Chain registers the variables e depends on so that t is notified when any of
// them changes.
//
func (s *Session) Chain(e Expr, t Target) { e.chain(s, t, Register) }

// Unchain deregisters t from the variables e depends on. Unchaining an
// expression that is not chained is a no-op.
//
func (s *Session) Unchain(e Expr, t Target) { e.chain(s, t, Deregister) }

// UnchainScoped is like Unchain but leaves the decision to drop t to the
// Notifier.
//
func (s *Session) UnchainScoped(e Expr, t Target) { e.chain(s, t, DeregisterScoped) }

// ChainExpr runs a chaining traversal of e for target t in the given mode.
//
// Only the branch of min:typ:max expressions selected by the current delay
// mode is traversed: unchain before changing the delay mode.
//
func (s *Session) ChainExpr(e Expr, t Target, mode ChainMode) { e.chain(s, t, mode) }

// Source returns the variable an assignment to e writes to, or nil if e is not
// a valid assignment target. Concatenations yield a variable whose Value is of
// kind KindConcat.
//
func (s *Session) Source(e Expr) Var {
	switch e := e.(type) {
	case *Ident:
		return e.source(s)
	case *BitSelect:
		return e.source(s)
	case *PartSelect:
		return e.source(s)
	case *Concat:
		if e.Rep != nil {
			return nil
		}
		return concatVar{e, s.ConcatRef(e.Members...)}
	}
	return nil
}

type concatVar struct {
	e *Concat
	v *Value
}

func (c concatVar) Name() string  { return c.e.String() }
func (c concatVar) Value() *Value { return c.v }

// ConcatRef returns a new Value of kind KindConcat that refers to the given
// member expressions, msb first. Operators evaluate the concatenation when
// they use it.
//
func (s *Session) ConcatRef(members ...Expr) *Value {
	return &Value{kind: KindConcat, cat: &concatRef{s: s, members: members}}
}

// Reset reclaims all transient Values.
//
func (s *Session) Reset() { s.arena.Reset() }

// Arena returns the session's arena.
//
func (s *Session) Arena() *Arena { return s.arena }

// DelayMode returns the current delay mode.
//
func (s *Session) DelayMode() DelayMode { return s.mode }

// SetDelayMode sets the delay mode.
//
func (s *Session) SetDelayMode(m DelayMode) { s.mode = m }

// Err returns the first fatal error that occurred during evaluation, if any.
//
func (s *Session) Err() error { return s.err }

// Warn reports a warning.
//
func (s *Session) Warn(msg string) { s.rep.Warn(msg) }

// fault records err, reports it and aborts the simulation. It returns a single
// X bit for use as the result of the failed evaluation.
func (s *Session) fault(err error) *Value {
	if s.err == nil {
		s.err = err
	}
	s.rep.Error(err.Error())
	s.rep.Abort()
	return s.arena.New().SetX(1)
}

func (s *Session) resolve(name string) Var {
	if s.resolver == nil {
		return nil
	}
	return s.resolver.Resolve(name)
}

func (s *Session) notify(v Var, t Target, mode ChainMode) {
	switch mode {
	case Register:
		s.notifier.Chain(v, t)
	case Deregister:
		s.notifier.Unchain(v, t)
	case DeregisterScoped:
		s.notifier.UnchainScoped(v, t)
	}
}
