// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// An Expr is a node of an expression tree.
//
// Trees are built once and evaluated many times. Eval never fails: data level
// problems yield X values, structural problems are reported to the session's
// Reporter and abort the simulation.
//
type Expr interface {
	// Eval evaluates the expression. The result may be transient or owned by
	// the node and must not be modified.
	Eval(s *Session) *Value
	// Copy returns a deep copy of the expression. Resolved references are not
	// copied.
	Copy() Expr
	String() string

	chain(s *Session, t Target, mode ChainMode)
}

// Op is an operator tag.
//
type Op uint8

// Unary operators.
//
const (
	OpInvalid Op = iota
	OpPlus       // +x
	OpNeg        // -x
	OpLogNot     // !x
	OpCompl      // ~x
	OpRedAnd     // &x
	OpRedNand    // ~&x
	OpRedOr      // |x
	OpRedNor     // ~|x
	OpRedXor     // ^x
	OpRedXnor    // ~^x

	// Binary operators.

	OpMul
	OpDiv
	OpRem
	OpAdd
	OpSub
	OpShl
	OpShr
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNeq
	OpCaseEq
	OpCaseNeq
	OpAnd
	OpXor
	OpXnor
	OpOr
	OpLogAnd
	OpLogOr

	opCount
)

var opNames = [...]string{
	OpInvalid: "?",
	OpPlus:    "+",
	OpNeg:     "-",
	OpLogNot:  "!",
	OpCompl:   "~",
	OpRedAnd:  "&",
	OpRedNand: "~&",
	OpRedOr:   "|",
	OpRedNor:  "~|",
	OpRedXor:  "^",
	OpRedXnor: "~^",
	OpMul:     "*",
	OpDiv:     "/",
	OpRem:     "%",
	OpAdd:     "+",
	OpSub:     "-",
	OpShl:     "<<",
	OpShr:     ">>",
	OpLt:      "<",
	OpLe:      "<=",
	OpGt:      ">",
	OpGe:      ">=",
	OpEq:      "==",
	OpNeq:     "!=",
	OpCaseEq:  "===",
	OpCaseNeq: "!==",
	OpAnd:     "&",
	OpXor:     "^",
	OpXnor:    "~^",
	OpOr:      "|",
	OpLogAnd:  "&&",
	OpLogOr:   "||",
}

func (o Op) String() string {
	if o < opCount {
		return opNames[o]
	}
	return "Op(" + strconv.Itoa(int(o)) + ")"
}

// IsUnary returns true for unary operators.
//
func (o Op) IsUnary() bool { return OpPlus <= o && o <= OpRedXnor }

// IsBinary returns true for binary operators.
//
func (o Op) IsBinary() bool { return OpMul <= o && o < opCount }

// Literal is a constant. A Literal is its own source variable: chaining a
// Literal registers the Literal itself.
//
type Literal struct {
	V *Value
}

// Lit returns a new literal for v.
//
func Lit(v *Value) *Literal { return &Literal{v} }

func (e *Literal) Eval(s *Session) *Value { return e.V }
func (e *Literal) Copy() Expr             { return &Literal{e.V.Copy()} }
func (e *Literal) String() string         { return e.V.String() }

// Name implements Var.
//
func (e *Literal) Name() string { return e.V.String() }

// Value implements Var.
//
func (e *Literal) Value() *Value { return e.V }

func (e *Literal) chain(s *Session, t Target, mode ChainMode) {
	s.notify(e, t, mode)
	if mode == Register {
		s.notifier.Trigger(e)
	}
}

// implicitVar stands for a name that could not be resolved. It is always X
// and is never chained.
type implicitVar struct {
	name string
	v    *Value
}

func (v *implicitVar) Name() string  { return v.name }
func (v *implicitVar) Value() *Value { return v.v }

// ref is a lazily resolved variable reference.
type ref struct {
	v        Var
	implicit bool
}

func (r *ref) resolve(s *Session, name string) Var {
	if r.v != nil {
		return r.v
	}
	if v := s.resolve(name); v != nil {
		r.v = v
		return v
	}
	s.Warn("implicit declaration of " + name)
	r.v = &implicitVar{name, NewX(1)}
	r.implicit = true
	return r.v
}

func (r *ref) chain(s *Session, name string, t Target, mode ChainMode) {
	v := r.resolve(s, name)
	if !r.implicit {
		s.notify(v, t, mode)
	}
}

// Ident is a reference to a variable.
//
type Ident struct {
	Name string
	ref
}

func (e *Ident) Eval(s *Session) *Value {
	return s.arena.New().Set(e.resolve(s, e.Name).Value())
}

func (e *Ident) Copy() Expr     { return &Ident{Name: e.Name} }
func (e *Ident) String() string { return e.Name }

func (e *Ident) source(s *Session) Var { return e.resolve(s, e.Name) }

func (e *Ident) chain(s *Session, t Target, mode ChainMode) {
	e.ref.chain(s, e.Name, t, mode)
}

// position maps index i of v to a bit offset in its pattern.
func position(v Var, i int) int {
	r, ok := v.(Ranged)
	if !ok {
		return i
	}
	msb, lsb := r.Range()
	if msb >= lsb {
		return i - lsb
	}
	return lsb - i
}

// index evaluates an index expression. ok is false if it is unknown.
func index(s *Session, e Expr) (int, bool) {
	v := deref(e.Eval(s))
	switch v.kind {
	case KindString, KindConcat:
		return 0, false
	case KindBits:
		if hasX(v.bits) {
			return 0, false
		}
	}
	return int(v.Int()), true
}

// BitSelect is a single bit select: Name[Index].
//
type BitSelect struct {
	Name  string
	Index Expr
	ref
}

func (e *BitSelect) Eval(s *Session) *Value {
	v := e.resolve(s, e.Name)
	z := s.arena.New()
	i, ok := index(s, e.Index)
	if !ok {
		return z.SetX(1)
	}
	p, ok := v.Value().pattern()
	i = position(v, i)
	if !ok || i < 0 || i >= len(p) {
		return z.SetX(1)
	}
	return z.setBit1(p[i])
}

func (e *BitSelect) Copy() Expr {
	return &BitSelect{Name: e.Name, Index: e.Index.Copy()}
}

func (e *BitSelect) String() string {
	return e.Name + "[" + e.Index.String() + "]"
}

func (e *BitSelect) source(s *Session) Var { return e.resolve(s, e.Name) }

func (e *BitSelect) chain(s *Session, t Target, mode ChainMode) {
	e.ref.chain(s, e.Name, t, mode)
	e.Index.chain(s, t, mode)
}

// PartSelect is a part select: Name[Msb:Lsb].
//
type PartSelect struct {
	Name     string
	Msb, Lsb Expr
	ref
}

func (e *PartSelect) Eval(s *Session) *Value {
	v := e.resolve(s, e.Name)
	z := s.arena.New()
	m, ok1 := index(s, e.Msb)
	l, ok2 := index(s, e.Lsb)
	if !ok1 || !ok2 {
		return z.SetX(1)
	}
	m, l = position(v, m), position(v, l)
	if m < l {
		m, l = l, m
	}
	if m-l >= MaxWidth {
		return z.SetX(1)
	}
	p, ok := v.Value().pattern()
	bits := make([]Bit, m-l+1)
	for i := range bits {
		j := l + i
		if !ok || j < 0 || j >= len(p) {
			bits[i] = X
		} else {
			bits[i] = p[j]
		}
	}
	return z.setOwnedBits(bits)
}

func (e *PartSelect) Copy() Expr {
	return &PartSelect{Name: e.Name, Msb: e.Msb.Copy(), Lsb: e.Lsb.Copy()}
}

func (e *PartSelect) String() string {
	return e.Name + "[" + e.Msb.String() + ":" + e.Lsb.String() + "]"
}

func (e *PartSelect) source(s *Session) Var { return e.resolve(s, e.Name) }

func (e *PartSelect) chain(s *Session, t Target, mode ChainMode) {
	e.ref.chain(s, e.Name, t, mode)
	e.Msb.chain(s, t, mode)
	e.Lsb.chain(s, t, mode)
}

// Concat is a concatenation {Members...}, or a replication {Rep{Members...}}
// if Rep is not nil. Members are listed msb first.
//
type Concat struct {
	Members []Expr
	Rep     Expr
}

func (e *Concat) Eval(s *Session) *Value { return s.concat(e.Members, e.Rep) }

func (e *Concat) Copy() Expr {
	c := &Concat{Members: copyList(e.Members)}
	if e.Rep != nil {
		c.Rep = e.Rep.Copy()
	}
	return c
}

func (e *Concat) String() string {
	var b strings.Builder
	b.WriteByte('{')
	if e.Rep != nil {
		b.WriteString(e.Rep.String())
		b.WriteByte('{')
	}
	writeList(&b, e.Members)
	if e.Rep != nil {
		b.WriteByte('}')
	}
	b.WriteByte('}')
	return b.String()
}

func (e *Concat) chain(s *Session, t Target, mode ChainMode) {
	for _, m := range e.Members {
		m.chain(s, t, mode)
	}
	if e.Rep != nil {
		e.Rep.chain(s, t, mode)
	}
}

// appendBits appends the bit pattern of v, lsb first, to bits. Strings
// contribute 8 bits per character, and the empty string reads as a NUL
// character.
func appendBits(bits []Bit, v *Value) []Bit {
	switch v.kind {
	case KindString:
		if v.s == "" {
			return append(bits, make([]Bit, 8)...)
		}
		for i := len(v.s) - 1; i >= 0; i-- {
			c := v.s[i]
			for j := 0; j < 8; j++ {
				bits = append(bits, Bit(c>>uint(j)&1))
			}
		}
		return bits
	case KindReal:
		return append(bits, X)
	}
	p, _ := v.pattern()
	return append(bits, p...)
}

// concat evaluates a concatenation of members, msb first, repeated by rep.
// The members are evaluated again for every repetition.
func (s *Session) concat(members []Expr, rep Expr) *Value {
	n := 1
	if rep != nil {
		r := deref(rep.Eval(s))
		if r.kind == KindString || r.IsX() || r.Int() <= 0 {
			return s.arena.New().SetX(1)
		}
		n = int(r.Int())
	}
	if len(members) == 0 {
		return s.arena.New().SetX(1)
	}
	var bits []Bit
	for r := 0; r < n; r++ {
		for i := len(members) - 1; i >= 0; i-- {
			bits = appendBits(bits, deref(members[i].Eval(s)))
		}
		// the first repetition gives the expected width
		if len(bits) == 0 || len(bits) > MaxWidth || r == 0 && len(bits)*n > MaxWidth {
			return s.arena.New().SetX(1)
		}
	}
	return s.arena.New().setOwnedBits(bits)
}

// MinTypMax is a min:typ:max expression. Typ and Max are optional.
//
type MinTypMax struct {
	Min, Typ, Max Expr
}

// selected returns the expression selected by the delay mode m.
func (e *MinTypMax) selected(m DelayMode) Expr {
	var l []Expr
	switch m {
	case DelayMin:
		l = []Expr{e.Min}
	case DelayTyp:
		l = []Expr{e.Typ, e.Min}
	default:
		l = []Expr{e.Max, e.Typ, e.Min}
	}
	for _, x := range l {
		if x != nil {
			return x
		}
	}
	return nil
}

func (e *MinTypMax) Eval(s *Session) *Value {
	x := e.selected(s.mode)
	if x == nil {
		return s.fault(errors.New("empty min:typ:max expression"))
	}
	return x.Eval(s)
}

func (e *MinTypMax) Copy() Expr {
	return &MinTypMax{copyExpr(e.Min), copyExpr(e.Typ), copyExpr(e.Max)}
}

func (e *MinTypMax) String() string {
	str := func(x Expr) string {
		if x == nil {
			return ""
		}
		return x.String()
	}
	if e.Typ == nil && e.Max == nil {
		return "(" + str(e.Min) + ")"
	}
	return "(" + str(e.Min) + ":" + str(e.Typ) + ":" + str(e.Max) + ")"
}

func (e *MinTypMax) chain(s *Session, t Target, mode ChainMode) {
	if x := e.selected(s.mode); x != nil {
		x.chain(s, t, mode)
	}
}

// FuncCall is a call to a user function.
//
type FuncCall struct {
	Name string
	Args []Expr
	fn   Func
}

func (e *FuncCall) Eval(s *Session) *Value {
	if e.fn == nil {
		if s.funcs != nil {
			e.fn = s.funcs.ResolveFunc(e.Name)
		}
		if e.fn == nil {
			return s.fault(errors.Errorf("unresolved function %s", e.Name))
		}
	}
	return callResult(s, e.fn.Call(s, e.Args))
}

func callResult(s *Session, v *Value) *Value {
	z := s.arena.New()
	if v == nil {
		return z.SetX(1)
	}
	return z.Set(v)
}

func (e *FuncCall) Copy() Expr { return &FuncCall{Name: e.Name, Args: copyList(e.Args)} }

func (e *FuncCall) String() string {
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteByte('(')
	writeList(&b, e.Args)
	b.WriteByte(')')
	return b.String()
}

func (e *FuncCall) chain(s *Session, t Target, mode ChainMode) {
	for _, a := range e.Args {
		a.chain(s, t, mode)
	}
}

// SysCall is a call to a system task. Name includes the leading '$'.
//
type SysCall struct {
	Name string
	Args []Expr
	fn   Func
}

func (e *SysCall) task(s *Session) Func {
	if e.fn == nil && s.tasks != nil {
		e.fn = s.tasks.ResolveTask(e.Name)
	}
	return e.fn
}

func (e *SysCall) Eval(s *Session) *Value {
	fn := e.task(s)
	if fn == nil {
		return s.fault(errors.Errorf("unknown system task %s", e.Name))
	}
	return callResult(s, fn.Call(s, e.Args))
}

func (e *SysCall) Copy() Expr { return &SysCall{Name: e.Name, Args: copyList(e.Args)} }

func (e *SysCall) String() string {
	if len(e.Args) == 0 {
		return e.Name
	}
	var b strings.Builder
	b.WriteString(e.Name)
	b.WriteByte('(')
	writeList(&b, e.Args)
	b.WriteByte(')')
	return b.String()
}

func (e *SysCall) chain(s *Session, t Target, mode ChainMode) {
	for _, a := range e.Args {
		a.chain(s, t, mode)
	}
	if src, ok := e.task(s).(Sourcer); ok {
		for _, v := range src.Sources(s) {
			s.notify(v, t, mode)
		}
	}
}

// Unary is a unary operation.
//
type Unary struct {
	Op Op
	X  Expr
}

func (e *Unary) Eval(s *Session) *Value {
	x := e.X.Eval(s)
	z := s.arena.New()
	switch e.Op {
	case OpPlus:
		return z.Plus(x)
	case OpNeg:
		return z.Neg(x)
	case OpLogNot:
		return z.LogNot(x)
	case OpCompl:
		return z.Compl(x)
	case OpRedAnd:
		return z.ReduceAnd(x)
	case OpRedNand:
		return z.ReduceNand(x)
	case OpRedOr:
		return z.ReduceOr(x)
	case OpRedNor:
		return z.ReduceNor(x)
	case OpRedXor:
		return z.ReduceXor(x)
	case OpRedXnor:
		return z.ReduceXnor(x)
	}
	return s.fault(errors.Errorf("invalid unary operator %v", e.Op))
}

func (e *Unary) Copy() Expr     { return &Unary{e.Op, e.X.Copy()} }
func (e *Unary) String() string { return e.Op.String() + e.X.String() }

func (e *Unary) chain(s *Session, t Target, mode ChainMode) { e.X.chain(s, t, mode) }

// Binary is a binary operation.
//
type Binary struct {
	Op   Op
	X, Y Expr
}

func (e *Binary) Eval(s *Session) *Value {
	x, y := e.X.Eval(s), e.Y.Eval(s)
	z := s.arena.New()
	switch e.Op {
	case OpMul:
		return z.Mul(x, y)
	case OpDiv:
		return z.Div(x, y)
	case OpRem:
		return z.Rem(x, y)
	case OpAdd:
		return z.Add(x, y)
	case OpSub:
		return z.Sub(x, y)
	case OpShl:
		return z.Shl(x, y)
	case OpShr:
		return z.Shr(x, y)
	case OpLt:
		return z.Lt(x, y)
	case OpLe:
		return z.Le(x, y)
	case OpGt:
		return z.Gt(x, y)
	case OpGe:
		return z.Ge(x, y)
	case OpEq:
		return z.Eq(x, y)
	case OpNeq:
		return z.Neq(x, y)
	case OpCaseEq:
		return z.CaseEq(x, y)
	case OpCaseNeq:
		return z.CaseNeq(x, y)
	case OpAnd:
		return z.And(x, y)
	case OpXor:
		return z.Xor(x, y)
	case OpXnor:
		return z.Xnor(x, y)
	case OpOr:
		return z.Or(x, y)
	case OpLogAnd:
		return z.LogAnd(x, y)
	case OpLogOr:
		return z.LogOr(x, y)
	}
	return s.fault(errors.Errorf("invalid binary operator %v", e.Op))
}

func (e *Binary) Copy() Expr { return &Binary{e.Op, e.X.Copy(), e.Y.Copy()} }

func (e *Binary) String() string {
	return "(" + e.X.String() + " " + e.Op.String() + " " + e.Y.String() + ")"
}

func (e *Binary) chain(s *Session, t Target, mode ChainMode) {
	e.X.chain(s, t, mode)
	e.Y.chain(s, t, mode)
}

// Ternary is a conditional expression Cond ? T : F.
//
type Ternary struct {
	Cond, T, F Expr
}

// condition returns the truth of a condition value. ok is false if unknown.
func condition(v *Value) (b, ok bool) {
	switch v.kind {
	case KindBits:
		if hasX(v.bits) {
			return false, false
		}
		return v.BitSet()&HMask != 0, true
	case KindString, KindConcat:
		return false, true
	}
	return !v.isZero(), true
}

func (e *Ternary) Eval(s *Session) *Value {
	b, ok := condition(deref(e.Cond.Eval(s)))
	switch {
	case !ok:
		return s.arena.New().Merge(e.T.Eval(s), e.F.Eval(s))
	case b:
		return e.T.Eval(s)
	}
	return e.F.Eval(s)
}

func (e *Ternary) Copy() Expr { return &Ternary{e.Cond.Copy(), e.T.Copy(), e.F.Copy()} }

func (e *Ternary) String() string {
	return "(" + e.Cond.String() + " ? " + e.T.String() + " : " + e.F.String() + ")"
}

func (e *Ternary) chain(s *Session, t Target, mode ChainMode) {
	e.Cond.chain(s, t, mode)
	e.T.chain(s, t, mode)
	e.F.chain(s, t, mode)
}

func copyExpr(e Expr) Expr {
	if e == nil {
		return nil
	}
	return e.Copy()
}

func copyList(l []Expr) []Expr {
	if l == nil {
		return nil
	}
	c := make([]Expr, len(l))
	for i, e := range l {
		c[i] = e.Copy()
	}
	return c
}

func writeList(b *strings.Builder, l []Expr) {
	for i, e := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.String())
	}
}
