// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package lex provides a state function based lexer.
//
// A lexer is driven by StateFn's. Each call to the initial state function
// starts a new token. A state function reads runes with Next, emits tokens with
// Emit and returns the next state, or nil to go back to the initial state.
//
package lex

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// EOF is returned by Next at the end of input. It is also the Type of the end
// of input token.
//
const EOF = -1

// Error is the Type of error tokens. Their value is the error message.
//
const Error Type = -2

// A Type is a token type.
//
type Type int

// Pos is a rune offset in the input.
//
type Pos int

// An Item is a token.
//
type Item struct {
	Type  Type
	Pos   Pos
	Value interface{}
}

// String returns a description of the token for use in error messages.
//
func (i *Item) String() string {
	switch i.Type {
	case EOF:
		return "end of input"
	case Error:
		return fmt.Sprint(i.Value)
	}
	switch v := i.Value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case rune:
		return fmt.Sprintf("%q", v)
	}
	return fmt.Sprint(i.Value)
}

// A StateFn is a lexer state.
//
type StateFn func(l *Lexer) StateFn

// Interface is the interface implemented by lexers.
//
type Interface interface {
	// Lex returns the next token.
	Lex() Item
}

// A Lexer holds the state of a lexer.
//
type Lexer struct {
	input []rune
	next  int // offset of the next rune
	start int // offset of the current token
	init  StateFn
	state StateFn
	items []Item
}

// New returns a new lexer reading from r and starting in state init. A read
// error is reported as an Error token.
//
func New(r io.Reader, init StateFn) *Lexer {
	l := &Lexer{init: init}
	b, err := io.ReadAll(r)
	for len(b) > 0 {
		c, n := utf8.DecodeRune(b)
		l.input = append(l.input, c)
		b = b[n:]
	}
	if err != nil {
		l.items = append(l.items, Item{Error, 0, err.Error()})
	}
	return l
}

// Lex implements Interface.
//
func (l *Lexer) Lex() Item {
	for len(l.items) == 0 {
		if l.state == nil {
			l.state = l.init
			l.start = l.next
		}
		l.state = l.state(l)
	}
	i := l.items[0]
	l.items = l.items[1:]
	return i
}

// Next reads the next rune. It returns EOF at the end of input.
//
func (l *Lexer) Next() rune {
	l.next++
	return l.Current()
}

// Current returns the last rune returned by Next.
//
func (l *Lexer) Current() rune {
	if l.next <= 0 || l.next > len(l.input) {
		return EOF
	}
	return l.input[l.next-1]
}

// Peek returns the next rune without consuming it.
//
func (l *Lexer) Peek() rune {
	if l.next >= len(l.input) {
		return EOF
	}
	return l.input[l.next]
}

// Backup unreads the last rune returned by Next. It can be called repeatedly.
//
func (l *Lexer) Backup() {
	if l.next > 0 {
		l.next--
	}
}

// Pos returns the position of the current rune.
//
func (l *Lexer) Pos() Pos { return Pos(l.next - 1) }

// TokenPos returns the position of the first rune of the current token.
//
func (l *Lexer) TokenPos() Pos { return Pos(l.start) }

// Text returns the input text of the current token, up to and including the
// current rune.
//
func (l *Lexer) Text() string {
	end := min(l.next, len(l.input))
	if l.start >= end {
		return ""
	}
	return string(l.input[l.start:end])
}

// AcceptWhile reads runes for as long as f returns true. The first rejected
// rune is not consumed.
//
func (l *Lexer) AcceptWhile(f func(r rune) bool) {
	for r := l.Next(); r != EOF && f(r); r = l.Next() {
	}
	l.Backup()
}

// Emit emits a token of the given type and value, positioned at the start of
// the current token. The next token starts after the current rune.
//
func (l *Lexer) Emit(t Type, value interface{}) {
	l.items = append(l.items, Item{t, Pos(l.start), value})
	l.start = min(l.next, len(l.input))
}

// Errorf emits an Error token at the current position.
//
func (l *Lexer) Errorf(format string, args ...interface{}) {
	l.items = append(l.items, Item{Error, l.Pos(), fmt.Sprintf(format, args...)})
	l.start = min(l.next, len(l.input))
}

// Accept consumes s and returns true if the input continues with s. Otherwise
// nothing is consumed.
//
func (l *Lexer) Accept(s string) bool {
	i := l.next
	for _, r := range s {
		if i >= len(l.input) || l.input[i] != r {
			return false
		}
		i++
	}
	l.next = i
	return true
}
