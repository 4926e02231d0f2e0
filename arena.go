// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package vlsim

// DefaultArenaBlock is the default number of Value slots per arena block.
//
const DefaultArenaBlock = 100

// An Arena hands out transient Values. Values are never freed individually:
// Reset reclaims all of them at once.
//
// Each Reset starts a new generation. A Ref from an earlier generation always
// panics when dereferenced. A *Value from an earlier generation panics when
// used, as long as its slot has not been handed out again.
//
type Arena struct {
	blocks [][]Value
	size   int
	n      int // slots used in the current generation
	gen    uint32
}

// NewArena returns a new arena allocating blocks of blockSize Values. If
// blockSize is less than 1, DefaultArenaBlock is used.
//
func NewArena(blockSize int) *Arena {
	if blockSize < 1 {
		blockSize = DefaultArenaBlock
	}
	return &Arena{size: blockSize, gen: 1}
}

// New returns a new transient Value, set to the integer 0.
//
func (a *Arena) New() *Value {
	b, i := a.n/a.size, a.n%a.size
	if b == len(a.blocks) {
		a.blocks = append(a.blocks, make([]Value, a.size))
	}
	a.n++
	v := &a.blocks[b][i]
	*v = Value{arena: a, gen: a.gen}
	return v
}

// A Ref is a handle on a transient Value.
//
type Ref struct {
	v   *Value
	gen uint32
}

// Alloc returns a handle on a new transient Value.
//
func (a *Arena) Alloc() Ref {
	v := a.New()
	return Ref{v, v.gen}
}

// Valid returns true if the arena r was allocated from has not been reset
// since.
//
func (r Ref) Valid() bool {
	return r.v != nil && r.v.arena.gen == r.gen
}

// Value returns the Value referenced by r. It panics if r is no longer valid.
//
func (r Ref) Value() *Value {
	if !r.Valid() {
		panic("vlsim: stale arena reference")
	}
	return r.v
}

// Reset reclaims all Values allocated since the last Reset. Blocks are kept
// for reuse.
//
func (a *Arena) Reset() {
	a.n = 0
	a.gen++
}

// Len returns the number of Values allocated since the last Reset.
//
func (a *Arena) Len() int { return a.n }

// Cap returns the number of Value slots currently held by the arena.
//
func (a *Arena) Cap() int { return len(a.blocks) * a.size }
