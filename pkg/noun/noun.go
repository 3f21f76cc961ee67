// Package noun implements the binary-tree value model of the machine:
// atoms (natural-number leaves) and cells (ordered pairs). Nouns are
// immutable once built and interior nodes may be shared between any
// number of parents; a noun is always a finite tree, never a cycle.
package noun

import "math/big"

// Kind identifies the noun category.
type Kind int

const (
	KindAtom Kind = iota
	KindCell
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindCell:
		return "cell"
	default:
		return "unknown"
	}
}

// Noun is either an *Atom or a *Cell. Pointer identity is the sharing
// unit; identity comparison is only ever a fast path, never a
// substitute for structural equality.
type Noun interface {
	Kind() Kind
	String() string
}

// Atom is a natural-number leaf noun.
type Atom struct {
	value *big.Int
}

// Cell is an ordered pair of nouns.
type Cell struct {
	head Noun
	tail Noun
}

// NewAtom builds an atom from a natural number. The value is copied so
// later mutation of v cannot reach the atom.
func NewAtom(v *big.Int) *Atom {
	return &Atom{value: new(big.Int).Set(v)}
}

// AtomUint64 builds an atom from a machine word. Small values share the
// canonical opcode atoms.
func AtomUint64(v uint64) *Atom {
	if v < uint64(len(opNouns)) {
		return opNouns[v]
	}
	return &Atom{value: new(big.Int).SetUint64(v)}
}

// NewCell builds a cell from two nouns. Equal content does not imply
// identical objects; constructors never intern.
func NewCell(head, tail Noun) *Cell {
	return &Cell{head: head, tail: tail}
}

func (a *Atom) Kind() Kind { return KindAtom }
func (c *Cell) Kind() Kind { return KindCell }

// Nat exposes the atom's value. The returned big.Int is shared with the
// atom and must be treated as read-only.
func (a *Atom) Nat() *big.Int { return a.value }

// Uint64 reports the atom's value as a machine word, with ok false when
// it does not fit.
func (a *Atom) Uint64() (uint64, bool) {
	if !a.value.IsUint64() {
		return 0, false
	}
	return a.value.Uint64(), true
}

// Incr returns a fresh atom holding the value plus one.
func (a *Atom) Incr() *Atom {
	return &Atom{value: new(big.Int).Add(a.value, bigOne)}
}

// Head returns the first element of the pair.
func (c *Cell) Head() Noun { return c.head }

// Tail returns the second element of the pair.
func (c *Cell) Tail() Noun { return c.tail }

// IsCell reports whether n is a cell.
func IsCell(n Noun) bool {
	_, ok := n.(*Cell)
	return ok
}

// Boolean convention used by the predicate operators: 0 means yes,
// 1 means nah.
const (
	Yes uint64 = 0
	Nah uint64 = 1
)

// Bool maps a Go bool onto the machine's boolean atoms.
func Bool(ok bool) *Atom {
	if ok {
		return opNouns[Yes]
	}
	return opNouns[Nah]
}

var bigOne = big.NewInt(1)
