package noun

import "math/big"

// Shorthand constructors for assembling noun literals in tests and
// fixtures. Not part of the engine contract.

// A builds an atom from a machine word.
func A(v uint64) *Atom {
	return AtomUint64(v)
}

// ABig builds an atom from an arbitrary-precision natural.
func ABig(v *big.Int) *Atom {
	return NewAtom(v)
}

// C folds two or more nouns into a right-nested cell, so C(a, b, c)
// builds (a . (b . c)).
func C(nouns ...Noun) *Cell {
	if len(nouns) < 2 {
		panic("noun: C requires at least two nouns")
	}
	result := nouns[len(nouns)-1]
	for i := len(nouns) - 2; i >= 0; i-- {
		result = NewCell(nouns[i], result)
	}
	return result.(*Cell)
}

// Operator shorthands, returning the canonical opcode atoms.

func Address() *Atom   { return opNouns[OpAddress] }
func Quote() *Atom     { return opNouns[OpQuote] }
func Eval() *Atom      { return opNouns[OpEval] }
func CellTest() *Atom  { return opNouns[OpIsCell] }
func Increment() *Atom { return opNouns[OpIncrement] }
func DeepEqual() *Atom { return opNouns[OpEqual] }
func Branch() *Atom    { return opNouns[OpBranch] }
func Compose() *Atom   { return opNouns[OpCompose] }
func Extend() *Atom    { return opNouns[OpExtend] }
func Invoke() *Atom    { return opNouns[OpInvoke] }
func Edit() *Atom      { return opNouns[OpEdit] }
func Hint() *Atom      { return opNouns[OpHint] }
