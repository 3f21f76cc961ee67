package noun

import (
	"math/big"
	"testing"
)

func TestAtomCopiesValue(t *testing.T) {
	v := big.NewInt(41)
	a := NewAtom(v)
	v.Add(v, big.NewInt(1))
	if got, ok := a.Uint64(); !ok || got != 41 {
		t.Fatalf("atom observed caller mutation: %v %v", got, ok)
	}
}

func TestAtomUint64SharesSmallAtoms(t *testing.T) {
	if AtomUint64(3) != AtomUint64(3) {
		t.Fatalf("small atoms should share the canonical objects")
	}
	if AtomUint64(3) != OpNoun(OpIsCell) {
		t.Fatalf("atom 3 should be the is-cell opcode noun")
	}
	big1 := AtomUint64(100)
	big2 := AtomUint64(100)
	if big1 == big2 {
		t.Fatalf("constructors must not be assumed to intern large atoms")
	}
	if !Equal(big1, big2) {
		t.Fatalf("distinct atoms with equal value must compare equal")
	}
}

func TestCellAccessors(t *testing.T) {
	head := A(1)
	tail := A(2)
	c := NewCell(head, tail)
	if c.Head() != head || c.Tail() != tail {
		t.Fatalf("cell should share its children by identity")
	}
	if c.Kind() != KindCell || head.Kind() != KindAtom {
		t.Fatalf("unexpected kinds %v %v", c.Kind(), head.Kind())
	}
	if !IsCell(c) || IsCell(head) {
		t.Fatalf("IsCell misclassified a noun")
	}
}

func TestIncr(t *testing.T) {
	a := A(41)
	b := a.Incr()
	if got, _ := b.Uint64(); got != 42 {
		t.Fatalf("Incr produced %s", b)
	}
	if got, _ := a.Uint64(); got != 41 {
		t.Fatalf("Incr mutated its receiver: %s", a)
	}

	huge := NewAtom(new(big.Int).SetUint64(^uint64(0)))
	next := huge.Incr()
	if _, ok := next.Uint64(); ok {
		t.Fatalf("incrementing the max word should overflow into a big atom")
	}
}

func TestBool(t *testing.T) {
	if got, _ := Bool(true).Uint64(); got != Yes {
		t.Fatalf("Bool(true) = %d", got)
	}
	if got, _ := Bool(false).Uint64(); got != Nah {
		t.Fatalf("Bool(false) = %d", got)
	}
}

func TestOpTable(t *testing.T) {
	if got, _ := OpNoun(OpHint).Uint64(); got != 11 {
		t.Fatalf("hint opcode atom = %d", got)
	}
	if op, ok := OpFromUint64(11); !ok || op != OpHint {
		t.Fatalf("OpFromUint64(11) = %v %v", op, ok)
	}
	if _, ok := OpFromUint64(12); ok {
		t.Fatalf("12 is not a valid opcode")
	}
	if op, ok := OpByName("deep-equal"); !ok || op != OpEqual {
		t.Fatalf("OpByName(deep-equal) = %v %v", op, ok)
	}
	if _, ok := OpByName("nonsense"); ok {
		t.Fatalf("unknown names must not resolve")
	}
	if OpBranch.String() != "branch" {
		t.Fatalf("OpBranch renders as %q", OpBranch.String())
	}
}

func TestDSLFold(t *testing.T) {
	c := C(A(1), A(2), A(3))
	if !Equal(c, NewCell(A(1), NewCell(A(2), A(3)))) {
		t.Fatalf("C should fold right: %s", c)
	}
}
