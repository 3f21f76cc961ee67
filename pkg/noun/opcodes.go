package noun

import "math/big"

// Op enumerates the twelve machine operators.
type Op uint64

const (
	OpAddress Op = iota
	OpQuote
	OpEval
	OpIsCell
	OpIncrement
	OpEqual
	OpBranch
	OpCompose
	OpExtend
	OpInvoke
	OpEdit
	OpHint

	opCount
)

func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return "unknown"
}

var opNames = [opCount]string{
	OpAddress:   "address",
	OpQuote:     "quote",
	OpEval:      "eval",
	OpIsCell:    "is-cell",
	OpIncrement: "increment",
	OpEqual:     "deep-equal",
	OpBranch:    "branch",
	OpCompose:   "compose",
	OpExtend:    "extend",
	OpInvoke:    "invoke",
	OpEdit:      "edit",
	OpHint:      "hint",
}

// opNouns is the process-wide table of canonical opcode atoms, built
// once at package init and read-only afterwards, so it is safe for
// concurrent readers.
var opNouns [opCount]*Atom

var opsByName map[string]Op

func init() {
	for i := range opNouns {
		opNouns[i] = &Atom{value: big.NewInt(int64(i))}
	}
	opsByName = make(map[string]Op, opCount)
	for op, name := range opNames {
		opsByName[name] = Op(op)
	}
}

// OpNoun returns the canonical atom for op.
func OpNoun(op Op) *Atom { return opNouns[op] }

// OpFromUint64 maps an atom value onto an operator, with ok false for
// values outside 0..11.
func OpFromUint64(v uint64) (Op, bool) {
	if v >= uint64(opCount) {
		return 0, false
	}
	return Op(v), true
}

// OpByName resolves a symbolic operator name, as used by fixture files.
func OpByName(name string) (Op, bool) {
	op, ok := opsByName[name]
	return op, ok
}
