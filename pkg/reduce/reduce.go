// Package reduce implements the machine's execution semantics: a single
// recursive dispatch over twelve operators plus the pair-distribution
// rule, evaluating a formula noun against a subject noun.
package reduce

import (
	"fmt"

	"nock/reducer-go/pkg/axis"
	"nock/reducer-go/pkg/noun"
)

// Interpreter drives reduction of (subject . formula) pairs. The zero
// budget runs unbounded, reproducing the reference behavior; a bounded
// interpreter fails with ErrStepLimit once its budget is spent. The
// budget spans the lifetime of the interpreter, counting every
// recursive entry into Reduce.
type Interpreter struct {
	maxSteps uint64
	steps    uint64
}

// New returns an interpreter with no step budget.
func New() *Interpreter {
	return &Interpreter{}
}

// NewBounded returns an interpreter limited to maxSteps recursive
// entries. Reduction of untrusted formulas should always be bounded:
// the machine is Turing-complete and a non-terminating formula
// otherwise runs forever.
func NewBounded(maxSteps uint64) *Interpreter {
	return &Interpreter{maxSteps: maxSteps}
}

// Steps reports how many recursive entries the interpreter has made.
func (i *Interpreter) Steps() uint64 { return i.steps }

// Reduce evaluates a (subject . formula) cell with a fresh unbounded
// interpreter.
func Reduce(pair noun.Noun) (noun.Noun, error) {
	cell, ok := pair.(*noun.Cell)
	if !ok {
		return nil, fmt.Errorf("%w: expected a (subject . formula) cell, got %s", ErrMalformedFormula, pair)
	}
	return New().Reduce(cell.Head(), cell.Tail())
}

// Reduce evaluates formula against subject and returns the product.
// The formula must be a cell; its head selects an operator when it is
// an atom, and distributes reduction over both halves when it is a pair.
func (i *Interpreter) Reduce(subject, formula noun.Noun) (noun.Noun, error) {
	if i.maxSteps != 0 {
		if i.steps >= i.maxSteps {
			return nil, ErrStepLimit
		}
		i.steps++
	}

	form, ok := formula.(*noun.Cell)
	if !ok {
		return nil, fmt.Errorf("%w: formula %s is an atom", ErrMalformedFormula, formula)
	}
	inst := form.Head()
	operand := form.Tail()

	// Autocons: a pair in the instruction slot reduces both halves
	// independently against the same subject and pairs the products.
	// This takes priority over opcode dispatch.
	if pair, ok := inst.(*noun.Cell); ok {
		left, err := i.Reduce(subject, pair)
		if err != nil {
			return nil, err
		}
		right, err := i.Reduce(subject, operand)
		if err != nil {
			return nil, err
		}
		return noun.NewCell(left, right), nil
	}

	op, ok := opcodeOf(inst.(*noun.Atom))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOpcode, inst)
	}

	switch op {
	case noun.OpAddress:
		return i.address(subject, operand)
	case noun.OpQuote:
		return operand, nil
	case noun.OpEval:
		return i.eval(subject, operand)
	case noun.OpIsCell:
		return i.isCell(subject, operand)
	case noun.OpIncrement:
		return i.increment(subject, operand)
	case noun.OpEqual:
		return i.equal(subject, operand)
	case noun.OpBranch:
		return i.branch(subject, operand)
	case noun.OpCompose:
		return i.compose(subject, operand)
	case noun.OpExtend:
		return i.extend(subject, operand)
	case noun.OpInvoke:
		return i.invoke(subject, operand)
	case noun.OpEdit:
		return i.edit(subject, operand)
	case noun.OpHint:
		return i.hint(subject, operand)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedOpcode, inst)
	}
}

func opcodeOf(inst *noun.Atom) (noun.Op, bool) {
	v, ok := inst.Uint64()
	if !ok {
		return 0, false
	}
	return noun.OpFromUint64(v)
}

// splitPair destructures a (B . C) operand.
func splitPair(operand noun.Noun, op noun.Op) (noun.Noun, noun.Noun, error) {
	cell, ok := operand.(*noun.Cell)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s operand %s is not a pair", ErrMalformedFormula, op, operand)
	}
	return cell.Head(), cell.Tail(), nil
}

// address reads the node at the operand path within the subject.
func (i *Interpreter) address(subject, operand noun.Noun) (noun.Noun, error) {
	path, ok := operand.(*noun.Atom)
	if !ok {
		return nil, fmt.Errorf("%w: address operand %s is not an atom", ErrMalformedFormula, operand)
	}
	return axis.Read(path.Nat(), subject)
}

// eval reduces both halves of the operand against the original subject,
// then reduces the second product against the first.
func (i *Interpreter) eval(subject, operand noun.Noun) (noun.Noun, error) {
	b, c, err := splitPair(operand, noun.OpEval)
	if err != nil {
		return nil, err
	}
	newSubject, err := i.Reduce(subject, b)
	if err != nil {
		return nil, err
	}
	newFormula, err := i.Reduce(subject, c)
	if err != nil {
		return nil, err
	}
	return i.Reduce(newSubject, newFormula)
}

func (i *Interpreter) isCell(subject, operand noun.Noun) (noun.Noun, error) {
	product, err := i.Reduce(subject, operand)
	if err != nil {
		return nil, err
	}
	return noun.Bool(noun.IsCell(product)), nil
}

func (i *Interpreter) increment(subject, operand noun.Noun) (noun.Noun, error) {
	product, err := i.Reduce(subject, operand)
	if err != nil {
		return nil, err
	}
	atom, ok := product.(*noun.Atom)
	if !ok {
		return nil, fmt.Errorf("%w: increment produced cell %s", ErrNotAnAtom, product)
	}
	return atom.Incr(), nil
}

func (i *Interpreter) equal(subject, operand noun.Noun) (noun.Noun, error) {
	b, c, err := splitPair(operand, noun.OpEqual)
	if err != nil {
		return nil, err
	}
	left, err := i.Reduce(subject, b)
	if err != nil {
		return nil, err
	}
	right, err := i.Reduce(subject, c)
	if err != nil {
		return nil, err
	}
	return noun.Bool(noun.Equal(left, right)), nil
}

// branch is defined by rewriting to the primitive operators rather than
// hand-coding the selection: the test product is incremented twice to
// map 0/1 onto addresses 2/3, that address picks one of (then . else),
// and the pick is reduced against the original subject. A test product
// other than 0 or 1 therefore faults in the address step.
func (i *Interpreter) branch(subject, operand noun.Noun) (noun.Noun, error) {
	b, cd, err := splitPair(operand, noun.OpBranch)
	if err != nil {
		return nil, err
	}
	c, d, err := splitPair(cd, noun.OpBranch)
	if err != nil {
		return nil, err
	}

	incr := noun.OpNoun(noun.OpIncrement)
	addr := noun.OpNoun(noun.OpAddress)

	cond, err := i.Reduce(subject, noun.NewCell(incr, noun.NewCell(incr, b)))
	if err != nil {
		return nil, err
	}
	pick, err := i.Reduce(noun.NewCell(noun.A(2), noun.A(3)), noun.NewCell(addr, cond))
	if err != nil {
		return nil, err
	}
	chosen, err := i.Reduce(noun.NewCell(c, d), noun.NewCell(addr, pick))
	if err != nil {
		return nil, err
	}
	return i.Reduce(subject, chosen)
}

// compose reduces the second sub-formula against the product of the
// first, not the original subject.
func (i *Interpreter) compose(subject, operand noun.Noun) (noun.Noun, error) {
	b, c, err := splitPair(operand, noun.OpCompose)
	if err != nil {
		return nil, err
	}
	newSubject, err := i.Reduce(subject, b)
	if err != nil {
		return nil, err
	}
	return i.Reduce(newSubject, c)
}

// extend pushes the product of the first sub-formula in front of the
// whole original subject, then reduces the second against the extended
// subject.
func (i *Interpreter) extend(subject, operand noun.Noun) (noun.Noun, error) {
	b, c, err := splitPair(operand, noun.OpExtend)
	if err != nil {
		return nil, err
	}
	value, err := i.Reduce(subject, b)
	if err != nil {
		return nil, err
	}
	return i.Reduce(noun.NewCell(value, subject), c)
}

// invoke materializes a core from the second sub-formula, then looks up
// the arm at path b inside it and reduces that arm with the core itself
// as the subject, via the eval rewrite (2 (0 1) (0 b)).
func (i *Interpreter) invoke(subject, operand noun.Noun) (noun.Noun, error) {
	b, c, err := splitPair(operand, noun.OpInvoke)
	if err != nil {
		return nil, err
	}
	core, err := i.Reduce(subject, c)
	if err != nil {
		return nil, err
	}

	addr := noun.OpNoun(noun.OpAddress)
	formula := noun.NewCell(
		noun.OpNoun(noun.OpEval),
		noun.NewCell(
			noun.NewCell(addr, noun.A(1)),
			noun.NewCell(addr, b),
		),
	)
	return i.Reduce(core, formula)
}

// edit replaces the node at a literal path within the product of one
// sub-formula with the product of another. The path is used as given,
// never reduced.
func (i *Interpreter) edit(subject, operand noun.Noun) (noun.Noun, error) {
	bc, d, err := splitPair(operand, noun.OpEdit)
	if err != nil {
		return nil, err
	}
	b, c, err := splitPair(bc, noun.OpEdit)
	if err != nil {
		return nil, err
	}
	path, ok := b.(*noun.Atom)
	if !ok {
		return nil, fmt.Errorf("%w: edit path %s is not an atom", ErrMalformedFormula, b)
	}
	value, err := i.Reduce(subject, c)
	if err != nil {
		return nil, err
	}
	target, err := i.Reduce(subject, d)
	if err != nil {
		return nil, err
	}
	return axis.Replace(path.Nat(), value, target)
}

// hint is advisory and never reaches the product. A dynamic hint (cell
// payload) still reduces its clue formula so a faulting clue faults the
// whole reduction; the clue's product is discarded either way.
func (i *Interpreter) hint(subject, operand noun.Noun) (noun.Noun, error) {
	b, c, err := splitPair(operand, noun.OpHint)
	if err != nil {
		return nil, err
	}
	if clue, ok := b.(*noun.Cell); ok {
		if _, err := i.Reduce(subject, clue.Tail()); err != nil {
			return nil, err
		}
	}
	return i.Reduce(subject, c)
}
