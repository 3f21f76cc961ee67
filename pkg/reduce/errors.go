package reduce

import "errors"

// Any of these aborts the whole in-flight reduction: there is no retry,
// default substitution, or partial result. The address errors
// (axis.ErrInvalidAddress, axis.ErrNotACell) propagate unchanged from
// the path codec.
var (
	// ErrMalformedFormula reports a formula or operand that does not
	// match the shape its opcode requires.
	ErrMalformedFormula = errors.New("reduce: malformed formula")
	// ErrNotAnAtom reports increment applied to a cell.
	ErrNotAnAtom = errors.New("reduce: expected an atom")
	// ErrUnsupportedOpcode reports an instruction atom outside 0..11.
	ErrUnsupportedOpcode = errors.New("reduce: unsupported opcode")
	// ErrStepLimit reports an exhausted step budget on a bounded
	// interpreter.
	ErrStepLimit = errors.New("reduce: step budget exhausted")
)
