package driver

import (
	"errors"

	"nock/reducer-go/pkg/axis"
	"nock/reducer-go/pkg/reduce"
)

// failures maps the names fixture files use onto the error taxonomy.
var failures = map[string]error{
	"invalid-address":    axis.ErrInvalidAddress,
	"not-a-cell":         axis.ErrNotACell,
	"malformed-formula":  reduce.ErrMalformedFormula,
	"not-an-atom":        reduce.ErrNotAnAtom,
	"unsupported-opcode": reduce.ErrUnsupportedOpcode,
	"step-limit":         reduce.ErrStepLimit,
}

// FailureByName resolves a symbolic failure name to its sentinel error.
func FailureByName(name string) (error, bool) {
	err, ok := failures[name]
	return err, ok
}

// MatchFailure reports whether err belongs to the named failure class.
func MatchFailure(name string, err error) bool {
	target, ok := failures[name]
	return ok && errors.Is(err, target)
}
