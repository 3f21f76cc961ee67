// Package axis implements the integer tree-addressing codec: a nonzero
// atom read as a bit-string route, where the highest set bit is a
// sentinel and each following bit, high to low, descends to the head (0)
// or tail (1) of the current cell. Path 1 addresses the root, 2 and 3
// its head and tail, and for any n >= 1 path 2n is the head of path n
// and 2n+1 its tail.
package axis

import (
	"errors"
	"fmt"
	"math/big"

	"nock/reducer-go/pkg/noun"
)

var (
	// ErrInvalidAddress reports a zero path atom.
	ErrInvalidAddress = errors.New("axis: address can't be zero")
	// ErrNotACell reports a descent step that reached an atom.
	ErrNotACell = errors.New("axis: expected a cell")
)

// Read returns the node addressed by path within root.
func Read(path *big.Int, root noun.Noun) (noun.Noun, error) {
	if path.Sign() == 0 {
		return nil, ErrInvalidAddress
	}
	cur := root
	for i := path.BitLen() - 2; i >= 0; i-- {
		cell, ok := cur.(*noun.Cell)
		if !ok {
			return nil, fmt.Errorf("%w: path %s reached atom %s", ErrNotACell, path, cur)
		}
		if path.Bit(i) == 0 {
			cur = cell.Head()
		} else {
			cur = cell.Tail()
		}
	}
	return cur, nil
}

// frame records one descent step: which side was taken and both
// children of the cell before descent.
type frame struct {
	bit  uint
	head noun.Noun
	tail noun.Noun
}

// Replace returns a new tree equal to target except that the node at
// path is value. Target is never mutated; every subtree off the
// rewritten spine is shared with target by identity, so for any valid
// path Read(path, Replace(path, v, t)) yields v.
func Replace(path *big.Int, value, target noun.Noun) (noun.Noun, error) {
	if path.Sign() == 0 {
		return nil, ErrInvalidAddress
	}

	cur := target
	frames := make([]frame, 0, path.BitLen())
	for i := path.BitLen() - 2; i >= 0; i-- {
		cell, ok := cur.(*noun.Cell)
		if !ok {
			return nil, fmt.Errorf("%w: path %s reached atom %s", ErrNotACell, path, cur)
		}
		bit := path.Bit(i)
		frames = append(frames, frame{bit: bit, head: cell.Head(), tail: cell.Tail()})
		if bit == 0 {
			cur = cell.Head()
		} else {
			cur = cell.Tail()
		}
	}

	result := value
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		if f.bit == 0 {
			result = noun.NewCell(result, f.tail)
		} else {
			result = noun.NewCell(f.head, result)
		}
	}
	return result, nil
}
