package noun

// Equal reports whether a and b denote the same tree of atom values,
// regardless of how the trees are shared. Identical objects short-circuit;
// otherwise the comparison walks an explicit FIFO work list of node pairs,
// so trees of any depth or width cannot exhaust the call stack.
func Equal(a, b Noun) bool {
	if a == b {
		return true
	}

	type pair struct {
		a, b Noun
	}
	queue := []pair{{a, b}}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		if p.a == p.b {
			continue
		}
		switch left := p.a.(type) {
		case *Atom:
			right, ok := p.b.(*Atom)
			if !ok || left.value.Cmp(right.value) != 0 {
				return false
			}
		case *Cell:
			right, ok := p.b.(*Cell)
			if !ok {
				return false
			}
			queue = append(queue, pair{left.head, right.head}, pair{left.tail, right.tail})
		default:
			return false
		}
	}
	return true
}
