package noun

import "strings"

// String renders the atom as a decimal numeral.
func (a *Atom) String() string { return a.value.String() }

// String flattens the right-leaning spine into a bracketed list, so the
// pair-of-pairs (a . (b . c)) renders as "{a b c}". This is a debugging
// aid, not a durable format. The walk keeps an explicit work stack so a
// deep left-leaning spine cannot exhaust the call stack.
func (c *Cell) String() string {
	type item struct {
		n   Noun
		tok byte
	}

	var b strings.Builder
	stack := []item{{n: c}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if it.n == nil {
			b.WriteByte(it.tok)
			continue
		}

		switch v := it.n.(type) {
		case *Atom:
			b.WriteString(v.value.String())
		case *Cell:
			b.WriteByte('{')
			stack = append(stack, item{tok: '}'})
			var spine []item
			cur := v
			for {
				spine = append(spine, item{n: cur.head}, item{tok: ' '})
				next, ok := cur.tail.(*Cell)
				if !ok {
					spine = append(spine, item{n: cur.tail})
					break
				}
				cur = next
			}
			for i := len(spine) - 1; i >= 0; i-- {
				stack = append(stack, spine[i])
			}
		}
	}
	return b.String()
}
