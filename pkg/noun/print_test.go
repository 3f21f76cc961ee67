package noun

import (
	"strings"
	"testing"
)

func TestPrintAtom(t *testing.T) {
	if got := A(42).String(); got != "42" {
		t.Fatalf("atom rendered as %q", got)
	}
}

func TestPrintFlattensRightSpine(t *testing.T) {
	cases := []struct {
		noun Noun
		want string
	}{
		{NewCell(A(1), A(2)), "{1 2}"},
		{C(A(1), A(2), A(3)), "{1 2 3}"},
		{NewCell(NewCell(A(1), A(2)), A(3)), "{{1 2} 3}"},
		{C(NewCell(A(8), A(9)), A(5), A(2)), "{{8 9} 5 2}"},
	}
	for _, tc := range cases {
		if got := tc.noun.String(); got != tc.want {
			t.Fatalf("rendered %q, want %q", got, tc.want)
		}
	}
}

func TestPrintDeepLeftSpine(t *testing.T) {
	const depth = 200_000
	var n Noun = A(0)
	for i := 0; i < depth; i++ {
		n = NewCell(n, A(1))
	}
	got := n.String()
	if !strings.HasPrefix(got, strings.Repeat("{", depth)) {
		t.Fatalf("rendering lost the left spine")
	}
	if !strings.HasSuffix(got, "0"+strings.Repeat(" 1}", depth)) {
		t.Fatalf("rendering lost the right closers")
	}
}
