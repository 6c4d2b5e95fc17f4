package ir

import (
	"strings"
	"testing"

	"github.com/smallcc/smallcc/internal/parser"
)

func generate(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := parser.ParseFile(src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return Generate(prog)
}

func listing(t *testing.T, expr string) string {
	t.Helper()
	p := generate(t, "int main(void) { return "+expr+"; }")
	var b strings.Builder
	Fprint(&b, p)
	return b.String()
}

func TestConstantLowersInPlace(t *testing.T) {
	p := generate(t, "int main(void) { return 42; }")
	body := p.Function.Body
	if len(body) != 1 {
		t.Fatalf("got %d instructions, want 1: %v", len(body), body)
	}
	ret, ok := body[0].(Return)
	if !ok {
		t.Fatalf("got %T, want Return", body[0])
	}
	if c, ok := ret.Value.(Constant); !ok || c.Value != 42 {
		t.Errorf("got return value %v, want constant 42", ret.Value)
	}
}

func TestUnaryAllocatesTemp(t *testing.T) {
	p := generate(t, "int main(void) { return -5; }")
	body := p.Function.Body
	if len(body) != 2 {
		t.Fatalf("got %d instructions, want 2", len(body))
	}
	un, ok := body[0].(Unary)
	if !ok || un.Op != Negate {
		t.Fatalf("got %#v, want negate", body[0])
	}
	if un.Dst != (Var{ID: 0}) {
		t.Errorf("destination %v, want tmp.0", un.Dst)
	}
	ret := body[1].(Return)
	if ret.Value != un.Dst {
		t.Errorf("return value %v does not match unary destination %v", ret.Value, un.Dst)
	}
}

func TestNestedUnaryTempChain(t *testing.T) {
	got := listing(t, "!~-5")
	want := `function main:
  tmp.0 = neg 5
  tmp.1 = not tmp.0
  tmp.2 = lnot tmp.1
  return tmp.2
`
	if got != want {
		t.Errorf("listing mismatch:\ngot:\n%swant:\n%s", got, want)
	}
}

func TestBinaryLeftBeforeRight(t *testing.T) {
	// The right operand's multiply is emitted before the outer add, and
	// within each binary the left subtree lowers first.
	got := listing(t, "2 + 3 * 4")
	want := `function main:
  tmp.0 = mul 3, 4
  tmp.1 = add 2, tmp.0
  return tmp.1
`
	if got != want {
		t.Errorf("listing mismatch:\ngot:\n%swant:\n%s", got, want)
	}
}

func TestShortCircuitAnd(t *testing.T) {
	got := listing(t, "1 && 0")
	want := `function main:
  jumpz 1, and_false.0
  jumpz 0, and_false.0
  tmp.0 = 1
  jump and_end.1
and_false.0:
  tmp.0 = 0
and_end.1:
  return tmp.0
`
	if got != want {
		t.Errorf("listing mismatch:\ngot:\n%swant:\n%s", got, want)
	}
}

func TestShortCircuitOr(t *testing.T) {
	got := listing(t, "0 || 3")
	want := `function main:
  jumpnz 0, or_true.0
  jumpnz 3, or_true.0
  tmp.0 = 0
  jump or_end.1
or_true.0:
  tmp.0 = 1
or_end.1:
  return tmp.0
`
	if got != want {
		t.Errorf("listing mismatch:\ngot:\n%swant:\n%s", got, want)
	}
}

// The right operand's instructions must sit strictly between the first
// conditional jump and the result assignment, so a short-circuiting left
// operand skips them.
func TestShortCircuitSkipsRightOperand(t *testing.T) {
	p := generate(t, "int main(void) { return 1 && (2 + 3); }")
	body := p.Function.Body

	firstJump := -1
	addIdx := -1
	for i, ins := range body {
		switch ins.(type) {
		case JumpIfZero:
			if firstJump < 0 {
				firstJump = i
			}
		case Binary:
			addIdx = i
		}
	}
	if firstJump < 0 || addIdx < 0 {
		t.Fatalf("missing jump or add in %v", body)
	}
	if addIdx < firstJump {
		t.Errorf("right operand lowered at %d, before the guarding jump at %d",
			addIdx, firstJump)
	}
}

func TestLabelsUniqueAcrossNesting(t *testing.T) {
	p := generate(t, "int main(void) { return 1 && 0 || 1 && 1; }")
	seen := map[string]bool{}
	for _, ins := range p.Function.Body {
		if l, ok := ins.(Label); ok {
			if seen[l.Name] {
				t.Errorf("label %s defined twice", l.Name)
			}
			seen[l.Name] = true
		}
	}
	if len(seen) != 6 {
		t.Errorf("got %d labels, want 6 (two per logical operator)", len(seen))
	}
}

func TestGeneratorStateIsPerRun(t *testing.T) {
	// Two generations from the same AST must produce identical temp and
	// label numbering; counters are not process-global.
	src := "int main(void) { return 1 && 0; }"
	first := listing(t, "1 && 0")
	_ = generate(t, src)
	second := listing(t, "1 && 0")
	if first != second {
		t.Errorf("numbering differs across runs:\n%s\nvs:\n%s", first, second)
	}
}

func TestFunctionEndsWithReturn(t *testing.T) {
	for _, expr := range []string{"0", "-1", "1 && 0", "2*3+4/2"} {
		p := generate(t, "int main(void) { return "+expr+"; }")
		body := p.Function.Body
		if _, ok := body[len(body)-1].(Return); !ok {
			t.Errorf("%s: last instruction is %T, want Return", expr, body[len(body)-1])
		}
	}
}
