package probe

import "testing"

func TestFirst(t *testing.T) {
	var calls []string
	step := func(name string, v int, ok bool) Strategy[int] {
		return Strategy[int]{Name: name, Run: func() (int, bool) {
			calls = append(calls, name)
			return v, ok
		}}
	}

	r, ok := First(step("a", 0, false), Strategy[int]{Name: "nil"}, step("b", 2, true), step("c", 3, true))
	if !ok || r.Value != 2 || r.By != "b" {
		t.Fatalf("got %+v, %v", r, ok)
	}
	if len(calls) != 2 {
		t.Fatalf("later strategies must not run, calls=%v", calls)
	}
}

func TestFirstOr(t *testing.T) {
	got := FirstOr("unknown", Strategy[string]{Name: "x", Run: func() (string, bool) { return "", false }})
	if got != "unknown" {
		t.Fatalf("got %q", got)
	}
	if _, ok := First[int](); ok {
		t.Fatal("empty cascade must fail")
	}
}
