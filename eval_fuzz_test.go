package complexpr_test

import (
	"testing"

	"github.com/cxmath/complexpr"
)

func FuzzEval(f *testing.F) {
	f.Add("x")
	f.Add("1/0")
	f.Add("sqrt(-1)*root(x, 2)")
	f.Add("1e 2.5e-3i .")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := complexpr.Parse(s)
		if err != nil {
			return
		}
		env := map[string]complexpr.Complex{"x": {Re: 1, Im: -1}}
		// Evaluation may error but must not panic, and must be
		// deterministic.
		a, errA := e.Eval(env)
		b, errB := e.Eval(env)
		if (errA == nil) != (errB == nil) || a.String() != b.String() {
			t.Errorf("nondeterministic evaluation of %q: %v/%v vs %v/%v", s, a, errA, b, errB)
		}
	})
}
