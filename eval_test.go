package complexpr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxmath/complexpr"
)

func TestEval(t *testing.T) {
	type env = map[string]complexpr.Complex
	cases := []struct {
		name string
		src  string
		vars env
		want complexpr.Complex
	}{
		{"num", "1", nil, complexpr.Complex{Re: 1}},
		{"imag-unit", "i", nil, complexpr.Complex{Im: 1}},
		{"imag-coef", "4i", nil, complexpr.Complex{Im: 4}},
		{"imag-exp", "2.5e-3i", nil, complexpr.Complex{Im: 0.0025}},
		{"precedence", "2+3*4", nil, complexpr.Complex{Re: 14}},
		{"grouping", "(2+3)*4", nil, complexpr.Complex{Re: 20}},
		{"pow-right", "2**3**2", nil, complexpr.Complex{Re: 512}},
		{"pow-caret", "2^3", nil, complexpr.Complex{Re: 8}},
		{"neg-leading", "-2+3", nil, complexpr.Complex{Re: 1}},
		{"neg-operand", "2*-3", nil, complexpr.Complex{Re: -6}},
		{"literal-arith", "(3+2i)*(1-4i)", nil, complexpr.Complex{Re: 11, Im: -10}},
		{"conj", "conj(3+4i)", nil, complexpr.Complex{Re: 3, Im: -4}},
		{"sqrt-neg", "sqrt(-1)", nil, complexpr.Complex{Im: 1}},
		{"sqrt-complex", "sqrt(3+4i)", nil, complexpr.Complex{Re: 2, Im: 1}},
		{"root", "root(8, 3)", nil, complexpr.Complex{Re: 2}},
		{"div", "(11-10i)/(1-4i)", nil, complexpr.Complex{Re: 3, Im: 2}},
		{"pow-neg-exp", "2**-2", nil, complexpr.Complex{Re: 0.25}},
		{"pow-neg-base", "(-2)**2", nil, complexpr.Complex{Re: 4}},
		{"ipow-i", "i**2", nil, complexpr.Complex{Re: -1}},
		{"vars", "x*y+1", env{"x": {Re: 2}, "y": {Re: 3}}, complexpr.Complex{Re: 7}},
		{"var-complex", "conj(z)", env{"z": {Re: 1, Im: 2}}, complexpr.Complex{Re: 1, Im: -2}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := complexpr.Parse(c.src)
			require.NoError(t, err)
			got, err := e.Eval(c.vars)
			require.NoError(t, err)
			assert.True(t, got.ApproxEqual(c.want, complexpr.DefaultTolerance),
				"want %v, got %v", c.want, got)
		})
	}
}

func TestEvalGeneralPow(t *testing.T) {
	e, err := complexpr.Parse("2**0.5")
	require.NoError(t, err)
	got, err := e.Eval(nil)
	require.NoError(t, err)
	assert.True(t, got.ApproxEqual(complexpr.Complex{Re: math.Sqrt2}, complexpr.DefaultTolerance), "got %v", got)

	// i**i is real: e^(-pi/2).
	e, err = complexpr.Parse("i**i")
	require.NoError(t, err)
	got, err = e.Eval(nil)
	require.NoError(t, err)
	assert.True(t, got.ApproxEqual(complexpr.Complex{Re: math.Exp(-math.Pi / 2)}, complexpr.DefaultTolerance), "got %v", got)
}

func TestEvalError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars map[string]complexpr.Complex
		err  any
	}{
		{"unbound", "x+1", nil, new(*complexpr.NameError)},
		{"unbound-partial", "x+y", map[string]complexpr.Complex{"x": {Re: 1}}, new(*complexpr.NameError)},
		{"unknown-func", "foo(1)", nil, new(*complexpr.FuncError)},
		{"unknown-func-arity", "foo(1, 2, 3)", nil, new(*complexpr.FuncError)},
		{"literal-dot", ".", nil, new(*complexpr.LiteralError)},
		{"literal-exp", "1e", nil, new(*complexpr.LiteralError)},
		{"literal-dots", "1.2.3", nil, new(*complexpr.LiteralError)},
		{"degree-imag", "root(1, i)", nil, new(*complexpr.DegreeError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := complexpr.Parse(c.src)
			require.NoError(t, err)
			_, err = e.Eval(c.vars)
			require.Error(t, err)
			assert.ErrorAs(t, err, c.err, "got %#v", err)
		})
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	for _, src := range []string{"1/0", "1/(2-2)", "0**-1", "(0+0i)**-2"} {
		t.Run(src, func(t *testing.T) {
			e, err := complexpr.Parse(src)
			require.NoError(t, err)
			_, err = e.Eval(nil)
			assert.ErrorIs(t, err, complexpr.ErrDivisionByZero)
		})
	}
	// A denominator must be literally zero to fail; merely tiny is fine.
	e, err := complexpr.Parse("1/1e-150")
	require.NoError(t, err)
	_, err = e.Eval(nil)
	assert.NoError(t, err)
}

func TestEvalRootDegree(t *testing.T) {
	e, err := complexpr.Parse("root(1, 0)")
	require.NoError(t, err)
	_, err = e.Eval(nil)
	assert.ErrorIs(t, err, complexpr.ErrRootDegree)

	// A degree that rounds to zero is still zero.
	e, err = complexpr.Parse("root(1, 0.4)")
	require.NoError(t, err)
	_, err = e.Eval(nil)
	assert.ErrorIs(t, err, complexpr.ErrRootDegree)

	// Near-integer degrees round.
	e, err = complexpr.Parse("root(8, 3.0000000000001)")
	require.NoError(t, err)
	got, err := e.Eval(nil)
	require.NoError(t, err)
	assert.True(t, got.ApproxEqual(complexpr.Complex{Re: 2}, complexpr.DefaultTolerance), "got %v", got)
}

func TestEvalIdempotent(t *testing.T) {
	e, err := complexpr.Parse("sqrt(x)*conj(y)/(x+y)")
	require.NoError(t, err)
	env := map[string]complexpr.Complex{
		"x": {Re: 1.5, Im: -2.25},
		"y": {Re: -0.75, Im: 4},
	}
	first, err := e.Eval(env)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		got, err := e.Eval(env)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestEvalString(t *testing.T) {
	got, err := complexpr.EvalString("conj(3+4i)")
	require.NoError(t, err)
	assert.Equal(t, complexpr.Complex{Re: 3, Im: -4}, got)

	_, err = complexpr.EvalString("x")
	assert.Error(t, err)
}
