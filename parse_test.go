package complexpr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxmath/complexpr"
)

func TestParseRender(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"num", "1", "1"},
		{"ident", "x", "x"},
		{"imag", "3i", "3i"},
		{"add", "1+2", "(+ 1 2)"},
		{"assoc-left", "1-2-3", "(- (- 1 2) 3)"},
		{"precedence", "2+3*4", "(+ 2 (* 3 4))"},
		{"grouping", "(2+3)*4", "(* (+ 2 3) 4)"},
		{"pow-right", "2**3**2", "(** 2 (** 3 2))"},
		{"pow-caret", "2^3", "(** 2 3)"},
		{"pow-mixed", "2^3**2", "(** 2 (** 3 2))"},
		{"neg-leading", "-2+3", "(+ (- 2) 3)"},
		{"neg-operand", "2*-3", "(* 2 (- 3))"},
		{"neg-paren", "(-2)", "(- 2)"},
		{"neg-comma", "root(x,-2)", "(root x (- 2))"},
		{"neg-double", "--x", "(- (- x))"},
		{"neg-pow", "-2**2", "(- (** 2 2))"},
		{"call", "conj(x)", "(conj x)"},
		{"call-two", "root(x, 3)", "(root x 3)"},
		{"call-nested", "root(sqrt(x), 1+2)", "(root (sqrt x) (+ 1 2))"},
		{"spec-example", "(a+b)*conj(c)", "(* (+ a b) (conj c))"},
		{"whitespace", " ( a + b ) * conj( c ) ", "(* (+ a b) (conj c))"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := complexpr.Parse(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.want, e.String())
		})
	}
}

func TestParseError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		err  any
	}{
		{"lex", "2 @ 3", new(*complexpr.LexError)},
		{"comma-bare", "1,2", new(*complexpr.SeparatorError)},
		{"comma-nothing", ",", new(*complexpr.SeparatorError)},
		{"open-unclosed", "(1+2", new(*complexpr.BracketError)},
		{"open-call", "sqrt(1", new(*complexpr.BracketError)},
		{"close-stray", "1+2)", new(*complexpr.BracketError)},
		{"close-bare", ")", new(*complexpr.BracketError)},
		{"op-missing-rhs", "1+", new(*complexpr.ArgumentError)},
		{"op-missing-lhs", "*1", new(*complexpr.ArgumentError)},
		{"call-empty", "sqrt()", new(*complexpr.ArgumentError)},
		{"empty", "", new(*complexpr.MalformedError)},
		{"adjacent", "1 2", new(*complexpr.MalformedError)},
		{"group-comma", "(1,2)", new(*complexpr.MalformedError)},
		{"call-extra", "sqrt(1,2)", new(*complexpr.MalformedError)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := complexpr.Parse(c.src)
			require.Error(t, err)
			assert.ErrorAs(t, err, c.err, "got %#v", err)
		})
	}
}

func TestParseErrorPos(t *testing.T) {
	_, err := complexpr.Parse("1 + (2 * 3")
	var brErr *complexpr.BracketError
	require.ErrorAs(t, err, &brErr)
	assert.Equal(t, 5, brErr.Pos())

	_, err = complexpr.Parse("1 , 2")
	var sepErr *complexpr.SeparatorError
	require.ErrorAs(t, err, &sepErr)
	assert.Equal(t, 3, sepErr.Pos())
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "1+2+3", nil},
		{"one", "1+2+x", []string{"x"}},
		{"sorted", "z+y+x+w", []string{"w", "x", "y", "z"}},
		{"reuse", "a+b+c+b+a", []string{"a", "b", "c"}},
		{"func-not-var", "conj(a)", []string{"a"}},
		{"imag-not-var", "i*a", []string{"a"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := complexpr.Parse(c.src)
			require.NoError(t, err)
			assert.Equal(t, c.vars, e.Vars())
		})
	}
}

// Two spellings of the same expression parse to the same tree.
func TestParseSpellings(t *testing.T) {
	pairs := [][2]string{
		{"2**3", "2^3"},
		{"(a+b)*c", " ( a + b ) * c "},
		{"root(x,2)", "root( x , 2 )"},
	}
	for _, p := range pairs {
		a, err := complexpr.Parse(p[0])
		require.NoError(t, err)
		b, err := complexpr.Parse(p[1])
		require.NoError(t, err)
		assert.Equal(t, a.String(), b.String(), "%q vs %q", p[0], p[1])
	}
}

func TestRenderDeterministic(t *testing.T) {
	e, err := complexpr.Parse("(a+b)*conj(c)-root(d, 2)")
	require.NoError(t, err)
	first := e.String()
	for i := 0; i < 3; i++ {
		assert.Equal(t, first, e.String())
	}
	assert.False(t, strings.ContainsAny(first, "^"), "power renders as **")
}
