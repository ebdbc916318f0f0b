package complexpr

import (
	"math"
	"strconv"
	"strings"
)

// degreeWindow is how far a root degree's imaginary part may stray from zero
// while still counting as an integer degree.
const degreeWindow = 1e-12

// Eval evaluates the expression under an environment binding variable names
// to values. The environment is read-only during the call; evaluating the
// same expression twice with the same environment yields identical results.
func (e *Expr) Eval(env map[string]Complex) (Complex, error) {
	return e.n.eval(env)
}

// EvalString is a shortcut to parse and evaluate an expression with no free
// variables.
func EvalString(src string) (Complex, error) {
	e, err := Parse(src)
	if err != nil {
		return Complex{}, err
	}
	return e.Eval(nil)
}

func (n litNode) eval(env map[string]Complex) (Complex, error) {
	return parseLiteral(n.text)
}

// parseLiteral converts deferred literal text to a value. A trailing i with
// an empty or sign-only mantissa is a unit imaginary.
func parseLiteral(text string) (Complex, error) {
	if strings.HasSuffix(text, "i") {
		switch m := text[:len(text)-1]; m {
		case "", "+":
			return Complex{Im: 1}, nil
		case "-":
			return Complex{Im: -1}, nil
		default:
			v, err := strconv.ParseFloat(m, 64)
			if err != nil {
				return Complex{}, &LiteralError{Text: text}
			}
			return Complex{Im: v}, nil
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Complex{}, &LiteralError{Text: text}
	}
	return Complex{Re: v}, nil
}

func (n nameNode) eval(env map[string]Complex) (Complex, error) {
	v, ok := env[n.name]
	if !ok {
		return Complex{}, &NameError{Name: n.name}
	}
	return v, nil
}

func (n unaryNode) eval(env map[string]Complex) (Complex, error) {
	v, err := n.x.eval(env)
	if err != nil {
		return Complex{}, err
	}
	return v.Neg(), nil
}

func (n binaryNode) eval(env map[string]Complex) (Complex, error) {
	l, err := n.left.eval(env)
	if err != nil {
		return Complex{}, err
	}
	r, err := n.right.eval(env)
	if err != nil {
		return Complex{}, err
	}
	switch n.op {
	case "+":
		return l.Add(r), nil
	case "-":
		return l.Sub(r), nil
	case "*":
		return l.Mul(r), nil
	case "/":
		return l.Div(r)
	case "**":
		return l.Pow(r)
	default:
		panic("complexpr: invalid binary operator " + strconv.Quote(n.op))
	}
}

func (n callNode) eval(env map[string]Complex) (Complex, error) {
	args := make([]Complex, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(env)
		if err != nil {
			return Complex{}, err
		}
		args[i] = v
	}
	switch n.name {
	case "conj":
		return args[0].Conj(), nil
	case "sqrt":
		return args[0].Sqrt(), nil
	case "root":
		d := args[1]
		if math.Abs(d.Im) >= degreeWindow {
			return Complex{}, &DegreeError{Degree: d}
		}
		return args[0].Root(int(math.Round(d.Re)))
	default:
		return Complex{}, &FuncError{Name: n.name}
	}
}

// LiteralError is an error from parsing the text of a numeric literal that
// is lexically valid but numerically malformed.
type LiteralError struct {
	// Text is the literal text.
	Text string
}

func (err *LiteralError) Error() string {
	return "invalid literal: " + strconv.Quote(err.Text)
}

// NameError is an error from a lookup for a variable that is missing from
// the environment.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// FuncError is an error from a call to a function name the evaluator does
// not know.
type FuncError struct {
	// Name is the function name that was called.
	Name string
}

func (err *FuncError) Error() string {
	return "unknown function: " + strconv.Quote(err.Name)
}

// DegreeError is an error from a root whose degree is not an integer.
type DegreeError struct {
	// Degree is the evaluated degree argument.
	Degree Complex
}

func (err *DegreeError) Error() string {
	return "root degree " + err.Degree.String() + " is not an integer"
}
