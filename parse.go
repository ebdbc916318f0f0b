package complexpr

import (
	"strings"
)

// Expr = num | name | Call | Neg | Add | Sub | Mul | Div | Pow | '(' Expr ')'
// Call = funcname '(' Expr { ',' Expr } ')'
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '**' Expr | Expr '^' Expr

// Expr is a parsed expression that can be rendered, evaluated with an
// environment, or checked for equivalence against another expression.
type Expr struct {
	// n is the root node of the expression.
	n node
	// names is the sorted list of variable names used in the expression.
	names []string
}

// Parse parses an expression.
func Parse(src string) (*Expr, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	post, names, err := shunt(toks)
	if err != nil {
		return nil, err
	}
	n, err := build(post)
	if err != nil {
		return nil, err
	}
	sortstrs(names)
	return &Expr{n: n, names: names}, nil
}

// Vars returns the free variable names of the expression, sorted.
func (e *Expr) Vars() []string {
	return append(([]string)(nil), e.names...)
}

// String renders the expression as a fully parenthesized prefix tree, e.g.
// "(* (+ a b) (conj c))".
func (e *Expr) String() string {
	var b strings.Builder
	e.n.fmt(&b)
	return b.String()
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// opNeg is the marker spelling for unary negation, which shares its token
// with subtraction.
const opNeg = "u-"

// opEntry describes an operator: its precedence (higher binds tighter),
// associativity, and arity.
type opEntry struct {
	prec  int8
	right bool
	arity int8
}

// opTable is the operator descriptor table. It is never modified.
var opTable = map[string]opEntry{
	"+":   {1, false, 2},
	"-":   {1, false, 2},
	"*":   {2, false, 2},
	"/":   {2, false, 2},
	opNeg: {3, true, 1},
	"**":  {4, true, 2},
	"^":   {4, true, 2},
}

// funcArity is the fixed arity of each known function.
var funcArity = map[string]int{
	"conj": 1,
	"sqrt": 1,
	"root": 2,
}

// canonOp maps an operator spelling to the one used in rendered trees.
func canonOp(text string) string {
	switch text {
	case opNeg:
		return "-"
	case "^":
		return "**"
	}
	return text
}

type markerKind int8

const (
	// markParen is an open parenthesis on the operator stack.
	markParen markerKind = iota
	// markOp is a pending operator.
	markOp
	// markFunc is a pending function call. Its argc counts the separators
	// seen inside the call's parentheses.
	markFunc
)

type marker struct {
	kind markerKind
	text string
	pos  int
	argc int
}

// pfItem is one element of the postfix output queue.
type pfItem struct {
	kind pfKind
	text string
	pos  int
	// argc is the counted argument total for pfCall items.
	argc int
}

type pfKind int8

const (
	pfNum pfKind = iota
	pfName
	pfOp
	pfCall
)

func (m marker) item() pfItem {
	return pfItem{kind: pfOp, text: m.text, pos: m.pos}
}

// shunt runs the operator-precedence pass, converting the token sequence to
// postfix order. It also collects the set of free variable names.
func shunt(toks []lexToken) ([]pfItem, []string, error) {
	var (
		out   []pfItem
		stack []marker
		names = make(map[string]bool)
		prev  lexToken
	)
	for i, tok := range toks {
		switch tok.kind {
		case tokenNum:
			out = append(out, pfItem{kind: pfNum, text: tok.text, pos: tok.pos})
		case tokenIdent:
			if i+1 < len(toks) && toks[i+1].kind == tokenOpen {
				stack = append(stack, marker{kind: markFunc, text: tok.text, pos: tok.pos})
			} else {
				names[tok.text] = true
				out = append(out, pfItem{kind: pfName, text: tok.text, pos: tok.pos})
			}
		case tokenOp:
			text := tok.text
			if text == "-" && unaryContext(prev) {
				text = opNeg
			}
			op, ok := opTable[text]
			if !ok {
				return nil, nil, &OperatorError{Col: tok.pos, Operator: tok.text}
			}
			if op.arity == 1 {
				// A prefix operator has no finished left operand, so there
				// is nothing it could pop.
				stack = append(stack, marker{kind: markOp, text: text, pos: tok.pos})
				prev = tok
				continue
			}
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				// Parentheses and function markers block popping.
				if top.kind != markOp {
					break
				}
				tp := opTable[top.text]
				if tp.prec < op.prec || tp.prec == op.prec && op.right {
					break
				}
				out = append(out, top.item())
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, marker{kind: markOp, text: text, pos: tok.pos})
		case tokenOpen:
			stack = append(stack, marker{kind: markParen, text: tok.text, pos: tok.pos})
		case tokenSep:
			// Pop to the innermost open parenthesis. A separator with no
			// enclosing parenthesis is outside any call.
			for {
				if len(stack) == 0 {
					return nil, nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
				}
				top := stack[len(stack)-1]
				if top.kind == markParen {
					break
				}
				out = append(out, top.item())
				stack = stack[:len(stack)-1]
			}
			// Credit the argument to the call the parenthesis belongs to,
			// if any. Separators inside plain groupings are caught later by
			// the value stack check.
			if len(stack) >= 2 && stack[len(stack)-2].kind == markFunc {
				stack[len(stack)-2].argc++
			}
		case tokenClose:
			for {
				if len(stack) == 0 {
					return nil, nil, &BracketError{Col: tok.pos, Right: tok.text}
				}
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.kind == markParen {
					break
				}
				out = append(out, top.item())
			}
			if len(stack) > 0 && stack[len(stack)-1].kind == markFunc {
				fn := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if prev.kind != tokenOpen {
					// The last argument has no trailing separator.
					fn.argc++
				}
				out = append(out, pfItem{kind: pfCall, text: fn.text, pos: fn.pos, argc: fn.argc})
			}
		default:
			panic("complexpr: unknown token: " + tok.String())
		}
		prev = tok
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.kind != markOp {
			return nil, nil, &BracketError{Col: top.pos, Left: "("}
		}
		out = append(out, top.item())
	}
	v := make([]string, 0, len(names))
	for k := range names {
		v = append(v, k)
	}
	return out, v, nil
}

// unaryContext reports whether a minus token following prev is a negation
// rather than a subtraction.
func unaryContext(prev lexToken) bool {
	switch prev.kind {
	case tokenNone, tokenOpen, tokenSep, tokenOp:
		return true
	}
	return false
}

// build rebuilds the typed AST from the postfix sequence.
func build(post []pfItem) (node, error) {
	var stack []node
	for _, it := range post {
		switch it.kind {
		case pfNum:
			stack = append(stack, litNode{text: it.text})
		case pfName:
			stack = append(stack, nameNode{name: it.text})
		case pfOp:
			op := opTable[it.text]
			if int(op.arity) > len(stack) {
				return nil, &ArgumentError{Col: it.pos, Name: canonOp(it.text), Want: int(op.arity), Have: len(stack)}
			}
			if op.arity == 1 {
				stack[len(stack)-1] = unaryNode{op: canonOp(it.text), x: stack[len(stack)-1]}
				continue
			}
			r := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = binaryNode{op: canonOp(it.text), left: stack[len(stack)-1], right: r}
		case pfCall:
			arity, known := funcArity[it.text]
			if !known {
				// Unknown functions keep their counted arguments so that
				// evaluation can report the name.
				arity = it.argc
			}
			if arity > len(stack) {
				return nil, &ArgumentError{Col: it.pos, Name: it.text, Want: arity, Have: len(stack)}
			}
			args := make([]node, arity)
			copy(args, stack[len(stack)-arity:])
			stack = append(stack[:len(stack)-arity], callNode{name: it.text, args: args})
		default:
			return nil, &TokenError{Col: it.pos, Text: it.text}
		}
	}
	if len(stack) != 1 {
		return nil, &MalformedError{Values: len(stack)}
	}
	return stack[0], nil
}
