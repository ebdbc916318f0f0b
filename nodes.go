package complexpr

import (
	"strings"
)

// node is a node in the abstract syntax tree of an expression. The tree is
// built once by Parse and never modified; each node exclusively owns its
// children.
type node interface {
	// fmt writes the fully parenthesized prefix form of the node.
	fmt(b *strings.Builder)
	// eval computes the node's value under env.
	eval(env map[string]Complex) (Complex, error)
}

// litNode holds the raw text of a numeric literal. The text is parsed to a
// value only when the node is evaluated, so lexically valid but numerically
// malformed literals survive parsing.
type litNode struct {
	text string
}

// nameNode is a free variable resolved from the environment.
type nameNode struct {
	name string
}

// unaryNode is a unary operator application. Negation is the only unary
// operator.
type unaryNode struct {
	op string
	x  node
}

// binaryNode is a binary operator application. op is the canonical spelling,
// with ** for either power token.
type binaryNode struct {
	op          string
	left, right node
}

// callNode is a function call with its arguments in left-to-right order.
type callNode struct {
	name string
	args []node
}

func (n litNode) fmt(b *strings.Builder) {
	b.WriteString(n.text)
}

func (n nameNode) fmt(b *strings.Builder) {
	b.WriteString(n.name)
}

func (n unaryNode) fmt(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.op)
	b.WriteByte(' ')
	n.x.fmt(b)
	b.WriteByte(')')
}

func (n binaryNode) fmt(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.op)
	b.WriteByte(' ')
	n.left.fmt(b)
	b.WriteByte(' ')
	n.right.fmt(b)
	b.WriteByte(')')
}

func (n callNode) fmt(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(n.name)
	for _, a := range n.args {
		b.WriteByte(' ')
		a.fmt(b)
	}
	b.WriteByte(')')
}
