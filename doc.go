// Package complexpr implements a complex-number expression calculator.
//
// An expression is ordinary infix arithmetic over complex values: "2+3i",
// "(a+b)*conj(c)", "root(z, 3)". Exponentiation is spelled "a**b" or "a^b"
// and is right-associative, so "2**3**2" is 512. A lone "i" is the imaginary
// unit, and a number may carry it directly, as in "4i" or "2.5e-3i".
//
// Parsing an expression once yields an Expr that can be rendered as a
// fully parenthesized prefix tree, evaluated under any number of variable
// environments, or tested for numerical equivalence against another Expr by
// randomized sampling.
package complexpr
