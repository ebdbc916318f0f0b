package complexpr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenNum is a numeric literal, possibly with a trailing i.
	tokenNum
	// tokenIdent is a variable or function name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open parenthesis.
	tokenOpen
	// tokenClose is a close parenthesis.
	tokenClose
	// tokenSep is a function arguments separator.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators. The
// two-rune power spelling ** is recognized by the scanner directly, as is
// its alias ^.
const Operators = "+-*/^"

// tokenize scans src into its full token sequence. Whitespace separates
// tokens and is otherwise insignificant. Any rune that cannot start or
// extend a token fails the whole pass with a LexError, so the concatenation
// of the returned token texts always equals the whitespace-stripped input.
func tokenize(src string) ([]lexToken, error) {
	l := lexer{src: src, col: 1}
	var toks []lexToken
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.kind == tokenNone {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

type lexer struct {
	src string
	i   int // byte offset of the next rune
	col int // rune position of the next rune, 1-based
}

// advance consumes n bytes of ASCII input.
func (l *lexer) advance(n int) {
	l.i += n
	l.col += n
}

// next scans the next token. The end of the input is a token of kind
// tokenNone with no error.
func (l *lexer) next() (lexToken, error) {
	for l.i < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.i:])
		if !unicode.IsSpace(r) {
			break
		}
		l.i += sz
		l.col++
	}
	if l.i >= len(l.src) {
		return lexToken{}, nil
	}
	tok := lexToken{pos: l.col}
	r, _ := utf8.DecodeRuneInString(l.src[l.i:])
	switch {
	case '0' <= r && r <= '9', r == '.':
		tok.text = l.scanNum()
		tok.kind = tokenNum
	case r == '_', unicode.IsLetter(r):
		tok.text = l.scanIdent()
		// A lone i is the imaginary unit, not a variable.
		if tok.text == "i" {
			tok.kind = tokenNum
		} else {
			tok.kind = tokenIdent
		}
	case r == ',':
		l.advance(1)
		tok.text, tok.kind = ",", tokenSep
	case r == '(':
		l.advance(1)
		tok.text, tok.kind = "(", tokenOpen
	case r == ')':
		l.advance(1)
		tok.text, tok.kind = ")", tokenClose
	case r == '*':
		if strings.HasPrefix(l.src[l.i:], "**") {
			l.advance(2)
			tok.text, tok.kind = "**", tokenOp
		} else {
			l.advance(1)
			tok.text, tok.kind = "*", tokenOp
		}
	case strings.ContainsRune(Operators, r):
		l.advance(1)
		tok.text, tok.kind = string(r), tokenOp
	default:
		return tok, &LexError{Text: string(r), Col: l.col}
	}
	return tok, nil
}

// scanNum consumes a numeric literal: digits and dots, an optional exponent
// whose sign directly follows the marker, and an optional trailing i. The
// scan is purely structural; numerically malformed text like "1e" or "1.2.3"
// still tokenizes and is rejected with a LiteralError when the literal is
// parsed during evaluation.
func (l *lexer) scanNum() string {
	start := l.i
	var seenE, le bool
	for l.i < len(l.src) {
		switch c := l.src[l.i]; {
		case '0' <= c && c <= '9', c == '.':
			le = false
		case (c == 'e' || c == 'E') && !seenE:
			seenE, le = true, true
		case (c == '+' || c == '-') && le:
			le = false
		case c == 'i':
			l.advance(1)
			return l.src[start:l.i]
		default:
			return l.src[start:l.i]
		}
		l.advance(1)
	}
	return l.src[start:l.i]
}

// scanIdent consumes an identifier of letters, digits, and underscores.
func (l *lexer) scanIdent() string {
	start := l.i
	for l.i < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.i:])
		if sz == 0 || r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.i += sz
		l.col++
	}
	return l.src[start:l.i]
}

// LexError indicates a rune that cannot be part of any token. It implements
// InputError.
type LexError struct {
	// Text is the offending rune.
	Text string
	// Col is the rune position of the offending rune.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, "invalid token: "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}
