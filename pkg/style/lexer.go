package style

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNewline
	tokIdent
	tokLabel
	tokString
	tokSymbol
	tokInt
	tokFloat
	tokComma
	tokArrow
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
)

type token struct {
	kind tokenKind
	text string
	line int
	col  int

	// endLine and endCol locate the position just past the token.
	endLine int
	endCol  int
}

// describe renders a token for error messages.
func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokNewline:
		return "end of line"
	case tokString:
		return quoteString(t.text)
	case tokSymbol:
		return ":" + t.text
	case tokLabel:
		return strconv.Quote(t.text + ":")
	default:
		return strconv.Quote(t.text)
	}
}

// lexer splits style-file source into tokens. Newlines inside brackets or
// after a comma or hash rocket are dropped so that directives may span lines.
type lexer struct {
	name  string
	src   string
	pos   int
	line  int
	col   int
	depth int
	toks  []token

	comments []Comment
}

func lex(name string, src []byte) ([]token, []Comment, error) {
	lx := &lexer{name: name, src: string(src), line: 1, col: 1}
	if err := lx.run(); err != nil {
		return nil, nil, err
	}
	return lx.toks, lx.comments, nil
}

func (lx *lexer) errorf(line, col int, format string, args ...any) error {
	return &SyntaxError{Path: lx.name, Line: line, Column: col, Msg: fmt.Sprintf(format, args...)}
}

func (lx *lexer) peek(offset int) byte {
	if lx.pos+offset >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+offset]
}

// advance consumes one rune and keeps line/column bookkeeping.
func (lx *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	lx.pos += size
	if r == '\n' {
		lx.line++
		lx.col = 1
	} else {
		lx.col++
	}
	return r
}

func (lx *lexer) emit(kind tokenKind, text string, line, col int) {
	lx.toks = append(lx.toks, token{
		kind: kind, text: text, line: line, col: col,
		endLine: lx.line, endCol: lx.col,
	})
}

// continues reports whether the previous token forces the statement onward.
func (lx *lexer) continues() bool {
	if lx.depth > 0 {
		return true
	}
	if len(lx.toks) == 0 {
		return false
	}
	switch lx.toks[len(lx.toks)-1].kind {
	case tokComma, tokArrow:
		return true
	default:
		return false
	}
}

func (lx *lexer) run() error {
	for lx.pos < len(lx.src) {
		char := lx.peek(0)
		line, col := lx.line, lx.col

		switch {
		case char == ' ' || char == '\t' || char == '\r':
			lx.advance()
		case char == '#':
			lx.lexComment()
		case char == '\n' || char == ';':
			lx.advance()
			if !lx.continues() && len(lx.toks) > 0 && lx.toks[len(lx.toks)-1].kind != tokNewline {
				lx.emit(tokNewline, "\n", line, col)
			}
		case char == ',':
			lx.advance()
			lx.emit(tokComma, ",", line, col)
		case char == '=' && lx.peek(1) == '>':
			lx.advance()
			lx.advance()
			lx.emit(tokArrow, "=>", line, col)
		case char == '(' || char == '[':
			lx.advance()
			lx.depth++
			kind := tokLParen
			if char == '[' {
				kind = tokLBracket
			}
			lx.emit(kind, string(char), line, col)
		case char == ')' || char == ']':
			lx.advance()
			if lx.depth > 0 {
				lx.depth--
			}
			kind := tokRParen
			if char == ']' {
				kind = tokRBracket
			}
			lx.emit(kind, string(char), line, col)
		case char == '\'' || char == '"':
			if err := lx.lexString(); err != nil {
				return err
			}
		case char == ':':
			if err := lx.lexSymbol(); err != nil {
				return err
			}
		case isDigit(char) || ((char == '-' || char == '+') && isDigit(lx.peek(1))):
			lx.lexNumber()
		case isIdentStart(char):
			lx.lexIdent()
		default:
			r := lx.advance()
			return lx.errorf(line, col, "unexpected character %q", r)
		}
	}
	return nil
}

// lexComment records a comment. It is trailing when a token precedes it on
// the same line.
func (lx *lexer) lexComment() {
	line := lx.line
	lx.advance()
	start := lx.pos
	for lx.pos < len(lx.src) && lx.peek(0) != '\n' {
		lx.advance()
	}

	trailing := false
	if n := len(lx.toks); n > 0 {
		last := lx.toks[n-1]
		trailing = last.line == line && last.kind != tokNewline
	}
	lx.comments = append(lx.comments, Comment{
		Line:     line,
		Text:     strings.TrimRight(lx.src[start:lx.pos], " \t\r"),
		Trailing: trailing,
	})
}

func (lx *lexer) lexString() error {
	line, col := lx.line, lx.col
	quote := byte(lx.advance())

	var builder strings.Builder
	for {
		if lx.pos >= len(lx.src) {
			return lx.errorf(line, col, "unterminated string")
		}
		r := lx.advance()
		if byte(r) == quote && r < utf8.RuneSelf {
			break
		}
		if r != '\\' || lx.pos >= len(lx.src) {
			builder.WriteRune(r)
			continue
		}
		next := lx.advance()
		if quote == '\'' {
			// Single quotes only escape the quote and the backslash.
			if next != '\'' && next != '\\' {
				builder.WriteRune('\\')
			}
			builder.WriteRune(next)
			continue
		}
		switch next {
		case 'n':
			builder.WriteByte('\n')
		case 't':
			builder.WriteByte('\t')
		case 'r':
			builder.WriteByte('\r')
		case '0':
			builder.WriteByte(0)
		default:
			builder.WriteRune(next)
		}
	}

	lx.emit(tokString, builder.String(), line, col)
	return nil
}

func (lx *lexer) lexSymbol() error {
	line, col := lx.line, lx.col
	lx.advance()
	if !isIdentStart(lx.peek(0)) {
		return lx.errorf(line, col, "expected symbol name after ':'")
	}
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentByte(lx.peek(0)) {
		lx.advance()
	}
	lx.emit(tokSymbol, lx.src[start:lx.pos], line, col)
	return nil
}

func (lx *lexer) lexNumber() {
	line, col := lx.line, lx.col
	start := lx.pos
	if lx.peek(0) == '-' || lx.peek(0) == '+' {
		lx.advance()
	}
	lx.consumeDigits()

	kind := tokInt
	if lx.peek(0) == '.' && isDigit(lx.peek(1)) {
		kind = tokFloat
		lx.advance()
		lx.consumeDigits()
	}
	if exp := lx.peek(0); exp == 'e' || exp == 'E' {
		sign := lx.peek(1)
		if isDigit(sign) || ((sign == '-' || sign == '+') && isDigit(lx.peek(2))) {
			kind = tokFloat
			lx.advance()
			if !isDigit(sign) {
				lx.advance()
			}
			lx.consumeDigits()
		}
	}

	lx.emit(kind, strings.ReplaceAll(lx.src[start:lx.pos], "_", ""), line, col)
}

func (lx *lexer) consumeDigits() {
	for isDigit(lx.peek(0)) || (lx.peek(0) == '_' && isDigit(lx.peek(1))) {
		lx.advance()
	}
}

func (lx *lexer) lexIdent() {
	line, col := lx.line, lx.col
	start := lx.pos
	for lx.pos < len(lx.src) && isIdentByte(lx.peek(0)) {
		lx.advance()
	}
	text := lx.src[start:lx.pos]

	// `name:` followed by anything but a second colon is a hash label.
	if lx.peek(0) == ':' && lx.peek(1) != ':' {
		lx.advance()
		lx.emit(tokLabel, text, line, col)
		return
	}
	lx.emit(tokIdent, text, line, col)
}

func isDigit(char byte) bool {
	return char >= '0' && char <= '9'
}

func isIdentStart(char byte) bool {
	return char == '_' || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
}

func isIdentByte(char byte) bool {
	return isIdentStart(char) || isDigit(char) || char == '?' || char == '!'
}
