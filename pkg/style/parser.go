package style

import (
	"fmt"
	"strconv"
)

// ParseDirectives parses style-file source into directives without resolving
// them. name is used in error positions and may be empty.
func ParseDirectives(name string, data []byte) ([]Directive, error) {
	file, err := ParseFile(name, data)
	if err != nil {
		return nil, err
	}
	return file.Directives, nil
}

// ParseFile parses style-file source keeping its comments, for tools that
// rewrite the file.
func ParseFile(name string, data []byte) (*File, error) {
	toks, comments, err := lex(name, data)
	if err != nil {
		return nil, err
	}

	p := &parser{name: name, toks: toks}
	directives, err := p.parseFile()
	if err != nil {
		return nil, err
	}
	return &File{Directives: directives, Comments: comments}, nil
}

type parser struct {
	name string
	toks []token
	pos  int
}

func (p *parser) next() token {
	if p.pos >= len(p.toks) {
		last := token{kind: tokEOF, line: 1, col: 1}
		if len(p.toks) > 0 {
			end := p.toks[len(p.toks)-1]
			last.line, last.col = end.endLine, end.endCol
		}
		return last
	}
	tok := p.toks[p.pos]
	p.pos++
	return tok
}

func (p *parser) peek() token {
	saved := p.pos
	tok := p.next()
	p.pos = saved
	return tok
}

func (p *parser) errorAt(tok token, format string, args ...any) error {
	return &SyntaxError{Path: p.name, Line: tok.line, Column: tok.col, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseFile() ([]Directive, error) {
	var directives []Directive
	for {
		tok := p.peek()
		switch tok.kind {
		case tokEOF:
			return directives, nil
		case tokNewline:
			p.next()
			continue
		}

		directive, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)
	}
}

func (p *parser) parseDirective() (Directive, error) {
	head := p.next()
	if head.kind != tokIdent {
		return Directive{}, p.errorAt(head, "expected directive, found %s", head.describe())
	}

	kind, ok := directiveNames[head.text]
	if !ok {
		return Directive{}, p.errorAt(head, "unknown directive %q", head.text)
	}
	directive := Directive{Kind: kind, Line: head.line}

	paren := false
	if p.peek().kind == tokLParen {
		paren = true
		p.next()
	}

	if kind != DirectiveAll {
		if err := p.parseTarget(&directive, head.text); err != nil {
			return Directive{}, err
		}
		if err := p.parseParams(&directive, head.text); err != nil {
			return Directive{}, err
		}
	}

	if paren {
		closing := p.next()
		if closing.kind == tokEOF {
			return Directive{}, p.errorAt(closing, "unclosed '(' in %s directive", head.text)
		}
		if closing.kind != tokRParen {
			return Directive{}, p.errorAt(closing, "expected ')', found %s", closing.describe())
		}
	}

	directive.EndLine = p.toks[p.pos-1].line

	end := p.next()
	if end.kind != tokNewline && end.kind != tokEOF {
		return Directive{}, p.errorAt(end, "unexpected %s after %s directive", end.describe(), head.text)
	}
	return directive, nil
}

func (p *parser) parseTarget(directive *Directive, keyword string) error {
	tok := p.next()
	switch tok.kind {
	case tokString:
		directive.Target = tok.text
	case tokSymbol:
		directive.Target = tok.text
		directive.TargetSymbol = true
	default:
		return p.errorAt(tok, "%s expects a quoted name, found %s", keyword, tok.describe())
	}
	if directive.Target == "" {
		return p.errorAt(tok, "%s name must not be empty", keyword)
	}
	return nil
}

func (p *parser) parseParams(directive *Directive, keyword string) error {
	for p.peek().kind == tokComma {
		comma := p.next()
		if directive.Kind != DirectiveRule {
			return p.errorAt(comma, "%s takes a single argument", keyword)
		}

		param, err := p.parseParam()
		if err != nil {
			return err
		}
		directive.Params = append(directive.Params, param)
	}
	return nil
}

func (p *parser) parseParam() (Param, error) {
	tok := p.next()

	var name string
	switch tok.kind {
	case tokLabel:
		name = tok.text
	case tokSymbol, tokString:
		name = tok.text
		arrow := p.next()
		if arrow.kind != tokArrow {
			return Param{}, p.errorAt(arrow, "expected '=>' after parameter %s, found %s", tok.describe(), arrow.describe())
		}
	default:
		return Param{}, p.errorAt(tok, "expected parameter name, found %s", tok.describe())
	}
	if name == "" {
		return Param{}, p.errorAt(tok, "parameter name must not be empty")
	}

	value, err := p.parseValue()
	if err != nil {
		return Param{}, err
	}
	return Param{Name: name, Value: value}, nil
}

func (p *parser) parseValue() (any, error) {
	tok := p.next()
	switch tok.kind {
	case tokInt:
		n, err := strconv.Atoi(tok.text)
		if err != nil {
			return nil, p.errorAt(tok, "invalid integer %s", tok.text)
		}
		return n, nil
	case tokFloat:
		f, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, p.errorAt(tok, "invalid number %s", tok.text)
		}
		return f, nil
	case tokString:
		return tok.text, nil
	case tokSymbol:
		return Symbol(tok.text), nil
	case tokIdent:
		switch tok.text {
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "nil":
			return nil, nil
		}
	case tokLBracket:
		return p.parseList(tok)
	}
	return nil, p.errorAt(tok, "expected value, found %s", tok.describe())
}

func (p *parser) parseList(open token) (any, error) {
	list := []any{}
	for {
		if tok := p.peek(); tok.kind == tokRBracket {
			p.next()
			return list, nil
		} else if tok.kind == tokEOF {
			return nil, p.errorAt(open, "unclosed '['")
		}

		value, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list = append(list, value)

		switch tok := p.next(); tok.kind {
		case tokComma:
		case tokRBracket:
			return list, nil
		case tokEOF:
			return nil, p.errorAt(open, "unclosed '['")
		default:
			return nil, p.errorAt(tok, "expected ',' or ']' in list, found %s", tok.describe())
		}
	}
}
