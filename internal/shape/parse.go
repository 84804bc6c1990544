package shape

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/roach88/exhaustive/internal/value"
)

// ParseError reports a malformed shape expression.
type ParseError struct {
	Offset  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("shape: offset %d: %s", e.Offset, e.Message)
}

// Parse reads a shape expression.
func Parse(src string) (*Shape, error) {
	p := &parser{src: src}
	s, err := p.shape()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q after shape", p.rest())
	}
	return s, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Shape {
	s, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return s
}

type parser struct {
	src string
	pos int
}

func (p *parser) eof() bool { return p.pos >= len(p.src) }

func (p *parser) rest() string {
	r := p.src[p.pos:]
	if len(r) > 16 {
		r = r[:16] + "..."
	}
	return r
}

func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{Offset: p.pos, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) skipSpace() {
	for !p.eof() && strings.ContainsRune(" \t\r\n", rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) accept(c byte) bool {
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) expect(c byte) error {
	if !p.accept(c) {
		if p.eof() {
			return p.errorf("expected %q, got end of input", c)
		}
		return p.errorf("expected %q, got %q", c, p.src[p.pos])
	}
	return nil
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (p.pos > start && c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) integer() (int64, error) {
	p.skipSpace()
	start := p.pos
	if !p.eof() && p.src[p.pos] == '-' {
		p.pos++
	}
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.ParseInt(p.src[start:p.pos], 10, 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("expected integer")
	}
	return n, nil
}

func (p *parser) quoted() (string, error) {
	p.skipSpace()
	start := p.pos
	if p.eof() || p.src[p.pos] != '"' {
		return "", p.errorf("expected string literal")
	}
	p.pos++
	for !p.eof() {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case '"':
			p.pos++
			s, err := strconv.Unquote(p.src[start:p.pos])
			if err != nil {
				return "", &ParseError{Offset: start, Message: fmt.Sprintf("bad string literal: %v", err)}
			}
			return s, nil
		}
		p.pos++
	}
	return "", &ParseError{Offset: start, Message: "unterminated string literal"}
}

func (p *parser) shape() (*Shape, error) {
	switch c := p.peek(); {
	case c == 0:
		return nil, p.errorf("expected shape, got end of input")
	case c == '=':
		p.pos++
		v, err := p.scalar()
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: KindConst, Const: v}, nil
	case c == '?':
		p.pos++
		elem, err := p.shape()
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: KindOption, Elem: elem}, nil
	case c == '[':
		return p.listOrArray()
	case c == '(':
		p.pos++
		elems, err := p.shapeList(')')
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: KindTuple, Elems: elems}, nil
	case c == '{':
		return p.record()
	}

	start := p.pos
	name := p.ident()
	switch name {
	case "bool":
		return &Shape{Kind: KindBool}, nil
	case "unit":
		return &Shape{Kind: KindUnit}, nil
	case "int":
		return p.intRange()
	case "enum":
		return p.enum()
	case "string":
		return p.alphabet()
	case "set":
		elem, err := p.bracketed()
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: KindSet, Elem: elem}, nil
	case "map":
		key, err := p.bracketed()
		if err != nil {
			return nil, err
		}
		val, err := p.shape()
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: KindMap, Key: key, Val: val}, nil
	case "either":
		if err := p.expect('['); err != nil {
			return nil, err
		}
		elems, err := p.shapeList(']')
		if err != nil {
			return nil, err
		}
		if len(elems) != 2 {
			return nil, &ParseError{Offset: start, Message: fmt.Sprintf("either takes 2 shapes, got %d", len(elems))}
		}
		return &Shape{Kind: KindEither, Left: elems[0], Right: elems[1]}, nil
	case "oneof":
		if err := p.expect('['); err != nil {
			return nil, err
		}
		elems, err := p.shapeList(']')
		if err != nil {
			return nil, err
		}
		if len(elems) == 0 {
			return nil, &ParseError{Offset: start, Message: "oneof needs at least one shape"}
		}
		return &Shape{Kind: KindUnion, Elems: elems}, nil
	case "":
		return nil, p.errorf("unexpected %q", p.rest())
	}
	return nil, &ParseError{Offset: start, Message: fmt.Sprintf("unknown shape %q", name)}
}

func (p *parser) bracketed() (*Shape, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	s, err := p.shape()
	if err != nil {
		return nil, err
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *parser) listOrArray() (*Shape, error) {
	p.pos++ // '['
	if p.accept(']') {
		elem, err := p.shape()
		if err != nil {
			return nil, err
		}
		return &Shape{Kind: KindList, Elem: elem}, nil
	}
	start := p.pos
	n, err := p.integer()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &ParseError{Offset: start, Message: fmt.Sprintf("negative array length %d", n)}
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	elem, err := p.shape()
	if err != nil {
		return nil, err
	}
	return &Shape{Kind: KindArray, Len: int(n), Elem: elem}, nil
}

// shapeList parses comma-separated shapes up to and including the closer.
func (p *parser) shapeList(closer byte) ([]*Shape, error) {
	var out []*Shape
	if p.accept(closer) {
		return out, nil
	}
	for {
		s, err := p.shape()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
		if p.accept(closer) {
			return out, nil
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
	}
}

func (p *parser) record() (*Shape, error) {
	p.pos++ // '{'
	s := &Shape{Kind: KindRecord}
	seen := map[string]bool{}
	if p.accept('}') {
		return s, nil
	}
	for {
		start := p.pos
		var name string
		if p.peek() == '"' {
			q, err := p.quoted()
			if err != nil {
				return nil, err
			}
			name = q
		} else {
			name = p.ident()
			if name == "" {
				return nil, p.errorf("expected field name")
			}
		}
		if seen[name] {
			return nil, &ParseError{Offset: start, Message: fmt.Sprintf("duplicate field %q", name)}
		}
		seen[name] = true
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		fs, err := p.shape()
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, Field{Name: name, Shape: fs})
		if p.accept('}') {
			return s, nil
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
	}
}

func (p *parser) intRange() (*Shape, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	lo, err := p.integer()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if !strings.HasPrefix(p.src[p.pos:], "..") {
		return nil, p.errorf("expected \"..\"")
	}
	p.pos += 2
	hi, err := p.integer()
	if err != nil {
		return nil, err
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	if hi < lo {
		return nil, p.errorf("empty int range [%d..%d]", lo, hi)
	}
	return &Shape{Kind: KindInt, Lo: lo, Hi: hi}, nil
}

func (p *parser) enum() (*Shape, error) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	s := &Shape{Kind: KindEnum}
	for {
		var m value.Value
		switch c := p.peek(); {
		case c == '"':
			q, err := p.quoted()
			if err != nil {
				return nil, err
			}
			m = value.String(q)
		case c == '-' || (c >= '0' && c <= '9'):
			n, err := p.integer()
			if err != nil {
				return nil, err
			}
			m = value.Int(n)
		default:
			name := p.ident()
			if name == "" {
				return nil, p.errorf("expected enum member")
			}
			m = keywordValue(name)
		}
		s.Members = append(s.Members, m)
		if p.accept('}') {
			return s, nil
		}
		if err := p.expect(','); err != nil {
			return nil, err
		}
	}
}

func (p *parser) alphabet() (*Shape, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return nil, p.errorf("unterminated alphabet")
	}
	letters := p.src[p.pos : p.pos+end]
	if letters == "" || !utf8.ValidString(letters) {
		return nil, p.errorf("alphabet must be non-empty UTF-8")
	}
	p.pos += end + 1
	return &Shape{Kind: KindString, Alphabet: letters}, nil
}

func (p *parser) scalar() (value.Value, error) {
	switch c := p.peek(); {
	case c == '"':
		q, err := p.quoted()
		if err != nil {
			return nil, err
		}
		return value.String(q), nil
	case c == '-' || (c >= '0' && c <= '9'):
		n, err := p.integer()
		if err != nil {
			return nil, err
		}
		return value.Int(n), nil
	}
	name := p.ident()
	switch name {
	case "true", "false", "null":
		return keywordValue(name), nil
	}
	return nil, p.errorf("expected constant")
}

func keywordValue(name string) value.Value {
	switch name {
	case "true":
		return value.Bool(true)
	case "false":
		return value.Bool(false)
	case "null":
		return value.Null{}
	}
	return value.String(name)
}
