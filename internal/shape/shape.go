package shape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/exhaustive/internal/value"
)

// Kind identifies the variant of a Shape.
type Kind int

const (
	KindBool Kind = iota + 1
	KindUnit
	KindConst
	KindInt
	KindEnum
	KindString
	KindList
	KindArray
	KindOption
	KindSet
	KindMap
	KindTuple
	KindRecord
	KindEither
	KindUnion
)

// Shape is a node of the shape tree. Which fields are meaningful depends on
// Kind.
type Shape struct {
	Kind Kind

	// Const is the value of a KindConst shape.
	Const value.Value

	// Lo and Hi bound a KindInt shape, inclusive.
	Lo, Hi int64

	// Members lists the values of a KindEnum shape.
	Members []value.Value

	// Alphabet holds the letters of a KindString shape.
	Alphabet string

	// Len is the length of a KindArray shape.
	Len int

	// Elem is the element of List, Array, Option and Set shapes.
	Elem *Shape

	// Key and Val describe a KindMap shape.
	Key, Val *Shape

	// Left and Right describe a KindEither shape.
	Left, Right *Shape

	// Elems lists tuple elements and union alternatives.
	Elems []*Shape

	// Fields lists record fields in generation order.
	Fields []Field
}

// Field is a named record member.
type Field struct {
	Name  string
	Shape *Shape
}

// String renders s in the text syntax accepted by Parse.
func (s *Shape) String() string {
	var b strings.Builder
	s.write(&b)
	return b.String()
}

func (s *Shape) write(b *strings.Builder) {
	switch s.Kind {
	case KindBool:
		b.WriteString("bool")
	case KindUnit:
		b.WriteString("unit")
	case KindConst:
		b.WriteByte('=')
		b.WriteString(value.Render(s.Const))
	case KindInt:
		fmt.Fprintf(b, "int[%d..%d]", s.Lo, s.Hi)
	case KindEnum:
		b.WriteString("enum{")
		for i, m := range s.Members {
			if i > 0 {
				b.WriteString(", ")
			}
			writeMember(b, m)
		}
		b.WriteByte('}')
	case KindString:
		b.WriteString("string[")
		b.WriteString(s.Alphabet)
		b.WriteByte(']')
	case KindList:
		b.WriteString("[]")
		s.Elem.write(b)
	case KindArray:
		fmt.Fprintf(b, "[%d]", s.Len)
		s.Elem.write(b)
	case KindOption:
		b.WriteByte('?')
		s.Elem.write(b)
	case KindSet:
		b.WriteString("set[")
		s.Elem.write(b)
		b.WriteByte(']')
	case KindMap:
		b.WriteString("map[")
		s.Key.write(b)
		b.WriteByte(']')
		s.Val.write(b)
	case KindTuple:
		b.WriteByte('(')
		writeList(b, s.Elems)
		b.WriteByte(')')
	case KindRecord:
		b.WriteByte('{')
		for i, f := range s.Fields {
			if i > 0 {
				b.WriteString(", ")
			}
			if isIdent(f.Name) {
				b.WriteString(f.Name)
			} else {
				b.WriteString(strconv.Quote(f.Name))
			}
			b.WriteString(": ")
			f.Shape.write(b)
		}
		b.WriteByte('}')
	case KindEither:
		b.WriteString("either[")
		writeList(b, []*Shape{s.Left, s.Right})
		b.WriteByte(']')
	case KindUnion:
		b.WriteString("oneof[")
		writeList(b, s.Elems)
		b.WriteByte(']')
	default:
		fmt.Fprintf(b, "<kind %d>", s.Kind)
	}
}

func writeList(b *strings.Builder, shapes []*Shape) {
	for i, e := range shapes {
		if i > 0 {
			b.WriteString(", ")
		}
		e.write(b)
	}
}

func writeMember(b *strings.Builder, v value.Value) {
	if s, ok := v.(value.String); ok && isIdent(string(s)) && !isKeyword(string(s)) {
		b.WriteString(string(s))
		return
	}
	b.WriteString(value.Render(v))
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (i > 0 && c >= '0' && c <= '9') {
			continue
		}
		return false
	}
	return true
}

func isKeyword(s string) bool {
	switch s {
	case "true", "false", "null":
		return true
	}
	return false
}
