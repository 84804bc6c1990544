package shape

import (
	"fmt"
	"math"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/exhaustive/internal/value"
)

// SchemaError reports a CUE value that cannot be turned into a shape.
type SchemaError struct {
	Path    string
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// LoadCUE compiles a CUE file and converts the value at path (for example
// "#Point" or "shapes.cart") into a Shape. An empty path converts the whole
// file.
func LoadCUE(filename, path string) (*Shape, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	ctx := cuecontext.New()
	root := ctx.CompileBytes(data, cue.Filename(filename))
	if err := root.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	v := root
	if path != "" {
		v = root.LookupPath(cue.ParsePath(path))
		if !v.Exists() {
			return nil, &SchemaError{Path: path, Message: "not found"}
		}
	}
	return FromCUE(v)
}

// FromCUE converts a CUE value into a Shape.
//
// Supported constructs:
//   - bool, null, and concrete bools, ints and strings (constants)
//   - int (or number) constrained by >=, >, <=, < bounds on both sides
//   - disjunctions: of concrete scalars become enums, otherwise oneof
//   - [...T] open lists, [A, B] closed lists (tuples)
//   - structs, with fields in declaration order
func FromCUE(v cue.Value) (*Shape, error) {
	v = cue.Dereference(v)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	if op, args := v.Expr(); op == cue.OrOp && len(args) > 1 {
		return disjunction(v, args)
	}

	if v.IsConcrete() {
		switch v.Kind() {
		case cue.NullKind, cue.BoolKind, cue.IntKind, cue.StringKind:
			c, err := scalar(v)
			if err != nil {
				return nil, err
			}
			return &Shape{Kind: KindConst, Const: c}, nil
		}
	}

	switch k := v.IncompleteKind(); k {
	case cue.BoolKind:
		return &Shape{Kind: KindBool}, nil
	case cue.NullKind:
		return &Shape{Kind: KindConst, Const: value.Null{}}, nil
	case cue.IntKind, cue.NumberKind:
		return intShape(v)
	case cue.ListKind:
		return listShape(v)
	case cue.StructKind:
		return structShape(v)
	case cue.StringKind:
		return nil, schemaErr(v, "strings must be constants or a disjunction of literals")
	default:
		return nil, schemaErr(v, fmt.Sprintf("unsupported kind %v", k))
	}
}

func disjunction(v cue.Value, args []cue.Value) (*Shape, error) {
	members := make([]value.Value, 0, len(args))
	for _, a := range args {
		if !a.IsConcrete() {
			members = nil
			break
		}
		m, err := scalar(a)
		if err != nil {
			members = nil
			break
		}
		members = append(members, m)
	}
	if members != nil {
		return &Shape{Kind: KindEnum, Members: members}, nil
	}

	alts := make([]*Shape, 0, len(args))
	for i, a := range args {
		s, err := FromCUE(a)
		if err != nil {
			return nil, fmt.Errorf("%s alternative %d: %w", v.Path(), i, err)
		}
		alts = append(alts, s)
	}
	return &Shape{Kind: KindUnion, Elems: alts}, nil
}

func scalar(v cue.Value) (value.Value, error) {
	switch v.Kind() {
	case cue.NullKind:
		return value.Null{}, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.Bool(b), nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.Int(n), nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return value.String(s), nil
	}
	return nil, schemaErr(v, fmt.Sprintf("%v is not a scalar", v.Kind()))
}

func intShape(v cue.Value) (*Shape, error) {
	lo, hi := int64(math.MinInt64), int64(math.MaxInt64)
	hasLo, hasHi := false, false

	var walk func(cue.Value) error
	walk = func(x cue.Value) error {
		op, args := x.Expr()
		if op == cue.AndOp {
			for _, a := range args {
				if err := walk(a); err != nil {
					return err
				}
			}
			return nil
		}
		if len(args) == 0 {
			return nil
		}
		var n int64
		switch op {
		case cue.GreaterThanEqualOp, cue.GreaterThanOp, cue.LessThanEqualOp, cue.LessThanOp:
			b, err := args[len(args)-1].Int64()
			if err != nil {
				return schemaErr(x, "bounds must be integers")
			}
			n = b
		default:
			return nil
		}
		switch op {
		case cue.GreaterThanEqualOp:
			lo, hasLo = max(lo, n), true
		case cue.GreaterThanOp:
			lo, hasLo = max(lo, n+1), true
		case cue.LessThanEqualOp:
			hi, hasHi = min(hi, n), true
		case cue.LessThanOp:
			hi, hasHi = min(hi, n-1), true
		}
		return nil
	}
	if err := walk(v); err != nil {
		return nil, err
	}

	if !hasLo || !hasHi {
		return nil, schemaErr(v, "ints need both a lower and an upper bound")
	}
	if hi < lo {
		return nil, schemaErr(v, fmt.Sprintf("empty int range [%d..%d]", lo, hi))
	}
	return &Shape{Kind: KindInt, Lo: lo, Hi: hi}, nil
}

func listShape(v cue.Value) (*Shape, error) {
	if n, err := v.Len().Int64(); err == nil {
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		elems := make([]*Shape, 0, n)
		for iter.Next() {
			s, err := FromCUE(iter.Value())
			if err != nil {
				return nil, err
			}
			elems = append(elems, s)
		}
		return &Shape{Kind: KindTuple, Elems: elems}, nil
	}

	// Open list: only a pure [...T] is supported.
	if iter, err := v.List(); err == nil && iter.Next() {
		return nil, schemaErr(v, "open lists with fixed prefix elements are not supported")
	}
	elem := v.LookupPath(cue.MakePath(cue.AnyIndex))
	if !elem.Exists() {
		return nil, schemaErr(v, "open list without element type")
	}
	s, err := FromCUE(elem)
	if err != nil {
		return nil, err
	}
	return &Shape{Kind: KindList, Elem: s}, nil
}

func structShape(v cue.Value) (*Shape, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}
	s := &Shape{Kind: KindRecord}
	for iter.Next() {
		fs, err := FromCUE(iter.Value())
		if err != nil {
			return nil, err
		}
		s.Fields = append(s.Fields, Field{Name: iter.Label(), Shape: fs})
	}
	return s, nil
}

func schemaErr(v cue.Value, msg string) error {
	return &SchemaError{Path: v.Path().String(), Message: msg, Pos: v.Pos()}
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &SchemaError{Path: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
