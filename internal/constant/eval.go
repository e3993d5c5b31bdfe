package constant

import (
	"math"

	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/diag"
	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

// stringSymbol is the one reference type the evaluator has to recognize by
// name: a cast to java.lang.String is accepted as a no-op when the operand
// is already a string.
const stringSymbol = symbol.Class("java/lang/String")

// Env supplies the name-resolution capabilities the evaluator cannot itself
// provide — it has no scope or classpath knowledge, only the expression
// tree. The binder wires these callbacks to its environment once the
// relevant phases (hierarchy, members) have populated it.
type Env struct {
	Source string
	Bag    *diag.Bag

	// ResolveVar resolves a const-var reference: lexical-enclosing lookup,
	// then qualified name resolution, then single-member static imports,
	// then on-demand static imports.
	ResolveVar func(name ast.Name) (Value, bool)

	// ResolveType resolves a type tree to a bound Type.
	ResolveType func(te ast.TypeExpr) (types.Type, bool)

	// ResolveQualifiedField resolves "T.FIELD" (and "T.Inner.FIELD...")
	// given the flattened dotted path, returning the named field's already-
	// evaluated constant value.
	ResolveQualifiedField func(path ast.Name) (Value, bool)
}

func (e *Env) errorf(pos ast.Pos, kind diag.Kind, format string, args ...any) {
	if e == nil || e.Bag == nil {
		return
	}
	e.Bag.Errorf(e.Source, pos, kind, format, args...)
}

// Eval evaluates a scalar constant expression: a literal, a const-var or
// qualified-field reference, a class literal, a binary or unary operator
// application, a primitive/String cast, or a conditional expression. It
// does not handle array initializers or nested annotations — those are
// array- and annotation-argument concerns the annotation binder drives
// directly, since only annotation arguments ever need them.
func Eval(e ast.Expr, env *Env) (Value, bool) {
	switch e := e.(type) {
	case *ast.Literal:
		return evalLiteral(e), true

	case *ast.NameExpr:
		if env == nil || env.ResolveVar == nil {
			return Value{}, false
		}
		v, ok := env.ResolveVar(e.Name)
		if !ok {
			env.errorf(e.Position(), diag.CannotResolve, "cannot resolve constant %q", e.Name.String())
			return Value{}, false
		}
		return v, true

	case *ast.FieldAccessExpr:
		path, ok := flattenPath(e)
		if !ok || env == nil || env.ResolveQualifiedField == nil {
			return Value{}, false
		}
		v, ok := env.ResolveQualifiedField(path)
		if !ok {
			env.errorf(e.Position(), diag.CannotResolve, "cannot resolve constant %q", path.String())
			return Value{}, false
		}
		return v, true

	case *ast.ClassLiteralExpr:
		if env == nil || env.ResolveType == nil {
			return Value{}, false
		}
		t, ok := env.ResolveType(e.Type)
		if !ok {
			env.errorf(e.Position(), diag.CannotResolve, "cannot resolve class literal type")
			return Value{}, false
		}
		return NewClassLiteral(t), true

	case *ast.BinaryExpr:
		return evalBinary(e, env)

	case *ast.UnaryExpr:
		return evalUnary(e, env)

	case *ast.CastExpr:
		return evalCast(e, env)

	case *ast.ConditionalExpr:
		cond, ok := Eval(e.Cond, env)
		if !ok || cond.kind != KindBoolean {
			return Value{}, false
		}
		if cond.boolVal {
			return Eval(e.Then, env)
		}
		return Eval(e.Else, env)

	default:
		return Value{}, false
	}
}

// flattenPath turns a chain of FieldAccessExpr over a NameExpr base into a
// single dotted ast.Name, the shape ResolveQualifiedField expects.
func flattenPath(e *ast.FieldAccessExpr) (ast.Name, bool) {
	var tail []ast.Ident
	var cur ast.Expr = e
	for {
		switch n := cur.(type) {
		case *ast.FieldAccessExpr:
			tail = append([]ast.Ident{n.Name}, tail...)
			cur = n.Target
		case *ast.NameExpr:
			return ast.Name{Parts: append(append([]ast.Ident{}, n.Name.Parts...), tail...)}, true
		default:
			return ast.Name{}, false
		}
	}
}

func evalLiteral(lit *ast.Literal) Value {
	switch lit.Kind {
	case ast.LitBoolean:
		return NewBool(lit.Value.(bool))
	case ast.LitByte:
		return NewByte(int8(lit.Value.(int64)))
	case ast.LitShort:
		return NewShort(int16(lit.Value.(int64)))
	case ast.LitChar:
		return NewChar(uint16(lit.Value.(int64)))
	case ast.LitInt:
		return NewInt(int32(lit.Value.(int64)))
	case ast.LitLong:
		return NewLong(lit.Value.(int64))
	case ast.LitFloat:
		return NewFloat(float32(lit.Value.(float64)))
	case ast.LitDouble:
		return NewDouble(lit.Value.(float64))
	case ast.LitString:
		return NewString(lit.Value.(string))
	case ast.LitNull:
		return Null()
	default:
		return Value{}
	}
}

func evalUnary(e *ast.UnaryExpr, env *Env) (Value, bool) {
	v, ok := Eval(e.Operand, env)
	if !ok {
		return Value{}, false
	}
	switch e.Op {
	case ast.OpNot:
		if v.kind != KindBoolean {
			env.errorf(e.Position(), diag.OperandType, "operand of ! must be boolean, got %s", v.kind)
			return Value{}, false
		}
		return NewBool(!v.boolVal), true

	case ast.OpPlus:
		v = UnaryPromote(v)
		if !v.IsNumeric() {
			env.errorf(e.Position(), diag.OperandType, "operand of unary + must be numeric, got %s", v.kind)
			return Value{}, false
		}
		return v, true

	case ast.OpNeg:
		v = UnaryPromote(v)
		switch v.kind {
		case KindInt:
			return NewInt(-int32(v.intVal)), true
		case KindLong:
			return NewLong(-v.intVal), true
		case KindFloat:
			return NewFloat(float32(-v.floatVal)), true
		case KindDouble:
			return NewDouble(-v.floatVal), true
		default:
			env.errorf(e.Position(), diag.OperandType, "operand of unary - must be numeric, got %s", v.kind)
			return Value{}, false
		}

	case ast.OpCompl:
		v = UnaryPromote(v)
		switch v.kind {
		case KindInt:
			return NewInt(^int32(v.intVal)), true
		case KindLong:
			return NewLong(^v.intVal), true
		default:
			env.errorf(e.Position(), diag.OperandType, "operand of ~ must be integral, got %s", v.kind)
			return Value{}, false
		}
	}
	return Value{}, false
}

func evalBinary(e *ast.BinaryExpr, env *Env) (Value, bool) {
	left, ok := Eval(e.Left, env)
	if !ok {
		return Value{}, false
	}
	right, ok := Eval(e.Right, env)
	if !ok {
		return Value{}, false
	}

	switch e.Op {
	case ast.OpAdd:
		if left.kind == KindString || right.kind == KindString {
			return NewString(left.AsString() + right.AsString()), true
		}
	case ast.OpEq, ast.OpNe:
		if left.kind == KindString && right.kind == KindString {
			eq := left.strVal == right.strVal
			if e.Op == ast.OpNe {
				eq = !eq
			}
			return NewBool(eq), true
		}
		if left.kind == KindBoolean && right.kind == KindBoolean {
			eq := left.boolVal == right.boolVal
			if e.Op == ast.OpNe {
				eq = !eq
			}
			return NewBool(eq), true
		}
	}

	switch e.Op {
	case ast.OpLogAnd, ast.OpLogOr:
		if left.kind != KindBoolean || right.kind != KindBoolean {
			env.errorf(e.Position(), diag.OperandType, "operands of %s must be boolean", binOpName(e.Op))
			return Value{}, false
		}
		if e.Op == ast.OpLogAnd {
			return NewBool(left.boolVal && right.boolVal), true
		}
		return NewBool(left.boolVal || right.boolVal), true

	case ast.OpAnd, ast.OpXor, ast.OpOr:
		if left.kind == KindBoolean && right.kind == KindBoolean {
			switch e.Op {
			case ast.OpAnd:
				return NewBool(left.boolVal && right.boolVal), true
			case ast.OpXor:
				return NewBool(left.boolVal != right.boolVal), true
			default:
				return NewBool(left.boolVal || right.boolVal), true
			}
		}
		return evalIntegralOp(e, left, right, env)

	case ast.OpShl, ast.OpShr, ast.OpUshr:
		return evalShift(e, left, right, env)

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return evalRelational(e, left, right, env)

	case ast.OpEq, ast.OpNe:
		return evalRelational(e, left, right, env)

	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return evalArithmetic(e, left, right, env)
	}
	return Value{}, false
}

func evalArithmetic(e *ast.BinaryExpr, left, right Value, env *Env) (Value, bool) {
	if !left.IsNumeric() || !right.IsNumeric() {
		env.errorf(e.Position(), diag.OperandType, "operands of %s must be numeric", binOpName(e.Op))
		return Value{}, false
	}
	left, right = BinaryPromote(left, right)

	switch left.kind {
	case KindDouble:
		return arithFloat(e.Op, left.floatVal, right.floatVal, NewDouble)
	case KindFloat:
		a, b := float32(left.floatVal), float32(right.floatVal)
		v, ok := arithFloat(e.Op, float64(a), float64(b), func(f float64) Value { return NewFloat(float32(f)) })
		return v, ok
	case KindLong:
		return arithIntegral(e.Op, left.intVal, right.intVal, NewLong)
	default: // KindInt
		v, ok := arithIntegral(e.Op, left.intVal, right.intVal, func(i int64) Value { return NewInt(int32(i)) })
		return v, ok
	}
}

func arithFloat(op ast.BinOp, a, b float64, wrap func(float64) Value) (Value, bool) {
	switch op {
	case ast.OpAdd:
		return wrap(a + b), true
	case ast.OpSub:
		return wrap(a - b), true
	case ast.OpMul:
		return wrap(a * b), true
	case ast.OpDiv:
		return wrap(a / b), true
	case ast.OpMod:
		return wrap(math.Mod(a, b)), true
	}
	return Value{}, false
}

// arithIntegral implements the Open-Question-preserving div/mod-by-zero
// rule: an integral divide or modulo by zero makes the whole expression
// non-constant rather than raising a diagnostic.
func arithIntegral(op ast.BinOp, a, b int64, wrap func(int64) Value) (Value, bool) {
	switch op {
	case ast.OpAdd:
		return wrap(a + b), true
	case ast.OpSub:
		return wrap(a - b), true
	case ast.OpMul:
		return wrap(a * b), true
	case ast.OpDiv:
		if b == 0 {
			return Value{}, false
		}
		return wrap(a / b), true
	case ast.OpMod:
		if b == 0 {
			return Value{}, false
		}
		return wrap(a % b), true
	}
	return Value{}, false
}

func evalIntegralOp(e *ast.BinaryExpr, left, right Value, env *Env) (Value, bool) {
	if left.IsFloatingPoint() || right.IsFloatingPoint() || !left.IsNumeric() || !right.IsNumeric() {
		env.errorf(e.Position(), diag.OperandType, "operands of %s must be integral", binOpName(e.Op))
		return Value{}, false
	}
	left, right = BinaryPromote(left, right)
	var result int64
	switch e.Op {
	case ast.OpAnd:
		result = left.intVal & right.intVal
	case ast.OpXor:
		result = left.intVal ^ right.intVal
	case ast.OpOr:
		result = left.intVal | right.intVal
	}
	if left.kind == KindLong {
		return NewLong(result), true
	}
	return NewInt(int32(result)), true
}

// evalShift reproduces a real asymmetry in how shift operands promote: the
// left operand's unary-promoted kind (int or long) decides both the result
// kind and the RHS shift-distance mask (5 bits for int, 6 for long); the
// right operand is only ever unary-promoted, never binary-promoted against
// the left operand's kind.
func evalShift(e *ast.BinaryExpr, left, right Value, env *Env) (Value, bool) {
	left = UnaryPromote(left)
	right = UnaryPromote(right)
	if !left.IsIntegral() || !right.IsIntegral() || left.IsFloatingPoint() || right.IsFloatingPoint() {
		env.errorf(e.Position(), diag.OperandType, "operands of %s must be integral", binOpName(e.Op))
		return Value{}, false
	}

	isLong := left.kind == KindLong
	mask := int64(31)
	if isLong {
		mask = 63
	}
	dist := uint(right.intVal & mask)

	switch e.Op {
	case ast.OpShl:
		if isLong {
			return NewLong(left.intVal << dist), true
		}
		return NewInt(int32(left.intVal) << dist), true
	case ast.OpShr:
		if isLong {
			return NewLong(left.intVal >> dist), true
		}
		return NewInt(int32(left.intVal) >> dist), true
	case ast.OpUshr:
		if isLong {
			return NewLong(int64(uint64(left.intVal) >> dist)), true
		}
		return NewInt(int32(uint32(left.intVal) >> dist)), true
	}
	return Value{}, false
}

func evalRelational(e *ast.BinaryExpr, left, right Value, env *Env) (Value, bool) {
	if !left.IsNumeric() || !right.IsNumeric() {
		env.errorf(e.Position(), diag.OperandType, "operands of %s must be numeric", binOpName(e.Op))
		return Value{}, false
	}
	left, right = BinaryPromote(left, right)

	var cmp int
	if left.IsFloatingPoint() {
		switch {
		case left.floatVal < right.floatVal:
			cmp = -1
		case left.floatVal > right.floatVal:
			cmp = 1
		default:
			cmp = 0
		}
	} else {
		switch {
		case left.intVal < right.intVal:
			cmp = -1
		case left.intVal > right.intVal:
			cmp = 1
		default:
			cmp = 0
		}
	}

	switch e.Op {
	case ast.OpLt:
		return NewBool(cmp < 0), true
	case ast.OpLe:
		return NewBool(cmp <= 0), true
	case ast.OpGt:
		return NewBool(cmp > 0), true
	case ast.OpGe:
		return NewBool(cmp >= 0), true
	case ast.OpEq:
		return NewBool(cmp == 0), true
	case ast.OpNe:
		return NewBool(cmp != 0), true
	}
	return Value{}, false
}

func evalCast(e *ast.CastExpr, env *Env) (Value, bool) {
	operand, ok := Eval(e.Operand, env)
	if !ok || env == nil || env.ResolveType == nil {
		return Value{}, false
	}
	target, ok := env.ResolveType(e.Type)
	if !ok {
		return Value{}, false
	}

	if target.Tag() == types.TagPrim {
		v, err := Coerce(operand, target.Prim())
		if err != nil {
			return Value{}, false
		}
		return v, true
	}
	if target.Tag() == types.TagClass && target.ClassSymbol() == stringSymbol {
		return CoerceToString(operand)
	}
	// Every other reference cast yields a non-constant result.
	return Value{}, false
}

func binOpName(op ast.BinOp) string {
	names := map[ast.BinOp]string{
		ast.OpAdd: "+", ast.OpSub: "-", ast.OpMul: "*", ast.OpDiv: "/", ast.OpMod: "%",
		ast.OpShl: "<<", ast.OpShr: ">>", ast.OpUshr: ">>>",
		ast.OpLt: "<", ast.OpLe: "<=", ast.OpGt: ">", ast.OpGe: ">=",
		ast.OpEq: "==", ast.OpNe: "!=",
		ast.OpAnd: "&", ast.OpXor: "^", ast.OpOr: "|",
		ast.OpLogAnd: "&&", ast.OpLogOr: "||",
	}
	if n, ok := names[op]; ok {
		return n
	}
	return "?"
}

// EvalArrayElements evaluates an annotation array initializer's elements and
// coerces each to elemTarget. It is only ever invoked by the annotation
// binder — field initializers never carry array syntax in this data model:
// constant fields are always primitive or string.
func EvalArrayElements(arr *ast.ArrayInitExpr, elemTarget types.PrimKind, env *Env) (Value, bool) {
	elems := make([]Value, 0, len(arr.Elements))
	for _, elemExpr := range arr.Elements {
		v, ok := Eval(elemExpr, env)
		if !ok {
			return Value{}, false
		}
		coerced, err := Coerce(v, elemTarget)
		if err != nil {
			env.errorf(elemExpr.Position(), diag.OperandType, "%v", err)
			return Value{}, false
		}
		elems = append(elems, coerced)
	}
	return NewArray(elems), true
}
