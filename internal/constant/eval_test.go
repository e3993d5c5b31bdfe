package constant

import (
	"testing"

	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

func intLit(v int64) *ast.Literal      { return &ast.Literal{Kind: ast.LitInt, Value: v} }
func longLit(v int64) *ast.Literal     { return &ast.Literal{Kind: ast.LitLong, Value: v} }
func strLit(s string) *ast.Literal     { return &ast.Literal{Kind: ast.LitString, Value: s} }
func boolLit(b bool) *ast.Literal      { return &ast.Literal{Kind: ast.LitBoolean, Value: b} }
func doubleLit(f float64) *ast.Literal { return &ast.Literal{Kind: ast.LitDouble, Value: f} }

func bin(op ast.BinOp, l, r ast.Expr) *ast.BinaryExpr {
	return &ast.BinaryExpr{Op: op, Left: l, Right: r}
}

func TestEvalLiteralRoundTrip(t *testing.T) {
	v, ok := Eval(intLit(42), nil)
	if !ok || v.Int64() != 42 || v.Kind() != KindInt {
		t.Fatalf("Eval(42) = %v, %v", v, ok)
	}
}

func TestEvalArithmetic(t *testing.T) {
	v, ok := Eval(bin(ast.OpAdd, intLit(2), intLit(3)), nil)
	if !ok || v.Int64() != 5 {
		t.Fatalf("2 + 3 = %v, %v", v, ok)
	}
}

func TestEvalIntDivisionByZeroIsNonConstant(t *testing.T) {
	_, ok := Eval(bin(ast.OpDiv, intLit(1), intLit(0)), nil)
	if ok {
		t.Fatal("int division by zero should be non-constant")
	}
}

func TestEvalFloatDivisionByZeroIsInfinity(t *testing.T) {
	v, ok := Eval(bin(ast.OpDiv, doubleLit(1), doubleLit(0)), nil)
	if !ok {
		t.Fatal("float division by zero should still be constant (yields Infinity)")
	}
	if v.Float64() <= 1e300 {
		t.Errorf("expected +Inf, got %v", v.Float64())
	}
}

func TestEvalStringConcatenation(t *testing.T) {
	v, ok := Eval(bin(ast.OpAdd, strLit("n="), intLit(7)), nil)
	if !ok || v.Kind() != KindString || v.Str() != "n=7" {
		t.Fatalf("\"n=\" + 7 = %v, %v", v, ok)
	}
}

func TestEvalBinaryPromotion(t *testing.T) {
	v, ok := Eval(bin(ast.OpAdd, intLit(1), doubleLit(2.5)), nil)
	if !ok || v.Kind() != KindDouble || v.Float64() != 3.5 {
		t.Fatalf("1 + 2.5 = %v, %v", v, ok)
	}
}

func TestEvalShiftRHSAlwaysUnaryPromoted(t *testing.T) {
	// 1 << 33: in a 32-bit int shift, the distance masks to 33 & 31 == 1.
	v, ok := Eval(bin(ast.OpShl, intLit(1), longLit(33)), nil)
	if !ok || v.Kind() != KindInt || v.Int64() != 2 {
		t.Fatalf("1 << 33 (int) = %v, %v, want int 2", v, ok)
	}
}

func TestEvalShiftResultKindFollowsLeftOperand(t *testing.T) {
	v, ok := Eval(bin(ast.OpShl, longLit(1), intLit(2)), nil)
	if !ok || v.Kind() != KindLong || v.Int64() != 4 {
		t.Fatalf("1L << 2 = %v, %v, want long 4", v, ok)
	}
}

func TestEvalLogicalAndOr(t *testing.T) {
	v, ok := Eval(bin(ast.OpLogAnd, boolLit(true), boolLit(false)), nil)
	if !ok || v.Bool() != false {
		t.Fatalf("true && false = %v, %v", v, ok)
	}
}

func TestEvalConditionalShortCircuits(t *testing.T) {
	cond := &ast.ConditionalExpr{Cond: boolLit(true), Then: intLit(1), Else: intLit(2)}
	v, ok := Eval(cond, nil)
	if !ok || v.Int64() != 1 {
		t.Fatalf("true ? 1 : 2 = %v, %v", v, ok)
	}
}

func TestEvalUnaryPromotesByteToInt(t *testing.T) {
	lit := &ast.Literal{Kind: ast.LitByte, Value: int64(5)}
	v, ok := Eval(&ast.UnaryExpr{Op: ast.OpNeg, Operand: lit}, nil)
	if !ok || v.Kind() != KindInt || v.Int64() != -5 {
		t.Fatalf("-byte(5) = %v, %v, want int -5", v, ok)
	}
}

func TestEvalCastNarrows(t *testing.T) {
	env := &Env{
		ResolveType: func(te ast.TypeExpr) (types.Type, bool) {
			return types.NewPrim(types.PrimByte), true
		},
	}
	cast := &ast.CastExpr{Type: &ast.PrimTypeExpr{Keyword: "byte"}, Operand: intLit(300)}
	v, ok := Eval(cast, env)
	if !ok || v.Kind() != KindByte || v.Int64() != 44 {
		t.Fatalf("(byte) 300 = %v, %v, want byte 44", v, ok)
	}
}

func TestEvalCastToStringNoOp(t *testing.T) {
	env := &Env{
		ResolveType: func(te ast.TypeExpr) (types.Type, bool) {
			return types.NewSimpleClass(symbol.Class("java/lang/String")), true
		},
	}
	cast := &ast.CastExpr{Type: &ast.NamedTypeExpr{}, Operand: strLit("hi")}
	v, ok := Eval(cast, env)
	if !ok || v.Str() != "hi" {
		t.Fatalf("(String) \"hi\" = %v, %v", v, ok)
	}
}

func TestEvalCastToOtherReferenceTypeIsNonConstant(t *testing.T) {
	env := &Env{
		ResolveType: func(te ast.TypeExpr) (types.Type, bool) {
			return types.NewSimpleClass(symbol.Class("java/lang/Object")), true
		},
	}
	cast := &ast.CastExpr{Type: &ast.NamedTypeExpr{}, Operand: strLit("hi")}
	if _, ok := Eval(cast, env); ok {
		t.Fatal("cast to an unrelated reference type should be non-constant")
	}
}

func TestEvalNameExprResolvesThroughEnv(t *testing.T) {
	env := &Env{
		ResolveVar: func(name ast.Name) (Value, bool) {
			if name.String() == "X" {
				return NewInt(9), true
			}
			return Value{}, false
		},
	}
	v, ok := Eval(&ast.NameExpr{Name: ast.Name{Parts: []ast.Ident{{Name: "X"}}}}, env)
	if !ok || v.Int64() != 9 {
		t.Fatalf("Eval(X) = %v, %v", v, ok)
	}
}

func TestEvalQualifiedFieldFlattensPath(t *testing.T) {
	var seen string
	env := &Env{
		ResolveQualifiedField: func(path ast.Name) (Value, bool) {
			seen = path.String()
			return NewInt(1), true
		},
	}
	target := &ast.NameExpr{Name: ast.Name{Parts: []ast.Ident{{Name: "T"}}}}
	expr := &ast.FieldAccessExpr{Target: target, Name: ast.Ident{Name: "FIELD"}}
	if _, ok := Eval(expr, env); !ok {
		t.Fatal("expected qualified field to resolve")
	}
	if seen != "T.FIELD" {
		t.Errorf("flattened path = %q, want \"T.FIELD\"", seen)
	}
}

func TestEvalArrayElementsCoercesEachElement(t *testing.T) {
	arr := &ast.ArrayInitExpr{Elements: []ast.Expr{intLit(1), intLit(2), intLit(3)}}
	v, ok := EvalArrayElements(arr, types.PrimByte, nil)
	if !ok || v.Kind() != KindArray || len(v.Elements()) != 3 {
		t.Fatalf("EvalArrayElements = %v, %v", v, ok)
	}
	for _, e := range v.Elements() {
		if e.Kind() != KindByte {
			t.Errorf("element kind = %v, want byte", e.Kind())
		}
	}
}
