package binder

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/constant"
	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

const stringClass = symbol.Class("java/lang/String")

// BindConstants evaluates the initializer of every static final
// primitive/String field across all source classes, wiring
// internal/constant's Env callbacks to this binder's scope and environment.
// A class's constants are bound at most once; a qualified or simple-name
// reference into another still-unbound source class triggers that class's
// constant binding on demand, memoized the same way the hierarchy phase
// memoizes itself.
func (bd *Binder) BindConstants() {
	for _, b := range bd.AllSourceClasses() {
		bd.bindClassConstants(b)
	}
}

func (bd *Binder) bindClassConstants(b *BoundClass) {
	if b.decl == nil || b.constantsDone {
		return
	}
	b.constantsDone = true
	ctx := &typeBindCtx{class: b}
	env := bd.constantEnv(b, ctx)
	for i, fd := range b.decl.Fields {
		if fd.Initializer == nil || i >= len(b.Fields) {
			continue
		}
		bf := b.Fields[i]
		if !isConstantCandidate(bf) {
			continue
		}
		v, ok := constant.Eval(fd.Initializer, env)
		if !ok {
			continue
		}
		if bf.Type.Tag() == types.TagPrim {
			if c, err := constant.Coerce(v, bf.Type.Prim()); err == nil {
				v = c
			}
		} else if isStringType(bf.Type) {
			if c, ok := constant.CoerceToString(v); ok {
				v = c
			}
		}
		bf.Constant = &v
	}
	b.Stage = StageComplete
}

// isConstantCandidate reports whether a field is eligible to carry a
// compile-time constant value at all: static, final, and of primitive or
// String type (JLS "constant variable").
func isConstantCandidate(bf *BoundField) bool {
	if !bf.Access.IsStatic() || bf.Access&ast.ModFinal == 0 {
		return false
	}
	return bf.Type.Tag() == types.TagPrim || isStringType(bf.Type)
}

func isStringType(t types.Type) bool {
	return t.Tag() == types.TagClass && t.ClassSymbol() == stringClass
}

// constantEnv builds the constant.Env a field initializer or annotation
// argument in class b evaluates against.
func (bd *Binder) constantEnv(b *BoundClass, ctx *typeBindCtx) *constant.Env {
	return &constant.Env{
		Source: sourceOf(b),
		Bag:    bd.Bag,
		ResolveVar: func(name ast.Name) (constant.Value, bool) {
			return bd.resolveConstVar(b, name)
		},
		ResolveType: func(te ast.TypeExpr) (types.Type, bool) {
			return bd.resolveType(ctx, te)
		},
		ResolveQualifiedField: func(path ast.Name) (constant.Value, bool) {
			return bd.resolveQualifiedConst(b, path)
		},
	}
}

func sourceOf(b *BoundClass) string {
	if b.unit != nil && b.unit.Unit != nil {
		return b.unit.Unit.Source
	}
	return string(b.Symbol)
}

// resolveConstVar resolves a bare (possibly still-dotted, if the parser
// produced it that way) name reference used as a constant expression: first
// as an inherited field of b, then as a static single/on-demand import.
func (bd *Binder) resolveConstVar(b *BoundClass, name ast.Name) (constant.Value, bool) {
	if len(name.Parts) > 1 {
		return bd.resolveQualifiedConst(b, name)
	}
	simple := name.Parts[0].Name
	if owner, ok := resolveOne(bd.Env, b.Symbol, b.Symbol, fieldProbe(simple)); ok {
		return bd.fieldConstant(owner, simple)
	}
	if b.unit != nil && b.unit.MemberImports != nil {
		if owner, fname, ok := b.unit.MemberImports.Lookup(simple, bd.resolve.ResolveField, bd.resolve.ResolveType); ok {
			return bd.fieldConstant(owner, fname)
		}
	}
	return constant.Value{}, false
}

// resolveQualifiedConst resolves "T.FIELD" (or "a.b.T.FIELD"): the prefix as
// a named type through b's scope, the last identifier as that type's field.
func (bd *Binder) resolveQualifiedConst(b *BoundClass, path ast.Name) (constant.Value, bool) {
	if len(path.Parts) < 2 {
		return constant.Value{}, false
	}
	prefix := ast.Name{Parts: path.Parts[:len(path.Parts)-1]}
	last := path.Parts[len(path.Parts)-1].Name
	typeSym, ok := bd.resolveSupertypeName(b, &ast.NamedTypeExpr{Name: prefix})
	if !ok {
		return constant.Value{}, false
	}
	if owner, ok := resolveOne(bd.Env, b.Symbol, typeSym, fieldProbe(last)); ok {
		return bd.fieldConstant(owner, last)
	}
	return constant.Value{}, false
}

func fieldProbe(name string) memberLookup {
	return func(b *BoundClass) (symbol.Class, ast.Modifiers, bool) {
		f, ok := b.FieldByName(name)
		if !ok {
			return "", 0, false
		}
		return b.Symbol, f.Access, true
	}
}

// fieldConstant returns the already-evaluated constant value of owner's
// field named name, triggering owner's constant binding on demand if it is
// a source class that has not been bound yet.
func (bd *Binder) fieldConstant(owner symbol.Class, name string) (constant.Value, bool) {
	ownerB, ok := bd.Env.Lookup(owner)
	if !ok {
		return constant.Value{}, false
	}
	if ownerB.IsSource && !ownerB.constantsDone {
		bd.bindClassConstants(ownerB)
	}
	f, ok := ownerB.FieldByName(name)
	if !ok || f.Constant == nil {
		return constant.Value{}, false
	}
	return *f.Constant, true
}
