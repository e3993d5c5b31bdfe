package binder

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/constant"
	"github.com/cwbudde/jhdr/internal/diag"
	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

const (
	annoTargetClass            = symbol.Class("java/lang/annotation/Target")
	annoRetentionClass         = symbol.Class("java/lang/annotation/Retention")
	annoRepeatableClass        = symbol.Class("java/lang/annotation/Repeatable")
	annoInheritedClass         = symbol.Class("java/lang/annotation/Inherited")
	annoRetentionPolicyClass   = symbol.Class("java/lang/annotation/RetentionPolicy")
	annoRetentionPolicyRuntime = "RUNTIME"
	annoRetentionPolicySource  = "SOURCE"
)

// evalAnnotationTrees converts a declaration's annotation occurrences into
// bound AnnotationInfo, running a four-step binding algorithm on each:
// resolve the annotation's own class, build a template of its
// abstract (element-declaring) methods, match each source argument against
// an element either by name or, for the single-argument sugar form, against
// the implicit "value" element, then evaluate and coerce every matched
// argument to its element's declared type. Unannotated declarations return
// nil without doing any work. A second pass then checks the whole occurrence
// list for the same annotation symbol appearing more than once, reporting
// NOT_REPEATABLE unless that annotation type is marked @Repeatable.
func (bd *Binder) evalAnnotationTrees(ctx *typeBindCtx, trees []*ast.AnnotationTree) []AnnotationInfo {
	if len(trees) == 0 {
		return nil
	}
	out := make([]AnnotationInfo, 0, len(trees))
	counts := map[symbol.Class]int{}
	for _, tree := range trees {
		info, ok := bd.bindAnnotation(ctx, tree)
		if !ok {
			continue
		}
		counts[info.Symbol]++
		if counts[info.Symbol] > 1 && !bd.annotationIsRepeatable(info.Symbol) {
			bd.Bag.Errorf(sourceOf(ctx.class), info.Pos, diag.NotRepeatable,
				"%s is not @Repeatable", info.Symbol)
		}
		out = append(out, info)
	}
	return out
}

// annotationIsRepeatable reports whether sym's own declaration names a
// container class via @Repeatable, letting it legally occur more than once
// on the same declaration.
func (bd *Binder) annotationIsRepeatable(sym symbol.Class) bool {
	annoClass, ok := bd.Env.Lookup(sym)
	if !ok || annoClass.AnnotationMeta == nil {
		return false
	}
	return annoClass.AnnotationMeta.RepeatableContainer != ""
}

func (bd *Binder) bindAnnotation(ctx *typeBindCtx, tree *ast.AnnotationTree) (AnnotationInfo, bool) {
	src := sourceOf(ctx.class)
	annoSym, ok := bd.resolveSupertypeName(ctx.class, &ast.NamedTypeExpr{Name: tree.Type})
	if !ok {
		return AnnotationInfo{}, false
	}
	annoClass, ok := bd.Env.Lookup(annoSym)
	if !ok {
		return AnnotationInfo{}, false
	}
	if annoClass.IsSource {
		bd.bindTypeParams(annoClass)
		bd.bindClassSignature(annoClass)
	}
	if annoClass.Kind != ast.KindAnnotation {
		bd.Bag.Errorf(src, tree.Pos, diag.NotAnAnnotation, "%s is not an annotation type", annoSym)
		return AnnotationInfo{}, false
	}

	elements := annoClass.Methods // every abstract method of an @interface is an element
	env := bd.constantEnv(ctx.class, ctx)

	info := AnnotationInfo{Symbol: annoSym, Pos: tree.Pos, Elements: map[string]constant.Value{}}
	seen := map[string]bool{}
	for _, arg := range tree.Args {
		name := arg.Name.Name
		if arg.Implicit {
			name = "value"
		}
		elem := elementByName(elements, name)
		if elem == nil {
			bd.Bag.Errorf(src, tree.Pos, diag.CannotResolveElement, "%s has no element %q", annoSym, name)
			continue
		}
		if seen[name] {
			bd.Bag.Errorf(src, tree.Pos, diag.InvalidAnnotationArgument, "duplicate element %q", name)
			continue
		}
		seen[name] = true
		v, ok := evalElementValue(arg.Value, elem.Return, env)
		if !ok {
			bd.Bag.Errorf(src, tree.Pos, diag.ExpressionError, "cannot evaluate element %q", name)
			continue
		}
		if elem.Return.Tag() == types.TagClass {
			if _, isPrim := v.Kind().ToPrimKind(); isPrim {
				bd.Bag.Errorf(src, tree.Pos, diag.UnexpectedType,
					"element %q expects %s, got a primitive value", name, elem.Return)
				continue
			}
		}
		info.ElementOrder = append(info.ElementOrder, name)
		info.Elements[name] = v
	}

	for _, elem := range elements {
		if seen[elem.Symbol.Name] {
			continue
		}
		if elem.DefaultValue != nil {
			continue // filled lazily at query time from elem.DefaultValue
		}
		bd.Bag.Errorf(src, tree.Pos, diag.MissingAnnotationArgument,
			"missing required element %q of %s", elem.Symbol.Name, annoSym)
	}

	return info, true
}

func elementByName(methods []*BoundMethod, name string) *BoundMethod {
	for _, m := range methods {
		if m.Symbol.Name == name {
			return m
		}
	}
	return nil
}

// evalElementValue evaluates one annotation argument against its element's
// declared return type: an array type evaluates as an array initializer
// coerced elementwise (or, by the single-element-array sugar, a lone scalar
// wrapped in a one-element array); everything else evaluates as a scalar
// constant expression and is coerced to elementType when primitive/String.
func evalElementValue(e ast.Expr, elementType types.Type, env *constant.Env) (constant.Value, bool) {
	if elementType.Tag() == types.TagArray {
		elemType := elementType.Elem()
		if arr, ok := e.(*ast.ArrayInitExpr); ok {
			if elemType.Tag() == types.TagPrim {
				return constant.EvalArrayElements(arr, elemType.Prim(), env)
			}
			return evalArrayOfNonPrim(arr, env)
		}
		v, ok := constant.Eval(e, env)
		if !ok {
			return constant.Value{}, false
		}
		return constant.NewArray([]constant.Value{v}), true
	}
	v, ok := constant.Eval(e, env)
	if !ok {
		return constant.Value{}, false
	}
	if elementType.Tag() == types.TagPrim {
		if c, err := constant.Coerce(v, elementType.Prim()); err == nil {
			return c, true
		}
		return constant.Value{}, false
	}
	if isStringType(elementType) {
		if c, ok := constant.CoerceToString(v); ok {
			return c, true
		}
		return constant.Value{}, false
	}
	return v, true
}

func evalArrayOfNonPrim(arr *ast.ArrayInitExpr, env *constant.Env) (constant.Value, bool) {
	elems := make([]constant.Value, 0, len(arr.Elements))
	for _, elemExpr := range arr.Elements {
		v, ok := constant.Eval(elemExpr, env)
		if !ok {
			return constant.Value{}, false
		}
		elems = append(elems, v)
	}
	return constant.NewArray(elems), true
}

// deriveAnnotationMeta extracts an annotation type's own @Target/@Retention/
// @Repeatable/@Inherited meta-annotations from its already-bound declaration
// annotations. A classpath annotation type's Annos were populated straight
// from its raw class-file annotation attributes during classpath
// materialization; a source annotation type's Annos come from
// evalAnnotationTrees above — either way this reads the same evaluated
// shape.
func deriveAnnotationMeta(annos []AnnotationInfo) *AnnotationMeta {
	meta := &AnnotationMeta{Retention: RetentionClass}
	for _, a := range annos {
		switch a.Symbol {
		case annoRetentionClass:
			if v, ok := a.Elements["value"]; ok && v.Kind() == constant.KindEnum {
				switch v.EnumConstant().Name {
				case annoRetentionPolicyRuntime:
					meta.Retention = RetentionRuntime
				case annoRetentionPolicySource:
					meta.Retention = RetentionSource
				default:
					meta.Retention = RetentionClass
				}
			}
		case annoTargetClass:
			if v, ok := a.Elements["value"]; ok && v.Kind() == constant.KindArray {
				for _, elem := range v.Elements() {
					if elem.Kind() == constant.KindEnum {
						meta.Targets = append(meta.Targets, elem.EnumConstant().Name)
					}
				}
			}
		case annoRepeatableClass:
			if v, ok := a.Elements["value"]; ok && v.Kind() == constant.KindClass {
				meta.RepeatableContainer = v.ClassLiteral().ClassSymbol()
			}
		case annoInheritedClass:
			meta.Inherited = true
		}
	}
	return meta
}

// GetAnnotation returns the bound occurrence of annoSym on b, walking up b's
// superclass chain when annoSym is directly absent and its own
// AnnotationMeta marks it @Inherited, mirroring
// java.lang.Class#getAnnotation's inherited-annotation semantics. A
// non-@Inherited annotation type, or a superclass the hierarchy phase never
// resolved, stops the walk at the first class that doesn't carry it.
func (bd *Binder) GetAnnotation(b *BoundClass, annoSym symbol.Class) (AnnotationInfo, bool) {
	for cur := b; cur != nil; {
		for _, a := range cur.Annos {
			if a.Symbol == annoSym {
				return a, true
			}
		}
		annoClass, ok := bd.Env.Lookup(annoSym)
		if !ok || annoClass.AnnotationMeta == nil || !annoClass.AnnotationMeta.Inherited {
			return AnnotationInfo{}, false
		}
		if cur.RawSuper == "" {
			return AnnotationInfo{}, false
		}
		sup, ok := bd.Env.Lookup(cur.RawSuper)
		if !ok {
			return AnnotationInfo{}, false
		}
		cur = sup
	}
	return AnnotationInfo{}, false
}
