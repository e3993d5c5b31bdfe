// Package types is the language-neutral representation of types used
// throughout binding: primitive, class-with-args, array, type-variable,
// wildcard, intersection, method, error, and void.
//
// Types are immutable value records. Constructors do not normalize or
// canonicalize; equality is structural and delegates to the kind-specific
// equivalence in equal.go.
package types

import (
	"strings"

	"github.com/cwbudde/jhdr/internal/symbol"
)

// Tag discriminates the Type variant.
type Tag int

const (
	TagPrim Tag = iota
	TagClass
	TagArray
	TagTypeVar
	TagWild
	TagIntersection
	TagMethod
	TagError
	TagVoid
	TagNone
)

// PrimKind enumerates the primitive kinds, including the NULL pseudo
// primitive used for the null literal.
type PrimKind int

const (
	PrimBoolean PrimKind = iota
	PrimByte
	PrimShort
	PrimChar
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
	PrimNull
)

var primNames = map[PrimKind]string{
	PrimBoolean: "boolean",
	PrimByte:    "byte",
	PrimShort:   "short",
	PrimChar:    "char",
	PrimInt:     "int",
	PrimLong:    "long",
	PrimFloat:   "float",
	PrimDouble:  "double",
	PrimNull:    "<null>",
}

func (k PrimKind) String() string { return primNames[k] }

// WildKind distinguishes "?", "? extends B", "? super B".
type WildKind int

const (
	WildNone WildKind = iota
	WildUpper
	WildLower
)

// SimpleClassTy is one link of a ClassTy's outer→inner chain: a class
// symbol together with the type arguments bound at that level.
type SimpleClassTy struct {
	Sym      symbol.Class
	TypeArgs []Type
	Annos    []Annotation
}

// Annotation is a minimal placeholder carried on a Type for type-use
// annotations; the full annotation value lives in internal/binder's
// AnnotationInfo. Types only need the annotation's symbol for structural
// equality and erasure purposes.
type Annotation struct {
	Sym symbol.Class
}

// Type is a tagged-union value record. Exactly one of the kind-specific
// fields is meaningful, selected by Tag. A zero Type is not valid — always
// construct through one of the New* constructors.
type Type struct {
	tag Tag

	// TagPrim
	prim PrimKind

	// TagClass: outer→inner chain. A raw use collapses to a single-element
	// chain with no args. A static nested class is represented by the
	// single leaf with no enclosing chain, since static nested types cannot
	// bind outer type arguments.
	classChain []SimpleClassTy

	// TagArray
	elem *Type

	// TagTypeVar
	tvar symbol.TypeVariable

	// TagWild
	wildKind  WildKind
	wildBound *Type

	// TagIntersection
	bounds []Type

	// TagMethod
	methodTyParams []symbol.TypeVariable
	methodReturn   *Type
	methodReceiver *Type
	methodParams   []Type
	methodThrown   []Type

	// TagError
	errorPath string

	annos []Annotation
}

// Tag returns the type's variant discriminator.
func (t Type) Tag() Tag { return t.tag }

// Void is the singleton void pseudo-type.
var Void = Type{tag: TagVoid}

// None is the singleton "no type" sentinel (used e.g. for a constructor's
// absent return type slot before erasure, or an unset receiver).
var None = Type{tag: TagNone}

// NewPrim constructs a primitive type, optionally carrying type-use
// annotations.
func NewPrim(kind PrimKind, annos ...Annotation) Type {
	return Type{tag: TagPrim, prim: kind, annos: annos}
}

// Prim returns the primitive kind; valid only when Tag() == TagPrim.
func (t Type) Prim() PrimKind { return t.prim }

// NewClass constructs a class type from an outer→inner chain. Passing a
// single SimpleClassTy with no enclosing links models both a raw top-level
// use and a static nested class.
func NewClass(chain []SimpleClassTy, annos ...Annotation) Type {
	return Type{tag: TagClass, classChain: chain, annos: annos}
}

// NewSimpleClass constructs a class type with a single-element chain — the
// common case of a non-nested, non-raw or raw reference.
func NewSimpleClass(sym symbol.Class, typeArgs ...Type) Type {
	return NewClass([]SimpleClassTy{{Sym: sym, TypeArgs: typeArgs}})
}

// ClassChain returns the outer→inner chain; valid only when Tag() == TagClass.
func (t Type) ClassChain() []SimpleClassTy { return t.classChain }

// ClassSymbol returns the innermost (leaf) class symbol of a class type.
func (t Type) ClassSymbol() symbol.Class {
	if len(t.classChain) == 0 {
		return ""
	}
	return t.classChain[len(t.classChain)-1].Sym
}

// TypeArgs returns the innermost chain link's type arguments.
func (t Type) TypeArgs() []Type {
	if len(t.classChain) == 0 {
		return nil
	}
	return t.classChain[len(t.classChain)-1].TypeArgs
}

// IsRaw reports whether the innermost link has no type arguments though the
// class itself declares type parameters — callers combine this with a
// BoundClass lookup; Type alone cannot tell raw-of-generic from
// raw-of-non-generic.
func (t Type) IsRaw() bool {
	return t.tag == TagClass && len(t.TypeArgs()) == 0
}

// NewArray constructs an array type.
func NewArray(elem Type, annos ...Annotation) Type {
	return Type{tag: TagArray, elem: &elem, annos: annos}
}

// Elem returns the array's element type; valid only when Tag() == TagArray.
func (t Type) Elem() Type { return *t.elem }

// NewTypeVar constructs a type-variable reference.
func NewTypeVar(sym symbol.TypeVariable, annos ...Annotation) Type {
	return Type{tag: TagTypeVar, tvar: sym, annos: annos}
}

// TypeVarSymbol returns the referenced type variable; valid only when
// Tag() == TagTypeVar.
func (t Type) TypeVarSymbol() symbol.TypeVariable { return t.tvar }

// NewWildcard constructs a wildcard type argument.
func NewWildcard(kind WildKind, bound *Type, annos ...Annotation) Type {
	return Type{tag: TagWild, wildKind: kind, wildBound: bound, annos: annos}
}

// WildKind returns the wildcard's bound direction; valid only when
// Tag() == TagWild.
func (t Type) WildKind() WildKind { return t.wildKind }

// WildBound returns the wildcard's bound, or nil for an unbounded "?".
func (t Type) WildBound() *Type { return t.wildBound }

// NewIntersection constructs an intersection type from its bound list.
func NewIntersection(bounds ...Type) Type {
	return Type{tag: TagIntersection, bounds: bounds}
}

// Bounds returns the intersection's bound list; valid only when
// Tag() == TagIntersection.
func (t Type) Bounds() []Type { return t.bounds }

// MethodSig bundles a method type's pieces for NewMethod, since a method
// type has more fields than any other variant.
type MethodSig struct {
	TypeParams []symbol.TypeVariable
	Return     Type
	Receiver   *Type
	Params     []Type
	Thrown     []Type
}

// NewMethod constructs a method type.
func NewMethod(sig MethodSig) Type {
	return Type{
		tag:            TagMethod,
		methodTyParams: sig.TypeParams,
		methodReturn:   &sig.Return,
		methodReceiver: sig.Receiver,
		methodParams:   sig.Params,
		methodThrown:   sig.Thrown,
	}
}

func (t Type) MethodTypeParams() []symbol.TypeVariable { return t.methodTyParams }
func (t Type) MethodReturn() Type                      { return *t.methodReturn }
func (t Type) MethodReceiver() *Type                   { return t.methodReceiver }
func (t Type) MethodParams() []Type                    { return t.methodParams }
func (t Type) MethodThrown() []Type                    { return t.methodThrown }

// NewError constructs an error type carrying the dotted name path that
// could not be resolved.
func NewError(path string) Type {
	return Type{tag: TagError, errorPath: path}
}

// ErrorPath returns the unresolved name path; valid only when
// Tag() == TagError.
func (t Type) ErrorPath() string { return t.errorPath }

// Annos returns the type-use annotations carried directly on this Type
// value (not on its element/bound/args).
func (t Type) Annos() []Annotation { return t.annos }

// String renders a type with "." in place of the package separator '/' and
// between class-chain links; a '$' inside a binary class name is kept. This
// is the form used in error messages; it is not used for binary-name
// serialization.
func (t Type) String() string {
	switch t.tag {
	case TagPrim:
		return t.prim.String()
	case TagVoid:
		return "void"
	case TagNone:
		return "<none>"
	case TagError:
		return "<error: " + t.errorPath + ">"
	case TagTypeVar:
		return t.tvar.Name
	case TagArray:
		return t.Elem().String() + "[]"
	case TagWild:
		switch t.wildKind {
		case WildUpper:
			return "? extends " + t.wildBound.String()
		case WildLower:
			return "? super " + t.wildBound.String()
		default:
			return "?"
		}
	case TagIntersection:
		parts := make([]string, len(t.bounds))
		for i, b := range t.bounds {
			parts[i] = b.String()
		}
		return strings.Join(parts, " & ")
	case TagClass:
		var sb strings.Builder
		for i, link := range t.classChain {
			if i > 0 {
				sb.WriteString(".")
			}
			sb.WriteString(strings.ReplaceAll(string(link.Sym), "/", "."))
			if len(link.TypeArgs) > 0 {
				sb.WriteString("<")
				for j, a := range link.TypeArgs {
					if j > 0 {
						sb.WriteString(", ")
					}
					sb.WriteString(a.String())
				}
				sb.WriteString(">")
			}
		}
		return sb.String()
	case TagMethod:
		var sb strings.Builder
		sb.WriteString("(")
		for i, p := range t.methodParams {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.String())
		}
		sb.WriteString(") -> ")
		sb.WriteString(t.methodReturn.String())
		return sb.String()
	default:
		return "<invalid type>"
	}
}
