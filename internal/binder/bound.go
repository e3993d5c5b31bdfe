// Package binder implements the multi-phase pipeline that turns parsed
// compilation units plus a classpath into fully resolved, signature-typed
// declarations: hierarchy, type-parameter/signature, member, constant, and
// annotation binding, plus the canonical-import check and module-info
// binding. Each bound class starts as a header stub and is promoted in
// place as later phases run; classpath classes are materialized already
// complete, on demand, by the classpath reader.
package binder

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/constant"
	"github.com/cwbudde/jhdr/internal/scope"
	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

// Stage tracks how far a source BoundClass has been promoted through the
// pipeline. Classpath classes skip straight to StageComplete the moment
// they are materialized.
type Stage int

const (
	StageHeader Stage = iota
	StageTyped
	StageComplete
)

// TypeParamInfo is the per-type-variable record the type-parameter phase
// attaches to each declared type parameter: its upper bound (the
// intersection of its declared bounds, or Object if none were declared)
// and any annotations written on the declaration.
type TypeParamInfo struct {
	Bound types.Type
	Annos []AnnotationInfo
}

// BoundField is a field's fully bound shape: its type, access, annotations,
// and — for a static final primitive/string field whose initializer turned
// out to be a constant expression — its evaluated constant value.
type BoundField struct {
	Symbol      symbol.Field
	Type        types.Type
	Access      ast.Modifiers
	Annos       []AnnotationInfo
	Constant    *constant.Value
	EnumOrdinal int // valid only when the field is an enum constant
	IsEnumConst bool
}

// BoundMethod is a method's fully bound signature.
type BoundMethod struct {
	Symbol       symbol.Method
	TypeParams   []symbol.TypeVariable
	Return       types.Type
	Receiver     types.Type // types.None when there is no explicit receiver
	Params       []types.Type
	ParamNames   []string
	Thrown       []types.Type
	Access       ast.Modifiers
	DefaultValue *constant.Value // annotation element default, else nil
	Annos        []AnnotationInfo
}

// AnnotationInfo is one evaluated annotation occurrence: the annotation's
// own class symbol, its source position, and an ordered element-name to
// constant-value mapping.
type AnnotationInfo struct {
	Symbol       symbol.Class
	Pos          ast.Pos
	ElementOrder []string
	Elements     map[string]constant.Value
}

// Retention mirrors java.lang.annotation.RetentionPolicy.
type Retention int

const (
	RetentionClass Retention = iota
	RetentionSource
	RetentionRuntime
)

// AnnotationMeta is the metadata extracted from an annotation type's own
// declaration annotations: its retention, applicable targets, optional
// repeatable-container class, and whether it is @Inherited.
type AnnotationMeta struct {
	Retention           Retention
	Targets             []string // element-type names, e.g. "TYPE", "METHOD"; empty means unrestricted
	RepeatableContainer symbol.Class
	Inherited           bool
}

// BoundClass is the central per-class-symbol record, filled incrementally
// by the phases below.
type BoundClass struct {
	Symbol symbol.Class
	Stage  Stage

	Kind   ast.Kind
	Access ast.Modifiers
	Owner  symbol.Class // "" for a top-level class
	Parent *BoundClass  // nil for a top-level class; convenience back-pointer

	Children map[string]symbol.Class // simple name -> nested class symbol

	TypeParamNames []string // declaration order
	TypeParams     map[string]symbol.TypeVariable
	TypeParamInfo  map[symbol.TypeVariable]TypeParamInfo

	RawSuper       symbol.Class
	RawInterfaces  []symbol.Class
	SuperType      types.Type // parameterized; types.NewError when unresolved, or on the class whose walk detected a cycle (HasCycle) — the other classes on that cycle keep a class type
	InterfaceTypes []types.Type

	Fields  []*BoundField
	Methods []*BoundMethod

	Annos          []AnnotationInfo
	AnnotationMeta *AnnotationMeta

	// Scope is the compound lookup scope a source class resolves names
	// against, chained innermost to outermost. Classpath classes leave this
	// nil — they never need to resolve anything themselves.
	Scope scope.Scope

	// MemberImports holds this compilation unit's static imports, shared by
	// every top-level and nested class declared in the same unit.
	MemberImports *scope.MemberImportIndex

	IsSource bool
	HasCycle bool

	hierarchyDone  bool // guards resolveHierarchy's recursive on-demand binding
	signaturesDone bool // guards the on-demand type-parameter/signature binding an annotation reference can trigger early
	constantsDone  bool // guards bindClassConstants' recursive on-demand binding

	decl *ast.ClassDecl // nil for classpath classes, retained for later phases
	unit *CompilationUnitInfo
}

// IsAnnotationType reports whether this class is itself an annotation type
// (@interface), the one case where AnnotationMeta is meaningful.
func (b *BoundClass) IsAnnotationType() bool { return b.Kind == ast.KindAnnotation }

// FieldByName returns the bound field named name directly declared on b.
func (b *BoundClass) FieldByName(name string) (*BoundField, bool) {
	for _, f := range b.Fields {
		if f.Symbol.Name == name {
			return f, true
		}
	}
	return nil, false
}

// MethodsByName returns every bound method named name directly declared on
// b (there may be several, before overload resolution).
func (b *BoundClass) MethodsByName(name string) []*BoundMethod {
	var out []*BoundMethod
	for _, m := range b.Methods {
		if m.Symbol.Name == name {
			out = append(out, m)
		}
	}
	return out
}
