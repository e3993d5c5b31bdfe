package ast

// Kind identifies a class declaration's nominal category; all five are
// treated as classes for hierarchy purposes.
type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindEnum
	KindRecord
	KindAnnotation
)

// Modifiers is a bitset of declaration-level access/quality flags.
type Modifiers uint32

const (
	ModPublic Modifiers = 1 << iota
	ModPrivate
	ModProtected
	ModStatic
	ModFinal
	ModAbstract
	ModSealed
	ModNonSealed
	ModDefault // interface default method
)

// IsPublic, IsPrivate, IsProtected report whether the corresponding bit is
// set; a declaration with none of the three is package-private.
func (m Modifiers) IsPublic() bool    { return m&ModPublic != 0 }
func (m Modifiers) IsPrivate() bool   { return m&ModPrivate != 0 }
func (m Modifiers) IsProtected() bool { return m&ModProtected != 0 }
func (m Modifiers) IsStatic() bool    { return m&ModStatic != 0 }
func (m Modifiers) IsAbstract() bool  { return m&ModAbstract != 0 }
func (m Modifiers) IsSealed() bool    { return m&ModSealed != 0 }

// TypeParamDecl is a declared type parameter "T extends B1 & B2".
type TypeParamDecl struct {
	Name        Ident
	Bounds      []TypeExpr // empty means implicit Object bound
	Annotations []*AnnotationTree
}

// ClassDecl is a class/interface/enum/record/annotation declaration. Nested
// types appear in Members as further *ClassDecl values, mirroring the
// bound-class children map the hierarchy phase builds.
type ClassDecl struct {
	Kind        Kind
	Name        Ident
	Mods        Modifiers
	TypeParams  []*TypeParamDecl
	Superclass  TypeExpr   // nil for interfaces/Object itself
	Interfaces  []TypeExpr // "implements"/"extends" list for interfaces
	Permits     []TypeExpr // sealed "permits" clause
	Annotations []*AnnotationTree

	Fields      []*FieldDecl
	Methods     []*MethodDecl
	NestedTypes []*ClassDecl

	// RecordComponents holds a record declaration's positional component
	// list; non-nil only when Kind == KindRecord.
	RecordComponents []*RecordComponent

	Pos Pos
}

func (d *ClassDecl) declNode() {}

// RecordComponent is one component of a record header, e.g. "int x" in
// "record Point(int x, int y)".
type RecordComponent struct {
	Name Ident
	Type TypeExpr
}

// FieldDecl is a field (or enum constant, when EnumConstant is true)
// declaration.
type FieldDecl struct {
	Name         Ident
	Type         TypeExpr
	Mods         Modifiers
	Annotations  []*AnnotationTree
	Initializer  Expr // nil if the field has no initializer
	EnumConstant bool
	Pos          Pos
}

func (d *FieldDecl) declNode() {}

// ParamDecl is a method formal parameter.
type ParamDecl struct {
	Name        Ident
	Type        TypeExpr
	Annotations []*AnnotationTree
	Varargs     bool
}

// MethodDecl is a method (or constructor, when Name.Name == "<init>")
// declaration. Method bodies are never part of this tree — the binder never
// needs them.
type MethodDecl struct {
	Name        Ident
	Mods        Modifiers
	TypeParams  []*TypeParamDecl
	Receiver    TypeExpr // non-nil only for an explicit receiver parameter
	Params      []*ParamDecl
	Return      TypeExpr // nil for void
	Throws      []TypeExpr
	Annotations []*AnnotationTree
	// Default is the default-value expression of an annotation element
	// declaration ("String value() default \"\";"); nil otherwise.
	Default Expr
	Pos     Pos
}

func (d *MethodDecl) declNode() {}
