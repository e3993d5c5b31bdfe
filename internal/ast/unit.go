package ast

// CompilationUnit is one parsed source file: an optional package
// declaration, its imports, and its top-level type declarations. This is
// the unit the hierarchy phase iterates over.
type CompilationUnit struct {
	Source  string // file path, used in diagnostics
	Package Name   // zero value for the unnamed package
	Imports []*ImportDecl
	Decls   []*ClassDecl
	Module  *ModuleDecl // non-nil when this unit is a module-info source
}

// ImportKind distinguishes the four import shapes the scope machinery
// needs to tell apart.
type ImportKind int

const (
	ImportSingleType   ImportKind = iota // import a.b.C;
	ImportWildType                       // import a.b.*;
	ImportSingleStatic                   // import static a.b.C.FIELD;
	ImportWildStatic                     // import static a.b.C.*;
)

// ImportDecl is one import declaration.
type ImportDecl struct {
	Kind ImportKind
	Name Name // for static imports, the last segment is the member name
	Pos  Pos
}

// ModuleDecl is a module-info declaration: a module name plus its
// requires/exports/opens/uses/provides directives.
type ModuleDecl struct {
	Name     Name
	Open     bool
	Requires []RequiresDirective
	Exports  []ExportsDirective
	Opens    []ExportsDirective
	Uses     []Name
	Provides []ProvidesDirective
	Pos      Pos
}

func (m *ModuleDecl) declNode() {}

// RequiresDirective is "requires [transitive] [static] M;".
type RequiresDirective struct {
	Module     Name
	Transitive bool
	Static     bool
}

// ExportsDirective is "exports p [to M1, M2];" or the "opens" equivalent.
type ExportsDirective struct {
	Package Name
	To      []Name // empty means unqualified (exported/opened to everyone)
}

// ProvidesDirective is "provides S with I1, I2;".
type ProvidesDirective struct {
	Service Name
	With    []Name
}
