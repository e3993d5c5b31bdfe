// Package ast defines the minimal AST contract the binder consumes:
// compilation units, declarations, expressions, annotation trees, and
// positions. The lexer and parser that produce these trees are out of
// scope — this package models only the finite, closed set of tree kinds
// the binder pattern-matches on.
//
// Every concrete node is a small struct; dispatch is by a type switch on the
// relevant interface, not by a virtual "accept" method. One file per
// syntactic category: declarations, expressions, types, annotations.
package ast

import "github.com/cwbudde/jhdr/internal/diag"

// Pos is re-exported so callers constructing trees by hand (tests, and any
// future parser collaborator) need only import this package.
type Pos = diag.Position

// Ident is a single identifier occurrence with its source position.
type Ident struct {
	Name string
	Pos  Pos
}

// Name is a non-empty, dotted sequence of identifiers used wherever the
// grammar allows a possibly-qualified reference ("a.b.C", "T.FIELD",
// "java.util.List"). It is the AST-level analogue of binder's lookup key:
// an ordered non-empty sequence of identifiers with positions.
type Name struct {
	Parts []Ident
}

// Pos returns the position of the first identifier.
func (n Name) Pos() Pos {
	if len(n.Parts) == 0 {
		return Pos{}
	}
	return n.Parts[0].Pos
}

// String renders the dotted form, e.g. "java.util.List".
func (n Name) String() string {
	s := ""
	for i, p := range n.Parts {
		if i > 0 {
			s += "."
		}
		s += p.Name
	}
	return s
}

// Decl is any top-level or member declaration: ClassDecl, MethodDecl,
// FieldDecl, or ModuleDecl.
type Decl interface {
	declNode()
}

// Expr is any expression tree node consumed by the constant evaluator or
// carried in an annotation argument.
type Expr interface {
	exprNode()
	Position() Pos
}

// TypeExpr is any unresolved type reference as written in source, prior to
// the binder resolving it into an internal/types.Type value.
type TypeExpr interface {
	typeExprNode()
	Position() Pos
}
