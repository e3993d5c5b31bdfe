package binder

import "github.com/cwbudde/jhdr/internal/ast"

// name builds an ast.Name from dotted/slashed simple parts, e.g.
// name("java", "lang", "Object").
func name(parts ...string) ast.Name {
	idents := make([]ast.Ident, len(parts))
	for i, p := range parts {
		idents[i] = ast.Ident{Name: p}
	}
	return ast.Name{Parts: idents}
}

func ident(n string) ast.Ident { return ast.Ident{Name: n} }

func namedType(parts ...string) *ast.NamedTypeExpr {
	return &ast.NamedTypeExpr{Name: name(parts...)}
}

func primType(keyword string) *ast.PrimTypeExpr {
	return &ast.PrimTypeExpr{Keyword: keyword}
}

// classDecl builds a minimal top-level class declaration, defaulting to
// public, no superclass (so BindHierarchy supplies java/lang/Object).
func classDecl(n string, kind ast.Kind) *ast.ClassDecl {
	return &ast.ClassDecl{Kind: kind, Name: ident(n), Mods: ast.ModPublic}
}

// unit wraps decls into a single unnamed-package compilation unit.
func unit(source string, decls ...*ast.ClassDecl) *ast.CompilationUnit {
	return &ast.CompilationUnit{Source: source, Decls: decls}
}

func intLit(v int64) *ast.Literal {
	return &ast.Literal{Kind: ast.LitInt, Value: v}
}

func stringLit(v string) *ast.Literal {
	return &ast.Literal{Kind: ast.LitString, Value: v}
}
