package binder

import (
	"testing"

	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/diag"
)

// annoDecl builds a minimal @interface declaration with the given elements
// as no-argument, no-default abstract methods.
func annoDecl(n string, elements ...*ast.MethodDecl) *ast.ClassDecl {
	d := classDecl(n, ast.KindAnnotation)
	d.Methods = elements
	return d
}

func element(n string, ret ast.TypeExpr) *ast.MethodDecl {
	return &ast.MethodDecl{Name: ident(n), Return: ret}
}

func elementWithDefault(n string, ret ast.TypeExpr, def ast.Expr) *ast.MethodDecl {
	return &ast.MethodDecl{Name: ident(n), Return: ret, Default: def}
}

func TestBindAnnotationExplicitNamedArgument(t *testing.T) {
	anno := annoDecl("Anno", element("value", namedType("java", "lang", "String")))
	c := classDecl("C", ast.KindClass)
	c.Annotations = []*ast.AnnotationTree{
		{Type: name("Anno"), Args: []ast.AnnotationArg{{Name: ident("value"), Value: stringLit("hi")}}},
	}

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", anno, c))
	bd.BindHierarchy()
	bd.BindSignatures()
	if bd.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bd.Bag.Diagnostics())
	}

	boundC, _ := bd.Lookup("C")
	if len(boundC.Annos) != 1 {
		t.Fatalf("Annos = %+v, want 1 entry", boundC.Annos)
	}
	a := boundC.Annos[0]
	v, ok := a.Elements["value"]
	if !ok {
		t.Fatal("expected element \"value\" to be bound")
	}
	if v.AsString() != "hi" {
		t.Errorf("value = %v, want \"hi\"", v)
	}
}

func TestBindAnnotationImplicitValueSugar(t *testing.T) {
	anno := annoDecl("Anno", element("value", namedType("java", "lang", "String")))
	c := classDecl("C", ast.KindClass)
	c.Annotations = []*ast.AnnotationTree{
		{Type: name("Anno"), Args: []ast.AnnotationArg{{Implicit: true, Value: stringLit("sugar")}}},
	}

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", anno, c))
	bd.BindHierarchy()
	bd.BindSignatures()
	if bd.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bd.Bag.Diagnostics())
	}

	boundC, _ := bd.Lookup("C")
	v, ok := boundC.Annos[0].Elements["value"]
	if !ok || v.AsString() != "sugar" {
		t.Errorf("Elements[\"value\"] = %v, ok=%v, want \"sugar\"", v, ok)
	}
}

func TestBindAnnotationUnknownElementReportsDiagnostic(t *testing.T) {
	anno := annoDecl("Anno", element("value", namedType("java", "lang", "String")))
	c := classDecl("C", ast.KindClass)
	c.Annotations = []*ast.AnnotationTree{
		{Type: name("Anno"), Args: []ast.AnnotationArg{{Name: ident("bogus"), Value: stringLit("x")}}},
	}

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", anno, c))
	bd.BindHierarchy()
	bd.BindSignatures()

	ds := bd.Bag.Diagnostics()
	if len(ds) != 2 {
		// one CANNOT_RESOLVE_ELEMENT for "bogus", one MISSING_ANNOTATION_ARGUMENT
		// for "value" never having been supplied.
		t.Fatalf("expected 2 diagnostics, got %v", ds)
	}
	var gotUnknown, gotMissing bool
	for _, d := range ds {
		switch d.Kind {
		case diag.CannotResolveElement:
			gotUnknown = true
		case diag.MissingAnnotationArgument:
			gotMissing = true
		}
	}
	if !gotUnknown || !gotMissing {
		t.Errorf("diagnostics = %v, want CannotResolveElement and MissingAnnotationArgument", ds)
	}
}

func TestBindAnnotationDuplicateArgumentReportsDiagnostic(t *testing.T) {
	anno := annoDecl("Anno", element("value", namedType("java", "lang", "String")))
	c := classDecl("C", ast.KindClass)
	c.Annotations = []*ast.AnnotationTree{
		{Type: name("Anno"), Args: []ast.AnnotationArg{
			{Name: ident("value"), Value: stringLit("a")},
			{Name: ident("value"), Value: stringLit("b")},
		}},
	}

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", anno, c))
	bd.BindHierarchy()
	bd.BindSignatures()

	found := false
	for _, d := range bd.Bag.Diagnostics() {
		if d.Kind == diag.InvalidAnnotationArgument {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an InvalidAnnotationArgument diagnostic, got %v", bd.Bag.Diagnostics())
	}

	boundC, _ := bd.Lookup("C")
	if v := boundC.Annos[0].Elements["value"]; v.AsString() != "a" {
		t.Errorf("first-seen argument should win, got %v", v)
	}
}

func TestBindAnnotationMissingRequiredElementReportsDiagnostic(t *testing.T) {
	anno := annoDecl("Anno", element("value", namedType("java", "lang", "String")))
	c := classDecl("C", ast.KindClass)
	c.Annotations = []*ast.AnnotationTree{{Type: name("Anno")}}

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", anno, c))
	bd.BindHierarchy()
	bd.BindSignatures()

	found := false
	for _, d := range bd.Bag.Diagnostics() {
		if d.Kind == diag.MissingAnnotationArgument {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a MissingAnnotationArgument diagnostic, got %v", bd.Bag.Diagnostics())
	}
}

func TestBindAnnotationRepeatedNonRepeatableReportsDiagnostic(t *testing.T) {
	anno := annoDecl("Anno", element("value", namedType("java", "lang", "String")))
	c := classDecl("C", ast.KindClass)
	c.Annotations = []*ast.AnnotationTree{
		{Type: name("Anno"), Args: []ast.AnnotationArg{{Implicit: true, Value: stringLit("a")}}},
		{Type: name("Anno"), Args: []ast.AnnotationArg{{Implicit: true, Value: stringLit("b")}}},
	}

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", anno, c))
	bd.BindHierarchy()
	bd.BindSignatures()

	found := false
	for _, d := range bd.Bag.Diagnostics() {
		if d.Kind == diag.NotRepeatable {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a NotRepeatable diagnostic, got %v", bd.Bag.Diagnostics())
	}
	boundC, _ := bd.Lookup("C")
	if len(boundC.Annos) != 2 {
		t.Errorf("both occurrences should still be bound, got %+v", boundC.Annos)
	}
}

func TestBindAnnotationRepeatableSuppressesDiagnostic(t *testing.T) {
	repeatableDecl := &ast.ClassDecl{
		Kind: ast.KindAnnotation, Name: ident("Repeatable"), Mods: ast.ModPublic,
		Methods: []*ast.MethodDecl{element("value", namedType("Container"))},
	}
	repeatableUnit := &ast.CompilationUnit{
		Source:  "Repeatable.src",
		Package: name("java", "lang", "annotation"),
		Decls:   []*ast.ClassDecl{repeatableDecl},
	}

	container := classDecl("Container", ast.KindAnnotation)
	anno := annoDecl("Anno", element("value", namedType("java", "lang", "String")))
	anno.Annotations = []*ast.AnnotationTree{
		{
			Type: name("java", "lang", "annotation", "Repeatable"),
			Args: []ast.AnnotationArg{{Implicit: true, Value: &ast.ClassLiteralExpr{Type: namedType("Container")}}},
		},
	}
	c := classDecl("C", ast.KindClass)
	c.Annotations = []*ast.AnnotationTree{
		{Type: name("Anno"), Args: []ast.AnnotationArg{{Implicit: true, Value: stringLit("a")}}},
		{Type: name("Anno"), Args: []ast.AnnotationArg{{Implicit: true, Value: stringLit("b")}}},
	}

	bd := newTestBinder()
	bd.AddUnit(repeatableUnit)
	bd.AddUnit(unit("u.src", container, anno, c))
	bd.BindHierarchy()
	bd.BindSignatures()
	if bd.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bd.Bag.Diagnostics())
	}

	boundC, _ := bd.Lookup("C")
	if len(boundC.Annos) != 2 {
		t.Errorf("both repeated occurrences of a @Repeatable annotation should be bound, got %+v", boundC.Annos)
	}
}

func TestBindAnnotationPrimitiveForClassElementReportsDiagnostic(t *testing.T) {
	holder := classDecl("Holder", ast.KindClass)
	anno := annoDecl("Anno", element("value", namedType("Holder")))
	c := classDecl("C", ast.KindClass)
	c.Annotations = []*ast.AnnotationTree{
		{Type: name("Anno"), Args: []ast.AnnotationArg{{Implicit: true, Value: intLit(1)}}},
	}

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", holder, anno, c))
	bd.BindHierarchy()
	bd.BindSignatures()

	found := false
	for _, d := range bd.Bag.Diagnostics() {
		if d.Kind == diag.UnexpectedType {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an UnexpectedType diagnostic, got %v", bd.Bag.Diagnostics())
	}
}

func TestGetAnnotationWalksInheritedSuperclass(t *testing.T) {
	inheritedDecl := &ast.ClassDecl{
		Kind: ast.KindAnnotation, Name: ident("Inherited"), Mods: ast.ModPublic,
	}
	inheritedUnit := &ast.CompilationUnit{
		Source:  "Inherited.src",
		Package: name("java", "lang", "annotation"),
		Decls:   []*ast.ClassDecl{inheritedDecl},
	}

	anno := annoDecl("Anno")
	anno.Annotations = []*ast.AnnotationTree{{Type: name("java", "lang", "annotation", "Inherited")}}

	base := classDecl("Base", ast.KindClass)
	base.Annotations = []*ast.AnnotationTree{{Type: name("Anno")}}
	derived := classDecl("Derived", ast.KindClass)
	derived.Superclass = namedType("Base")

	bd := newTestBinder()
	bd.AddUnit(inheritedUnit)
	bd.AddUnit(unit("u.src", anno, base, derived))
	bd.BindHierarchy()
	bd.BindSignatures()
	if bd.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bd.Bag.Diagnostics())
	}

	boundDerived, _ := bd.Lookup("Derived")
	boundAnno, _ := bd.Lookup("Anno")
	if _, ok := bd.GetAnnotation(boundDerived, boundAnno.Symbol); !ok {
		t.Error("expected Derived to inherit @Anno from Base")
	}
}

func TestBindAnnotationDefaultValueSatisfiesMissingElement(t *testing.T) {
	anno := annoDecl("Anno", elementWithDefault("value", namedType("java", "lang", "String"), stringLit("fallback")))
	c := classDecl("C", ast.KindClass)
	c.Annotations = []*ast.AnnotationTree{{Type: name("Anno")}}

	bd := newTestBinder()
	bd.AddUnit(unit("u.src", anno, c))
	bd.BindHierarchy()
	bd.BindSignatures()
	if bd.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bd.Bag.Diagnostics())
	}

	boundC, _ := bd.Lookup("C")
	if _, ok := boundC.Annos[0].Elements["value"]; ok {
		t.Errorf("unsupplied element with a default should not appear in Elements, got %+v", boundC.Annos[0].Elements)
	}
}
