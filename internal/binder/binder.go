package binder

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/classfile"
	"github.com/cwbudde/jhdr/internal/diag"
	"github.com/cwbudde/jhdr/internal/index"
	"github.com/cwbudde/jhdr/internal/scope"
	"github.com/cwbudde/jhdr/internal/symbol"
)

// Binder holds the shared state every phase reads and writes: the top-level
// index, the three-layer environment (sources, bootclasspath, classpath),
// the member resolver built over that environment, and the diagnostic bag
// every phase reports into.
type Binder struct {
	Bag *diag.Bag

	Index   *index.Index
	Env     CompoundEnv
	resolve *Resolver

	sources mapEnv
	units   []*CompilationUnitInfo
	modules []*ModuleInfo
}

// NewBinder builds an empty Binder over a classpath/bootclasspath reader
// pair. Source classes are added afterward via AddUnit.
func NewBinder(bag *diag.Bag, bootclasspath, classpath *classfile.Reader) *Binder {
	sources := mapEnv{}
	var boot, cp ClassEnv
	if bootclasspath != nil {
		boot = newClasspathEnv(bootclasspath)
	}
	if classpath != nil {
		cp = newClasspathEnv(classpath)
	}
	bd := &Binder{
		Bag:     bag,
		Index:   index.New(),
		sources: sources,
	}
	// Probe order realizes invariant 6: sources beat classpath (probed
	// first), and bootclasspath beats classpath (probed second) regardless
	// of whether a source class exists at all.
	bd.Env = CompoundEnv{sources, boot, cp}
	bd.resolve = newResolver(bd.Env)
	return bd
}

// SeedClasspath inserts every class name reachable from readers into the
// top-level index, bootclasspath before classpath. The index records names
// only — a trie path always maps to the same class symbol — so insertion
// order does not decide which declaration wins; CompoundEnv's probe order
// does. Call this before AddUnit so that the package scope AddUnit takes
// from the index already lists classpath classes.
func (bd *Binder) SeedClasspath(bootclasspath, classpath *classfile.Reader) {
	if bootclasspath != nil {
		for _, n := range bootclasspath.ClassNames() {
			bd.Index.Insert(n)
		}
	}
	if classpath != nil {
		for _, n := range classpath.ClassNames() {
			bd.Index.Insert(n)
		}
	}
}

// AddUnit registers one parsed compilation unit's declarations as header
// stubs: every top-level and nested class gets a *BoundClass, inserted into
// the top-level index and the binder's source environment, with Children
// populated for direct nested types. A name the classpath already put in
// the index is not a duplicate: the source environment is probed first, so
// the source class wins.
// Per-class compound scopes are assembled once every class in the unit has
// a symbol, so forward references between sibling/nested declarations in
// the same unit resolve correctly.
func (bd *Binder) AddUnit(unit *ast.CompilationUnit) *CompilationUnitInfo {
	info := &CompilationUnitInfo{Unit: unit}

	pkgScope := bd.Index.Scope()
	info.SingleImports = scope.NewImportIndex(pkgScope)
	info.WildImports = scope.NewWildImportIndex(pkgScope, packageLookupFor(bd.Index.LookupPackage))
	info.MemberImports = scope.NewMemberImportIndex(pkgScope)
	for _, imp := range unit.Imports {
		switch imp.Kind {
		case ast.ImportSingleType:
			if !info.SingleImports.Add(imp.Name) {
				bd.Bag.Errorf(unit.Source, imp.Pos, diag.DuplicateDeclaration, "duplicate import of %s", imp.Name)
			}
		case ast.ImportWildType:
			info.WildImports.AddPackage(pathToSlash(imp.Name.String()))
			info.WildImports.AddType(imp.Name)
		case ast.ImportSingleStatic:
			if !info.MemberImports.AddSingle(imp.Name) {
				bd.Bag.Errorf(unit.Source, imp.Pos, diag.DuplicateDeclaration, "duplicate static import of %s", imp.Name)
			}
		case ast.ImportWildStatic:
			classPath := ast.Name{Parts: imp.Name.Parts[:len(imp.Name.Parts)-1]}
			info.MemberImports.AddWild(classPath)
		}
	}
	pkgPrefix := pathToSlash(unit.Package.String())
	if ps, ok := bd.Index.LookupPackage(symbol.Package(pkgPrefix)); ok {
		info.PackageScope = ps.AsScope()
	}

	for _, decl := range unit.Decls {
		b := bd.buildStub(decl, nil, pkgPrefix, info)
		info.TopClasses = append(info.TopClasses, b)
	}
	for _, b := range info.TopClasses {
		bd.assignScopes(b, info)
	}
	bd.units = append(bd.units, info)
	return info
}

// buildStub recursively creates header stubs for decl and every type nested
// inside it, registering each in the top-level index and source
// environment, and wiring parent/child pointers.
func (bd *Binder) buildStub(decl *ast.ClassDecl, parent *BoundClass, pkgPrefix string, info *CompilationUnitInfo) *BoundClass {
	var sym symbol.Class
	if parent == nil {
		if pkgPrefix == "" {
			sym = symbol.Class(decl.Name.Name)
		} else {
			sym = symbol.Class(pkgPrefix + "/" + decl.Name.Name)
		}
	} else {
		sym = symbol.Class(string(parent.Symbol) + "$" + decl.Name.Name)
	}

	b := &BoundClass{
		Symbol:        sym,
		Stage:         StageHeader,
		Kind:          decl.Kind,
		Access:        decl.Mods,
		Children:      map[string]symbol.Class{},
		TypeParams:    map[string]symbol.TypeVariable{},
		TypeParamInfo: map[symbol.TypeVariable]TypeParamInfo{},
		IsSource:      true,
		MemberImports: info.MemberImports,
		decl:          decl,
		unit:          info,
	}
	if parent != nil {
		b.Owner = parent.Symbol
		b.Parent = parent
		parent.Children[decl.Name.Name] = sym
	}

	// Only a name another source class already declared is a duplicate; an
	// index entry seeded from the classpath, or the outer class's entry a
	// nested class shares, is not.
	_, dup := bd.sources[sym]
	bd.Index.Insert(sym)
	if dup {
		bd.Bag.Errorf(info.Unit.Source, decl.Pos, diag.DuplicateDeclaration, "class %s already declared", sym)
	}
	bd.sources[sym] = b

	for _, nested := range decl.NestedTypes {
		bd.buildStub(nested, b, pkgPrefix, info)
	}
	return b
}

// assignScopes assigns b's compound scope (and recurses into its nested
// types) now that every class in the unit has been inserted and every
// sibling/outer Children map is populated.
func (bd *Binder) assignScopes(b *BoundClass, info *CompilationUnitInfo) {
	b.Scope = buildClassScope(bd.resolve.ResolveType, b, info, bd.Index.Scope())
	for _, childSym := range b.Children {
		if child, ok := bd.sources[childSym]; ok {
			bd.assignScopes(child, info)
		}
	}
}

func pathToSlash(dotted string) string {
	out := make([]byte, 0, len(dotted))
	for i := 0; i < len(dotted); i++ {
		if dotted[i] == '.' {
			out = append(out, '/')
		} else {
			out = append(out, dotted[i])
		}
	}
	return string(out)
}

// AllSourceClasses returns every source BoundClass registered so far, in no
// particular order — used by phases that need to sweep every class.
func (bd *Binder) AllSourceClasses() []*BoundClass {
	out := make([]*BoundClass, 0, len(bd.sources))
	for _, b := range bd.sources {
		out = append(out, b)
	}
	return out
}

// Lookup resolves sym through the full environment chain.
func (bd *Binder) Lookup(sym symbol.Class) (*BoundClass, bool) {
	return bd.Env.Lookup(sym)
}
