package binder

import "github.com/cwbudde/jhdr/internal/ast"

// ModuleInfo is the record a module-info compilation unit produces instead
// of a BoundClass: the module declaration's name, version stamp, open flag,
// and its four directive lists, carried through largely unprocessed since
// the binder's job here is transcription, not resolution — requires/exports/
// opens/uses/provides name packages and modules that live outside any
// single compilation's classpath view.
type ModuleInfo struct {
	Name     string
	Version  string // from the --module-version option; "" when unset
	Open     bool
	Requires []ast.RequiresDirective
	Exports  []ast.ExportsDirective
	Opens    []ast.ExportsDirective
	Uses     []ast.Name
	Provides []ast.ProvidesDirective
}

// AddModuleUnit registers a module-info compilation unit, returning its
// ModuleInfo rather than threading it through the class stub/binding
// pipeline at all — a module declaration has no supertype, no members, and
// nothing for the signature or constant phases to do.
func (bd *Binder) AddModuleUnit(unit *ast.CompilationUnit, moduleVersion string) *ModuleInfo {
	m := unit.Module
	info := &ModuleInfo{
		Name:     m.Name.String(),
		Version:  moduleVersion,
		Open:     m.Open,
		Requires: m.Requires,
		Exports:  m.Exports,
		Opens:    m.Opens,
		Uses:     m.Uses,
		Provides: m.Provides,
	}
	bd.modules = append(bd.modules, info)
	return info
}

// Modules returns every module-info unit registered so far.
func (bd *Binder) Modules() []*ModuleInfo {
	return bd.modules
}
