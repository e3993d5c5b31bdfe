package binder

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/classfile"
	"github.com/cwbudde/jhdr/internal/diag"
)

// Options are the environment-level knobs a driver threads through one
// binding run explicitly — no global config singleton, matching the
// teacher's PassContext being built fresh per compilation.
type Options struct {
	Bootclasspath *classfile.Reader
	Classpath     *classfile.Reader
	ModuleVersion string
}

// Result is everything a binding run produces: every bound source class,
// every module-info unit, and the diagnostic bag every phase reported into.
// When a phase before constant binding ends with a non-empty Bag, later
// phases never run and Classes and Modules are nil. Diagnostics reported
// while binding constants, the last phase, come back together with Classes
// and Modules.
type Result struct {
	Classes []*BoundClass
	Modules []*ModuleInfo
	Bag     *diag.Bag
}

// Run binds every given compilation unit against opts' classpath/
// bootclasspath through the pipeline in phase order: header stubs,
// hierarchy, signatures (annotations bind inline as part of this phase),
// then constants. Module-info units are registered
// separately and never enter the class pipeline. Binding stops after
// whichever phase first accumulates a diagnostic, since a later phase's
// on-demand recursion assumes every earlier phase's invariants hold.
func Run(units []*ast.CompilationUnit, opts Options) *Result {
	bag := &diag.Bag{}
	bd := NewBinder(bag, opts.Bootclasspath, opts.Classpath)
	bd.SeedClasspath(opts.Bootclasspath, opts.Classpath)

	for _, unit := range units {
		if unit.Module != nil {
			bd.AddModuleUnit(unit, opts.ModuleVersion)
			continue
		}
		bd.AddUnit(unit)
	}
	if bag.HasErrors() {
		return &Result{Bag: bag}
	}

	bd.BindHierarchy()
	if bag.HasErrors() {
		return &Result{Bag: bag}
	}

	bd.BindSignatures()
	if bag.HasErrors() {
		return &Result{Bag: bag}
	}

	bd.BindConstants()

	return &Result{Classes: bd.AllSourceClasses(), Modules: bd.Modules(), Bag: bag}
}
