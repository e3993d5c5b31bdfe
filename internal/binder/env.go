package binder

import "github.com/cwbudde/jhdr/internal/symbol"

// ClassEnv answers "what is the bound view of this class symbol" for one
// layer of the environment chain (sources, bootclasspath, or one classpath
// reader). A concrete ClassEnv per concern, rather than a generic
// Env[Symbol, View], since this binder only ever chains one key/view pair —
// a type parameter here would buy nothing a plain interface doesn't already
// give.
type ClassEnv interface {
	Lookup(sym symbol.Class) (*BoundClass, bool)
}

// mapEnv is a ClassEnv backed by a plain map, used for the source
// environment (every BoundClass a compilation unit produces) and as the
// classpath environment's materialization cache.
type mapEnv map[symbol.Class]*BoundClass

func (m mapEnv) Lookup(sym symbol.Class) (*BoundClass, bool) {
	b, ok := m[sym]
	return b, ok
}

// CompoundEnv probes its layers in order and returns the first hit — sources
// first, then bootclasspath, then classpath, which realizes invariant 6 in a
// single linear scan: sources beat classpath because they are probed first;
// bootclasspath beats classpath for the same reason, independent of
// whether sources ever materialize a class at all.
type CompoundEnv []ClassEnv

// Lookup probes each layer in order, first match wins.
func (c CompoundEnv) Lookup(sym symbol.Class) (*BoundClass, bool) {
	for _, e := range c {
		if e == nil {
			continue
		}
		if b, ok := e.Lookup(sym); ok {
			return b, true
		}
	}
	return nil, false
}
