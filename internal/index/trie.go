// Package index builds the top-level index: a trie of every fully
// qualified class name reachable from the bootclasspath, classpath, and
// source set, inserted in that priority order so the first insertion at a
// given path wins.
package index

import (
	"strings"

	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/scope"
	"github.com/cwbudde/jhdr/internal/symbol"
)

// node is one trie position: either a package segment (with children for
// further segments or simple class names) or a terminal class symbol.
type node struct {
	children map[string]*node
	class    symbol.Class // set when this node is a class name
	isClass  bool
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Index is the top-level trie, keyed on slash-delimited package segments
// and simple class names.
type Index struct {
	root *node
}

// New creates an empty Index.
func New() *Index {
	return &Index{root: newNode()}
}

// pathOf splits a class's binary name into its lookup-key segments: package
// segments (split on '/'), then the outermost class name (the part of the
// binary name after the last '/' and before any '$').
func pathOf(name symbol.Class) []string {
	pkg := string(name.PackageOf())
	simple := string(name)
	if i := strings.LastIndexByte(simple, '/'); i >= 0 {
		simple = simple[i+1:]
	}
	var parts []string
	if pkg != "" {
		parts = strings.Split(pkg, "/")
	}
	// Nested classes are addressed structurally through their owner's
	// children map, not inserted as their own top-level trie path beyond
	// the outermost class segment; callers that already have a binary name
	// with '$' components insert only at the top-level (outermost) segment.
	top := simple
	if i := strings.IndexByte(simple, '$'); i >= 0 {
		top = simple[:i]
	}
	parts = append(parts, top)
	return parts
}

// Insert adds name to the index. It returns false if the top-level path was
// already occupied by a class (the same one or another), preserving
// first-match-wins; the
// occupying class is never replaced.
func (idx *Index) Insert(name symbol.Class) bool {
	parts := pathOf(name)
	n := idx.root
	for _, p := range parts[:len(parts)-1] {
		child, ok := n.children[p]
		if !ok {
			child = newNode()
			n.children[p] = child
		}
		n = child
	}
	last := parts[len(parts)-1]
	child, ok := n.children[last]
	if ok && child.isClass {
		return false
	}
	if !ok {
		child = newNode()
		n.children[last] = child
	}
	// Outermost simple name segment; the full binary name (which may carry
	// '$'-nested inner classes) is recorded here so Scope() returns the
	// outermost class symbol for a lookup key that stops at this depth.
	outerName := name
	if i := strings.IndexByte(string(name), '$'); i >= 0 {
		outerPart := string(name)[:i]
		outerName = symbol.Class(outerPart)
	}
	child.class = outerName
	child.isClass = true
	return true
}

// Scope returns a scope.Scope resolving a multi-identifier lookup key by
// walking package segments then at most one class segment, returning the
// matched class symbol plus any remaining identifiers for structural
// (nested-member) resolution by the caller.
func (idx *Index) Scope() scope.Scope {
	return trieScope{idx}
}

type trieScope struct{ idx *Index }

func (s trieScope) Lookup(key ast.Name) (scope.LookupResult, bool) {
	n := s.idx.root
	for i, part := range key.Parts {
		child, ok := n.children[part.Name]
		if !ok {
			return scope.LookupResult{}, false
		}
		if child.isClass {
			return scope.LookupResult{Symbol: child.class, Remaining: key.Parts[i+1:]}, true
		}
		n = child
	}
	return scope.LookupResult{}, false
}

// LookupPackage returns a PackageScope listing every class declared
// directly in pkg, or ok=false if no such package node exists.
func (idx *Index) LookupPackage(pkg symbol.Package) (scope.PackageScope, bool) {
	n := idx.root
	if pkg != "" {
		for _, seg := range strings.Split(string(pkg), "/") {
			child, ok := n.children[seg]
			if !ok {
				return scope.PackageScope{}, false
			}
			n = child
		}
	}
	classes := make(map[string]symbol.Class)
	for name, child := range n.children {
		if child.isClass {
			classes[name] = child.class
		}
	}
	return scope.NewPackageScope(classes), true
}
