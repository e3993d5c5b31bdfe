// Package symbol defines stable identity handles for packages, classes,
// methods, fields, parameters, type variables, and modules. Symbols are
// value-equal by their identifying strings; they carry no state of their
// own — all state lives in the binder's BoundClass records, indexed by
// symbol.
package symbol

import "fmt"

// Package is a slash-delimited qualified package name. The empty string
// denotes the unnamed package. Identity is by string.
type Package string

// Class is a binary class name of the form "pkg/Outer$Inner$Leaf". Identity
// is by string; a Class carries no state.
type Class string

// Simple returns the class's simple (unqualified, non-nested) name: the
// segment after the last '/' and the last '$'.
func (c Class) Simple() string {
	s := string(c)
	if i := lastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	if i := lastIndexByte(s, '$'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// PackageOf returns the Package this class is declared in, derived from the
// portion of the binary name before the last '/'.
func (c Class) PackageOf() Package {
	s := string(c)
	if i := lastIndexByte(s, '/'); i >= 0 {
		return Package(s[:i])
	}
	return Package("")
}

// Owner returns the binary name of the class's immediately enclosing class,
// or ("", false) if c names a top-level class.
func (c Class) Owner() (Class, bool) {
	s := string(c)
	if i := lastIndexByte(s, '$'); i >= 0 {
		return Class(s[:i]), true
	}
	return Class(""), false
}

func lastIndexByte(s string, b byte) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// Method identifies a method by its owning class, its name, and a
// declaration index distinguishing overloads before signatures are bound.
type Method struct {
	Owner Class
	Name  string
	Index int
}

// String renders "pkg/Class#name$index".
func (m Method) String() string {
	return fmt.Sprintf("%s#%s$%d", m.Owner, m.Name, m.Index)
}

// Field identifies a field by its owning class and name.
type Field struct {
	Owner Class
	Name  string
}

// String renders "pkg/Class.name".
func (f Field) String() string {
	return fmt.Sprintf("%s.%s", f.Owner, f.Name)
}

// Parameter identifies a method parameter by its owning method and name.
type Parameter struct {
	Owner Method
	Name  string
}

// Owner is a class or a method — whichever declares a type variable.
// Represented as a closed sum via a tag rather than an interface, since
// only two shapes exist and an interface would force heap allocation for a
// value that is otherwise just two strings.
type Owner struct {
	Class    Class  // valid when IsMethod is false
	Method   Method // valid when IsMethod is true
	IsMethod bool
}

// ClassOwner constructs an Owner for a class-declared type variable.
func ClassOwner(c Class) Owner { return Owner{Class: c} }

// MethodOwner constructs an Owner for a method-declared type variable.
func MethodOwner(m Method) Owner { return Owner{Method: m, IsMethod: true} }

// String renders the owner's identity.
func (o Owner) String() string {
	if o.IsMethod {
		return o.Method.String()
	}
	return string(o.Class)
}

// TypeVariable identifies a type parameter by its owner (class or method)
// and its name.
type TypeVariable struct {
	Owner Owner
	Name  string
}

// String renders "owner#T".
func (t TypeVariable) String() string {
	return fmt.Sprintf("%s#%s", t.Owner, t.Name)
}

// Module identifies a module by name.
type Module string
