package classfile

import (
	"archive/zip"
	"fmt"
	"strings"

	"github.com/cwbudde/jhdr/internal/symbol"
)

// IOError reports that a classpath archive itself could not be opened or
// indexed — distinct from an unreadable individual class file, which is
// silently treated as absent. The two failure modes are deliberately kept
// separate rather than generalized into one.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// Archive indexes one classpath entry (a zip/jar file) eagerly enough to
// know its class symbols and resource offsets, deferring the actual parse
// of any class until its bound view is requested.
type Archive struct {
	path    string
	zr      *zip.ReadCloser
	entries map[symbol.Class]*zip.File
}

// OpenArchive indexes path's class entries. It fails with *IOError if path
// is not a valid archive.
func OpenArchive(path string) (*Archive, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, &IOError{Path: path, Err: err}
	}
	a := &Archive{path: path, zr: zr, entries: make(map[symbol.Class]*zip.File)}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		name := strings.TrimSuffix(f.Name, ".class")
		a.entries[symbol.Class(name)] = f
	}
	return a, nil
}

// Path returns the archive's file system path.
func (a *Archive) Path() string { return a.path }

// ClassNames returns every class symbol this archive can materialize, in
// no particular order.
func (a *Archive) ClassNames() []symbol.Class {
	names := make([]symbol.Class, 0, len(a.entries))
	for name := range a.entries {
		names = append(names, name)
	}
	return names
}

// Has reports whether name is indexed in this archive, without reading it.
func (a *Archive) Has(name symbol.Class) bool {
	_, ok := a.entries[name]
	return ok
}

// read opens and parses one class entry. ok is false when the entry is
// missing or unreadable/unparseable, which makes the class simply absent,
// not a classpath-wide failure.
func (a *Archive) read(name symbol.Class) (*ClassFile, bool) {
	f, ok := a.entries[name]
	if !ok {
		return nil, false
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false
	}
	defer rc.Close()
	cf, err := Parse(rc)
	if err != nil {
		return nil, false
	}
	return cf, true
}

// Close releases the archive's file handle.
func (a *Archive) Close() error {
	if a.zr == nil {
		return nil
	}
	return a.zr.Close()
}

// cell is a memoizing slot for one class's materialized form. A cell whose
// done is true and cf is nil records a failed/absent lookup and is not
// retried.
type cell struct {
	cf   *ClassFile
	done bool
}

// Reader answers "given a class symbol, give me its parsed class file" by
// scanning a fixed, ordered list of archives and memoizing the result.
// First occurrence across the archive list wins.
type Reader struct {
	archives []*Archive
	cache    map[symbol.Class]*cell
}

// NewReader builds a Reader over archives, probed in the given order.
func NewReader(archives []*Archive) *Reader {
	return &Reader{archives: archives, cache: make(map[symbol.Class]*cell)}
}

// Get returns name's parsed class file, or (nil, false) if no archive in
// this Reader carries a readable class of that name.
func (r *Reader) Get(name symbol.Class) (*ClassFile, bool) {
	if c, ok := r.cache[name]; ok {
		return c.cf, c.cf != nil
	}
	for _, a := range r.archives {
		if cf, ok := a.read(name); ok {
			r.cache[name] = &cell{cf: cf, done: true}
			return cf, true
		}
	}
	r.cache[name] = &cell{done: true}
	return nil, false
}

// ClassNames returns the union of class symbols reachable across all
// archives in this Reader, used to seed the top-level index.
func (r *Reader) ClassNames() []symbol.Class {
	seen := make(map[symbol.Class]bool)
	var out []symbol.Class
	for _, a := range r.archives {
		for _, n := range a.ClassNames() {
			if !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	return out
}

// Close closes every archive in this Reader, collecting the first error but
// closing all of them regardless.
func (r *Reader) Close() error {
	var first error
	for _, a := range r.archives {
		if err := a.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
