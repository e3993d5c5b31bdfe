package diag

import (
	"fmt"
	"strings"
)

// Diagnostic is a single positional error: a source file, a position, a
// taxonomy kind, a formatted message, and (when the source text is
// available) the context line the message's caret points into.
type Diagnostic struct {
	Source  string // source file path, "" for a synthesized tree
	Pos     Position
	Kind    Kind
	Message string

	sourceText string // full text of Source, used to render the caret line
}

// WithSourceText attaches the source file's full text so Format can render
// the offending line with a caret under Pos.Column. Returns the receiver for
// chaining at construction time.
func (d *Diagnostic) WithSourceText(text string) *Diagnostic {
	d.sourceText = text
	return d
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return d.Format()
}

// Format renders "<sourceFile>:<line>: error: <message>" followed by the
// source line and a caret line pointing at the column, javac's familiar
// diagnostic rendering.
func (d *Diagnostic) Format() string {
	var sb strings.Builder

	file := d.Source
	if file == "" {
		file = "<unknown>"
	}
	fmt.Fprintf(&sb, "%s:%d: error: %s", file, d.Pos.Line, d.Message)

	if line := d.sourceLine(); line != "" {
		sb.WriteString("\n")
		sb.WriteString(line)
		sb.WriteString("\n")
		col := d.Pos.Column
		if col < 1 {
			col = 1
		}
		sb.WriteString(strings.Repeat(" ", col-1))
		sb.WriteString("^")
	}

	return sb.String()
}

func (d *Diagnostic) sourceLine() string {
	if d.sourceText == "" || d.Pos.Line < 1 {
		return ""
	}
	lines := strings.Split(d.sourceText, "\n")
	if d.Pos.Line > len(lines) {
		return ""
	}
	return lines[d.Pos.Line-1]
}

// New constructs a Diagnostic at pos with the given kind, formatting message
// from format/args the way fmt.Sprintf would.
func New(source string, pos Position, kind Kind, format string, args ...any) *Diagnostic {
	return &Diagnostic{
		Source:  source,
		Pos:     pos,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Bag accumulates diagnostics over the course of a phase. It is not
// thread-safe — the binder is single-threaded by design.
type Bag struct {
	diagnostics []*Diagnostic
}

// Add appends a diagnostic to the bag.
func (b *Bag) Add(d *Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
}

// Errorf constructs and appends a diagnostic in one call.
func (b *Bag) Errorf(source string, pos Position, kind Kind, format string, args ...any) {
	b.Add(New(source, pos, kind, format, args...))
}

// HasErrors reports whether any diagnostic has been collected.
func (b *Bag) HasErrors() bool {
	return len(b.diagnostics) > 0
}

// Diagnostics returns the accumulated diagnostics in insertion order.
func (b *Bag) Diagnostics() []*Diagnostic {
	return b.diagnostics
}

// Len returns the number of accumulated diagnostics.
func (b *Bag) Len() int {
	return len(b.diagnostics)
}

// Failure is the bundled, multi-error failure raised when a phase ends with
// a non-empty bag: every collected diagnostic is raised together as one
// composite failure. Later phases must not run once a Failure has been
// produced.
type Failure struct {
	Diagnostics []*Diagnostic
}

// Error implements the error interface, joining every diagnostic's Format
// with the platform line separator.
func (f *Failure) Error() string {
	parts := make([]string, len(f.Diagnostics))
	for i, d := range f.Diagnostics {
		parts[i] = d.Format()
	}
	return strings.Join(parts, lineSeparator)
}

// AsFailure returns a *Failure wrapping the bag's diagnostics, or nil if the
// bag is empty. Intended to be called at phase end.
func (b *Bag) AsFailure() *Failure {
	if !b.HasErrors() {
		return nil
	}
	return &Failure{Diagnostics: append([]*Diagnostic(nil), b.diagnostics...)}
}
