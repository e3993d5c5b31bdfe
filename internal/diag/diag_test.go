package diag

import "testing"

func TestDiagnosticFormat(t *testing.T) {
	d := New("A.java", Position{Line: 2, Column: 17}, CannotResolve, "cannot find symbol: %s", "NoSuch")
	d.WithSourceText("package a;\nclass A extends NoSuch {}\n")

	got := d.Format()
	want := "A.java:2: error: cannot find symbol: NoSuch\n" +
		"class A extends NoSuch {}\n" +
		"                ^"
	if got != want {
		t.Errorf("Format() =\n%q\nwant\n%q", got, want)
	}
}

func TestDiagnosticFormatWithoutSource(t *testing.T) {
	d := New("", Position{Line: 1, Column: 1}, SymbolNotFound, "no such class")
	got := d.Format()
	want := "<unknown>:1: error: no such class"
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestBagAccumulatesAndFails(t *testing.T) {
	var bag Bag
	if bag.HasErrors() {
		t.Fatal("empty bag reports errors")
	}

	bag.Errorf("A.java", Position{Line: 1, Column: 1}, CycleInClassHierarchy, "cycle in class hierarchy: A -> B -> A")
	bag.Errorf("A.java", Position{Line: 3, Column: 5}, DuplicateDeclaration, "duplicate class: A")

	if !bag.HasErrors() {
		t.Fatal("expected bag to have errors")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", bag.Len())
	}

	failure := bag.AsFailure()
	if failure == nil {
		t.Fatal("AsFailure() = nil for non-empty bag")
	}
	if len(failure.Diagnostics) != 2 {
		t.Fatalf("len(failure.Diagnostics) = %d, want 2", len(failure.Diagnostics))
	}
}

func TestEmptyBagAsFailureIsNil(t *testing.T) {
	var bag Bag
	if f := bag.AsFailure(); f != nil {
		t.Fatalf("AsFailure() = %v, want nil", f)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		SymbolNotFound:        "SYMBOL_NOT_FOUND",
		CycleInClassHierarchy: "CYCLE_IN_CLASS_HIERARCHY",
		NotRepeatable:         "NOT_REPEATABLE",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
