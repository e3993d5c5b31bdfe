package scope

import (
	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/symbol"
)

// FieldResolveFunction is member.go's field analogue of ResolveFunction:
// given a class and a simple name, returns the inherited-or-declared field
// symbol, with private members of on-demand static imports excluded at
// expansion time.
type FieldResolveFunction func(origin symbol.Class, owner symbol.Class, name string) (symbol.Field, bool)

// MemberImportIndex holds static member imports (constants) — both
// single-member (`import static a.b.C.X;`) and on-demand
// (`import static a.b.C.*;`) — keyed by simple name for the single form,
// probed in source order for the wildcard form.
type MemberImportIndex struct {
	base    Scope
	single  map[string]ast.Name // simple field name -> "a.b.C.X" qualified target
	wild    []ast.Name          // "a.b.C" class targets for "C.*"
	cells   map[string]*memberCell
	wildRes map[string]*importCell // memoized class-symbol resolution per wild target's class path
}

type memberCell struct {
	owner symbol.Class
	name  string
	ok    bool
	done  bool
}

// NewMemberImportIndex builds an empty MemberImportIndex. base resolves a
// target's class-qualified prefix.
func NewMemberImportIndex(base Scope) *MemberImportIndex {
	return &MemberImportIndex{
		base:    base,
		single:  make(map[string]ast.Name),
		cells:   make(map[string]*memberCell),
		wildRes: make(map[string]*importCell),
	}
}

// AddSingle records `import static target;` where target's last identifier
// is the field's simple name and the prefix names the declaring class.
func (m *MemberImportIndex) AddSingle(target ast.Name) bool {
	if len(target.Parts) < 2 {
		return false
	}
	name := target.Parts[len(target.Parts)-1].Name
	if _, exists := m.single[name]; exists {
		return false
	}
	m.single[name] = target
	return true
}

// AddWild records `import static target.*;` where target names a class
// whose static fields become visible by simple name, in source order.
func (m *MemberImportIndex) AddWild(target ast.Name) {
	m.wild = append(m.wild, target)
}

// Lookup resolves name to (declaring class, field simple name), trying
// single-member imports first, then on-demand imports in source order.
func (m *MemberImportIndex) Lookup(name string, resolveField FieldResolveFunction, resolveType ResolveFunction) (symbol.Class, string, bool) {
	if target, ok := m.single[name]; ok {
		cell, ok := m.cells[name]
		if !ok {
			cell = &memberCell{}
			m.cells[name] = cell
		}
		if !cell.done {
			cell.done = true
			classPath := ast.Name{Parts: target.Parts[:len(target.Parts)-1]}
			owner, ok := resolveQualified(classPath, m.base, resolveType)
			if ok {
				if f, ok := resolveField(owner, owner, name); ok {
					cell.owner, cell.name, cell.ok = f.Owner, f.Name, true
				}
			}
		}
		if cell.ok {
			return cell.owner, cell.name, true
		}
	}
	for _, target := range m.wild {
		key := wildKeyFor(target)
		cell, ok := m.wildRes[key]
		if !ok {
			cell = &importCell{}
			m.wildRes[key] = cell
		}
		if !cell.done {
			cell.sym, cell.ok = resolveQualified(target, m.base, resolveType)
			cell.done = true
		}
		if !cell.ok {
			continue
		}
		if f, ok := resolveField(cell.sym, cell.sym, name); ok {
			return f.Owner, f.Name, true
		}
	}
	return "", "", false
}

func wildKeyFor(target ast.Name) string {
	s := ""
	for _, p := range target.Parts {
		s += p.Name + "."
	}
	return s
}
