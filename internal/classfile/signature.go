package classfile

import (
	"fmt"
	"strings"

	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

// Signature strings in binary form are parsed into the Type IR by this
// dedicated recursive-descent parser over the JVM generic-signature grammar:
// class-signature, method-signature, type-signature with wildcards, bounded
// type parameters, array dimensions.
type sigParser struct {
	s     string
	pos   int
	owner symbol.Owner
}

// TypeParamSig is one formal type parameter parsed from a class or method
// signature: its name and declared bounds (class bound first, then
// interface bounds, matching source declaration order).
type TypeParamSig struct {
	Var    symbol.TypeVariable
	Bounds []types.Type // as written in the signature; no implicit Object bound is added
}

// ClassSig is the parsed shape of a class's Signature attribute.
type ClassSig struct {
	TypeParams []TypeParamSig
	Super      types.Type
	Interfaces []types.Type
}

// MethodSig is the parsed shape of a method's Signature attribute.
type MethodSig struct {
	TypeParams []TypeParamSig
	Params     []types.Type
	Return     types.Type
	Thrown     []types.Type
}

func (p *sigParser) peek() byte {
	if p.pos >= len(p.s) {
		return 0
	}
	return p.s[p.pos]
}

func (p *sigParser) next() byte {
	c := p.peek()
	p.pos++
	return c
}

func (p *sigParser) expect(c byte) error {
	if p.peek() != c {
		return fmt.Errorf("signature %q: expected %q at offset %d, got %q", p.s, c, p.pos, p.peek())
	}
	p.pos++
	return nil
}

func (p *sigParser) identifier() string {
	start := p.pos
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == ';' || c == '.' || c == '<' || c == '>' || c == '/' || c == ':' {
			break
		}
		p.pos++
	}
	return p.s[start:p.pos]
}

// ParseClassSignature parses a class's Signature attribute value.
func ParseClassSignature(sig string, owner symbol.Class) (ClassSig, error) {
	p := &sigParser{s: sig, owner: symbol.ClassOwner(owner)}
	var out ClassSig
	var err error
	if p.peek() == '<' {
		out.TypeParams, err = p.typeParams()
		if err != nil {
			return out, err
		}
	}
	out.Super, err = p.classTypeSignature()
	if err != nil {
		return out, fmt.Errorf("superclass: %w", err)
	}
	for p.pos < len(p.s) {
		iface, err := p.classTypeSignature()
		if err != nil {
			return out, fmt.Errorf("interface: %w", err)
		}
		out.Interfaces = append(out.Interfaces, iface)
	}
	return out, nil
}

// ParseMethodSignature parses a method's Signature attribute value.
func ParseMethodSignature(sig string, owner symbol.Method) (MethodSig, error) {
	p := &sigParser{s: sig, owner: symbol.MethodOwner(owner)}
	var out MethodSig
	var err error
	if p.peek() == '<' {
		out.TypeParams, err = p.typeParams()
		if err != nil {
			return out, err
		}
	}
	if err := p.expect('('); err != nil {
		return out, err
	}
	for p.peek() != ')' {
		t, err := p.typeSignature()
		if err != nil {
			return out, fmt.Errorf("parameter: %w", err)
		}
		out.Params = append(out.Params, t)
	}
	if err := p.expect(')'); err != nil {
		return out, err
	}
	if p.peek() == 'V' {
		p.pos++
		out.Return = types.Void
	} else {
		out.Return, err = p.typeSignature()
		if err != nil {
			return out, fmt.Errorf("return type: %w", err)
		}
	}
	for p.peek() == '^' {
		p.pos++
		var th types.Type
		if p.peek() == 'T' {
			th, err = p.typeVariableSignature()
		} else {
			th, err = p.classTypeSignature()
		}
		if err != nil {
			return out, fmt.Errorf("throws: %w", err)
		}
		out.Thrown = append(out.Thrown, th)
	}
	return out, nil
}

// ParseFieldSignature parses a field's Signature attribute value: any
// FieldTypeSignature (class, array, or type variable — never a primitive).
func ParseFieldSignature(sig string, owner symbol.Owner) (types.Type, error) {
	p := &sigParser{s: sig, owner: owner}
	return p.fieldTypeSignature()
}

// ParseDescriptor parses a plain field descriptor ("I", "[I",
// "Ljava/lang/String;") for a member that carries no generic Signature
// attribute. Descriptors are a subset of the FieldTypeSignature grammar plus
// the primitive letters, so this is typeSignature with its own sigParser.
func ParseDescriptor(desc string, owner symbol.Owner) (types.Type, error) {
	p := &sigParser{s: desc, owner: owner}
	t, err := p.typeSignature()
	if err != nil {
		return types.Type{}, err
	}
	if p.pos != len(p.s) {
		return types.Type{}, fmt.Errorf("descriptor %q: trailing data at offset %d", desc, p.pos)
	}
	return t, nil
}

// ParseMethodDescriptor parses a plain method descriptor
// ("(ILjava/lang/String;)V") for a method that carries no generic Signature
// attribute.
func ParseMethodDescriptor(desc string, owner symbol.Method) (MethodSig, error) {
	p := &sigParser{s: desc, owner: symbol.MethodOwner(owner)}
	var out MethodSig
	if err := p.expect('('); err != nil {
		return out, err
	}
	for p.peek() != ')' {
		t, err := p.typeSignature()
		if err != nil {
			return out, fmt.Errorf("parameter: %w", err)
		}
		out.Params = append(out.Params, t)
	}
	if err := p.expect(')'); err != nil {
		return out, err
	}
	if p.peek() == 'V' {
		p.pos++
		out.Return = types.Void
		return out, nil
	}
	t, err := p.typeSignature()
	if err != nil {
		return out, fmt.Errorf("return type: %w", err)
	}
	out.Return = t
	return out, nil
}

func (p *sigParser) typeParams() ([]TypeParamSig, error) {
	if err := p.expect('<'); err != nil {
		return nil, err
	}
	var out []TypeParamSig
	for p.peek() != '>' {
		name := p.identifier()
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		tv := TypeParamSig{Var: symbol.TypeVariable{Owner: p.owner, Name: name}}
		if p.peek() != ':' && p.peek() != '>' && p.peek() != 0 {
			b, err := p.fieldTypeSignature()
			if err != nil {
				return nil, fmt.Errorf("class bound of %s: %w", name, err)
			}
			tv.Bounds = append(tv.Bounds, b)
		}
		for p.peek() == ':' {
			p.pos++
			b, err := p.fieldTypeSignature()
			if err != nil {
				return nil, fmt.Errorf("interface bound of %s: %w", name, err)
			}
			tv.Bounds = append(tv.Bounds, b)
		}
		out = append(out, tv)
	}
	if err := p.expect('>'); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *sigParser) typeSignature() (types.Type, error) {
	switch p.peek() {
	case 'B':
		p.pos++
		return types.NewPrim(types.PrimByte), nil
	case 'C':
		p.pos++
		return types.NewPrim(types.PrimChar), nil
	case 'D':
		p.pos++
		return types.NewPrim(types.PrimDouble), nil
	case 'F':
		p.pos++
		return types.NewPrim(types.PrimFloat), nil
	case 'I':
		p.pos++
		return types.NewPrim(types.PrimInt), nil
	case 'J':
		p.pos++
		return types.NewPrim(types.PrimLong), nil
	case 'S':
		p.pos++
		return types.NewPrim(types.PrimShort), nil
	case 'Z':
		p.pos++
		return types.NewPrim(types.PrimBoolean), nil
	default:
		return p.fieldTypeSignature()
	}
}

func (p *sigParser) fieldTypeSignature() (types.Type, error) {
	switch p.peek() {
	case 'L':
		return p.classTypeSignature()
	case '[':
		p.pos++
		elem, err := p.typeSignature()
		if err != nil {
			return types.Type{}, fmt.Errorf("array element: %w", err)
		}
		return types.NewArray(elem), nil
	case 'T':
		return p.typeVariableSignature()
	default:
		return types.Type{}, fmt.Errorf("signature %q: unexpected field type start %q at %d", p.s, p.peek(), p.pos)
	}
}

func (p *sigParser) typeVariableSignature() (types.Type, error) {
	if err := p.expect('T'); err != nil {
		return types.Type{}, err
	}
	name := p.identifier()
	if err := p.expect(';'); err != nil {
		return types.Type{}, err
	}
	return types.NewTypeVar(symbol.TypeVariable{Owner: p.owner, Name: name}), nil
}

// classTypeSignature parses "L pkg/Outer<Args>.Inner<Args>;" into the
// outer→inner SimpleClassTy chain spec.md §4.1 requires.
func (p *sigParser) classTypeSignature() (types.Type, error) {
	if err := p.expect('L'); err != nil {
		return types.Type{}, err
	}
	var pathParts []string
	for {
		part := p.identifier()
		pathParts = append(pathParts, part)
		if p.peek() == '/' {
			p.pos++
			continue
		}
		break
	}
	binaryName := strings.Join(pathParts, "/")

	var chain []types.SimpleClassTy
	args, err := p.maybeTypeArguments()
	if err != nil {
		return types.Type{}, err
	}
	chain = append(chain, types.SimpleClassTy{Sym: symbol.Class(binaryName), TypeArgs: args})

	for p.peek() == '.' {
		p.pos++
		inner := p.identifier()
		innerArgs, err := p.maybeTypeArguments()
		if err != nil {
			return types.Type{}, err
		}
		binaryName = binaryName + "$" + inner
		chain = append(chain, types.SimpleClassTy{Sym: symbol.Class(binaryName), TypeArgs: innerArgs})
	}
	if err := p.expect(';'); err != nil {
		return types.Type{}, err
	}
	return types.NewClass(chain), nil
}

func (p *sigParser) maybeTypeArguments() ([]types.Type, error) {
	if p.peek() != '<' {
		return nil, nil
	}
	p.pos++
	var args []types.Type
	for p.peek() != '>' {
		arg, err := p.typeArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.pos++
	return args, nil
}

func (p *sigParser) typeArgument() (types.Type, error) {
	switch p.peek() {
	case '*':
		p.pos++
		return types.NewWildcard(types.WildNone, nil), nil
	case '+':
		p.pos++
		b, err := p.fieldTypeSignature()
		if err != nil {
			return types.Type{}, err
		}
		return types.NewWildcard(types.WildUpper, &b), nil
	case '-':
		p.pos++
		b, err := p.fieldTypeSignature()
		if err != nil {
			return types.Type{}, err
		}
		return types.NewWildcard(types.WildLower, &b), nil
	default:
		return p.fieldTypeSignature()
	}
}
