package binder

import (
	"strings"

	"github.com/cwbudde/jhdr/internal/ast"
	"github.com/cwbudde/jhdr/internal/classfile"
	"github.com/cwbudde/jhdr/internal/constant"
	"github.com/cwbudde/jhdr/internal/symbol"
	"github.com/cwbudde/jhdr/internal/types"
)

// Class file access flag bits this binder consults (JVMS §4.1/§4.5/§4.6).
const (
	accPublic    = 0x0001
	accPrivate   = 0x0002
	accProtected = 0x0004
	accStatic    = 0x0008
	accFinal     = 0x0010
	accInterface = 0x0200
	accAbstract  = 0x0400
	accEnum      = 0x4000
	accAnno      = 0x2000
)

func accessFlagsToMods(flags uint16) ast.Modifiers {
	var m ast.Modifiers
	if flags&accPublic != 0 {
		m |= ast.ModPublic
	}
	if flags&accPrivate != 0 {
		m |= ast.ModPrivate
	}
	if flags&accProtected != 0 {
		m |= ast.ModProtected
	}
	if flags&accStatic != 0 {
		m |= ast.ModStatic
	}
	if flags&accFinal != 0 {
		m |= ast.ModFinal
	}
	if flags&accAbstract != 0 {
		m |= ast.ModAbstract
	}
	return m
}

func classKindFromFlags(flags uint16) ast.Kind {
	switch {
	case flags&accAnno != 0:
		return ast.KindAnnotation
	case flags&accInterface != 0:
		return ast.KindInterface
	case flags&accEnum != 0:
		return ast.KindEnum
	default:
		return ast.KindClass
	}
}

// classpathEnv is a ClassEnv that lazily materializes a *BoundClass from a
// classfile.Reader, one class at a time, and memoizes the result — the
// binder-level analogue of Reader's own per-class memoization, but
// producing a BoundClass instead of a raw ClassFile. A classpath class
// arrives already complete: there is no staged hierarchy/signature/constant
// progression for it the way a source class has.
type classpathEnv struct {
	reader *classfile.Reader
	cache  map[symbol.Class]*BoundClass
}

func newClasspathEnv(r *classfile.Reader) *classpathEnv {
	return &classpathEnv{reader: r, cache: make(map[symbol.Class]*BoundClass)}
}

func (e *classpathEnv) Lookup(sym symbol.Class) (*BoundClass, bool) {
	if b, ok := e.cache[sym]; ok {
		return b, true
	}
	cf, ok := e.reader.Get(sym)
	if !ok {
		return nil, false
	}
	b := buildClasspathClass(sym, cf)
	e.cache[sym] = b
	return b, true
}

// buildClasspathClass converts one parsed class file into a complete
// BoundClass. Classpath classes never need a multi-phase promotion: every
// field they need to answer a lookup is already in the class file, so they
// start and stay at StageComplete.
func buildClasspathClass(sym symbol.Class, cf *classfile.ClassFile) *BoundClass {
	b := &BoundClass{
		Symbol:        sym,
		Stage:         StageComplete,
		Kind:          classKindFromFlags(cf.AccessFlags),
		Access:        accessFlagsToMods(cf.AccessFlags),
		Children:      map[string]symbol.Class{},
		TypeParams:    map[string]symbol.TypeVariable{},
		TypeParamInfo: map[symbol.TypeVariable]TypeParamInfo{},
		IsSource:      false,
	}
	if owner, ok := sym.Owner(); ok {
		b.Owner = owner
	}
	for _, ic := range cf.InnerClasses {
		if ic.OuterClass == string(sym) {
			b.Children[ic.SimpleName] = symbol.Class(ic.InnerClass)
		}
	}

	owner := symbol.ClassOwner(sym)
	if cf.Signature != "" {
		sig, err := classfile.ParseClassSignature(cf.Signature, sym)
		if err == nil {
			for _, tp := range sig.TypeParams {
				b.TypeParamNames = append(b.TypeParamNames, tp.Var.Name)
				b.TypeParams[tp.Var.Name] = tp.Var
				b.TypeParamInfo[tp.Var] = TypeParamInfo{Bound: boundsToType(tp.Bounds)}
			}
			b.SuperType = sig.Super
			b.RawSuper = sig.Super.ClassSymbol()
			b.InterfaceTypes = sig.Interfaces
			for _, it := range sig.Interfaces {
				b.RawInterfaces = append(b.RawInterfaces, it.ClassSymbol())
			}
		}
	}
	if b.SuperType.Tag() == types.TagPrim && cf.SuperClass != "" {
		// No (or unparseable) Signature attribute: fall back to the raw,
		// non-generic super/interfaces named directly in the class file.
		b.RawSuper = symbol.Class(cf.SuperClass)
		b.SuperType = types.NewSimpleClass(b.RawSuper)
		for _, i := range cf.Interfaces {
			isym := symbol.Class(i)
			b.RawInterfaces = append(b.RawInterfaces, isym)
			b.InterfaceTypes = append(b.InterfaceTypes, types.NewSimpleClass(isym))
		}
	}

	nameCounts := map[string]int{}
	for _, fi := range cf.Fields {
		ft, err := fieldType(fi, owner)
		if err != nil {
			continue
		}
		bf := &BoundField{
			Symbol: symbol.Field{Owner: sym, Name: fi.Name},
			Type:   ft,
			Access: accessFlagsToMods(fi.AccessFlags),
			Annos:  convertAnnotations(fi.Annotations),
		}
		if fi.ConstValue != nil {
			if v, ok := rawConstantToValue(fi.ConstValue, ft); ok {
				bf.Constant = &v
			}
		}
		b.Fields = append(b.Fields, bf)
	}
	for _, mi := range cf.Methods {
		idx := nameCounts[mi.Name]
		nameCounts[mi.Name]++
		msym := symbol.Method{Owner: sym, Name: mi.Name, Index: idx}
		sig, err := methodSignature(mi, msym)
		if err != nil {
			continue
		}
		bm := &BoundMethod{
			Symbol: msym,
			Return: sig.Return,
			Params: sig.Params,
			Thrown: sig.Thrown,
			Access: accessFlagsToMods(mi.AccessFlags),
			Annos:  convertAnnotations(mi.Annotations),
		}
		for _, tp := range sig.TypeParams {
			bm.TypeParams = append(bm.TypeParams, tp.Var)
		}
		if mi.AnnotationDefault != nil {
			if v, ok := rawConstantToValue(mi.AnnotationDefault, sig.Return); ok {
				bm.DefaultValue = &v
			}
		}
		b.Methods = append(b.Methods, bm)
	}
	b.Annos = convertAnnotations(cf.Annotations)
	if b.Kind == ast.KindAnnotation {
		b.AnnotationMeta = deriveAnnotationMeta(b.Annos)
	}
	return b
}

func boundsToType(bounds []types.Type) types.Type {
	if len(bounds) == 0 {
		return types.NewSimpleClass(symbol.Class("java/lang/Object"))
	}
	if len(bounds) == 1 {
		return bounds[0]
	}
	return types.NewIntersection(bounds...)
}

func fieldType(fi classfile.FieldInfo, owner symbol.Owner) (types.Type, error) {
	if fi.Signature != "" {
		if t, err := classfile.ParseFieldSignature(fi.Signature, owner); err == nil {
			return t, nil
		}
	}
	return classfile.ParseDescriptor(fi.Descriptor, owner)
}

func methodSignature(mi classfile.MethodInfo, msym symbol.Method) (classfile.MethodSig, error) {
	if mi.Signature != "" {
		if sig, err := classfile.ParseMethodSignature(mi.Signature, msym); err == nil {
			return sig, nil
		}
	}
	return classfile.ParseMethodDescriptor(mi.Descriptor, msym)
}

// rawConstantToValue narrows a class file's raw ConstantValue attribute
// payload to target's primitive/String kind. JVMS stores boolean, byte,
// short, and char constants as a plain int entry, so the narrowing the
// source-side constant evaluator does via Coerce happens here too.
func rawConstantToValue(rc *classfile.RawConstant, target types.Type) (constant.Value, bool) {
	v, ok := rawConstantToValueUntyped(rc)
	if !ok {
		return v, false
	}
	if v.Kind() == constant.KindInt && target.Tag() == types.TagPrim {
		if c, err := constant.Coerce(v, target.Prim()); err == nil {
			return c, true
		}
	}
	return v, true
}

// rawConstantToValueUntyped converts a raw constant pool payload straight to
// its widened kind, with no narrowing: boolean/byte/short/char all surface
// as KindInt, since the class file format's ConstantValue and annotation
// element_value encodings both erase that distinction on write (JVMS §4.7.2,
// §4.7.16.1). An annotation element's value is left this way rather than
// narrowed against its declared element type; unlike a source annotation
// occurrence, a classpath one is never run back through the element-type
// check the source-side annotation phase performs.
func rawConstantToValueUntyped(rc *classfile.RawConstant) (constant.Value, bool) {
	switch rc.Kind {
	case classfile.RawInt:
		return constant.NewInt(rc.Int), true
	case classfile.RawLong:
		return constant.NewLong(rc.Long), true
	case classfile.RawFloat:
		return constant.NewFloat(rc.Float), true
	case classfile.RawDouble:
		return constant.NewDouble(rc.Double), true
	case classfile.RawString:
		return constant.NewString(rc.Str), true
	default:
		return constant.Value{}, false
	}
}

// convertAnnotations converts a class file's raw annotation occurrences into
// bound AnnotationInfo values. A classpath annotation's arguments are
// already guaranteed complete and well-typed by the compiler that produced
// the class file, so this is a direct structural conversion with no
// re-validation against the annotation's own element declarations.
func convertAnnotations(ras []classfile.RawAnnotation) []AnnotationInfo {
	var out []AnnotationInfo
	for _, ra := range ras {
		out = append(out, convertAnnotation(ra))
	}
	return out
}

func convertAnnotation(ra classfile.RawAnnotation) AnnotationInfo {
	info := AnnotationInfo{
		Symbol:   descriptorToClass(ra.TypeDescriptor),
		Elements: map[string]constant.Value{},
	}
	for _, pair := range ra.Elements {
		v, ok := convertElementValue(pair.Value)
		if !ok {
			continue
		}
		info.ElementOrder = append(info.ElementOrder, pair.Name)
		info.Elements[pair.Name] = v
	}
	return info
}

func convertElementValue(ev classfile.RawElementValue) (constant.Value, bool) {
	switch ev.Tag {
	case classfile.ElemConst:
		if ev.Const == nil {
			return constant.Value{}, false
		}
		return rawConstantToValueUntyped(ev.Const)
	case classfile.ElemEnum:
		return constant.NewEnumConstant(symbol.Field{
			Owner: descriptorToClass(ev.EnumType),
			Name:  ev.EnumConst,
		}), true
	case classfile.ElemClass:
		return constant.NewClassLiteral(descriptorToType(ev.ClassInfo)), true
	case classfile.ElemAnnotation:
		if ev.Annotation == nil {
			return constant.Value{}, false
		}
		nested := convertAnnotation(*ev.Annotation)
		return constant.NewAnnotationValue(constant.AnnotationValue{
			Type:     types.NewSimpleClass(nested.Symbol),
			Elements: nested.Elements,
		}), true
	case classfile.ElemArray:
		elems := make([]constant.Value, 0, len(ev.ArrayValues))
		for _, e := range ev.ArrayValues {
			v, ok := convertElementValue(e)
			if !ok {
				continue
			}
			elems = append(elems, v)
		}
		return constant.NewArray(elems), true
	default:
		return constant.Value{}, false
	}
}

// descriptorToClass strips a class descriptor's leading 'L' and trailing
// ';', or treats the string as already a bare binary name if they are
// absent.
func descriptorToClass(desc string) symbol.Class {
	if strings.HasPrefix(desc, "L") && strings.HasSuffix(desc, ";") {
		return symbol.Class(desc[1 : len(desc)-1])
	}
	return symbol.Class(desc)
}

func descriptorToType(desc string) types.Type {
	if strings.HasPrefix(desc, "[") {
		t, err := classfile.ParseDescriptor(desc, symbol.Owner{})
		if err == nil {
			return t
		}
	}
	return types.NewSimpleClass(descriptorToClass(desc))
}
