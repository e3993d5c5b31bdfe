package classfile

import "fmt"

func readPool(br *byteReader) (*pool, error) {
	count := br.u2()
	p := &pool{entries: make([]cpEntry, count)}
	for i := 1; i < int(count); i++ {
		t := tag(br.u1())
		var e cpEntry
		e.tag = t
		switch t {
		case tagUtf8:
			n := br.u2()
			e.utf8 = string(br.bytes(int(n)))
		case tagInteger:
			e.intVal = int32(br.u4())
		case tagFloat:
			bits := br.u4()
			e.floatVal = float32FromBits(bits)
		case tagLong:
			e.longVal = int64(br.u8())
		case tagDouble:
			bits := br.u8()
			e.doubleVal = float64FromBits(bits)
		case tagClass, tagMethodType, tagModule, tagPackage:
			e.nameIdx = int(br.u2())
		case tagString:
			e.nameIdx = int(br.u2())
		case tagFieldref, tagMethodref, tagInterfaceMethodref:
			e.classIdx = int(br.u2())
			e.nameAndTypeIdx = int(br.u2())
		case tagNameAndType:
			e.nameIdx = int(br.u2())
			e.descIdx = int(br.u2())
		case tagMethodHandle:
			br.u1()
			br.u2()
		case tagInvokeDynamic:
			br.u2()
			br.u2()
		default:
			if br.err == nil {
				br.err = fmt.Errorf("unknown constant pool tag %d at index %d", t, i)
			}
		}
		p.entries[i] = e
		if t == tagLong || t == tagDouble {
			// Long/Double occupy two pool slots per the class file format.
			i++
		}
	}
	if br.err != nil {
		return nil, br.err
	}
	return p, nil
}

func readMember(br *byteReader, cp *pool, isField bool) (any, error) {
	accessFlags := br.u2()
	nameIdx := br.u2()
	descIdx := br.u2()
	name, err := cp.utf8(int(nameIdx))
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	desc, err := cp.utf8(int(descIdx))
	if err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}

	var fi FieldInfo
	var mi MethodInfo
	if isField {
		fi = FieldInfo{AccessFlags: accessFlags, Name: name, Descriptor: desc}
	} else {
		mi = MethodInfo{AccessFlags: accessFlags, Name: name, Descriptor: desc}
	}

	attrCount := br.u2()
	for i := 0; i < int(attrCount); i++ {
		attrNameIdx := br.u2()
		attrLen := br.u4()
		attrName, err := cp.utf8(int(attrNameIdx))
		if err != nil {
			return nil, fmt.Errorf("attribute name: %w", err)
		}
		switch attrName {
		case "ConstantValue":
			idx := br.u2()
			if isField {
				fi.ConstValue, err = readConstantValue(cp, int(idx), fi.Descriptor)
			}
		case "Signature":
			idx := br.u2()
			sig, e := cp.utf8(int(idx))
			err = e
			if isField {
				fi.Signature = sig
			} else {
				mi.Signature = sig
			}
		case "Exceptions":
			n := br.u2()
			for j := 0; j < int(n); j++ {
				idx := br.u2()
				cn, e := cp.className(int(idx))
				if e != nil {
					err = e
					break
				}
				mi.Exceptions = append(mi.Exceptions, cn)
			}
		case "RuntimeVisibleAnnotations":
			var annos []RawAnnotation
			annos, err = readAnnotations(br, cp)
			if isField {
				fi.Annotations = annos
			} else {
				mi.Annotations = annos
			}
		case "RuntimeVisibleParameterAnnotations":
			if !isField {
				mi.ParamAnnotations, err = readParamAnnotations(br, cp)
			}
		case "AnnotationDefault":
			var ev RawElementValue
			ev, err = readElementValue(br, cp)
			if !isField {
				mi.AnnotationDefault = ev.Const
			}
		case "Deprecated":
			if isField {
				fi.Deprecated = true
			} else {
				mi.Deprecated = true
			}
		default:
			br.bytes(int(attrLen))
		}
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", attrName, err)
		}
	}
	if br.err != nil {
		return nil, br.err
	}
	if isField {
		return fi, nil
	}
	return mi, nil
}

func readClassAttribute(br *byteReader, cp *pool, cf *ClassFile) error {
	nameIdx := br.u2()
	attrLen := br.u4()
	attrName, err := cp.utf8(int(nameIdx))
	if err != nil {
		return err
	}
	switch attrName {
	case "Signature":
		idx := br.u2()
		cf.Signature, err = cp.utf8(int(idx))
	case "RuntimeVisibleAnnotations":
		cf.Annotations, err = readAnnotations(br, cp)
	case "InnerClasses":
		n := br.u2()
		for i := 0; i < int(n); i++ {
			innerIdx := br.u2()
			outerIdx := br.u2()
			nameIdxInner := br.u2()
			flags := br.u2()
			var entry InnerClassEntry
			entry.InnerClass, err = cp.className(int(innerIdx))
			if err != nil {
				return fmt.Errorf("inner class %d: %w", i, err)
			}
			if outerIdx != 0 {
				entry.OuterClass, err = cp.className(int(outerIdx))
				if err != nil {
					return fmt.Errorf("inner class %d outer: %w", i, err)
				}
			}
			if nameIdxInner != 0 {
				entry.SimpleName, err = cp.utf8(int(nameIdxInner))
				if err != nil {
					return fmt.Errorf("inner class %d name: %w", i, err)
				}
			}
			entry.AccessFlags = flags
			cf.InnerClasses = append(cf.InnerClasses, entry)
		}
	case "Deprecated":
		cf.Deprecated = true
	default:
		br.bytes(int(attrLen))
	}
	if err != nil {
		return fmt.Errorf("%s: %w", attrName, err)
	}
	return br.err
}

func readConstantValue(cp *pool, idx int, descriptor string) (*RawConstant, error) {
	e, err := cp.get(idx)
	if err != nil {
		return nil, err
	}
	switch e.tag {
	case tagInteger:
		return &RawConstant{Kind: RawInt, Int: e.intVal}, nil
	case tagLong:
		return &RawConstant{Kind: RawLong, Long: e.longVal}, nil
	case tagFloat:
		return &RawConstant{Kind: RawFloat, Float: e.floatVal}, nil
	case tagDouble:
		return &RawConstant{Kind: RawDouble, Double: e.doubleVal}, nil
	case tagString:
		s, err := cp.utf8(e.nameIdx)
		if err != nil {
			return nil, err
		}
		return &RawConstant{Kind: RawString, Str: s}, nil
	default:
		return nil, fmt.Errorf("ConstantValue points at unexpected constant pool tag %d", e.tag)
	}
}

func readAnnotations(br *byteReader, cp *pool) ([]RawAnnotation, error) {
	n := br.u2()
	annos := make([]RawAnnotation, 0, n)
	for i := 0; i < int(n); i++ {
		a, err := readAnnotation(br, cp)
		if err != nil {
			return nil, fmt.Errorf("annotation %d: %w", i, err)
		}
		annos = append(annos, a)
	}
	return annos, br.err
}

func readParamAnnotations(br *byteReader, cp *pool) (map[int][]RawAnnotation, error) {
	numParams := br.u1()
	result := make(map[int][]RawAnnotation, numParams)
	for p := 0; p < int(numParams); p++ {
		annos, err := readAnnotations(br, cp)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", p, err)
		}
		if len(annos) > 0 {
			result[p] = annos
		}
	}
	return result, br.err
}

func readAnnotation(br *byteReader, cp *pool) (RawAnnotation, error) {
	typeIdx := br.u2()
	typeDesc, err := cp.utf8(int(typeIdx))
	if err != nil {
		return RawAnnotation{}, err
	}
	pairCount := br.u2()
	a := RawAnnotation{TypeDescriptor: typeDesc}
	for i := 0; i < int(pairCount); i++ {
		nameIdx := br.u2()
		name, err := cp.utf8(int(nameIdx))
		if err != nil {
			return RawAnnotation{}, fmt.Errorf("element %d name: %w", i, err)
		}
		val, err := readElementValue(br, cp)
		if err != nil {
			return RawAnnotation{}, fmt.Errorf("element %s: %w", name, err)
		}
		a.Elements = append(a.Elements, RawElementPair{Name: name, Value: val})
	}
	return a, br.err
}

func readElementValue(br *byteReader, cp *pool) (RawElementValue, error) {
	tagByte := br.u1()
	switch tagByte {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		idx := br.u2()
		c, err := readConstLikeByTag(cp, int(idx), tagByte)
		if err != nil {
			return RawElementValue{}, err
		}
		return RawElementValue{Tag: ElemConst, Const: c}, nil
	case 'e':
		typeIdx := br.u2()
		constIdx := br.u2()
		typeName, err := cp.utf8(int(typeIdx))
		if err != nil {
			return RawElementValue{}, err
		}
		constName, err := cp.utf8(int(constIdx))
		if err != nil {
			return RawElementValue{}, err
		}
		return RawElementValue{Tag: ElemEnum, EnumType: typeName, EnumConst: constName}, nil
	case 'c':
		idx := br.u2()
		classInfo, err := cp.utf8(int(idx))
		if err != nil {
			return RawElementValue{}, err
		}
		return RawElementValue{Tag: ElemClass, ClassInfo: classInfo}, nil
	case '@':
		a, err := readAnnotation(br, cp)
		if err != nil {
			return RawElementValue{}, err
		}
		return RawElementValue{Tag: ElemAnnotation, Annotation: &a}, nil
	case '[':
		n := br.u2()
		vals := make([]RawElementValue, 0, n)
		for i := 0; i < int(n); i++ {
			v, err := readElementValue(br, cp)
			if err != nil {
				return RawElementValue{}, fmt.Errorf("array element %d: %w", i, err)
			}
			vals = append(vals, v)
		}
		return RawElementValue{Tag: ElemArray, ArrayValues: vals}, nil
	default:
		return RawElementValue{}, fmt.Errorf("unknown element_value tag %q", tagByte)
	}
}

// readConstLikeByTag reads a primitive/string constant pool entry for an
// element_value whose tag byte names the expected kind, rather than reading
// the constant pool entry's own tag (the class file format lets 'B','C',
// 'S','Z' all point at an Integer entry; the descriptor-level narrowing
// happens later, in Coerce).
func readConstLikeByTag(cp *pool, idx int, tagByte byte) (*RawConstant, error) {
	e, err := cp.get(idx)
	if err != nil {
		return nil, err
	}
	switch tagByte {
	case 's':
		if e.tag != tagUtf8 {
			return nil, fmt.Errorf("element_value 's' expects Utf8, got tag %d", e.tag)
		}
		return &RawConstant{Kind: RawString, Str: e.utf8}, nil
	case 'D':
		return &RawConstant{Kind: RawDouble, Double: e.doubleVal}, nil
	case 'F':
		return &RawConstant{Kind: RawFloat, Float: e.floatVal}, nil
	case 'J':
		return &RawConstant{Kind: RawLong, Long: e.longVal}, nil
	default: // B, C, I, S, Z all stored as a 32-bit Integer entry
		return &RawConstant{Kind: RawInt, Int: e.intVal}, nil
	}
}
