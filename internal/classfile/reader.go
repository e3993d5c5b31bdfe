package classfile

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

const classMagic = 0xCAFEBABE

// byteReader wraps an io.Reader with the fixed-width big-endian reads a
// class file is built from, matching the bytecode package's own
// read-primitives-in-sequence style (u1/u2/u4 instead of one struct-tagged
// binary.Read).
type byteReader struct {
	r   *bufio.Reader
	err error
}

func newByteReader(r io.Reader) *byteReader {
	return &byteReader{r: bufio.NewReader(r)}
}

func (b *byteReader) u1() byte {
	if b.err != nil {
		return 0
	}
	v, err := b.r.ReadByte()
	if err != nil {
		b.err = fmt.Errorf("read u1: %w", err)
	}
	return v
}

func (b *byteReader) u2() uint16 {
	var buf [2]byte
	b.readFull(buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (b *byteReader) u4() uint32 {
	var buf [4]byte
	b.readFull(buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (b *byteReader) u8() uint64 {
	var buf [8]byte
	b.readFull(buf[:])
	return binary.BigEndian.Uint64(buf[:])
}

func (b *byteReader) bytes(n int) []byte {
	buf := make([]byte, n)
	b.readFull(buf)
	return buf
}

func (b *byteReader) readFull(buf []byte) {
	if b.err != nil {
		return
	}
	if _, err := io.ReadFull(b.r, buf); err != nil {
		b.err = fmt.Errorf("read %d bytes: %w", len(buf), err)
	}
}

// FieldInfo is a class file's raw field_info entry, still carrying
// descriptor/signature strings for the type binder to parse on demand.
type FieldInfo struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Signature   string // empty when no Signature attribute is present
	ConstValue  *RawConstant
	Annotations []RawAnnotation
	Deprecated  bool
}

// MethodInfo is a class file's raw method_info entry.
type MethodInfo struct {
	AccessFlags uint16
	Name        string
	Descriptor  string
	Signature   string
	Exceptions  []string // binary names, from the Exceptions attribute
	Annotations []RawAnnotation
	// ParamAnnotations indexes by formal parameter position.
	ParamAnnotations  map[int][]RawAnnotation
	AnnotationDefault *RawConstant // an annotation interface method's default when it is a primitive or String constant; nil otherwise, including enum, class, array and annotation defaults
	Deprecated        bool
}

// RawConstant is an as-read constant pool value, not yet retype-coerced to
// the field's declared descriptor (see constant.go).
type RawConstant struct {
	Kind   RawConstantKind
	Int    int32
	Long   int64
	Float  float32
	Double float64
	Str    string
}

// RawConstantKind tags a RawConstant's payload.
type RawConstantKind int

const (
	RawInt RawConstantKind = iota
	RawLong
	RawFloat
	RawDouble
	RawString
)

// RawAnnotation is an as-read annotation occurrence: the annotation type's
// descriptor and an ordered list of (element name, value) pairs. Element
// values are kept in their raw encoded form (RawElementValue) since fully
// resolving them to constant.Value requires the binder's scope, which this
// package does not depend on.
type RawAnnotation struct {
	TypeDescriptor string
	Elements       []RawElementPair
}

// RawElementPair is one "name=value" entry of a RawAnnotation.
type RawElementPair struct {
	Name  string
	Value RawElementValue
}

// RawElementValueTag discriminates a RawElementValue's shape, mirroring the
// class file format's element_value tag byte.
type RawElementValueTag byte

const (
	ElemConst      RawElementValueTag = 'C' // B,C,D,F,I,J,S,Z,s all collapse here with Const set
	ElemEnum       RawElementValueTag = 'e'
	ElemClass      RawElementValueTag = 'c'
	ElemAnnotation RawElementValueTag = '@'
	ElemArray      RawElementValueTag = '['
)

// RawElementValue is one annotation element's encoded value.
type RawElementValue struct {
	Tag         RawElementValueTag
	Const       *RawConstant
	EnumType    string // enum descriptor, when Tag == ElemEnum
	EnumConst   string // enum constant name, when Tag == ElemEnum
	ClassInfo   string // descriptor, when Tag == ElemClass
	Annotation  *RawAnnotation
	ArrayValues []RawElementValue
}

// ClassFile is the raw parsed shape of one binary class: just enough
// structure for the signature parser and the binder's classpath
// environment to build a bound class from, without this package knowing
// anything about symbol.Class or types.Type beyond what it parses out of
// signature strings.
type ClassFile struct {
	MinorVersion, MajorVersion uint16
	AccessFlags                uint16
	ThisClass                  string
	SuperClass                 string // empty for java/lang/Object
	Interfaces                 []string
	Fields                     []FieldInfo
	Methods                    []MethodInfo
	Signature                  string // class Signature attribute, empty if absent
	InnerClasses               []InnerClassEntry
	Annotations                []RawAnnotation
	Deprecated                 bool
}

// InnerClassEntry is one entry of the InnerClasses attribute: a nested
// class's binary name, its immediate outer class (empty for a local/
// anonymous class), and its simple name as declared.
type InnerClassEntry struct {
	InnerClass  string
	OuterClass  string
	SimpleName  string
	AccessFlags uint16
}

// Parse reads one class file from r. It reads the whole structural shape in
// one pass, matching the classpath reader's "parses in one shot, no
// multi-phase staging" contract.
func Parse(r io.Reader) (*ClassFile, error) {
	br := newByteReader(r)

	magic := br.u4()
	if br.err == nil && magic != classMagic {
		return nil, fmt.Errorf("not a class file: bad magic %#x", magic)
	}
	minor := br.u2()
	major := br.u2()

	cp, err := readPool(br)
	if err != nil {
		return nil, err
	}

	cf := &ClassFile{MinorVersion: minor, MajorVersion: major}

	cf.AccessFlags = br.u2()
	thisIdx := br.u2()
	superIdx := br.u2()
	if br.err != nil {
		return nil, br.err
	}
	if cf.ThisClass, err = cp.className(int(thisIdx)); err != nil {
		return nil, fmt.Errorf("this_class: %w", err)
	}
	if superIdx != 0 {
		if cf.SuperClass, err = cp.className(int(superIdx)); err != nil {
			return nil, fmt.Errorf("super_class: %w", err)
		}
	}

	ifaceCount := br.u2()
	for i := 0; i < int(ifaceCount); i++ {
		idx := br.u2()
		name, err := cp.className(int(idx))
		if err != nil {
			return nil, fmt.Errorf("interface %d: %w", i, err)
		}
		cf.Interfaces = append(cf.Interfaces, name)
	}

	fieldCount := br.u2()
	for i := 0; i < int(fieldCount); i++ {
		fi, err := readMember(br, cp, true)
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", i, err)
		}
		cf.Fields = append(cf.Fields, fi.(FieldInfo))
	}

	methodCount := br.u2()
	for i := 0; i < int(methodCount); i++ {
		mi, err := readMember(br, cp, false)
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		cf.Methods = append(cf.Methods, mi.(MethodInfo))
	}

	attrCount := br.u2()
	for i := 0; i < int(attrCount); i++ {
		if err := readClassAttribute(br, cp, cf); err != nil {
			return nil, fmt.Errorf("class attribute %d: %w", i, err)
		}
	}

	if br.err != nil {
		return nil, br.err
	}
	return cf, nil
}
