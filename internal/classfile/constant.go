package classfile

import "fmt"

// CoerceConstant retype-coerces a class file's raw ConstantValue to the
// field's declared descriptor. The binary format stores boolean, byte,
// short, and char constants as 32-bit ints; this narrows them to their
// Go-native equivalent so the binder's constant.Value layer never has to
// know about the class file's storage quirk.
//
// Returned kinds: bool, int8 (byte), int16 (short), rune (char), int32
// (int), int64 (long), float32, float64, string.
func CoerceConstant(rc *RawConstant, descriptor string) (any, error) {
	if rc == nil {
		return nil, fmt.Errorf("no constant value to coerce")
	}
	if descriptor == "Ljava/lang/String;" {
		if rc.Kind != RawString {
			return nil, fmt.Errorf("descriptor %s expects a String constant, got kind %d", descriptor, rc.Kind)
		}
		return rc.Str, nil
	}
	if len(descriptor) != 1 {
		return nil, fmt.Errorf("unexpected constant descriptor %q", descriptor)
	}
	switch descriptor[0] {
	case 'Z':
		if rc.Kind != RawInt {
			return nil, fmt.Errorf("boolean constant must be stored as Integer, got kind %d", rc.Kind)
		}
		return rc.Int != 0, nil
	case 'B':
		if rc.Kind != RawInt {
			return nil, fmt.Errorf("byte constant must be stored as Integer, got kind %d", rc.Kind)
		}
		return int8(rc.Int), nil
	case 'S':
		if rc.Kind != RawInt {
			return nil, fmt.Errorf("short constant must be stored as Integer, got kind %d", rc.Kind)
		}
		return int16(rc.Int), nil
	case 'C':
		if rc.Kind != RawInt {
			return nil, fmt.Errorf("char constant must be stored as Integer, got kind %d", rc.Kind)
		}
		return rune(rc.Int), nil
	case 'I':
		if rc.Kind != RawInt {
			return nil, fmt.Errorf("int constant must be stored as Integer, got kind %d", rc.Kind)
		}
		return rc.Int, nil
	case 'J':
		if rc.Kind != RawLong {
			return nil, fmt.Errorf("long constant must be stored as Long, got kind %d", rc.Kind)
		}
		return rc.Long, nil
	case 'F':
		if rc.Kind != RawFloat {
			return nil, fmt.Errorf("float constant must be stored as Float, got kind %d", rc.Kind)
		}
		return rc.Float, nil
	case 'D':
		if rc.Kind != RawDouble {
			return nil, fmt.Errorf("double constant must be stored as Double, got kind %d", rc.Kind)
		}
		return rc.Double, nil
	default:
		return nil, fmt.Errorf("unexpected primitive descriptor %q", descriptor)
	}
}
