package classfile

import (
	"fmt"
	"math"
	"strings"
)

type ConstantTag uint8

const (
	ConstantUtf8               ConstantTag = 1
	ConstantInteger            ConstantTag = 3
	ConstantFloat              ConstantTag = 4
	ConstantLong               ConstantTag = 5
	ConstantDouble             ConstantTag = 6
	ConstantClass              ConstantTag = 7
	ConstantString             ConstantTag = 8
	ConstantFieldref           ConstantTag = 9
	ConstantMethodref          ConstantTag = 10
	ConstantInterfaceMethodref ConstantTag = 11
	ConstantNameAndType        ConstantTag = 12
	ConstantMethodHandle       ConstantTag = 15
	ConstantMethodType         ConstantTag = 16
	ConstantDynamic            ConstantTag = 17
	ConstantInvokeDynamic      ConstantTag = 18
	ConstantModule             ConstantTag = 19
	ConstantPackage            ConstantTag = 20
)

// constant is one constant pool entry. Only the fields its tag uses are
// set: Ref for Class, String, Module, Package and MethodType; Text for
// Utf8; Bits for the numeric kinds.
type constant struct {
	Tag  ConstantTag
	Ref  uint16
	Text string
	Bits uint64
}

// ConstantPool is indexed from 1 as in the class file; index 0 and the
// slot after a Long or Double are empty.
type ConstantPool []constant

func readConstantPool(r *reader) (ConstantPool, error) {
	count := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("read constant pool count: %w", r.err)
	}
	cp := make(ConstantPool, max(count, 1))
	for i := 1; i < int(count); i++ {
		c := constant{Tag: ConstantTag(r.readU1())}
		switch c.Tag {
		case ConstantUtf8:
			c.Text = decodeModifiedUtf8(r.readBytes(int(r.readU2())))
		case ConstantInteger, ConstantFloat:
			c.Bits = uint64(r.readU4())
		case ConstantLong, ConstantDouble:
			c.Bits = uint64(r.readU4())<<32 | uint64(r.readU4())
		case ConstantClass, ConstantString, ConstantMethodType, ConstantModule, ConstantPackage:
			c.Ref = r.readU2()
		case ConstantFieldref, ConstantMethodref, ConstantInterfaceMethodref,
			ConstantNameAndType, ConstantDynamic, ConstantInvokeDynamic:
			c.Ref = r.readU2()
			r.readU2()
		case ConstantMethodHandle:
			r.readU1()
			c.Ref = r.readU2()
		default:
			if r.err == nil {
				return nil, fmt.Errorf("constant pool entry %d: unknown tag %d", i, c.Tag)
			}
		}
		if r.err != nil {
			return nil, fmt.Errorf("read constant pool entry %d: %w", i, r.err)
		}
		cp[i] = c
		if c.Tag == ConstantLong || c.Tag == ConstantDouble {
			i++
		}
	}
	return cp, nil
}

func (cp ConstantPool) entry(index uint16, tag ConstantTag) (constant, error) {
	if index == 0 || int(index) >= len(cp) {
		return constant{}, fmt.Errorf("constant pool index %d out of range", index)
	}
	c := cp[index]
	if c.Tag != tag {
		return constant{}, fmt.Errorf("constant pool index %d: want tag %d, got %d", index, tag, c.Tag)
	}
	return c, nil
}

func (cp ConstantPool) Utf8(index uint16) (string, error) {
	c, err := cp.entry(index, ConstantUtf8)
	return c.Text, err
}

// named follows a Class, Module or Package entry to its name.
func (cp ConstantPool) named(index uint16, tag ConstantTag) (string, error) {
	c, err := cp.entry(index, tag)
	if err != nil {
		return "", err
	}
	return cp.Utf8(c.Ref)
}

// ClassName returns the source form of a Class entry: packages separated
// by dots and nested classes by dots.
func (cp ConstantPool) ClassName(index uint16) (string, error) {
	name, err := cp.named(index, ConstantClass)
	return sourceName(name), err
}

func (cp ConstantPool) ModuleName(index uint16) (string, error) {
	return cp.named(index, ConstantModule)
}

func (cp ConstantPool) PackageName(index uint16) (string, error) {
	name, err := cp.named(index, ConstantPackage)
	return strings.ReplaceAll(name, "/", "."), err
}

func (cp ConstantPool) Int(index uint16) (int32, error) {
	c, err := cp.entry(index, ConstantInteger)
	return int32(uint32(c.Bits)), err
}

func (cp ConstantPool) Long(index uint16) (int64, error) {
	c, err := cp.entry(index, ConstantLong)
	return int64(c.Bits), err
}

func (cp ConstantPool) Float(index uint16) (float32, error) {
	c, err := cp.entry(index, ConstantFloat)
	return math.Float32frombits(uint32(c.Bits)), err
}

func (cp ConstantPool) Double(index uint16) (float64, error) {
	c, err := cp.entry(index, ConstantDouble)
	return math.Float64frombits(c.Bits), err
}

// sourceName turns an internal name such as java/util/Map$Entry into
// java.util.Map.Entry.
func sourceName(internal string) string {
	return strings.NewReplacer("/", ".", "$", ".").Replace(internal)
}

func decodeModifiedUtf8(bytes []byte) string {
	runes := make([]rune, 0, len(bytes))
	for i := 0; i < len(bytes); {
		b := bytes[i]
		switch {
		case b&0x80 == 0:
			runes = append(runes, rune(b))
			i++
		case b&0xE0 == 0xC0 && i+1 < len(bytes):
			runes = append(runes, rune(b&0x1F)<<6|rune(bytes[i+1]&0x3F))
			i += 2
		case b&0xF0 == 0xE0 && i+2 < len(bytes):
			r := rune(b&0x0F)<<12 | rune(bytes[i+1]&0x3F)<<6 | rune(bytes[i+2]&0x3F)
			i += 3
			if r >= 0xD800 && r <= 0xDBFF && i+2 < len(bytes) && bytes[i] == 0xED {
				low := rune(bytes[i]&0x0F)<<12 | rune(bytes[i+1]&0x3F)<<6 | rune(bytes[i+2]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					r = 0x10000 + (r-0xD800)<<10 + (low - 0xDC00)
					i += 3
				}
			}
			runes = append(runes, r)
		default:
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
