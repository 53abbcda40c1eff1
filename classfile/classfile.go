// Package classfile reads compiled module declarations (module-info.class)
// into the same model the source parser builds.
package classfile

import (
	"fmt"
	"io"
	"os"
)

const Magic = 0xCAFEBABE

type AccessFlags uint16

const AccModule AccessFlags = 0x8000

func (f AccessFlags) IsModule() bool { return f&AccModule != 0 }

// ClassFile holds the parts of a class file a module declaration uses.
// Fields and methods are skipped.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	Attributes   []Attribute
}

type Attribute struct {
	Name string
	Info []byte
}

func (cf *ClassFile) ClassName() string {
	name, _ := cf.ConstantPool.ClassName(cf.ThisClass)
	return name
}

func (cf *ClassFile) IsModule() bool {
	return cf.AccessFlags.IsModule()
}

// Attribute returns the body of the first class attribute called name.
func (cf *ClassFile) Attribute(name string) ([]byte, bool) {
	for _, a := range cf.Attributes {
		if a.Name == name {
			return a.Info, true
		}
	}
	return nil, false
}

func ParseFile(path string) (*ClassFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open class file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(rd io.Reader) (*ClassFile, error) {
	r := &reader{r: rd}

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cf := &ClassFile{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("read version: %w", r.err)
	}

	cp, err := readConstantPool(r)
	if err != nil {
		return nil, err
	}
	cf.ConstantPool = cp

	cf.AccessFlags = AccessFlags(r.readU2())
	cf.ThisClass = r.readU2()
	r.readU2() // super_class
	for range r.readU2() {
		r.readU2()
	}
	if r.err != nil {
		return nil, fmt.Errorf("read class info: %w", r.err)
	}

	for _, member := range []string{"field", "method"} {
		count := r.readU2()
		for i := range count {
			r.readU2() // access_flags
			r.readU2() // name_index
			r.readU2() // descriptor_index
			if _, err := readAttributes(r, cp); err != nil {
				return nil, fmt.Errorf("read %s %d: %w", member, i, err)
			}
		}
		if r.err != nil {
			return nil, fmt.Errorf("read %ss: %w", member, r.err)
		}
	}

	cf.Attributes, err = readAttributes(r, cp)
	if err != nil {
		return nil, fmt.Errorf("read class attributes: %w", err)
	}
	return cf, nil
}

func readAttributes(r *reader, cp ConstantPool) ([]Attribute, error) {
	count := r.readU2()
	attrs := make([]Attribute, 0, count)
	for i := range count {
		nameIndex := r.readU2()
		info := r.readBytes(int(r.readU4()))
		if r.err != nil {
			return nil, fmt.Errorf("attribute %d: %w", i, r.err)
		}
		name, err := cp.Utf8(nameIndex)
		if err != nil {
			return nil, fmt.Errorf("attribute %d name: %w", i, err)
		}
		attrs = append(attrs, Attribute{Name: name, Info: info})
	}
	return attrs, nil
}
