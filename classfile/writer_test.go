package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// classWriter assembles class files for tests.
type classWriter struct {
	pool  bytes.Buffer
	count uint16
	index map[string]uint16
}

func newClassWriter() *classWriter {
	return &classWriter{count: 1, index: map[string]uint16{}}
}

func (w *classWriter) add(key string, slots uint16, entry ...any) uint16 {
	if i, ok := w.index[key]; ok {
		return i
	}
	i := w.count
	for _, e := range entry {
		binary.Write(&w.pool, binary.BigEndian, e)
	}
	w.count += slots
	w.index[key] = i
	return i
}

func (w *classWriter) utf8(s string) uint16 {
	return w.add("utf8:"+s, 1, uint8(ConstantUtf8), uint16(len(s)), []byte(s))
}

func (w *classWriter) ref(tag ConstantTag, name string) uint16 {
	n := w.utf8(name)
	return w.add(fmt.Sprintf("%d:%s", tag, name), 1, uint8(tag), n)
}

func (w *classWriter) class(name string) uint16  { return w.ref(ConstantClass, name) }
func (w *classWriter) module(name string) uint16 { return w.ref(ConstantModule, name) }
func (w *classWriter) pkg(name string) uint16    { return w.ref(ConstantPackage, name) }

func (w *classWriter) integer(v int32) uint16 {
	return w.add(fmt.Sprintf("int:%d", v), 1, uint8(ConstantInteger), v)
}

func (w *classWriter) long(v int64) uint16 {
	return w.add(fmt.Sprintf("long:%d", v), 2, uint8(ConstantLong), v)
}

func (w *classWriter) float(v float32) uint16 {
	return w.add(fmt.Sprintf("float:%x", math.Float32bits(v)), 1, uint8(ConstantFloat), math.Float32bits(v))
}

func (w *classWriter) double(v float64) uint16 {
	return w.add(fmt.Sprintf("double:%x", math.Float64bits(v)), 2, uint8(ConstantDouble), math.Float64bits(v))
}

// attr is a named attribute body built with u2/u1 values.
type attr struct {
	name string
	body bytes.Buffer
}

func (a *attr) u1(v uint8) *attr {
	a.body.WriteByte(v)
	return a
}

func (a *attr) u2(vs ...uint16) *attr {
	for _, v := range vs {
		binary.Write(&a.body, binary.BigEndian, v)
	}
	return a
}

// build writes a class file with the given access flags, no fields or
// methods, and the given class attributes.
func (w *classWriter) build(flags uint16, attrs ...*attr) []byte {
	this := w.class("module-info")
	names := make([]uint16, len(attrs))
	for i, a := range attrs {
		names[i] = w.utf8(a.name)
	}

	var out bytes.Buffer
	put := func(v any) { binary.Write(&out, binary.BigEndian, v) }
	put(uint32(Magic))
	put(uint16(0))
	put(uint16(53))
	put(w.count)
	out.Write(w.pool.Bytes())
	put(flags)
	put(this)
	put(uint16(0)) // super
	put(uint16(0)) // interfaces
	put(uint16(0)) // fields
	put(uint16(0)) // methods
	put(uint16(len(attrs)))
	for i, a := range attrs {
		put(names[i])
		put(uint32(a.body.Len()))
		out.Write(a.body.Bytes())
	}
	return out.Bytes()
}
