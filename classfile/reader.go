package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
)

// reader decodes big-endian class file data. The first failure sticks;
// later reads return zero values.
type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

// readBytes grows its buffer with the data actually read, so a bogus
// length in a truncated file fails without allocating that length.
func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 {
		r.err = fmt.Errorf("invalid length %d", n)
		return nil
	}
	buf, err := io.ReadAll(io.LimitReader(r.r, int64(n)))
	switch {
	case err != nil:
		r.err = err
	case len(buf) < n:
		r.err = io.ErrUnexpectedEOF
	}
	return buf
}

// cursor walks the body of an attribute already held in memory.
type cursor struct {
	buf []byte
	off int
	err error
}

func (c *cursor) u1() uint8 {
	if c.err != nil {
		return 0
	}
	if c.off+1 > len(c.buf) {
		c.err = fmt.Errorf("truncated attribute at offset %d", c.off)
		return 0
	}
	v := c.buf[c.off]
	c.off++
	return v
}

func (c *cursor) u2() uint16 {
	if c.err != nil {
		return 0
	}
	if c.off+2 > len(c.buf) {
		c.err = fmt.Errorf("truncated attribute at offset %d", c.off)
		return 0
	}
	v := binary.BigEndian.Uint16(c.buf[c.off:])
	c.off += 2
	return v
}

// u2s reads a u2 count followed by that many u2 values.
func (c *cursor) u2s() []uint16 {
	n := c.u2()
	var out []uint16
	for range n {
		if c.err != nil {
			return nil
		}
		out = append(out, c.u2())
	}
	return out
}
