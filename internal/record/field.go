// Package record defines the fixed-width binary layout of every entity and
// converts between entity values and their on-disk bytes.
//
// Every string field of width N holds at most N-1 bytes and is NUL padded to
// N bytes, so each field always carries a terminator. Integers are 4-byte
// little-endian. Embedded entities are written by their own codec as nested
// blocks with no delimiter or padding between fields.
package record

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var (
	// ErrFieldTooLong is returned by Encode when a string does not fit its field.
	ErrFieldTooLong = errors.New("field too long")
	// ErrFieldInvalid is returned by Encode for strings containing NUL.
	ErrFieldInvalid = errors.New("field contains NUL")
	// ErrShortRecord is returned by Decode when given fewer than Width bytes.
	ErrShortRecord = errors.New("short record")
)

const intSize = 4

// encoder writes fields sequentially into a fixed-size buffer. The first
// error sticks and later writes are ignored.
type encoder struct {
	buf []byte
	off int
	err error
}

func newEncoder(width int) *encoder {
	return &encoder{buf: make([]byte, width)}
}

func (e *encoder) str(name, s string, width int) {
	if e.err != nil {
		return
	}
	if len(s) > width-1 {
		e.err = fmt.Errorf("record: %s: %d bytes exceeds %d: %w", name, len(s), width-1, ErrFieldTooLong)
		return
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			e.err = fmt.Errorf("record: %s: %w", name, ErrFieldInvalid)
			return
		}
	}
	// buf is zeroed on allocation, so the remainder is already NUL padding
	copy(e.buf[e.off:e.off+width], s)
	e.off += width
}

func (e *encoder) int32(v int32) {
	if e.err != nil {
		return
	}
	binary.LittleEndian.PutUint32(e.buf[e.off:], uint32(v))
	e.off += intSize
}

func (e *encoder) block(b []byte, err error) {
	if e.err != nil {
		return
	}
	if err != nil {
		e.err = err
		return
	}
	copy(e.buf[e.off:], b)
	e.off += len(b)
}

func (e *encoder) bytes() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.off != len(e.buf) {
		panic(fmt.Sprintf("record: encoded %d bytes into a %d byte record", e.off, len(e.buf)))
	}
	return e.buf, nil
}

// decoder reads fields sequentially from a record.
type decoder struct {
	buf []byte
	off int
}

func newDecoder(name string, b []byte, width int) (*decoder, error) {
	if len(b) < width {
		return nil, fmt.Errorf("record: %s: got %d bytes, want %d: %w", name, len(b), width, ErrShortRecord)
	}
	return &decoder{buf: b[:width]}, nil
}

// str reads a NUL-terminated string. A field with no NUL is read whole.
func (d *decoder) str(width int) string {
	field := d.buf[d.off : d.off+width]
	d.off += width
	for i, c := range field {
		if c == 0 {
			return string(field[:i])
		}
	}
	return string(field)
}

func (d *decoder) int32() int32 {
	v := int32(binary.LittleEndian.Uint32(d.buf[d.off:]))
	d.off += intSize
	return v
}

func (d *decoder) block(width int) []byte {
	b := d.buf[d.off : d.off+width]
	d.off += width
	return b
}
