package binary

import (
	"bytes"
	"encoding/binary"
)

// Writer accumulates big-endian class-file structures.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the written bytes.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// U1 writes one byte.
func (w *Writer) U1(v uint8) *Writer {
	w.buf.WriteByte(v)
	return w
}

// U2 writes a big-endian uint16.
func (w *Writer) U2(v uint16) *Writer {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
	return w
}

// U4 writes a big-endian uint32.
func (w *Writer) U4(v uint32) *Writer {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
	return w
}

// Raw writes data verbatim.
func (w *Writer) Raw(data []byte) *Writer {
	w.buf.Write(data)
	return w
}
