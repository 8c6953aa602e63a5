package bits

import (
	"encoding/binary"
	"errors"
)

var ErrStringTooLong = errors.New("string exceeds MaxStringSize")

// BitWriter appends fixed-width integers and length-prefixed strings to a
// growing buffer.
type BitWriter struct {
	pos   int
	data  []byte
	order binary.ByteOrder
}

func NewEncodeBuffer(buf []byte, order binary.ByteOrder) BitWriter {
	return BitWriter{data: buf[:cap(buf)], order: order}
}

func (w *BitWriter) tryGrow(n int) {
	if w.pos+n <= len(w.data) {
		return
	}

	newSize := len(w.data) * 2
	if newSize < w.pos+n {
		newSize = w.pos + n
	}

	newBuf := make([]byte, newSize)
	copy(newBuf, w.data[:w.pos])
	w.data = newBuf
}

func (w *BitWriter) Write(p []byte) (n int, err error) {
	w.tryGrow(len(p))
	n = copy(w.data[w.pos:], p)
	w.pos += n
	return n, nil
}

func (w *BitWriter) Bytes() []byte {
	return w.data[:w.pos]
}

func (w *BitWriter) WriteByte(u byte) error {
	w.tryGrow(1)
	w.data[w.pos] = u
	w.pos++
	return nil
}

func (w *BitWriter) PutUint16(v uint16) {
	w.tryGrow(2)
	w.order.PutUint16(w.data[w.pos:], v)
	w.pos += 2
}

func (w *BitWriter) PutUint32(v uint32) {
	w.tryGrow(4)
	w.order.PutUint32(w.data[w.pos:], v)
	w.pos += 4
}

// PutString writes a u32 length followed by the raw bytes. Strings the
// reader would refuse are refused here too.
func (w *BitWriter) PutString(s string) error {
	if len(s) > MaxStringSize {
		return ErrStringTooLong
	}

	w.PutUint32(uint32(len(s)))
	w.tryGrow(len(s))
	w.pos += copy(w.data[w.pos:], s)

	return nil
}
