package bits

import (
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrReadMismatch = errors.New("read size mismatch")
	ErrTooLarge     = errors.New("length prefix exceeds limit")
)

const MaxBinReaderBufferSize = 8

// MaxStringSize bounds a single length-prefixed string.
const MaxStringSize = 64 << 20

type BitsReader struct {
	readBuffer [MaxBinReaderBufferSize]byte

	buf   io.Reader
	order binary.ByteOrder
}

func NewReader(buf io.Reader, order binary.ByteOrder) *BitsReader {
	return &BitsReader{buf: buf, order: order}
}

func (r *BitsReader) readNextBytesIntoReadBuffer(size int) error {
	_, err := io.ReadFull(r.buf, r.readBuffer[:size])
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrReadMismatch
	}
	return err
}

func (r *BitsReader) ReadU8() (uint8, error) {
	if err := r.readNextBytesIntoReadBuffer(1); err != nil {
		return 0, err
	}
	return r.readBuffer[0], nil
}

func (r *BitsReader) ReadU16() (uint16, error) {
	if err := r.readNextBytesIntoReadBuffer(2); err != nil {
		return 0, err
	}
	return r.order.Uint16(r.readBuffer[:2]), nil
}

func (r *BitsReader) ReadU32() (uint32, error) {
	if err := r.readNextBytesIntoReadBuffer(4); err != nil {
		return 0, err
	}
	return r.order.Uint32(r.readBuffer[:4]), nil
}

func (r *BitsReader) ReadBytes(n int, out []byte) error {
	readBytes, err := io.ReadFull(r.buf, out[:n])
	if readBytes != n {
		return ErrReadMismatch
	}
	return err
}

func (r *BitsReader) ReadString() (string, error) {
	size, err := r.ReadU32()
	if err != nil {
		return "", err
	}

	if size > MaxStringSize {
		return "", ErrTooLarge
	}

	out := make([]byte, size)
	if err := r.ReadBytes(int(size), out); err != nil {
		return "", err
	}

	return string(out), nil
}
