package compression

import (
	"bytes"
	"io"

	"github.com/pierrec/lz4/v4"
)

func CompressLz4(src []byte, output *bytes.Buffer) error {
	zw := lz4.NewWriter(output)

	if _, writeErr := zw.Write(src); writeErr != nil {
		return writeErr
	}

	flushErr := zw.Flush()
	if flushErr != nil {
		return flushErr
	}

	return zw.Close()
}

func DecompressLz4(src []byte) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(src))

	return io.ReadAll(zr)
}
