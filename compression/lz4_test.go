package compression

import (
	"bytes"
	"strings"
	"testing"
)

func TestLz4RoundTrip(t *testing.T) {

	src := []byte(strings.Repeat(`{"id":"1","status":"active"}`, 200))

	var buf bytes.Buffer
	if err := CompressLz4(src, &buf); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if buf.Len() >= len(src) {
		t.Errorf("expected repetitive input to shrink, %d >= %d", buf.Len(), len(src))
	}

	out, err := DecompressLz4(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if !bytes.Equal(out, src) {
		t.Errorf("decompressed data differs")
	}
}
