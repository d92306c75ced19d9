package project

import (
	"bytes"
	"encoding/json"
	"io"
)

func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

func newBytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
