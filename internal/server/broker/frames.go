package broker

import (
	"bytes"
	"io"
	"strconv"

	"github.com/go-stomp/stomp/v3/frame"
)

// readFrame decodes the single frame carried by one WebSocket message.
// A message holding only end-of-line bytes is a heart-beat and yields (nil, nil).
func readFrame(data []byte) (*frame.Frame, error) {
	data = bytes.TrimLeft(data, "\r\n")
	if len(data) == 0 {
		return nil, nil
	}
	return frame.NewReader(bytes.NewReader(data)).Read()
}

// writeFrame encodes f to w. A non-empty body always carries content-length
// so JSON payloads may hold any byte.
func writeFrame(w io.Writer, f *frame.Frame) error {
	if len(f.Body) > 0 {
		f.Header.Set(frame.ContentLength, strconv.Itoa(len(f.Body)))
	}
	return frame.NewWriter(w).Write(f)
}
