package msgpack

import (
	"errors"
	"fmt"
)

// ErrTruncated is the wrapped cause of a DataError raised because the
// buffer ended before a complete value (or declared length) was available.
// Unpack/UnpackAll callers that want to distinguish "need more bytes" from
// any other malformed input should check errors.Is(err, ErrTruncated).
var ErrTruncated = errors.New("msgpack: truncated input")

// DataError reports a decode failure at a specific offset into a specific
// buffer, optionally wrapping an underlying cause.
type DataError struct {
	Data []byte
	Off  int
	Err  error
	Msg  string
}

func dataErrf(data []byte, off int, err error, format string, args ...any) error {
	return &DataError{data, off, err, fmt.Sprintf(format, args...)}
}

func (e *DataError) Unwrap() error {
	return e.Err
}

func (e *DataError) Error() string {
	const prefixLen = 64
	const suffixLen = 32
	n := len(e.Data)
	if n <= prefixLen+suffixLen {
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x", e.Msg, e.Err, n, e.Data)
		} else {
			return fmt.Sprintf("%s: (%d) %x", e.Msg, n, e.Data)
		}
	} else {
		p, s := e.Data[:prefixLen], e.Data[n-suffixLen:]
		if e.Err != nil {
			return fmt.Sprintf("%s: %v: (%d) %x...%x", e.Msg, e.Err, n, p, s)
		} else {
			return fmt.Sprintf("%s: (%d) %x...%x", e.Msg, n, p, s)
		}
	}
}
