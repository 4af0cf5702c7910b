package media

import (
	"errors"
	"fmt"
	"io"
)

// ErrSizeMismatch is returned when a body does not match its declared size.
var ErrSizeMismatch = errors.New("body length does not match declared size")

// exactReader yields the body only if it is exactly size bytes long, so the
// size recorded in the catalog is the size that was stored.
type exactReader struct {
	r         io.Reader
	remaining int64
}

func newExactReader(r io.Reader, size int64) io.Reader {
	return &exactReader{r: r, remaining: size}
}

func (e *exactReader) Read(p []byte) (int, error) {
	if e.remaining <= 0 {
		var extra [1]byte
		n, err := io.ReadFull(e.r, extra[:])
		if n > 0 {
			return 0, fmt.Errorf("%w: more than declared", ErrSizeMismatch)
		}
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, io.EOF
		}
		return 0, err
	}

	if int64(len(p)) > e.remaining {
		p = p[:e.remaining]
	}
	n, err := e.r.Read(p)
	e.remaining -= int64(n)
	if err == io.EOF {
		if e.remaining > 0 {
			return n, fmt.Errorf("%w: %d bytes short", ErrSizeMismatch, e.remaining)
		}
		return n, io.EOF
	}
	return n, err
}
