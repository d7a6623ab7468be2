package mdrtf

import (
	"errors"
	"io"
	"sync"
)

// ErrSinkCapacity reports a render that produced more output than the
// configured limit.
var ErrSinkCapacity = errors.New("rtf output exceeds sink capacity")

const sinkChunkSize = 4096

var sinkBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, sinkChunkSize)
		return &b
	},
}

// Sink is the append-only destination of a render. It batches emitted bytes
// and hands them to the underlying writer in chunks. The first error, from
// the writer or from the capacity limit, is sticky: later writes are dropped
// and every call reports it.
type Sink struct {
	w     io.Writer
	buf   []byte
	bufp  *[]byte
	limit int
	total int // bytes accepted, checked against limit
	sent  int // bytes the writer reported as written
	err   error
}

// NewSink returns a Sink writing to w. A positive limit bounds the total
// number of bytes accepted.
func NewSink(w io.Writer, limit int) *Sink {
	bp := sinkBufPool.Get().(*[]byte)
	return &Sink{w: w, buf: (*bp)[:0], bufp: bp, limit: limit}
}

// Write appends p. It implements io.Writer.
func (s *Sink) Write(p []byte) (int, error) {
	if !s.reserve(len(p)) {
		return 0, s.err
	}
	if len(s.buf)+len(p) > cap(s.buf) {
		s.flush()
		if s.err != nil {
			return 0, s.err
		}
		if len(p) >= cap(s.buf) {
			s.writeThrough(p)
			if s.err != nil {
				return 0, s.err
			}
			return len(p), nil
		}
	}
	s.buf = append(s.buf, p...)
	return len(p), nil
}

// WriteString appends str.
func (s *Sink) WriteString(str string) (int, error) {
	if !s.reserve(len(str)) {
		return 0, s.err
	}
	if len(s.buf)+len(str) > cap(s.buf) {
		s.flush()
		if s.err != nil {
			return 0, s.err
		}
		if len(str) >= cap(s.buf) {
			s.writeThrough([]byte(str))
			if s.err != nil {
				return 0, s.err
			}
			return len(str), nil
		}
	}
	s.buf = append(s.buf, str...)
	return len(str), nil
}

// WriteByte appends c.
func (s *Sink) WriteByte(c byte) error {
	if !s.reserve(1) {
		return s.err
	}
	if len(s.buf) == cap(s.buf) {
		s.flush()
		if s.err != nil {
			return s.err
		}
	}
	s.buf = append(s.buf, c)
	return nil
}

// Flush hands buffered bytes to the writer and returns the sticky error.
func (s *Sink) Flush() error {
	s.flush()
	return s.err
}

// Err returns the sticky error, if any.
func (s *Sink) Err() error {
	return s.err
}

// Len returns the number of bytes delivered to the writer plus those still
// buffered. Bytes lost to a writer error or dropped at the capacity limit
// are not counted.
func (s *Sink) Len() int {
	return s.sent + len(s.buf)
}

func (s *Sink) reserve(n int) bool {
	if s.err != nil {
		return false
	}
	if s.limit > 0 && s.total+n > s.limit {
		s.err = ErrSinkCapacity
		s.buf = s.buf[:0]
		return false
	}
	s.total += n
	return true
}

func (s *Sink) flush() {
	if s.err != nil || len(s.buf) == 0 {
		return
	}
	s.writeThrough(s.buf)
	s.buf = s.buf[:0]
}

func (s *Sink) writeThrough(p []byte) {
	n, err := s.w.Write(p)
	if n > 0 {
		s.sent += n
	}
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		s.err = err
	}
}

// release returns the chunk buffer to the pool. The Sink must not be used
// afterwards.
func (s *Sink) release() {
	if s.bufp == nil {
		return
	}
	*s.bufp = s.buf[:0]
	sinkBufPool.Put(s.bufp)
	s.bufp = nil
	s.buf = nil
	s.w = nil
}

// OutputFunc adapts a chunk callback to io.Writer. Each call receives one
// contiguous chunk; the concatenation of all chunks in call order is the
// complete document. The callback must not retain p.
type OutputFunc func(p []byte)

// Write calls f(p).
func (f OutputFunc) Write(p []byte) (int, error) {
	f(p)
	return len(p), nil
}
