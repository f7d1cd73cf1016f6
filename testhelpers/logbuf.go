package testhelpers

import (
	"bytes"
	"sync"
)

// LogBuf is a synchronized io.Writer.  It keeps the race detector quiet
// when a logger writes from a background goroutine, which a bare
// bytes.Buffer would trip.
//
// Typical usage pattern with zerolog:
//	buf := testhelpers.NewLogBuf()
//	log := zerolog.New(buf)
//	<do test things that write to log>
//	if !strings.Contains(buf.String(), "some value") { t.Error("missing expected log") }
type LogBuf struct {
	sync.Mutex
	*bytes.Buffer
}

// NewLogBuf returns an initialized log buffer.
func NewLogBuf() *LogBuf {
	return &LogBuf{Buffer: &bytes.Buffer{}}
}

// Write satisfies io.Writer.
func (lb *LogBuf) Write(p []byte) (int, error) {
	lb.Lock()
	defer lb.Unlock()
	return lb.Buffer.Write(p)
}

// String satisfies Stringer.
func (lb *LogBuf) String() string {
	lb.Lock()
	defer lb.Unlock()
	return lb.Buffer.String()
}

// Reset resets the log buffer.
func (lb *LogBuf) Reset() {
	lb.Lock()
	defer lb.Unlock()
	lb.Buffer.Reset()
}
