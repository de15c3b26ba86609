package gks

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-gkscairo/internal/cairo"
)

// recordLogger keeps every message it receives.
type recordLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordLogger) add(level, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, level+" "+msg+fmt.Sprint(args...))
}

func (l *recordLogger) Debug(msg string, args ...any) { l.add("DEBUG", msg, args...) }
func (l *recordLogger) Info(msg string, args ...any)  { l.add("INFO", msg, args...) }
func (l *recordLogger) Warn(msg string, args ...any)  { l.add("WARN", msg, args...) }
func (l *recordLogger) Error(msg string, args ...any) { l.add("ERROR", msg, args...) }

func (l *recordLogger) contains(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.msgs {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}

const allChannels = LogInfo | LogWarn | LogError

func newTestWorkstation(t *testing.T, opts ...Option) (*Workstation, *recordLogger) {
	t.Helper()
	rec := &recordLogger{}
	opts = append([]Option{WithLogger(rec, allChannels)}, opts...)
	return NewWorkstation(opts...), rec
}

func openTest(t *testing.T, device cairo.SurfaceType, opts ...Option) (*Workstation, *recordLogger, *bytes.Buffer) {
	t.Helper()
	ws, rec := newTestWorkstation(t, opts...)
	var buf bytes.Buffer
	require.NoError(t, ws.Open(device, &buf))
	return ws, rec, &buf
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

// closeRecorder is an io.WriteCloser that remembers Close.
type closeRecorder struct {
	bytes.Buffer
	closed bool
	err    error
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.err
}

var square = []Point{{0.1, 0.1}, {0.4, 0.1}, {0.4, 0.4}, {0.1, 0.4}}
