package cli

import (
	"bytes"
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer provides thread-safe access to a bytes.Buffer.
type syncBuffer struct {
	buf bytes.Buffer
	mu  sync.Mutex
}

func (s *syncBuffer) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestNewInterruptHandler(t *testing.T) {
	h := NewInterruptHandler(nil, "")
	assert.Equal(t, os.Stderr, h.writer)
	assert.Equal(t, "Interrupted, shutting down", h.message)
	assert.False(t, h.WasInterrupted())
}

func TestInterruptCancelsContext(t *testing.T) {
	output := &syncBuffer{}
	h := NewInterruptHandler(output, "Export interrupted")

	signals := make(chan os.Signal, 1)
	ctx, cancel := h.watch(context.Background(), signals)
	defer cancel()

	signals <- os.Interrupt

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		require.FailNow(t, "context was not canceled")
	}

	assert.Eventually(t, h.WasInterrupted, time.Second, 10*time.Millisecond)
	assert.Contains(t, output.String(), "Export interrupted")
}

func TestStopWithoutInterrupt(t *testing.T) {
	output := &syncBuffer{}
	h := NewInterruptHandler(output, "")

	ctx, stop := h.HandleInterrupts(context.Background())
	stop()

	<-ctx.Done()
	assert.False(t, h.WasInterrupted())
	assert.Empty(t, output.String())
}
