package monitor

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStreamMJPEGFromChannel(t *testing.T) {
	t.Run("writes each frame as a multipart part", func(t *testing.T) {
		ch := make(chan []byte, 2)
		ch <- []byte("frame-one")
		ch <- []byte("frame-two")
		close(ch)

		rec := httptest.NewRecorder()
		streamMJPEGFromChannel(rec, ch, time.Millisecond)

		assert.Equal(t, "multipart/x-mixed-replace; boundary=frame", rec.Header().Get("Content-Type"))
		body := rec.Body.String()
		assert.Equal(t, 2, strings.Count(body, "--frame\r\n"))
		assert.Contains(t, body, "frame-one")
		assert.Contains(t, body, "frame-two")
	})

	t.Run("closed channel ends the stream", func(t *testing.T) {
		ch := make(chan []byte)
		close(ch)

		done := make(chan struct{})
		go func() {
			streamMJPEGFromChannel(httptest.NewRecorder(), ch, 0)
			close(done)
		}()

		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("stream did not end after channel close")
		}
	})

	t.Run("paces writes to the configured interval", func(t *testing.T) {
		ch := make(chan []byte, 3)
		for range 3 {
			ch <- []byte("f")
		}
		close(ch)

		start := time.Now()
		streamMJPEGFromChannel(httptest.NewRecorder(), ch, 20*time.Millisecond)

		// Three frames with two full waits between reads.
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})
}
