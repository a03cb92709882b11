package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAwaitResumeOnLine(t *testing.T) {
	c := &Console{in: strings.NewReader("anything\n"), out: &bytes.Buffer{}}
	assert.NoError(t, c.AwaitResume(t.Context()))
}

func TestAwaitResumeBareNewline(t *testing.T) {
	c := &Console{in: strings.NewReader("\n"), out: &bytes.Buffer{}}
	assert.NoError(t, c.AwaitResume(t.Context()))
}

func TestAwaitResumeEOF(t *testing.T) {
	c := &Console{in: strings.NewReader(""), out: &bytes.Buffer{}}
	assert.NoError(t, c.AwaitResume(t.Context()))
}

func TestAwaitResumeCancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()
	// a reader that never delivers a line
	c := &Console{in: blockingReader{}, out: &bytes.Buffer{}}
	err := c.AwaitResume(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAutoResume(t *testing.T) {
	assert.NoError(t, AutoResume{}.AwaitResume(t.Context()))
}

type blockingReader struct{}

func (blockingReader) Read(p []byte) (int, error) {
	select {}
}
