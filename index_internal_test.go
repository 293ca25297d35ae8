package fessanalysis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type closeRecorder chan struct{}

func (c closeRecorder) Close() error {
	close(c)
	return nil
}

func Test_closeOnDone(t *testing.T) {
	never := make(closeRecorder)
	assert.False(t, closeOnDone(context.Background(), never))

	ctx, cancel := context.WithCancel(context.Background())
	closed := make(closeRecorder)
	assert.True(t, closeOnDone(ctx, closed))
	cancel()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("not closed after cancel")
	}
}
