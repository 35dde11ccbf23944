package limiter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olusolaa/cloud-resource-api/internal/log"
)

func TestNew_ClampsRate(t *testing.T) {
	logger := log.NewNop()
	assert.Equal(t, 5, New(5, logger).RPS())
	assert.Equal(t, DefaultRPS, New(0, logger).RPS())
	assert.Equal(t, DefaultRPS, New(1000, logger).RPS())
	assert.Equal(t, DefaultRPS, New(-3, logger).RPS())
}

func TestWait_CanceledContext(t *testing.T) {
	l := New(1, log.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, l.Wait(ctx, log.NewNop()))
}
