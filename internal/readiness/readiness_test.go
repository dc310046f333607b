package readiness

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	failures int
	calls    int
}

func (p *fakePinger) PingContext(ctx context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWait_ImmediateSuccess(t *testing.T) {
	var out bytes.Buffer
	p := &fakePinger{}

	err := Wait(context.Background(), p, &out, time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 1, p.calls)
	assert.Contains(t, out.String(), "Waiting for database...")
	assert.Contains(t, out.String(), "Database available!")
}

func TestWait_RetriesUntilSuccess(t *testing.T) {
	var out bytes.Buffer
	p := &fakePinger{failures: 3}

	err := Wait(context.Background(), p, &out, time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 4, p.calls)
	assert.Equal(t, 3, strings.Count(out.String(), "Database unavailable"))
}

func TestWait_ContextCancelled(t *testing.T) {
	var out bytes.Buffer
	p := &fakePinger{failures: 1 << 30}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Wait(ctx, p, &out, time.Millisecond)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
