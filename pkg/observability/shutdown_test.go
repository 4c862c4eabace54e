package observability

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShutdownManager(t *testing.T) {
	tests := []struct {
		name            string
		timeout         time.Duration
		expectedTimeout time.Duration
	}{
		{name: "custom timeout", timeout: 10 * time.Second, expectedTimeout: 10 * time.Second},
		{name: "zero timeout uses default", timeout: 0, expectedTimeout: 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := NewShutdownManager(nil, nil, tt.timeout)
			require.NotNil(t, sm)
			assert.Equal(t, tt.expectedTimeout, sm.shutdownTimeout)
			assert.NotNil(t, sm.logger)
			assert.Empty(t, sm.shutdownFuncs)
		})
	}
}

func TestShutdownManager_WaitForShutdown(t *testing.T) {
	server := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Start()
	defer server.Close()

	sm := NewShutdownManager(NewLogger("info", &bytes.Buffer{}), server.Config, time.Second)

	var calls atomic.Int32
	for range 3 {
		sm.RegisterShutdownFunc(func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sm.WaitForShutdown(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("shutdown did not complete")
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestShutdownManager_CollectsErrors(t *testing.T) {
	sm := NewShutdownManager(NewLogger("info", &bytes.Buffer{}), nil, time.Second)
	boom := errors.New("boom")
	sm.RegisterShutdownFunc(func(context.Context) error { return boom })
	sm.RegisterShutdownFunc(func(context.Context) error { return nil })

	err := sm.Shutdown()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "1 errors")
}

func TestShutdownManager_Timeout(t *testing.T) {
	sm := NewShutdownManager(NewLogger("info", &bytes.Buffer{}), nil, 50*time.Millisecond)
	release := make(chan struct{})
	defer close(release)
	sm.RegisterShutdownFunc(func(context.Context) error {
		<-release
		return nil
	})

	err := sm.Shutdown()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
