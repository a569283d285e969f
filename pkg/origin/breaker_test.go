package origin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBreaker(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		b := newBreaker(0, 0)
		assert.Equal(t, 5, b.failureThreshold)
		assert.Equal(t, 30*time.Second, b.recoveryTimeout)
	})

	t.Run("success resets failures", func(t *testing.T) {
		t.Parallel()
		b := newBreaker(3, time.Minute)
		b.failure()
		b.failure()
		b.success()
		b.failure()
		b.failure()
		assert.Equal(t, BreakerClosed, b.current())
		assert.True(t, b.allow())
	})

	t.Run("half-open failure reopens", func(t *testing.T) {
		t.Parallel()
		b := newBreaker(1, 10*time.Millisecond)
		b.failure()
		assert.False(t, b.allow())

		time.Sleep(20 * time.Millisecond)
		assert.True(t, b.allow())
		assert.Equal(t, BreakerHalfOpen, b.current())

		b.failure()
		assert.Equal(t, BreakerOpen, b.current())
		assert.False(t, b.allow())
	})
}

func TestBreakerState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "closed", BreakerClosed.String())
	assert.Equal(t, "open", BreakerOpen.String())
	assert.Equal(t, "half-open", BreakerHalfOpen.String())
	assert.Equal(t, "unknown", BreakerState(42).String())
}
