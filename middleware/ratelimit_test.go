package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowUpToMax(t *testing.T) {
	l := NewRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "request %d should pass", i+1)
	}
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestKeysAreIndependent(t *testing.T) {
	l := NewRateLimiter(1, time.Minute)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestWindowResets(t *testing.T) {
	current := time.Now()
	l := NewRateLimiter(1, time.Minute)
	l.now = func() time.Time { return current }

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))

	current = current.Add(time.Minute + time.Second)
	assert.True(t, l.Allow("a"))
}
