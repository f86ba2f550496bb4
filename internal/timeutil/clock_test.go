package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	clock := RealClock{}
	before := time.Now()
	now := clock.Now()
	after := time.Now()

	if now.Before(before) || now.After(after) {
		t.Errorf("Now() = %v, expected between %v and %v", now, before, after)
	}
}

func TestRealClock_Since(t *testing.T) {
	clock := RealClock{}
	past := time.Now().Add(-time.Second)
	d := clock.Since(past)

	if d < time.Second {
		t.Errorf("Since() returned %v, expected >= 1s", d)
	}
}

func TestRealClock_Sleep(t *testing.T) {
	clock := RealClock{}
	start := time.Now()
	clock.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestOrReal(t *testing.T) {
	assert.Equal(t, RealClock{}, OrReal(nil))

	mock := NewMockClock(time.Unix(0, 0))
	assert.Same(t, mock, OrReal(mock))
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := NewMockClock(start)

	assert.Equal(t, start, clock.Now())

	clock.Advance(time.Minute)
	assert.Equal(t, start.Add(time.Minute), clock.Now())
	assert.Equal(t, time.Minute, clock.Since(start))

	clock.Set(start)
	assert.Zero(t, clock.Since(start))
}

func TestMockClock_SleepAdvancesAndRecords(t *testing.T) {
	start := time.Unix(1000, 0)
	clock := NewMockClock(start)

	clock.Sleep(10 * time.Millisecond)
	clock.Sleep(20 * time.Millisecond)

	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, clock.Sleeps())
	assert.Equal(t, 30*time.Millisecond, clock.Since(start))

	// The returned slice is a copy.
	clock.Sleeps()[0] = 0
	assert.Equal(t, 10*time.Millisecond, clock.Sleeps()[0])
}
