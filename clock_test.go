// clock_test.go
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import (
	"testing"
	"time"
)

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	t0 := c.Now()
	time.Sleep(time.Millisecond)
	t1 := c.Now()

	if t1 <= t0 {
		t.Fatalf("expected clock to advance, got t0=%d t1=%d", t0, t1)
	}
}

func TestSystemClockAccessNow(t *testing.T) {
	c := NewSystemClock()
	if got := c.AccessNow(); got <= 0 {
		t.Fatalf("expected a positive tick count, got %d", got)
	}
}

func TestElapsed(t *testing.T) {
	c := NewSystemClock()
	d := Elapsed(c, 0, int64(time.Second))
	if d != time.Second {
		t.Errorf("expected 1s elapsed, got %v", d)
	}
}

type fakeClock struct{ ticks int64 }

func (f *fakeClock) Now() int64                  { return f.ticks }
func (f *fakeClock) AccessNow() int64            { return f.ticks }
func (f *fakeClock) TickDuration() time.Duration { return time.Nanosecond }

func TestElapsed_FakeClock(t *testing.T) {
	c := &fakeClock{}
	c.ticks = 100
	start := c.Now()
	c.ticks = 250
	end := c.Now()

	if got := Elapsed(c, start, end); got != 150*time.Nanosecond {
		t.Errorf("expected 150ns, got %v", got)
	}
}
