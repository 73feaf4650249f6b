// entrystats_test.go
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rankedcache

import (
	"testing"
	"time"
)

func TestNewEntryStats_InitialHitCount(t *testing.T) {
	s := newEntryStats(1000, 5*time.Millisecond, 1)

	if s.HitCount() != 1 {
		t.Errorf("expected hit_count=1 after creation, got %d", s.HitCount())
	}
	if s.CreationTime() != 1000 {
		t.Errorf("expected creation_time=1000, got %d", s.CreationTime())
	}
	if s.LastAccessTime() != 1000 {
		t.Errorf("expected last_access_time == creation_time at birth, got %d", s.LastAccessTime())
	}
	if s.InvokeDuration() != 5*time.Millisecond {
		t.Errorf("expected invoke_duration=5ms, got %v", s.InvokeDuration())
	}
}

func TestRecordHit_AccumulatesAndStamps(t *testing.T) {
	s := newEntryStats(1000, 0, 1)

	s.recordHit(10*time.Millisecond, 2000)
	s.recordHit(20*time.Millisecond, 3000)

	if s.HitCount() != 3 {
		t.Errorf("expected hit_count=3 (1 creation + 2 hits), got %d", s.HitCount())
	}
	if s.TotalDuration() != 30*time.Millisecond {
		t.Errorf("expected total_duration=30ms, got %v", s.TotalDuration())
	}
	if s.LastAccessTime() != 3000 {
		t.Errorf("expected last_access_time=3000, got %d", s.LastAccessTime())
	}
}

func TestHitCountRanker(t *testing.T) {
	s := newEntryStats(0, 0, 1)
	s.recordHit(0, 0)
	if HitCountRanker(s) != 2 {
		t.Errorf("expected ranker value 2, got %d", HitCountRanker(s))
	}
}

func TestLastAccessRanker(t *testing.T) {
	s := newEntryStats(100, 0, 1)
	s.recordHit(0, 500)
	if LastAccessRanker(s) != 500 {
		t.Errorf("expected ranker value 500, got %d", LastAccessRanker(s))
	}
}

func TestTotalDurationRanker(t *testing.T) {
	s := newEntryStats(0, 0, 1)
	s.recordHit(7*time.Millisecond, 0)
	if TotalDurationRanker(s) != 7*time.Millisecond {
		t.Errorf("expected ranker value 7ms, got %v", TotalDurationRanker(s))
	}
}
