// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	want := epoch.Add(5 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockMovesBackward(t *testing.T) {
	clock := Fake(epoch)
	clock.Advance(-time.Minute)
	if got, want := clock.Now(), epoch.Add(-time.Minute); !got.Equal(want) {
		t.Fatalf("Now() after negative Advance = %v, want %v", got, want)
	}

	earlier := epoch.Add(-24 * time.Hour)
	clock.Set(earlier)
	if got := clock.Now(); !got.Equal(earlier) {
		t.Fatalf("Now() after Set = %v, want %v", got, earlier)
	}
}

func TestFakeClockConcurrentAdvance(t *testing.T) {
	clock := Fake(epoch)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			clock.Advance(time.Millisecond)
			_ = clock.Now()
		}()
	}
	wg.Wait()
	if got, want := clock.Now(), epoch.Add(50*time.Millisecond); !got.Equal(want) {
		t.Fatalf("Now() = %v, want %v", got, want)
	}
}

func TestUnixMilli(t *testing.T) {
	if got, want := UnixMilli(Fake(epoch)), uint64(epoch.UnixMilli()); got != want {
		t.Errorf("UnixMilli = %d, want %d", got, want)
	}
	if got := UnixMilli(Fake(time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC))); got != 0 {
		t.Errorf("UnixMilli before epoch = %d, want 0", got)
	}
}

func TestRealClockAdvances(t *testing.T) {
	clock := Real()
	first := clock.Now()
	if first.IsZero() {
		t.Fatal("Real().Now() returned zero time")
	}
}
