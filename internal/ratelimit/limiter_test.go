package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWait(t *testing.T) {
	l := New("test", 100)

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if l.Name() != "test" {
		t.Errorf("Name() = %q, want %q", l.Name(), "test")
	}
}

func TestWait_CancelledContext(t *testing.T) {
	// Burst of one; the second wait has to queue and sees the cancel.
	l := NewPerMinute("test", 1)

	ctx, cancel := context.WithCancel(context.Background())
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("first Wait() error = %v", err)
	}
	cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestAllow(t *testing.T) {
	l := NewWithBurst("test", 1, 1)

	if !l.Allow() {
		t.Error("first request should be allowed")
	}
	if l.Allow() {
		t.Error("second immediate request should be rejected with burst 1")
	}
}

func TestNewPerMinute_RefillPace(t *testing.T) {
	// 6000/min = 100/s, so a second token arrives within ~10ms.
	l := NewPerMinute("test", 6000)

	if !l.Allow() {
		t.Fatal("first request should be allowed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
}
