package stack

import (
	"testing"

	"github.com/blackrooksoftware/rookscript/internal/value"
)

func TestPushPopValue(t *testing.T) {
	s := New(4, 4)
	if err := s.PushValue(value.NewInteger(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.PushValue(value.NewInteger(2)); err != nil {
		t.Fatal(err)
	}
	v, err := s.PopValue()
	if err != nil {
		t.Fatal(err)
	}
	if v.AsLong() != 2 {
		t.Errorf("PopValue() = %v, want 2", v)
	}
	if s.ValueDepth() != 1 {
		t.Errorf("ValueDepth() = %d, want 1", s.ValueDepth())
	}
}

func TestValueStackOverflowAndUnderflow(t *testing.T) {
	s := New(1, 4)
	if err := s.PushValue(value.NewInteger(1)); err != nil {
		t.Fatal(err)
	}
	if err := s.PushValue(value.NewInteger(2)); err == nil {
		t.Error("expected overflow error")
	}

	s2 := New(1, 4)
	if _, err := s2.PopValue(); err == nil {
		t.Error("expected underflow error")
	}
}

func TestFrameScopeIsolation(t *testing.T) {
	s := New(8, 4)
	if err := s.PushFrame(0); err != nil {
		t.Fatal(err)
	}
	s.SetValue("x", value.NewInteger(1))

	if err := s.PushFrame(10); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.GetValue("x"); ok {
		t.Error("a new frame's scope should not see the caller's locals")
	}
	s.SetValue("x", value.NewInteger(2))

	if err := s.PopFrame(); err != nil {
		t.Fatal(err)
	}
	v, ok := s.GetValue("x")
	if !ok || v.AsLong() != 1 {
		t.Errorf("after popping the inner frame, outer x should be 1, got %v, %v", v, ok)
	}
}

func TestFrameCaseInsensitiveNames(t *testing.T) {
	s := New(8, 4)
	_ = s.PushFrame(0)
	s.SetValue("Count", value.NewInteger(5))
	v, ok := s.GetValue("count")
	if !ok || v.AsLong() != 5 {
		t.Errorf("expected case-insensitive lookup to find Count, got %v, %v", v, ok)
	}
}

func TestActivationStackOverflowAndUnderflow(t *testing.T) {
	s := New(8, 1)
	if err := s.PushFrame(0); err != nil {
		t.Fatal(err)
	}
	if err := s.PushFrame(1); err == nil {
		t.Error("expected activation stack overflow")
	}

	s2 := New(8, 1)
	if err := s2.PopFrame(); err == nil {
		t.Error("expected activation stack underflow")
	}
}

func TestResetClearsStacks(t *testing.T) {
	s := New(4, 4)
	_ = s.PushValue(value.NewInteger(1))
	_ = s.PushFrame(0)
	s.Reset()
	if s.ValueDepth() != 0 || s.FrameDepth() != 0 {
		t.Errorf("Reset() left ValueDepth=%d FrameDepth=%d, want 0, 0", s.ValueDepth(), s.FrameDepth())
	}
}
