package core

import (
	"errors"
	"strings"
	"testing"
)

func TestGuardRecoversPanicIntoError(t *testing.T) {
	var got error
	ok := Guard(func(err error) { got = err }, func() {
		panic("boom")
	})

	if ok {
		t.Error("expected Guard to report failure")
	}
	var pe ErrPanic
	if !errors.As(got, &pe) {
		t.Fatalf("expected ErrPanic, got %T: %v", got, got)
	}
	if pe.Value != "boom" {
		t.Errorf("expected recovered value %q, got %v", "boom", pe.Value)
	}
	if !strings.Contains(pe.Error(), "panic: boom") {
		t.Errorf("unexpected error text: %s", pe.Error())
	}
}

func TestGuardNormalReturn(t *testing.T) {
	ran := false
	ok := Guard(func(error) { t.Error("error callback should not fire") }, func() {
		ran = true
	})

	if !ok || !ran {
		t.Errorf("expected normal run, ok=%v ran=%v", ok, ran)
	}
}

func TestGuardNilErrorCallback(t *testing.T) {
	ok := Guard(nil, func() { panic("dropped") })
	if ok {
		t.Error("expected Guard to report failure")
	}
}
