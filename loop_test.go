package main

import (
	"reflect"
	"testing"
)

func TestControlLoopRunsInOrder(t *testing.T) {
	wakes := 0
	l := newControlLoop(func() { wakes++ })
	var got []int
	for i := 0; i < 3; i++ {
		i := i
		l.Invoke(func() { got = append(got, i) })
	}

	if n := l.Drain(); n != 3 {
		t.Errorf("Drain = %d, want 3", n)
	}
	if !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("order = %v", got)
	}
	if wakes != 3 {
		t.Errorf("wakes = %d, want 3", wakes)
	}
	if n := l.Drain(); n != 0 {
		t.Errorf("second Drain = %d, want 0", n)
	}
}

func TestControlLoopRecoversPanics(t *testing.T) {
	l := newControlLoop(nil)
	ran := false
	l.Invoke(func() { panic("boom") })
	l.Invoke(func() { ran = true })

	if n := l.Drain(); n != 2 {
		t.Errorf("Drain = %d, want 2", n)
	}
	if !ran {
		t.Error("op after a panic did not run")
	}
}
