package main

import (
	"runtime/debug"
	"time"
)

const longOpThreshold = 200 * time.Millisecond

// controlLoop serializes every state mutation onto one thread. Invoke may be
// called from any goroutine; Drain runs queued operations and must only be
// called from the control thread.
type controlLoop struct {
	ops  chan func()
	wake func()
}

func newControlLoop(wake func()) *controlLoop {
	return &controlLoop{ops: make(chan func(), 64), wake: wake}
}

func (l *controlLoop) Invoke(fn func()) {
	select {
	case l.ops <- fn:
	default:
		go func() { l.ops <- fn }()
	}
	if l.wake != nil {
		l.wake()
	}
}

// Drain runs queued operations until the queue is empty and returns how
// many ran.
func (l *controlLoop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.ops:
			l.run(fn)
			n++
		default:
			return n
		}
	}
}

func (l *controlLoop) run(fn func()) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Printf("[LOOP] op recovered: %v\n%s", r, debug.Stack())
		}
		if dur := time.Since(start); dur > longOpThreshold {
			logger.Printf("[LOOP] long-running op: %s", dur)
		}
	}()
	fn()
}

func safeDefer(where string) {
	if r := recover(); r != nil {
		logger.Printf("[RECOVER] %s: %v", where, r)
	}
}
