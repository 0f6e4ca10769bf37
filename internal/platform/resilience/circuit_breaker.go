package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

// TransitionFunc observes state changes. It runs outside the breaker lock.
type TransitionFunc func(name string, from, to CircuitState)

// Breaker guards one upstream. Callers ask Allow before a request and report
// the outcome with Done. A disabled breaker admits everything and keeps no
// state.
type Breaker struct {
	name     string
	cfg      CircuitBreakerConfig
	onChange TransitionFunc
	now      func() time.Time

	mu       sync.Mutex
	state    CircuitState
	failures int
	openedAt time.Time
	probes   int
	passed   int
}

func NewBreaker(name string, cfg CircuitBreakerConfig) *Breaker {
	return &Breaker{
		name:  name,
		cfg:   cfg.Normalize(),
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

// OnTransition registers fn and returns the breaker for chaining.
func (b *Breaker) OnTransition(fn TransitionFunc) *Breaker {
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
	return b
}

func (b *Breaker) Name() string { return b.name }

func (b *Breaker) Enabled() bool { return b.cfg.Enabled }

// Allow admits a request or returns ErrCircuitOpen. While half-open only
// HalfOpenMaxReq probes are in flight at once.
func (b *Breaker) Allow() error {
	if !b.cfg.Enabled {
		return nil
	}

	b.mu.Lock()
	from := b.state
	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		b.enter(CircuitStateHalfOpen)
	}

	var err error
	switch b.state {
	case CircuitStateOpen:
		err = ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.probes >= b.cfg.HalfOpenMaxReq {
			err = ErrCircuitOpen
		} else {
			b.probes++
		}
	}
	to, fn := b.state, b.onChange
	b.mu.Unlock()

	b.notify(fn, from, to)
	return err
}

// Done reports the outcome of an admitted request. Only failures that say
// something about upstream health should be passed as failed.
func (b *Breaker) Done(failed bool) {
	if !b.cfg.Enabled {
		return
	}

	b.mu.Lock()
	from := b.state
	switch b.state {
	case CircuitStateClosed:
		if !failed {
			b.failures = 0
			break
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.enter(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		if b.probes > 0 {
			b.probes--
		}
		if failed {
			b.enter(CircuitStateOpen)
			break
		}
		b.passed++
		if b.passed >= b.cfg.HalfOpenMaxReq && b.probes == 0 {
			b.enter(CircuitStateClosed)
		}
	case CircuitStateOpen:
		if failed {
			b.openedAt = b.now()
		}
	}
	to, fn := b.state, b.onChange
	b.mu.Unlock()

	b.notify(fn, from, to)
}

// State reports open breakers whose timeout has elapsed as half-open.
func (b *Breaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == CircuitStateOpen && b.now().Sub(b.openedAt) >= b.cfg.OpenTimeout {
		return CircuitStateHalfOpen
	}
	return b.state
}

// enter resets the per-state counters. Callers hold mu.
func (b *Breaker) enter(state CircuitState) {
	b.state = state
	b.probes = 0
	b.passed = 0
	switch state {
	case CircuitStateClosed:
		b.failures = 0
		b.openedAt = time.Time{}
	case CircuitStateOpen:
		b.openedAt = b.now()
	}
}

func (b *Breaker) notify(fn TransitionFunc, from, to CircuitState) {
	if fn != nil && from != to {
		fn(b.name, from, to)
	}
}
