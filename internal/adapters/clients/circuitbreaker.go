package clients

import (
	"sync"
	"time"
)

// State is the position of a CircuitBreaker.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen rejects requests until the cool-down has passed.
	StateOpen

	// StateHalfOpen lets a bounded number of probe requests through.
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}

	return stateNames[s]
}

// CircuitBreakerConfig configures a CircuitBreaker.
// MaxFailures and HalfOpenLimit below one are treated as one.
type CircuitBreakerConfig struct {
	// MaxFailures consecutive failures open the circuit.
	MaxFailures int

	// Timeout is how long the circuit stays open before probing.
	Timeout time.Duration

	// HalfOpenLimit bounds concurrent probes, and is also the number of
	// consecutive probe successes that close the circuit.
	HalfOpenLimit int
}

// Transition is a state change reported to the OnStateChange listener.
type Transition struct {
	From State
	To   State
	At   time.Time
}

// CircuitBreaker guards a downstream:
//
//	closed    -- MaxFailures failures    --> open
//	open      -- Timeout elapsed         --> half-open
//	half-open -- HalfOpenLimit successes --> closed
//	half-open -- any failure             --> open
//
// Every Allow that returns true must be followed by exactly one of
// RecordSuccess, RecordFailure or Release.
type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     State
	failures  int
	successes int
	probes    int
	openedAt  time.Time
	listener  func(Transition)
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	cfg.MaxFailures = max(cfg.MaxFailures, 1)
	cfg.HalfOpenLimit = max(cfg.HalfOpenLimit, 1)

	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// OnStateChange registers fn to be called after every transition.
// fn runs on the goroutine that caused the change, outside the lock.
func (cb *CircuitBreaker) OnStateChange(fn func(Transition)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.listener = fn
}

// Allow reports whether a request may proceed. An open circuit whose
// cool-down has passed moves to half-open and admits the caller as a probe.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()

	var (
		allowed bool
		changed *Transition
	)

	switch cb.state {
	case StateClosed:
		allowed = true

	case StateOpen:
		if cb.now().Sub(cb.openedAt) >= cb.cfg.Timeout {
			changed = cb.moveLocked(StateHalfOpen)
			cb.probes = 1
			allowed = true
		}

	case StateHalfOpen:
		if cb.probes < cb.cfg.HalfOpenLimit {
			cb.probes++
			allowed = true
		}
	}

	cb.unlockAndNotify(changed)

	return allowed
}

// RecordSuccess reports a completed request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()

	var changed *Transition

	switch cb.state {
	case StateClosed:
		cb.failures = 0

	case StateHalfOpen:
		cb.probes = max(cb.probes-1, 0)
		cb.successes++

		if cb.successes >= cb.cfg.HalfOpenLimit {
			changed = cb.moveLocked(StateClosed)
		}
	}

	cb.unlockAndNotify(changed)
}

// RecordFailure reports a failed request. Failures while open push the
// end of the cool-down back.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()

	var changed *Transition

	switch cb.state {
	case StateClosed:
		cb.failures++

		if cb.failures >= cb.cfg.MaxFailures {
			changed = cb.moveLocked(StateOpen)
		}

	case StateHalfOpen:
		cb.probes = max(cb.probes-1, 0)
		changed = cb.moveLocked(StateOpen)

	case StateOpen:
		cb.openedAt = cb.now()
	}

	cb.unlockAndNotify(changed)
}

// Release gives back an admitted request that ended without telling
// anything about the downstream, such as one cancelled by its caller.
func (cb *CircuitBreaker) Release() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateHalfOpen {
		cb.probes = max(cb.probes-1, 0)
	}
}

// State returns the current state without advancing it.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// moveLocked switches state and resets the counters. cb.mu must be held.
func (cb *CircuitBreaker) moveLocked(to State) *Transition {
	if cb.state == to {
		return nil
	}

	t := &Transition{From: cb.state, To: to, At: cb.now()}

	cb.state = to
	cb.failures = 0
	cb.successes = 0

	if to == StateOpen {
		cb.openedAt = t.At
	}

	if to != StateHalfOpen {
		cb.probes = 0
	}

	return t
}

func (cb *CircuitBreaker) unlockAndNotify(t *Transition) {
	listener := cb.listener
	cb.mu.Unlock()

	if t != nil && listener != nil {
		listener(*t)
	}
}
