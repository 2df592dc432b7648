package infra

import (
	"errors"
	"sync"
	"time"
)

// CircuitBreaker guards the SMTP relay. Every supplier notification goes out
// through Execute; after enough consecutive failures the breaker opens and
// order dispatch fast-fails until a trial send succeeds, so a dead relay
// never ties up the worker pool on timeouts.
//
// closed → open after FailureThreshold consecutive failures.
// open → half-open once OpenTimeout has elapsed since the last failure.
// half-open → closed after SuccessThreshold trial sends in a row,
// back to open on the first trial failure.

// CBState is the breaker state, exposed by /health as smtp status.
type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned by Execute while the breaker fast-fails. The
// retry cron treats it like any other send failure and backs off.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration
}

// DefaultCBConfig: trip after 5 straight failures, retry after 60s, close
// again after 2 good sends.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		OpenTimeout:      60 * time.Second,
	}
}

type CircuitBreaker struct {
	mu        sync.Mutex
	state     CBState
	fallos    int
	aciertos  int
	ultimoErr time.Time
	cfg       CircuitBreakerConfig
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 60 * time.Second
	}
	return &CircuitBreaker{state: CBClosed, cfg: cfg}
}

// State reports the current state, promoting open to half-open when the
// retry window has arrived. Safe for concurrent use.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state == CBOpen && time.Since(cb.ultimoErr) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.aciertos = 0
	}
	return cb.state
}

// Execute runs fn unless the breaker is open, and feeds the outcome back
// into the state machine.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if cb.State() == CBOpen {
		return ErrCircuitOpen
	}

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.registrarFallo()
		return err
	}
	cb.registrarAcierto()
	return nil
}

func (cb *CircuitBreaker) registrarFallo() {
	cb.fallos++
	cb.ultimoErr = time.Now()

	switch cb.state {
	case CBClosed:
		if cb.fallos >= cb.cfg.FailureThreshold {
			cb.state = CBOpen
			cb.aciertos = 0
		}
	case CBHalfOpen:
		// The trial send failed, wait out another window.
		cb.state = CBOpen
		cb.fallos = 0
	}
}

func (cb *CircuitBreaker) registrarAcierto() {
	switch cb.state {
	case CBClosed:
		cb.fallos = 0
	case CBHalfOpen:
		cb.aciertos++
		if cb.aciertos >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.fallos = 0
			cb.aciertos = 0
		}
	}
}
