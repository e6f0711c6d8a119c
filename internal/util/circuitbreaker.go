package util

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// CircuitState represents the state of the circuit breaker
type CircuitState string

const (
	CircuitStateClosed   CircuitState = "CLOSED"
	CircuitStateOpen     CircuitState = "OPEN"
	CircuitStateHalfOpen CircuitState = "HALF_OPEN"
)

func (s CircuitState) String() string {
	return string(s)
}

// HealthCheckFunction is a function that checks if the service is healthy
type HealthCheckFunction func() bool

// CircuitBreaker implements the circuit breaker pattern around a flaky
// upstream service. Failures past the threshold open the circuit; a periodic
// health check probes for recovery.
type CircuitBreaker struct {
	state               CircuitState
	failureCount        int
	failureThreshold    int
	resetTimeout        time.Duration
	nextRetryTime       time.Time
	nextHealthCheckTime time.Time
	healthCheckInterval time.Duration
	isHealthChecking    bool
	healthCheckFn       HealthCheckFunction
	logger              *zap.Logger
	mu                  sync.RWMutex
}

type CircuitStatus struct {
	State         CircuitState
	FailureCount  int
	NextRetryTime *time.Time
}

func NewCircuitBreaker(
	failureThreshold int,
	resetTimeout time.Duration,
	healthCheckInterval time.Duration,
	healthCheckFn HealthCheckFunction,
	logger *zap.Logger,
) *CircuitBreaker {
	return &CircuitBreaker{
		state:               CircuitStateClosed,
		failureThreshold:    failureThreshold,
		resetTimeout:        resetTimeout,
		healthCheckInterval: healthCheckInterval,
		healthCheckFn:       healthCheckFn,
		logger:              logger,
	}
}

// CanExecute reports whether a call may proceed. When the circuit is open and
// the retry window has elapsed, a half-open probe is allowed through.
func (cb *CircuitBreaker) CanExecute() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitStateClosed:
		return true
	case CircuitStateHalfOpen:
		return true
	case CircuitStateOpen:
		if time.Now().After(cb.nextRetryTime) {
			cb.state = CircuitStateHalfOpen
			cb.logger.Info("Circuit breaker half-open, probing service")
			return true
		}
		cb.maybeScheduleHealthCheck()
		return false
	default:
		return false
	}
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state != CircuitStateClosed {
		cb.logger.Info("Circuit breaker closed after successful call",
			zap.String("previous_state", cb.state.String()),
		)
	}
	cb.state = CircuitStateClosed
	cb.failureCount = 0
}

func (cb *CircuitBreaker) RecordFailure(resetTimeout time.Duration) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	if cb.state == CircuitStateHalfOpen || cb.failureCount >= cb.failureThreshold {
		if resetTimeout <= 0 {
			resetTimeout = cb.resetTimeout
		}
		cb.state = CircuitStateOpen
		cb.nextRetryTime = time.Now().Add(resetTimeout)
		cb.logger.Warn("Circuit breaker opened",
			zap.Int("failure_count", cb.failureCount),
			zap.Time("next_retry", cb.nextRetryTime),
		)
	}
}

func (cb *CircuitBreaker) GetStatus() CircuitStatus {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	status := CircuitStatus{
		State:        cb.state,
		FailureCount: cb.failureCount,
	}
	if cb.state == CircuitStateOpen {
		retry := cb.nextRetryTime
		status.NextRetryTime = &retry
	}
	return status
}

// maybeScheduleHealthCheck runs the health check in the background at most
// once per interval. Caller must hold cb.mu.
func (cb *CircuitBreaker) maybeScheduleHealthCheck() {
	if cb.healthCheckFn == nil || cb.isHealthChecking {
		return
	}
	if time.Now().Before(cb.nextHealthCheckTime) {
		return
	}

	cb.isHealthChecking = true
	cb.nextHealthCheckTime = time.Now().Add(cb.healthCheckInterval)

	go func() {
		healthy := cb.healthCheckFn()

		cb.mu.Lock()
		defer cb.mu.Unlock()
		cb.isHealthChecking = false

		if healthy {
			cb.state = CircuitStateClosed
			cb.failureCount = 0
			cb.logger.Info("Circuit breaker closed after health check recovery")
		}
	}()
}
