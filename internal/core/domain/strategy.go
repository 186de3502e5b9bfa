package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// StrategyType selects how a task and its children are driven.
type StrategyType string

const (
	StrategySequential  StrategyType = "sequential"
	StrategyParallel    StrategyType = "parallel"
	StrategyConditional StrategyType = "conditional"
	StrategyBatch       StrategyType = "batch"
)

// ParseStrategyType validates and returns a StrategyType from its string
// form. The empty string defaults to sequential.
func ParseStrategyType(s string) (StrategyType, error) {
	switch StrategyType(s) {
	case StrategySequential, StrategyParallel, StrategyConditional, StrategyBatch:
		return StrategyType(s), nil
	}
	if s == "" {
		return StrategySequential, nil
	}
	return "", zerr.With(ErrInvalidStrategyType, "type", s)
}

// DefaultTimeout bounds a single atomic attempt when the strategy does not
// specify one.
const DefaultTimeout = 15 * time.Minute

// ExecutionStrategy is the policy governing how a task runs. It is immutable
// once selected for a run.
type ExecutionStrategy struct {
	Type                 StrategyType
	MaxConcurrency       int
	Retry                RetryPolicy
	Timeout              time.Duration
	RequiresConfirmation bool
	PreChecks            []string
	PostChecks           []string
}

// EffectiveTimeout returns the attempt timeout, falling back to
// DefaultTimeout when unset.
func (s *ExecutionStrategy) EffectiveTimeout() time.Duration {
	if s == nil || s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

// BackoffStrategy names the delay schedule between retry attempts.
type BackoffStrategy string

const (
	BackoffLinear      BackoffStrategy = "linear"
	BackoffExponential BackoffStrategy = "exponential"
	BackoffConstant    BackoffStrategy = "constant"
)

// RetryPolicy bounds the attempt loop of an atomic task.
type RetryPolicy struct {
	MaxRetries int
	Backoff    BackoffStrategy
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

// Attempts returns the number of attempts the policy allows, at least 1.
func (p RetryPolicy) Attempts() int {
	if p.MaxRetries < 1 {
		return 1
	}
	return p.MaxRetries
}

// BackoffDelay computes the delay before the retry following the given
// attempt (1-based). It is a pure function of the attempt number:
//
//	linear:      min(base*attempt, max)
//	exponential: min(base*2^(attempt-1), max)
//	constant:    base
func BackoffDelay(attempt int, p RetryPolicy) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	var d time.Duration
	switch p.Backoff {
	case BackoffLinear:
		d = p.BaseDelay * time.Duration(attempt)
	case BackoffExponential:
		d = p.BaseDelay
		for i := 1; i < attempt; i++ {
			d *= 2
			if p.MaxDelay > 0 && d >= p.MaxDelay {
				break
			}
		}
	default:
		return p.BaseDelay
	}

	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}
