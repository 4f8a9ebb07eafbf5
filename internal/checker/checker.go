// Package checker validates a two-operand integer function against a
// reference computation over uniformly drawn random operands.
package checker

import (
	"fmt"
	"math/rand/v2"
)

const (
	DefaultTrials = 100_000
	DefaultBound  = 1_000_000
)

// Checker runs a fixed number of sequential randomized trials
type Checker struct {
	trials    int
	bound     int64
	reference func(a, b int64) int64
}

// Option configures a Checker
type Option func(*Checker)

// WithTrials sets the number of trials to execute
func WithTrials(n int) Option {
	return func(c *Checker) {
		c.trials = n
	}
}

// WithBound sets the exclusive upper bound for both operands
func WithBound(bound int64) Option {
	return func(c *Checker) {
		c.bound = bound
	}
}

// WithReference replaces native addition as the expected computation
func WithReference(ref func(a, b int64) int64) Option {
	return func(c *Checker) {
		c.reference = ref
	}
}

// New creates a checker with 100000 trials over [0, 1000000) checked against a + b
func New(opts ...Option) *Checker {
	c := &Checker{
		trials: DefaultTrials,
		bound:  DefaultBound,
		reference: func(a, b int64) int64 {
			return a + b
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result describes a completed run
type Result struct {
	Trials int
}

// Trials returns the configured trial count
func (c *Checker) Trials() int {
	return c.trials
}

// Bound returns the configured operand bound
func (c *Checker) Bound() int64 {
	return c.bound
}

// Run executes the trials in index order, drawing a then b from rng for each.
// It stops at the first mismatch and returns a *MismatchError; trials after
// the failing one are never drawn.
func (c *Checker) Run(rng *rand.Rand, f func(a, b int64) int64) (Result, error) {
	if err := c.validate(rng, f); err != nil {
		return Result{}, err
	}

	for i := 0; i < c.trials; i++ {
		a := rng.Int64N(c.bound)
		b := rng.Int64N(c.bound)

		expected := c.reference(a, b)
		if actual := f(a, b); actual != expected {
			return Result{Trials: i + 1}, &MismatchError{
				Trial:    i,
				A:        a,
				B:        b,
				Expected: expected,
				Actual:   actual,
			}
		}
	}

	return Result{Trials: c.trials}, nil
}

func (c *Checker) validate(rng *rand.Rand, f func(a, b int64) int64) error {
	switch {
	case f == nil:
		return fmt.Errorf("%w: function under test is nil", ErrInvalidParameters)
	case rng == nil:
		return fmt.Errorf("%w: random source is nil", ErrInvalidParameters)
	case c.reference == nil:
		return fmt.Errorf("%w: reference function is nil", ErrInvalidParameters)
	case c.trials < 0:
		return fmt.Errorf("%w: trials must be non-negative, got %d", ErrInvalidParameters, c.trials)
	case c.bound <= 0:
		return fmt.Errorf("%w: bound must be positive, got %d", ErrInvalidParameters, c.bound)
	}
	return nil
}
