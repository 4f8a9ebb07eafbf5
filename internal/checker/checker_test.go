package checker

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func plus(a, b int64) int64 { return a + b }

func TestNewDefaults(t *testing.T) {
	c := New()
	assert.Equal(t, 100_000, c.Trials())
	assert.Equal(t, int64(1_000_000), c.Bound())
}

func TestRun_CorrectFunctionPasses(t *testing.T) {
	res, err := New().Run(newRand(42), plus)
	require.NoError(t, err)
	assert.Equal(t, DefaultTrials, res.Trials)
}

func TestRun_OffByOneFailsOnFirstTrial(t *testing.T) {
	calls := 0
	offByOne := func(a, b int64) int64 {
		calls++
		return a + b + 1
	}

	res, err := New().Run(newRand(7), offByOne)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrArithmeticMismatch))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, res.Trials)

	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 0, mismatch.Trial)
	assert.Equal(t, mismatch.A+mismatch.B, mismatch.Expected)
	assert.Equal(t, mismatch.Expected+1, mismatch.Actual)
}

func TestRun_SubtractionFailsOnFirstNonZeroB(t *testing.T) {
	const seed = 99
	minus := func(a, b int64) int64 { return a - b }

	_, err := New().Run(newRand(seed), minus)
	var mismatch *MismatchError
	require.True(t, errors.As(err, &mismatch))

	// replay the stream to find where b first differs from zero
	replay := newRand(seed)
	want := -1
	for i := 0; i < DefaultTrials; i++ {
		replay.Int64N(DefaultBound)
		if replay.Int64N(DefaultBound) != 0 {
			want = i
			break
		}
	}
	assert.Equal(t, want, mismatch.Trial)
	assert.NotZero(t, mismatch.B)
}

func TestRun_SameSeedSameFailure(t *testing.T) {
	// wrong only for even a
	flaky := func(a, b int64) int64 {
		if a%2 == 0 {
			return a + b + 2
		}
		return a + b
	}

	_, err1 := New().Run(newRand(1234), flaky)
	_, err2 := New().Run(newRand(1234), flaky)

	var m1, m2 *MismatchError
	require.True(t, errors.As(err1, &m1))
	require.True(t, errors.As(err2, &m2))
	assert.Equal(t, *m1, *m2)
}

func TestRun_OperandsWithinBound(t *testing.T) {
	const bound = 10
	seen := make(map[int64]bool)
	check := func(a, b int64) int64 {
		if a < 0 || a >= bound || b < 0 || b >= bound {
			t.Fatalf("operands out of range: a=%d b=%d", a, b)
		}
		seen[a] = true
		return a + b
	}

	_, err := New(WithTrials(1000), WithBound(bound)).Run(newRand(3), check)
	require.NoError(t, err)
	assert.Len(t, seen, bound)
}

func TestRun_ZeroTrials(t *testing.T) {
	called := false
	res, err := New(WithTrials(0)).Run(newRand(1), func(a, b int64) int64 {
		called = true
		return 0
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Trials)
	assert.False(t, called)
}

func TestRun_CustomReference(t *testing.T) {
	mul := func(a, b int64) int64 { return a * b }
	_, err := New(WithTrials(500), WithReference(mul)).Run(newRand(5), mul)
	assert.NoError(t, err)
}

func TestRun_InvalidParameters(t *testing.T) {
	tests := []struct {
		name    string
		checker *Checker
		rng     *rand.Rand
		f       func(a, b int64) int64
	}{
		{name: "nil function", checker: New(), rng: newRand(1), f: nil},
		{name: "nil random source", checker: New(), rng: nil, f: plus},
		{name: "nil reference", checker: New(WithReference(nil)), rng: newRand(1), f: plus},
		{name: "negative trials", checker: New(WithTrials(-1)), rng: newRand(1), f: plus},
		{name: "zero bound", checker: New(WithBound(0)), rng: newRand(1), f: plus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.checker.Run(tt.rng, tt.f)
			assert.ErrorIs(t, err, ErrInvalidParameters)
			assert.NotErrorIs(t, err, ErrArithmeticMismatch)
		})
	}
}

func TestRunProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("correct addition passes for any seed", prop.ForAll(
		func(seed uint64) bool {
			_, err := New(WithTrials(1000)).Run(newRand(seed), plus)
			return err == nil
		},
		gen.UInt64(),
	))

	properties.Property("a + b + 1 fails on trial 0 for any seed", prop.ForAll(
		func(seed uint64) bool {
			_, err := New().Run(newRand(seed), func(a, b int64) int64 { return a + b + 1 })
			var mismatch *MismatchError
			return errors.As(err, &mismatch) && mismatch.Trial == 0
		},
		gen.UInt64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
