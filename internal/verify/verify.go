// Package verify checks arithmetic circuits against their classical
// semantics by exhaustive basis-state simulation. Every input assignment
// of the operand registers is prepared, run through the circuit, and the
// measured output compared with the expected modular result.
package verify

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/quforge/quarith/internal/arith"
	apperrors "github.com/quforge/quarith/internal/errors"
	"github.com/quforge/quarith/internal/qft"
	"github.com/quforge/quarith/internal/quantum"
	"github.com/quforge/quarith/internal/sim"
)

// Mismatch records one basis input whose measured output disagreed with
// the classical expectation.
type Mismatch struct {
	// Inputs holds the prepared register values, keyed by register name.
	Inputs map[string]uint64
	// Expected is the classically computed result.
	Expected uint64
	// Got is the simulated result.
	Got uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("inputs %v: expected %d, got %d", m.Inputs, m.Expected, m.Got)
}

// Report summarizes a verification sweep.
type Report struct {
	// Operator is the verified operator's display name.
	Operator string
	// Cases is the number of basis inputs checked.
	Cases int
	// Mismatches holds every disagreement found, in no particular order.
	Mismatches []Mismatch
	// Elapsed is the wall-clock sweep duration.
	Elapsed time.Duration
}

// OK reports whether the sweep found no mismatches.
func (r *Report) OK() bool { return len(r.Mismatches) == 0 }

// Err converts a failed report into an error, nil when the sweep passed.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return fmt.Errorf("verify: %s failed %d of %d cases, first: %s",
		r.Operator, len(r.Mismatches), r.Cases, r.Mismatches[0])
}

// sweepCase is one basis input of an exhaustive sweep, paired with its
// classical expectation.
type sweepCase struct {
	values   sim.RegisterValues
	output   *quantum.Register
	expected uint64
}

// sweep runs the cases across a worker pool, simulating each on its own
// state vector. The circuit itself is shared read-only between workers.
func sweep(ctx context.Context, operator string, c *quantum.Circuit, cases []sweepCase) (*Report, error) {
	start := time.Now()
	if c.Width() > sim.MaxWidth {
		return nil, apperrors.NewConfigError(
			"circuit %q is %d qubits wide, exceeding the %d-qubit simulation limit",
			operator, c.Width(), sim.MaxWidth)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	results := make(chan Mismatch, len(cases))
	for _, tc := range cases {
		tc := tc
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			basis, err := sim.RunBasis(c, tc.values)
			if err != nil {
				return fmt.Errorf("verify: simulating %q: %w", operator, err)
			}
			got := sim.RegisterValue(c, basis, tc.output)
			if got != tc.expected {
				inputs := make(map[string]uint64, len(tc.values))
				for reg, v := range tc.values {
					inputs[reg.Name()] = v
				}
				results <- Mismatch{Inputs: inputs, Expected: tc.expected, Got: got}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)

	report := &Report{Operator: operator, Cases: len(cases)}
	for m := range results {
		report.Mismatches = append(report.Mismatches, m)
	}
	report.Elapsed = time.Since(start)

	log.Debug().
		Str("operator", operator).
		Int("cases", report.Cases).
		Int("mismatches", len(report.Mismatches)).
		Dur("elapsed", report.Elapsed).
		Msg("verification sweep complete")
	return report, nil
}

// Transform verifies that a forward transform followed by its inverse is
// the identity on every basis state of the given width.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - width: The register width to verify.
//
// Returns:
//   - *Report: The sweep report.
//   - error: A ConfigError for invalid widths, a simulation error, or the
//     context's error on cancellation.
func Transform(ctx context.Context, width int) (*Report, error) {
	reg, err := quantum.NewRegister(width, "Q")
	if err != nil {
		return nil, err
	}
	forward, err := qft.New(qft.Options{Register: reg})
	if err != nil {
		return nil, err
	}
	inverse, err := qft.New(qft.Options{Register: reg, Inverse: true})
	if err != nil {
		return nil, err
	}

	c := quantum.NewCircuit("QFT·IQFT", reg)
	forward.AppendTo(c)
	inverse.AppendTo(c)

	cases := make([]sweepCase, 0, 1<<uint(width))
	for x := uint64(0); x < 1<<uint(width); x++ {
		cases = append(cases, sweepCase{
			values:   sim.RegisterValues{reg: x},
			output:   reg,
			expected: x,
		})
	}
	return sweep(ctx, "qft-roundtrip", c, cases)
}

// Adder verifies a Fourier adder or subtractor over every (target,
// operand) input pair, expecting (x ± a) mod 2^p on the target.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - targetWidth: The target register width p.
//   - operandWidth: The operand register width q, q < p.
//   - subtract: Whether to verify the subtracting variant.
//
// Returns:
//   - *Report: The sweep report.
//   - error: A ConfigError for invalid widths, a simulation error, or the
//     context's error on cancellation.
func Adder(ctx context.Context, targetWidth, operandWidth int, subtract bool) (*Report, error) {
	target, err := quantum.NewRegister(targetWidth, "X")
	if err != nil {
		return nil, err
	}
	operand, err := quantum.NewRegister(operandWidth, "A")
	if err != nil {
		return nil, err
	}
	adder, err := arith.NewAdder(arith.AdderOptions{
		Target:   target,
		Operand:  operand,
		Subtract: subtract,
	})
	if err != nil {
		return nil, err
	}
	c := adder.Build()

	mod := uint64(1) << uint(targetWidth)
	cases := make([]sweepCase, 0, (1<<uint(targetWidth))*(1<<uint(operandWidth)))
	for x := uint64(0); x < 1<<uint(targetWidth); x++ {
		for a := uint64(0); a < 1<<uint(operandWidth); a++ {
			expected := (x + a) % mod
			if subtract {
				expected = (x + mod - a%mod) % mod
			}
			cases = append(cases, sweepCase{
				values:   sim.RegisterValues{target: x, operand: a},
				output:   target,
				expected: expected,
			})
		}
	}
	name := "adder"
	if subtract {
		name = "subtractor"
	}
	return sweep(ctx, name, c, cases)
}

// Multiplier verifies a multiplier over every (multiplicand, multiplier)
// input pair with a zeroed accumulator, expecting m·n on the accumulator.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - multiplicandWidth: The multiplicand register width.
//   - multiplierWidth: The multiplier register width.
//
// Returns:
//   - *Report: The sweep report.
//   - error: A ConfigError for invalid widths, a simulation error, or the
//     context's error on cancellation.
func Multiplier(ctx context.Context, multiplicandWidth, multiplierWidth int) (*Report, error) {
	multiplicand, err := quantum.NewRegister(multiplicandWidth, "M")
	if err != nil {
		return nil, err
	}
	multiplier, err := quantum.NewRegister(multiplierWidth, "N")
	if err != nil {
		return nil, err
	}
	mul, err := arith.NewMultiplier(arith.MultiplierOptions{
		Multiplicand: multiplicand,
		Multiplier:   multiplier,
	})
	if err != nil {
		return nil, err
	}
	c := mul.Build()

	cases := make([]sweepCase, 0, (1<<uint(multiplicandWidth))*(1<<uint(multiplierWidth)))
	for m := uint64(0); m < 1<<uint(multiplicandWidth); m++ {
		for n := uint64(0); n < 1<<uint(multiplierWidth); n++ {
			cases = append(cases, sweepCase{
				values:   sim.RegisterValues{multiplicand: m, multiplier: n, mul.Target(): 0},
				output:   mul.Target(),
				expected: m * n,
			})
		}
	}
	return sweep(ctx, "multiplier", c, cases)
}
