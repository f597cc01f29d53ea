// Package arith builds Fourier-basis arithmetic operators: a Draper-style
// in-place adder/subtractor and a repeated-controlled-addition multiplier
// composed from it. Operators are configured once at construction, validate
// all register-size relationships there, and Build is then a pure function
// of the configuration that cannot fail.
package arith

import (
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/quforge/quarith/internal/errors"
	"github.com/quforge/quarith/internal/qft"
	"github.com/quforge/quarith/internal/quantum"
)

// Builder is the common interface of circuit operator builders. Build
// regenerates the operator circuit from scratch on every call; two builds
// of the same configuration produce identical gate sequences.
type Builder interface {
	// Build constructs and returns the operator circuit.
	Build() *quantum.Circuit

	// Name returns the display name of the operator.
	Name() string
}

// Angle returns the Draper phase angle for a qubit-index distance d:
// π / 2^d radians, negated in subtraction mode.
//
// Parameters:
//   - d: The distance between target and control qubit indices.
//   - subtract: Whether the operator encodes subtraction.
//
// Returns:
//   - float64: The encoded phase angle in radians.
func Angle(d int, subtract bool) float64 {
	a := math.Pi / math.Pow(2, float64(d))
	if subtract {
		return -a
	}
	return a
}

// AdderOptions configures an Adder. Registers come in two flavors: leave
// Target and Operand nil and set Width to have the adder allocate its own
// registers (operand of Width qubits, target of Width+1), or supply both
// externally. External registers are borrowed, never owned.
type AdderOptions struct {
	// Width is the operand register width for internally allocated
	// registers. Ignored when external registers are supplied.
	Width int
	// Subtract selects X ← X − A instead of X ← X + A.
	Subtract bool
	// SkipQFT asserts the target register is already in the Fourier basis
	// on entry and must remain so on exit, and skips the bracketing
	// transforms. Used when the adder is nested inside a larger
	// Fourier-domain computation.
	SkipQFT bool
	// Target optionally supplies the external target register X.
	Target *quantum.Register
	// Operand optionally supplies the external operand register A.
	Operand *quantum.Register
	// Label names the built circuit. Defaults to "|X+A⟩" or "|X−A⟩".
	Label string
	// InsertBarrier inserts barriers between logical blocks, purely for
	// visual segmentation.
	InsertBarrier bool
	// Debug logs a summary of the built circuit at debug level.
	Debug bool
}

// Adder builds an in-place Fourier-basis adder/subtractor X ← X ± A.
//
// The target register must be strictly wider than the operand: the extra
// high-order qubit absorbs the carry of the largest representable sum, so
// no legitimate addition whose true sum fits the target width wraps.
// Arithmetic is modular: results wrap mod 2^len(X).
type Adder struct {
	opts    AdderOptions
	target  *quantum.Register
	operand *quantum.Register
	owns    bool
}

// NewAdder creates an Adder from the given options.
//
// Parameters:
//   - opts: The immutable adder configuration.
//
// Returns:
//   - *Adder: The configured builder.
//   - error: A ConfigError when exactly one external register is supplied,
//     when the target is not strictly wider than the operand, or when the
//     internal width is below 1.
func NewAdder(opts AdderOptions) (*Adder, error) {
	a := &Adder{opts: opts}
	switch {
	case opts.Target != nil && opts.Operand != nil:
		if opts.Target.Size() <= opts.Operand.Size() {
			return nil, apperrors.NewConfigError(
				"adder target register %q (size %d) must be strictly wider than operand %q (size %d) to hold the carry",
				opts.Target.Name(), opts.Target.Size(), opts.Operand.Name(), opts.Operand.Size())
		}
		a.target = opts.Target
		a.operand = opts.Operand
	case opts.Target != nil || opts.Operand != nil:
		return nil, apperrors.NewConfigError("adder requires both target and operand registers when either is supplied")
	default:
		if opts.Width < 1 {
			return nil, apperrors.NewConfigError("adder width must be at least 1, got %d", opts.Width)
		}
		a.target = quantum.MustRegister(opts.Width+1, "X")
		a.operand = quantum.MustRegister(opts.Width, "A")
		a.owns = true
	}
	if a.opts.Label == "" {
		if opts.Subtract {
			a.opts.Label = "|X−A⟩"
		} else {
			a.opts.Label = "|X+A⟩"
		}
	}
	return a, nil
}

// Name returns the adder's display name.
func (a *Adder) Name() string { return a.opts.Label }

// Target returns the target register X.
func (a *Adder) Target() *quantum.Register { return a.target }

// Operand returns the operand register A.
func (a *Adder) Operand() *quantum.Register { return a.operand }

// OwnsRegisters reports whether the adder allocated its registers itself.
func (a *Adder) OwnsRegisters() bool { return a.owns }

// Build constructs the adder circuit: the forward transform on X (unless
// skipped), the Draper phase kicks from every operand qubit onto every
// target qubit at or above it, and the inverse transform (unless skipped).
func (a *Adder) Build() *quantum.Circuit {
	start := time.Now()
	c := quantum.NewCircuit(a.opts.Label, a.target, a.operand)

	a.applyTransform(c, false)
	a.applyKicks(c)
	a.applyTransform(c, true)

	recordBuild("adder", c, time.Since(start))
	if a.opts.Debug {
		log.Debug().
			Str("operator", a.opts.Label).
			Int("target_width", a.target.Size()).
			Int("operand_width", a.operand.Size()).
			Int("size", c.Size()).
			Bool("subtract", a.opts.Subtract).
			Msg("adder built")
	}
	return c
}

// applyTransform brackets the kicks with the reversal-free Fourier
// transform on the target register. The kick angle indexing π/2^(t−c) is
// derived against that basis; see the qft package.
func (a *Adder) applyTransform(c *quantum.Circuit, inverse bool) {
	if a.opts.SkipQFT {
		return
	}
	t, err := qft.New(qft.Options{
		Register:     a.target,
		Inverse:      inverse,
		SkipReversal: true,
	})
	if err != nil {
		// The constructor validated target width; a failure here is a
		// broken invariant, not a user error.
		panic(fmt.Sprintf("arith: adder transform: %v", err))
	}
	t.AppendTo(c)
	if !inverse {
		a.barrier(c)
	}
}

// applyKicks appends the Draper controlled-phase rotations: for every
// operand bit c and every target bit t ≥ c, a rotation of angle
// ±π/2^(t−c) with control A[c] and target X[t].
func (a *Adder) applyKicks(c *quantum.Circuit) {
	for ctrl := 0; ctrl < a.operand.Size(); ctrl++ {
		for tgt := ctrl; tgt < a.target.Size(); tgt++ {
			angle := Angle(tgt-ctrl, a.opts.Subtract)
			c.ControlledPhase(angle, a.operand.Qubit(ctrl), a.target.Qubit(tgt))
		}
		a.barrier(c)
	}
}

func (a *Adder) barrier(c *quantum.Circuit) {
	if a.opts.InsertBarrier {
		c.Barrier()
	}
}

// Gate reifies the built adder as a reusable composite gate over the
// flattened (target, operand) qubit order.
func (a *Adder) Gate() *quantum.Gate {
	return a.Build().ToGate()
}
