// Package qft builds quantum Fourier transform circuits: the forward and
// inverse basis change that the arithmetic operators in internal/arith work
// in. A Transform is configured once at construction and Build is a pure
// function of that configuration.
package qft

import (
	"math"

	"github.com/rs/zerolog/log"

	apperrors "github.com/quforge/quarith/internal/errors"
	"github.com/quforge/quarith/internal/quantum"
)

// Options configures a Transform. The zero value is not valid: either
// Width >= 1 or an external Register must be supplied.
type Options struct {
	// Width is the register width when no external register is supplied.
	Width int
	// Inverse selects the inverse transform: the exact gate reversal and
	// angle negation of the forward sequence.
	Inverse bool
	// SkipReversal omits the final qubit-order reversal. The arithmetic
	// operators bracket their phase kicks with this variant; the kick
	// angle indexing is only correct against the reversal-free basis.
	SkipReversal bool
	// Register optionally supplies an external register to transform.
	// When set, Width is ignored and the register is borrowed, not owned.
	Register *quantum.Register
	// Label names the built circuit. Defaults to "QFT" or "IQFT".
	Label string
	// InsertBarrier inserts a barrier after each qubit's rotation block,
	// purely for visual segmentation.
	InsertBarrier bool
	// Debug logs a summary of the built circuit at debug level.
	Debug bool
}

// Transform builds QFT and inverse-QFT circuits over a single register.
type Transform struct {
	opts Options
	reg  *quantum.Register
}

// New creates a Transform from the given options.
//
// Parameters:
//   - opts: The immutable transform configuration.
//
// Returns:
//   - *Transform: The configured builder.
//   - error: A ConfigError when the effective width is below 1.
func New(opts Options) (*Transform, error) {
	reg := opts.Register
	if reg == nil {
		if opts.Width < 1 {
			return nil, apperrors.NewConfigError("transform width must be at least 1, got %d", opts.Width)
		}
		reg = quantum.MustRegister(opts.Width, "Q")
	} else if reg.Size() < 1 {
		return nil, apperrors.NewConfigError("transform register %q must have at least 1 qubit", reg.Name())
	}
	if opts.Label == "" {
		if opts.Inverse {
			opts.Label = "IQFT"
		} else {
			opts.Label = "QFT"
		}
	}
	return &Transform{opts: opts, reg: reg}, nil
}

// Register returns the register the transform operates on: the external
// register when one was supplied, an internally allocated one otherwise.
func (t *Transform) Register() *quantum.Register { return t.reg }

// Name returns the transform's display name.
func (t *Transform) Name() string { return t.opts.Label }

// step is one primitive operation of the forward sequence, using register
// indices. Keeping the sequence as data makes the inverse an exact
// reversal with negated angles, so round-tripping is identity by
// construction.
type step struct {
	kind  quantum.OpKind
	angle float64
	a, b  int
}

// forwardSteps generates the forward transform sequence.
//
// Qubits are processed from the highest index down: each qubit receives a
// Hadamard and then a controlled-phase rotation of angle π/2^(i−j) from
// every lower qubit j, so every control is still unrotated when used.
// After all qubits are processed the qubit order is reversed, unless
// configured away. On exit (without the reversal) qubit t carries phase
// x/2^(t+1) turns, the profile the Draper phase kicks are indexed against.
func (t *Transform) forwardSteps() []step {
	n := t.reg.Size()
	steps := make([]step, 0, n*(n+3)/2)
	for i := n - 1; i >= 0; i-- {
		steps = append(steps, step{kind: quantum.OpHadamard, a: i})
		for j := i - 1; j >= 0; j-- {
			steps = append(steps, step{
				kind:  quantum.OpPhase,
				angle: Angle(i - j),
				a:     j,
				b:     i,
			})
		}
		if t.opts.InsertBarrier {
			steps = append(steps, step{kind: quantum.OpBarrier})
		}
	}
	if !t.opts.SkipReversal {
		for k := 0; k < n/2; k++ {
			steps = append(steps, step{kind: quantum.OpSwap, a: k, b: n - 1 - k})
		}
	}
	return steps
}

// Build constructs the transform circuit. Repeated calls regenerate an
// equivalent circuit from scratch.
func (t *Transform) Build() *quantum.Circuit {
	c := quantum.NewCircuit(t.opts.Label, t.reg)
	t.AppendTo(c)
	if t.opts.Debug {
		log.Debug().
			Str("label", t.opts.Label).
			Int("width", t.reg.Size()).
			Int("size", c.Size()).
			Bool("inverse", t.opts.Inverse).
			Msg("transform built")
	}
	return c
}

// AppendTo appends the transform's gate sequence onto an existing circuit
// that declares the transform's register. It is used by operators that
// bracket their own phase kicks with the transform in one circuit.
func (t *Transform) AppendTo(c *quantum.Circuit) {
	steps := t.forwardSteps()
	if t.opts.Inverse {
		for i := len(steps) - 1; i >= 0; i-- {
			t.emit(c, steps[i], true)
		}
	} else {
		for _, s := range steps {
			t.emit(c, s, false)
		}
	}
}

func (t *Transform) emit(c *quantum.Circuit, s step, negate bool) {
	switch s.kind {
	case quantum.OpHadamard:
		c.H(t.reg.Qubit(s.a))
	case quantum.OpPhase:
		angle := s.angle
		if negate {
			angle = -angle
		}
		c.ControlledPhase(angle, t.reg.Qubit(s.a), t.reg.Qubit(s.b))
	case quantum.OpSwap:
		c.Swap(t.reg.Qubit(s.a), t.reg.Qubit(s.b))
	case quantum.OpBarrier:
		c.Barrier()
	}
}

// Gate reifies the built transform as a reusable composite gate.
func (t *Transform) Gate() *quantum.Gate {
	return t.Build().ToGate()
}

// Angle returns the controlled-phase rotation angle for a qubit-index
// distance d: π / 2^d radians.
func Angle(d int) float64 {
	return math.Pi / math.Pow(2, float64(d))
}
