package arith

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/quforge/quarith/internal/errors"
	"github.com/quforge/quarith/internal/qft"
	"github.com/quforge/quarith/internal/quantum"
)

// MultiplierOptions configures a Multiplier. Multiplicand and Multiplier
// registers are required; the accumulator is allocated at size m+n when
// absent.
type MultiplierOptions struct {
	// Multiplicand is the register M whose value is repeatedly added.
	Multiplicand *quantum.Register
	// Multiplier is the register N whose bits control the repetitions.
	Multiplier *quantum.Register
	// Target optionally supplies the accumulator register Y. When set it
	// must hold at least len(M)+len(N) qubits so M·N cannot overflow it.
	Target *quantum.Register
	// Subtract selects Y ← Y − M·N instead of Y ← Y + M·N.
	Subtract bool
	// SkipQFT asserts the accumulator is already in the Fourier basis on
	// entry and must remain so on exit.
	SkipQFT bool
	// MaxRepetitions caps the total controlled-adder applications
	// (2^len(N) − 1). Zero means no cap. The repetition count grows
	// exponentially with the multiplier width; callers that accept
	// arbitrary widths should set a cap.
	MaxRepetitions int64
	// Label names the built circuit. Defaults to "|Y+M×N⟩" or "|Y−M×N⟩".
	Label string
	// InsertBarrier inserts barriers between logical blocks, purely for
	// visual segmentation.
	InsertBarrier bool
	// Debug logs a summary of the built circuit at debug level.
	Debug bool
}

// Multiplier builds Y ← Y ± M·N from one Fourier adder: the adder over
// (target=Y, operand=M) is built in the Fourier basis, reified as a gate,
// wrapped with a single control qubit, and applied 2^i times under control
// N[i] for each bit i of the multiplier. Bit i carries weight 2^i, so the
// gated repetitions add M exactly N times using only single-qubit controls,
// at a gate count of O(2^len(N)).
type Multiplier struct {
	opts         MultiplierOptions
	multiplicand *quantum.Register
	multiplier   *quantum.Register
	target       *quantum.Register
	ownsTarget   bool
}

// NewMultiplier creates a Multiplier from the given options.
//
// Parameters:
//   - opts: The immutable multiplier configuration.
//
// Returns:
//   - *Multiplier: The configured builder.
//   - error: A ConfigError when a required register is missing or empty,
//     when a supplied accumulator is undersized, or when the repetition
//     cap is exceeded.
func NewMultiplier(opts MultiplierOptions) (*Multiplier, error) {
	if opts.Multiplicand == nil || opts.Multiplier == nil {
		return nil, apperrors.NewConfigError("multiplier requires both multiplicand and multiplier registers")
	}
	m, n := opts.Multiplicand.Size(), opts.Multiplier.Size()
	if m < 1 || n < 1 {
		return nil, apperrors.NewConfigError("multiplicand and multiplier registers must each have at least 1 qubit (got %d and %d)", m, n)
	}
	if opts.MaxRepetitions > 0 {
		if n > 62 || (int64(1)<<uint(n))-1 > opts.MaxRepetitions {
			return nil, apperrors.NewConfigError(
				"multiplier width %d requires 2^%d−1 controlled additions, exceeding the configured cap of %d",
				n, n, opts.MaxRepetitions)
		}
	}

	required := m + n
	mul := &Multiplier{
		opts:         opts,
		multiplicand: opts.Multiplicand,
		multiplier:   opts.Multiplier,
	}
	if opts.Target == nil {
		mul.target = quantum.MustRegister(required, "Y")
		mul.ownsTarget = true
	} else {
		if opts.Target.Size() < required {
			return nil, apperrors.NewConfigError(
				"multiplier accumulator %q (size %d) must hold at least %d qubits",
				opts.Target.Name(), opts.Target.Size(), required)
		}
		mul.target = opts.Target
	}
	if mul.opts.Label == "" {
		if opts.Subtract {
			mul.opts.Label = "|Y−M×N⟩"
		} else {
			mul.opts.Label = "|Y+M×N⟩"
		}
	}
	return mul, nil
}

// Name returns the multiplier's display name.
func (m *Multiplier) Name() string { return m.opts.Label }

// Target returns the accumulator register Y.
func (m *Multiplier) Target() *quantum.Register { return m.target }

// Multiplicand returns the register M.
func (m *Multiplier) Multiplicand() *quantum.Register { return m.multiplicand }

// MultiplierReg returns the register N.
func (m *Multiplier) MultiplierReg() *quantum.Register { return m.multiplier }

// Repetitions returns the total number of controlled-adder applications
// the built circuit contains: 2^len(N) − 1.
func (m *Multiplier) Repetitions() int64 {
	return (int64(1) << uint(m.multiplier.Size())) - 1
}

// Build constructs the multiplier circuit. Progress is discarded; use
// BuildWithObservers to watch long builds.
func (m *Multiplier) Build() *quantum.Circuit {
	return m.BuildWithObservers(nil)
}

// BuildWithObservers constructs the multiplier circuit, notifying the
// subject's observers as the exponentially repeated controlled additions
// are appended.
//
// Parameters:
//   - subject: The progress subject with registered observers. If nil,
//     progress is ignored.
//
// Returns:
//   - *quantum.Circuit: The completed multiplier circuit.
func (m *Multiplier) BuildWithObservers(subject *BuildSubject) *quantum.Circuit {
	start := time.Now()
	reporter := subject.AsReporter()

	c := quantum.NewCircuit(m.opts.Label, m.target, m.multiplicand, m.multiplier)

	m.applyTransform(c, false)
	m.applyControlledAdditions(c, reporter)
	m.applyTransform(c, true)

	reporter(1.0)
	recordBuild("multiplier", c, time.Since(start))
	if m.opts.Debug {
		log.Debug().
			Str("operator", m.opts.Label).
			Int("multiplicand_width", m.multiplicand.Size()).
			Int("multiplier_width", m.multiplier.Size()).
			Int("target_width", m.target.Size()).
			Int64("repetitions", m.Repetitions()).
			Int("size", c.Size()).
			Msg("multiplier built")
	}
	return c
}

func (m *Multiplier) applyTransform(c *quantum.Circuit, inverse bool) {
	if m.opts.SkipQFT {
		return
	}
	t, err := qft.New(qft.Options{
		Register:     m.target,
		Inverse:      inverse,
		SkipReversal: true,
	})
	if err != nil {
		panic(fmt.Sprintf("arith: multiplier transform: %v", err))
	}
	t.AppendTo(c)
	if !inverse && m.opts.InsertBarrier {
		c.Barrier()
	}
}

// controlledAdder builds the single reusable controlled add-by-M gate the
// repetitions apply: the Fourier-basis adder over (Y, M) reified and
// wrapped with one control qubit.
func (m *Multiplier) controlledAdder() *quantum.Gate {
	adder, err := NewAdder(AdderOptions{
		Target:   m.target,
		Operand:  m.multiplicand,
		Subtract: m.opts.Subtract,
		SkipQFT:  true,
	})
	if err != nil {
		// len(Y) >= m+n > m guarantees the adder's width rule; a failure
		// here is a broken invariant, not a user error.
		panic(fmt.Sprintf("arith: multiplier adder: %v", err))
	}
	return adder.Gate().Controlled(1)
}

// applyControlledAdditions appends the controlled adder 2^i times under
// control N[i] for each bit i, reporting progress across the total
// repetition count.
func (m *Multiplier) applyControlledAdditions(c *quantum.Circuit, reporter ProgressReporter) {
	cadd := m.controlledAdder()
	operands := append(m.target.Qubits(), m.multiplicand.Qubits()...)
	total := float64(m.Repetitions())

	done := int64(0)
	for i := 0; i < m.multiplier.Size(); i++ {
		reps := int64(1) << uint(i)
		qubits := append([]quantum.Qubit{m.multiplier.Qubit(i)}, operands...)
		for r := int64(0); r < reps; r++ {
			c.Append(cadd, qubits...)
			done++
		}
		reporter(float64(done) / total)
		if m.opts.InsertBarrier {
			c.Barrier()
		}
	}
}
