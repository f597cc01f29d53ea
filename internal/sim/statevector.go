// Package sim provides statevector evaluation of built circuits. It exists
// to verify the operator builders: tests and the verification sweep run a
// circuit on every computational-basis input and read back the resulting
// basis value. It is deliberately small and is not part of the operator API.
//
// Convention: wire index w of a circuit is bit w of the basis-state index,
// so register qubit 0 is the least significant bit of that register's value.
package sim

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/quforge/quarith/internal/quantum"
)

// MaxWidth bounds the simulated circuit width. 2^24 amplitudes is already
// 256 MiB of complex128; anything wider is outside this tool's verification
// range.
const MaxWidth = 24

// StateVector holds the 2^width complex amplitudes of a register file.
type StateVector struct {
	amps  []complex128
	width int
}

// New creates a statevector of the given width initialized to |0...0⟩.
//
// Parameters:
//   - width: The number of qubits (0 <= width <= MaxWidth).
//
// Returns:
//   - *StateVector: The initialized state.
//   - error: An error if the width is out of range.
func New(width int) (*StateVector, error) {
	if width < 0 || width > MaxWidth {
		return nil, fmt.Errorf("sim: width %d outside supported range [0, %d]", width, MaxWidth)
	}
	s := &StateVector{
		amps:  make([]complex128, 1<<width),
		width: width,
	}
	s.amps[0] = 1
	return s, nil
}

// Width returns the number of qubits.
func (s *StateVector) Width() int { return s.width }

// Amplitude returns the amplitude of basis state i.
func (s *StateVector) Amplitude(i int) complex128 { return s.amps[i] }

// SetBasis resets the state to the computational basis state |value⟩.
func (s *StateVector) SetBasis(value int) error {
	if value < 0 || value >= len(s.amps) {
		return fmt.Errorf("sim: basis value %d out of range for width %d", value, s.width)
	}
	for i := range s.amps {
		s.amps[i] = 0
	}
	s.amps[value] = 1
	return nil
}

// controlsMask folds a list of control wires into a bit mask.
func controlsMask(controls []int) int {
	mask := 0
	for _, c := range controls {
		mask |= 1 << c
	}
	return mask
}

// applyH applies a Hadamard on wire q, restricted to basis states whose
// control bits are all set.
func (s *StateVector) applyH(q int, ctrlMask int) {
	hFactor := complex(1.0/math.Sqrt2, 0)
	bit := 1 << q
	for i := range s.amps {
		if i&bit != 0 || i&ctrlMask != ctrlMask {
			continue
		}
		j := i | bit
		a, b := s.amps[i], s.amps[j]
		s.amps[i] = hFactor * (a + b)
		s.amps[j] = hFactor * (a - b)
	}
}

// applyPhase multiplies amplitudes of basis states with wire q set (and all
// control bits set) by e^{i·angle}.
func (s *StateVector) applyPhase(angle float64, q int, ctrlMask int) {
	factor := cmplx.Exp(complex(0, angle))
	bit := 1 << q
	for i := range s.amps {
		if i&bit != 0 && i&ctrlMask == ctrlMask {
			s.amps[i] *= factor
		}
	}
}

// applySwap exchanges wires a and b, restricted to basis states whose
// control bits are all set.
func (s *StateVector) applySwap(a, b int, ctrlMask int) {
	bitA, bitB := 1<<a, 1<<b
	for i := range s.amps {
		if i&bitA != 0 && i&bitB == 0 && i&ctrlMask == ctrlMask {
			j := i ^ bitA ^ bitB
			s.amps[i], s.amps[j] = s.amps[j], s.amps[i]
		}
	}
}

// applyOp dispatches one primitive operation. For OpPhase, all operand
// wires except the last act as conditions alongside the accumulated
// controls, matching the instruction encoding of the quantum package.
func (s *StateVector) applyOp(kind quantum.OpKind, angle float64, operands, controls []int) error {
	mask := controlsMask(controls)
	switch kind {
	case quantum.OpHadamard:
		s.applyH(operands[0], mask)
	case quantum.OpPhase:
		target := operands[len(operands)-1]
		mask |= controlsMask(operands[:len(operands)-1])
		s.applyPhase(angle, target, mask)
	case quantum.OpSwap:
		s.applySwap(operands[0], operands[1], mask)
	default:
		return fmt.Errorf("sim: unsupported operation kind %d", kind)
	}
	return nil
}

// Apply runs every instruction of the circuit against the state, expanding
// composite gates (including their control qubits). Barriers are ignored.
//
// Parameters:
//   - c: The circuit to run; its width must match the state's width.
//
// Returns:
//   - error: An error if the circuit width mismatches or an operation
//     cannot be simulated.
func (s *StateVector) Apply(c *quantum.Circuit) error {
	if c.Width() != s.width {
		return fmt.Errorf("sim: circuit width %d does not match state width %d", c.Width(), s.width)
	}
	for _, op := range c.Instructions() {
		switch op.Kind {
		case quantum.OpBarrier:
			continue
		case quantum.OpGate:
			qubits := make([]int, len(op.Qubits))
			for i, q := range op.Qubits {
				qubits[i] = c.QubitIndex(q)
			}
			if err := op.Gate.Walk(qubits, s.applyOp); err != nil {
				return err
			}
		default:
			operands := make([]int, len(op.Qubits))
			for i, q := range op.Qubits {
				operands[i] = c.QubitIndex(q)
			}
			if err := s.applyOp(op.Kind, op.Angle, operands, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

// BasisTolerance is the amplitude tolerance used when deciding that a state
// is a computational basis state.
const BasisTolerance = 1e-9

// MeasureBasis returns the basis index of the state when the state is, up
// to global phase, a single computational basis state. It errors when the
// state is a genuine superposition, which in this module's usage indicates
// a broken operator rather than expected physics.
func (s *StateVector) MeasureBasis() (int, error) {
	best, bestProb := -1, 0.0
	for i, a := range s.amps {
		p := real(a)*real(a) + imag(a)*imag(a)
		if p > bestProb {
			best, bestProb = i, p
		}
	}
	if best < 0 || bestProb < 1-BasisTolerance {
		return 0, fmt.Errorf("sim: state is not a computational basis state (max probability %.12f)", bestProb)
	}
	return best, nil
}
