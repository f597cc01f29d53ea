package sim

import (
	"fmt"

	"github.com/quforge/quarith/internal/quantum"
)

// RegisterValues maps registers to the classical values loaded into (or
// read out of) them. Registers absent from the map hold zero.
type RegisterValues map[*quantum.Register]uint64

// PrepareBasis builds the statevector for the given circuit with each
// register initialized to its classical value in the computational basis.
//
// Parameters:
//   - c: The circuit whose register layout defines the wire order.
//   - values: Initial classical values per register; each must fit its
//     register's width.
//
// Returns:
//   - *StateVector: The prepared basis state.
//   - error: An error if a value does not fit its register or references
//     an undeclared register.
func PrepareBasis(c *quantum.Circuit, values RegisterValues) (*StateVector, error) {
	s, err := New(c.Width())
	if err != nil {
		return nil, err
	}
	basis := 0
	for reg, v := range values {
		if reg.Size() < 64 && v >= 1<<uint(reg.Size()) {
			return nil, fmt.Errorf("sim: value %d does not fit register %q of size %d", v, reg.Name(), reg.Size())
		}
		declared := false
		for _, r := range c.Registers() {
			if r == reg {
				declared = true
				break
			}
		}
		if !declared {
			return nil, fmt.Errorf("sim: register %q is not declared on circuit %q", reg.Name(), c.Name())
		}
		offset := c.QubitIndex(reg.Qubit(0))
		basis |= int(v) << uint(offset)
	}
	if err := s.SetBasis(basis); err != nil {
		return nil, err
	}
	return s, nil
}

// RegisterValue extracts a register's classical value from a basis index.
//
// Parameters:
//   - c: The circuit whose layout produced the basis index.
//   - basis: The measured basis index.
//   - reg: The register to read.
//
// Returns:
//   - uint64: The register's value in the basis state.
func RegisterValue(c *quantum.Circuit, basis int, reg *quantum.Register) uint64 {
	offset := c.QubitIndex(reg.Qubit(0))
	mask := (uint64(1) << uint(reg.Size())) - 1
	return (uint64(basis) >> uint(offset)) & mask
}

// RunBasis prepares the circuit's registers with the given values, applies
// the circuit, and reads back the resulting basis state. It is the single
// call the verification paths use.
//
// Returns:
//   - int: The resulting basis index.
//   - error: An error if preparation, application, or read-back fails.
func RunBasis(c *quantum.Circuit, values RegisterValues) (int, error) {
	s, err := PrepareBasis(c, values)
	if err != nil {
		return 0, err
	}
	if err := s.Apply(c); err != nil {
		return 0, err
	}
	return s.MeasureBasis()
}
