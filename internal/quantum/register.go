// Package quantum provides the circuit substrate the operator builders are
// written against: qubit registers, gate instruction lists, and reusable
// composite gates.
//
// Registers are lightweight handles compared by identity, never by value:
// two registers with the same name and size are distinct, and a register
// passed to several circuits or operators is the same register. Circuits
// deduplicate identical register handles at declaration time, which is what
// allows externally owned registers to be shared across operators and later
// merged into one circuit.
package quantum

import (
	"fmt"

	apperrors "github.com/quforge/quarith/internal/errors"
)

// Register is an ordered, fixed-size sequence of addressable qubits.
// A Register carries no state; it only names and sizes a group of wires.
// Always handle registers through the *Register pointer returned by
// NewRegister so that identity comparison is meaningful.
type Register struct {
	name string
	size int
}

// NewRegister creates a register of the given size.
//
// Parameters:
//   - size: The number of qubits (must be >= 0).
//   - name: A display name used when rendering circuits.
//
// Returns:
//   - *Register: The new register handle.
//   - error: A ConfigError if size is negative.
func NewRegister(size int, name string) (*Register, error) {
	if size < 0 {
		return nil, apperrors.NewConfigError("register %q cannot have negative size %d", name, size)
	}
	return &Register{name: name, size: size}, nil
}

// MustRegister is like NewRegister but panics on error. It is intended for
// internal allocation paths where the size is computed and known valid.
func MustRegister(size int, name string) *Register {
	r, err := NewRegister(size, name)
	if err != nil {
		panic(fmt.Sprintf("quantum: %v", err))
	}
	return r
}

// Name returns the register's display name.
func (r *Register) Name() string { return r.name }

// Size returns the number of qubits in the register.
func (r *Register) Size() int { return r.size }

// Qubit returns the addressable qubit at index i.
// It panics if i is out of range; qubit addressing inside builders is a
// structural invariant, not user input.
func (r *Register) Qubit(i int) Qubit {
	if i < 0 || i >= r.size {
		panic(fmt.Sprintf("quantum: qubit index %d out of range for register %q of size %d", i, r.name, r.size))
	}
	return Qubit{Reg: r, Index: i}
}

// Qubits returns all qubits of the register in index order.
func (r *Register) Qubits() []Qubit {
	qs := make([]Qubit, r.size)
	for i := range qs {
		qs[i] = Qubit{Reg: r, Index: i}
	}
	return qs
}

// Qubit addresses a single wire: a register handle plus an index within it.
// Qubit values are comparable; two qubits are the same wire exactly when
// they reference the same register handle and index.
type Qubit struct {
	Reg   *Register
	Index int
}

// String returns a compact reg[i] form used in renderings.
func (q Qubit) String() string {
	return fmt.Sprintf("%s[%d]", q.Reg.Name(), q.Index)
}
