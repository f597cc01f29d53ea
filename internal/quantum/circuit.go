package quantum

import (
	"fmt"
)

// OpKind identifies the primitive operation an Instruction performs.
type OpKind int

const (
	// OpHadamard is the single-qubit basis rotation H.
	OpHadamard OpKind = iota
	// OpPhase applies a phase rotation to the last qubit of the
	// instruction, conditioned on every preceding qubit being |1⟩.
	// With two qubits this is the controlled-phase gate; with one it is a
	// plain phase rotation.
	OpPhase
	// OpSwap exchanges two qubits.
	OpSwap
	// OpBarrier is a no-op marker used for visual segmentation only.
	OpBarrier
	// OpGate applies a composite Gate to the listed qubits
	// (control qubits first, then the gate's own qubits in order).
	OpGate
)

// Instruction is one gate application on a circuit.
type Instruction struct {
	Kind   OpKind
	Angle  float64 // radians; meaningful for OpPhase only
	Qubits []Qubit
	Gate   *Gate // non-nil for OpGate only
}

// Circuit is an ordered sequence of gate applications over a fixed set of
// registers. Every instruction references qubits belonging to registers
// declared on the circuit; violating that invariant is a programming error
// and panics. Circuits returned from an operator's Build are not mutated
// afterwards by the operator; rebuilding regenerates a fresh circuit.
type Circuit struct {
	name    string
	regs    []*Register
	offsets map[*Register]int
	width   int
	ops     []Instruction
}

// NewCircuit declares a circuit over the given registers.
// Identical register handles are deduplicated: passing the same *Register
// twice declares it once, preserving first-occurrence order. This is the
// aliasing guard required when externally owned registers are shared
// between operators.
//
// Parameters:
//   - name: A display name for the circuit.
//   - regs: The registers the circuit operates on, in wire order.
//
// Returns:
//   - *Circuit: The new, empty circuit.
func NewCircuit(name string, regs ...*Register) *Circuit {
	c := &Circuit{
		name:    name,
		offsets: make(map[*Register]int, len(regs)),
	}
	for _, r := range regs {
		if r == nil {
			panic("quantum: nil register declared on circuit " + name)
		}
		if _, seen := c.offsets[r]; seen {
			continue
		}
		c.offsets[r] = c.width
		c.regs = append(c.regs, r)
		c.width += r.Size()
	}
	return c
}

// Name returns the circuit's display name.
func (c *Circuit) Name() string { return c.name }

// Registers returns the declared registers in wire order.
func (c *Circuit) Registers() []*Register { return c.regs }

// Width returns the total number of qubits across all declared registers.
func (c *Circuit) Width() int { return c.width }

// Instructions returns the ordered instruction list.
// The returned slice is the circuit's own backing storage; callers must
// treat it as read-only.
func (c *Circuit) Instructions() []Instruction { return c.ops }

// QubitIndex resolves a qubit to its flat wire index on this circuit.
// It panics if the qubit's register is not declared on the circuit.
func (c *Circuit) QubitIndex(q Qubit) int {
	off, ok := c.offsets[q.Reg]
	if !ok {
		panic(fmt.Sprintf("quantum: qubit %s references a register not declared on circuit %q", q, c.name))
	}
	return off + q.Index
}

// checkQubits validates every referenced qubit against the declared
// registers. Called on each append so a bad reference fails at the append
// site rather than at simulation or rendering time.
func (c *Circuit) checkQubits(qs []Qubit) {
	for _, q := range qs {
		c.QubitIndex(q)
	}
}

// H appends a Hadamard basis rotation on the given qubit.
func (c *Circuit) H(q Qubit) {
	c.checkQubits([]Qubit{q})
	c.ops = append(c.ops, Instruction{Kind: OpHadamard, Qubits: []Qubit{q}})
}

// ControlledPhase appends a controlled-phase rotation of the given angle
// (radians) with the given control and target qubits. The operation is
// symmetric in its two qubits; the distinction is kept for readability of
// renderings.
func (c *Circuit) ControlledPhase(angle float64, control, target Qubit) {
	c.checkQubits([]Qubit{control, target})
	c.ops = append(c.ops, Instruction{Kind: OpPhase, Angle: angle, Qubits: []Qubit{control, target}})
}

// Phase appends an uncontrolled phase rotation on the given qubit.
func (c *Circuit) Phase(angle float64, q Qubit) {
	c.checkQubits([]Qubit{q})
	c.ops = append(c.ops, Instruction{Kind: OpPhase, Angle: angle, Qubits: []Qubit{q}})
}

// Swap appends a swap of two qubits.
func (c *Circuit) Swap(a, b Qubit) {
	c.checkQubits([]Qubit{a, b})
	c.ops = append(c.ops, Instruction{Kind: OpSwap, Qubits: []Qubit{a, b}})
}

// Barrier appends a no-op barrier marker across the whole circuit.
// Barriers carry no semantic effect; simulation and counting ignore them.
func (c *Circuit) Barrier() {
	c.ops = append(c.ops, Instruction{Kind: OpBarrier})
}

// Append applies a composite gate to the given qubits. The qubit list must
// supply the gate's control qubits first (Controls many), then exactly
// Width qubits for the gate body, matching the flattened qubit order of the
// circuit the gate was reified from.
//
// Parameters:
//   - g: The gate to apply.
//   - qubits: Control qubits followed by body qubits.
func (c *Circuit) Append(g *Gate, qubits ...Qubit) {
	if g == nil {
		panic("quantum: nil gate appended to circuit " + c.name)
	}
	if len(qubits) != g.TotalQubits() {
		panic(fmt.Sprintf("quantum: gate %q wants %d qubits (%d controls + %d), got %d",
			g.Name(), g.TotalQubits(), g.Controls(), g.Width(), len(qubits)))
	}
	c.checkQubits(qubits)
	qs := make([]Qubit, len(qubits))
	copy(qs, qubits)
	c.ops = append(c.ops, Instruction{Kind: OpGate, Qubits: qs, Gate: g})
}

// Size returns the number of primitive gate applications in the circuit,
// with composite gates counted by their own flattened size and barriers
// excluded. It is the figure reported by build summaries and metrics.
func (c *Circuit) Size() int {
	n := 0
	for _, op := range c.ops {
		switch op.Kind {
		case OpBarrier:
		case OpGate:
			n += op.Gate.size()
		default:
			n++
		}
	}
	return n
}

// CountKind returns the number of top-level instructions of the given kind.
func (c *Circuit) CountKind(k OpKind) int {
	n := 0
	for _, op := range c.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// ToGate reifies the circuit into a reusable composite gate. Qubits are
// flattened in register-declaration order; applying the gate elsewhere
// requires supplying qubits in that same order. Barriers are preserved as
// inert markers.
func (c *Circuit) ToGate() *Gate {
	g := &Gate{name: c.name, width: c.width}
	for _, op := range c.ops {
		lop := gateOp{kind: op.Kind, angle: op.Angle, gate: op.Gate}
		if len(op.Qubits) > 0 {
			lop.qubits = make([]int, len(op.Qubits))
			for i, q := range op.Qubits {
				lop.qubits[i] = c.QubitIndex(q)
			}
		}
		g.ops = append(g.ops, lop)
	}
	return g
}
