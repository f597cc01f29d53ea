package quantum

import "fmt"

// Gate is an opaque composite unitary reified from a circuit via ToGate.
// A gate may additionally carry control qubits added with Controlled; the
// controls gate whether the wrapped operation applies at all. Beyond its
// declared qubit ordering (controls first, then body qubits in the source
// circuit's flattened order) a gate's interior is opaque to callers.
type Gate struct {
	name     string
	width    int // body qubits, excluding controls
	controls int
	ops      []gateOp
}

// gateOp mirrors Instruction with qubits resolved to local indices
// (0..width-1) relative to the gate body.
type gateOp struct {
	kind   OpKind
	angle  float64
	qubits []int
	gate   *Gate
}

// Name returns the gate's display name.
func (g *Gate) Name() string { return g.name }

// Width returns the number of body qubits, excluding controls.
func (g *Gate) Width() int { return g.width }

// Controls returns the number of control qubits.
func (g *Gate) Controls() int { return g.controls }

// TotalQubits returns the full qubit arity: controls plus body qubits.
func (g *Gate) TotalQubits() int { return g.controls + g.width }

// Controlled derives the controlled variant of the gate with n additional
// control qubits. The receiver is not modified. When applied, the new
// controls are supplied first, before any existing controls.
//
// Parameters:
//   - n: The number of control qubits to add (must be >= 1).
//
// Returns:
//   - *Gate: The controlled gate.
func (g *Gate) Controlled(n int) *Gate {
	if n < 1 {
		panic(fmt.Sprintf("quantum: gate %q controlled with %d controls", g.name, n))
	}
	return &Gate{
		name:     fmt.Sprintf("c%s", g.name),
		width:    g.width,
		controls: g.controls + n,
		ops:      g.ops,
	}
}

// size returns the number of primitive operations inside the gate,
// barriers excluded, nested composites expanded.
func (g *Gate) size() int {
	n := 0
	for _, op := range g.ops {
		switch op.kind {
		case OpBarrier:
		case OpGate:
			n += op.gate.size()
		default:
			n++
		}
	}
	return n
}

// Walk visits every primitive operation of the gate in order, with nested
// composite gates expanded and their qubit indices remapped through the
// supplied qubit list. The controls slice accumulates the control wires
// in effect for the visited operation. Barriers are skipped.
//
// The visit callback receives the operation kind, its angle, the resolved
// operand wires, and the active control wires. It returns an error to stop
// the walk.
func (g *Gate) Walk(qubits []int, visit func(kind OpKind, angle float64, operands, controls []int) error) error {
	if len(qubits) != g.TotalQubits() {
		return fmt.Errorf("quantum: gate %q walk with %d qubits, want %d", g.name, len(qubits), g.TotalQubits())
	}
	controls := qubits[:g.controls]
	body := qubits[g.controls:]
	return g.walk(body, controls, visit)
}

func (g *Gate) walk(body, controls []int, visit func(OpKind, float64, []int, []int) error) error {
	for _, op := range g.ops {
		if op.kind == OpBarrier {
			continue
		}
		operands := make([]int, len(op.qubits))
		for i, li := range op.qubits {
			operands[i] = body[li]
		}
		if op.kind == OpGate {
			inner := op.gate
			innerControls := append(append([]int{}, controls...), operands[:inner.controls]...)
			if err := inner.walk(operands[inner.controls:], innerControls, visit); err != nil {
				return err
			}
			continue
		}
		if err := visit(op.kind, op.angle, operands, controls); err != nil {
			return err
		}
	}
	return nil
}
