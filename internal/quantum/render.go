package quantum

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Render writes a human-readable listing of the circuit: a header with the
// declared registers followed by one line per instruction. Composite gates
// are listed by name without expansion. The output is cosmetic; Canonical
// is the stable, fully expanded form used for comparisons.
func (c *Circuit) Render(w io.Writer) error {
	regs := make([]string, len(c.regs))
	for i, r := range c.regs {
		regs[i] = fmt.Sprintf("%s[%d]", r.Name(), r.Size())
	}
	if _, err := fmt.Fprintf(w, "circuit %s (%s)\n", c.name, strings.Join(regs, ", ")); err != nil {
		return err
	}
	for _, op := range c.ops {
		var line string
		switch op.Kind {
		case OpHadamard:
			line = fmt.Sprintf("h %s", op.Qubits[0])
		case OpPhase:
			target := op.Qubits[len(op.Qubits)-1]
			if len(op.Qubits) > 1 {
				line = fmt.Sprintf("cp(%.12g) %s -> %s", op.Angle, joinQubits(op.Qubits[:len(op.Qubits)-1]), target)
			} else {
				line = fmt.Sprintf("p(%.12g) %s", op.Angle, target)
			}
		case OpSwap:
			line = fmt.Sprintf("swap %s, %s", op.Qubits[0], op.Qubits[1])
		case OpBarrier:
			line = "barrier"
		case OpGate:
			g := op.Gate
			if g.Controls() > 0 {
				line = fmt.Sprintf("gate %s ctrl[%s] %s", g.Name(),
					joinQubits(op.Qubits[:g.Controls()]), joinQubits(op.Qubits[g.Controls():]))
			} else {
				line = fmt.Sprintf("gate %s %s", g.Name(), joinQubits(op.Qubits))
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func joinQubits(qs []Qubit) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = q.String()
	}
	return strings.Join(parts, ", ")
}

// Canonical returns the fully expanded primitive operation listing of the
// circuit, one line per operation, with composite gates inlined and qubits
// resolved to flat wire indices. Controls accumulated from controlled
// composite gates are folded into the condition set of phase rotations
// (sorted ascending for determinism). Barriers are omitted.
//
// The listing is the stable identity of a built circuit: two builds of the
// same configuration produce identical listings. An error is returned when
// a controlled composite contains an operation that has no controlled
// primitive form (Hadamard or swap under control).
func (c *Circuit) Canonical() ([]string, error) {
	var lines []string
	emit := func(kind OpKind, angle float64, operands, controls []int) error {
		switch kind {
		case OpHadamard:
			if len(controls) > 0 {
				return fmt.Errorf("quantum: controlled Hadamard has no primitive form in circuit %q", c.name)
			}
			lines = append(lines, fmt.Sprintf("h %d", operands[0]))
		case OpPhase:
			conds := append(append([]int{}, controls...), operands[:len(operands)-1]...)
			sort.Ints(conds)
			target := operands[len(operands)-1]
			if len(conds) == 0 {
				lines = append(lines, fmt.Sprintf("p %.12g %d", angle, target))
			} else {
				cs := make([]string, len(conds))
				for i, q := range conds {
					cs[i] = fmt.Sprintf("%d", q)
				}
				lines = append(lines, fmt.Sprintf("cp %.12g %s %d", angle, strings.Join(cs, " "), target))
			}
		case OpSwap:
			if len(controls) > 0 {
				return fmt.Errorf("quantum: controlled swap has no primitive form in circuit %q", c.name)
			}
			lines = append(lines, fmt.Sprintf("swap %d %d", operands[0], operands[1]))
		}
		return nil
	}

	for _, op := range c.ops {
		switch op.Kind {
		case OpBarrier:
			continue
		case OpGate:
			qubits := make([]int, len(op.Qubits))
			for i, q := range op.Qubits {
				qubits[i] = c.QubitIndex(q)
			}
			if err := op.Gate.Walk(qubits, emit); err != nil {
				return nil, err
			}
		default:
			operands := make([]int, len(op.Qubits))
			for i, q := range op.Qubits {
				operands[i] = c.QubitIndex(q)
			}
			if err := emit(op.Kind, op.Angle, operands, nil); err != nil {
				return nil, err
			}
		}
	}
	return lines, nil
}
