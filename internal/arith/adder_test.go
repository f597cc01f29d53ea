package arith

import (
	"fmt"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	apperrors "github.com/quforge/quarith/internal/errors"
	"github.com/quforge/quarith/internal/quantum"
	"github.com/quforge/quarith/internal/sim"
)

func TestAngle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		d        int
		subtract bool
		want     float64
	}{
		{0, false, math.Pi},
		{1, false, math.Pi / 2},
		{2, false, math.Pi / 4},
		{3, false, math.Pi / 8},
		{0, true, -math.Pi},
		{1, true, -math.Pi / 2},
		{2, true, -math.Pi / 4},
		{3, true, -math.Pi / 8},
	}
	for _, tc := range cases {
		if got := Angle(tc.d, tc.subtract); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Angle(%d, %v) = %g, want %g", tc.d, tc.subtract, got, tc.want)
		}
	}
}

func TestNewAdder(t *testing.T) {
	t.Parallel()

	t.Run("InternalRegisters", func(t *testing.T) {
		t.Parallel()
		a, err := NewAdder(AdderOptions{Width: 2})
		if err != nil {
			t.Fatalf("NewAdder failed: %v", err)
		}
		if a.Target().Size() != 3 {
			t.Errorf("target size = %d, want 3", a.Target().Size())
		}
		if a.Operand().Size() != 2 {
			t.Errorf("operand size = %d, want 2", a.Operand().Size())
		}
		if !a.OwnsRegisters() {
			t.Error("internally allocated registers should be owned")
		}
		if a.Name() != "|X+A⟩" {
			t.Errorf("Name() = %q, want |X+A⟩", a.Name())
		}
	})

	t.Run("SubtractLabel", func(t *testing.T) {
		t.Parallel()
		a, err := NewAdder(AdderOptions{Width: 1, Subtract: true})
		if err != nil {
			t.Fatalf("NewAdder failed: %v", err)
		}
		if a.Name() != "|X−A⟩" {
			t.Errorf("Name() = %q, want |X−A⟩", a.Name())
		}
	})

	t.Run("ExternalRegisters", func(t *testing.T) {
		t.Parallel()
		x := quantum.MustRegister(4, "X")
		ar := quantum.MustRegister(2, "A")
		a, err := NewAdder(AdderOptions{Target: x, Operand: ar})
		if err != nil {
			t.Fatalf("NewAdder failed: %v", err)
		}
		if a.Target() != x || a.Operand() != ar {
			t.Error("external registers should be borrowed as-is")
		}
		if a.OwnsRegisters() {
			t.Error("external registers should not be owned")
		}
	})

	t.Run("TargetMustBeStrictlyWider", func(t *testing.T) {
		t.Parallel()
		x := quantum.MustRegister(2, "X")
		ar := quantum.MustRegister(2, "A")
		_, err := NewAdder(AdderOptions{Target: x, Operand: ar})
		if !apperrors.IsConfigError(err) {
			t.Errorf("same-size registers: error = %v, want ConfigError", err)
		}
	})

	t.Run("HalfExternalRejected", func(t *testing.T) {
		t.Parallel()
		x := quantum.MustRegister(3, "X")
		_, err := NewAdder(AdderOptions{Target: x})
		if !apperrors.IsConfigError(err) {
			t.Errorf("target without operand: error = %v, want ConfigError", err)
		}
	})

	t.Run("ZeroWidthRejected", func(t *testing.T) {
		t.Parallel()
		_, err := NewAdder(AdderOptions{})
		if !apperrors.IsConfigError(err) {
			t.Errorf("zero width: error = %v, want ConfigError", err)
		}
	})
}

// runAdder builds the adder circuit once and evaluates it on classical
// inputs, returning the target register's value.
func runAdder(t *testing.T, a *Adder, x, operand uint64) uint64 {
	t.Helper()
	c := a.Build()
	basis, err := sim.RunBasis(c, sim.RegisterValues{
		a.Target():  x,
		a.Operand(): operand,
	})
	if err != nil {
		t.Fatalf("RunBasis(x=%d, a=%d) failed: %v", x, operand, err)
	}
	return sim.RegisterValue(c, basis, a.Target())
}

func TestAdderAddition(t *testing.T) {
	t.Parallel()

	a, err := NewAdder(AdderOptions{Width: 2})
	if err != nil {
		t.Fatalf("NewAdder failed: %v", err)
	}

	// Target width 3, operand width 2: sums wrap mod 8.
	cases := []struct {
		x, operand, want uint64
	}{
		{5, 3, 0}, // carry wraps: 5+3 = 8 ≡ 0 (mod 8)
		{0, 0, 0},
		{0, 3, 3},
		{4, 0, 4},
		{7, 1, 0},
		{6, 3, 1},
	}
	for _, tc := range cases {
		if got := runAdder(t, a, tc.x, tc.operand); got != tc.want {
			t.Errorf("%d + %d mod 8 = %d, want %d", tc.x, tc.operand, got, tc.want)
		}
	}
}

func TestAdderSubtraction(t *testing.T) {
	t.Parallel()

	a, err := NewAdder(AdderOptions{Width: 2, Subtract: true})
	if err != nil {
		t.Fatalf("NewAdder failed: %v", err)
	}

	cases := []struct {
		x, operand, want uint64
	}{
		{2, 3, 7}, // borrow wraps: 2−3 ≡ 7 (mod 8)
		{5, 3, 2},
		{0, 0, 0},
		{0, 1, 7},
		{3, 3, 0},
	}
	for _, tc := range cases {
		if got := runAdder(t, a, tc.x, tc.operand); got != tc.want {
			t.Errorf("%d − %d mod 8 = %d, want %d", tc.x, tc.operand, got, tc.want)
		}
	}
}

func TestAdderPreservesOperand(t *testing.T) {
	t.Parallel()

	a, err := NewAdder(AdderOptions{Width: 2})
	if err != nil {
		t.Fatalf("NewAdder failed: %v", err)
	}
	c := a.Build()
	basis, err := sim.RunBasis(c, sim.RegisterValues{a.Target(): 5, a.Operand(): 3})
	if err != nil {
		t.Fatalf("RunBasis failed: %v", err)
	}
	if got := sim.RegisterValue(c, basis, a.Operand()); got != 3 {
		t.Errorf("operand after addition = %d, want 3 (unchanged)", got)
	}
}

func TestAdderBuildIsDeterministic(t *testing.T) {
	t.Parallel()

	a, err := NewAdder(AdderOptions{Width: 3})
	if err != nil {
		t.Fatalf("NewAdder failed: %v", err)
	}
	first, err := a.Build().Canonical()
	if err != nil {
		t.Fatalf("Canonical failed: %v", err)
	}
	second, err := a.Build().Canonical()
	if err != nil {
		t.Fatalf("Canonical failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("listing lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("line %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestAdderSubtractUndoesAdd(t *testing.T) {
	t.Parallel()

	x := quantum.MustRegister(3, "X")
	a := quantum.MustRegister(2, "A")

	add, err := NewAdder(AdderOptions{Target: x, Operand: a})
	if err != nil {
		t.Fatalf("NewAdder(add) failed: %v", err)
	}
	sub, err := NewAdder(AdderOptions{Target: x, Operand: a, Subtract: true})
	if err != nil {
		t.Fatalf("NewAdder(sub) failed: %v", err)
	}

	// Shared registers let both operators merge into one circuit.
	c := quantum.NewCircuit("add-then-sub", x, a)
	qubits := append(x.Qubits(), a.Qubits()...)
	c.Append(add.Gate(), qubits...)
	c.Append(sub.Gate(), qubits...)

	for xv := uint64(0); xv < 8; xv++ {
		for av := uint64(0); av < 4; av++ {
			basis, err := sim.RunBasis(c, sim.RegisterValues{x: xv, a: av})
			if err != nil {
				t.Fatalf("RunBasis(x=%d, a=%d) failed: %v", xv, av, err)
			}
			if got := sim.RegisterValue(c, basis, x); got != xv {
				t.Errorf("(x=%d)+%d−%d = %d, want %d", xv, av, av, got, xv)
			}
		}
	}
}

// TestAdderModular_PropertyBased sweeps random inputs through a width-2
// adder and checks modular addition against plain integer arithmetic.
func TestAdderModular_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	for _, subtract := range []bool{false, true} {
		subtract := subtract
		name := "addition"
		if subtract {
			name = "subtraction"
		}
		properties.Property(fmt.Sprintf("%s is modular mod 2^target", name), prop.ForAll(
			func(x uint64, operand uint64) bool {
				a, err := NewAdder(AdderOptions{Width: 2, Subtract: subtract})
				if err != nil {
					return false
				}
				x %= 8
				operand %= 4
				c := a.Build()
				basis, err := sim.RunBasis(c, sim.RegisterValues{
					a.Target():  x,
					a.Operand(): operand,
				})
				if err != nil {
					return false
				}
				want := (x + operand) % 8
				if subtract {
					want = (x + 8 - operand) % 8
				}
				return sim.RegisterValue(c, basis, a.Target()) == want
			},
			gen.UInt64Range(0, 7),
			gen.UInt64Range(0, 3),
		))
	}

	properties.TestingRun(t)
}
