package quantum

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegister(t *testing.T) {
	t.Parallel()

	t.Run("ValidSize", func(t *testing.T) {
		t.Parallel()
		r, err := NewRegister(3, "X")
		require.NoError(t, err)
		assert.Equal(t, 3, r.Size())
		assert.Equal(t, "X", r.Name())
	})

	t.Run("ZeroSize", func(t *testing.T) {
		t.Parallel()
		r, err := NewRegister(0, "empty")
		require.NoError(t, err)
		assert.Equal(t, 0, r.Size())
		assert.Empty(t, r.Qubits())
	})

	t.Run("NegativeSize", func(t *testing.T) {
		t.Parallel()
		_, err := NewRegister(-1, "bad")
		require.Error(t, err)
	})

	t.Run("IdentityNotValue", func(t *testing.T) {
		t.Parallel()
		a := MustRegister(2, "R")
		b := MustRegister(2, "R")
		// Same name, same size, distinct handles: distinct registers.
		c := NewCircuit("id", a, b)
		assert.Equal(t, 4, c.Width())
	})
}

func TestRegisterQubit(t *testing.T) {
	t.Parallel()

	r := MustRegister(2, "X")

	t.Run("InRange", func(t *testing.T) {
		t.Parallel()
		q := r.Qubit(1)
		assert.Equal(t, r, q.Reg)
		assert.Equal(t, 1, q.Index)
		assert.Equal(t, "X[1]", q.String())
	})

	t.Run("OutOfRangePanics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { r.Qubit(2) })
		assert.Panics(t, func() { r.Qubit(-1) })
	})
}

func TestNewCircuit(t *testing.T) {
	t.Parallel()

	t.Run("WidthAndOffsets", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(3, "X")
		a := MustRegister(2, "A")
		c := NewCircuit("test", x, a)
		assert.Equal(t, 5, c.Width())
		assert.Equal(t, 0, c.QubitIndex(x.Qubit(0)))
		assert.Equal(t, 2, c.QubitIndex(x.Qubit(2)))
		assert.Equal(t, 3, c.QubitIndex(a.Qubit(0)))
		assert.Equal(t, 4, c.QubitIndex(a.Qubit(1)))
	})

	t.Run("DeduplicatesSharedRegister", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(2, "X")
		c := NewCircuit("dedup", x, x)
		assert.Equal(t, 2, c.Width())
		assert.Len(t, c.Registers(), 1)
	})

	t.Run("NilRegisterPanics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { NewCircuit("nil", nil) })
	})

	t.Run("UndeclaredRegisterPanics", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(2, "X")
		other := MustRegister(2, "Y")
		c := NewCircuit("foreign", x)
		assert.Panics(t, func() { c.H(other.Qubit(0)) })
	})
}

func TestCircuitSizeAndCount(t *testing.T) {
	t.Parallel()

	x := MustRegister(2, "X")
	c := NewCircuit("size", x)
	c.H(x.Qubit(0))
	c.Barrier()
	c.ControlledPhase(math.Pi/2, x.Qubit(0), x.Qubit(1))
	c.Phase(math.Pi/4, x.Qubit(1))
	c.Swap(x.Qubit(0), x.Qubit(1))

	// Barriers never count towards the size.
	assert.Equal(t, 4, c.Size())
	assert.Equal(t, 1, c.CountKind(OpHadamard))
	assert.Equal(t, 2, c.CountKind(OpPhase))
	assert.Equal(t, 1, c.CountKind(OpSwap))
	assert.Equal(t, 1, c.CountKind(OpBarrier))
}

func TestToGateAndAppend(t *testing.T) {
	t.Parallel()

	t.Run("CompositeSizeExpands", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(2, "X")
		inner := NewCircuit("inner", x)
		inner.H(x.Qubit(0))
		inner.ControlledPhase(math.Pi/2, x.Qubit(0), x.Qubit(1))
		g := inner.ToGate()
		assert.Equal(t, 2, g.Width())
		assert.Equal(t, 0, g.Controls())

		y := MustRegister(2, "Y")
		outer := NewCircuit("outer", y)
		outer.Append(g, y.Qubit(0), y.Qubit(1))
		assert.Equal(t, 2, outer.Size())
	})

	t.Run("WrongArityPanics", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(2, "X")
		inner := NewCircuit("inner", x)
		inner.H(x.Qubit(0))
		g := inner.ToGate()

		y := MustRegister(2, "Y")
		outer := NewCircuit("outer", y)
		assert.Panics(t, func() { outer.Append(g, y.Qubit(0)) })
	})

	t.Run("NilGatePanics", func(t *testing.T) {
		t.Parallel()
		y := MustRegister(1, "Y")
		outer := NewCircuit("outer", y)
		assert.Panics(t, func() { outer.Append(nil, y.Qubit(0)) })
	})
}

func TestGateControlled(t *testing.T) {
	t.Parallel()

	x := MustRegister(1, "X")
	inner := NewCircuit("phase", x)
	inner.Phase(math.Pi/2, x.Qubit(0))
	g := inner.ToGate()

	cg := g.Controlled(1)
	assert.Equal(t, 1, cg.Controls())
	assert.Equal(t, 1, cg.Width())
	assert.Equal(t, 2, cg.TotalQubits())
	assert.Equal(t, "cphase", cg.Name())

	// The receiver is untouched.
	assert.Equal(t, 0, g.Controls())

	t.Run("ZeroControlsPanics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { g.Controlled(0) })
	})

	t.Run("ControlFoldsIntoPhaseConditions", func(t *testing.T) {
		t.Parallel()
		regs := MustRegister(2, "W")
		c := NewCircuit("apply", regs)
		c.Append(cg, regs.Qubit(1), regs.Qubit(0))
		lines, err := c.Canonical()
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, "cp 1.57079632679 1 0", lines[0])
	})
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	t.Run("FormatsAndOmitsBarriers", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(2, "X")
		c := NewCircuit("fmt", x)
		c.H(x.Qubit(1))
		c.Barrier()
		c.ControlledPhase(math.Pi/2, x.Qubit(0), x.Qubit(1))
		c.Swap(x.Qubit(0), x.Qubit(1))

		lines, err := c.Canonical()
		require.NoError(t, err)
		assert.Equal(t, []string{
			"h 1",
			"cp 1.57079632679 0 1",
			"swap 0 1",
		}, lines)
	})

	t.Run("ConditionsSortedAscending", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(3, "X")
		c := NewCircuit("sorted", x)
		c.ControlledPhase(math.Pi, x.Qubit(2), x.Qubit(0))
		lines, err := c.Canonical()
		require.NoError(t, err)
		assert.Equal(t, []string{"cp 3.14159265359 2 0"}, lines)
	})

	t.Run("ControlledHadamardRejected", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(1, "X")
		inner := NewCircuit("h", x)
		inner.H(x.Qubit(0))
		cg := inner.ToGate().Controlled(1)

		w := MustRegister(2, "W")
		c := NewCircuit("bad", w)
		c.Append(cg, w.Qubit(0), w.Qubit(1))
		_, err := c.Canonical()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "controlled Hadamard")
	})

	t.Run("ControlledSwapRejected", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(2, "X")
		inner := NewCircuit("swap", x)
		inner.Swap(x.Qubit(0), x.Qubit(1))
		cg := inner.ToGate().Controlled(1)

		w := MustRegister(3, "W")
		c := NewCircuit("bad", w)
		c.Append(cg, w.Qubit(0), w.Qubit(1), w.Qubit(2))
		_, err := c.Canonical()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "controlled swap")
	})

	t.Run("DeterministicAcrossCalls", func(t *testing.T) {
		t.Parallel()
		x := MustRegister(3, "X")
		c := NewCircuit("det", x)
		for i := 0; i < 3; i++ {
			c.H(x.Qubit(i))
			c.ControlledPhase(math.Pi/4, x.Qubit(i), x.Qubit((i+1)%3))
		}
		first, err := c.Canonical()
		require.NoError(t, err)
		second, err := c.Canonical()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	x := MustRegister(2, "X")
	a := MustRegister(1, "A")
	c := NewCircuit("demo", x, a)
	c.H(x.Qubit(0))
	c.ControlledPhase(math.Pi/2, a.Qubit(0), x.Qubit(1))
	c.Barrier()
	c.Swap(x.Qubit(0), x.Qubit(1))

	var sb strings.Builder
	require.NoError(t, c.Render(&sb))
	out := sb.String()

	assert.Contains(t, out, "circuit demo (X[2], A[1])")
	assert.Contains(t, out, "h X[0]")
	assert.Contains(t, out, "cp(1.57079632679) A[0] -> X[1]")
	assert.Contains(t, out, "barrier")
	assert.Contains(t, out, "swap X[0], X[1]")
}
