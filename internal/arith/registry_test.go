package arith

import (
	"sync"
	"testing"

	apperrors "github.com/quforge/quarith/internal/errors"
)

func TestNewDefaultRegistry(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry()
	want := []string{"adder", "multiplier", "qft"}
	got := r.List()
	if len(got) != len(want) {
		t.Fatalf("List() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryCreate(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry()

	t.Run("QFT", func(t *testing.T) {
		t.Parallel()
		b, err := r.Create("qft", Params{Width: 3})
		if err != nil {
			t.Fatalf("Create(qft) failed: %v", err)
		}
		if b.Name() != "QFT" {
			t.Errorf("Name() = %q, want QFT", b.Name())
		}
	})

	t.Run("InverseQFT", func(t *testing.T) {
		t.Parallel()
		b, err := r.Create("qft", Params{Width: 3, Inverse: true})
		if err != nil {
			t.Fatalf("Create(qft inverse) failed: %v", err)
		}
		if b.Name() != "IQFT" {
			t.Errorf("Name() = %q, want IQFT", b.Name())
		}
	})

	t.Run("Adder", func(t *testing.T) {
		t.Parallel()
		b, err := r.Create("adder", Params{Width: 2, Subtract: true})
		if err != nil {
			t.Fatalf("Create(adder) failed: %v", err)
		}
		a, ok := b.(*Adder)
		if !ok {
			t.Fatalf("Create(adder) returned %T, want *Adder", b)
		}
		if a.Target().Size() != 3 {
			t.Errorf("target size = %d, want 3", a.Target().Size())
		}
	})

	t.Run("MultiplierDefaultsSecondWidth", func(t *testing.T) {
		t.Parallel()
		b, err := r.Create("multiplier", Params{Width: 2})
		if err != nil {
			t.Fatalf("Create(multiplier) failed: %v", err)
		}
		m, ok := b.(*Multiplier)
		if !ok {
			t.Fatalf("Create(multiplier) returned %T, want *Multiplier", b)
		}
		if m.MultiplierReg().Size() != 2 {
			t.Errorf("multiplier width = %d, want 2 (defaulted from Width)", m.MultiplierReg().Size())
		}
		if m.Target().Size() != 4 {
			t.Errorf("accumulator size = %d, want 4", m.Target().Size())
		}
	})

	t.Run("MultiplierExplicitSecondWidth", func(t *testing.T) {
		t.Parallel()
		b, err := r.Create("multiplier", Params{Width: 2, MultiplierWidth: 3})
		if err != nil {
			t.Fatalf("Create(multiplier) failed: %v", err)
		}
		m := b.(*Multiplier)
		if m.MultiplierReg().Size() != 3 {
			t.Errorf("multiplier width = %d, want 3", m.MultiplierReg().Size())
		}
	})

	t.Run("UnknownOperator", func(t *testing.T) {
		t.Parallel()
		_, err := r.Create("teleporter", Params{Width: 2})
		if !apperrors.IsConfigError(err) {
			t.Errorf("unknown operator: error = %v, want ConfigError", err)
		}
	})

	t.Run("InvalidWidthPropagates", func(t *testing.T) {
		t.Parallel()
		for _, op := range []string{"qft", "adder", "multiplier"} {
			if _, err := r.Create(op, Params{Width: 0}); !apperrors.IsConfigError(err) {
				t.Errorf("Create(%s, width 0): error = %v, want ConfigError", op, err)
			}
		}
	})
}

func TestRegistryRegisterReplaces(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("custom", func(p Params) (Builder, error) {
		return NewAdder(AdderOptions{Width: p.Width})
	})
	r.Register("custom", func(p Params) (Builder, error) {
		return NewAdder(AdderOptions{Width: p.Width, Subtract: true})
	})

	b, err := r.Create("custom", Params{Width: 1})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if b.Name() != "|X−A⟩" {
		t.Errorf("Name() = %q, want the replacement builder's |X−A⟩", b.Name())
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewDefaultRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := r.Create("adder", Params{Width: 1}); err != nil {
					t.Errorf("Create failed: %v", err)
				}
				r.List()
			}
		}()
	}
	wg.Wait()
}
