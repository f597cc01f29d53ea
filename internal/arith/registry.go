package arith

import (
	"sort"
	"sync"

	apperrors "github.com/quforge/quarith/internal/errors"
	"github.com/quforge/quarith/internal/qft"
	"github.com/quforge/quarith/internal/quantum"
)

// Params carries the operator-independent build parameters a registry
// builder function receives. Each builder uses the fields relevant to it
// and ignores the rest.
type Params struct {
	// Width is the primary operand width in qubits.
	Width int
	// MultiplierWidth is the second operand width for the multiplier.
	// When 0 it defaults to Width.
	MultiplierWidth int
	// Subtract selects the subtracting variant where one exists.
	Subtract bool
	// SkipQFT omits the Fourier bracketing on arithmetic operators.
	SkipQFT bool
	// Inverse selects the inverse variant of the transform.
	Inverse bool
	// InsertBarrier inserts barriers between logical blocks.
	InsertBarrier bool
	// MaxRepetitions caps the multiplier's controlled-adder applications.
	// Zero means no cap.
	MaxRepetitions int64
	// Debug enables debug logging inside the builders.
	Debug bool
}

// BuilderFunc creates a Builder from build parameters.
// Returns a ConfigError when the parameters cannot produce a valid builder.
type BuilderFunc func(p Params) (Builder, error)

// Registry is a thread-safe registry of named circuit builders.
// It allows operator selection by name at the CLI and HTTP surfaces
// without those layers knowing the concrete builder types.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]BuilderFunc
}

// NewRegistry creates an empty Registry.
//
// Returns:
//   - *Registry: A new registry with no builders registered.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// NewDefaultRegistry creates a Registry with the standard operators
// pre-registered.
//
// Pre-registered operators:
//   - "qft": The quantum Fourier transform (or its inverse).
//   - "adder": The Fourier-basis adder (or subtractor).
//   - "multiplier": The repeated-controlled-addition multiplier.
//
// Returns:
//   - *Registry: A new registry with default builders registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("qft", func(p Params) (Builder, error) {
		return qft.New(qft.Options{
			Width:         p.Width,
			Inverse:       p.Inverse,
			InsertBarrier: p.InsertBarrier,
			Debug:         p.Debug,
		})
	})
	r.Register("adder", func(p Params) (Builder, error) {
		return NewAdder(AdderOptions{
			Width:         p.Width,
			Subtract:      p.Subtract,
			SkipQFT:       p.SkipQFT,
			InsertBarrier: p.InsertBarrier,
			Debug:         p.Debug,
		})
	})
	r.Register("multiplier", func(p Params) (Builder, error) {
		n := p.MultiplierWidth
		if n == 0 {
			n = p.Width
		}
		if p.Width < 1 || n < 1 {
			return nil, apperrors.NewConfigError(
				"multiplier operand widths must each be at least 1, got %d and %d", p.Width, n)
		}
		return NewMultiplier(MultiplierOptions{
			Multiplicand:   quantum.MustRegister(p.Width, "M"),
			Multiplier:     quantum.MustRegister(n, "N"),
			Subtract:       p.Subtract,
			SkipQFT:        p.SkipQFT,
			MaxRepetitions: p.MaxRepetitions,
			InsertBarrier:  p.InsertBarrier,
			Debug:          p.Debug,
		})
	})

	return r
}

// Register adds a builder function under the given name.
// If a builder with the same name already exists, it will be replaced.
//
// Parameters:
//   - name: The unique identifier for the operator.
//   - fn: The function that creates a Builder from parameters.
func (r *Registry) Register(name string, fn BuilderFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = fn
}

// Create creates a new Builder instance by name.
//
// Parameters:
//   - name: The name of the registered operator.
//   - p: The build parameters.
//
// Returns:
//   - Builder: A new Builder instance.
//   - error: A ConfigError if the operator is not registered, or the
//     builder function's own error.
func (r *Registry) Create(name string, p Params) (Builder, error) {
	r.mu.RLock()
	fn, ok := r.builders[name]
	r.mu.RUnlock()

	if !ok {
		return nil, apperrors.NewConfigError("unknown operator: %s", name)
	}
	return fn(p)
}

// List returns a sorted list of all registered operator names.
//
// Returns:
//   - []string: A sorted slice of operator names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
