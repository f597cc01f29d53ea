// Package service contains the orchestration layer between the application
// surfaces (CLI, HTTP) and the circuit builders. It centralizes operator
// selection, construction, and optional verification behind one interface.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/quforge/quarith/internal/arith"
	"github.com/quforge/quarith/internal/config"
	"github.com/quforge/quarith/internal/quantum"
	"github.com/quforge/quarith/internal/verify"
)

// BuildResult aggregates everything a surface layer needs to report about
// one completed build.
type BuildResult struct {
	// Operator is the registry name the circuit was built from.
	Operator string
	// Circuit is the built circuit.
	Circuit *quantum.Circuit
	// BuildTime is the wall-clock construction duration.
	BuildTime time.Duration
	// Verification is the simulation sweep report, nil when verification
	// was not requested.
	Verification *verify.Report
}

// Service defines the interface for circuit build services.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Build constructs the named operator's circuit with the given
	// parameters and optionally verifies it.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - operator: The registry name of the operator to build.
	//   - params: The build parameters.
	//   - runVerify: Whether to verify the circuit by exhaustive simulation.
	//
	// Returns:
	//   - *BuildResult: The build outcome.
	//   - error: An error if validation, construction or verification fails.
	Build(ctx context.Context, operator string, params arith.Params, runVerify bool) (*BuildResult, error)

	// Operators returns the sorted names of the available operators.
	Operators() []string
}

// BuildService handles the core logic for constructing arithmetic circuits.
// It centralizes operator lookup, construction, progress wiring, and
// verification. Implements the Service interface.
type BuildService struct {
	registry *arith.Registry
	subject  *arith.BuildSubject
}

// Ensure BuildService implements Service interface.
var _ Service = (*BuildService)(nil)

// NewBuildService creates a new instance of BuildService.
//
// Parameters:
//   - registry: The operator registry to build from.
//
// Returns:
//   - *BuildService: The configured service.
func NewBuildService(registry *arith.Registry) *BuildService {
	return &BuildService{registry: registry}
}

// WithObservers attaches a progress subject whose observers are notified
// during long builds. Returns the service for chaining.
func (s *BuildService) WithObservers(subject *arith.BuildSubject) *BuildService {
	s.subject = subject
	return s
}

// Operators returns the sorted names of the available operators.
func (s *BuildService) Operators() []string {
	return s.registry.List()
}

// Build constructs the named operator's circuit and optionally verifies
// it by exhaustive basis-state simulation.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - operator: The registry name of the operator to build.
//   - params: The build parameters.
//   - runVerify: Whether to verify the circuit by exhaustive simulation.
//
// Returns:
//   - *BuildResult: The build outcome.
//   - error: A ConfigError for invalid parameters, the verification
//     error on a failing sweep, or the context's error on cancellation.
func (s *BuildService) Build(ctx context.Context, operator string, params arith.Params, runVerify bool) (*BuildResult, error) {
	tracer := otel.Tracer("quarith")
	ctx, span := tracer.Start(ctx, "Build")
	defer span.End()

	builder, err := s.registry.Create(operator, params)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	var circuit *quantum.Circuit
	if mul, ok := builder.(*arith.Multiplier); ok {
		circuit = mul.BuildWithObservers(s.subject)
	} else {
		circuit = builder.Build()
	}
	result := &BuildResult{
		Operator:  operator,
		Circuit:   circuit,
		BuildTime: time.Since(start),
	}

	if runVerify {
		report, err := s.verifyOperator(ctx, operator, params)
		if err != nil {
			return nil, err
		}
		result.Verification = report
		if err := report.Err(); err != nil {
			return result, err
		}
	}
	return result, nil
}

// verifyOperator runs the exhaustive sweep matching the operator. The
// sweep rebuilds the circuit over fresh registers so verification stays
// independent of the instance handed to the caller.
func (s *BuildService) verifyOperator(ctx context.Context, operator string, params arith.Params) (*verify.Report, error) {
	switch operator {
	case "qft":
		return verify.Transform(ctx, params.Width)
	case "adder":
		return verify.Adder(ctx, params.Width+1, params.Width, params.Subtract)
	case "multiplier":
		n := params.MultiplierWidth
		if n == 0 {
			n = params.Width
		}
		return verify.Multiplier(ctx, params.Width, n)
	default:
		// Operators registered by callers have no classical model here.
		return &verify.Report{Operator: operator}, nil
	}
}

// FromConfig builds using the parameters carried by the application
// configuration. This is the entry point the CLI and server share.
func (s *BuildService) FromConfig(ctx context.Context, cfg config.AppConfig) (*BuildResult, error) {
	return s.Build(ctx, cfg.Operator, cfg.ToParams(), cfg.Verify)
}
