package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/quforge/quarith/internal/arith"
	apperrors "github.com/quforge/quarith/internal/errors"
	"github.com/quforge/quarith/internal/service"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload carrying the service
// status and build version.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   s.version,
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleOperators returns the list of available circuit operators.
// It queries the internal registry and returns the names as a JSON array.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleOperators(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"operators": s.service.Operators(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleBuild processes requests to build arithmetic circuits.
// It parses the query parameters, builds the requested operator, optionally
// verifies it by simulation, and returns the result in JSON format.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	// Parse and validate parameters using helper
	req, err := s.parseBuildParams(r)
	if err != nil {
		if parseErr, ok := err.(BuildParseError); ok {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	// Create a context with timeout for the build
	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	// Perform the build
	start := time.Now()
	result, err := s.service.Build(ctx, req.operator, req.params, req.verify)
	duration := time.Since(start)

	if err != nil && result == nil {
		status := http.StatusInternalServerError
		if apperrors.IsConfigError(err) {
			status = http.StatusBadRequest
		}
		s.writeErrorResponse(w, status, err.Error())
		return
	}

	// Build and send response using helper
	resp, buildErr := s.buildResponse(req, result, duration, err)
	if buildErr != nil {
		s.writeErrorResponse(w, http.StatusInternalServerError, buildErr.Error())
		return
	}
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// buildRequest holds the parsed parameters of one /build request.
type buildRequest struct {
	operator    string
	params      arith.Params
	verify      bool
	withCircuit bool
}

// parseBuildParams extracts and validates the build parameters from the request.
//
// Parameters:
//   - r: The HTTP request containing query parameters.
//
// Returns:
//   - buildRequest: The parsed request.
//   - error: A BuildParseError if validation fails, nil otherwise.
func (s *Server) parseBuildParams(r *http.Request) (buildRequest, error) {
	q := r.URL.Query()

	operator := q.Get("op")
	if operator == "" {
		return buildRequest{}, BuildParseError{
			Message:    "Missing 'op' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}

	width, err := parseIntParam(q.Get("width"), s.cfg.Width)
	if err != nil {
		return buildRequest{}, BuildParseError{
			Message:    "Invalid 'width' parameter: must be a positive integer",
			StatusCode: http.StatusBadRequest,
		}
	}
	if width < 1 || width > s.securityConfig.MaxWidth {
		return buildRequest{}, BuildParseError{
			Message: fmt.Sprintf("Value of 'width' must be between 1 and %d. This limit prevents resource exhaustion.",
				s.securityConfig.MaxWidth),
			StatusCode: http.StatusBadRequest,
		}
	}

	multiplierWidth, err := parseIntParam(q.Get("multiplier_width"), 0)
	if err != nil || multiplierWidth < 0 || multiplierWidth > s.securityConfig.MaxWidth {
		return buildRequest{}, BuildParseError{
			Message: fmt.Sprintf("Invalid 'multiplier_width' parameter: must be between 0 and %d",
				s.securityConfig.MaxWidth),
			StatusCode: http.StatusBadRequest,
		}
	}

	return buildRequest{
		operator: operator,
		params: arith.Params{
			Width:           width,
			MultiplierWidth: multiplierWidth,
			Subtract:        q.Get("subtract") == "true",
			Inverse:         q.Get("inverse") == "true",
			SkipQFT:         q.Get("skip_qft") == "true",
			MaxRepetitions:  s.cfg.MaxRepetitions,
		},
		verify:      q.Get("verify") == "true",
		withCircuit: q.Get("circuit") == "true",
	}, nil
}

// parseIntParam parses a decimal query value, returning the default for an
// absent value.
func parseIntParam(value string, defaultVal int) (int, error) {
	if value == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(value)
}

// buildResponse constructs the response struct for a build.
//
// Parameters:
//   - req: The parsed build request.
//   - result: The build result (may carry a failed verification report).
//   - duration: The time taken for the build.
//   - err: Any error that occurred during building or verification.
//
// Returns:
//   - BuildResponse: The constructed response struct.
//   - error: An error if the circuit listing could not be rendered.
func (s *Server) buildResponse(req buildRequest, result *service.BuildResult, duration time.Duration, err error) (BuildResponse, error) {
	resp := BuildResponse{
		Operator:        req.operator,
		Width:           req.params.Width,
		MultiplierWidth: req.params.MultiplierWidth,
		Subtract:        req.params.Subtract,
		Duration:        duration.String(),
	}
	if err != nil {
		resp.Error = err.Error()
	}
	if result == nil {
		return resp, nil
	}

	resp.CircuitWidth = result.Circuit.Width()
	resp.Size = result.Circuit.Size()
	if result.Verification != nil {
		ok := result.Verification.OK()
		resp.Verified = &ok
		resp.VerifiedCases = result.Verification.Cases
	}
	if req.withCircuit {
		listing, renderErr := result.Circuit.Canonical()
		if renderErr != nil {
			return resp, renderErr
		}
		resp.Circuit = listing
	}
	return resp, nil
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
