package server

// BuildResponse represents the standardized JSON response for a build request.
type BuildResponse struct {
	// Operator is the name of the operator that was built.
	Operator string `json:"operator"`
	// Width is the primary operand width in qubits.
	Width int `json:"width"`
	// MultiplierWidth is the multiplier register width, when relevant.
	MultiplierWidth int `json:"multiplier_width,omitempty"`
	// Subtract reports whether the subtracting variant was built.
	Subtract bool `json:"subtract,omitempty"`
	// CircuitWidth is the total qubit count of the built circuit.
	CircuitWidth int `json:"circuit_width"`
	// Size is the flattened operation count of the built circuit.
	Size int `json:"size"`
	// Duration is the formatted build time string.
	Duration string `json:"duration"`
	// Circuit is the canonical operation listing. Included only when the
	// request asks for it, since it grows exponentially for multipliers.
	Circuit []string `json:"circuit,omitempty"`
	// Verified reports the verification outcome when verification ran.
	Verified *bool `json:"verified,omitempty"`
	// VerifiedCases is the number of basis inputs checked.
	VerifiedCases int `json:"verified_cases,omitempty"`
	// Error contains the error message if the build failed.
	Error string `json:"error,omitempty"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
}

// BuildParseError represents a parameter parsing error with HTTP status.
type BuildParseError struct {
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e BuildParseError) Error() string {
	return e.Message
}
