// Package cli provides output utilities for exporting build results.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/quforge/quarith/internal/quantum"
	"github.com/quforge/quarith/internal/service"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the circuit listing (empty for no file output).
	OutputFile string
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full circuit listing.
	Verbose bool
	// JSONOutput formats the result as JSON.
	JSONOutput bool
}

// WriteCircuitToFile writes a built circuit's listing to a file.
//
// Parameters:
//   - result: The build result carrying the circuit.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteCircuitToFile(result *service.BuildResult, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	c := result.Circuit

	// Write header
	fmt.Fprintf(file, "# Quantum Circuit Listing\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Operator: %s\n", result.Operator)
	fmt.Fprintf(file, "# Circuit: %s\n", c.Name())
	fmt.Fprintf(file, "# Qubits: %d\n", c.Width())
	fmt.Fprintf(file, "# Operations: %d\n", c.Size())
	fmt.Fprintf(file, "# Build time: %s\n", result.BuildTime)
	fmt.Fprintf(file, "\n")

	return c.Render(file)
}

// jsonResult is the JSON document written for -json output.
type jsonResult struct {
	Operator      string   `json:"operator"`
	Circuit       string   `json:"circuit"`
	Qubits        int      `json:"qubits"`
	Size          int      `json:"size"`
	BuildTime     string   `json:"build_time"`
	Verified      *bool    `json:"verified,omitempty"`
	VerifiedCases int      `json:"verified_cases,omitempty"`
	Listing       []string `json:"listing,omitempty"`
}

// DisplayJSONResult outputs a build result as a JSON document.
//
// Parameters:
//   - out: The output writer.
//   - result: The build result.
//   - config: Output configuration. Verbose includes the full listing.
//
// Returns:
//   - error: An error if rendering or encoding fails.
func DisplayJSONResult(out io.Writer, result *service.BuildResult, config OutputConfig) error {
	doc := jsonResult{
		Operator:  result.Operator,
		Circuit:   result.Circuit.Name(),
		Qubits:    result.Circuit.Width(),
		Size:      result.Circuit.Size(),
		BuildTime: result.BuildTime.String(),
	}
	if result.Verification != nil {
		ok := result.Verification.OK()
		doc.Verified = &ok
		doc.VerifiedCases = result.Verification.Cases
	}
	if config.Verbose {
		listing, err := result.Circuit.Canonical()
		if err != nil {
			return err
		}
		doc.Listing = listing
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// DisplayBuildResult formats and prints the final build result.
// It provides different levels of detail based on the verbose flag. For
// large circuits, it truncates the listing unless verbose is true.
//
// Parameters:
//   - out: The io.Writer for the output.
//   - result: The build result.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if the circuit listing could not be rendered or saved.
func DisplayBuildResult(out io.Writer, result *service.BuildResult, config OutputConfig) error {
	if config.JSONOutput {
		if err := DisplayJSONResult(out, result, config); err != nil {
			return err
		}
		return WriteCircuitToFile(result, config)
	}

	c := result.Circuit

	if config.Quiet {
		fmt.Fprintf(out, "%s %d qubits %d ops %s\n",
			result.Operator, c.Width(), c.Size(), FormatExecutionDuration(result.BuildTime))
		return WriteCircuitToFile(result, config)
	}

	fmt.Fprintf(out, "\n%s--- Build result ---%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(out, "Circuit             : %s%s%s\n", ColorGreen(), c.Name(), ColorReset())
	fmt.Fprintf(out, "Qubits              : %s%d%s\n", ColorCyan(), c.Width(), ColorReset())
	fmt.Fprintf(out, "Operations          : %s%d%s\n", ColorCyan(), c.Size(), ColorReset())
	fmt.Fprintf(out, "  Hadamard          : %d\n", c.CountKind(quantum.OpHadamard))
	fmt.Fprintf(out, "  Phase             : %d\n", c.CountKind(quantum.OpPhase))
	fmt.Fprintf(out, "  Swap              : %d\n", c.CountKind(quantum.OpSwap))
	fmt.Fprintf(out, "Build time          : %s%s%s\n",
		ColorGreen(), FormatExecutionDuration(result.BuildTime), ColorReset())

	if result.Verification != nil {
		if result.Verification.OK() {
			fmt.Fprintf(out, "Verification        : %spassed%s (%d cases in %s)\n",
				ColorGreen(), ColorReset(), result.Verification.Cases,
				FormatExecutionDuration(result.Verification.Elapsed))
		} else {
			fmt.Fprintf(out, "Verification        : %sFAILED%s (%d of %d cases)\n",
				ColorRed(), ColorReset(), len(result.Verification.Mismatches),
				result.Verification.Cases)
			for i, m := range result.Verification.Mismatches {
				if i >= 5 {
					fmt.Fprintf(out, "  ... and %d more\n", len(result.Verification.Mismatches)-5)
					break
				}
				fmt.Fprintf(out, "  %s\n", m)
			}
		}
	}

	if err := displayListing(out, c, config.Verbose); err != nil {
		return err
	}
	if err := WriteCircuitToFile(result, config); err != nil {
		return err
	}
	if config.OutputFile != "" {
		fmt.Fprintf(out, "\n%s✓ Circuit saved to: %s%s%s\n",
			ColorGreen(), ColorCyan(), config.OutputFile, ColorReset())
	}
	return nil
}

// displayListing prints the circuit's operation listing, truncated for
// large circuits unless verbose is set.
func displayListing(out io.Writer, c *quantum.Circuit, verbose bool) error {
	listing, err := c.Canonical()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n%s--- Circuit listing ---%s\n", ColorBold(), ColorReset())
	if verbose || len(listing) <= TruncationLimit {
		for _, line := range listing {
			fmt.Fprintln(out, line)
		}
		return nil
	}

	for _, line := range listing[:DisplayEdges] {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "... (%d operations omitted) ...\n", len(listing)-2*DisplayEdges)
	for _, line := range listing[len(listing)-DisplayEdges:] {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full listing)\n",
		ColorYellow(), ColorReset())
	return nil
}
