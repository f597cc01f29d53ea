// Command generate-golden regenerates the golden circuit listings used by
// the regression tests. Each golden entry is the canonical operation
// listing of one operator configuration; the tests compare freshly built
// circuits against these listings to catch unintended gate-sequence
// changes.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quforge/quarith/internal/arith"
	"github.com/quforge/quarith/internal/qft"
)

// GoldenCircuit represents a single circuit case in the golden file.
type GoldenCircuit struct {
	Name    string   `json:"name"`
	Listing []string `json:"listing"`
}

func main() {
	outputDir := flag.String("out", "internal/arith/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "circuits_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var data []GoldenCircuit

	fmt.Println("Generating golden circuit listings...")

	for _, c := range goldenCases() {
		listing, err := c.build()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building %s: %v\n", c.name, err)
			os.Exit(1)
		}
		data = append(data, GoldenCircuit{Name: c.name, Listing: listing})
		fmt.Printf("Generated %s (%d operations)\n", c.name, len(listing))
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

type goldenCase struct {
	name  string
	build func() ([]string, error)
}

// goldenCases lists the operator configurations locked by the golden file.
// Widths stay small so listings remain reviewable by hand.
func goldenCases() []goldenCase {
	return []goldenCase{
		{"qft-2", func() ([]string, error) {
			t, err := qft.New(qft.Options{Width: 2})
			if err != nil {
				return nil, err
			}
			return t.Build().Canonical()
		}},
		{"iqft-2", func() ([]string, error) {
			t, err := qft.New(qft.Options{Width: 2, Inverse: true})
			if err != nil {
				return nil, err
			}
			return t.Build().Canonical()
		}},
		{"adder-2x1", func() ([]string, error) {
			a, err := arith.NewAdder(arith.AdderOptions{Width: 1})
			if err != nil {
				return nil, err
			}
			return a.Build().Canonical()
		}},
	}
}
