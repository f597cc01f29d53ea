package arith

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/quforge/quarith/internal/qft"
	"github.com/quforge/quarith/internal/quantum"
)

// goldenCircuit mirrors the entries written by cmd/generate-golden.
type goldenCircuit struct {
	Name    string   `json:"name"`
	Listing []string `json:"listing"`
}

// TestCircuitsAgainstGoldenFile pins the canonical listings of small
// reference circuits. A diff here means the gate sequence changed, which
// changes the identity of every built circuit.
func TestCircuitsAgainstGoldenFile(t *testing.T) {
	goldenPath := filepath.Join("testdata", "circuits_golden.json")
	file, err := os.Open(goldenPath)
	if err != nil {
		t.Fatalf("Failed to open golden file: %v. Did you run 'go run cmd/generate-golden/main.go'?", err)
	}
	defer file.Close()

	var cases []goldenCircuit
	if err := json.NewDecoder(file).Decode(&cases); err != nil {
		t.Fatalf("Failed to decode golden file: %v", err)
	}
	if len(cases) == 0 {
		t.Fatal("golden file holds no cases")
	}

	builders := map[string]func() *quantum.Circuit{
		"qft-2": func() *quantum.Circuit {
			tr, err := qft.New(qft.Options{Width: 2})
			if err != nil {
				t.Fatalf("qft.New failed: %v", err)
			}
			return tr.Build()
		},
		"iqft-2": func() *quantum.Circuit {
			tr, err := qft.New(qft.Options{Width: 2, Inverse: true})
			if err != nil {
				t.Fatalf("qft.New failed: %v", err)
			}
			return tr.Build()
		},
		"adder-2x1": func() *quantum.Circuit {
			a, err := NewAdder(AdderOptions{Width: 1})
			if err != nil {
				t.Fatalf("NewAdder failed: %v", err)
			}
			return a.Build()
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()
			build, ok := builders[tc.Name]
			if !ok {
				t.Fatalf("no builder for golden case %q", tc.Name)
			}
			got, err := build().Canonical()
			if err != nil {
				t.Fatalf("Canonical failed: %v", err)
			}
			if len(got) != len(tc.Listing) {
				t.Fatalf("listing length = %d, want %d\ngot:  %v\nwant: %v", len(got), len(tc.Listing), got, tc.Listing)
			}
			for i := range got {
				if got[i] != tc.Listing[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tc.Listing[i])
				}
			}
		})
	}
}
