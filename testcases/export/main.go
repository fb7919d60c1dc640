// Command export writes test case definitions to JSON, for use by external
// reference renderers.  Run from the module root directory.
package main

import (
	"encoding/json"
	"flag"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/reyes/testcases"
)

func main() {
	out := flag.String("o", "testdata/testcases.json", "output file")
	flag.Parse()

	if err := run(*out); err != nil {
		slog.Error("export failed", "err", err)
		os.Exit(1)
	}
}

func run(fname string) error {
	var data struct {
		TestCases []jsonTestCase `json:"testcases"`
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			data.TestCases = append(data.TestCases, toJSON(category, tc))
		}
	}

	if err := os.MkdirAll(filepath.Dir(fname), 0755); err != nil {
		return err
	}
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return err
	}
	slog.Info("wrote test cases", "file", fname, "count", len(data.TestCases))
	return f.Close()
}

type jsonTestCase struct {
	Name    string      `json:"name"`
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Samples int         `json:"samples,omitempty"`
	CTM     []float64   `json:"ctm"`
	Patches []jsonPatch `json:"patches"`
}

type jsonPatch struct {
	Corners [][]float64 `json:"corners"`
	NU      int         `json:"nu"`
	NV      int         `json:"nv"`
	Z       []float64   `json:"z"`
	Value   []float64   `json:"value"`
}

func toJSON(category string, tc testcases.TestCase) jsonTestCase {
	ctm := tc.CTM
	if ctm == (matrix.Matrix{}) {
		ctm = matrix.Identity
	}
	jtc := jsonTestCase{
		Name:    category + "_" + tc.Name,
		Width:   tc.Width,
		Height:  tc.Height,
		Samples: tc.Samples,
		CTM:     ctm[:],
	}
	for _, p := range tc.Patches {
		jp := jsonPatch{
			NU:    p.NU,
			NV:    p.NV,
			Z:     p.Z[:],
			Value: p.Value[:],
		}
		for _, c := range p.Corners {
			jp.Corners = append(jp.Corners, []float64{c.X, c.Y})
		}
		jtc.Patches = append(jtc.Patches, jp)
	}
	return jtc
}
