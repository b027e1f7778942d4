// Package snapshot_test provides golden snapshot tests for the GLSL
// output of the shader compiler.
//
// For each shader in testdata/in/, the test compiles for both targets
// and compares the output to golden files stored in
// testdata/golden/{desktop,es}/.
//
// To regenerate golden files after intentional changes:
//
//	UPDATE_GOLDEN=1 go test ./snapshot/...
package snapshot_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	shaderc "github.com/cemderv/cerlib-sub001"
)

type target struct {
	name   string
	target shaderc.Target
}

var targets = []target{
	{"desktop", shaderc.GLSLDesktop},
	{"es", shaderc.GLSLES},
}

func TestSnapshots(t *testing.T) {
	inputs, err := filepath.Glob(filepath.Join("testdata", "in", "*.shd"))
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) == 0 {
		t.Fatal("no shader inputs found in testdata/in")
	}

	update := os.Getenv("UPDATE_GOLDEN") != ""

	for _, input := range inputs {
		name := strings.TrimSuffix(filepath.Base(input), ".shd")
		source, err := os.ReadFile(input)
		if err != nil {
			t.Fatal(err)
		}

		for _, tgt := range targets {
			t.Run(name+"/"+tgt.name, func(t *testing.T) {
				result, err := shaderc.Compile(string(source), name+".shd", tgt.target, "main", false)
				if err != nil {
					t.Fatalf("compile failed: %v", err)
				}

				goldenPath := filepath.Join("testdata", "golden", tgt.name, name+".frag")
				if update {
					if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
						t.Fatal(err)
					}
					if err := os.WriteFile(goldenPath, []byte(result.GLSLSource), 0o644); err != nil {
						t.Fatal(err)
					}
					return
				}

				golden, err := os.ReadFile(goldenPath)
				if err != nil {
					t.Fatalf("missing golden file %s; run with UPDATE_GOLDEN=1 to create it", goldenPath)
				}
				if result.GLSLSource != string(golden) {
					t.Errorf("output differs from %s:\ngot:\n%s\nwant:\n%s",
						goldenPath, result.GLSLSource, golden)
				}
			})
		}
	}
}
