// Command cershaderc compiles cerlib sprite shaders to GLSL.
//
// Usage:
//
//	cershaderc [options] <file>...
//
// Examples:
//
//	cershaderc sprite.shd                  # compile to sprite.frag
//	cershaderc --es -o build sprite.shd    # GLSL ES output into build/
//	cershaderc -m sprite.shd               # minified output
//
// Defaults can be stored in a Java-properties file passed via
// --config; command-line flags take precedence.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	shaderc "github.com/cemderv/cerlib-sub001"
	"github.com/cemderv/cerlib-sub001/shading"
)

type options struct {
	OutDir     string `short:"o" long:"out-dir" description:"directory for generated .frag files (default: next to the input)"`
	ES         bool   `long:"es" description:"target GLSL ES 3.0 instead of desktop GLSL"`
	EntryPoint string `long:"entry" default:"main" description:"shader entry point name"`
	Minify     bool   `short:"m" long:"minify" description:"strip newlines and indentation from the output"`
	Config     string `short:"c" long:"config" description:"properties file with default options"`

	Args struct {
		Files []string `positional-arg-name:"file" required:"1"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[options] <file>..."

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(2)
	}

	if opts.Config != "" {
		if err := applyConfig(&opts); err != nil {
			fmt.Fprintf(os.Stderr, "cershaderc: %v\n", err)
			os.Exit(1)
		}
	}

	var errs error
	for _, file := range opts.Args.Files {
		if err := compileFile(file, &opts); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil {
		for _, err := range multierr.Errors(errs) {
			if diag, ok := errors.Cause(err).(*shading.Diagnostic); ok {
				fmt.Fprintln(os.Stderr, diag.FormatWithContext())
			} else {
				fmt.Fprintf(os.Stderr, "cershaderc: %v\n", err)
			}
		}
		os.Exit(1)
	}
}

// applyConfig fills options the command line left at their defaults
// from a properties file.
func applyConfig(opts *options) error {
	props, err := properties.LoadFile(opts.Config, properties.UTF8)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	if opts.OutDir == "" {
		opts.OutDir = props.GetString("out-dir", "")
	}
	if !opts.ES {
		opts.ES = props.GetBool("es", false)
	}
	if opts.EntryPoint == "main" {
		opts.EntryPoint = props.GetString("entry", "main")
	}
	if !opts.Minify {
		opts.Minify = props.GetBool("minify", false)
	}
	return nil
}

func compileFile(path string, opts *options) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}

	target := shaderc.GLSLDesktop
	if opts.ES {
		target = shaderc.GLSLES
	}

	result, err := shaderc.Compile(string(source), filepath.Base(path), target, opts.EntryPoint, opts.Minify)
	if err != nil {
		return err
	}

	outPath := outputPath(path, opts.OutDir)
	if err := os.WriteFile(outPath, []byte(result.GLSLSource), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", outPath)
	}

	fmt.Printf("%s -> %s (%d parameters)\n", path, outPath, len(result.Parameters))
	for _, param := range result.Parameters {
		kind := "uniform"
		if param.IsResource() {
			kind = "sampler"
		}
		fmt.Printf("  %-8s %s %s\n", kind, param.Type.TypeName(), param.Name)
	}
	return nil
}

// outputPath derives the .frag file path for an input shader.
func outputPath(input, outDir string) string {
	base := filepath.Base(input)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	base += ".frag"

	if outDir != "" {
		return filepath.Join(outDir, base)
	}
	return filepath.Join(filepath.Dir(input), base)
}
